// Package errs implements the structured error taxonomy shared by the
// driver, TLB, and engine layers, so a failure keeps its operation name
// and errno as it crosses package boundaries back up to the caller.
package errs

import (
	"fmt"
	"syscall"
)

// Error is a structured NoC transfer-engine error: which operation
// failed, its high-level category, and (when the failure came from the
// kernel) the raw errno.
type Error struct {
	Op    string
	Code  Code
	Errno syscall.Errno
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op == "" {
		return fmt.Sprintf("noc: %s", msg)
	}
	if e.Errno != 0 {
		return fmt.Sprintf("noc: %s: %s (errno=%d)", e.Op, msg, e.Errno)
	}
	return fmt.Sprintf("noc: %s: %s", e.Op, msg)
}

// Unwrap returns the wrapped error for errors.Is/errors.As support.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is lets errors.Is match on error category alone.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// Code categorizes NoC engine failures.
type Code string

const (
	CodeDeviceNotFound   Code = "device not found"
	CodePermissionDenied Code = "permission denied"
	CodeNotOpen          Code = "handle not open"
	CodeInvalidArgument  Code = "invalid argument"
	CodeIoctlFailed      Code = "ioctl failed"
	CodeMmapFailed       Code = "mmap failed"
	CodeOutOfBounds      Code = "intra-aperture access out of bounds"
)

// InvalidArgument builds a CodeInvalidArgument error. Callers must raise
// these before issuing any ioctl.
func InvalidArgument(op, msg string) *Error {
	return &Error{Op: op, Code: CodeInvalidArgument, Msg: msg}
}

// OutOfBounds builds a CodeOutOfBounds error for the defensive
// intra-aperture bounds check on single-word operations.
func OutOfBounds(op, msg string) *Error {
	return &Error{Op: op, Code: CodeOutOfBounds, Msg: msg}
}

// NotOpen builds a CodeNotOpen error for operations on a closed handle.
func NotOpen(op string) *Error {
	return &Error{Op: op, Code: CodeNotOpen, Msg: "device handle is not open"}
}

// IoctlFailed wraps a failed ioctl with its operation name and errno.
func IoctlFailed(op string, errno syscall.Errno) *Error {
	return &Error{Op: op, Code: CodeIoctlFailed, Errno: errno, Msg: errno.Error(), Inner: errno}
}

// MmapFailed wraps a failed mmap/munmap with its errno.
func MmapFailed(op string, errno syscall.Errno) *Error {
	return &Error{Op: op, Code: CodeMmapFailed, Errno: errno, Msg: errno.Error(), Inner: errno}
}

// WrapOpen maps the errno from opening the character device to
// DeviceNotFound / PermissionDenied / a generic ioctl-shaped error.
func WrapOpen(path string, errno syscall.Errno) *Error {
	switch errno {
	case syscall.ENOENT, syscall.ENXIO, syscall.ENODEV:
		return &Error{Op: "Open", Code: CodeDeviceNotFound, Errno: errno, Msg: fmt.Sprintf("%s: %s", path, errno)}
	case syscall.EACCES, syscall.EPERM:
		return &Error{Op: "Open", Code: CodePermissionDenied, Errno: errno, Msg: fmt.Sprintf("%s: %s", path, errno)}
	default:
		return &Error{Op: "Open", Code: CodeIoctlFailed, Errno: errno, Msg: fmt.Sprintf("%s: %s", path, errno)}
	}
}
