package noc

import (
	"errors"

	"github.com/tenstorrent/go-noc/internal/errs"
)

// Error is the public error type for every failure this package returns.
// It is a re-export of the internal error taxonomy shared by the driver,
// TLB, and engine layers, surfaced through the root package so callers
// never import the internal package directly (see constants.go).
type Error = errs.Error

// ErrorCode categorizes NoC engine failures.
type ErrorCode = errs.Code

// Error categories.
const (
	ErrCodeDeviceNotFound   = errs.CodeDeviceNotFound
	ErrCodePermissionDenied = errs.CodePermissionDenied
	ErrCodeNotOpen          = errs.CodeNotOpen
	ErrCodeInvalidArgument  = errs.CodeInvalidArgument
	ErrCodeIoctlFailed      = errs.CodeIoctlFailed
	ErrCodeMmapFailed       = errs.CodeMmapFailed
	ErrCodeOutOfBounds      = errs.CodeOutOfBounds
)

// IsCode reports whether err is an *Error with the given category.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
