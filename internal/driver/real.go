//go:build linux

package driver

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/tenstorrent/go-noc/internal/errs"
	"github.com/tenstorrent/go-noc/internal/uapi"
)

// RealDriver issues the three TLB ioctls and mmap/munmap against an open
// character device fd. It holds no state of its own beyond the fd: TLB
// ids and mappings are owned by internal/tlb.Window.
type RealDriver struct {
	fd int
}

// New wraps an already-open device fd.
func New(fd int) *RealDriver {
	return &RealDriver{fd: fd}
}

func (d *RealDriver) AllocateTlb(size uint64) (uint32, uint64, uint64, error) {
	arg := uapi.AllocateTlb{Size: size}
	if errno := ioctl(d.fd, uapi.IoctlAllocateTlb, unsafe.Pointer(&arg)); errno != 0 {
		return 0, 0, 0, errs.IoctlFailed("AllocateTlb", errno)
	}
	return arg.ID, arg.MmapOffsetUC, arg.MmapOffsetWC, nil
}

func (d *RealDriver) FreeTlb(id uint32) error {
	arg := uapi.FreeTlb{ID: id}
	if errno := ioctl(d.fd, uapi.IoctlFreeTlb, unsafe.Pointer(&arg)); errno != 0 {
		return errs.IoctlFailed("FreeTlb", errno)
	}
	return nil
}

func (d *RealDriver) ConfigureTlb(id uint32, cfg uapi.NocTlbConfig) error {
	arg := uapi.ConfigureTlb{ID: id, Config: cfg}
	if errno := ioctl(d.fd, uapi.IoctlConfigureTlb, unsafe.Pointer(&arg)); errno != 0 {
		return errs.IoctlFailed("ConfigureTlb", errno)
	}
	return nil
}

func (d *RealDriver) Mmap(offset uint64, size int) ([]byte, error) {
	region, err := unix.Mmap(d.fd, int64(offset), size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		errno, _ := err.(syscall.Errno)
		return nil, errs.MmapFailed("Mmap", errno)
	}
	return region, nil
}

func (d *RealDriver) Munmap(region []byte) error {
	if err := unix.Munmap(region); err != nil {
		errno, _ := err.(syscall.Errno)
		return errs.MmapFailed("Munmap", errno)
	}
	return nil
}

// ioctl issues a direction-NONE ioctl: the kernel reads and writes arg in
// place, so there is no separate request/response marshaling step.
func ioctl(fd int, req uint, arg unsafe.Pointer) syscall.Errno {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return 0
}
