//go:build !linux

package driver

import (
	"syscall"

	"github.com/tenstorrent/go-noc/internal/errs"
	"github.com/tenstorrent/go-noc/internal/uapi"
)

// RealDriver is unavailable outside Linux: the Tenstorrent character
// device, its ioctls, and its mmap offsets are Linux-specific.
type RealDriver struct{}

// New returns a RealDriver whose every method fails with ENOSYS on
// non-Linux platforms.
func New(fd int) *RealDriver {
	return &RealDriver{}
}

func (d *RealDriver) AllocateTlb(size uint64) (uint32, uint64, uint64, error) {
	return 0, 0, 0, errs.IoctlFailed("AllocateTlb", syscall.ENOSYS)
}

func (d *RealDriver) FreeTlb(id uint32) error {
	return errs.IoctlFailed("FreeTlb", syscall.ENOSYS)
}

func (d *RealDriver) ConfigureTlb(id uint32, cfg uapi.NocTlbConfig) error {
	return errs.IoctlFailed("ConfigureTlb", syscall.ENOSYS)
}

func (d *RealDriver) Mmap(offset uint64, size int) ([]byte, error) {
	return nil, errs.MmapFailed("Mmap", syscall.ENOSYS)
}

func (d *RealDriver) Munmap(region []byte) error {
	return errs.MmapFailed("Munmap", syscall.ENOSYS)
}
