// Package driver wraps the three TLB ioctls and the mmap syscall behind
// a small interface, so the TLB window resource and transfer engine can
// run against either the real character device or an in-memory mock.
package driver

import "github.com/tenstorrent/go-noc/internal/uapi"

// Driver is the seam between the TLB/engine layers and the underlying
// kernel character device.
type Driver interface {
	// AllocateTlb reserves one TLB window of size bytes and returns its
	// id plus the UC and WC mmap offsets.
	AllocateTlb(size uint64) (id uint32, mmapOffsetUC uint64, mmapOffsetWC uint64, err error)

	// FreeTlb releases a previously allocated TLB id.
	FreeTlb(id uint32) error

	// ConfigureTlb re-aims an allocated TLB at a chip-side aperture.
	ConfigureTlb(id uint32, cfg uapi.NocTlbConfig) error

	// Mmap maps size bytes of the device fd at offset, shared and
	// read-write.
	Mmap(offset uint64, size int) ([]byte, error)

	// Munmap unmaps a region previously returned by Mmap.
	Munmap(region []byte) error
}
