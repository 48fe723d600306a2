// Package tlb implements the scoped TLB window resource: acquiring a
// driver-assigned TLB id plus its host memory mapping, and guaranteeing
// both are released together on every exit path.
package tlb

import (
	"github.com/tenstorrent/go-noc/internal/constants"
	"github.com/tenstorrent/go-noc/internal/driver"
	"github.com/tenstorrent/go-noc/internal/uapi"
)

// Mode selects which of the two mmap offsets AllocateTlb returns is used
// to map the window: UC for single-word ordered access, WC to allow
// store combining across block transfers.
type Mode int

const (
	// UC maps the window uncached, for single-word read-modify paths
	// where ordering with respect to MMIO matters.
	UC Mode = iota
	// WC maps the window write-combining, for block transfers.
	WC
)

// Window is a scoped acquisition of one TLB id plus its mmap'd region.
// It either holds both a valid id and mapping, or neither: Acquire frees
// the id if the subsequent mmap fails.
type Window struct {
	drv      driver.Driver
	id       uint32
	mem      []byte
	mode     Mode
	released bool
}

// Acquire reserves a TLB window of size bytes and maps it according to
// mode. On any failure after the id is allocated, the id is freed before
// the error is returned.
func Acquire(drv driver.Driver, size uint64, mode Mode) (*Window, error) {
	id, offUC, offWC, err := drv.AllocateTlb(size)
	if err != nil {
		return nil, err
	}

	offset := offUC
	if mode == WC {
		offset = offWC
	}

	mem, err := drv.Mmap(offset, int(size))
	if err != nil {
		// The id was allocated but the mapping failed: free it before
		// surfacing the error so the window is never half-constructed.
		_ = drv.FreeTlb(id)
		return nil, err
	}

	return &Window{drv: drv, id: id, mem: mem, mode: mode}, nil
}

// ID returns the driver-assigned TLB id.
func (w *Window) ID() uint32 {
	return w.id
}

// Mem returns the host-mapped region, exactly constants.WindowSize bytes
// (or whatever size Acquire was called with).
func (w *Window) Mem() []byte {
	return w.mem
}

// Configure re-aims the window at a chip-side aperture. It may be called
// many times against the same window; on failure the TLB's aim is
// undefined and must not be relied upon by the caller.
func (w *Window) Configure(cfg uapi.NocTlbConfig) error {
	return w.drv.ConfigureTlb(w.id, cfg)
}

// Release unmaps the window and frees its TLB id. It is idempotent.
// Unmap is attempted first, then the free ioctl; if primaryErr is nil
// (the transfer otherwise succeeded) the first release failure is
// returned so it isn't silently swallowed.
func (w *Window) Release(primaryErr error) error {
	if w.released {
		return nil
	}
	w.released = true

	var releaseErr error
	if err := w.drv.Munmap(w.mem); err != nil {
		releaseErr = err
	}
	if err := w.drv.FreeTlb(w.id); err != nil && releaseErr == nil {
		releaseErr = err
	}

	if primaryErr != nil {
		return nil
	}
	return releaseErr
}

// DefaultSize is the fixed TLB window aperture size used throughout the
// engine.
const DefaultSize = constants.WindowSize
