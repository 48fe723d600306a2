package driver

import (
	"sync"
	"syscall"

	"github.com/tenstorrent/go-noc/internal/constants"
	"github.com/tenstorrent/go-noc/internal/errs"
	"github.com/tenstorrent/go-noc/internal/uapi"
)

// chipMemory simulates the chip-side NoC address space the driver
// ultimately reaches: one WindowSize-aligned aperture per entry,
// lazily allocated and zero-filled on first touch.
type chipMemory struct {
	mu        sync.Mutex
	apertures map[uint64][]byte
}

func newChipMemory() *chipMemory {
	return &chipMemory{apertures: make(map[uint64][]byte)}
}

func (c *chipMemory) getOrCreate(aperture uint64) []byte {
	if buf, ok := c.apertures[aperture]; ok {
		return buf
	}
	buf := make([]byte, constants.WindowSize)
	c.apertures[aperture] = buf
	return buf
}

func (c *chipMemory) store(aperture uint64, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(c.getOrCreate(aperture), data)
}

func (c *chipMemory) load(aperture uint64, dst []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(dst, c.getOrCreate(aperture))
}

type mockWindow struct {
	buf        []byte
	aperture   uint64
	configured bool
}

// MockDriver is an in-memory Driver implementation that simulates TLB
// allocation and a chip-side NoC address space, so the TLB and engine
// layers (and their callers) can be exercised without real hardware.
// Reconfiguring a TLB flushes the window's current content to the
// simulated chip and loads the new aperture's content in, modeling the
// uncached, MMIO-like semantics of the real driver.
type MockDriver struct {
	mu      sync.Mutex
	nextID  uint32
	offsets map[uint64]uint32
	windows map[uint32]*mockWindow
	chip    *chipMemory

	// Call counters, for asserting P5 (resource balance) and friends.
	AllocateCalls  int
	FreeCalls      int
	ConfigureCalls int
	MmapCalls      int
	MunmapCalls    int

	// Injected failures: when set, the next matching call fails with
	// this errno and the injection is cleared.
	failNextAllocate  syscall.Errno
	failNextConfigure syscall.Errno
	failNextMmap      syscall.Errno
}

// NewMockDriver returns a MockDriver with an empty simulated chip.
func NewMockDriver() *MockDriver {
	return &MockDriver{
		offsets: make(map[uint64]uint32),
		windows: make(map[uint32]*mockWindow),
		chip:    newChipMemory(),
	}
}

// FailNextAllocate makes the next AllocateTlb call fail with errno.
func (d *MockDriver) FailNextAllocate(errno syscall.Errno) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failNextAllocate = errno
}

// FailNextConfigure makes the next ConfigureTlb call fail with errno.
func (d *MockDriver) FailNextConfigure(errno syscall.Errno) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failNextConfigure = errno
}

// FailNextMmap makes the next Mmap call fail with errno.
func (d *MockDriver) FailNextMmap(errno syscall.Errno) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failNextMmap = errno
}

func (d *MockDriver) AllocateTlb(size uint64) (uint32, uint64, uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.AllocateCalls++
	if d.failNextAllocate != 0 {
		errno := d.failNextAllocate
		d.failNextAllocate = 0
		return 0, 0, 0, errs.IoctlFailed("AllocateTlb", errno)
	}

	d.nextID++
	id := d.nextID
	offUC := uint64(id) * 2
	offWC := offUC + 1
	d.offsets[offUC] = id
	d.offsets[offWC] = id
	d.windows[id] = &mockWindow{}
	return id, offUC, offWC, nil
}

func (d *MockDriver) FreeTlb(id uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.FreeCalls++
	w, ok := d.windows[id]
	if !ok {
		return errs.IoctlFailed("FreeTlb", syscall.EINVAL)
	}
	if w.configured {
		d.chip.store(w.aperture, w.buf)
	}
	delete(d.windows, id)
	for off, wid := range d.offsets {
		if wid == id {
			delete(d.offsets, off)
		}
	}
	return nil
}

func (d *MockDriver) ConfigureTlb(id uint32, cfg uapi.NocTlbConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ConfigureCalls++
	if d.failNextConfigure != 0 {
		errno := d.failNextConfigure
		d.failNextConfigure = 0
		return errs.IoctlFailed("ConfigureTlb", errno)
	}

	w, ok := d.windows[id]
	if !ok {
		return errs.IoctlFailed("ConfigureTlb", syscall.EINVAL)
	}

	if w.configured {
		d.chip.store(w.aperture, w.buf)
	}
	w.aperture = cfg.Addr
	w.configured = true
	if w.buf != nil {
		d.chip.load(w.aperture, w.buf)
	}
	return nil
}

func (d *MockDriver) Mmap(offset uint64, size int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.MmapCalls++
	if d.failNextMmap != 0 {
		errno := d.failNextMmap
		d.failNextMmap = 0
		return nil, errs.MmapFailed("Mmap", errno)
	}

	id, ok := d.offsets[offset]
	if !ok {
		return nil, errs.MmapFailed("Mmap", syscall.EINVAL)
	}
	w := d.windows[id]
	w.buf = make([]byte, size)
	if w.configured {
		d.chip.load(w.aperture, w.buf)
	}
	return w.buf, nil
}

func (d *MockDriver) Munmap(region []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.MunmapCalls++
	return nil
}

// OutstandingTlbs returns the number of TLB ids allocated but not yet
// freed, for asserting P5.
func (d *MockDriver) OutstandingTlbs() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.windows)
}

// ChipBytes returns a copy of the simulated chip-side bytes starting at
// addr, for asserting P1/P3 independently of the engine under test.
func (d *MockDriver) ChipBytes(addr uint64, length int) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]byte, length)
	read := 0
	for read < length {
		ap := (addr + uint64(read)) &^ (constants.WindowSize - 1)
		intra := (addr + uint64(read)) & (constants.WindowSize - 1)
		n := constants.WindowSize - int(intra)
		if remaining := length - read; n > remaining {
			n = remaining
		}
		buf := d.chip.getOrCreate(ap)
		copy(out[read:read+n], buf[intra:int(intra)+n])
		read += n
	}
	return out
}
