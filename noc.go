// Package noc provides a userspace handle to a Tenstorrent NoC transfer
// engine: opening the character device, allocating and aiming TLB
// windows, and moving single words or arbitrary-length blocks between
// the host and chip-side NoC addresses.
package noc

import (
	"sync"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/tenstorrent/go-noc/internal/constants"
	"github.com/tenstorrent/go-noc/internal/driver"
	"github.com/tenstorrent/go-noc/internal/engine"
	"github.com/tenstorrent/go-noc/internal/errs"
	"github.com/tenstorrent/go-noc/internal/interfaces"
	"github.com/tenstorrent/go-noc/internal/logging"
)

// Logger is the interface a caller's logger must satisfy.
type Logger = interfaces.Logger

// Observer receives per-operation metrics. Implementations must be
// safe for concurrent use; Device calls it synchronously after every
// transfer it hands to the engine, success or failure. Calls rejected
// before that (closed handle, invalid argument, zero-length block) are
// not observed.
type Observer = interfaces.Observer

// Options configures an opened Device beyond its device path.
type Options struct {
	// Logger receives debug/info messages during Open/Close. Nil means
	// no logging beyond the package's own default logger.
	Logger Logger

	// Observer receives metrics for every read/write. Nil defaults to
	// a MetricsObserver backed by a fresh *Metrics.
	Observer Observer
}

// Device is a handle to one Tenstorrent character device: an open fd
// plus the ability to drive the transfer engine against it. Every
// operation holds the Device's mutex for its whole duration, so calls
// from multiple goroutines are serialized; to run transfers in parallel,
// open distinct handles.
type Device struct {
	mu sync.Mutex

	path   string
	fd     int
	drv    driver.Driver
	opened bool

	logger   Logger
	observer Observer
	metrics  *Metrics
}

// Open opens the character device at path read-write with close-on-exec
// set, and returns a ready-to-use Device. Opening is not idempotent in
// the sense of sharing a fd across Devices; call Open once per desired
// handle.
func Open(path string, opts *Options) (*Device, error) {
	if opts == nil {
		opts = &Options{}
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		errno, _ := err.(syscall.Errno)
		return nil, errs.WrapOpen(path, errno)
	}

	metrics := NewMetrics()
	var observer Observer = opts.Observer
	if observer == nil {
		observer = NewMetricsObserver(metrics)
	}

	d := &Device{
		path:     path,
		fd:       fd,
		drv:      driver.New(fd),
		opened:   true,
		logger:   opts.Logger,
		observer: observer,
		metrics:  metrics,
	}

	logging.Default().Info("device opened", "path", path)
	if d.logger != nil {
		d.logger.Printf("opened %s", path)
	}

	return d, nil
}

// Close closes the underlying fd. It is idempotent; a second Close is a
// no-op, and errors from the close syscall are always suppressed since
// the fd is gone either way.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.opened {
		return nil
	}
	d.opened = false
	_ = unix.Close(d.fd)

	logging.Default().Info("device closed", "path", d.path)
	if d.logger != nil {
		d.logger.Printf("closed %s", d.path)
	}
	return nil
}

// Metrics returns the device's metrics instance.
func (d *Device) Metrics() *Metrics {
	return d.metrics
}

func (d *Device) checkOpen(op string) error {
	if !d.opened {
		return errs.NotOpen(op)
	}
	return nil
}

func validateAddr(op string, addr uint64) error {
	if addr%constants.WordSize != 0 {
		return errs.InvalidArgument(op, "addr must be 4-byte aligned")
	}
	return nil
}

func validateSize(op string, size uint64) error {
	if size%constants.WordSize != 0 {
		return errs.InvalidArgument(op, "size must be a multiple of 4")
	}
	return nil
}

// NocRead32 performs a single 32-bit UC read at (noc, x, y, addr).
func (d *Device) NocRead32(nocID uint8, x, y uint16, addr uint64) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	const op = "NocRead32"
	if err := d.checkOpen(op); err != nil {
		return 0, err
	}
	if err := validateAddr(op, addr); err != nil {
		return 0, err
	}

	start := latencyNow()
	v, err := engine.TransferWord(d.drv, engine.Request{NocID: nocID, X: x, Y: y, Addr: addr}, nil)
	d.observer.ObserveRead(4, latencySince(start), err == nil)
	return v, err
}

// NocWrite32 performs a single 32-bit UC write at (noc, x, y, addr).
func (d *Device) NocWrite32(nocID uint8, x, y uint16, addr uint64, value uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	const op = "NocWrite32"
	if err := d.checkOpen(op); err != nil {
		return err
	}
	if err := validateAddr(op, addr); err != nil {
		return err
	}

	start := latencyNow()
	_, err := engine.TransferWord(d.drv, engine.Request{NocID: nocID, X: x, Y: y, Addr: addr}, &value)
	d.observer.ObserveWrite(4, latencySince(start), err == nil)
	return err
}

// NocRead performs a block WC read of size bytes starting at addr,
// returning a freshly allocated buffer of exactly size bytes.
func (d *Device) NocRead(nocID uint8, x, y uint16, addr, size uint64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	const op = "NocRead"
	if err := d.checkOpen(op); err != nil {
		return nil, err
	}
	if err := validateAddr(op, addr); err != nil {
		return nil, err
	}
	if err := validateSize(op, size); err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, size)
	start := latencyNow()
	_, err := engine.TransferBlock(d.drv, engine.Request{NocID: nocID, X: x, Y: y, Addr: addr}, buf, false)
	d.observer.ObserveRead(size, latencySince(start), err == nil)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// NocWrite performs a block WC write of buf starting at addr. The
// length of buf is the transfer size.
func (d *Device) NocWrite(nocID uint8, x, y uint16, addr uint64, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	const op = "NocWrite"
	if err := d.checkOpen(op); err != nil {
		return err
	}
	if err := validateAddr(op, addr); err != nil {
		return err
	}
	if err := validateSize(op, uint64(len(buf))); err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}

	start := latencyNow()
	_, err := engine.TransferBlock(d.drv, engine.Request{NocID: nocID, X: x, Y: y, Addr: addr}, buf, true)
	d.observer.ObserveWrite(uint64(len(buf)), latencySince(start), err == nil)
	return err
}
