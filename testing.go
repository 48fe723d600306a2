package noc

import (
	"github.com/tenstorrent/go-noc/internal/driver"
)

// MockDriver is a re-export of the internal mock driver, exposed so
// callers can exercise Device logic without a real Tenstorrent card.
// See internal/driver.MockDriver for the simulated chip model.
type MockDriver = driver.MockDriver

// NewMockDriver returns a MockDriver with an empty simulated chip.
func NewMockDriver() *MockDriver {
	return driver.NewMockDriver()
}

// NewMockDevice builds a Device backed by drv instead of a real opened
// fd, for tests that want the full validation/metrics/engine path
// without touching hardware.
func NewMockDevice(drv *MockDriver, opts *Options) *Device {
	if opts == nil {
		opts = &Options{}
	}

	metrics := NewMetrics()
	var observer Observer = opts.Observer
	if observer == nil {
		observer = NewMetricsObserver(metrics)
	}

	return &Device{
		path:     "mock",
		fd:       -1,
		drv:      drv,
		opened:   true,
		logger:   opts.Logger,
		observer: observer,
		metrics:  metrics,
	}
}
