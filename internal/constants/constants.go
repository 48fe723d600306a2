// Package constants holds the fixed, driver-dependent values the NoC
// transfer engine is built against.
package constants

const (
	// WindowSize is the fixed TLB aperture size (2 MiB). The driver
	// guarantees this is a power of two.
	WindowSize = 1 << 21

	// ApertureMask masks a chip address down to its containing,
	// WindowSize-aligned aperture.
	ApertureMask = ^uint64(0) ^ (WindowSize - 1)

	// WordSize is the granularity required of addresses and block
	// lengths (4-byte aligned NoC words).
	WordSize = 4

	// OrderingStrict is the driver's "strict" NoC ordering value, used
	// for every unicast transfer this engine issues. Driver-dependent;
	// verify against the target kernel header before changing it.
	OrderingStrict = 0

	// NocIDMax is the highest valid NoC id (two NoCs: 0 and 1).
	NocIDMax = 1
)

// DefaultDevicePathPrefix is the conventional Tenstorrent character
// device directory; a caller appends the device index.
const DefaultDevicePathPrefix = "/dev/tenstorrent/"
