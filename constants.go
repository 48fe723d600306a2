package noc

import "github.com/tenstorrent/go-noc/internal/constants"

// Re-export constants for the public API.
const (
	WindowSize     = constants.WindowSize
	WordSize       = constants.WordSize
	OrderingStrict = constants.OrderingStrict
	NocIDMax       = constants.NocIDMax
)

// DefaultDevicePathPrefix is the conventional Tenstorrent character
// device directory; a caller appends the device index.
const DefaultDevicePathPrefix = constants.DefaultDevicePathPrefix
