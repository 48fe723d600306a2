package uapi

import "github.com/tenstorrent/go-noc/internal/constants"

// NewUnicastConfig builds the TLB configuration for a unicast transfer:
// x/y start pinned to zero, mcast/linked/static_vc zeroed, and ordering
// fixed at the driver's strict value.
func NewUnicastConfig(aperture uint64, nocID uint8, x, y uint16) NocTlbConfig {
	return NocTlbConfig{
		Addr:     aperture,
		XEnd:     x,
		YEnd:     y,
		XStart:   0,
		YStart:   0,
		Noc:      nocID,
		Mcast:    0,
		Ordering: constants.OrderingStrict,
		Linked:   0,
		StaticVC: 0,
	}
}
