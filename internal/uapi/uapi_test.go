package uapi

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestStructSizes(t *testing.T) {
	tests := []struct {
		name string
		size uintptr
		want int
	}{
		{"AllocateTlb", unsafe.Sizeof(AllocateTlb{}), 48},
		{"FreeTlb", unsafe.Sizeof(FreeTlb{}), 8},
		{"NocTlbConfig", unsafe.Sizeof(NocTlbConfig{}), 32},
		{"ConfigureTlb", unsafe.Sizeof(ConfigureTlb{}), 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, int(tt.size))
		})
	}
}

func TestIoctlRequestCodes(t *testing.T) {
	// Direction NONE, size 0: the request code is just the magic byte
	// and command number shifted into place.
	require.Equal(t, uint(Magic)<<8|11, IoctlAllocateTlb)
	require.Equal(t, uint(Magic)<<8|12, IoctlFreeTlb)
	require.Equal(t, uint(Magic)<<8|13, IoctlConfigureTlb)
}

func TestNewUnicastConfigZeroesMulticastFields(t *testing.T) {
	cfg := NewUnicastConfig(0x400000, 0, 8, 3)
	require.Equal(t, uint64(0x400000), cfg.Addr)
	require.EqualValues(t, 0, cfg.XStart)
	require.EqualValues(t, 0, cfg.YStart)
	require.EqualValues(t, 0, cfg.Mcast)
	require.EqualValues(t, 0, cfg.Linked)
	require.EqualValues(t, 0, cfg.StaticVC)
	require.EqualValues(t, 8, cfg.XEnd)
	require.EqualValues(t, 3, cfg.YEnd)
}
