package tlb

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tenstorrent/go-noc/internal/driver"
	"github.com/tenstorrent/go-noc/internal/uapi"
)

func TestAcquire_FreesIDOnMmapFailure(t *testing.T) {
	mock := driver.NewMockDriver()
	mock.FailNextMmap(syscall.ENOMEM)

	w, err := Acquire(mock, DefaultSize, WC)
	require.Error(t, err)
	require.Nil(t, w)
	require.Zero(t, mock.OutstandingTlbs(), "a failed mmap must not leak the allocated TLB id")
}

func TestRelease_Idempotent(t *testing.T) {
	mock := driver.NewMockDriver()
	w, err := Acquire(mock, DefaultSize, UC)
	require.NoError(t, err)

	require.NoError(t, w.Release(nil))
	require.NoError(t, w.Release(nil))
	require.Equal(t, 1, mock.FreeCalls, "a second Release must not re-issue FreeTlb")
	require.Equal(t, 1, mock.MunmapCalls)
}

func TestRelease_SuppressesSecondaryErrorWhenPrimaryFailed(t *testing.T) {
	mock := driver.NewMockDriver()
	w, err := Acquire(mock, DefaultSize, UC)
	require.NoError(t, err)

	// Free the id out from under the window so Release hits a secondary
	// failure from the driver.
	require.NoError(t, mock.FreeTlb(w.ID()))

	primaryErr := errors.New("transfer failed upstream")
	got := w.Release(primaryErr)
	require.NoError(t, got, "release error must not mask a pre-existing primary error")
}

func TestRelease_SurfacesFailureWhenNoPrimary(t *testing.T) {
	mock := driver.NewMockDriver()
	w, err := Acquire(mock, DefaultSize, UC)
	require.NoError(t, err)

	// Free the id out from under the window so the real Release call
	// observes a failure from the driver.
	require.NoError(t, mock.FreeTlb(w.ID()))

	err = w.Release(nil)
	require.Error(t, err)
}

func TestConfigure_Reaims(t *testing.T) {
	mock := driver.NewMockDriver()
	w, err := Acquire(mock, DefaultSize, WC)
	require.NoError(t, err)
	defer w.Release(nil)

	require.NoError(t, w.Configure(uapi.NewUnicastConfig(0x1000, 0, 1, 1)))
	require.NoError(t, w.Configure(uapi.NewUnicastConfig(0x2000, 0, 1, 1)))
	require.Equal(t, 2, mock.ConfigureCalls)
}
