package noc

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDevice() (*Device, *MockDriver) {
	mock := NewMockDriver()
	return NewMockDevice(mock, nil), mock
}

// Scenario 1: write32 then read32 returns the value, with one allocate,
// one free, and one UC configure per operation (two of each in all).
func TestScenario1_Word(t *testing.T) {
	dev, mock := newTestDevice()

	require.NoError(t, dev.NocWrite32(0, 8, 3, 0x4000_3000_0000, 0xBEEFCAFE))
	got, err := dev.NocRead32(0, 8, 3, 0x4000_3000_0000)
	require.NoError(t, err)
	require.Equal(t, uint32(0xBEEFCAFE), got)

	require.Equal(t, 2, mock.AllocateCalls)
	require.Equal(t, 2, mock.FreeCalls)
	require.Equal(t, 2, mock.ConfigureCalls)
}

// Scenario 2: a multi-aperture block write starting 8 bytes into an
// aperture issues one configure per aperture it touches (size/WindowSize+1)
// under one allocate/free, and a subsequent read returns the same bytes.
func TestScenario2_LargeBlock(t *testing.T) {
	dev, mock := newTestDevice()

	const size = 8 << 20 // scaled down from 256 MiB for test speed; still multi-aperture
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = byte(i)
	}

	require.NoError(t, dev.NocWrite(0, 8, 3, 0x4000_4000_0008, buf))
	require.Equal(t, 1, mock.AllocateCalls)
	require.Equal(t, 1, mock.FreeCalls)
	require.Equal(t, size/WindowSize+1, mock.ConfigureCalls)

	mock2AllocBefore := mock.AllocateCalls
	got, err := dev.NocRead(0, 8, 3, 0x4000_4000_0008, uint64(size))
	require.NoError(t, err)
	require.Equal(t, buf, got)
	require.Equal(t, mock2AllocBefore+1, mock.AllocateCalls)
}

// Scenario 3: a 4-byte read entirely within one aperture issues one
// allocate and one configure.
func TestScenario3_SmallReadSingleAperture(t *testing.T) {
	dev, mock := newTestDevice()

	_, err := dev.NocRead(0, 2, 11, 0xFFB2_0148, 4)
	require.NoError(t, err)
	require.Equal(t, 1, mock.AllocateCalls)
	require.Equal(t, 1, mock.ConfigureCalls)
	require.Equal(t, 1, mock.FreeCalls)
}

// Scenario 4: a misaligned address is rejected before touching the
// driver.
func TestScenario4_MisalignedAddrRejected(t *testing.T) {
	dev, mock := newTestDevice()

	err := dev.NocWrite32(0, 0, 0, 0x02, 1)
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeInvalidArgument))
	require.Zero(t, mock.AllocateCalls)
	require.Zero(t, mock.ConfigureCalls)
}

// Scenario 5: a failing ConfigureTlb still frees the allocated TLB id
// and surfaces IoctlFailed.
func TestScenario5_ConfigureFailureStillFrees(t *testing.T) {
	dev, mock := newTestDevice()
	mock.FailNextConfigure(syscall.EINVAL)

	err := dev.NocWrite32(0, 0, 0, 0x1000, 1)
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeIoctlFailed))
	require.Equal(t, 1, mock.AllocateCalls)
	require.Equal(t, 1, mock.FreeCalls)
}

// Scenario 6: a transfer crossing an aperture boundary mid-range
// produces two chunks, each landing in the right simulated aperture.
func TestScenario6_BoundaryCrossing(t *testing.T) {
	dev, mock := newTestDevice()

	addr := uint64(WindowSize - 8)
	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = byte(100 + i)
	}

	require.NoError(t, dev.NocWrite(0, 0, 0, addr, buf))
	require.Equal(t, 2, mock.ConfigureCalls)

	got, err := dev.NocRead(0, 0, 0, addr, 16)
	require.NoError(t, err)
	require.Equal(t, buf, got)
}

func TestDevice_NotOpenAfterClose(t *testing.T) {
	dev, _ := newTestDevice()
	require.NoError(t, dev.Close())

	_, err := dev.NocRead32(0, 0, 0, 0)
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeNotOpen))
}

func TestDevice_CloseIsIdempotent(t *testing.T) {
	dev, _ := newTestDevice()
	require.NoError(t, dev.Close())
	require.NoError(t, dev.Close())
}

func TestDevice_EmptyBlockOpsAreNoops(t *testing.T) {
	dev, mock := newTestDevice()

	n, err := dev.NocRead(0, 0, 0, 0, 0)
	require.NoError(t, err)
	require.Empty(t, n)

	require.NoError(t, dev.NocWrite(0, 0, 0, 0, nil))
	require.Zero(t, mock.AllocateCalls)
}

func TestDevice_SizeValidation(t *testing.T) {
	dev, _ := newTestDevice()

	_, err := dev.NocRead(0, 0, 0, 0, 3)
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeInvalidArgument))

	err = dev.NocWrite(0, 0, 0, 0, []byte{1, 2, 3})
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeInvalidArgument))
}

func TestOpen_DeviceNotFound(t *testing.T) {
	_, err := Open("/dev/tenstorrent/does-not-exist-12345", nil)
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, ErrCodeDeviceNotFound, e.Code)
}
