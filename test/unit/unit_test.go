// +build !integration

package unit

import (
	"testing"

	noc "github.com/tenstorrent/go-noc"
	"github.com/tenstorrent/go-noc/internal/uapi"
)

// These tests run without requiring real Tenstorrent hardware.

func TestIoctlCommandLayout(t *testing.T) {
	const magic = uint(0xFA)
	if uapi.IoctlAllocateTlb != magic<<8|11 {
		t.Errorf("IoctlAllocateTlb = %#x, want %#x", uapi.IoctlAllocateTlb, magic<<8|11)
	}
	if uapi.IoctlFreeTlb != magic<<8|12 {
		t.Errorf("IoctlFreeTlb = %#x, want %#x", uapi.IoctlFreeTlb, magic<<8|12)
	}
	if uapi.IoctlConfigureTlb != magic<<8|13 {
		t.Errorf("IoctlConfigureTlb = %#x, want %#x", uapi.IoctlConfigureTlb, magic<<8|13)
	}
}

func TestDeviceInterfaceRoundTrip(t *testing.T) {
	mock := noc.NewMockDriver()
	dev := noc.NewMockDevice(mock, nil)
	defer dev.Close()

	if err := dev.NocWrite32(0, 1, 1, 0x1000, 0x12345678); err != nil {
		t.Fatalf("NocWrite32: %v", err)
	}
	got, err := dev.NocRead32(0, 1, 1, 0x1000)
	if err != nil {
		t.Fatalf("NocRead32: %v", err)
	}
	if got != 0x12345678 {
		t.Errorf("NocRead32 = %#x, want %#x", got, 0x12345678)
	}
}

func TestDeviceRejectsMisalignedAddress(t *testing.T) {
	mock := noc.NewMockDriver()
	dev := noc.NewMockDevice(mock, nil)
	defer dev.Close()

	_, err := dev.NocRead32(0, 0, 0, 1)
	if err == nil {
		t.Fatal("expected InvalidArgument for misaligned address")
	}
	if !noc.IsCode(err, noc.ErrCodeInvalidArgument) {
		t.Errorf("got error %v, want InvalidArgument", err)
	}
	if mock.AllocateCalls != 0 {
		t.Errorf("rejected operation issued %d allocate calls, want 0", mock.AllocateCalls)
	}
}

func TestClosedDeviceRejectsOperations(t *testing.T) {
	mock := noc.NewMockDriver()
	dev := noc.NewMockDevice(mock, nil)
	if err := dev.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	_, err := dev.NocRead32(0, 0, 0, 0)
	if !noc.IsCode(err, noc.ErrCodeNotOpen) {
		t.Errorf("got error %v, want NotOpen", err)
	}
}
