package uapi

import "unsafe"

// AllocateTlb is the combined in/out argument for the allocate-TLB
// ioctl. Since the ioctl direction is NONE, the kernel reads Size and
// Reserved and writes ID and the two mmap offsets back into the same
// buffer.
//
//	struct tt_allocate_tlb {
//	  __u64 size;
//	  __u64 reserved;
//	  __u32 id;
//	  __u32 _r0;
//	  __u64 mmap_offset_uc;
//	  __u64 mmap_offset_wc;
//	  __u64 _r1;
//	};
type AllocateTlb struct {
	Size         uint64
	Reserved     uint64
	ID           uint32
	r0           uint32
	MmapOffsetUC uint64
	MmapOffsetWC uint64
	r1           uint64
}

// Compile-time size check: must be exactly 48 bytes.
var _ [48]byte = [unsafe.Sizeof(AllocateTlb{})]byte{}

// FreeTlb is the argument for the free-TLB ioctl.
//
//	struct tt_free_tlb {
//	  __u32 id;
//	  __u32 _r0;
//	};
type FreeTlb struct {
	ID uint32
	r0 uint32
}

// Compile-time size check: must be exactly 8 bytes.
var _ [8]byte = [unsafe.Sizeof(FreeTlb{})]byte{}

// NocTlbConfig is the value the driver consumes to point a TLB window at
// a chip-side (NoC, x, y, address) endpoint.
//
//	struct tt_noc_tlb_config {
//	  __u64 addr;
//	  __u16 x_end, y_end, x_start, y_start;
//	  __u8  noc, mcast, ordering, linked, static_vc;
//	  __u8  _r0[3];
//	  __u32 _r1[2];
//	};
type NocTlbConfig struct {
	Addr     uint64
	XEnd     uint16
	YEnd     uint16
	XStart   uint16
	YStart   uint16
	Noc      uint8
	Mcast    uint8
	Ordering uint8
	Linked   uint8
	StaticVC uint8
	r0       [3]uint8
	r1       [2]uint32
}

// Compile-time size check: must be exactly 32 bytes.
var _ [32]byte = [unsafe.Sizeof(NocTlbConfig{})]byte{}

// ConfigureTlb is the argument for the configure-TLB ioctl.
//
//	struct tt_configure_tlb {
//	  __u32 id;
//	  __u32 _r0;
//	  struct tt_noc_tlb_config config;
//	  __u64 _r1;
//	};
type ConfigureTlb struct {
	ID     uint32
	r0     uint32
	Config NocTlbConfig
	r1     uint64
}

// Compile-time size check: must be exactly 48 bytes.
var _ [48]byte = [unsafe.Sizeof(ConfigureTlb{})]byte{}
