// Package engine implements the NoC transfer algorithm: translating an
// arbitrary-length logical chip I/O into a sequence of bounded,
// aperture-aligned physical transfers through one TLB window.
package engine

import (
	"encoding/binary"

	"github.com/tenstorrent/go-noc/internal/constants"
	"github.com/tenstorrent/go-noc/internal/driver"
	"github.com/tenstorrent/go-noc/internal/errs"
	"github.com/tenstorrent/go-noc/internal/tlb"
	"github.com/tenstorrent/go-noc/internal/uapi"
)

// Request identifies the chip-side endpoint and starting address of a
// transfer: which NoC, which (x, y) coordinate, and the 64-bit chip
// address to start at.
type Request struct {
	NocID uint8
	X, Y  uint16
	Addr  uint64
}

// Chunk describes one configure-then-copy step the engine issued. It is
// exported so tests can assert P3/P4 (chunk coverage and aperture
// alignment) directly against the engine's own bookkeeping.
type Chunk struct {
	Aperture uint64
	Intra    uint64
	Size     uint64
}

// aperture masks a chip address down to its containing window-aligned
// aperture, and returns the intra-aperture offset alongside it.
func aperture(addr uint64) (ap, intra uint64) {
	ap = addr &^ (constants.WindowSize - 1)
	intra = addr & (constants.WindowSize - 1)
	return ap, intra
}

// TransferBlock drives a single WC TLB window through as many
// re-aims as needed to move the full length of buf between the host and
// [req.Addr, req.Addr+len(buf)). write selects the direction. It returns
// the chunk plan actually issued, for testing P3/P4, and frees/unmaps
// the window on every exit path.
func TransferBlock(drv driver.Driver, req Request, buf []byte, write bool) ([]Chunk, error) {
	if len(buf) == 0 {
		return nil, nil
	}

	window, err := tlb.Acquire(drv, tlb.DefaultSize, tlb.WC)
	if err != nil {
		return nil, err
	}

	chunks, err := runChunks(window, req, buf, write)
	releaseErr := window.Release(err)
	if err != nil {
		return chunks, err
	}
	return chunks, releaseErr
}

func runChunks(window *tlb.Window, req Request, buf []byte, write bool) ([]Chunk, error) {
	var chunks []Chunk

	cursor := req.Addr
	remaining := uint64(len(buf))
	bufOffset := uint64(0)
	mem := window.Mem()

	for remaining > 0 {
		ap, intra := aperture(cursor)
		room := uint64(constants.WindowSize) - intra
		size := remaining
		if size > room {
			size = room
		}

		cfg := uapi.NewUnicastConfig(ap, req.NocID, req.X, req.Y)
		if err := window.Configure(cfg); err != nil {
			return chunks, err
		}

		if write {
			copy(mem[intra:intra+size], buf[bufOffset:bufOffset+size])
		} else {
			copy(buf[bufOffset:bufOffset+size], mem[intra:intra+size])
		}

		chunks = append(chunks, Chunk{Aperture: ap, Intra: intra, Size: size})

		remaining -= size
		cursor += size
		bufOffset += size
	}

	return chunks, nil
}

// TransferWord performs a single 32-bit UC access at req.Addr: a read if
// value is nil, a write of *value otherwise. It enforces the explicit
// defensive intra-aperture bounds check, even though it cannot occur
// under the stated preconditions.
func TransferWord(drv driver.Driver, req Request, value *uint32) (uint32, error) {
	window, err := tlb.Acquire(drv, tlb.DefaultSize, tlb.UC)
	if err != nil {
		return 0, err
	}

	result, err := runWord(window, req, value)
	releaseErr := window.Release(err)
	if err != nil {
		return 0, err
	}
	return result, releaseErr
}

func runWord(window *tlb.Window, req Request, value *uint32) (uint32, error) {
	ap, intra := aperture(req.Addr)

	if intra+constants.WordSize > constants.WindowSize {
		return 0, errs.OutOfBounds("TransferWord", "4-byte access crosses aperture boundary")
	}

	cfg := uapi.NewUnicastConfig(ap, req.NocID, req.X, req.Y)
	if err := window.Configure(cfg); err != nil {
		return 0, err
	}

	mem := window.Mem()
	if value != nil {
		binary.LittleEndian.PutUint32(mem[intra:intra+4], *value)
		return *value, nil
	}
	return binary.LittleEndian.Uint32(mem[intra : intra+4]), nil
}
