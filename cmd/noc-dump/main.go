// Command noc-dump reads or writes chip memory through a Tenstorrent
// character device from the command line, for poking at a board
// without writing a Go program.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tenstorrent/go-noc"
	"github.com/tenstorrent/go-noc/internal/logging"
)

func main() {
	var (
		devicePath = flag.String("device", "/dev/tenstorrent/0", "character device path")
		nocID      = flag.Uint("noc", 0, "NoC id (0 or 1)")
		x          = flag.Uint("x", 0, "target x coordinate")
		y          = flag.Uint("y", 0, "target y coordinate")
		addrStr    = flag.String("addr", "0x0", "chip-side address, hex or decimal")
		size       = flag.Uint("size", 4, "read size in bytes (ignored for -write)")
		writeHex   = flag.String("write", "", "hex bytes to write instead of reading")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logging.SetDefault(logging.NewLogger(logConfig))

	addr, err := parseAddr(*addrStr)
	if err != nil {
		log.Fatalf("invalid -addr %q: %v", *addrStr, err)
	}

	dev, err := noc.Open(*devicePath, nil)
	if err != nil {
		log.Fatalf("open %s: %v", *devicePath, err)
	}
	defer dev.Close()

	if *writeHex != "" {
		buf, err := hex.DecodeString(strings.TrimPrefix(*writeHex, "0x"))
		if err != nil {
			log.Fatalf("invalid -write hex: %v", err)
		}
		if len(buf) == 4 {
			v := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
			if err := dev.NocWrite32(uint8(*nocID), uint16(*x), uint16(*y), addr, v); err != nil {
				log.Fatalf("write32: %v", err)
			}
			fmt.Printf("wrote 4 bytes to noc%d (%d,%d) @ 0x%x\n", *nocID, *x, *y, addr)
			return
		}
		if err := dev.NocWrite(uint8(*nocID), uint16(*x), uint16(*y), addr, buf); err != nil {
			log.Fatalf("write: %v", err)
		}
		fmt.Printf("wrote %d bytes to noc%d (%d,%d) @ 0x%x\n", len(buf), *nocID, *x, *y, addr)
		return
	}

	if *size == 4 {
		v, err := dev.NocRead32(uint8(*nocID), uint16(*x), uint16(*y), addr)
		if err != nil {
			log.Fatalf("read32: %v", err)
		}
		fmt.Printf("0x%08x\n", v)
		return
	}

	buf, err := dev.NocRead(uint8(*nocID), uint16(*x), uint16(*y), addr, uint64(*size))
	if err != nil {
		log.Fatalf("read: %v", err)
	}
	fmt.Println(hex.Dump(buf))

	if snap := dev.Metrics().Snapshot(); *verbose {
		fmt.Fprintf(os.Stderr, "ops: %d read, %d write, avg latency %dns\n",
			snap.ReadOps, snap.WriteOps, snap.AvgLatencyNs)
	}
}

func parseAddr(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}
