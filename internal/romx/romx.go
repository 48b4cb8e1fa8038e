// Package romx opens Game Boy ROM files and reads their cartridge header.
package romx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"syscall"
)

const (
	headerStart    = 0x0134
	headerChecksum = 0x014d
	// HeaderEnd is the first address past the cartridge header.
	HeaderEnd = 0x0150
)

type Image struct {
	Path string
	All  []byte
	f    *os.File
	mmap bool
}

// Open maps the ROM at path read-only. Empty files are not mapped.
func Open(path string) (*Image, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open rom: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat rom: %w", err)
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("open rom: %s is not a regular file", path)
	}

	im := &Image{Path: path, f: f}
	if fi.Size() == 0 {
		im.All = []byte{}
		return im, nil
	}

	all, err := syscall.Mmap(int(f.Fd()), 0, int(fi.Size()), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap rom: %w", err)
	}
	im.All = all
	im.mmap = true
	return im, nil
}

// Close unmaps the memory and closes the underlying file.
func (im *Image) Close() error {
	var err1, err2 error
	if im.mmap && im.All != nil {
		err1 = syscall.Munmap(im.All)
	}
	im.All = nil
	im.mmap = false
	if im.f != nil {
		err2 = im.f.Close()
		im.f = nil
	}
	if err1 != nil {
		return err1
	}
	return err2
}

// Size returns the ROM length in bytes.
func (im *Image) Size() int { return len(im.All) }

// Digest returns the hex sha256 of the ROM contents.
func (im *Image) Digest() string {
	sum := sha256.Sum256(im.All)
	return hex.EncodeToString(sum[:])
}

// Header is the cartridge header at $0134-$014f.
type Header struct {
	Title          string
	CGB            byte
	SGB            byte
	CartridgeType  byte
	ROMSize        byte
	RAMSize        byte
	HeaderChecksum byte
	// ChecksumOK reports whether the stored header checksum matches the
	// header bytes.
	ChecksumOK bool
}

// Header parses the cartridge header. It returns false when the image is
// too short to hold one. Nothing is validated beyond computing the header
// checksum.
func (im *Image) Header() (Header, bool) {
	return ParseHeader(im.All)
}

// ParseHeader parses the cartridge header from raw ROM bytes.
func ParseHeader(rom []byte) (Header, bool) {
	if len(rom) < HeaderEnd {
		return Header{}, false
	}
	h := Header{
		Title:          title(rom[headerStart:0x0144]),
		CGB:            rom[0x0143],
		SGB:            rom[0x0146],
		CartridgeType:  rom[0x0147],
		ROMSize:        rom[0x0148],
		RAMSize:        rom[0x0149],
		HeaderChecksum: rom[headerChecksum],
	}
	var x byte
	for _, b := range rom[headerStart:headerChecksum] {
		x = x - b - 1
	}
	h.ChecksumOK = x == h.HeaderChecksum
	return h, true
}

// title decodes the NUL padded title, dropping the CGB flag when set.
func title(b []byte) string {
	if b[len(b)-1]&0x80 != 0 {
		b = b[:len(b)-1]
	}
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, string(b)))
}

// ROMBanks returns the number of 16 KiB banks encoded by the ROM size byte,
// or 0 for unknown codes.
func (h Header) ROMBanks() int {
	if h.ROMSize <= 8 {
		return 2 << h.ROMSize
	}
	return 0
}

var cartridgeTypes = map[byte]string{
	0x00: "ROM ONLY",
	0x01: "MBC1",
	0x02: "MBC1+RAM",
	0x03: "MBC1+RAM+BATTERY",
	0x05: "MBC2",
	0x06: "MBC2+BATTERY",
	0x08: "ROM+RAM",
	0x09: "ROM+RAM+BATTERY",
	0x0b: "MMM01",
	0x0c: "MMM01+RAM",
	0x0d: "MMM01+RAM+BATTERY",
	0x0f: "MBC3+TIMER+BATTERY",
	0x10: "MBC3+TIMER+RAM+BATTERY",
	0x11: "MBC3",
	0x12: "MBC3+RAM",
	0x13: "MBC3+RAM+BATTERY",
	0x19: "MBC5",
	0x1a: "MBC5+RAM",
	0x1b: "MBC5+RAM+BATTERY",
	0x1c: "MBC5+RUMBLE",
	0x1d: "MBC5+RUMBLE+RAM",
	0x1e: "MBC5+RUMBLE+RAM+BATTERY",
	0x20: "MBC6",
	0x22: "MBC7+SENSOR+RUMBLE+RAM+BATTERY",
	0xfc: "POCKET CAMERA",
	0xfd: "BANDAI TAMA5",
	0xfe: "HuC3",
	0xff: "HuC1+RAM+BATTERY",
}

// Cartridge returns the cartridge type name.
func (h Header) Cartridge() string {
	if name, ok := cartridgeTypes[h.CartridgeType]; ok {
		return name
	}
	return fmt.Sprintf("unknown ($%02x)", h.CartridgeType)
}
