package disasm

import (
	"fmt"
	"strings"
)

// signed sign-extends an 8-bit two's complement value.
func signed(b byte) int {
	return int(int8(b))
}

// U8 renders an unsigned byte as $xx.
func U8(b byte) string {
	return fmt.Sprintf("$%02x", b)
}

// S8 renders a signed byte as $x or -$x. With plus set, non-negative values
// get a leading '+'.
func S8(b byte, plus bool) string {
	v := signed(b)
	switch {
	case v < 0:
		return fmt.Sprintf("-$%x", -v)
	case plus:
		return fmt.Sprintf("+$%x", v)
	default:
		return fmt.Sprintf("$%x", v)
	}
}

// U16LE renders a little-endian word as $hhhh.
func U16LE(lo, hi byte) string {
	return fmt.Sprintf("$%04x", word(lo, hi))
}

func word(lo, hi byte) int {
	return int(hi)<<8 | int(lo)
}

// FormatAddress renders a listing address comment.
func FormatAddress(addr int) string {
	return fmt.Sprintf("%06x", addr)
}

// FormatBytes renders raw bytes as space separated hex pairs.
func FormatBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02x", v)
	}
	return strings.Join(parts, " ")
}

// DataDirective renders b as a db declaration.
func DataDirective(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = U8(v)
	}
	return "db " + strings.Join(parts, ", ")
}
