package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperandFormatters(t *testing.T) {
	assert.Equal(t, "$00", U8(0x00))
	assert.Equal(t, "$ff", U8(0xff))

	assert.Equal(t, "$7f", S8(0x7f, false))
	assert.Equal(t, "+$7f", S8(0x7f, true))
	assert.Equal(t, "-$80", S8(0x80, false))
	assert.Equal(t, "-$1", S8(0xff, true))
	assert.Equal(t, "+$0", S8(0x00, true))

	assert.Equal(t, "$1234", U16LE(0x34, 0x12))
	assert.Equal(t, "$0001", U16LE(0x01, 0x00))
}

func TestHighRAM(t *testing.T) {
	assert.Equal(t, "rJOYP", HighRAM(0x00))
	assert.Equal(t, "rNR52", HighRAM(0x26))
	assert.Equal(t, "rWave_a", HighRAM(0x3a))
	assert.Equal(t, "rSVBK", HighRAM(0x70))
	assert.Equal(t, "$ff03", HighRAM(0x03))
	assert.Equal(t, "$fffe", HighRAM(0xfe))
	assert.Equal(t, "rIE", HighRAM(0xff))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "000150", FormatAddress(0x150))
	assert.Equal(t, "c3 50 01", FormatBytes([]byte{0xc3, 0x50, 0x01}))
	assert.Equal(t, "db $01, $02", DataDirective([]byte{0x01, 0x02}))
}
