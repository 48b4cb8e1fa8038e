package disasm

import "fmt"

// hwRegisters names the known I/O registers in the $ff00 page, keyed by
// the low byte of the address.
var hwRegisters = map[byte]string{
	0x00: "rJOYP",
	0x01: "rSB",
	0x02: "rSC",
	0x04: "rDIV",
	0x05: "rTIMA",
	0x06: "rTMA",
	0x07: "rTAC",
	0x0f: "rIF",
	0x10: "rNR10",
	0x11: "rNR11",
	0x12: "rNR12",
	0x13: "rNR13",
	0x14: "rNR14",
	0x15: "rNR20",
	0x16: "rNR21",
	0x17: "rNR22",
	0x18: "rNR23",
	0x19: "rNR24",
	0x1a: "rNR30",
	0x1b: "rNR31",
	0x1c: "rNR32",
	0x1d: "rNR33",
	0x1e: "rNR34",
	0x1f: "rNR40",
	0x20: "rNR41",
	0x21: "rNR42",
	0x22: "rNR43",
	0x23: "rNR44",
	0x24: "rNR50",
	0x25: "rNR51",
	0x26: "rNR52",
	0x30: "rWave_0",
	0x31: "rWave_1",
	0x32: "rWave_2",
	0x33: "rWave_3",
	0x34: "rWave_4",
	0x35: "rWave_5",
	0x36: "rWave_6",
	0x37: "rWave_7",
	0x38: "rWave_8",
	0x39: "rWave_9",
	0x3a: "rWave_a",
	0x3b: "rWave_b",
	0x3c: "rWave_c",
	0x3d: "rWave_d",
	0x3e: "rWave_e",
	0x3f: "rWave_f",
	0x40: "rLCDC",
	0x41: "rSTAT",
	0x42: "rSCY",
	0x43: "rSCX",
	0x44: "rLY",
	0x45: "rLYC",
	0x46: "rDMA",
	0x47: "rBGP",
	0x48: "rOBP0",
	0x49: "rOBP1",
	0x4a: "rWY",
	0x4b: "rWX",
	0x4c: "rLCDMODE",
	0x4d: "rKEY1",
	0x4f: "rVBK",
	0x50: "rBLCK",
	0x51: "rHDMA1",
	0x52: "rHDMA2",
	0x53: "rHDMA3",
	0x54: "rHDMA4",
	0x55: "rHDMA5",
	0x56: "rRP",
	0x68: "rBGPI",
	0x69: "rBGPD",
	0x6a: "rOBPI",
	0x6b: "rOBPD",
	0x6c: "rUNKNOWN1",
	0x70: "rSVBK",
	0x72: "rUNKNOWN2",
	0x73: "rUNKNOWN3",
	0x74: "rUNKNOWN4",
	0x75: "rUNKNOWN5",
	0x76: "rUNKNOWN6",
	0x77: "rUNKNOWN7",
	0xff: "rIE",
}

// HighRAM returns the symbolic name of $ff00+off, or the literal $ffxx
// address when the register is unnamed.
func HighRAM(off byte) string {
	if name, ok := hwRegisters[off]; ok {
		return name
	}
	return fmt.Sprintf("$ff%02x", off)
}
