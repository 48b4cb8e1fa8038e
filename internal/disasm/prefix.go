package disasm

import "fmt"

// Operands of the CB-prefixed opcodes, selected by the low three bits.
var prefixRegisters = [8]string{"b", "c", "d", "e", "h", "l", "[hl]", "a"}

// Rotate and shift operations, selected by bits 3-5 when bits 6-7 are zero.
var prefixShifts = [8]string{"rlc", "rrc", "rl", "rr", "sla", "sra", "swap", "srl"}

// Bit operations, selected by bits 6-7 when nonzero.
var prefixBitOps = [4]string{"", "bit", "res", "set"}

// PrefixText renders the CB-prefixed instruction selected by sub.
func PrefixText(sub byte) string {
	group, n, reg := sub>>6, sub>>3&7, prefixRegisters[sub&7]
	if group == 0 {
		return fmt.Sprintf("%s %s", prefixShifts[n], reg)
	}
	return fmt.Sprintf("%s %d, %s", prefixBitOps[group], n, reg)
}

func prefixCB() opcode {
	return opcode{1, func(_ *Session, _ int, args []byte) string {
		return PrefixText(args[0])
	}}
}
