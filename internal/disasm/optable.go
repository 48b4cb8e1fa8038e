package disasm

import "fmt"

// decodeFunc renders the instruction at pc given its operand bytes. Control
// transfer decoders register their targets on the session.
type decodeFunc func(s *Session, pc int, args []byte) string

type opcode struct {
	width  int // operand bytes following the opcode
	decode decodeFunc
}

// Width returns the operand byte count of the primary opcode code.
func Width(code byte) int {
	return opcodes[code].width
}

func op0(text string) opcode {
	return opcode{0, func(*Session, int, []byte) string { return text }}
}

func op8(format string) opcode {
	return opcode{1, func(_ *Session, _ int, args []byte) string {
		return fmt.Sprintf(format, U8(args[0]))
	}}
}

func op8s(format string, plus bool) opcode {
	return opcode{1, func(_ *Session, _ int, args []byte) string {
		return fmt.Sprintf(format, S8(args[0], plus))
	}}
}

func op16(format string) opcode {
	return opcode{2, func(_ *Session, _ int, args []byte) string {
		return fmt.Sprintf(format, U16LE(args[0], args[1]))
	}}
}

// illegal opcodes have no instruction and are emitted as a single data byte.
func illegal(code byte) opcode {
	return op0(DataDirective([]byte{code}))
}

func ret(text string) opcode {
	return opcode{0, func(s *Session, _ int, _ []byte) string {
		s.terminate = true
		return text
	}}
}

func jr(cond string) opcode {
	return opcode{1, func(s *Session, pc int, args []byte) string {
		target := pc + 2 + signed(args[0])
		if target < 0 {
			target += 0x10000
		}
		return s.branch("jr", cond, target)
	}}
}

func jp(cond string) opcode {
	return opcode{2, func(s *Session, _ int, args []byte) string {
		return s.branch("jp", cond, word(args[0], args[1]))
	}}
}

func call(cond string) opcode {
	return opcode{2, func(s *Session, _ int, args []byte) string {
		return s.target("call", cond, word(args[0], args[1]))
	}}
}

func ldhStore() opcode {
	return opcode{1, func(_ *Session, _ int, args []byte) string {
		return fmt.Sprintf("ld [%s], a", HighRAM(args[0]))
	}}
}

func ldhLoad() opcode {
	return opcode{1, func(_ *Session, _ int, args []byte) string {
		return fmt.Sprintf("ld a, [%s]", HighRAM(args[0]))
	}}
}

var opcodes = [256]opcode{
	0x00: op0("nop"),
	0x01: op16("ld bc, %s"),
	0x02: op0("ld [bc], a"),
	0x03: op0("inc bc"),
	0x04: op0("inc b"),
	0x05: op0("dec b"),
	0x06: op8("ld b, %s"),
	0x07: op0("rlca"),
	0x08: op16("ld [%s], sp"),
	0x09: op0("add hl, bc"),
	0x0a: op0("ld a, [bc]"),
	0x0b: op0("dec bc"),
	0x0c: op0("inc c"),
	0x0d: op0("dec c"),
	0x0e: op8("ld c, %s"),
	0x0f: op0("rrca"),
	0x10: op0("stop"),
	0x11: op16("ld de, %s"),
	0x12: op0("ld [de], a"),
	0x13: op0("inc de"),
	0x14: op0("inc d"),
	0x15: op0("dec d"),
	0x16: op8("ld d, %s"),
	0x17: op0("rla"),
	0x18: jr(""),
	0x19: op0("add hl, de"),
	0x1a: op0("ld a, [de]"),
	0x1b: op0("dec de"),
	0x1c: op0("inc e"),
	0x1d: op0("dec e"),
	0x1e: op8("ld e, %s"),
	0x1f: op0("rra"),
	0x20: jr("nz"),
	0x21: op16("ld hl, %s"),
	0x22: op0("ld [hli], a"),
	0x23: op0("inc hl"),
	0x24: op0("inc h"),
	0x25: op0("dec h"),
	0x26: op8("ld h, %s"),
	0x27: op0("daa"),
	0x28: jr("z"),
	0x29: op0("add hl, hl"),
	0x2a: op0("ld a, [hli]"),
	0x2b: op0("dec hl"),
	0x2c: op0("inc l"),
	0x2d: op0("dec l"),
	0x2e: op8("ld l, %s"),
	0x2f: op0("cpl"),
	0x30: jr("nc"),
	0x31: op16("ld sp, %s"),
	0x32: op0("ld [hld], a"),
	0x33: op0("inc sp"),
	0x34: op0("inc [hl]"),
	0x35: op0("dec [hl]"),
	0x36: op8("ld [hl], %s"),
	0x37: op0("scf"),
	0x38: jr("c"),
	0x39: op0("add hl, sp"),
	0x3a: op0("ld a, [hld]"),
	0x3b: op0("dec sp"),
	0x3c: op0("inc a"),
	0x3d: op0("dec a"),
	0x3e: op8("ld a, %s"),
	0x3f: op0("ccf"),
	0x40: op0("ld b, b"),
	0x41: op0("ld b, c"),
	0x42: op0("ld b, d"),
	0x43: op0("ld b, e"),
	0x44: op0("ld b, h"),
	0x45: op0("ld b, l"),
	0x46: op0("ld b, [hl]"),
	0x47: op0("ld b, a"),
	0x48: op0("ld c, b"),
	0x49: op0("ld c, c"),
	0x4a: op0("ld c, d"),
	0x4b: op0("ld c, e"),
	0x4c: op0("ld c, h"),
	0x4d: op0("ld c, l"),
	0x4e: op0("ld c, [hl]"),
	0x4f: op0("ld c, a"),
	0x50: op0("ld d, b"),
	0x51: op0("ld d, c"),
	0x52: op0("ld d, d"),
	0x53: op0("ld d, e"),
	0x54: op0("ld d, h"),
	0x55: op0("ld d, l"),
	0x56: op0("ld d, [hl]"),
	0x57: op0("ld d, a"),
	0x58: op0("ld e, b"),
	0x59: op0("ld e, c"),
	0x5a: op0("ld e, d"),
	0x5b: op0("ld e, e"),
	0x5c: op0("ld e, h"),
	0x5d: op0("ld e, l"),
	0x5e: op0("ld e, [hl]"),
	0x5f: op0("ld e, a"),
	0x60: op0("ld h, b"),
	0x61: op0("ld h, c"),
	0x62: op0("ld h, d"),
	0x63: op0("ld h, e"),
	0x64: op0("ld h, h"),
	0x65: op0("ld h, l"),
	0x66: op0("ld h, [hl]"),
	0x67: op0("ld h, a"),
	0x68: op0("ld l, b"),
	0x69: op0("ld l, c"),
	0x6a: op0("ld l, d"),
	0x6b: op0("ld l, e"),
	0x6c: op0("ld l, h"),
	0x6d: op0("ld l, l"),
	0x6e: op0("ld l, [hl]"),
	0x6f: op0("ld l, a"),
	0x70: op0("ld [hl], b"),
	0x71: op0("ld [hl], c"),
	0x72: op0("ld [hl], d"),
	0x73: op0("ld [hl], e"),
	0x74: op0("ld [hl], h"),
	0x75: op0("ld [hl], l"),
	0x76: op0("halt"),
	0x77: op0("ld [hl], a"),
	0x78: op0("ld a, b"),
	0x79: op0("ld a, c"),
	0x7a: op0("ld a, d"),
	0x7b: op0("ld a, e"),
	0x7c: op0("ld a, h"),
	0x7d: op0("ld a, l"),
	0x7e: op0("ld a, [hl]"),
	0x7f: op0("ld a, a"),
	0x80: op0("add b"),
	0x81: op0("add c"),
	0x82: op0("add d"),
	0x83: op0("add e"),
	0x84: op0("add h"),
	0x85: op0("add l"),
	0x86: op0("add [hl]"),
	0x87: op0("add a"),
	0x88: op0("adc b"),
	0x89: op0("adc c"),
	0x8a: op0("adc d"),
	0x8b: op0("adc e"),
	0x8c: op0("adc h"),
	0x8d: op0("adc l"),
	0x8e: op0("adc [hl]"),
	0x8f: op0("adc a"),
	0x90: op0("sub b"),
	0x91: op0("sub c"),
	0x92: op0("sub d"),
	0x93: op0("sub e"),
	0x94: op0("sub h"),
	0x95: op0("sub l"),
	0x96: op0("sub [hl]"),
	0x97: op0("sub a"),
	0x98: op0("sbc b"),
	0x99: op0("sbc c"),
	0x9a: op0("sbc d"),
	0x9b: op0("sbc e"),
	0x9c: op0("sbc h"),
	0x9d: op0("sbc l"),
	0x9e: op0("sbc [hl]"),
	0x9f: op0("sbc a"),
	0xa0: op0("and b"),
	0xa1: op0("and c"),
	0xa2: op0("and d"),
	0xa3: op0("and e"),
	0xa4: op0("and h"),
	0xa5: op0("and l"),
	0xa6: op0("and [hl]"),
	0xa7: op0("and a"),
	0xa8: op0("xor b"),
	0xa9: op0("xor c"),
	0xaa: op0("xor d"),
	0xab: op0("xor e"),
	0xac: op0("xor h"),
	0xad: op0("xor l"),
	0xae: op0("xor [hl]"),
	0xaf: op0("xor a"),
	0xb0: op0("or b"),
	0xb1: op0("or c"),
	0xb2: op0("or d"),
	0xb3: op0("or e"),
	0xb4: op0("or h"),
	0xb5: op0("or l"),
	0xb6: op0("or [hl]"),
	0xb7: op0("or a"),
	0xb8: op0("cp b"),
	0xb9: op0("cp c"),
	0xba: op0("cp d"),
	0xbb: op0("cp e"),
	0xbc: op0("cp h"),
	0xbd: op0("cp l"),
	0xbe: op0("cp [hl]"),
	0xbf: op0("cp a"),
	0xc0: op0("ret nz"),
	0xc1: op0("pop bc"),
	0xc2: jp("nz"),
	0xc3: jp(""),
	0xc4: call("nz"),
	0xc5: op0("push bc"),
	0xc6: op8("add %s"),
	0xc7: op0("rst $0"),
	0xc8: op0("ret z"),
	0xc9: ret("ret"),
	0xca: jp("z"),
	0xcb: prefixCB(),
	0xcc: call("z"),
	0xcd: call(""),
	0xce: op8("adc %s"),
	0xcf: op0("rst $8"),
	0xd0: op0("ret nc"),
	0xd1: op0("pop de"),
	0xd2: jp("nc"),
	0xd3: illegal(0xd3),
	0xd4: call("nc"),
	0xd5: op0("push de"),
	0xd6: op8("sub %s"),
	0xd7: op0("rst $10"),
	0xd8: op0("ret c"),
	0xd9: op0("reti"),
	0xda: jp("c"),
	0xdb: illegal(0xdb),
	0xdc: call("c"),
	0xdd: illegal(0xdd),
	0xde: op8("sbc %s"),
	0xdf: op0("rst $18"),
	0xe0: ldhStore(),
	0xe1: op0("pop hl"),
	0xe2: op0("ld [$ff00+c], a"),
	0xe3: illegal(0xe3),
	0xe4: illegal(0xe4),
	0xe5: op0("push hl"),
	0xe6: op8("and %s"),
	0xe7: op0("rst $20"),
	0xe8: op8s("add sp, %s", false),
	0xe9: ret("jp hl"),
	0xea: op16("ld [%s], a"),
	0xeb: illegal(0xeb),
	0xec: illegal(0xec),
	0xed: illegal(0xed),
	0xee: op8("xor %s"),
	0xef: op0("rst $28"),
	0xf0: ldhLoad(),
	0xf1: op0("pop af"),
	0xf2: op0("ld a, [$ff00+c]"),
	0xf3: op0("di"),
	0xf4: illegal(0xf4),
	0xf5: op0("push af"),
	0xf6: op8("or %s"),
	0xf7: op0("rst $30"),
	0xf8: op8s("ld hl, sp%s", true),
	0xf9: op0("ld sp, hl"),
	0xfa: op16("ld a, [%s]"),
	0xfb: op0("ei"),
	0xfc: illegal(0xfc),
	0xfd: illegal(0xfd),
	0xfe: op8("cp %s"),
	0xff: op0("rst $38"),
}
