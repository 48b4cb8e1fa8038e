package disasm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disassemble(t *testing.T, rom []byte, opts ...Option) *Session {
	t.Helper()
	s := New(NewImage(rom), opts...)
	s.Run()
	return s
}

func TestJumpReusesEntryLabel(t *testing.T) {
	s := disassemble(t, []byte{0x00, 0xc3, 0x00, 0x00})

	assert.Equal(t, []string{EntryLabel}, s.Labels().At(0))

	nop, ok := s.Instruction(0)
	require.True(t, ok)
	assert.Equal(t, "nop", nop.Text)

	jump, ok := s.Instruction(1)
	require.True(t, ok)
	assert.Equal(t, "jp ENTRY_POINT", jump.Text)
	assert.Equal(t, []byte{0xc3, 0x00, 0x00}, jump.Bytes)

	assert.Equal(t, 1, s.Labels().Len())
	assert.Equal(t, 0, s.Region().Remaining())
}

func TestCallTargetIsExplored(t *testing.T) {
	s := disassemble(t, []byte{0xcd, 0x03, 0x00, 0xc9})

	call, ok := s.Instruction(0)
	require.True(t, ok)
	assert.Equal(t, "call Function0003", call.Text)

	ret, ok := s.Instruction(3)
	require.True(t, ok)
	assert.Equal(t, "ret", ret.Text)

	assert.Equal(t, []string{"Function0003"}, s.Labels().At(3))
	_, ok = s.Instruction(1)
	assert.False(t, ok)
}

func TestCallFallsThrough(t *testing.T) {
	// call $0005; nop; ret; ret
	s := disassemble(t, []byte{0xcd, 0x05, 0x00, 0x00, 0xc9, 0xc9})

	for _, addr := range []int{0, 3, 4, 5} {
		_, ok := s.Instruction(addr)
		assert.True(t, ok, "instruction at %d", addr)
	}
	assert.Equal(t, 0, s.Region().Remaining())
}

func TestTruncatedOperand(t *testing.T) {
	s := disassemble(t, []byte{0x06})

	inst, ok := s.Instruction(0)
	require.True(t, ok)
	assert.True(t, inst.Truncated)
	assert.Equal(t, "db $06", inst.Text)
	assert.Equal(t, []byte{0x06}, inst.Bytes)
}

func TestTruncatedWordOperand(t *testing.T) {
	// nop; ld bc with only one operand byte available
	s := disassemble(t, []byte{0x00, 0x01, 0x34})

	inst, ok := s.Instruction(1)
	require.True(t, ok)
	assert.Equal(t, "db $01, $34", inst.Text)
	assert.Equal(t, 1, s.Stats().Truncated)
	assert.Equal(t, 0, s.Region().Remaining())
}

func TestUnconditionalTransfersTerminate(t *testing.T) {
	tests := []struct {
		name string
		rom  []byte
		data int
	}{
		{"ret", []byte{0xc9, 0x00, 0x00}, 2},
		{"reti continues", []byte{0xd9, 0xaf, 0xc9}, 0},
		{"jp hl", []byte{0xe9, 0x00, 0x00}, 2},
		{"jr", []byte{0x18, 0x00, 0x00, 0x00}, 0}, // jr to next address
		{"jp", []byte{0xc3, 0x05, 0x00, 0x00, 0x00, 0xc9}, 2},
		{"ret nz continues", []byte{0xc0, 0x00, 0xc9}, 0},
		{"jr nz continues", []byte{0x20, 0x00, 0xc9}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := disassemble(t, tt.rom)
			assert.Equal(t, tt.data, s.Region().Remaining())
		})
	}
}

func TestReturnFromInterruptContinues(t *testing.T) {
	s := disassemble(t, []byte{0xd9, 0xaf, 0xc9})

	inst, ok := s.Instruction(1)
	require.True(t, ok)
	assert.Equal(t, "xor a", inst.Text)
	inst, ok = s.Instruction(2)
	require.True(t, ok)
	assert.Equal(t, "ret", inst.Text)
	assert.Equal(t, 0, s.Region().Remaining())
}

func TestRelativeBranchBeforeZeroWraps(t *testing.T) {
	// jr -4 from address 0 lands at -2
	s := disassemble(t, []byte{0x18, 0xfc})

	inst, ok := s.Instruction(0)
	require.True(t, ok)
	assert.Equal(t, "jr Functionfffe", inst.Text)
	assert.Equal(t, []string{"Functionfffe"}, s.Labels().At(0xfffe))
}

func TestRelativeBranchTarget(t *testing.T) {
	// nop; nop; jr -4 -> 0
	s := disassemble(t, []byte{0x00, 0x00, 0x18, 0xfc})

	inst, ok := s.Instruction(2)
	require.True(t, ok)
	assert.Equal(t, "jr ENTRY_POINT", inst.Text)
}

func TestConditionalBranchLabel(t *testing.T) {
	// jr z, +1; ret; ret
	s := disassemble(t, []byte{0x28, 0x01, 0xc9, 0xc9})

	inst, ok := s.Instruction(0)
	require.True(t, ok)
	assert.Equal(t, "jr z, Function0003", inst.Text)
	_, ok = s.Instruction(3)
	assert.True(t, ok)
}

func TestBranchOutsideImage(t *testing.T) {
	s := disassemble(t, []byte{0xc3, 0x00, 0x80})

	inst, ok := s.Instruction(0)
	require.True(t, ok)
	assert.Equal(t, "jp Function8000", inst.Text)
	assert.Equal(t, 0, s.Region().Remaining())
}

func TestSymbolsSeedExploration(t *testing.T) {
	rom := []byte{0xc9, 0x00, 0xaf, 0xc9}
	s := New(NewImage(rom))
	s.AddSymbol(2, "ClearA")
	s.Run()

	inst, ok := s.Instruction(2)
	require.True(t, ok)
	assert.Equal(t, "xor a", inst.Text)
	assert.Equal(t, []string{"ClearA"}, s.Labels().At(2))
	assert.Equal(t, 1, s.Region().Remaining())
}

func TestSymbolLabelWinsOverDefault(t *testing.T) {
	rom := []byte{0xcd, 0x03, 0x00, 0xc9}
	s := New(NewImage(rom))
	s.AddSymbol(3, "Done")
	s.Run()

	inst, _ := s.Instruction(0)
	assert.Equal(t, "call Done", inst.Text)
	assert.Equal(t, []string{"Done"}, s.Labels().At(3))
}

func TestEntryPointOption(t *testing.T) {
	s := disassemble(t, []byte{0xff, 0xff, 0xc9}, WithEntryPoint(2))

	assert.Equal(t, 2, s.EntryPoint())
	assert.Equal(t, []string{EntryLabel}, s.Labels().At(2))
	assert.Equal(t, 2, s.Region().Remaining())
}

func TestEntryPointBeyondImage(t *testing.T) {
	s := disassemble(t, []byte{0x00, 0x00}, WithEntryPoint(0x100))

	assert.Equal(t, 2, s.Region().Remaining())
	assert.Zero(t, s.Stats().Steps)
}

func TestOverlappingDecodeStarts(t *testing.T) {
	// jr $0004; ld bc, ...; jr $0002. The run from 2 reads its second
	// operand byte from the already claimed jr at 4.
	s := disassemble(t, []byte{0x18, 0x02, 0x01, 0x00, 0x18, 0xfc})

	jump, ok := s.Instruction(4)
	require.True(t, ok)
	assert.Equal(t, "jr Function0002", jump.Text)

	inner, ok := s.Instruction(2)
	require.True(t, ok)
	assert.Equal(t, "ld bc, $1800", inner.Text)
	assert.Equal(t, []byte{0x01, 0x00, 0x18}, inner.Bytes)
	assert.Equal(t, 0, s.Region().Remaining())
}

func TestCoverageAndTermination(t *testing.T) {
	rom := make([]byte, 0x400)
	for i := range rom {
		rom[i] = byte(i*37 + 11)
	}
	s := disassemble(t, rom)

	covered := make([]int, len(rom))
	for addr := range rom {
		if inst, ok := s.Instruction(addr); ok {
			for a := addr; a < addr+len(inst.Bytes); a++ {
				covered[a]++
			}
		}
	}
	for addr := range rom {
		if s.Region().IsUndecoded(addr) {
			assert.Zero(t, covered[addr], "undecoded address %04x is covered", addr)
		} else {
			assert.NotZero(t, covered[addr], "claimed address %04x is not covered", addr)
		}
	}

	st := s.Stats()
	assert.LessOrEqual(t, st.Steps, len(rom))
	assert.LessOrEqual(t, st.Instructions+st.Truncated+st.DataBytes, len(rom))
}

func TestInstructionWidthMatchesTable(t *testing.T) {
	rom := make([]byte, 0x300)
	for i := range rom {
		rom[i] = byte(i * 53)
	}
	s := disassemble(t, rom)

	for addr := range rom {
		inst, ok := s.Instruction(addr)
		if !ok {
			continue
		}
		if inst.Truncated {
			assert.Equal(t, len(rom)-addr, len(inst.Bytes))
			continue
		}
		assert.Equal(t, 1+Width(rom[addr]), len(inst.Bytes), "at %04x", addr)
	}
}

func TestDeterministicListing(t *testing.T) {
	rom := make([]byte, 0x200)
	for i := range rom {
		rom[i] = byte(i*91 + 7)
	}

	render := func() []byte {
		s := New(NewImage(rom))
		s.AddSymbol(0x40, "VBlank")
		s.AddSymbol(0x100, "Start")
		s.Run()
		var buf bytes.Buffer
		require.NoError(t, s.WriteListing(&buf))
		return buf.Bytes()
	}

	assert.Equal(t, render(), render())
}

func TestDefaultLabelsAreUnique(t *testing.T) {
	// Two calls to the same target produce one label.
	rom := []byte{0xcd, 0x06, 0x00, 0xcd, 0x06, 0x00, 0xc9}
	s := disassemble(t, rom)

	assert.Equal(t, []string{"Function0006"}, s.Labels().At(6))
	assert.Equal(t, 2, s.Labels().Len())
}
