package disasm

import (
	"fmt"
	"log/slog"
)

// Instruction is a decoded instruction keyed by its start address.
type Instruction struct {
	Addr  int
	Text  string // rendered mnemonic, or a db directive when truncated
	Bytes []byte // opcode and operand bytes actually consumed
	// Truncated is set when the operands ran past the end of the image and
	// the available bytes were emitted as data instead.
	Truncated bool
}

// Stats summarises a completed run.
type Stats struct {
	Instructions int
	Truncated    int
	DataBytes    int
	Labels       int
	Steps        int
}

// Session holds the state of a single disassembly of one image.
type Session struct {
	image  *Image
	region *Region
	labels *Labels
	work   *WorkList
	insts  map[int]*Instruction
	logger *slog.Logger

	entry     int
	terminate bool
	steps     int
}

// Option configures a Session.
type Option func(*Session)

// WithEntryPoint sets the program entry point. The default is 0.
func WithEntryPoint(addr int) Option {
	return func(s *Session) { s.entry = addr }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a session over img. The entry point is labelled and queued.
func New(img *Image, opts ...Option) *Session {
	s := &Session{
		image:  img,
		region: NewRegion(img.Size()),
		labels: newLabels(),
		work:   newWorkList(),
		insts:  make(map[int]*Instruction),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.labels.Add(s.entry, EntryLabel)
	s.work.Push(s.entry)
	return s
}

// AddSymbol attaches an explicit label to addr and queues it for
// exploration. It must be called before Run.
func (s *Session) AddSymbol(addr int, name string) {
	s.labels.Add(addr, name)
	s.work.Push(addr)
}

// EntryPoint returns the configured entry point.
func (s *Session) EntryPoint() int { return s.entry }

// Image returns the image being disassembled.
func (s *Session) Image() *Image { return s.image }

// Labels returns the label table.
func (s *Session) Labels() *Labels { return s.labels }

// Region returns the undecoded region tracker.
func (s *Session) Region() *Region { return s.region }

// Instruction returns the instruction starting at addr.
func (s *Session) Instruction(addr int) (*Instruction, bool) {
	inst, ok := s.insts[addr]
	return inst, ok
}

// Run explores every queued address until the work-list is empty.
func (s *Session) Run() {
	for {
		pc, ok := s.work.Pop()
		if !ok {
			break
		}
		if !s.region.IsUndecoded(pc) {
			continue
		}
		s.run(pc)
	}
	s.logger.Debug("disassembly complete",
		"steps", s.steps,
		"instructions", len(s.insts),
		"data_bytes", s.region.Remaining())
}

// run decodes a linear instruction sequence starting at pc. It stops at an
// address already claimed, at the end of the image, or after an
// unconditional control transfer.
func (s *Session) run(pc int) {
	s.terminate = false
	start, size := pc, s.image.Size()

	for pc < size {
		if !s.region.IsUndecoded(pc) {
			break
		}
		code := s.image.At(pc)
		op := opcodes[code]

		inst := &Instruction{Addr: pc}
		if pc+op.width < size {
			inst.Bytes = s.image.Slice(pc, pc+1+op.width)
			inst.Text = op.decode(s, pc, inst.Bytes[1:])
		} else {
			inst.Bytes = s.image.Slice(pc, size)
			inst.Text = DataDirective(inst.Bytes)
			inst.Truncated = true
		}
		s.insts[pc] = inst
		s.region.MarkConsumed(pc, len(inst.Bytes)-1)
		s.steps++

		if s.terminate {
			break
		}
		pc += 1 + op.width
	}

	s.logger.Debug("run finished", "start", fmt.Sprintf("%06x", start), "end", fmt.Sprintf("%06x", pc))
}

// branch registers target and ends the current run when cond is empty.
func (s *Session) branch(op, cond string, target int) string {
	if cond == "" {
		s.terminate = true
	}
	return s.target(op, cond, target)
}

// target queues a control transfer destination and renders the instruction
// against its canonical label.
func (s *Session) target(op, cond string, target int) string {
	s.work.Push(target)
	label := s.labels.Ensure(target)
	if cond != "" {
		return fmt.Sprintf("%s %s, %s", op, cond, label)
	}
	return fmt.Sprintf("%s %s", op, label)
}

// Stats returns counters for the run so far.
func (s *Session) Stats() Stats {
	st := Stats{
		DataBytes: s.region.Remaining(),
		Labels:    s.labels.Len(),
		Steps:     s.steps,
	}
	for _, inst := range s.insts {
		if inst.Truncated {
			st.Truncated++
		} else {
			st.Instructions++
		}
	}
	return st
}
