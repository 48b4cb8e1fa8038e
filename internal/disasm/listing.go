package disasm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	// LineLength is the column at which the trailing comment starts.
	LineLength = 50
	// ChunkSize is the maximum number of bytes per data line.
	ChunkSize = 8
)

// LineKind classifies a listing line.
type LineKind int

const (
	LineLabel LineKind = iota
	LineInstruction
	LineData
)

var lineKindNames = [...]string{"label", "instruction", "data"}

func (k LineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return fmt.Sprintf("LineKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Line is one line of the listing.
type Line struct {
	Kind  LineKind
	Addr  int
	End   int    // last address covered, inclusive
	Text  string // label name, mnemonic or db directive
	Bytes []byte
}

// String formats the line as it appears in the text listing.
func (l Line) String() string {
	switch l.Kind {
	case LineLabel:
		return l.Text + ":"
	case LineInstruction:
		return fmt.Sprintf("\t%s%s; %s: %s", l.Text, pad(l.Text), FormatAddress(l.Addr), FormatBytes(l.Bytes))
	default:
		return fmt.Sprintf("\t%s%s; %s-%s", l.Text, pad(l.Text), FormatAddress(l.Addr), FormatAddress(l.End))
	}
}

func pad(text string) string {
	return strings.Repeat(" ", max(LineLength-len(text), 1))
}

// Lines walks the address space once and returns the ordered listing.
func (s *Session) Lines() []Line {
	var lines []Line
	size := s.image.Size()

	for pc := 0; pc < size; {
		for _, name := range s.labels.At(pc) {
			lines = append(lines, Line{Kind: LineLabel, Addr: pc, End: pc, Text: name})
		}

		if inst, ok := s.insts[pc]; ok {
			lines = append(lines, Line{
				Kind:  LineInstruction,
				Addr:  pc,
				End:   pc + len(inst.Bytes) - 1,
				Text:  inst.Text,
				Bytes: inst.Bytes,
			})
			pc++
			continue
		}

		if s.region.IsUndecoded(pc) {
			end := s.region.RunFrom(pc)
			for chunk := pc; chunk < end; chunk += ChunkSize {
				data := s.image.Slice(chunk, min(chunk+ChunkSize, end))
				lines = append(lines, Line{
					Kind:  LineData,
					Addr:  chunk,
					End:   chunk + len(data) - 1,
					Text:  DataDirective(data),
					Bytes: data,
				})
			}
			pc = end
			continue
		}

		// Inside an earlier instruction, or an orphaned label.
		pc++
	}
	return lines
}

// WriteListing writes the text listing to w.
func (s *Session) WriteListing(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range s.Lines() {
		if _, err := fmt.Fprintln(bw, line.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
