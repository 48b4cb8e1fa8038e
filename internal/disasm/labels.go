package disasm

import (
	"fmt"
	"sort"
)

// EntryLabel names the program entry point.
const EntryLabel = "ENTRY_POINT"

// DefaultLabel returns the generated label name for a branch target.
func DefaultLabel(addr int) string {
	return fmt.Sprintf("Function%04x", addr)
}

// Labels maps addresses to their label names. The first name added for an
// address is its canonical name.
type Labels struct {
	names map[int][]string
}

func newLabels() *Labels {
	return &Labels{names: make(map[int][]string)}
}

// Ensure returns the canonical label at addr, creating the default one if
// the address has none yet.
func (l *Labels) Ensure(addr int) string {
	if names := l.names[addr]; len(names) > 0 {
		return names[0]
	}
	name := DefaultLabel(addr)
	l.names[addr] = []string{name}
	return name
}

// Add attaches name to addr even when other labels already exist there.
// Adding the same name twice is a no-op.
func (l *Labels) Add(addr int, name string) {
	for _, n := range l.names[addr] {
		if n == name {
			return
		}
	}
	l.names[addr] = append(l.names[addr], name)
}

// At returns the labels at addr in insertion order.
func (l *Labels) At(addr int) []string {
	return l.names[addr]
}

// Canonical returns the first label at addr.
func (l *Labels) Canonical(addr int) (string, bool) {
	names := l.names[addr]
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// Len returns the total number of label names.
func (l *Labels) Len() int {
	n := 0
	for _, names := range l.names {
		n += len(names)
	}
	return n
}

// Addresses returns every labelled address in ascending order.
func (l *Labels) Addresses() []int {
	addrs := make([]int, 0, len(l.names))
	for a := range l.names {
		addrs = append(addrs, a)
	}
	sort.Ints(addrs)
	return addrs
}
