package disasm

// Region tracks which addresses have not yet been claimed by a decoded
// instruction. Addresses only ever leave the set.
type Region struct {
	undecoded []bool
	remaining int
}

// NewRegion returns a Region with every address of an image of the given
// size still undecoded.
func NewRegion(size int) *Region {
	r := &Region{undecoded: make([]bool, size), remaining: size}
	for i := range r.undecoded {
		r.undecoded[i] = true
	}
	return r
}

// IsUndecoded reports whether addr is in range and not yet claimed.
func (r *Region) IsUndecoded(addr int) bool {
	return addr >= 0 && addr < len(r.undecoded) && r.undecoded[addr]
}

// MarkConsumed removes start..start+width inclusive from the set. Addresses
// outside the image or already claimed are skipped.
func (r *Region) MarkConsumed(start, width int) {
	for a := start; a <= start+width; a++ {
		if r.IsUndecoded(a) {
			r.undecoded[a] = false
			r.remaining--
		}
	}
}

// Remaining returns how many addresses are still undecoded.
func (r *Region) Remaining() int { return r.remaining }

// RunFrom returns the end (exclusive) of the contiguous undecoded run that
// starts at addr. It returns addr if addr itself is claimed.
func (r *Region) RunFrom(addr int) int {
	end := addr
	for r.IsUndecoded(end) {
		end++
	}
	return end
}
