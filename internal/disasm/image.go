package disasm

// Image is a read-only ROM memory image addressed 0..Size()-1.
type Image struct {
	data []byte
}

// NewImage copies b into a new Image.
func NewImage(b []byte) *Image {
	data := make([]byte, len(b))
	copy(data, b)
	return &Image{data: data}
}

// Size returns the number of bytes in the image.
func (im *Image) Size() int { return len(im.data) }

// At returns the byte at addr. addr must be in range.
func (im *Image) At(addr int) byte { return im.data[addr] }

// Contains reports whether addr is a valid address.
func (im *Image) Contains(addr int) bool { return addr >= 0 && addr < len(im.data) }

// Slice returns the bytes in [start, end) clipped to the image.
func (im *Image) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(im.data) {
		end = len(im.data)
	}
	if start >= end {
		return nil
	}
	out := make([]byte, end-start)
	copy(out, im.data[start:end])
	return out
}
