// Package symfile reads rgbds-style symbol files: one "BB:OOOO Name" pair
// per line, bank and offset in hex.
package symfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// BankSize is the size of a switchable ROM bank.
const BankSize = 0x4000

var (
	ErrMalformed = errors.New("malformed symbol line")
	ErrBadBank   = errors.New("invalid bank")
	ErrBadOffset = errors.New("invalid offset")
)

// ParseError reports the line a symbol file failed on.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Symbol is a named banked address.
type Symbol struct {
	Bank   int
	Offset int
	Name   string
}

// Flat converts a banked address to a ROM file offset. Bank 0 and bank 1
// both start at file offset 0 since bank 1 is addressed from $4000.
func Flat(bank, offset int) int {
	if bank == 0 {
		return offset
	}
	return (bank-1)*BankSize + offset
}

// Addr returns the flat ROM address of the symbol.
func (s Symbol) Addr() int {
	return Flat(s.Bank, s.Offset)
}

// Parse reads every symbol from r. Blank lines and ';' comments are
// skipped.
func Parse(r io.Reader) ([]Symbol, error) {
	var syms []Symbol
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := sc.Text()
		line := text
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		sym, err := parseFields(fields)
		if err != nil {
			return nil, &ParseError{Line: n, Text: text, Err: err}
		}
		syms = append(syms, sym)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read symbols: %w", err)
	}
	return syms, nil
}

func parseFields(fields []string) (Symbol, error) {
	if len(fields) < 2 {
		return Symbol{}, ErrMalformed
	}
	bankStr, offStr, ok := strings.Cut(fields[0], ":")
	if !ok {
		return Symbol{}, ErrMalformed
	}
	bank, err := strconv.ParseUint(bankStr, 16, 16)
	if err != nil {
		return Symbol{}, ErrBadBank
	}
	off, err := strconv.ParseUint(offStr, 16, 16)
	if err != nil {
		return Symbol{}, ErrBadOffset
	}
	return Symbol{Bank: int(bank), Offset: int(off), Name: fields[1]}, nil
}

// Load parses the symbol file at path.
func Load(path string) ([]Symbol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols: %w", err)
	}
	defer f.Close()

	syms, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return syms, nil
}

// Locate returns the symbol file that sits next to romPath with the same
// base name, or "" if there is none.
func Locate(romPath string) string {
	base := strings.TrimSuffix(romPath, filepath.Ext(romPath))
	for _, ext := range []string{".sym", ".SYM"} {
		candidate := base + ext
		if candidate == romPath {
			continue
		}
		if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}
