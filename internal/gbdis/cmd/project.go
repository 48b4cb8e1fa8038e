package cmd

import (
	"fmt"
	"log/slog"

	"gbdis/internal/disasm"
	"gbdis/internal/romx"
	"gbdis/internal/symfile"
)

// project is a loaded ROM with its completed disassembly.
type project struct {
	cfg     Config
	rom     *romx.Image
	session *disasm.Session
	symbols []symfile.Symbol
	symPath string
}

// loadSymbols returns the symbols named by cfg, or found next to the ROM.
func loadSymbols(cfg Config) ([]symfile.Symbol, string, error) {
	path := cfg.SymbolFile
	if path == "" && !cfg.NoSymbols {
		path = symfile.Locate(cfg.ROM)
	}
	if path == "" {
		return nil, "", nil
	}
	syms, err := symfile.Load(path)
	if err != nil {
		return nil, path, err
	}
	slog.Debug("Loaded symbols", "file", path, "count", len(syms))
	return syms, path, nil
}

// openProject loads the ROM and symbols and runs the disassembler.
func openProject(cfg Config) (*project, error) {
	syms, symPath, err := loadSymbols(cfg)
	if err != nil {
		return nil, err
	}

	rom, err := romx.Open(cfg.ROM)
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	img := disasm.NewImage(rom.All)
	if !img.Contains(cfg.EntryPoint) {
		slog.Warn("Entry point is outside the image",
			"entry", fmt.Sprintf("%06x", cfg.EntryPoint), "size", img.Size())
	}

	s := disasm.New(img, disasm.WithEntryPoint(cfg.EntryPoint), disasm.WithLogger(slog.Default()))
	for _, sym := range syms {
		addr := sym.Addr()
		if !img.Contains(addr) {
			slog.Warn("Symbol is outside the image", "symbol", sym.Name, "addr", fmt.Sprintf("%06x", addr))
		}
		s.AddSymbol(addr, sym.Name)
	}
	s.Run()

	return &project{cfg: cfg, rom: rom, session: s, symbols: syms, symPath: symPath}, nil
}

func (p *project) Close() error {
	return p.rom.Close()
}
