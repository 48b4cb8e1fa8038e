package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gbdis/internal/disasm"
	"gbdis/internal/romx"
	"gbdis/internal/ui/colorize"
)

// writeListing prints the text listing, optionally colourised.
func writeListing(w io.Writer, p *project, color bool) error {
	if !color {
		return p.session.WriteListing(w)
	}
	var buf bytes.Buffer
	if err := p.session.WriteListing(&buf); err != nil {
		return err
	}
	out, err := colorize.Listing(buf.String())
	if err != nil {
		return fmt.Errorf("colorize listing: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// JSONOutput is the machine readable form of a disassembly.
type JSONOutput struct {
	File       string      `json:"file"`
	Digest     string      `json:"digest"`
	Size       int         `json:"size"`
	EntryPoint string      `json:"entry_point"`
	SymbolFile string      `json:"symbol_file,omitempty"`
	Header     *HeaderInfo `json:"header,omitempty"`
	Stats      StatsInfo   `json:"stats"`
	Labels     []LabelInfo `json:"labels"`
	Lines      []JSONLine  `json:"lines"`
}

// HeaderInfo is the cartridge header in JSON output.
type HeaderInfo struct {
	Title      string `json:"title"`
	Cartridge  string `json:"cartridge"`
	ROMBanks   int    `json:"rom_banks"`
	ChecksumOK bool   `json:"checksum_ok"`
}

// StatsInfo mirrors disasm.Stats.
type StatsInfo struct {
	Instructions int `json:"instructions"`
	Truncated    int `json:"truncated"`
	DataBytes    int `json:"data_bytes"`
	Labels       int `json:"labels"`
	Steps        int `json:"steps"`
}

// LabelInfo lists the names at one address.
type LabelInfo struct {
	Address string   `json:"address"`
	Names   []string `json:"names"`
}

// JSONLine is one listing line.
type JSONLine struct {
	Kind    disasm.LineKind `json:"kind"`
	Address string          `json:"address"`
	End     string          `json:"end"`
	Text    string          `json:"text"`
	Bytes   string          `json:"bytes,omitempty"`
}

func headerInfo(rom *romx.Image) *HeaderInfo {
	h, ok := rom.Header()
	if !ok {
		return nil
	}
	return &HeaderInfo{
		Title:      h.Title,
		Cartridge:  h.Cartridge(),
		ROMBanks:   h.ROMBanks(),
		ChecksumOK: h.ChecksumOK,
	}
}

func buildJSON(p *project) JSONOutput {
	s := p.session
	st := s.Stats()
	out := JSONOutput{
		File:       p.cfg.ROM,
		Digest:     p.rom.Digest(),
		Size:       p.rom.Size(),
		EntryPoint: disasm.FormatAddress(s.EntryPoint()),
		SymbolFile: p.symPath,
		Header:     headerInfo(p.rom),
		Stats: StatsInfo{
			Instructions: st.Instructions,
			Truncated:    st.Truncated,
			DataBytes:    st.DataBytes,
			Labels:       st.Labels,
			Steps:        st.Steps,
		},
		Labels: []LabelInfo{},
		Lines:  []JSONLine{},
	}
	for _, addr := range s.Labels().Addresses() {
		out.Labels = append(out.Labels, LabelInfo{
			Address: disasm.FormatAddress(addr),
			Names:   s.Labels().At(addr),
		})
	}
	for _, line := range s.Lines() {
		out.Lines = append(out.Lines, JSONLine{
			Kind:    line.Kind,
			Address: disasm.FormatAddress(line.Addr),
			End:     disasm.FormatAddress(line.End),
			Text:    line.Text,
			Bytes:   disasm.FormatBytes(line.Bytes),
		})
	}
	return out
}

func writeJSON(w io.Writer, p *project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(buildJSON(p)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
