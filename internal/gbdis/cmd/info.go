package cmd

import (
	"fmt"
	"io"
	pathpkg "path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gbdis/internal/disasm"
	"gbdis/internal/gbdis/styles"
)

var infoCmd = &cobra.Command{
	Use:   "info rom [entry_point]",
	Short: "Summarise a ROM and its disassembly",
	Long: `Print the cartridge header and disassembly statistics of a ROM as
markdown. Output is rendered when attached to a terminal.`,
	Example: `
# Summarise a ROM
gbdis info game.gb

# Summarise the code reachable from $0150
gbdis info game.gb 150
  `,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := projectConfig(cmd, args)
		if err != nil {
			return err
		}
		if cfg.ROM, err = pathpkg.Abs(cfg.ROM); err != nil {
			return fmt.Errorf("failed to resolve path: %v", err)
		}

		p, err := openProject(cfg)
		if err != nil {
			return err
		}
		defer p.Close()

		markdown := summaryMarkdown(p)
		out := cmd.OutOrStdout()
		if isTerminal(out) {
			markdown = styles.Render(markdown, 80)
		}
		_, err = io.WriteString(out, markdown)
		return err
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// summaryMarkdown describes the ROM and the completed disassembly.
func summaryMarkdown(p *project) string {
	var b strings.Builder
	s := p.session
	st := s.Stats()

	b.WriteString("# gbdis\n\n```\n")
	if dir := pathpkg.Dir(p.cfg.ROM); dir != "." {
		fmt.Fprintf(&b, "; %s/\n", dir)
	}
	fmt.Fprintf(&b, "; %s (%d bytes)\n", pathpkg.Base(p.cfg.ROM), p.rom.Size())
	fmt.Fprintf(&b, "; %s\n```\n", p.rom.Digest())

	if h := headerInfo(p.rom); h != nil {
		checksum := "ok"
		if !h.ChecksumOK {
			checksum = "mismatch"
		}
		b.WriteString("\n## Cartridge\n\n")
		b.WriteString("| Field | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Title | %s |\n", escapeTable(h.Title))
		fmt.Fprintf(&b, "| Type | %s |\n", h.Cartridge)
		fmt.Fprintf(&b, "| ROM banks | %d |\n", h.ROMBanks)
		fmt.Fprintf(&b, "| Header checksum | %s |\n", checksum)
	}

	b.WriteString("\n## Disassembly\n\n")
	fmt.Fprintf(&b, "- **Entry point** `$%s`\n", disasm.FormatAddress(s.EntryPoint()))
	if p.symPath != "" {
		fmt.Fprintf(&b, "- **Symbol file** `%s` (%d symbols)\n", pathpkg.Base(p.symPath), len(p.symbols))
	}
	fmt.Fprintf(&b, "- **Instructions** %d", st.Instructions)
	if st.Truncated > 0 {
		fmt.Fprintf(&b, " (%d truncated)", st.Truncated)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **Data bytes** %d\n", st.DataBytes)
	fmt.Fprintf(&b, "- **Labels** %d\n", st.Labels)
	return b.String()
}

func escapeTable(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
