package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default between runs of the shared
// command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeROM(t *testing.T, dir string, rom []byte) string {
	t.Helper()
	path := filepath.Join(dir, "game.gb")
	require.NoError(t, os.WriteFile(path, rom, 0o644))
	return path
}

func TestParseEntryPoint(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"150", 0x150, false},
		{"0x4000", 0x4000, false},
		{"$FF80", 0xff80, false},
		{"", 0, true},
		{"zz", 0, true},
		{"-1", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEntryPoint(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid entry point")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListingCommand(t *testing.T) {
	rom := writeROM(t, t.TempDir(), []byte{0x00, 0xc3, 0x00, 0x00})

	out, err := execCommand(t, "-n", rom)
	require.NoError(t, err)

	want := "ENTRY_POINT:\n" +
		"\tnop" + strings.Repeat(" ", 47) + "; 000000: 00\n" +
		"\tjp ENTRY_POINT" + strings.Repeat(" ", 36) + "; 000001: c3 00 00\n"
	assert.Equal(t, want, out)
}

func TestEntryPointArgument(t *testing.T) {
	rom := writeROM(t, t.TempDir(), []byte{0xff, 0xc9})

	out, err := execCommand(t, "-n", rom, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "\tdb $ff")
	assert.Contains(t, out, "ENTRY_POINT:\n\tret")

	out, err = execCommand(t, "-n", "--entry", "0x1", rom)
	require.NoError(t, err)
	assert.Contains(t, out, "ENTRY_POINT:\n\tret")
}

func TestInvalidEntryPoint(t *testing.T) {
	rom := writeROM(t, t.TempDir(), []byte{0x00})

	_, err := execCommand(t, "-n", rom, "zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid entry point: "zz"`)
}

func TestFileNotFound(t *testing.T) {
	_, err := execCommand(t, "-n", filepath.Join(t.TempDir(), "missing.gb"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestSymbolFile(t *testing.T) {
	dir := t.TempDir()
	rom := writeROM(t, dir, []byte{0xcd, 0x03, 0x00, 0xc9})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.sym"), []byte("00:0003 Done\n"), 0o644))

	out, err := execCommand(t, "-n", rom)
	require.NoError(t, err)
	assert.Contains(t, out, "\tcall Done")
	assert.Contains(t, out, "Done:\n\tret")

	out, err = execCommand(t, "-n", "--no-sym", rom)
	require.NoError(t, err)
	assert.Contains(t, out, "\tcall Function0003")

	other := filepath.Join(dir, "other.sym")
	require.NoError(t, os.WriteFile(other, []byte("00:0003 Finish\n"), 0o644))
	out, err = execCommand(t, "-n", "--sym", other, rom)
	require.NoError(t, err)
	assert.Contains(t, out, "\tcall Finish")
}

func TestMalformedSymbolFile(t *testing.T) {
	dir := t.TempDir()
	rom := writeROM(t, dir, []byte{0xc9})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.sym"), []byte("nonsense\n"), 0o644))

	_, err := execCommand(t, "-n", rom)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestJSONOutput(t *testing.T) {
	rom := writeROM(t, t.TempDir(), []byte{0xcd, 0x03, 0x00, 0xc9, 0x10})

	out, err := execCommand(t, "--json", rom)
	require.NoError(t, err)

	var got struct {
		Size       int    `json:"size"`
		EntryPoint string `json:"entry_point"`
		Labels     []struct {
			Address string   `json:"address"`
			Names   []string `json:"names"`
		} `json:"labels"`
		Lines []struct {
			Kind    string `json:"kind"`
			Address string `json:"address"`
			Text    string `json:"text"`
			Bytes   string `json:"bytes"`
		} `json:"lines"`
		Stats StatsInfo `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 5, got.Size)
	assert.Equal(t, "000000", got.EntryPoint)
	require.Len(t, got.Labels, 2)
	assert.Equal(t, []string{"Function0003"}, got.Labels[1].Names)

	require.Len(t, got.Lines, 5)
	assert.Equal(t, "label", got.Lines[0].Kind)
	assert.Equal(t, "instruction", got.Lines[1].Kind)
	assert.Equal(t, "cd 03 00", got.Lines[1].Bytes)
	assert.Equal(t, "data", got.Lines[4].Kind)
	assert.Equal(t, "db $10", got.Lines[4].Text)

	assert.Equal(t, 2, got.Stats.Instructions)
	assert.Equal(t, 1, got.Stats.DataBytes)
}

func TestInfoCommand(t *testing.T) {
	rom := writeROM(t, t.TempDir(), []byte{0xcd, 0x03, 0x00, 0xc9})

	out, err := execCommand(t, "info", rom)
	require.NoError(t, err)
	assert.Contains(t, out, "# gbdis")
	assert.Contains(t, out, "game.gb (4 bytes)")
	assert.Contains(t, out, "## Disassembly")
	assert.Contains(t, out, "- **Instructions** 2\n")
	assert.Contains(t, out, "- **Labels** 2\n")
	assert.NotContains(t, out, "## Cartridge")
}

func TestInfoCommandEntryPoint(t *testing.T) {
	rom := writeROM(t, t.TempDir(), []byte{0xff, 0xc9})

	out, err := execCommand(t, "info", rom, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "- **Entry point** `$000001`\n")
	assert.Contains(t, out, "- **Instructions** 1\n")

	_, err = execCommand(t, "info", "--json", rom)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestInfoCommandHeader(t *testing.T) {
	rom := make([]byte, 0x8000)
	copy(rom[0x134:], "GBDIS TEST")
	path := writeROM(t, t.TempDir(), rom)

	out, err := execCommand(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "| Title | GBDIS TEST |")
	assert.Contains(t, out, "| Type | ROM ONLY |")
	assert.Contains(t, out, "| Header checksum | mismatch |")
}

func TestSymbolsCommand(t *testing.T) {
	sym := filepath.Join(t.TempDir(), "game.sym")
	require.NoError(t, os.WriteFile(sym, []byte("00:0150 Start\n01:4000 MyRoutine\n02:4000 BankTwo\n"), 0o644))

	out, err := execCommand(t, "symbols", sym)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"00:0150", "000150", "Start"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"01:4000", "004000", "MyRoutine"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"02:4000", "008000", "BankTwo"}, strings.Fields(lines[2]))
}

func TestSchemaCommand(t *testing.T) {
	out, err := execCommand(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"entryPoint"`)
	assert.Contains(t, out, `"symbolFile"`)
}
