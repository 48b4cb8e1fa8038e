package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	pathpkg "path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"gbdis/internal/gbdis/log"
)

// Config gathers the options of a disassembly run.
type Config struct {
	ROM        string `json:"rom" jsonschema:"title=ROM,description=Path to the Game Boy ROM image"`
	EntryPoint int    `json:"entryPoint" jsonschema:"title=Entry Point,description=Flat address where exploration starts,minimum=0,default=0"`
	SymbolFile string `json:"symbolFile,omitempty" jsonschema:"title=Symbol File,description=rgbds symbol file seeding labels and start addresses"`
	NoSymbols  bool   `json:"noSymbols,omitempty" jsonschema:"title=No Symbols,description=Do not look for a symbol file next to the ROM"`
	NoTUI      bool   `json:"noTui,omitempty" jsonschema:"title=No TUI,description=Print the listing instead of starting the browser"`
	JSON       bool   `json:"json,omitempty" jsonschema:"title=JSON,description=Print the listing as JSON"`
	Color      bool   `json:"color,omitempty" jsonschema:"title=Color,description=Syntax highlight the printed listing"`
	Debug      bool   `json:"debug,omitempty" jsonschema:"title=Debug,description=Enable debug logging"`
	CPUProfile string `json:"cpuProfile,omitempty" jsonschema:"title=CPU Profile,description=Path for CPU profile output"`
	MemProfile string `json:"memProfile,omitempty" jsonschema:"title=Memory Profile,description=Path for heap profile output"`
}

// ParseEntryPoint parses a hex address, with an optional 0x or $ prefix.
func ParseEntryPoint(s string) (int, error) {
	digits := strings.ToLower(strings.TrimSpace(s))
	digits = strings.TrimPrefix(digits, "0x")
	digits = strings.TrimPrefix(digits, "$")
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid entry point: %q", s)
	}
	return int(v), nil
}

// projectConfig reads the ROM, entry point and symbol options shared by
// every command that disassembles a ROM.
func projectConfig(cmd *cobra.Command, args []string) (Config, error) {
	var cfg Config
	cfg.ROM = args[0]
	cfg.SymbolFile, _ = cmd.Flags().GetString("sym")
	cfg.NoSymbols, _ = cmd.Flags().GetBool("no-sym")
	cfg.Debug, _ = cmd.Flags().GetBool("debug")

	entry, _ := cmd.Flags().GetString("entry")
	if len(args) > 1 {
		entry = args[1]
	}
	if entry != "" {
		addr, err := ParseEntryPoint(entry)
		if err != nil {
			return cfg, err
		}
		cfg.EntryPoint = addr
	}
	return cfg, nil
}

// configFromFlags reads the root command line into a Config.
func configFromFlags(cmd *cobra.Command, args []string) (Config, error) {
	cfg, err := projectConfig(cmd, args)
	if err != nil {
		return cfg, err
	}
	cfg.NoTUI, _ = cmd.Flags().GetBool("no-tui")
	cfg.JSON, _ = cmd.Flags().GetBool("json")
	cfg.Color, _ = cmd.Flags().GetBool("color")
	cfg.CPUProfile, _ = cmd.Flags().GetString("cpuprofile")
	cfg.MemProfile, _ = cmd.Flags().GetString("memprofile")
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().StringP("entry", "e", "", "Entry point address in hex (default 0)")
	rootCmd.PersistentFlags().StringP("sym", "s", "", "Symbol file (default: <rom>.sym when present)")
	rootCmd.PersistentFlags().Bool("no-sym", false, "Do not load a symbol file next to the ROM")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("no-tui", "n", false, "Print the listing without the TUI")
	rootCmd.Flags().BoolP("json", "j", false, "Output the listing as JSON")
	rootCmd.Flags().Bool("color", false, "Syntax highlight the printed listing")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().String("memprofile", "", "Write memory profile to file")
}

var rootCmd = &cobra.Command{
	Use:   "gbdis rom [entry_point]",
	Short: "Game Boy ROM disassembler",
	Long: `gbdis disassembles a Game Boy ROM into rgbds assembly.
Code is found by following jumps and calls from the entry point and from any
symbols; everything else is emitted as data.`,
	Example: `
# Browse a ROM interactively
gbdis game.gb

# Print the listing, starting at $0100
gbdis -n game.gb 100

# Seed labels from a symbol file and emit JSON
gbdis --sym game.sym --json game.gb
  `,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		log.Setup(debug)
		_, err := ResolveCwd(cmd)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configFromFlags(cmd, args)
		if err != nil {
			return err
		}

		if cfg.CPUProfile != "" {
			f, err := os.Create(cfg.CPUProfile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %v", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %v", err)
			}
			defer pprof.StopCPUProfile()
		}
		if cfg.MemProfile != "" {
			defer func() {
				f, err := os.Create(cfg.MemProfile)
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
					return
				}
				defer f.Close()
				if err := pprof.WriteHeapProfile(f); err != nil {
					fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
				}
			}()
		}

		absPath, err := pathpkg.Abs(cfg.ROM)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %v", err)
		}
		if _, err := os.Stat(absPath); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", cfg.ROM)
			}
			return fmt.Errorf("cannot access file: %v", err)
		}
		cfg.ROM = absPath

		out := cmd.OutOrStdout()
		if !isTerminal(out) {
			cfg.NoTUI = true
		}

		if cfg.JSON {
			p, err := openProject(cfg)
			if err != nil {
				return err
			}
			defer p.Close()
			return writeJSON(out, p)
		}

		if cfg.NoTUI {
			p, err := openProject(cfg)
			if err != nil {
				return err
			}
			defer p.Close()
			return writeListing(out, p, cfg.Color)
		}

		program := tea.NewProgram(
			NewModel(cfg),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

func Execute() {
	if err := execute(); err != nil {
		log.Close()
		os.Exit(1)
	}
	log.Close()
}

func execute() error {
	// Bypass fang when printing a listing, so pipes get plain output
	plain := !term.IsTerminal(os.Stdout.Fd())
	for _, arg := range os.Args[1:] {
		if arg == "--no-tui" || arg == "-n" || arg == "--json" || arg == "-j" {
			plain = true
			break
		}
	}

	if plain {
		return rootCmd.Execute()
	}
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	)
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
