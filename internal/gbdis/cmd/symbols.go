package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gbdis/internal/disasm"
	"gbdis/internal/symfile"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols file.sym",
	Short: "List the symbols of a symbol file with their ROM addresses",
	Long: `Parse an rgbds symbol file and print each symbol with its banked and
flat ROM address. Useful for checking which addresses will be seeded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		syms, err := symfile.Load(args[0])
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, sym := range syms {
			fmt.Fprintf(tw, "%02x:%04x\t%s\t%s\n", sym.Bank, sym.Offset, disasm.FormatAddress(sym.Addr()), sym.Name)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}
