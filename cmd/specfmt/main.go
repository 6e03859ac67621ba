package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/domfarolino/specfmt/internal/gitx"
	"github.com/domfarolino/specfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "specfmt",
	Short: "Reformat spec documents to a fixed column width",
	Long: `specfmt re-wraps the prose of Bikeshed/Wattsi style specifications to a
fixed column width without breaking markup spans, scoping its edits to the
lines changed on the current branch.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch colorFlag, _ := cmd.Root().PersistentFlags().GetString("color"); colorFlag {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		default:
			color.NoColor = !isTerminal(os.Stdout)
		}
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// A dirty working tree is a guarded precondition, not a crash;
		// give it a distinct exit status for scripts.
		if errors.Is(err, gitx.ErrDirtyWorkingTree) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
