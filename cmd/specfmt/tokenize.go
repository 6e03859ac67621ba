package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/domfarolino/specfmt/internal/config"
	"github.com/domfarolino/specfmt/internal/diagfmt"
	"github.com/domfarolino/specfmt/internal/driver"
	"github.com/domfarolino/specfmt/internal/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Show the token stream of a spec document",
	Long: `Tokenize prints the breakable words and atomic markup spans the reflow
engine would operate on, line by line. Useful for debugging wrap decisions
and custom span families.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	var families []lexer.Family
	if cfg, found, cfgErr := config.Load(filepath.Dir(filePath)); cfgErr != nil {
		return cfgErr
	} else if found {
		families = cfg.Families()
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics, families)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   !color.NoColor,
			Context: true,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
