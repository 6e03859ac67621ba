package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/domfarolino/specfmt/internal/config"
	"github.com/domfarolino/specfmt/internal/diagfmt"
	"github.com/domfarolino/specfmt/internal/driver"
	"github.com/domfarolino/specfmt/internal/gitx"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path]",
	Short: "Reformat a spec document",
	Long: `Fmt re-wraps prose paragraphs to the target width. Without --full, only
paragraphs touched on the current branch (relative to main/master) are
rewritten. The path may be a file or a directory to search; it defaults to
the "source" file or the unique .bs spec in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Int("wrap", 0, "number of columns to wrap to (default 100, or specfmt.toml)")
	fmtCmd.Flags().Int("tab-width", 0, "columns per tab in indentation (default 8, or specfmt.toml)")
	fmtCmd.Flags().Bool("check", false, "report whether the spec needs formatting without writing")
	fmtCmd.Flags().Bool("stdout", false, "print formatted content to stdout instead of rewriting the file")
	fmtCmd.Flags().Bool("full", false, "reformat the entire spec, not just the current branch's changes")
	fmtCmd.Flags().BoolP("force", "f", false, "reformat even if the spec has uncommitted changes")
	fmtCmd.Flags().String("base-branch", "", "base branch to compare the current branch with")
	fmtCmd.Flags().Bool("no-cache", false, "skip the formatted-content cache")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	target, err := driver.ResolveTarget(arg)
	if err != nil {
		return err
	}

	opts, outputFormat, err := collectFmtOptions(cmd, target)
	if err != nil {
		return err
	}
	if opts.Stdout && opts.Check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if opts.Stdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), []string{target}, opts)
	if err != nil {
		return err
	}

	renderFmtDiagnostics(results, quiet)

	switch outputFormat {
	case "text":
		return renderFmtText(results, opts, quiet)
	case "json":
		return renderFmtJSON(results, opts.Check)
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
}

// collectFmtOptions merges flags over specfmt.toml over built-in defaults.
func collectFmtOptions(cmd *cobra.Command, target string) (driver.FormatOptions, string, error) {
	var opts driver.FormatOptions

	flagErr := func(name string) error {
		return fmt.Errorf("failed to get %s flag", name)
	}

	var err error
	if opts.Wrap, err = cmd.Flags().GetInt("wrap"); err != nil {
		return opts, "", flagErr("wrap")
	}
	if opts.TabWidth, err = cmd.Flags().GetInt("tab-width"); err != nil {
		return opts, "", flagErr("tab-width")
	}
	if opts.Check, err = cmd.Flags().GetBool("check"); err != nil {
		return opts, "", flagErr("check")
	}
	if opts.Stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return opts, "", flagErr("stdout")
	}
	if opts.Full, err = cmd.Flags().GetBool("full"); err != nil {
		return opts, "", flagErr("full")
	}
	if opts.Force, err = cmd.Flags().GetBool("force"); err != nil {
		return opts, "", flagErr("force")
	}
	if opts.BaseBranch, err = cmd.Flags().GetString("base-branch"); err != nil {
		return opts, "", flagErr("base-branch")
	}
	if opts.NoCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return opts, "", flagErr("no-cache")
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, "", flagErr("format")
	}
	if opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, "", flagErr("max-diagnostics")
	}

	cfg, found, err := config.Load(filepath.Dir(target))
	if err != nil {
		return opts, "", err
	}
	if found {
		if opts.Wrap == 0 {
			opts.Wrap = cfg.Format.Wrap
		}
		if opts.TabWidth == 0 {
			opts.TabWidth = cfg.Format.TabWidth
		}
		opts.Families = cfg.Families()
		opts.Blocks = cfg.BlockMarkers()
	}

	return opts, outputFormat, nil
}

func renderFmtDiagnostics(results []driver.FormatResult, quiet bool) {
	if quiet {
		return
	}
	// PersistentPreRun resolved the --color flag into color.NoColor.
	useColor := !color.NoColor
	for _, res := range results {
		if res.Bag == nil || res.Bag.Len() == 0 || res.FileSet == nil {
			continue
		}
		res.Bag.Sort()
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: useColor})
	}
}

func isPrecondition(err error) bool {
	return errors.Is(err, gitx.ErrDirtyWorkingTree)
}

func renderFmtText(results []driver.FormatResult, opts driver.FormatOptions, quiet bool) error {
	var hasErrors, hasChanges bool

	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			if isPrecondition(res.Err) {
				return res.Err
			}
			continue
		}

		if opts.Stdout {
			_, _ = os.Stdout.Write(res.Formatted)
			continue
		}

		if res.Changed {
			hasChanges = true
			if quiet {
				continue
			}
			if opts.Check {
				fmt.Fprintln(os.Stdout, res.Path)
			} else {
				fmt.Fprintf(os.Stdout, "reformatted %s (%s)\n", res.Path, res.Scope)
			}
			continue
		}

		if !quiet && !opts.Check {
			fmt.Fprintf(os.Stdout, "%s already formatted, no changes needed\n", res.Path)
		}
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if opts.Check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Scope    string `json:"scope"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	var hasErrors, hasChanges bool
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Scope: res.Scope.String(), CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return err
	}
	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}
