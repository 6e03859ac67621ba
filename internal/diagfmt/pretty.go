// Package diagfmt renders diagnostics and token streams for humans and
// machines. It owns all terminal styling so the core packages stay free of
// output concerns.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/domfarolino/specfmt/internal/diag"
	"github.com/domfarolino/specfmt/internal/source"
)

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	// Color enables ANSI styling.
	Color bool

	// Context prints the offending source line with a caret underline.
	Context bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	posColor  = color.New(color.Bold)
)

// Pretty writes diagnostics as
//
//	<path>:<line>:<col>: <severity> <code>: <message>
//
// followed, when opts.Context is set, by the source line with a caret
// underline covering the primary span. Callers should Sort the bag first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	pos := fmt.Sprintf("%s:%d:%d:", file.Path, start.Line, start.Col)
	sev := d.Severity.String()
	if opts.Color {
		pos = posColor.Sprint(pos)
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s %s %s: %s\n", pos, sev, d.Code.ID(), d.Message)

	if opts.Context && !d.Primary.Empty() {
		writeContext(w, file, d.Primary, start, opts)
	}

	for _, note := range d.Notes {
		noteStart, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", file.Path, noteStart.Line, noteStart.Col, note.Msg)
	}
}

func writeContext(w io.Writer, file *source.File, span source.Span, start source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// Align the caret run under the span, honoring wide runes.
	prefix := line[:min(int(start.Col-1), len(line))]
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	n := int(span.Len())
	if n < 1 {
		n = 1
	}
	if n > len(line)-len(prefix) && len(line) > len(prefix) {
		n = len(line) - len(prefix)
	}
	caret := "^" + strings.Repeat("~", n-1)
	if opts.Color {
		caret = severityColor(diag.SevError).Sprint(caret)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, caret)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
