// Package wrap implements the greedy line-reflow engine. It consumes a
// paragraph's token stream and produces physical lines no wider than the
// configured column, without ever splitting a token.
package wrap

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/domfarolino/specfmt/internal/token"
)

// DefaultWidth is the column limit applied when none is configured.
const DefaultWidth = 100

// DefaultTabWidth is the column equivalent of one tab in indentation.
const DefaultTabWidth = 8

// Config holds the immutable reflow parameters.
type Config struct {
	// Width is the target column limit, indentation included.
	Width int

	// TabWidth is how many columns a tab in the indent accounts for.
	TabWidth int
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.TabWidth <= 0 {
		c.TabWidth = DefaultTabWidth
	}
	return c
}

// Width returns the printable column width of s, counting tabs as
// cfg.TabWidth columns each.
func (c Config) width(s string) int {
	cfg := c
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += cfg.TabWidth
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

// Reflow lays out tokens as lines prefixed with indent, greedy first-fit:
// a token joins the current line when it fits with a single separating
// space, otherwise it starts a new line. A token wider than the limit gets a
// line of its own; that is the only case where the limit is exceeded.
//
// Reflow is deterministic and idempotent: re-tokenizing its output and
// reflowing again reproduces the same lines for any width at least as large
// as the widest token.
func Reflow(indent string, tokens []token.Token, cfg Config) []string {
	cfg = cfg.withDefaults()
	if len(tokens) == 0 {
		return nil
	}

	indentWidth := cfg.width(indent)

	var out []string
	var cur strings.Builder
	cur.WriteString(indent)
	curWidth := indentWidth
	onIndent := true

	for _, tok := range tokens {
		tokWidth := cfg.width(tok.Text)
		if onIndent {
			cur.WriteString(tok.Text)
			curWidth += tokWidth
			onIndent = false
			continue
		}
		if curWidth+1+tokWidth <= cfg.Width {
			cur.WriteByte(' ')
			cur.WriteString(tok.Text)
			curWidth += 1 + tokWidth
			continue
		}
		out = append(out, cur.String())
		cur.Reset()
		cur.WriteString(indent)
		cur.WriteString(tok.Text)
		curWidth = indentWidth + tokWidth
	}
	out = append(out, cur.String())
	return out
}

// Indent returns the leading whitespace prefix of line.
func Indent(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}
