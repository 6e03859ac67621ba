package lexer

import (
	"github.com/domfarolino/specfmt/internal/diag"
	"github.com/domfarolino/specfmt/internal/token"
)

// Family describes one atomic-span delimiter pair. A scan that hits Open
// looks for the matching Close of the same family on the same line and emits
// the whole enclosed run, delimiters included, as one token.
type Family struct {
	Kind  token.Kind
	Open  string
	Close string
}

// DefaultFamilies returns the delimiter families recognized out of the box:
// inline code, markup tags, and the two spec cross-reference forms.
func DefaultFamilies() []Family {
	return []Family{
		{Kind: token.CodeSpan, Open: "`", Close: "`"},
		{Kind: token.RefSpan, Open: "[[", Close: "]]"},
		{Kind: token.RefSpan, Open: "{{", Close: "}}"},
		{Kind: token.TagSpan, Open: "<", Close: ">"},
	}
}

// Options configures a Lexer.
type Options struct {
	// Families overrides the recognized atomic-span families.
	// Nil means DefaultFamilies().
	Families []Family

	// Reporter receives recoverable diagnostics (unclosed spans).
	// Nil discards them.
	Reporter diag.Reporter
}

func (o Options) withDefaults() Options {
	if o.Families == nil {
		o.Families = DefaultFamilies()
	}
	return o
}
