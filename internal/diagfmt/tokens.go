package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/domfarolino/specfmt/internal/source"
	"github.com/domfarolino/specfmt/internal/token"
)

type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Line   uint32 `json:"line"`
	Col    uint32 `json:"col"`
	Atomic bool   `json:"atomic,omitempty"`
}

// FormatTokensPretty writes one token per line with kind, position, and
// text.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, _ := fs.Resolve(tok.Span)
		_, err := fmt.Fprintf(w, "%4d: %-10s %d:%d %q\n", i+1, tok.Kind.String(), start.Line, start.Col, tok.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		start, _ := fs.Resolve(tok.Span)
		output = append(output, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Line:   start.Line,
			Col:    start.Col,
			Atomic: tok.IsAtomic(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
