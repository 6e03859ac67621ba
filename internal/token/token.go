package token

import (
	"github.com/domfarolino/specfmt/internal/source"
)

// Token represents a single unbreakable unit of a prose line.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsAtomic reports whether the token is an atomic markup span.
func (t Token) IsAtomic() bool { return t.Kind.Atomic() }

// Join concatenates token texts with single spaces. Useful for comparing
// content irrespective of line breaks.
func Join(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Text) + 1
	}
	if n == 0 {
		return ""
	}
	out := make([]byte, 0, n-1)
	for i, t := range tokens {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, t.Text...)
	}
	return string(out)
}
