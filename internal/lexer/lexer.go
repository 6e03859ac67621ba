package lexer

import (
	"github.com/domfarolino/specfmt/internal/diag"
	"github.com/domfarolino/specfmt/internal/source"
	"github.com/domfarolino/specfmt/internal/token"
)

// Lexer splits physical lines of a document into tokens: plain breakable
// words and atomic markup spans. It is a small two-state automaton (plain
// text vs inside a span); an opening delimiter with no closer on the line
// degrades to plain text instead of failing.
type Lexer struct {
	file *source.File
	opts Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		opts: opts.withDefaults(),
	}
}

// TokenizeLine tokenizes the 1-based physical line. Blank and
// whitespace-only lines yield no tokens.
func (lx *Lexer) TokenizeLine(lineNum uint32) []token.Token {
	start, end := lx.file.LineSpan(lineNum)
	return lx.TokenizeRange(start, end)
}

// TokenizeRange tokenizes the byte range [start, end) of the file. The range
// must not contain line terminators.
func (lx *Lexer) TokenizeRange(start, end uint32) []token.Token {
	cur := NewLineCursor(lx.file, start, end)

	var tokens []token.Token
	for {
		tok, ok := lx.next(&cur)
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// next scans one token. Returns false at end of range.
func (lx *Lexer) next(c *Cursor) (token.Token, bool) {
	for !c.EOF() && isSpace(c.Peek()) {
		c.Bump()
	}
	if c.EOF() {
		return token.Token{}, false
	}

	m := c.Mark()
	spans := 0
	plain := false
	spanKind := token.Invalid

	for !c.EOF() && !isSpace(c.Peek()) {
		if fam, ok := lx.matchOpen(c); ok {
			if afterClose, found := lx.findClose(c, fam); found {
				c.Off = afterClose
				spans++
				spanKind = fam.Kind
				continue
			}
			// Unmatched opener: degrade to plain text and keep scanning.
			openMark := c.Mark()
			for range fam.Open {
				c.Bump()
			}
			lx.report(diag.Diagnostic{
				Severity: diag.SevInfo,
				Code:     diag.LexUnclosedSpan,
				Message:  "opening delimiter " + fam.Open + " has no matching " + fam.Close + " on this line",
				Primary:  c.SpanFrom(openMark),
			})
			plain = true
			continue
		}

		if c.Peek() == '\\' && c.Off+1 < c.Limit {
			// Escape glues the next byte into the word and hides it from
			// delimiter matching.
			c.Bump()
			c.Bump()
			plain = true
			continue
		}

		c.Bump()
		plain = true
	}

	kind := token.Word
	if spans == 1 && !plain {
		kind = spanKind
	}
	return token.Token{
		Kind: kind,
		Span: c.SpanFrom(m),
		Text: c.Text(m),
	}, true
}

// matchOpen returns the family whose opening delimiter starts at the cursor,
// preferring the longest match.
func (lx *Lexer) matchOpen(c *Cursor) (Family, bool) {
	var best Family
	found := false
	for _, fam := range lx.opts.Families {
		if !c.HasPrefix(fam.Open) {
			continue
		}
		if !found || len(fam.Open) > len(best.Open) {
			best = fam
			found = true
		}
	}
	return best, found
}

// findClose searches for the family's closing delimiter after the opener,
// honoring backslash escapes. Returns the offset just past the closer.
func (lx *Lexer) findClose(c *Cursor, fam Family) (uint32, bool) {
	probe := *c
	for range fam.Open {
		probe.Bump()
	}
	for !probe.EOF() {
		if probe.Peek() == '\\' && probe.Off+1 < probe.Limit {
			probe.Bump()
			probe.Bump()
			continue
		}
		if probe.HasPrefix(fam.Close) {
			for range fam.Close {
				probe.Bump()
			}
			return probe.Off, true
		}
		probe.Bump()
	}
	return 0, false
}

func (lx *Lexer) report(d diag.Diagnostic) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(d)
	}
}
