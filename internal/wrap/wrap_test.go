package wrap_test

import (
	"strings"
	"testing"

	"github.com/domfarolino/specfmt/internal/lexer"
	"github.com/domfarolino/specfmt/internal/source"
	"github.com/domfarolino/specfmt/internal/token"
	"github.com/domfarolino/specfmt/internal/wrap"
)

// tokenizeString runs the real lexer over a single line of text.
func tokenizeString(t *testing.T, line string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.bs", []byte(line))
	lx := lexer.New(fs.Get(fileID), lexer.Options{})
	return lx.TokenizeLine(1)
}

// tokenizeLines concatenates the token streams of several lines, the way
// paragraph parsing does.
func tokenizeLines(t *testing.T, lines []string) []token.Token {
	t.Helper()
	var tokens []token.Token
	for _, line := range lines {
		tokens = append(tokens, tokenizeString(t, line)...)
	}
	return tokens
}

func TestGreedyFirstFit(t *testing.T) {
	tokens := tokenizeString(t, "alpha beta gamma")
	lines := wrap.Reflow("", tokens, wrap.Config{Width: 10})

	expected := []string{"alpha beta", "gamma"}
	if len(lines) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestOversizedAtomicTokenGetsOwnLine(t *testing.T) {
	tokens := tokenizeString(t, "a `longtoken` b")
	lines := wrap.Reflow("", tokens, wrap.Config{Width: 5})

	expected := []string{"a", "`longtoken`", "b"}
	if len(lines) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestWidthBound(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
	}{
		{"plain", "the quick brown fox jumps over the lazy dog again and again", 20},
		{"markup", "see <a href=\"x\">the link</a> and `some code span` for details", 25},
		{"narrow", "a b c d e f g h i j k l m n o p", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := tokenizeString(t, tc.text)
			cfg := wrap.Config{Width: tc.width}
			for _, line := range wrap.Reflow("", tokens, cfg) {
				if len(line) > tc.width && strings.Contains(line, " ") {
					t.Errorf("line %q exceeds width %d and holds more than one token", line, tc.width)
				}
			}
		})
	}
}

func TestAtomicSpanNeverSplit(t *testing.T) {
	text := "intro `a span with many words inside` outro [[Ref with spaces]] end"
	tokens := tokenizeString(t, text)
	lines := wrap.Reflow("", tokens, wrap.Config{Width: 15})

	for _, atomic := range []string{"`a span with many words inside`", "[[Ref with spaces]]"} {
		found := 0
		for _, line := range lines {
			found += strings.Count(line, atomic)
		}
		if found != 1 {
			t.Errorf("atomic span %q must appear unbroken on exactly one line, found %d", atomic, found)
		}
	}
}

func TestContentPreservation(t *testing.T) {
	text := "alpha `b c` gamma <tag attr=\"v\"> delta epsilon"
	tokens := tokenizeString(t, text)
	lines := wrap.Reflow("", tokens, wrap.Config{Width: 12})

	var rejoined []string
	for _, line := range lines {
		rejoined = append(rejoined, strings.TrimLeft(line, " \t"))
	}
	if got := strings.Join(rejoined, " "); got != token.Join(tokens) {
		t.Errorf("content changed:\n in: %q\nout: %q", token.Join(tokens), got)
	}
}

func TestIdempotence(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		indent string
		width  int
	}{
		{"plain", "one two three four five six seven eight nine ten", "", 15},
		{"code spans", "use `a b` and `c d e` plus [[X Y]] tokens here today", "", 18},
		{"indented", "an indented paragraph that wraps across several lines nicely", "  ", 24},
		{"exact fit", "alpha beta gamma", "", 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := wrap.Config{Width: tc.width}
			tokens := tokenizeString(t, tc.indent+tc.text)
			first := wrap.Reflow(tc.indent, tokens, cfg)

			second := wrap.Reflow(tc.indent, tokenizeLines(t, first), cfg)
			if len(first) != len(second) {
				t.Fatalf("not idempotent:\nfirst:  %q\nsecond: %q", first, second)
			}
			for i := range first {
				if first[i] != second[i] {
					t.Errorf("line %d differs:\nfirst:  %q\nsecond: %q", i, first[i], second[i])
				}
			}
		})
	}
}

func TestIndentPreservedOnEveryLine(t *testing.T) {
	tokens := tokenizeString(t, "words that will wrap across a few output lines here")
	lines := wrap.Reflow("   ", tokens, wrap.Config{Width: 20})
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %v", lines)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "   ") {
			t.Errorf("line %q lost its indent", line)
		}
	}
}

func TestTabIndentAccounting(t *testing.T) {
	tokens := tokenizeString(t, "aa bb cc")
	// One tab at 8 columns leaves 2 columns of room at width 10: every
	// token must land on its own line.
	lines := wrap.Reflow("\t", tokens, wrap.Config{Width: 10, TabWidth: 8})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", lines)
	}
}

func TestEmptyTokenStream(t *testing.T) {
	if lines := wrap.Reflow("  ", nil, wrap.Config{Width: 10}); lines != nil {
		t.Errorf("expected no lines for empty stream, got %v", lines)
	}
}

func TestIndentHelper(t *testing.T) {
	cases := map[string]string{
		"  two spaces": "  ",
		"\tone tab":    "\t",
		"none":         "",
		"   ":          "   ",
		"":             "",
	}
	for line, want := range cases {
		if got := wrap.Indent(line); got != want {
			t.Errorf("Indent(%q): expected %q, got %q", line, want, got)
		}
	}
}
