package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/domfarolino/specfmt/internal/diag"
	"github.com/domfarolino/specfmt/internal/diagfmt"
	"github.com/domfarolino/specfmt/internal/source"
)

func makeBag(t *testing.T, content string, d diag.Diagnostic) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("spec.bs", []byte(content))
	d.Primary.File = fileID
	bag := diag.NewBag(10)
	bag.Add(d)
	return bag, fs
}

func TestPrettyHeaderLine(t *testing.T) {
	bag, fs := makeBag(t, "see `broken span\n", diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.LexUnclosedSpan,
		Message:  "unclosed ` span; treated as plain text",
		Primary:  source.Span{Start: 4, End: 5},
	})

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})

	got := buf.String()
	want := "spec.bs:1:5: INFO SPF1001: unclosed ` span; treated as plain text\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPrettyContextCaret(t *testing.T) {
	bag, fs := makeBag(t, "see `broken span\n", diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.LexUnclosedSpan,
		Message:  "unclosed span",
		Primary:  source.Span{Start: 4, End: 5},
	})

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Context: true})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, source line, and caret line:\n%s", buf.String())
	}
	if lines[1] != "  see `broken span" {
		t.Errorf("source line wrong: %q", lines[1])
	}
	if lines[2] != "      ^" {
		t.Errorf("caret misaligned: %q", lines[2])
	}
}

func TestPrettyNotes(t *testing.T) {
	bag, fs := makeBag(t, "alpha beta\n", diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.DocUnterminatedBlock,
		Message:  "block never closed",
		Primary:  source.Span{Start: 0, End: 5},
		Notes: []diag.Note{
			{Span: source.Span{Start: 6, End: 10}, Msg: "content continues here"},
		},
	})

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})

	if !strings.Contains(buf.String(), "note: spec.bs:1:7: content continues here") {
		t.Errorf("note missing or mispositioned:\n%s", buf.String())
	}
}
