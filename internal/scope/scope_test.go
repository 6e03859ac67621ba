package scope_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/domfarolino/specfmt/internal/document"
	"github.com/domfarolino/specfmt/internal/scope"
	"github.com/domfarolino/specfmt/internal/source"
	"github.com/domfarolino/specfmt/internal/wrap"
)

func parseString(t *testing.T, content string) *document.Document {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.bs", []byte(content))
	return document.Parse(fs.Get(fileID), document.Options{})
}

// fiveParagraphs is three prose paragraphs separated by blanks; each prose
// line is long enough to wrap at width 30.
const fiveParagraphs = "first paragraph with quite a few words in a single long line\n" +
	"\n" +
	"second paragraph with quite a few words in a single long line\n" +
	"\n" +
	"third paragraph with quite a few words in a single long line\n"

func TestClassifyDiffMode(t *testing.T) {
	doc := parseString(t, fiveParagraphs)
	// Line 3 is the second prose paragraph.
	changed := scope.NewLineSet([]uint32{3})

	regions := scope.Classify(doc.Paragraphs, changed, scope.ModeDiff)
	if len(regions) != 5 {
		t.Fatalf("expected 5 regions, got %d", len(regions))
	}

	wantChanged := []bool{false, false, true, false, false}
	for i, want := range wantChanged {
		if regions[i].Changed != want {
			t.Errorf("region %d: expected Changed=%v", i, want)
		}
	}
}

func TestClassifyFullModeMarksEverything(t *testing.T) {
	doc := parseString(t, fiveParagraphs)

	regions := scope.Classify(doc.Paragraphs, nil, scope.ModeFull)
	for i, r := range regions {
		if !r.Changed {
			t.Errorf("region %d must be Changed in full mode", i)
		}
	}
}

func TestClassifyEmptySetLeavesEverythingUnchanged(t *testing.T) {
	doc := parseString(t, fiveParagraphs)

	regions := scope.Classify(doc.Paragraphs, scope.NewLineSet(nil), scope.ModeDiff)
	for i, r := range regions {
		if r.Changed {
			t.Errorf("region %d must be Unchanged with an empty line set", i)
		}
	}
}

func TestClassifyMultiLineParagraphIntersection(t *testing.T) {
	content := "line one of the paragraph\nline two of the paragraph\nline three of it\n"
	doc := parseString(t, content)
	if len(doc.Paragraphs) != 1 {
		t.Fatalf("expected one paragraph, got %d", len(doc.Paragraphs))
	}

	// Touching any single line puts the whole paragraph in scope.
	for _, line := range []uint32{1, 2, 3} {
		regions := scope.Classify(doc.Paragraphs, scope.NewLineSet([]uint32{line}), scope.ModeDiff)
		if !regions[0].Changed {
			t.Errorf("changed line %d should mark the paragraph", line)
		}
	}
	regions := scope.Classify(doc.Paragraphs, scope.NewLineSet([]uint32{4}), scope.ModeDiff)
	if regions[0].Changed {
		t.Errorf("a line past the paragraph must not mark it")
	}
}

func TestApplyRevertsUnchangedParagraphs(t *testing.T) {
	doc := parseString(t, fiveParagraphs)
	cfg := wrap.Config{Width: 30}

	candidate := doc.Reflowed(cfg)
	changed := scope.NewLineSet([]uint32{3})
	regions := scope.Classify(doc.Paragraphs, changed, scope.ModeDiff)

	final := scope.Apply(doc, candidate, regions)
	rendered := string(doc.Render(final))

	lines := strings.Split(rendered, "\n")
	if lines[0] != "first paragraph with quite a few words in a single long line" {
		t.Errorf("unchanged first paragraph was rewritten: %q", lines[0])
	}
	if !strings.Contains(rendered, "second paragraph") {
		t.Fatalf("second paragraph content lost:\n%s", rendered)
	}
	for _, line := range lines {
		if strings.HasPrefix(line, "second") && len(line) > 30 {
			t.Errorf("second paragraph was not reflowed: %q", line)
		}
	}
	// The changed paragraph wrapped, so the output gained lines.
	if len(lines) <= strings.Count(fiveParagraphs, "\n")+1 {
		t.Errorf("expected the changed paragraph to wrap into more lines:\n%s", rendered)
	}
}

func TestApplyFullModeKeepsCandidate(t *testing.T) {
	doc := parseString(t, fiveParagraphs)
	cfg := wrap.Config{Width: 30}

	candidate := doc.Reflowed(cfg)
	regions := scope.Classify(doc.Paragraphs, nil, scope.ModeFull)

	final := scope.Apply(doc, candidate, regions)
	if !bytes.Equal(doc.Render(final), doc.Render(candidate)) {
		t.Errorf("full mode must keep the candidate layout intact")
	}
}

func TestModeString(t *testing.T) {
	if got := scope.ModeDiff.String(); got != "diff-scoped" {
		t.Errorf("ModeDiff: got %q", got)
	}
	if got := scope.ModeFull.String(); got != "full" {
		t.Errorf("ModeFull: got %q", got)
	}
}

func TestLineSetContains(t *testing.T) {
	s := scope.NewLineSet([]uint32{1, 7, 7, 42})
	for _, n := range []uint32{1, 7, 42} {
		if !s.Contains(n) {
			t.Errorf("expected %d in set", n)
		}
	}
	if s.Contains(2) {
		t.Errorf("2 must not be in set")
	}
}
