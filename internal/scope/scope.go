// Package scope decides which paragraphs a formatting run may touch, by
// intersecting paragraph line ranges with the set of lines changed relative
// to a revision-control baseline. It is pure: callers compute the changed
// lines once and pass them in.
package scope

import (
	"github.com/domfarolino/specfmt/internal/document"
)

// Mode selects how much of the document is in scope.
type Mode uint8

const (
	// ModeDiff restricts formatting to paragraphs intersecting changed lines.
	ModeDiff Mode = iota
	// ModeFull puts the whole document in scope.
	ModeFull
)

func (m Mode) String() string {
	if m == ModeFull {
		return "full"
	}
	return "diff-scoped"
}

// LineSet is a set of 1-based line numbers in the working file.
type LineSet map[uint32]struct{}

// NewLineSet builds a LineSet from a list of line numbers.
func NewLineSet(lines []uint32) LineSet {
	s := make(LineSet, len(lines))
	for _, n := range lines {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports membership of a 1-based line number.
func (s LineSet) Contains(n uint32) bool {
	_, ok := s[n]
	return ok
}

// intersects reports whether any line in [start, end] (inclusive) is in the
// set.
func (s LineSet) intersects(start, end uint32) bool {
	if len(s) == 0 {
		return false
	}
	for n := start; n <= end; n++ {
		if s.Contains(n) {
			return true
		}
	}
	return false
}

// Region is a half-open line range [Start, End) in the working file, tagged
// with whether formatting may rewrite it.
type Region struct {
	Start   uint32
	End     uint32
	Changed bool
}

// Classify produces one Region per paragraph, in order. In ModeFull, or
// when a paragraph intersects the changed-line set, the region is Changed.
// Callers that could not obtain a baseline must use ModeFull: an absent
// baseline means "everything changed", never "nothing changed".
func Classify(paragraphs []document.Paragraph, changed LineSet, mode Mode) []Region {
	regions := make([]Region, len(paragraphs))
	for i := range paragraphs {
		p := &paragraphs[i]
		regions[i] = Region{
			Start:   p.StartLine,
			End:     p.EndLine + 1,
			Changed: mode == ModeFull || changed.intersects(p.StartLine, p.EndLine),
		}
	}
	return regions
}

// Apply merges a candidate layout with the original one: regions classified
// Unchanged keep the original paragraph bytes, so the final output differs
// from the input only inside Changed regions.
func Apply(doc *document.Document, candidate [][]string, regions []Region) [][]string {
	out := make([][]string, len(candidate))
	for i := range candidate {
		if i < len(regions) && !regions[i].Changed {
			out[i] = doc.Paragraphs[i].Lines
			continue
		}
		out[i] = candidate[i]
	}
	return out
}
