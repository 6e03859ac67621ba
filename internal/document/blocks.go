package document

import "strings"

// BlockMarker delimits a verbatim block that is never reflowed. Open and
// Close are matched case-insensitively against the start of the trimmed
// line.
type BlockMarker struct {
	Open  string
	Close string
}

// DefaultBlocks returns the verbatim block markers recognized out of the
// box: HTML preformatted/embedded content and fenced code blocks.
func DefaultBlocks() []BlockMarker {
	return []BlockMarker{
		{Open: "<pre", Close: "</pre>"},
		{Open: "<xmp", Close: "</xmp>"},
		{Open: "<style", Close: "</style>"},
		{Open: "<script", Close: "</script>"},
		{Open: "```", Close: "```"},
	}
}

// matchBlockOpen returns the marker whose opener starts the trimmed line.
func matchBlockOpen(line string, blocks []BlockMarker) (BlockMarker, bool) {
	trimmed := strings.ToLower(strings.TrimLeft(line, " \t"))
	for _, b := range blocks {
		if strings.HasPrefix(trimmed, strings.ToLower(b.Open)) {
			return b, true
		}
	}
	return BlockMarker{}, false
}

// closesOnSameLine reports whether the block opened on line also closes on
// it, past the opening marker.
func closesOnSameLine(line string, b BlockMarker) bool {
	lower := strings.ToLower(strings.TrimLeft(line, " \t"))
	rest := lower[len(b.Open):]
	return strings.Contains(rest, strings.ToLower(b.Close))
}

// closesBlock reports whether the line contains the block's closing marker.
func closesBlock(line string, b BlockMarker) bool {
	return strings.Contains(strings.ToLower(line), strings.ToLower(b.Close))
}
