// Package document segments a specification file into paragraphs: prose
// runs that may be reflowed, verbatim blocks that pass through untouched,
// and blank separators. Markup inside prose is treated as opaque atomic
// spans, not parsed.
package document

import (
	"bytes"

	"github.com/domfarolino/specfmt/internal/diag"
	"github.com/domfarolino/specfmt/internal/lexer"
	"github.com/domfarolino/specfmt/internal/source"
	"github.com/domfarolino/specfmt/internal/token"
	"github.com/domfarolino/specfmt/internal/wrap"
)

// Kind classifies a paragraph.
type Kind uint8

const (
	// KindProse is reflowable text.
	KindProse Kind = iota
	// KindVerbatim is a preformatted block emitted byte-identical.
	KindVerbatim
	// KindBlank is a run of blank or whitespace-only separator lines.
	KindBlank
)

func (k Kind) String() string {
	switch k {
	case KindProse:
		return "prose"
	case KindVerbatim:
		return "verbatim"
	case KindBlank:
		return "blank"
	}
	return "unknown"
}

// Paragraph is a run of physical lines sharing one role. Lines holds the
// original text without terminators; Tokens is populated for prose only.
type Paragraph struct {
	Kind      Kind
	Indent    string
	StartLine uint32 // 1-based, inclusive
	EndLine   uint32 // 1-based, inclusive
	Lines     []string
	Tokens    []token.Token
}

// NumLines returns the paragraph's original physical line count.
func (p *Paragraph) NumLines() uint32 {
	return p.EndLine - p.StartLine + 1
}

// Options configures parsing.
type Options struct {
	// Lexer configures atomic-span recognition for prose lines.
	Lexer lexer.Options

	// Blocks overrides the verbatim block markers. Nil means
	// DefaultBlocks().
	Blocks []BlockMarker

	// Reporter receives recoverable diagnostics. Nil discards them.
	Reporter diag.Reporter
}

// Document is one parsed file. It owns its paragraphs for the duration of a
// single formatting run.
type Document struct {
	File        *source.File
	Paragraphs  []Paragraph
	eol         string
	trailingEOL bool
}

// Parse segments the file into paragraphs. It never fails: malformed markup
// degrades to plain text and unterminated blocks run to end of file.
func Parse(file *source.File, opts Options) *Document {
	if opts.Blocks == nil {
		opts.Blocks = DefaultBlocks()
	}
	if opts.Lexer.Reporter == nil {
		opts.Lexer.Reporter = opts.Reporter
	}
	lx := lexer.New(file, opts.Lexer)

	numLines := file.NumLines()
	lines := make([]string, numLines)
	for i := uint32(0); i < numLines; i++ {
		lines[i] = file.GetLine(i + 1)
	}

	doc := &Document{
		File:        file,
		eol:         file.EOL(),
		trailingEOL: len(file.Content) > 0 && file.Content[len(file.Content)-1] == '\n',
	}

	ln := uint32(0) // 0-based index into lines
	for ln < numLines {
		line := lines[ln]

		if isBlank(line) {
			start := ln
			for ln < numLines && isBlank(lines[ln]) {
				ln++
			}
			doc.Paragraphs = append(doc.Paragraphs, Paragraph{
				Kind:      KindBlank,
				StartLine: start + 1,
				EndLine:   ln,
				Lines:     lines[start:ln],
			})
			continue
		}

		if marker, ok := matchBlockOpen(line, opts.Blocks); ok {
			start := ln
			if closesOnSameLine(line, marker) {
				ln++
			} else {
				ln++
				closed := false
				for ln < numLines {
					if closesBlock(lines[ln], marker) {
						ln++
						closed = true
						break
					}
					ln++
				}
				if !closed && opts.Reporter != nil {
					s, e := file.LineSpan(start + 1)
					opts.Reporter.Report(diag.Diagnostic{
						Severity: diag.SevInfo,
						Code:     diag.DocUnterminatedBlock,
						Message:  "block opened by " + marker.Open + " is not closed; treated as verbatim to end of file",
						Primary:  source.Span{File: file.ID, Start: s, End: e},
					})
				}
			}
			doc.Paragraphs = append(doc.Paragraphs, Paragraph{
				Kind:      KindVerbatim,
				StartLine: start + 1,
				EndLine:   ln,
				Lines:     lines[start:ln],
			})
			continue
		}

		// Prose: a maximal run of non-blank, non-block lines sharing one
		// indentation prefix.
		indent := wrap.Indent(line)
		start := ln
		var tokens []token.Token
		for ln < numLines {
			l := lines[ln]
			if isBlank(l) || wrap.Indent(l) != indent {
				break
			}
			if _, ok := matchBlockOpen(l, opts.Blocks); ok {
				break
			}
			tokens = append(tokens, lx.TokenizeLine(ln+1)...)
			ln++
		}
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{
			Kind:      KindProse,
			Indent:    indent,
			StartLine: start + 1,
			EndLine:   ln,
			Lines:     lines[start:ln],
			Tokens:    tokens,
		})
	}

	return doc
}

// Reflowed returns the candidate line layout: prose paragraphs reflowed to
// the config, everything else as-is.
func (d *Document) Reflowed(cfg wrap.Config) [][]string {
	out := make([][]string, len(d.Paragraphs))
	for i := range d.Paragraphs {
		p := &d.Paragraphs[i]
		if p.Kind == KindProse {
			out[i] = wrap.Reflow(p.Indent, p.Tokens, cfg)
			continue
		}
		out[i] = p.Lines
	}
	return out
}

// OriginalLines returns the untouched per-paragraph layout.
func (d *Document) OriginalLines() [][]string {
	out := make([][]string, len(d.Paragraphs))
	for i := range d.Paragraphs {
		out[i] = d.Paragraphs[i].Lines
	}
	return out
}

// Render joins a per-paragraph layout back into file bytes, preserving the
// document's line-ending style, trailing-newline shape, and BOM.
func (d *Document) Render(paragraphLines [][]string) []byte {
	var buf bytes.Buffer
	buf.Grow(len(d.File.Content) + 64)
	if d.File.Flags&source.FileHadBOM != 0 {
		buf.Write(source.BOM)
	}
	first := true
	for _, lines := range paragraphLines {
		for _, line := range lines {
			if !first {
				buf.WriteString(d.eol)
			}
			buf.WriteString(line)
			first = false
		}
	}
	if d.trailingEOL && !first {
		buf.WriteString(d.eol)
	}
	return buf.Bytes()
}

func isBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return false
		}
	}
	return true
}
