package diag

import (
	"github.com/domfarolino/specfmt/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Reporter receives diagnostics as they are produced.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter is a Reporter that appends into a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r *BagReporter) Report(d Diagnostic) {
	r.Bag.Add(d)
}
