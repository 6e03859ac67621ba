package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo         Code = 1000
	LexUnclosedSpan Code = 1001

	// Document segmentation
	DocInfo              Code = 2000
	DocUnterminatedBlock Code = 2001

	// Diff scoping
	ScopeInfo          Code = 3000
	ScopeNoBaseline    Code = 3001
	ScopeNotRepository Code = 3002

	// I/O
	IOInfo           Code = 4000
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
)

// ID returns the stable printable identifier of the code, e.g. "SPF1001".
func (c Code) ID() string {
	return fmt.Sprintf("SPF%04d", uint16(c))
}

func (c Code) String() string {
	switch c {
	case LexUnclosedSpan:
		return "unclosed-span"
	case DocUnterminatedBlock:
		return "unterminated-block"
	case ScopeNoBaseline:
		return "no-baseline"
	case ScopeNotRepository:
		return "not-a-repository"
	case IOLoadFileError:
		return "load-error"
	case IOWriteFileError:
		return "write-error"
	case LexInfo, DocInfo, ScopeInfo, IOInfo:
		return "info"
	}
	return "unknown"
}
