package token

// Kind represents the category of a document token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota

	// Word represents a plain breakable run of non-whitespace text.
	Word
	// CodeSpan represents an inline code span, delimiters included.
	CodeSpan
	// TagSpan represents a markup tag, delimiters included.
	TagSpan
	// RefSpan represents a spec cross-reference span, delimiters included.
	RefSpan
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case CodeSpan:
		return "CodeSpan"
	case TagSpan:
		return "TagSpan"
	case RefSpan:
		return "RefSpan"
	}
	return "Invalid"
}

// Atomic reports whether tokens of this kind must never be split across
// output lines. Word tokens are never split either (breaks happen only
// between tokens), but atomic kinds may legitimately contain whitespace.
func (k Kind) Atomic() bool {
	switch k {
	case CodeSpan, TagSpan, RefSpan:
		return true
	default:
		return false
	}
}
