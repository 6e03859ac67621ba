package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a loaded document.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileCRLF indicates the file uses \r\n line endings.
	FileCRLF
)

// File captures metadata and content for a single document.
// Content keeps the bytes exactly as read (minus a leading BOM); line-ending
// style is recorded in Flags rather than normalized away, so untouched
// regions can be re-emitted byte-identical.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// EOL returns the line terminator used by the file.
func (f *File) EOL() string {
	if f.Flags&FileCRLF != 0 {
		return "\r\n"
	}
	return "\n"
}

// Raw returns the file bytes as they appeared on disk, BOM included.
func (f *File) Raw() []byte {
	if f.Flags&FileHadBOM == 0 {
		return f.Content
	}
	out := make([]byte, 0, len(BOM)+len(f.Content))
	out = append(out, BOM...)
	return append(out, f.Content...)
}

// LineCol represents a human-readable position in a document.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
