package source

type (
	// FileID uniquely identifies an input within a FileSet.
	FileID uint32
	// FileFlags records how the content was normalized on load.
	FileFlags uint8
)

const (
	// FileVirtual indicates the input was added from memory (argument, stdin, test).
	FileVirtual FileFlags = 1 << iota // не с диска
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures one input text.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in an input.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// Options control normalization applied by Load and AddVirtual.
type Options struct {
	// NFC composes the content into Unicode normalization form C.
	NFC bool
}
