package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet keeps the inputs of one run so they can be addressed by ID and by path.
type FileSet struct {
	files []File
	index map[string]FileID // path -> latest id
	opts  Options
}

// NewFileSet creates an empty FileSet that normalizes content according to opts.
func NewFileSet(opts Options) *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
		opts:  opts,
	}
}

// Add stores already normalized content and returns a new FileID.
// Adding the same path again creates a new version; GetByPath returns the latest.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes it and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := fileSet.normalize(content)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds in-memory text with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name, text string) FileID {
	content, flags := fileSet.normalize([]byte(text))
	return fileSet.Add(name, content, flags|FileVirtual)
}

func (fileSet *FileSet) normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if fileSet.opts.NFC {
		var changed bool
		content, changed = normalizeNFC(content)
		if changed {
			flags |= FileNormalizedNFC
		}
	}
	return content, flags
}

// Get returns the file for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetByPath returns the latest version of a file added under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Len returns the number of stored versions.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Text returns the content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// Position converts a byte offset into a line and column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Virtual builds a standalone in-memory file that does not belong to any FileSet.
func Virtual(name, text string) *File {
	content := []byte(text)
	return &File{
		Path:    name,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   FileVirtual,
	}
}
