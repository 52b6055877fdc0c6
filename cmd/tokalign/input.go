package main

import (
	"tokalign/internal/sequence"
	"tokalign/internal/source"
)

// inputSet loads command arguments either literally or from files.
type inputSet struct {
	files *source.FileSet
}

func newInputSet(s *settings) *inputSet {
	return &inputSet{files: source.NewFileSet(source.Options{NFC: s.Lexer.NormalizeNFC})}
}

// file returns the argument as a source file, reading it from disk when
// fromFile is set. A path named twice is read once.
func (in *inputSet) file(arg string, fromFile bool) (*source.File, error) {
	if !fromFile {
		return in.files.Get(in.files.AddVirtual("<arg>", arg)), nil
	}
	if f, ok := in.files.GetByPath(arg); ok {
		return f, nil
	}
	id, err := in.files.Load(arg)
	if err != nil {
		return nil, err
	}
	return in.files.Get(id), nil
}

func (in *inputSet) text(arg string, fromFile bool) (string, error) {
	f, err := in.file(arg, fromFile)
	if err != nil {
		return "", err
	}
	return f.Text(), nil
}

func (in *inputSet) sequence(s *settings, arg string, fromFile bool) (*sequence.Sequence, error) {
	f, err := in.file(arg, fromFile)
	if err != nil {
		return nil, err
	}
	toks, err := s.lexer().TokenizeFile(f)
	if err != nil {
		return nil, err
	}
	return sequence.New(toks...), nil
}
