package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet(Options{})

	id1 := fs.AddVirtual("left.txt", "the cat sat")
	id2 := fs.AddVirtual("left.txt", "the big cat sat")
	if id1 != 0 || id2 != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", id1, id2)
	}

	latest, ok := fs.GetByPath("left.txt")
	if !ok {
		t.Fatal("expected file to exist after AddVirtual")
	}
	if latest.ID != id2 || latest.Text() != "the big cat sat" {
		t.Fatalf("GetByPath returned %d %q", latest.ID, latest.Text())
	}
	if got := fs.Get(id1).Text(); got != "the cat sat" {
		t.Fatalf("old version lost: %q", got)
	}
	if fs.Get(id1).Flags&FileVirtual == 0 {
		t.Fatal("expected FileVirtual flag")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFone\r\ntwo\r"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet(Options{})
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Text() != "one\ntwo\r" {
		t.Fatalf("unexpected content %q", f.Text())
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if f.Flags&FileVirtual != 0 {
		t.Fatal("file from disk must not be virtual")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet(Options{})
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestNFCNormalization(t *testing.T) {
	decomposed := "e\u0301te\u0301"

	plain := NewFileSet(Options{})
	f := plain.Get(plain.AddVirtual("a", decomposed))
	if f.Text() != decomposed || f.Flags&FileNormalizedNFC != 0 {
		t.Fatalf("content must stay untouched without NFC, got %q", f.Text())
	}

	nfc := NewFileSet(Options{NFC: true})
	f = nfc.Get(nfc.AddVirtual("a", decomposed))
	if f.Text() != "\u00e9t\u00e9" {
		t.Fatalf("expected composed text, got %q", f.Text())
	}
	if f.Flags&FileNormalizedNFC == 0 {
		t.Fatal("expected FileNormalizedNFC flag")
	}
}

func TestPosition(t *testing.T) {
	f := Virtual("v", "ab\ncd\n\nx")
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestSpan(t *testing.T) {
	a := Span{File: 1, Start: 2, End: 5}
	if a.String() != "1:2-5" {
		t.Fatalf("String = %q", a.String())
	}
	if a.Len() != 3 || (Span{Start: 4, End: 4}).Len() != 0 {
		t.Fatal("unexpected Len")
	}
	if !(Span{Start: 5, End: 3}).Empty() {
		t.Fatal("inverted span must be empty")
	}
}
