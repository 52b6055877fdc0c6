package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tokalign/internal/lexer"
	"tokalign/internal/source"
	"tokalign/internal/token"
)

func texts(toks []*token.Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func kinds(toks []*token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func mustTokenize(t *testing.T, lx *lexer.Lexer, s string) []*token.Token {
	t.Helper()
	toks, err := lx.Tokenize(s)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", s, err)
	}
	return toks
}

func TestTokenizeWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "the cat sat", []string{"the", " ", "cat", " ", "sat"}},
		{"empty", "", []string{}},
		{"trailing punctuation", "Hello, world!", []string{"Hello", ",", " ", "world", "!"}},
		{"interior kept", "don't use e-mail 3.14.", []string{"don't", " ", "use", " ", "e-mail", " ", "3.14", "."}},
		{"opening marks", "(see „this“)", []string{"(", "see", " ", "„", "this", "“", ")"}},
		{"leading whitespace", "  a\n", []string{" ", " ", "a", "\n"}},
		{"tabs and newlines", "a\tb\n\nc", []string{"a", "\t", "b", "\n", "\n", "c"}},
		{"double apostrophe", "said ''", []string{"said", " ", "''"}},
		{"only punctuation", "...", []string{".", ".", "."}},
	}
	lx := lexer.New(lexer.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(mustTokenize(t, lx, tt.in))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeKinds(t *testing.T) {
	toks := mustTokenize(t, lexer.New(lexer.Options{}), "cat 42,\n x=y")
	want := []token.Kind{
		token.Word, token.Whitespace, token.Numeric, token.Punctuation,
		token.Special, token.Whitespace, token.Generic,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeReconstructsInput(t *testing.T) {
	inputs := []string{
		"the cat sat",
		"  Labas,  pasauli!\n\tKaip sekasi?",
		"žąsis (baltoji) – paukštis…",
	}
	for _, in := range inputs {
		toks, err := lexer.Tokenize(in)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", in, err)
		}
		if got := strings.Join(texts(toks), ""); got != in {
			t.Errorf("concatenation = %q, want %q", got, in)
		}
	}
}

func TestTokenizeChars(t *testing.T) {
	lx := lexer.New(lexer.Options{Splitter: lexer.Chars})
	got := texts(mustTokenize(t, lx, "ab c"))
	if diff := cmp.Diff([]string{"a", "b", " ", "c"}, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestRescanNotFound(t *testing.T) {
	_, err := lexer.Rescan("the cat", []string{"the", "dog"})
	if !errors.Is(err, lexer.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), `"dog"`) {
		t.Fatalf("error should name the unit: %v", err)
	}
}

func TestRescanOrderMatters(t *testing.T) {
	// "a" must be found after "b", not before it
	_, err := lexer.Rescan("a b", []string{"b", "a"})
	if !errors.Is(err, lexer.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestRescanExternalSplitter(t *testing.T) {
	split := lexer.SplitterFunc(func(s string) []string { return []string{"New York", "is", "big"} })
	lx := lexer.New(lexer.Options{Splitter: split})
	got := texts(mustTokenize(t, lx, "New York is big"))
	if diff := cmp.Diff([]string{"New York", " ", "is", " ", "big"}, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeNFC(t *testing.T) {
	decomposed := "cafe\u0301"
	plain := mustTokenize(t, lexer.New(lexer.Options{}), decomposed)
	if plain[0].Text != decomposed {
		t.Fatalf("text must stay decomposed without NFC: %q", plain[0].Text)
	}
	composed := mustTokenize(t, lexer.New(lexer.Options{NormalizeNFC: true}), decomposed)
	if composed[0].Text != "caf\u00e9" {
		t.Fatalf("expected composed text, got %q", composed[0].Text)
	}

	f := source.Virtual("in", decomposed)
	toks, err := lexer.New(lexer.Options{NormalizeNFC: true}).TokenizeFile(f)
	if err != nil {
		t.Fatalf("TokenizeFile: %v", err)
	}
	if toks[0].Text != "caf\u00e9" {
		t.Fatalf("TokenizeFile must normalize too, got %q", toks[0].Text)
	}
}

func TestSplitterByName(t *testing.T) {
	for _, name := range []string{"", "words", "Chars"} {
		if _, err := lexer.SplitterByName(name); err != nil {
			t.Errorf("SplitterByName(%q): %v", name, err)
		}
	}
	if _, err := lexer.SplitterByName("sentences"); err == nil {
		t.Fatal("expected an error for an unknown splitter")
	}
}
