package token_test

import (
	"strings"
	"testing"

	"tokalign/internal/token"
)

func TestEqualIgnoresEverythingButText(t *testing.T) {
	a := token.New("cat")
	b := &token.Token{Kind: token.Generic, Text: "cat", Index: 7, Start: 30, Aligned: true, Color: token.Red}
	if !a.Equal(b) {
		t.Fatalf("tokens with equal text must be equal")
	}
	if a.Equal(token.New("cats")) {
		t.Fatalf("tokens with different text must differ")
	}
}

func TestSpacer(t *testing.T) {
	sp := token.NewSpacer(3)
	if sp.Text != "" || sp.Kind != token.Spacer || !sp.Aligned || sp.Padding != 3 {
		t.Fatalf("unexpected spacer: %#v", sp)
	}
	if got := sp.PaddedText(token.DefaultFiller); got != "===" {
		t.Fatalf("PaddedText = %q, want ===", got)
	}
	if token.NewSpacer(-2).Padding != 0 {
		t.Fatalf("negative width must clamp to zero")
	}
}

func TestPaddedTextOnlyWhenAligned(t *testing.T) {
	tok := token.New("ab")
	tok.Padding = 2
	if got := tok.PaddedText('.'); got != "ab" {
		t.Fatalf("unaligned token must not be padded, got %q", got)
	}
	tok.Aligned = true
	if got := tok.PaddedText('.'); got != "ab.." {
		t.Fatalf("PaddedText = %q, want ab..", got)
	}
}

func TestAnnotated(t *testing.T) {
	tok := token.New("cat")
	if got := tok.Annotated(token.DefaultFiller); got != "cat" {
		t.Fatalf("untagged token must render plain, got %q", got)
	}
	tok.Color = token.Blue
	tok.Background = token.BgYellow
	tok.Format = token.Bold
	got := tok.Annotated(token.DefaultFiller)
	if !strings.HasPrefix(got, "\x1b[34;43;1m") || !strings.Contains(got, "cat") {
		t.Fatalf("annotated text missing escape sequence: %q", got)
	}
}

func TestDeriveSnapshot(t *testing.T) {
	prior := token.New("kitten")
	prior.Aligned = true
	prior.Padding = 4
	prior.Color = token.Red

	d := token.Derive("", prior, "mask")
	if d.Kind != token.Spacer || d.Operation != "mask" {
		t.Fatalf("unexpected derived token: %#v", d)
	}
	if d.Original == nil || d.Original == prior {
		t.Fatalf("original must be a detached snapshot")
	}
	if d.Original.Aligned || d.Original.Padding != 0 || d.Original.Color != token.ColorNone {
		t.Fatalf("snapshot must not carry alignment annotations: %#v", d.Original)
	}
	prior.Text = "changed"
	if d.Original.Text != "kitten" {
		t.Fatalf("snapshot must not follow later edits of the prior token")
	}
}

func TestLenAndWidth(t *testing.T) {
	tok := token.New("žąsis")
	if tok.Len() != 5 {
		t.Fatalf("Len = %d, want 5 runes", tok.Len())
	}
	wide := token.New("日本")
	if wide.Len() != 2 || wide.Width() != 4 {
		t.Fatalf("wide text: Len=%d Width=%d", wide.Len(), wide.Width())
	}
	tok.Start = 10
	if tok.End() != 15 {
		t.Fatalf("End = %d, want 15", tok.End())
	}
}

func TestSummaryEscapesControlCharacters(t *testing.T) {
	tok := token.New("\n")
	if strings.Contains(tok.Summary(), "\n") {
		t.Fatalf("summary must stay on one line: %q", tok.Summary())
	}
	if !strings.Contains(tok.Summary(), `\n`) {
		t.Fatalf("summary must show the escaped newline: %q", tok.Summary())
	}
}
