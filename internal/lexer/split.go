package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"tokalign/internal/token"
)

// Splitter is a word-boundary tokenizer. It returns the non-whitespace units
// of s in order of appearance; whitespace is restored by Rescan.
type Splitter interface {
	Split(s string) []string
}

// SplitterFunc adapts a plain function to Splitter.
type SplitterFunc func(s string) []string

// Split calls f(s).
func (f SplitterFunc) Split(s string) []string { return f(s) }

var (
	// Words splits on whitespace and peels surrounding punctuation into separate units.
	Words Splitter = SplitterFunc(splitWords)
	// Chars yields every non-whitespace rune as its own unit.
	Chars Splitter = SplitterFunc(splitChars)
)

// SplitterByName resolves the names used on the command line and in tokalign.toml.
func SplitterByName(name string) (Splitter, error) {
	switch strings.ToLower(name) {
	case "", "words", "word":
		return Words, nil
	case "chars", "char", "characters":
		return Chars, nil
	default:
		return nil, fmt.Errorf("unknown splitter %q (want words or chars)", name)
	}
}

func splitWords(s string) []string {
	chunks := strings.Fields(s)
	units := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		units = appendChunk(units, chunk)
	}
	return units
}

// appendChunk разбирает один фрагмент без пробелов: открывающие знаки слева,
// знаки препинания справа, середина остаётся целой.
func appendChunk(units []string, chunk string) []string {
	for chunk != "" {
		r, sz := utf8.DecodeRuneInString(chunk)
		mark := string(r)
		if !token.IsOpeningMark(mark) {
			break
		}
		units = append(units, mark)
		chunk = chunk[sz:]
	}

	var tail []string
	for chunk != "" {
		if strings.HasSuffix(chunk, "''") {
			tail = append(tail, "''")
			chunk = chunk[:len(chunk)-2]
			continue
		}
		r, sz := utf8.DecodeLastRuneInString(chunk)
		mark := string(r)
		if !token.IsPunctuation(mark) {
			break
		}
		tail = append(tail, mark)
		chunk = chunk[:len(chunk)-sz]
	}

	if chunk != "" {
		units = append(units, chunk)
	}
	for i := len(tail) - 1; i >= 0; i-- {
		units = append(units, tail[i])
	}
	return units
}

func splitChars(s string) []string {
	units := make([]string, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		units = append(units, string(r))
	}
	return units
}
