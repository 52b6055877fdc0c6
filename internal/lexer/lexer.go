package lexer

import (
	"errors"
	"fmt"
	"unicode"

	"tokalign/internal/source"
	"tokalign/internal/token"

	"golang.org/x/text/unicode/norm"
)

// ErrTokenNotFound is returned when a unit produced by the splitter does not
// occur in the input at or after the current position.
var ErrTokenNotFound = errors.New("lexer: token not found in source text")

// Lexer turns text into a token stream that keeps every whitespace rune.
type Lexer struct {
	opts Options
}

// New creates a lexer with the given options.
func New(opts Options) *Lexer {
	return &Lexer{opts: opts}
}

// Tokenize splits s with the default options.
func Tokenize(s string) ([]*token.Token, error) {
	return New(Options{}).Tokenize(s)
}

// Tokenize splits s into units and restores the whitespace between them.
func (lx *Lexer) Tokenize(s string) ([]*token.Token, error) {
	if lx.opts.NormalizeNFC {
		s = norm.NFC.String(s)
	}
	return Rescan(s, lx.opts.splitter().Split(s))
}

// TokenizeFile tokenizes the content of an already loaded input.
func (lx *Lexer) TokenizeFile(f *source.File) ([]*token.Token, error) {
	content := f
	if lx.opts.NormalizeNFC && !norm.NFC.IsNormal(f.Content) {
		content = source.Virtual(f.Path, norm.NFC.String(f.Text()))
	}
	return rescanFile(content, lx.opts.splitter().Split(content.Text()))
}

// Rescan walks s and interleaves units with one token per whitespace rune:
// leading whitespace first, then each unit followed by the whitespace after it.
// Characters that are neither whitespace nor part of a unit are dropped.
func Rescan(s string, units []string) ([]*token.Token, error) {
	return rescanFile(source.Virtual("<input>", s), units)
}

func rescanFile(f *source.File, units []string) ([]*token.Token, error) {
	cur := NewCursor(f)
	toks := make([]*token.Token, 0, 2*len(units)+1)
	toks = appendWhitespace(&cur, toks)
	for _, unit := range units {
		if unit == "" {
			continue
		}
		sp, ok := cur.Seek(unit)
		if !ok {
			pos := f.Position(cur.Off)
			return nil, fmt.Errorf("%w: %q from %d:%d", ErrTokenNotFound, unit, pos.Line, pos.Col)
		}
		toks = append(toks, token.New(cur.Text(sp)))
		toks = appendWhitespace(&cur, toks)
	}
	return toks, nil
}

func appendWhitespace(cur *Cursor, toks []*token.Token) []*token.Token {
	for !cur.EOF() {
		m := cur.Mark()
		r := cur.BumpRune()
		if !unicode.IsSpace(r) {
			cur.Reset(m)
			break
		}
		toks = append(toks, token.New(cur.Text(cur.SpanFrom(m))))
	}
	return toks
}
