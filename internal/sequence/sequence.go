package sequence

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"tokalign/internal/lexer"
	"tokalign/internal/token"
)

// ErrNoTokenAtPosition is returned by InsertChar when no token covers the offset.
var ErrNoTokenAtPosition = errors.New("sequence: no token at position")

// Sequence is an ordered list of tokens with derived positions.
type Sequence struct {
	tokens []*token.Token
	text   string
	cached bool
}

// New builds a sequence that takes ownership of toks.
func New(toks ...*token.Token) *Sequence {
	s := &Sequence{tokens: toks}
	s.Reindex()
	return s
}

// FromString tokenizes text with the default lexer.
func FromString(text string) (*Sequence, error) {
	return FromStringWith(lexer.New(lexer.Options{}), text)
}

// FromStringWith tokenizes text with lx.
func FromStringWith(lx *lexer.Lexer, text string) (*Sequence, error) {
	toks, err := lx.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return New(toks...), nil
}

// MustFromString is FromString for literals in tests and examples.
func MustFromString(text string) *Sequence {
	s, err := FromString(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of tokens.
func (s *Sequence) Len() int { return len(s.tokens) }

// At returns the i-th token.
func (s *Sequence) At(i int) *token.Token { return s.tokens[i] }

// Tokens returns the token slice. Callers must not reorder it; use Insert.
func (s *Sequence) Tokens() []*token.Token { return s.tokens }

// Insert places tok at index i and reindexes. It panics if i is out of range.
func (s *Sequence) Insert(i int, tok *token.Token) {
	s.tokens = slices.Insert(s.tokens, i, tok)
	s.Reindex()
}

// Append adds toks at the end and reindexes.
func (s *Sequence) Append(toks ...*token.Token) {
	s.tokens = append(s.tokens, toks...)
	s.Reindex()
}

// InsertText classifies text and inserts the resulting token at index i.
func (s *Sequence) InsertText(i int, text string) *token.Token {
	tok := token.New(text)
	s.Insert(i, tok)
	return tok
}

// InsertChar inserts r into the token covering the rune offset and reclassifies it.
func (s *Sequence) InsertChar(offset int, r rune) error {
	tok := s.AtPosition(offset)
	if tok == nil {
		return fmt.Errorf("%w: %d", ErrNoTokenAtPosition, offset)
	}
	runes := []rune(tok.Text)
	at := offset - tok.Start
	runes = slices.Insert(runes, at, r)
	tok.Text = string(runes)
	tok.Kind = token.Classify(tok.Text)
	s.Reindex()
	return nil
}

// AtPosition returns the token whose [Start, End) span contains offset, or nil.
// Spacers and separators cover no offsets.
func (s *Sequence) AtPosition(offset int) *token.Token {
	i, found := slices.BinarySearchFunc(s.tokens, offset, func(t *token.Token, off int) int {
		switch {
		case t.End() <= off:
			return -1
		case t.Start > off:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return nil
	}
	return s.tokens[i]
}

// ClearAlignment resets alignment annotations on every token.
func (s *Sequence) ClearAlignment() {
	for _, t := range s.tokens {
		t.ClearAlignment()
	}
}

// Search returns tokens whose text equals query, or contains it when substring is set.
func (s *Sequence) Search(query string, substring bool) []*token.Token {
	var out []*token.Token
	for _, t := range s.tokens {
		if t.Text == query || (substring && strings.Contains(t.Text, query)) {
			out = append(out, t)
		}
	}
	return out
}

// Concat re-tokenizes the two flat strings joined together.
func (s *Sequence) Concat(other *Sequence) (*Sequence, error) {
	return FromString(s.String() + other.String())
}

// Clone returns a deep copy; the clone shares no tokens with s.
func (s *Sequence) Clone() *Sequence {
	toks := make([]*token.Token, len(s.tokens))
	for i, t := range s.tokens {
		toks[i] = t.Clone()
	}
	return &Sequence{tokens: toks, text: s.text, cached: s.cached}
}

// SpacerCount returns the number of gap placeholders.
func (s *Sequence) SpacerCount() int {
	n := 0
	for _, t := range s.tokens {
		if t.IsSpacer() {
			n++
		}
	}
	return n
}
