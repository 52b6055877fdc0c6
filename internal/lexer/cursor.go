package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tokalign/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию во входном тексте
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// PeekRune декодирует руну под курсором
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// BumpRune перемещает курсор на одну руну и возвращает её
func (c *Cursor) BumpRune() rune {
	r, sz := c.PeekRune()
	if sz == 0 {
		return r
	}
	c.advance(sz)
	return r
}

func (c *Cursor) advance(n int) {
	un, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("cursor advance overflow: %w", err))
	}
	c.Off = min(c.Off+un, c.Limit)
}

// Seek moves the cursor past the first occurrence of unit at or after the
// current offset and returns the span it covers.
func (c *Cursor) Seek(unit string) (source.Span, bool) {
	if c.EOF() {
		return source.Span{}, false
	}
	rel := strings.Index(string(c.File.Content[c.Off:c.Limit]), unit)
	if rel < 0 {
		return source.Span{}, false
	}
	c.advance(rel)
	m := c.Mark()
	c.advance(len(unit))
	return c.SpanFrom(m), true
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Text returns the bytes covered by sp as a string.
func (c *Cursor) Text(sp source.Span) string {
	return string(c.File.Content[sp.Start:sp.End])
}
