package sequence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"tokalign/internal/token"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrMalformedToken is returned when a serialized token has an unknown tag or misses a required field.
	ErrMalformedToken = errors.New("sequence: malformed serialized token")
	// ErrUnknownFormat is returned for an unsupported serialization format.
	ErrUnknownFormat = errors.New("sequence: unknown serialization format")
)

// Format selects the wire encoding of a sequence record.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// tokenRecord is the structural form of a token. Kind and Text are pointers
// so that a missing key can be told apart from an empty value.
type tokenRecord struct {
	Kind         *string      `json:"kind" msgpack:"kind"`
	Text         *string      `json:"text" msgpack:"text"`
	Index        uint32       `json:"index" msgpack:"index"`
	Start        uint32       `json:"start" msgpack:"start"`
	Color        string       `json:"color" msgpack:"color"`
	Background   string       `json:"background" msgpack:"background"`
	Format       string       `json:"format,omitempty" msgpack:"format,omitempty"`
	Original     *tokenRecord `json:"original" msgpack:"original"`
	Operation    string       `json:"operation" msgpack:"operation"`
	Aligned      bool         `json:"aligned" msgpack:"aligned"`
	PaddingWidth int          `json:"padding_width" msgpack:"padding_width"`
}

// Tokens is a pointer so that a record without the key can be told apart
// from an empty sequence.
type sequenceRecord struct {
	Tokens     *[]tokenRecord `json:"tokens" msgpack:"tokens"`
	CachedText string        `json:"cached_text" msgpack:"cached_text"`
}

func toRecord(t *token.Token) (tokenRecord, error) {
	index, err := safecast.Conv[uint32](t.Index)
	if err != nil {
		return tokenRecord{}, fmt.Errorf("token %d index: %w", t.Index, err)
	}
	start, err := safecast.Conv[uint32](t.Start)
	if err != nil {
		return tokenRecord{}, fmt.Errorf("token %d start: %w", t.Index, err)
	}
	kind, text := t.Kind.String(), t.Text
	rec := tokenRecord{
		Kind:         &kind,
		Text:         &text,
		Index:        index,
		Start:        start,
		Color:        t.Color.String(),
		Background:   t.Background.String(),
		Format:       t.Format.String(),
		Operation:    t.Operation,
		Aligned:      t.Aligned,
		PaddingWidth: t.Padding,
	}
	if t.Original != nil {
		orig, err := toRecord(t.Original)
		if err != nil {
			return tokenRecord{}, err
		}
		rec.Original = &orig
	}
	return rec, nil
}

func fromRecord(rec *tokenRecord) (*token.Token, error) {
	if rec.Kind == nil {
		return nil, fmt.Errorf("%w: missing kind", ErrMalformedToken)
	}
	if rec.Text == nil {
		return nil, fmt.Errorf("%w: missing text", ErrMalformedToken)
	}
	kind, ok := token.ParseKind(*rec.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrMalformedToken, *rec.Kind)
	}
	c, ok := token.ParseColor(rec.Color)
	if !ok {
		return nil, fmt.Errorf("%w: unknown color %q", ErrMalformedToken, rec.Color)
	}
	bg, ok := token.ParseBackground(rec.Background)
	if !ok {
		return nil, fmt.Errorf("%w: unknown background %q", ErrMalformedToken, rec.Background)
	}
	format, ok := token.ParseFormat(rec.Format)
	if !ok {
		return nil, fmt.Errorf("%w: unknown format %q", ErrMalformedToken, rec.Format)
	}
	if rec.PaddingWidth < 0 {
		return nil, fmt.Errorf("%w: negative padding_width %d", ErrMalformedToken, rec.PaddingWidth)
	}
	t := &token.Token{
		Kind:       kind,
		Text:       *rec.Text,
		Aligned:    rec.Aligned,
		Padding:    rec.PaddingWidth,
		Color:      c,
		Background: bg,
		Format:     format,
		Operation:  rec.Operation,
	}
	if rec.Original != nil {
		orig, err := fromRecord(rec.Original)
		if err != nil {
			return nil, fmt.Errorf("original: %w", err)
		}
		t.Original = orig
	}
	return t, nil
}

func (s *Sequence) record() (*sequenceRecord, error) {
	toks := make([]tokenRecord, len(s.tokens))
	for i, t := range s.tokens {
		r, err := toRecord(t)
		if err != nil {
			return nil, err
		}
		toks[i] = r
	}
	return &sequenceRecord{Tokens: &toks, CachedText: s.String()}, nil
}

// fromSequenceRecord rebuilds a sequence; index and start are recomputed, not trusted.
func fromSequenceRecord(rec *sequenceRecord) (*Sequence, error) {
	if rec.Tokens == nil {
		return nil, fmt.Errorf("%w: missing tokens", ErrMalformedToken)
	}
	recs := *rec.Tokens
	toks := make([]*token.Token, len(recs))
	for i := range recs {
		t, err := fromRecord(&recs[i])
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		toks[i] = t
	}
	return New(toks...), nil
}

// Encode writes the sequence record to w.
func Encode(w io.Writer, s *Sequence, f Format) error {
	rec, err := s.record()
	if err != nil {
		return err
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(rec)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(rec)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// Decode reads one sequence record from r.
func Decode(r io.Reader, f Format) (*Sequence, error) {
	var rec sequenceRecord
	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	return fromSequenceRecord(&rec)
}

// Marshal encodes the sequence into a byte slice.
func Marshal(s *Sequence, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a sequence from data.
func Unmarshal(data []byte, f Format) (*Sequence, error) {
	return Decode(bytes.NewReader(data), f)
}
