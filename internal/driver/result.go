package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tokalign/internal/align"
	"tokalign/internal/sequence"
)

// PairResult is the outcome of aligning one pair.
type PairResult struct {
	Pair Pair
	// Alignment is nil when the pair failed.
	Alignment *align.Alignment
	Record    Record
	Err       error
	Elapsed   time.Duration
}

// Record is the serializable summary of a pair result.
type Record struct {
	ID    string      `json:"id"`
	Score float64     `json:"score"`
	Stats align.Stats `json:"stats"`
	Left  string      `json:"left"`
	Right string      `json:"right"`
	Error string      `json:"error,omitempty"`
}

func newRecord(id string, al *align.Alignment, filler rune) Record {
	return Record{
		ID:    id,
		Score: al.FinalScore(),
		Stats: al.Stats(),
		Left:  al.A.Padded(filler),
		Right: al.B.Padded(filler),
	}
}

// Records returns one record per result, failed pairs included.
func Records(results []PairResult) []Record {
	out := make([]Record, len(results))
	for i := range results {
		rec := results[i].Record
		rec.ID = results[i].Pair.ID
		if results[i].Err != nil {
			rec.Error = results[i].Err.Error()
		}
		out[i] = rec
	}
	return out
}

// WriteResults writes records as JSON Lines or as a msgpack array.
func WriteResults(w io.Writer, results []PairResult, f sequence.Format) error {
	recs := Records(results)
	switch f {
	case sequence.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for i := range recs {
			if err := enc.Encode(&recs[i]); err != nil {
				return err
			}
		}
		return nil
	case sequence.FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(recs)
	default:
		return fmt.Errorf("%w: %s", sequence.ErrUnknownFormat, f)
	}
}

// ReadResults decodes what WriteResults produced.
func ReadResults(r io.Reader, f sequence.Format) ([]Record, error) {
	switch f {
	case sequence.FormatJSON:
		dec := json.NewDecoder(r)
		var recs []Record
		for dec.More() {
			var rec Record
			if err := dec.Decode(&rec); err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
		return recs, nil
	case sequence.FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		var recs []Record
		if err := dec.Decode(&recs); err != nil {
			return nil, err
		}
		return recs, nil
	default:
		return nil, fmt.Errorf("%w: %s", sequence.ErrUnknownFormat, f)
	}
}
