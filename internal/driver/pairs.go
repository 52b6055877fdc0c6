package driver

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"tokalign/internal/source"
)

// ErrBadPair is returned for a JSON Lines record that is not a pair object.
var ErrBadPair = errors.New("driver: malformed pair")

// Pair is one unit of batch work: two texts to align.
type Pair struct {
	ID    string `json:"id,omitempty"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

type pairRecord struct {
	ID    string  `json:"id"`
	Left  *string `json:"left"`
	Right *string `json:"right"`
}

// LoadPairs reads JSON Lines, one {"id","left","right"} object per line.
// Blank lines are skipped. A missing id becomes the 1-based line number.
func LoadPairs(r io.Reader) ([]Pair, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var pairs []Pair
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec pairRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrBadPair, err)
		}
		if rec.Left == nil || rec.Right == nil {
			return nil, fmt.Errorf("line %d: %w: left and right are required", line, ErrBadPair)
		}
		id := rec.ID
		if id == "" {
			id = strconv.Itoa(line)
		}
		pairs = append(pairs, Pair{ID: id, Left: *rec.Left, Right: *rec.Right})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// LoadPairsFile loads a pairs file through a FileSet so that BOMs and CRLF
// line endings are normalized before parsing.
func LoadPairsFile(path string) ([]Pair, error) {
	fs := source.NewFileSet(source.Options{})
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	pairs, err := LoadPairs(bytes.NewReader(fs.Get(id).Content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}
