package report

import (
	"encoding/json"
	"fmt"
	"io"

	"tokalign/internal/sequence"
)

// TokenOutput is the JSON row of a token listing.
type TokenOutput struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Width int    `json:"width"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, seq *sequence.Sequence) error {
	for _, tok := range seq.Tokens() {
		if _, err := fmt.Fprintf(w, "%3d: %-15s %q at %d-%d\n",
			tok.Index, tok.Kind.String(), tok.Text, tok.Start, tok.End()); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, seq *sequence.Sequence) error {
	output := make([]TokenOutput, 0, seq.Len())
	for _, tok := range seq.Tokens() {
		output = append(output, TokenOutput{
			Index: tok.Index,
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Start,
			End:   tok.End(),
			Width: tok.Width(),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
