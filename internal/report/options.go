package report

import "tokalign/internal/token"

// Options control the text reports.
type Options struct {
	// Width is the column width of summaries and the cap of side-by-side cells.
	Width int
	// MaxLines bounds the wrapped text box of a summary.
	MaxLines int
	// Color enables ANSI colour in side-by-side output.
	Color bool
	// Filler pads aligned cells.
	Filler rune
}

// DefaultOptions returns the stock report layout.
func DefaultOptions() Options {
	return Options{
		Width:    75,
		MaxLines: 100,
		Filler:   token.DefaultFiller,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.MaxLines <= 0 {
		o.MaxLines = def.MaxLines
	}
	if o.Filler == 0 {
		o.Filler = def.Filler
	}
	return o
}
