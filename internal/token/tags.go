package token

import (
	"strings"

	"github.com/fatih/color"
)

// Color is a display-only foreground tag.
type Color uint8

const (
	ColorNone Color = iota
	Blue
	Red
	Green
	Magenta
	Yellow
	Cyan
	White
	Black
)

var colorNames = [...]string{
	ColorNone: "",
	Blue:      "blue",
	Red:       "red",
	Green:     "green",
	Magenta:   "magenta",
	Yellow:    "yellow",
	Cyan:      "cyan",
	White:     "white",
	Black:     "black",
}

// короткие коды исторического формата
var colorCodes = map[string]Color{
	"b": Blue,
	"r": Red,
	"g": Green,
	"p": Magenta,
	"y": Yellow,
	"c": Cyan,
	"w": White,
	"k": Black,
}

var colorAttrs = [...]color.Attribute{
	Blue:    color.FgBlue,
	Red:     color.FgRed,
	Green:   color.FgGreen,
	Magenta: color.FgMagenta,
	Yellow:  color.FgYellow,
	Cyan:    color.FgCyan,
	White:   color.FgWhite,
	Black:   color.FgBlack,
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// ParseColor accepts a full colour name, a one-letter code or "" for none.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ColorNone, true
	}
	if c, ok := colorCodes[s]; ok {
		return c, true
	}
	for c, name := range colorNames {
		if name != "" && name == s {
			return Color(c), true
		}
	}
	return ColorNone, false
}

// Background is a display-only background tag.
type Background uint8

const (
	BackgroundNone Background = iota
	BgWhite
	BgBlack
	BgYellow
)

var backgroundNames = [...]string{
	BackgroundNone: "",
	BgWhite:        "white",
	BgBlack:        "black",
	BgYellow:       "yellow",
}

var backgroundCodes = map[string]Background{
	"w": BgWhite,
	"b": BgBlack,
	"y": BgYellow,
}

var backgroundAttrs = [...]color.Attribute{
	BgWhite:  color.BgWhite,
	BgBlack:  color.BgBlack,
	BgYellow: color.BgYellow,
}

func (b Background) String() string {
	if int(b) < len(backgroundNames) {
		return backgroundNames[b]
	}
	return "unknown"
}

// ParseBackground accepts a full name, a one-letter code or "" for none.
func ParseBackground(s string) (Background, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return BackgroundNone, true
	}
	if b, ok := backgroundCodes[s]; ok {
		return b, true
	}
	for b, name := range backgroundNames {
		if name != "" && name == s {
			return Background(b), true
		}
	}
	return BackgroundNone, false
}

// Format is a set of text attributes applied on top of the colours.
type Format uint8

const (
	Bold Format = 1 << iota
	Italic
	Underline
	Strike
)

// ParseFormat reads a string of one-letter codes: b, i, u, s.
func ParseFormat(s string) (Format, bool) {
	var f Format
	for _, r := range s {
		switch r {
		case 'b':
			f |= Bold
		case 'i':
			f |= Italic
		case 'u':
			f |= Underline
		case 's':
			f |= Strike
		default:
			return 0, false
		}
	}
	return f, true
}

// String returns the one-letter codes of the set flags, in b-i-u-s order.
func (f Format) String() string {
	var sb strings.Builder
	if f&Bold != 0 {
		sb.WriteByte('b')
	}
	if f&Italic != 0 {
		sb.WriteByte('i')
	}
	if f&Underline != 0 {
		sb.WriteByte('u')
	}
	if f&Strike != 0 {
		sb.WriteByte('s')
	}
	return sb.String()
}

func (f Format) attrs() []color.Attribute {
	var out []color.Attribute
	if f&Bold != 0 {
		out = append(out, color.Bold)
	}
	if f&Italic != 0 {
		out = append(out, color.Italic)
	}
	if f&Underline != 0 {
		out = append(out, color.Underline)
	}
	if f&Strike != 0 {
		out = append(out, color.CrossedOut)
	}
	return out
}
