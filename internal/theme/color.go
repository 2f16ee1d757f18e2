// Package theme turns the worksheet design choices into paint: border
// textures, content backgrounds and the palette of the page template.
package theme

import (
	"image/color"
	"strconv"
	"strings"
)

// Palette of the page template.
var (
	White       = MustHex("#FFFFFF")
	Ink         = MustHex("#1F2937")
	Muted       = MustHex("#6B7280")
	RuleLine    = MustHex("#9CA3AF")
	Heading     = MustHex("#0F766E")
	HeadingFill = MustHex("#CCFBF1")
	KeyHeading  = MustHex("#374151")
	KeyFill     = MustHex("#E5E7EB")
	Answer      = MustHex("#15803D")
	AnswerFill  = MustHex("#BBF7D0")
	ChipFill    = MustHex("#FFFBEB")
	ChipBorder  = MustHex("#FCD34D")
	CardFill    = MustHex("#F0F9FF")
	CardBorder  = MustHex("#38BDF8")
)

// ParseHex parses #RRGGBB or #RGB
func ParseHex(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, true
}

// MustHex is ParseHex for constant palette entries. It panics on bad input.
func MustHex(s string) color.RGBA {
	c, ok := ParseHex(s)
	if !ok {
		panic("theme: bad color " + s)
	}
	return c
}
