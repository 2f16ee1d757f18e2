package text

import (
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Shaper measures and breaks text with a concrete font face
type Shaper struct {
	face font.Face
}

// NewShaper creates a shaper over face
func NewShaper(face font.Face) *Shaper {
	return &Shaper{face: face}
}

// Face returns the underlying face
func (s *Shaper) Face() font.Face {
	return s.face
}

// Measure returns the advance width of text as it will be drawn
func (s *Shaper) Measure(text string) float64 {
	return fixedToFloat(font.MeasureString(s.face, VisualOrder(text)))
}

// LineHeight returns the face line height
func (s *Shaper) LineHeight() float64 {
	return fixedToFloat(s.face.Metrics().Height)
}

// SplitTextToLines breaks text at spaces so that no line is wider than
// maxWidth. A single word wider than maxWidth gets a line of its own. Lines
// are returned in logical order; pass each through VisualOrder before drawing.
func (s *Shaper) SplitTextToLines(text string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, s.wrap(para, maxWidth)...)
	}
	return lines
}

func (s *Shaper) wrap(text string, maxWidth float64) []string {
	words := splitIntoWords(text)
	if len(words) == 0 {
		return []string{""}
	}
	if maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if s.Measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// splitIntoWords splits text into words
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(text, unicode.IsSpace)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
