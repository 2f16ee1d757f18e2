package text

import "unicode"

// Direction represents text direction
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Run is a stretch of text with one direction
type Run struct {
	Text      string
	Direction Direction
}

// IsRTLRune reports whether r belongs to the Arabic or Hebrew blocks or their
// presentation forms.
func IsRTLRune(r rune) bool {
	return (r >= 0x0590 && r <= 0x08FF) || (r >= 0xFB1D && r <= 0xFDFF) || (r >= 0xFE70 && r <= 0xFEFF)
}

// IsRTL checks if a string contains right-to-left text
func IsRTL(text string) bool {
	for _, r := range text {
		if IsRTLRune(r) {
			return true
		}
	}
	return false
}

func strong(r rune) (Direction, bool) {
	if IsRTLRune(r) && !isMark(r) {
		return RightToLeft, true
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return LeftToRight, true
	}
	return 0, false
}

// Runs splits text into direction runs in logical order. Neutral characters
// such as spaces and punctuation take the direction of the run they follow,
// and leading neutrals take base.
func Runs(text string, base Direction) []Run {
	var runs []Run
	var cur []rune
	dir := base

	for _, r := range text {
		d, ok := strong(r)
		if ok && d != dir && len(cur) > 0 {
			runs = append(runs, Run{Text: string(cur), Direction: dir})
			cur = cur[:0:0]
		}
		if ok {
			dir = d
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		runs = append(runs, Run{Text: string(cur), Direction: dir})
	}
	return runs
}

// VisualOrder returns text in the left-to-right order a glyph rasterizer draws
// it. Text without right-to-left characters is returned unchanged. Otherwise
// Arabic is shaped, runs are laid out right to left and right-to-left runs are
// reversed with combining marks kept after their base letter.
func VisualOrder(text string) string {
	if !IsRTL(text) {
		return text
	}

	runs := Runs(Shape(text), RightToLeft)
	out := make([]rune, 0, len(text))
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].Direction == LeftToRight {
			out = append(out, []rune(runs[i].Text)...)
			continue
		}
		out = append(out, reverseClusters(runs[i].Text)...)
	}
	return string(out)
}

// reverseClusters reverses s by grapheme cluster, where a cluster is a base
// rune followed by its combining marks.
func reverseClusters(s string) []rune {
	var clusters [][]rune
	for _, r := range s {
		if isMark(r) && len(clusters) > 0 {
			last := len(clusters) - 1
			clusters[last] = append(clusters[last], r)
			continue
		}
		clusters = append(clusters, []rune{r})
	}

	out := make([]rune, 0, len(s))
	for i := len(clusters) - 1; i >= 0; i-- {
		out = append(out, clusters[i]...)
	}
	return out
}
