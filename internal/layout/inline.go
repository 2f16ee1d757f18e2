package layout

// Chip is one inline item of fixed width, such as a word card
type Chip struct {
	Box
	Line int
}

// Wrap lays out items of the given widths in lines of the container width,
// breaking when the next item does not fit. With rtl set, lines fill from the
// right edge. Every line is lineHeight tall and items are gap apart both ways.
func Wrap(container Box, widths []float64, lineHeight, gap float64, rtl bool) []Chip {
	chips := make([]Chip, 0, len(widths))
	x, line := 0.0, 0
	for _, w := range widths {
		if x > 0 && x+w > container.Width {
			x = 0
			line++
		}
		left := container.X + x
		if rtl {
			left = container.Right() - x - w
		}
		chips = append(chips, Chip{
			Box:  Box{X: left, Y: container.Y + float64(line)*(lineHeight+gap), Width: w, Height: lineHeight},
			Line: line,
		})
		x += w + gap
	}
	return chips
}

// WrapHeight returns the height Wrap would use for the same input
func WrapHeight(container Box, widths []float64, lineHeight, gap float64) float64 {
	chips := Wrap(container, widths, lineHeight, gap, false)
	if len(chips) == 0 {
		return 0
	}
	lines := chips[len(chips)-1].Line + 1
	return float64(lines)*lineHeight + float64(lines-1)*gap
}
