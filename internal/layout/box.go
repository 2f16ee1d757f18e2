// Package layout computes the geometry of a worksheet page: the fixed chrome
// regions and the positions of activity blocks inside the content area.
package layout

// Box is an axis-aligned rectangle in page pixels
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Inset shrinks the box by the given edges. Sizes never go negative.
func (b Box) Inset(top, right, bottom, left float64) Box {
	out := Box{
		X:      b.X + left,
		Y:      b.Y + top,
		Width:  b.Width - left - right,
		Height: b.Height - top - bottom,
	}
	out.Width = max(out.Width, 0)
	out.Height = max(out.Height, 0)
	return out
}

// InsetAll shrinks every edge by v
func (b Box) InsetAll(v float64) Box {
	return b.Inset(v, v, v, v)
}

// SplitColumns divides the box into n columns separated by gap
func (b Box) SplitColumns(n int, gap float64) []Box {
	if n <= 0 {
		return nil
	}
	w := (b.Width - gap*float64(n-1)) / float64(n)
	cols := make([]Box, n)
	for i := range cols {
		cols[i] = Box{X: b.X + float64(i)*(w+gap), Y: b.Y, Width: w, Height: b.Height}
	}
	return cols
}
