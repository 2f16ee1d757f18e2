package layout

// Fit scales a w×h image to fit inside container, keeping its aspect ratio,
// and centers it. Images smaller than the container are not enlarged.
func Fit(container Box, w, h float64) Box {
	if w <= 0 || h <= 0 {
		return Box{X: container.X, Y: container.Y}
	}
	scale := min(container.Width/w, container.Height/h, 1)
	fw, fh := w*scale, h*scale
	return Box{
		X:      container.X + (container.Width-fw)/2,
		Y:      container.Y + (container.Height-fh)/2,
		Width:  fw,
		Height: fh,
	}
}
