package layout

// BlockBox is one activity block placed in the content area
type BlockBox struct {
	Box
	Index int
	// Overflow is set when the block extends past the content area.
	Overflow bool
}

// Flow stacks blocks top to bottom inside a container
type Flow struct {
	container Box
	gap       float64
	cursor    float64
	blocks    []BlockBox
}

// NewFlow creates a vertical flow inside container with gap between blocks
func NewFlow(container Box, gap float64) *Flow {
	return &Flow{container: container, gap: gap, cursor: container.Y}
}

// Place appends a block of height h and returns it. Blocks are placed even
// when they overflow; callers decide whether to draw them.
func (f *Flow) Place(h float64) BlockBox {
	y := f.cursor
	if len(f.blocks) > 0 {
		y += f.gap
	}
	b := BlockBox{
		Box:   Box{X: f.container.X, Y: y, Width: f.container.Width, Height: h},
		Index: len(f.blocks),
	}
	b.Overflow = b.Bottom() > f.container.Bottom()
	f.blocks = append(f.blocks, b)
	f.cursor = b.Bottom()
	return b
}

// Next returns the y coordinate where the next block will start
func (f *Flow) Next() float64 {
	if len(f.blocks) > 0 {
		return f.cursor + f.gap
	}
	return f.cursor
}

// Used returns the height consumed so far
func (f *Flow) Used() float64 {
	return f.cursor - f.container.Y
}

// Remaining returns the height left in the container, never negative
func (f *Flow) Remaining() float64 {
	return max(f.container.Bottom()-f.cursor, 0)
}

// Blocks returns the placed blocks
func (f *Flow) Blocks() []BlockBox {
	return f.blocks
}
