package layout

import "github.com/gompdf/worksheet/internal/pagination"

// Options represents options for the layout engine
type Options struct {
	PageSize pagination.PageSize
	Chrome   pagination.Chrome
	// BlockGap is the vertical space between activity blocks.
	BlockGap float64
}

// Page holds the regions of one laid out page
type Page struct {
	Page    Box
	Frame   Box
	Header  Box
	Content Box
	Footer  Box
}

// Engine handles the layout process
type Engine struct {
	options Options
}

// NewEngine creates a new layout engine for A4 worksheet pages
func NewEngine() *Engine {
	return &Engine{
		options: Options{
			PageSize: pagination.PageSizeA4Px,
			Chrome:   pagination.DefaultChrome,
			BlockGap: 32,
		},
	}
}

// SetOptions sets the options for the layout engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Options returns the engine options
func (e *Engine) Options() Options {
	return e.options
}

// Layout splits a page into its chrome regions. The border padding is shared
// evenly by opposite edges and the content region is exactly the height the
// capacity estimate budgets.
func (e *Engine) Layout() Page {
	size := e.options.PageSize
	chrome := e.options.Chrome
	page := Box{Width: size.Width, Height: size.Height}
	frame := page.InsetAll(chrome.BorderPadding / 2)

	header := Box{X: frame.X, Y: frame.Y, Width: frame.Width, Height: chrome.Header}
	footer := Box{X: frame.X, Y: frame.Bottom() - chrome.Footer, Width: frame.Width, Height: chrome.Footer}
	content := Box{
		X:      frame.X,
		Y:      header.Bottom(),
		Width:  frame.Width,
		Height: chrome.ContentHeight(size),
	}

	return Page{Page: page, Frame: frame, Header: header, Content: content, Footer: footer}
}

// NewFlow starts a block flow in the content region of p
func (e *Engine) NewFlow(p Page) *Flow {
	return NewFlow(p.Content, e.options.BlockGap)
}
