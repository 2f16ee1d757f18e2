package pagination

import "fmt"

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
)

// PageSizeA4Px is A4 at the 96 DPI preview resolution the cost model is calibrated on.
var PageSizeA4Px = PageSize{Width: 794, Height: A4HeightPx, Name: "A4"}

// Fixed page chrome of the worksheet template, in preview pixels.
const (
	A4HeightPx    = 1123
	BorderPadding = 112
	HeaderHeight  = 180
	FooterHeight  = 30
)

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Uniform returns equal margins on all sides.
func Uniform(v float64) Margins {
	return Margins{Top: v, Right: v, Bottom: v, Left: v}
}

// Chrome is the vertical space every worksheet page spends outside the activity area.
type Chrome struct {
	BorderPadding float64
	Header        float64
	Footer        float64
}

// DefaultChrome matches the worksheet template.
var DefaultChrome = Chrome{
	BorderPadding: BorderPadding,
	Header:        HeaderHeight,
	Footer:        FooterHeight,
}

// ContentHeight returns the height left for activities on a page of the given size.
func (c Chrome) ContentHeight(size PageSize) float64 {
	h := size.Height - c.BorderPadding - c.Header - c.Footer
	if h < 0 {
		return 0
	}
	return h
}

// Footer renders the page counter printed at the bottom of every page.
func Footer(page, total int) string {
	return fmt.Sprintf("Halaman %d/%d", page, total)
}
