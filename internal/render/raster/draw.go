package raster

import (
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/gompdf/worksheet/internal/text"
	"github.com/gompdf/worksheet/internal/theme"
)

// Text sizes in page pixels.
const (
	sizeSmall   = 11
	sizeBody    = 14
	sizeHeading = 18
	sizeTitle   = 24
	sizeArabic  = 26
	sizeTrace   = 36
)

type faceKey struct {
	font *truetype.Font
	size float64
}

// pen draws on a gg context that carries the page scale in its matrix. gg
// transforms positions and paths but not glyphs or line widths, so faces and
// widths are set at device size and measurements are converted back to page
// pixels.
type pen struct {
	dc    *gg.Context
	scale float64
	faces map[faceKey]*text.Shaper
}

func newPen(dc *gg.Context, scale float64) *pen {
	return &pen{dc: dc, scale: scale, faces: make(map[faceKey]*text.Shaper)}
}

func (p *pen) shaper(f *truetype.Font, size float64) *text.Shaper {
	k := faceKey{f, size}
	if s, ok := p.faces[k]; ok {
		return s
	}
	s := text.NewShaper(truetype.NewFace(f, &truetype.Options{
		Size:    size * p.scale,
		DPI:     72,
		Hinting: font.HintingNone,
	}))
	p.faces[k] = s
	return s
}

func (p *pen) width(s *text.Shaper, str string) float64 {
	return s.Measure(str) / p.scale
}

func (p *pen) lineHeight(s *text.Shaper) float64 {
	return s.LineHeight() / p.scale * 1.25
}

// wrap breaks str into lines no wider than w page pixels.
func (p *pen) wrap(s *text.Shaper, str string, w float64) []string {
	return s.SplitTextToLines(str, w*p.scale)
}

// draw writes str with its top-left corner at x, y. Right-to-left text is
// put in visual order first.
func (p *pen) draw(s *text.Shaper, str string, x, y float64, c color.Color) {
	p.dc.SetFontFace(s.Face())
	p.dc.SetColor(c)
	p.dc.DrawStringAnchored(text.VisualOrder(str), x, y, 0, 1)
}

// paragraph draws wrapped text inside [x, x+w] from y and returns the height
// used. Right-to-left text is right aligned.
func (p *pen) paragraph(s *text.Shaper, str string, x, y, w float64, c color.Color) float64 {
	lh := p.lineHeight(s)
	rtl := text.IsRTL(str)
	lines := p.wrap(s, str, w)
	for i, line := range lines {
		lx := x
		if rtl {
			lx = x + w - p.width(s, line)
		}
		p.draw(s, line, lx, y+float64(i)*lh, c)
	}
	return float64(len(lines)) * lh
}

// run is a piece of right-to-left text with its own color.
type run struct {
	text  string
	color color.Color
}

// runs draws colored pieces of one right-to-left line ending at right. The
// whole line is shaped at once so joins survive color changes.
func (p *pen) runs(s *text.Shaper, parts []run, right, y float64) {
	var whole strings.Builder
	for _, r := range parts {
		whole.WriteString(r.text)
	}
	shaped := []rune(text.Shape(whole.String()))

	x := right
	pos := 0
	for _, r := range parts {
		n := len([]rune(r.text))
		piece := string(shaped[pos : pos+n])
		pos += n

		visual := text.VisualOrder(piece)
		w := p.width(s, visual)
		x -= w
		p.dc.SetFontFace(s.Face())
		p.dc.SetColor(r.color)
		p.dc.DrawStringAnchored(visual, x, y, 0, 1)
	}
}

func (p *pen) rect(x, y, w, h float64, fill color.Color) {
	p.dc.DrawRectangle(x, y, w, h)
	p.dc.SetColor(fill)
	p.dc.Fill()
}

func (p *pen) roundRect(x, y, w, h, r float64, fill, stroke color.Color) {
	p.dc.DrawRoundedRectangle(x, y, w, h, r)
	if fill != nil {
		p.dc.SetColor(fill)
		p.dc.FillPreserve()
	}
	if stroke != nil {
		p.dc.SetColor(stroke)
		p.dc.SetLineWidth(p.scale)
		p.dc.StrokePreserve()
	}
	p.dc.ClearPath()
}

func (p *pen) line(x1, y1, x2, y2, width float64, c color.Color, dotted bool) {
	p.dc.Push()
	defer p.dc.Pop()
	if dotted {
		p.dc.SetDash(2*p.scale, 4*p.scale)
	}
	p.dc.SetLineWidth(width * p.scale)
	p.dc.SetColor(c)
	p.dc.DrawLine(x1, y1, x2, y2)
	p.dc.Stroke()
}

func (p *pen) circle(x, y, r float64, stroke color.Color) {
	p.dc.DrawCircle(x, y, r)
	p.dc.SetColor(theme.White)
	p.dc.FillPreserve()
	p.dc.SetColor(stroke)
	p.dc.SetLineWidth(1.5 * p.scale)
	p.dc.Stroke()
}
