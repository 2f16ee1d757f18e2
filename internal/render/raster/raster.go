// Package raster draws worksheet pages into images with gg.
package raster

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"

	"github.com/gompdf/worksheet/internal/exercise"
	"github.com/gompdf/worksheet/internal/layout"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/res"
	"github.com/gompdf/worksheet/internal/theme"
	"github.com/gompdf/worksheet/internal/worksheet"
)

// DefaultScale renders A4 at about 288 DPI.
const DefaultScale = 3

// Brand precedes the page counter in the footer.
const Brand = "latiefAthfall Worksheet Generator"

const logoSize = 80

// Page is everything needed to draw one page
type Page struct {
	Config   worksheet.Config
	Surah    *quran.Surah
	Unit     *pagination.Page
	Contents []exercise.Content
	Number   int
	Total    int
}

// Options represents options for the renderer
type Options struct {
	Scale  float64
	Layout layout.Options
}

// Renderer draws pages. A Renderer is safe for concurrent use; every call
// builds its own drawing context.
type Renderer struct {
	options Options
	fonts   *res.FontSet
	logo    image.Image
}

// NewRenderer creates a renderer with the given fonts and an optional logo.
func NewRenderer(fonts *res.FontSet, logo image.Image) *Renderer {
	return &Renderer{
		options: Options{Scale: DefaultScale, Layout: layout.NewEngine().Options()},
		fonts:   fonts,
		logo:    logo,
	}
}

// SetOptions sets the options for the renderer
func (r *Renderer) SetOptions(options Options) {
	if options.Scale <= 0 {
		options.Scale = DefaultScale
	}
	r.options = options
}

// Options returns the renderer options
func (r *Renderer) Options() Options {
	return r.options
}

// Render draws one page and returns it at device resolution.
func (r *Renderer) Render(p Page) (*image.RGBA, error) {
	if p.Surah == nil || p.Unit == nil {
		return nil, fmt.Errorf("page %d has no surah or page unit", p.Number)
	}

	engine := layout.NewEngine()
	engine.SetOptions(r.options.Layout)
	geo := engine.Layout()
	scale := r.options.Scale

	dc := gg.NewContext(int(geo.Page.Width*scale), int(geo.Page.Height*scale))
	if err := theme.PaintBorder(dc, p.Config.Design.Border, geo.Page, scale); err != nil {
		return nil, err
	}
	theme.PaintBackground(dc, p.Config.Design.Background, geo.Frame, scale)

	dc.Push()
	dc.Scale(scale, scale)
	pn := newPen(dc, scale)

	header := geo.Header.Inset(24, 24, 0, 24)
	r.drawHeader(pn, p, header)

	content := geo.Content.Inset(0, 24, 0, 24)
	dc.DrawRectangle(content.X, content.Y, content.Width, content.Height)
	dc.Clip()
	if p.Unit.Kind == pagination.KindAnswerKey {
		s := pn.shaper(r.fonts.Bold, sizeTitle)
		pn.draw(s, p.Unit.Title, content.X+(content.Width-pn.width(s, p.Unit.Title))/2, content.Y, theme.Ink)
		content = content.Inset(pn.lineHeight(s)+12, 0, 0, 0)
	}
	flow := layout.NewFlow(content, r.options.Layout.BlockGap)
	for _, c := range p.Contents {
		h := r.drawActivity(pn, c, content.X, flow.Next(), content.Width)
		if b := flow.Place(h); b.Overflow {
			log.Debug().Int("page", p.Number).Str("activity", string(c.Activity)).Msg("activity overflows content area")
		}
	}
	dc.ResetClip()

	footer := pagination.Footer(p.Number, p.Total)
	s := pn.shaper(r.fonts.Regular, sizeSmall)
	label := Brand + " • " + footer
	pn.draw(s, label, geo.Footer.X+(geo.Footer.Width-pn.width(s, label))/2, geo.Footer.Y+8, theme.Muted)
	dc.Pop()

	return imageRGBA(dc.Image()), nil
}

func imageRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
