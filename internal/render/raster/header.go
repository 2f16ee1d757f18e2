package raster

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gompdf/worksheet/internal/layout"
	"github.com/gompdf/worksheet/internal/theme"
)

const headerRow = 26

func (r *Renderer) drawHeader(pn *pen, p Page, box layout.Box) {
	half := box.SplitColumns(2, 16)
	left, right := half[0], half[1]

	label := pn.shaper(r.fonts.Bold, 13)
	value := pn.shaper(r.fonts.Regular, 13)
	fields := []struct{ name, value string }{
		{"Nama Sekolah:", p.Config.Header.SchoolName},
		{"Kelas:", p.Config.Header.ClassName},
		{"Nama:", ""},
		{"Nilai:", ""},
	}
	for i, f := range fields {
		y := left.Y + float64(i)*headerRow
		pn.draw(label, f.name, left.X, y, theme.Ink)
		pn.draw(value, f.value, left.X+110, y, theme.Ink)
		pn.line(left.X+110, y+18, left.Right(), y+18, 1, theme.Muted, false)
	}

	textRight := right.Right()
	if r.logo != nil {
		slot := layout.Box{X: right.Right() - logoSize, Y: right.Y + 8, Width: logoSize, Height: logoSize}
		r.drawLogo(pn, slot)
		textRight = slot.X - 16
	}

	name := pn.shaper(r.fonts.Arabic, 30)
	pn.draw(name, p.Surah.Name, textRight-pn.width(name, p.Surah.Name), right.Y+8, theme.Ink)

	sub := pn.shaper(r.fonts.Bold, 16)
	rng := fmt.Sprintf("%s: %d-%d", p.Surah.Latin, p.Config.AyahRange.From, p.Config.AyahRange.To)
	pn.draw(sub, rng, textRight-pn.width(sub, rng), right.Y+8+pn.lineHeight(name), theme.Ink)

	ruleY := box.Y + 4*headerRow + 16
	pn.line(box.X, ruleY, box.Right(), ruleY, 4, theme.Ink, false)
}

// drawLogo scales the logo to device pixels and draws it without the page
// matrix, so it is resampled once.
func (r *Renderer) drawLogo(pn *pen, slot layout.Box) {
	b := r.logo.Bounds()
	fit := layout.Fit(slot, float64(b.Dx()), float64(b.Dy()))
	w, h := int(fit.Width*pn.scale), int(fit.Height*pn.scale)
	if w <= 0 || h <= 0 {
		return
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), r.logo, b, draw.Over, nil)

	pn.dc.Push()
	pn.dc.Identity()
	pn.dc.DrawImage(dst, int(fit.X*pn.scale), int(fit.Y*pn.scale))
	pn.dc.Pop()
}
