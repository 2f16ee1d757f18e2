package theme

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/gompdf/worksheet/internal/layout"
	"github.com/gompdf/worksheet/internal/worksheet"
)

// FrameRadius is the corner radius of the content frame.
const FrameRadius = 8

var backgroundFills = map[worksheet.Background]string{
	worksheet.BackgroundNone:         "#FFFFFF",
	worksheet.BackgroundPastel:       "#FEFCE8",
	worksheet.BackgroundLined:        "#FFFFFF",
	worksheet.BackgroundDotGrid:      "#FFFFFF",
	worksheet.BackgroundPastelBlue:   "#F0F9FF",
	worksheet.BackgroundPastelGreen:  "#ECFDF5",
	worksheet.BackgroundPastelPink:   "#FDF2F8",
	worksheet.BackgroundGraphPaper:   "#FFFFFF",
	worksheet.BackgroundOldPaper:     "#FDF6E3",
	worksheet.BackgroundSoftGradient: "#FFFFFF",
}

// BackgroundFill returns the base color of bg.
func BackgroundFill(bg worksheet.Background) color.RGBA {
	if s, ok := backgroundFills[bg]; ok {
		return MustHex(s)
	}
	return White
}

// PaintBackground paints the content frame of a page: a rounded rectangle in
// the background color with its pattern on top.
func PaintBackground(dc *gg.Context, bg worksheet.Background, frame layout.Box, scale float64) {
	x, y, w, h := frame.X*scale, frame.Y*scale, frame.Width*scale, frame.Height*scale

	dc.Push()
	defer dc.Pop()

	dc.DrawRoundedRectangle(x, y, w, h, FrameRadius*scale)
	if bg == worksheet.BackgroundSoftGradient {
		grad := gg.NewLinearGradient(x, y, x+w, y+h)
		grad.AddColorStop(0, White)
		grad.AddColorStop(1, MustHex("#E0F2FE"))
		dc.SetFillStyle(grad)
	} else {
		dc.SetColor(BackgroundFill(bg))
	}
	dc.FillPreserve()
	dc.Clip()

	switch bg {
	case worksheet.BackgroundLined:
		dc.SetColor(MustHex("#D1D5DB"))
		dc.SetLineWidth(scale)
		for ly := y + 32*scale; ly < y+h; ly += 32 * scale {
			dc.DrawLine(x, ly, x+w, ly)
		}
		dc.Stroke()
	case worksheet.BackgroundDotGrid:
		dc.SetColor(MustHex("#D1D5DB"))
		for dy := y + 12*scale; dy < y+h; dy += 24 * scale {
			for dx := x + 12*scale; dx < x+w; dx += 24 * scale {
				dc.DrawCircle(dx, dy, scale)
			}
		}
		dc.Fill()
	case worksheet.BackgroundGraphPaper:
		dc.SetColor(MustHex("#E5E7EB"))
		dc.SetLineWidth(scale)
		for gx := x; gx < x+w; gx += 16 * scale {
			dc.DrawLine(gx, y, gx, y+h)
		}
		for gy := y; gy < y+h; gy += 16 * scale {
			dc.DrawLine(x, gy, x+w, gy)
		}
		dc.Stroke()
	}
	dc.ResetClip()
}
