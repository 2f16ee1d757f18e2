package theme

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/gompdf/worksheet/internal/layout"
	"github.com/gompdf/worksheet/internal/worksheet"
)

// MotifSize is the tile edge of a border motif in page pixels.
const MotifSize = 28

type borderStyle struct {
	fill  string
	motif string
}

// borders maps each border to its base fill and the SVG motif tiled over it.
var borders = map[worksheet.Border]borderStyle{
	worksheet.BorderNone: {fill: "#FFFFFF"},
	worksheet.BorderStars: {fill: "#F3F4F6", motif: `<polygon points="12,2 15,9 22,9 16.5,13.5 18.5,21 12,16.5 5.5,21 7.5,13.5 2,9 9,9" fill="#FBBF24"/>`},
	worksheet.BorderCrayon: {fill: "#FEFCE8", motif: `<path d="M2 6 L22 18 M2 18 L22 6" stroke="#F97316" stroke-width="2" fill="none"/>`},
	worksheet.BorderCloud: {fill: "#E0F2FE", motif: `<circle cx="8" cy="14" r="5" fill="#FFFFFF"/><circle cx="14" cy="11" r="6" fill="#FFFFFF"/><circle cx="18" cy="15" r="4" fill="#FFFFFF"/>`},
	worksheet.BorderGeometry: {fill: "#F3F4F6", motif: `<polygon points="12,3 21,20 3,20" fill="none" stroke="#8B5CF6" stroke-width="2"/>`},
	worksheet.BorderLeaves: {fill: "#DCFCE7", motif: `<path d="M4 20 C4 8 12 4 20 4 C20 12 16 20 4 20 Z" fill="#22C55E"/>`},
	worksheet.BorderBubbles: {fill: "#DBEAFE", motif: `<circle cx="9" cy="9" r="5" fill="none" stroke="#3B82F6" stroke-width="1.5"/><circle cx="17" cy="17" r="3" fill="none" stroke="#60A5FA" stroke-width="1.5"/>`},
	worksheet.BorderHearts: {fill: "#FCE7F3", motif: `<path d="M12 21 L4 13 C1 10 3 4 8 5 C10 5 11 6 12 8 C13 6 14 5 16 5 C21 4 23 10 20 13 Z" fill="#EC4899"/>`},
	worksheet.BorderHoneycomb: {fill: "#FEF3C7", motif: `<polygon points="12,2 21,7 21,17 12,22 3,17 3,7" fill="none" stroke="#F59E0B" stroke-width="1.5"/>`},
	worksheet.BorderWaves: {fill: "#CFFAFE", motif: `<path d="M0 12 C4 6 8 6 12 12 C16 18 20 18 24 12" fill="none" stroke="#06B6D4" stroke-width="2"/>`},
	worksheet.BorderDoodles: {fill: "#F3F4F6", motif: `<path d="M4 12 C4 6 12 6 12 12 C12 16 8 16 8 12 M14 18 L20 4" fill="none" stroke="#6B7280" stroke-width="1.5"/>`},
}

// BorderFill returns the base color of the border area.
func BorderFill(b worksheet.Border) color.RGBA {
	if s, ok := borders[b]; ok {
		return MustHex(s.fill)
	}
	return White
}

// Motif rasterizes the motif of b into a size×size tile. It returns nil for
// borders without a motif.
func Motif(b worksheet.Border, size int) (*image.RGBA, error) {
	s, ok := borders[b]
	if !ok {
		return nil, fmt.Errorf("unknown border %q", b)
	}
	if s.motif == "" {
		return nil, nil
	}

	doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="24" height="24">` + s.motif + `</svg>`
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s motif: %w", b, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}

// PaintBorder fills the whole page with the border texture. The content
// frame is painted over it afterwards by PaintBackground. All geometry is in
// page pixels and scaled by scale.
func PaintBorder(dc *gg.Context, b worksheet.Border, page layout.Box, scale float64) error {
	dc.SetColor(BorderFill(b))
	dc.DrawRectangle(page.X*scale, page.Y*scale, page.Width*scale, page.Height*scale)
	dc.Fill()

	step := int(MotifSize * scale)
	tile, err := Motif(b, step/2)
	if err != nil || tile == nil {
		return err
	}

	w, h := int(page.Width*scale), int(page.Height*scale)
	for y, row := 0, 0; y < h; y, row = y+step, row+1 {
		offset := 0
		if row%2 == 1 {
			offset = step / 2
		}
		for x := offset; x < w; x += step {
			dc.DrawImage(tile, x, y)
		}
	}
	return nil
}
