package worksheet

import "fmt"

// Border is the decorative texture painted around the page.
type Border string

const (
	BorderNone      Border = "none"
	BorderStars     Border = "stars"
	BorderCrayon    Border = "crayon"
	BorderCloud     Border = "cloud"
	BorderGeometry  Border = "geometry"
	BorderLeaves    Border = "leaves"
	BorderBubbles   Border = "bubbles"
	BorderHearts    Border = "hearts"
	BorderHoneycomb Border = "honeycomb"
	BorderWaves     Border = "waves"
	BorderDoodles   Border = "doodles"
)

// Borders lists every border style.
var Borders = []Border{
	BorderNone, BorderStars, BorderCrayon, BorderCloud, BorderGeometry, BorderLeaves,
	BorderBubbles, BorderHearts, BorderHoneycomb, BorderWaves, BorderDoodles,
}

// Background is the fill of the content area.
type Background string

const (
	BackgroundNone         Background = "none"
	BackgroundPastel       Background = "pastel"
	BackgroundLined        Background = "lined"
	BackgroundDotGrid      Background = "dot-grid"
	BackgroundPastelBlue   Background = "pastel-blue"
	BackgroundPastelGreen  Background = "pastel-green"
	BackgroundPastelPink   Background = "pastel-pink"
	BackgroundGraphPaper   Background = "graph-paper"
	BackgroundOldPaper     Background = "old-paper"
	BackgroundSoftGradient Background = "soft-gradient"
)

// Backgrounds lists every background style.
var Backgrounds = []Background{
	BackgroundNone, BackgroundPastel, BackgroundLined, BackgroundDotGrid, BackgroundPastelBlue,
	BackgroundPastelGreen, BackgroundPastelPink, BackgroundGraphPaper, BackgroundOldPaper,
	BackgroundSoftGradient,
}

// Font names the Latin typeface.
type Font string

const (
	FontComicNeue Font = "Comic Neue"
	FontPoppins   Font = "Poppins"
)

// FontArabic is the only Arabic typeface the template uses.
const FontArabic = "Amiri Quran"

// Format is the export file format.
type Format string

const (
	FormatPDF Format = "PDF"
	FormatPNG Format = "PNG"
	FormatZIP Format = "ZIP"
)

// Design holds the decorative choices. None of them affect capacity.
type Design struct {
	FontLatin  Font       `json:"fontLatin" yaml:"fontLatin"`
	FontArabic string     `json:"fontArabic" yaml:"fontArabic"`
	Border     Border     `json:"border" yaml:"border"`
	Background Background `json:"background" yaml:"background"`
}

func (d Design) validate() error {
	if d.FontLatin != FontComicNeue && d.FontLatin != FontPoppins {
		return fmt.Errorf("unknown latin font %q", d.FontLatin)
	}
	if !contains(Borders, d.Border) {
		return fmt.Errorf("unknown border %q", d.Border)
	}
	if !contains(Backgrounds, d.Background) {
		return fmt.Errorf("unknown background %q", d.Background)
	}
	return nil
}

// ParseFormat accepts the format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(upper(s)); f {
	case FormatPDF, FormatPNG, FormatZIP:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
