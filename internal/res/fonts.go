package res

import (
	"context"
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fontFiles lists the file names tried for each family, in order.
var fontFiles = map[string]struct{ regular, bold []string }{
	"Comic Neue": {
		regular: []string{"ComicNeue-Regular.ttf", "ComicNeue.ttf"},
		bold:    []string{"ComicNeue-Bold.ttf"},
	},
	"Poppins": {
		regular: []string{"Poppins-Regular.ttf", "Poppins.ttf"},
		bold:    []string{"Poppins-Bold.ttf", "Poppins-SemiBold.ttf"},
	},
	"Amiri Quran": {
		regular: []string{"AmiriQuran.ttf", "AmiriQuran-Regular.ttf", "Amiri-Regular.ttf"},
	},
}

// FontSet holds the parsed faces a page is drawn with
type FontSet struct {
	Regular *truetype.Font
	Bold    *truetype.Font
	Arabic  *truetype.Font
	// Fallback lists the families that were not found and use Go fonts.
	Fallback []string
}

// Face returns a face of f at size pixels
func Face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
}

// DefaultFonts returns the Go fonts for every role
func DefaultFonts() (*FontSet, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fallback font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fallback font: %w", err)
	}
	return &FontSet{Regular: regular, Bold: bold, Arabic: regular}, nil
}

// LoadFonts resolves latin and arabic families through the loader search
// paths. Families that cannot be found fall back to the Go fonts, which have
// no Arabic glyphs.
func (l *Loader) LoadFonts(ctx context.Context, latin, arabic string) (*FontSet, error) {
	fs, err := DefaultFonts()
	if err != nil {
		return nil, err
	}

	files := fontFiles[latin]
	if f := l.firstFont(ctx, files.regular); f != nil {
		fs.Regular = f
		fs.Bold = f
		if b := l.firstFont(ctx, files.bold); b != nil {
			fs.Bold = b
		}
	} else {
		fs.Fallback = append(fs.Fallback, latin)
	}

	if f := l.firstFont(ctx, fontFiles[arabic].regular); f != nil {
		fs.Arabic = f
	} else {
		fs.Arabic = fs.Regular
		fs.Fallback = append(fs.Fallback, arabic)
	}

	if len(fs.Fallback) > 0 {
		log.Warn().Strs("families", fs.Fallback).Msg("fonts not found, using Go fonts")
	}
	return fs, nil
}

func (l *Loader) firstFont(ctx context.Context, names []string) *truetype.Font {
	for _, name := range names {
		res, err := l.Load(ctx, name)
		if err != nil || res.Kind != KindFont {
			continue
		}
		f, err := truetype.Parse(res.Data)
		if err != nil {
			log.Debug().Err(err).Str("file", res.Ref).Msg("skipping unreadable font")
			continue
		}
		return f
	}
	return nil
}
