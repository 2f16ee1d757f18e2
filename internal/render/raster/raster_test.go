package raster

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/exercise"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/res"
	"github.com/gompdf/worksheet/internal/worksheet"
)

func renderer(t *testing.T, logo image.Image) *Renderer {
	t.Helper()
	fonts, err := res.DefaultFonts()
	require.NoError(t, err)
	r := NewRenderer(fonts, logo)
	opts := r.Options()
	opts.Scale = 1
	r.SetOptions(opts)
	return r
}

func page(t *testing.T, unit *pagination.Page, answerKey bool) Page {
	t.Helper()
	repo, err := quran.Embedded()
	require.NoError(t, err)
	s, err := repo.Surah(114)
	require.NoError(t, err)

	cfg := worksheet.Default().WithSurah(s).WithBorder(worksheet.BorderHearts).WithBackground(worksheet.BackgroundLined)
	book := exercise.NewBook(unit.Activities, s.Slice(unit.Range), s.Verses, rand.New(rand.NewSource(1)))
	return Page{
		Config:   cfg,
		Surah:    s,
		Unit:     unit,
		Contents: book.Page(unit.Activities, answerKey),
		Number:   1,
		Total:    2,
	}
}

func TestRenderEveryActivity(t *testing.T) {
	r := renderer(t, nil)
	for _, a := range activity.All() {
		t.Run(string(a), func(t *testing.T) {
			unit := &pagination.Page{Kind: pagination.KindStudent, Activities: activity.Selection{a}, Range: quran.Range{From: 1, To: 6}}
			img, err := r.Render(page(t, unit, false))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 794, 1123), img.Bounds())
		})
	}
}

func TestRenderAnswerKey(t *testing.T) {
	r := renderer(t, nil)
	acts := activity.All()
	unit := pagination.AnswerKeyPages(acts, quran.Range{From: 1, To: 3}, true)[0]

	img, err := r.Render(page(t, unit, true))
	require.NoError(t, err)
	assert.Equal(t, 794, img.Bounds().Dx())
}

func TestRenderScale(t *testing.T) {
	r := renderer(t, nil)
	r.SetOptions(Options{Scale: 2, Layout: r.Options().Layout})

	unit := &pagination.Page{Activities: activity.Selection{activity.Tracing}, Range: quran.Range{From: 1, To: 2}}
	img, err := r.Render(page(t, unit, false))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1588, 2246), img.Bounds())

	r.SetOptions(Options{Layout: r.Options().Layout})
	assert.Equal(t, float64(DefaultScale), r.Options().Scale)
}

func TestRenderDrawsLogo(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 40, 40))
	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			logo.Set(x, y, red)
		}
	}

	r := renderer(t, logo)
	unit := &pagination.Page{Activities: activity.Selection{activity.Tracing}, Range: quran.Range{From: 1, To: 1}}
	img, err := r.Render(page(t, unit, false))
	require.NoError(t, err)

	// header right column: the 40px logo is centered in an 80px slot
	found := false
	for y := 80; y < 200 && !found; y++ {
		for x := 600; x < 760; x++ {
			if c := img.RGBAAt(x, y); c.R > 200 && c.G < 40 && c.B < 40 {
				found = true
				break
			}
		}
	}
	assert.True(t, found)
}

func TestRenderRejectsIncompletePage(t *testing.T) {
	r := renderer(t, nil)
	_, err := r.Render(Page{Number: 3})
	require.Error(t, err)
}
