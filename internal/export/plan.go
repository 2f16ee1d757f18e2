// Package export turns a worksheet configuration into PDF, PNG or ZIP files.
package export

import (
	"math/rand"
	"strings"
	"time"

	"github.com/gompdf/worksheet/internal/capacity"
	"github.com/gompdf/worksheet/internal/exercise"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/render/preview"
	"github.com/gompdf/worksheet/internal/worksheet"
)

// FilePrefix starts the name of every exported file.
const FilePrefix = "worksheet-latiefathfall"

// Plan is a worksheet ready to be drawn: the normalized configuration, its
// surah, the page list and the generated exercises.
type Plan struct {
	Config   worksheet.Config
	Surah    *quran.Surah
	Document pagination.Document
	Book     exercise.Book
	// Seed reproduces the exercise shuffling.
	Seed int64
}

// NewPlan validates and normalizes cfg against repo and paginates it.
// A zero seed picks one from the clock.
func NewPlan(repo quran.Repository, cfg worksheet.Config, seed int64) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg, s, err := cfg.Normalize(repo)
	if err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := pagination.NewEngine()
	opts := engine.Options()
	opts.Mode = cfg.Output.PaginationMode
	opts.IncludeAnswerKey = cfg.Output.IncludeAnswerKey
	engine.SetOptions(opts)

	verses := s.Slice(cfg.AyahRange)
	return &Plan{
		Config:   cfg,
		Surah:    s,
		Document: engine.Paginate(cfg.Activities, cfg.AyahRange),
		Book:     exercise.NewBook(cfg.Activities, verses, s.Verses, rand.New(rand.NewSource(seed))),
		Seed:     seed,
	}, nil
}

// Verses returns the selected verses.
func (p *Plan) Verses() []quran.Verse {
	return p.Surah.Slice(p.Config.AyahRange)
}

// Estimate returns the capacity estimate of the selected activities on one page.
func (p *Plan) Estimate() capacity.Estimation {
	return capacity.EstimatePageHeight(p.Config.Activities, p.Verses())
}

// Contents returns the exercises printed on page.
func (p *Plan) Contents(page *pagination.Page) []exercise.Content {
	return p.Book.Page(page.Activities, page.Kind == pagination.KindAnswerKey)
}

// Number returns the 1-based position of page in the whole document, or 0.
func (p *Plan) Number(page *pagination.Page) int {
	for i, q := range p.Document.Pages() {
		if q == page {
			return i + 1
		}
	}
	return 0
}

// Preview builds the HTML preview of every page.
func (p *Plan) Preview(brand string) preview.Sheet {
	pages := p.Document.Pages()
	sheet := preview.Sheet{Config: p.Config, Surah: p.Surah, Brand: brand, Pages: make([]preview.Page, 0, len(pages))}
	for _, page := range pages {
		sheet.Pages = append(sheet.Pages, preview.Page{Unit: page, Contents: p.Contents(page)})
	}
	return sheet
}

// BaseName is the file name stem shared by the exported files.
func (p *Plan) BaseName() string {
	return strings.Join([]string{FilePrefix, slug(p.Surah.Latin), p.Config.AyahRange.String()}, "-")
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
