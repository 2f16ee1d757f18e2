package export

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/layout"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/render/bundle"
	"github.com/gompdf/worksheet/internal/render/pdf"
	"github.com/gompdf/worksheet/internal/render/raster"
	"github.com/gompdf/worksheet/internal/res"
	"github.com/gompdf/worksheet/internal/storage"
	"github.com/gompdf/worksheet/internal/worksheet"
)

// Progress is called once per rendered page with a strictly increasing
// current count, ending at (total, total).
type Progress func(current, total int)

// Options represents options for the exporter
type Options struct {
	Scale       float64
	Concurrency int
	// Seed fixes exercise shuffling. Zero picks a new seed per export.
	Seed int64
	// LogoSize is the pixel size SVG logos without a view box are drawn at.
	LogoSize int
}

// DefaultOptions returns the options used by New
func DefaultOptions() Options {
	return Options{
		Scale:       raster.DefaultScale,
		Concurrency: 4,
		LogoSize:    256,
	}
}

// Exporter renders worksheets. It is safe for concurrent use.
type Exporter struct {
	repo    quran.Repository
	loader  *res.Loader
	options Options
	pdf     *pdf.Renderer
}

// New creates an exporter that reads surahs from repo and fonts and logos
// through loader.
func New(repo quran.Repository, loader *res.Loader, options Options) *Exporter {
	def := DefaultOptions()
	if options.Scale <= 0 {
		options.Scale = def.Scale
	}
	if options.Concurrency <= 0 {
		options.Concurrency = def.Concurrency
	}
	if options.LogoSize <= 0 {
		options.LogoSize = def.LogoSize
	}
	return &Exporter{repo: repo, loader: loader, options: options, pdf: pdf.NewRenderer()}
}

// Options returns the exporter options
func (e *Exporter) Options() Options {
	return e.options
}

// Plan validates and paginates cfg.
func (e *Exporter) Plan(cfg worksheet.Config) (*Plan, error) {
	return NewPlan(e.repo, cfg, e.options.Seed)
}

// Request describes one export.
type Request struct {
	Config    worksheet.Config
	Selection pagination.PageSelection
}

// Result is a finished export.
type Result struct {
	ID     string
	Format worksheet.Format
	Pages  int
	Files  []storage.Object
	Plan   *Plan
}

// NewID returns a new export identifier.
func NewID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	if err != nil {
		return "", fmt.Errorf("failed to generate export id: %w", err)
	}
	return id.String(), nil
}

// Export plans, renders and encodes the selected pages of req.Config.
func (e *Exporter) Export(ctx context.Context, req Request, progress Progress) (*Result, error) {
	plan, err := e.Plan(req.Config)
	if err != nil {
		return nil, err
	}
	return e.ExportPlan(ctx, plan, req.Selection, progress)
}

// ExportPlan renders the selected pages of an existing plan.
func (e *Exporter) ExportPlan(ctx context.Context, plan *Plan, sel pagination.PageSelection, progress Progress) (*Result, error) {
	pages, err := plan.Document.Select(sel)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, errors.NewNoPages()
	}

	id, err := NewID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	logger := log.With().Str("export", id).Logger()
	logger.Info().Int("pages", len(pages)).Str("format", string(plan.Config.Output.Format)).Int64("seed", plan.Seed).Msg("export started")

	images, err := e.Render(ctx, plan, pages, progress)
	if err != nil {
		return nil, err
	}

	files, err := e.encode(plan, images)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	meta := map[string]string{
		"export-id": id,
		"surah":     fmt.Sprint(plan.Surah.Number),
		"range":     plan.Config.AyahRange.String(),
	}
	for i := range files {
		files[i].Metadata = meta
	}

	logger.Info().Int("files", len(files)).Msg("export finished")
	return &Result{ID: id, Format: plan.Config.Output.Format, Pages: len(pages), Files: files, Plan: plan}, nil
}

// Render draws pages concurrently and returns them in order.
func (e *Exporter) Render(ctx context.Context, plan *Plan, pages []*pagination.Page, progress Progress) ([]image.Image, error) {
	if len(pages) == 0 {
		return nil, errors.NewNoPages()
	}

	r, err := e.renderer(ctx, plan.Config)
	if err != nil {
		return nil, err
	}

	total := plan.Document.Len()
	images := make([]image.Image, len(pages))
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.Concurrency)
	for i, page := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := r.Render(raster.Page{
				Config:   plan.Config,
				Surah:    plan.Surah,
				Unit:     page,
				Contents: plan.Contents(page),
				Number:   plan.Number(page),
				Total:    total,
			})
			if err != nil {
				return fmt.Errorf("failed to render page %d: %w", i+1, err)
			}
			images[i] = img

			mu.Lock()
			done++
			if progress != nil {
				progress(done, len(pages))
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func (e *Exporter) renderer(ctx context.Context, cfg worksheet.Config) (*raster.Renderer, error) {
	fonts, err := e.loader.LoadFonts(ctx, string(cfg.Design.FontLatin), cfg.Design.FontArabic)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	var logo image.Image
	if cfg.Header.LogoURL != "" {
		logo, err = e.loader.LoadImage(ctx, cfg.Header.LogoURL, e.options.LogoSize)
		if err != nil {
			log.Warn().Err(err).Msg("logo could not be loaded, rendering without it")
			logo = nil
		}
	}

	r := raster.NewRenderer(fonts, logo)
	r.SetOptions(raster.Options{Scale: e.options.Scale, Layout: layout.NewEngine().Options()})
	return r, nil
}

func (e *Exporter) encode(plan *Plan, images []image.Image) ([]storage.Object, error) {
	base := plan.BaseName()
	switch plan.Config.Output.Format {
	case worksheet.FormatPNG:
		files, err := bundle.Pages(base, images)
		if err != nil {
			return nil, err
		}
		out := make([]storage.Object, 0, len(files))
		for _, f := range files {
			out = append(out, storage.Object{Name: f.Name, ContentType: "image/png", Data: f.Data})
		}
		return out, nil

	case worksheet.FormatZIP:
		files, err := bundle.Pages(base, images)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := bundle.Zip(&buf, files, time.Now()); err != nil {
			return nil, err
		}
		return []storage.Object{{Name: base + ".zip", ContentType: "application/zip", Data: buf.Bytes()}}, nil

	case worksheet.FormatPDF:
		var buf bytes.Buffer
		if err := e.pdf.Render(images, &buf, metadata(plan)); err != nil {
			return nil, err
		}
		return []storage.Object{{Name: base + ".pdf", ContentType: "application/pdf", Data: buf.Bytes()}}, nil

	default:
		return nil, errors.NewInvalidConfig("output.format", fmt.Sprintf("unknown format %q", plan.Config.Output.Format))
	}
}

func metadata(plan *Plan) pdf.RenderOptions {
	return pdf.RenderOptions{
		Title:    plan.Config.Title(plan.Surah),
		Author:   plan.Config.Header.SchoolName,
		Subject:  "Lembar kerja " + plan.Surah.Latin,
		Keywords: strings.Join(plan.Config.Activities.Strings(), " "),
		Creator:  raster.Brand,
		Producer: "gompdf/worksheet",
	}
}

// Save stores every file of the result through s and returns their locations.
func (r *Result) Save(ctx context.Context, s storage.Saver) ([]string, error) {
	locations := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		loc, err := s.Save(ctx, f)
		if err != nil {
			return locations, err
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
