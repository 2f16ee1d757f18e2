// Package api is the public entry point for estimating, previewing and
// exporting Quran worksheets.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/gompdf/worksheet/internal/capacity"
	"github.com/gompdf/worksheet/internal/export"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/render/preview"
	"github.com/gompdf/worksheet/internal/res"
	"github.com/gompdf/worksheet/internal/storage"
	"github.com/gompdf/worksheet/internal/worksheet"
)

type (
	Config     = worksheet.Config
	Estimation = capacity.Estimation
	Meter      = capacity.Meter
	Document   = pagination.Document
	Result     = export.Result
	Progress   = export.Progress
)

// DefaultConfig returns the configuration of a fresh worksheet.
func DefaultConfig() Config {
	return worksheet.Default()
}

// Generator is the main API for building worksheets. Setters return a new
// generator and leave the receiver unchanged.
type Generator struct {
	options Options
	repo    quran.Repository
	repoErr error
	loader  *res.Loader
}

// New creates a new worksheet generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new worksheet generator with the specified options
func NewWithOptions(options Options) *Generator {
	options.ResourcePaths = slices.Clone(options.ResourcePaths)
	options.FontDirectories = slices.Clone(options.FontDirectories)

	g := &Generator{options: options, loader: res.NewLoader(options.BaseURL)}
	for _, path := range options.ResourcePaths {
		g.loader.AddSearchPath(path)
	}
	for _, dir := range options.FontDirectories {
		g.loader.AddSearchPath(dir)
	}

	if options.Repository != nil {
		g.repo = options.Repository
	} else {
		g.repo, g.repoErr = quran.Embedded()
	}
	return g
}

// Options returns a copy of the generator options
func (g *Generator) Options() Options {
	o := g.options
	o.ResourcePaths = slices.Clone(o.ResourcePaths)
	o.FontDirectories = slices.Clone(o.FontDirectories)
	return o
}

// Surahs lists the available surahs in display order.
func (g *Generator) Surahs() ([]quran.Surah, error) {
	if g.repoErr != nil {
		return nil, g.repoErr
	}
	return quran.Ordered(g.repo), nil
}

// Plan validates, normalizes and paginates cfg.
func (g *Generator) Plan(cfg Config) (*export.Plan, error) {
	if g.repoErr != nil {
		return nil, fmt.Errorf("failed to load surahs: %w", g.repoErr)
	}
	return export.NewPlan(g.repo, cfg, g.options.Seed)
}

// Estimate projects how much of one page the configured activities fill.
func (g *Generator) Estimate(cfg Config) (Estimation, error) {
	plan, err := g.Plan(cfg)
	if err != nil {
		return Estimation{}, err
	}
	return plan.Estimate(), nil
}

// Meter summarizes the estimate of cfg for a capacity indicator.
func (g *Generator) Meter(cfg Config) (Meter, error) {
	est, err := g.Estimate(cfg)
	if err != nil {
		return Meter{}, err
	}
	return capacity.NewMeter(est), nil
}

// Paginate returns the page list cfg exports to.
func (g *Generator) Paginate(cfg Config) (Document, error) {
	plan, err := g.Plan(cfg)
	if err != nil {
		return Document{}, err
	}
	return plan.Document, nil
}

// Preview writes the HTML preview of cfg.
func (g *Generator) Preview(cfg Config, w io.Writer) error {
	plan, err := g.Plan(cfg)
	if err != nil {
		return err
	}
	return preview.Render(w, plan.Preview(g.options.Brand))
}

// Export renders the pages of cfg picked by selection ("all", "current:2",
// "3" or "2-4") in the configured output format. Answer key pages are
// always included.
func (g *Generator) Export(ctx context.Context, cfg Config, selection string, progress Progress) (*Result, error) {
	sel, err := pagination.ParsePageSelection(selection)
	if err != nil {
		return nil, err
	}
	if g.repoErr != nil {
		return nil, fmt.Errorf("failed to load surahs: %w", g.repoErr)
	}
	return g.exporter().Export(ctx, export.Request{Config: cfg, Selection: sel}, progress)
}

// ExportToDir exports every page of cfg and writes the files into dir.
func (g *Generator) ExportToDir(ctx context.Context, cfg Config, dir string) ([]string, error) {
	result, err := g.Export(ctx, cfg, "all", nil)
	if err != nil {
		return nil, err
	}
	return result.Save(ctx, storage.NewLocal(dir))
}

// ExportBytes exports every page of cfg as a single PDF.
func (g *Generator) ExportBytes(ctx context.Context, cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.ExportPDF(ctx, cfg, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF exports every page of cfg as a PDF written to w.
func (g *Generator) ExportPDF(ctx context.Context, cfg Config, w io.Writer) error {
	result, err := g.Export(ctx, cfg.WithFormat(worksheet.FormatPDF), "all", nil)
	if err != nil {
		return err
	}
	if _, err := w.Write(result.Files[0].Data); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (g *Generator) exporter() *export.Exporter {
	return export.New(g.repo, g.loader, export.Options{
		Scale:       g.options.Scale,
		Concurrency: g.options.Concurrency,
		Seed:        g.options.Seed,
		LogoSize:    g.options.LogoSize,
	})
}

// WithOptions returns a new generator with the specified options
func (g *Generator) WithOptions(options Options) *Generator {
	return NewWithOptions(options)
}

// WithOption returns a new generator with the specified option set
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.Options()
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// AddResourcePath adds a path to search for resources
func (g *Generator) AddResourcePath(path string) *Generator {
	return g.WithOption(WithResourcePath(path))
}

// AddFontDirectory adds a directory to search for fonts
func (g *Generator) AddFontDirectory(dir string) *Generator {
	return g.WithOption(WithFontDirectory(dir))
}

// SetScale sets the raster scale
func (g *Generator) SetScale(scale float64) *Generator {
	return g.WithOption(WithScale(scale))
}

// SetConcurrency sets how many pages render at once
func (g *Generator) SetConcurrency(n int) *Generator {
	return g.WithOption(WithConcurrency(n))
}

// SetSeed fixes the exercise shuffling seed
func (g *Generator) SetSeed(seed int64) *Generator {
	return g.WithOption(WithSeed(seed))
}

// SetBrand sets the preview footer brand
func (g *Generator) SetBrand(brand string) *Generator {
	return g.WithOption(WithBrand(brand))
}
