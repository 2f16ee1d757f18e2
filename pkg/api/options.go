package api

import (
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/render/raster"
)

// Options represents configuration options for the worksheet generator
type Options struct {
	// Rendering options
	Scale       float64
	Concurrency int
	// Seed fixes exercise shuffling. Zero picks a new seed per export.
	Seed int64
	// LogoSize is the pixel size SVG logos are rasterized at
	LogoSize int

	// Resource paths
	BaseURL         string
	ResourcePaths   []string
	FontDirectories []string

	// Brand is printed in the footer of the HTML preview
	Brand string

	// Repository supplies surahs. Nil uses the embedded data set.
	Repository quran.Repository
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Scale:           3,
		Concurrency:     4,
		LogoSize:        256,
		ResourcePaths:   []string{},
		FontDirectories: []string{},
		Brand:           DefaultBrand,
	}
}

// DefaultBrand is the footer brand of generated worksheets.
const DefaultBrand = raster.Brand

// WithScale sets the raster scale. 3 gives about 288 DPI on A4.
func WithScale(scale float64) Option {
	return func(o *Options) {
		o.Scale = scale
	}
}

// WithConcurrency sets how many pages render at once
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

// WithSeed fixes the exercise shuffling seed
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithLogoSize sets the SVG logo rasterization size
func WithLogoSize(size int) Option {
	return func(o *Options) {
		o.LogoSize = size
	}
}

// WithBaseURL sets the base that relative logo and font references resolve against
func WithBaseURL(base string) Option {
	return func(o *Options) {
		o.BaseURL = base
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithFontDirectory adds a directory to search for fonts
func WithFontDirectory(dir string) Option {
	return func(o *Options) {
		o.FontDirectories = append(o.FontDirectories, dir)
	}
}

// WithBrand sets the preview footer brand
func WithBrand(brand string) Option {
	return func(o *Options) {
		o.Brand = brand
	}
}

// WithRepository sets the surah source
func WithRepository(repo quran.Repository) Option {
	return func(o *Options) {
		o.Repository = repo
	}
}
