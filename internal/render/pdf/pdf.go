// Package pdf assembles rendered page images into a PDF document.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/gompdf/worksheet/internal/pagination"
)

// Renderer handles rendering to PDF
type Renderer struct {
	// PageSize is the physical page every image is stretched to.
	PageSize pagination.PageSize
	// Compression is the PNG compression used for embedded pages.
	Compression png.CompressionLevel
}

// RenderOptions contains the document metadata
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// NewRenderer creates a new PDF renderer for A4 pages
func NewRenderer() *Renderer {
	return &Renderer{
		PageSize:    pagination.PageSizeA4,
		Compression: png.BestSpeed,
	}
}

// Render writes one PDF page per image, each image filling its page.
func (r *Renderer) Render(pages []image.Image, w io.Writer, options RenderOptions) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to render")
	}

	size := fpdf.SizeType{Wd: r.PageSize.Width, Ht: r.PageSize.Height}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)

	enc := png.Encoder{CompressionLevel: r.Compression}
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	for i, img := range pages {
		var buf bytes.Buffer
		if err := enc.Encode(&buf, img); err != nil {
			return fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("page-%03d", i+1)
		pdf.RegisterImageOptionsReader(name, opt, &buf)
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, size.Wd, size.Ht, false, opt, 0, "")
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("failed to add page %d: %w", i+1, err)
		}
	}

	log.Debug().Int("pages", len(pages)).Str("title", options.Title).Msg("pdf assembled")
	return pdf.Output(w)
}

// RenderFile renders pages to a PDF file, creating the directory if needed
func (r *Renderer) RenderFile(pages []image.Image, outputPath string, options RenderOptions) error {
	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	if err := r.Render(pages, f, options); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Verify parses a written PDF and checks that it holds want pages.
func Verify(path string, want int) error {
	n, err := api.PageCountFile(path)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", path, err)
	}
	if n != want {
		return fmt.Errorf("%s has %d pages, want %d", path, n, want)
	}
	return nil
}
