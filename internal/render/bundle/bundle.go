// Package bundle encodes rendered pages as PNG files and packs them into ZIP archives.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"time"
)

// File is a named blob inside a bundle.
type File struct {
	Name string
	Data []byte
}

// PageName returns the file name of page n (1-based) of a bundle called base.
func PageName(base string, n int) string {
	return fmt.Sprintf("%s-halaman-%02d.png", base, n)
}

// EncodePNG encodes img with the fastest compression.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Pages encodes every page as a PNG named after base.
func Pages(base string, pages []image.Image) ([]File, error) {
	files := make([]File, 0, len(pages))
	for i, img := range pages {
		data, err := EncodePNG(img)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		files = append(files, File{Name: PageName(base, i+1), Data: data})
	}
	return files, nil
}

// Zip writes files into a ZIP archive. PNG data is already compressed, so
// entries are stored rather than deflated.
func Zip(w io.Writer, files []File, modified time.Time) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		hdr := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Store,
			Modified: modified,
		}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}
