// Package res loads external resources referenced by a worksheet: the school
// logo and the font files.
package res

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Kind classifies a loaded resource by its sniffed content.
type Kind int

const (
	KindUnknown Kind = iota
	// KindImage is a PNG, JPEG, GIF, BMP, TIFF or WebP logo.
	KindImage
	KindSVG
	// KindFont is a TrueType or OpenType face.
	KindFont
	KindOther
)

// MaxResourceSize caps the size of a downloaded or read resource.
const MaxResourceSize = 8 << 20

// Resource is a fetched logo or font.
type Resource struct {
	Ref      string
	Kind     Kind
	Data     []byte
	MimeType string
}

// Loader fetches logos and fonts and caches them by reference. It is safe for
// concurrent use once configured.
type Loader struct {
	// BaseURL is the directory or http(s) URL relative references resolve against.
	BaseURL string

	mu    sync.RWMutex
	cache map[string]*Resource

	fontDirs []string
	client   *http.Client
}

// NewLoader creates a new resource loader
func NewLoader(baseURL string) *Loader {
	return &Loader{
		BaseURL:     baseURL,
		cache:    make(map[string]*Resource),
		fontDirs: []string{},
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// AddSearchPath adds a directory that is tried, by base name, when a local
// reference does not exist.
func (l *Loader) AddSearchPath(path string) {
	l.fontDirs = append(l.fontDirs, path)
}

// Load loads a resource from a data URL, an http(s) URL or a file path
func (l *Loader) Load(ctx context.Context, ref string) (*Resource, error) {
	l.mu.RLock()
	if res, ok := l.cache[ref]; ok {
		l.mu.RUnlock()
		return res, nil
	}
	l.mu.RUnlock()

	var (
		res *Resource
		err error
	)
	if strings.HasPrefix(ref, "data:") {
		res, err = parseDataURL(ref)
	} else {
		var resolved string
		resolved, err = l.resolveURL(ref)
		if err != nil {
			return nil, err
		}
		if isRemote(resolved) {
			res, err = l.loadRemote(ctx, resolved)
		} else {
			res, err = l.loadLocal(resolved)
		}
	}
	if err != nil {
		return nil, err
	}

	log.Debug().Str("ref", truncate(ref, 64)).Str("mime", res.MimeType).Int("bytes", len(res.Data)).Msg("resource loaded")

	l.mu.Lock()
	l.cache[ref] = res
	l.mu.Unlock()
	return res, nil
}

// parseDataURL parses a data URL (RFC 2397) and returns a Resource.
// Examples:
//
//	data:image/png;base64,<base64>
//	data:image/svg+xml,%3Csvg...
func parseDataURL(u string) (*Resource, error) {
	s := strings.TrimPrefix(u, "data:")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URL")
	}
	meta, payload := parts[0], parts[1]

	isBase64 := false
	for _, c := range strings.Split(meta, ";")[1:] {
		if strings.EqualFold(strings.TrimSpace(c), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		d, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = d
	} else if d, err := url.PathUnescape(payload); err == nil {
		data = []byte(d)
	} else {
		data = []byte(payload)
	}

	return newResource(truncate(u, 64), data), nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// resolveURL joins a relative reference onto BaseURL.
func (l *Loader) resolveURL(ref string) (string, error) {
	if isRemote(ref) || filepath.IsAbs(ref) {
		return ref, nil
	}

	if !isRemote(l.BaseURL) {
		return filepath.Join(l.BaseURL, ref), nil
	}

	base, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}

// loadRemote fetches ref honoring ctx cancellation.
func (l *Loader) loadRemote(ctx context.Context, ref string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := readLimited(resp.Body)
	if err != nil {
		return nil, err
	}
	return newResource(ref, data), nil
}

func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := readFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l.searchDirs(path)
		}
		return nil, err
	}
	return newResource(path, data), nil
}

func (l *Loader) searchDirs(filename string) (*Resource, error) {
	base := filepath.Base(filename)
	for _, dir := range l.fontDirs {
		path := filepath.Join(dir, base)
		data, err := readFile(path)
		if err != nil {
			continue
		}
		return newResource(path, data), nil
	}
	return nil, fmt.Errorf("resource not found: %s", filename)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxResourceSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxResourceSize {
		return nil, fmt.Errorf("resource exceeds %d bytes", MaxResourceSize)
	}
	return data, nil
}

// newResource sniffs the content type from the bytes, ignoring
// headers or file extensions.
func newResource(ref string, data []byte) *Resource {
	mt := mimetype.Detect(data)
	return &Resource{
		Ref:      ref,
		Data:     data,
		MimeType: mt.String(),
		Kind:     kindOf(mt),
	}
}

// kindOf maps a sniffed MIME type onto a Kind.
func kindOf(mt *mimetype.MIME) Kind {
	switch {
	case mt.Is("image/svg+xml"):
		return KindSVG
	case strings.HasPrefix(mt.String(), "image/"):
		return KindImage
	case strings.HasPrefix(mt.String(), "font/"), mt.Is("application/font-sfnt"):
		return KindFont
	}
	return KindOther
}

// LoadImage loads and decodes an image. SVG images are rasterized at their
// view box size, or size×size when the view box is empty.
func (l *Loader) LoadImage(ctx context.Context, ref string, size int) (image.Image, error) {
	res, err := l.Load(ctx, ref)
	if err != nil {
		return nil, err
	}

	switch res.Kind {
	case KindImage:
		img, _, err := image.Decode(res.GetReader())
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s image: %w", res.MimeType, err)
		}
		return img, nil
	case KindSVG:
		return rasterizeSVG(res.Data, size)
	}
	return nil, fmt.Errorf("resource is not an image: %s (%s)", truncate(ref, 64), res.MimeType)
}

func rasterizeSVG(data []byte, size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = size, size
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	icon.Draw(rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, img, img.Bounds())), 1)
	return img, nil
}

// GetReader returns a reader for a resource
func (r *Resource) GetReader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
