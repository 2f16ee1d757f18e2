package res

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadDataURL(t *testing.T) {
	l := NewLoader("")
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 4, 3))

	img, err := l.LoadImage(context.Background(), ref, 80)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}

func TestLoadSVGDataURL(t *testing.T) {
	l := NewLoader("")
	ref := `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10"%3E%3Crect width="20" height="10" fill="%23f00"/%3E%3C/svg%3E`

	res, err := l.Load(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, KindSVG, res.Kind)

	img, err := l.LoadImage(context.Background(), ref, 80)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
}

func TestLoadLocalSniffsType(t *testing.T) {
	dir := t.TempDir()
	// extension lies about the content
	path := filepath.Join(dir, "logo.jpg")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 2, 2), 0o644))

	l := NewLoader(dir)
	res, err := l.Load(context.Background(), "logo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MimeType)
	assert.Equal(t, KindImage, res.Kind)

	cached, err := l.Load(context.Background(), "logo.jpg")
	require.NoError(t, err)
	assert.Same(t, res, cached)
}

func TestSearchPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), pngBytes(t, 1, 1), 0o644))

	l := NewLoader(t.TempDir())
	_, err := l.Load(context.Background(), "missing/a.png")
	require.Error(t, err)

	l = NewLoader(t.TempDir())
	l.AddSearchPath(dir)
	res, err := l.Load(context.Background(), "missing/a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.png"), res.Ref)
}

func TestLoadRemote(t *testing.T) {
	data := pngBytes(t, 5, 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logo" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	l := NewLoader(srv.URL + "/assets/")
	img, err := l.LoadImage(context.Background(), srv.URL+"/logo", 80)
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dx())

	_, err = l.Load(context.Background(), "../nope")
	require.Error(t, err)
}

func TestLoadImageRejectsText(t *testing.T) {
	l := NewLoader("")
	_, err := l.LoadImage(context.Background(), "data:,hello%20world", 80)
	require.Error(t, err)
}

func TestLoadFonts(t *testing.T) {
	l := NewLoader(t.TempDir())
	fs, err := l.LoadFonts(context.Background(), "Comic Neue", "Amiri Quran")
	require.NoError(t, err)
	assert.Equal(t, []string{"Comic Neue", "Amiri Quran"}, fs.Fallback)
	assert.Same(t, fs.Regular, fs.Arabic)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Poppins-Regular.ttf"), goregular.TTF, 0o644))
	l = NewLoader(dir)
	fs, err = l.LoadFonts(context.Background(), "Poppins", "Amiri Quran")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amiri Quran"}, fs.Fallback)
	assert.NotNil(t, Face(fs.Regular, 14))
}
