package api

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/quran"
)

func fastGenerator() *Generator {
	return NewWithOptions(DefaultOptions()).SetScale(0.5).SetConcurrency(2).SetSeed(11)
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 3.0, o.Scale)
	assert.Equal(t, 4, o.Concurrency)
	assert.Equal(t, DefaultBrand, o.Brand)
	assert.Nil(t, o.Repository)
}

func TestSettersCopyOnWrite(t *testing.T) {
	g := New()
	g2 := g.SetScale(1).AddFontDirectory("/fonts").AddResourcePath("/assets")

	assert.Equal(t, 3.0, g.Options().Scale)
	assert.Empty(t, g.Options().FontDirectories)
	assert.Equal(t, 1.0, g2.Options().Scale)
	assert.Equal(t, []string{"/fonts"}, g2.Options().FontDirectories)
	assert.Equal(t, []string{"/assets"}, g2.Options().ResourcePaths)

	g3 := g2.AddFontDirectory("/more")
	assert.Equal(t, []string{"/fonts"}, g2.Options().FontDirectories)
	assert.Equal(t, []string{"/fonts", "/more"}, g3.Options().FontDirectories)
}

func TestSurahs(t *testing.T) {
	surahs, err := New().Surahs()
	require.NoError(t, err)
	assert.Len(t, surahs, 6)
}

func TestWithRepository(t *testing.T) {
	repo, err := quran.NewMemoryRepository([]quran.Surah{{
		Number: 112,
		Name:   "الإخلاص",
		Latin:  "Al-Ikhlas",
		Verses: quran.Placeholders(4),
	}})
	require.NoError(t, err)

	g := New().WithOption(WithRepository(repo))
	surahs, err := g.Surahs()
	require.NoError(t, err)
	require.Len(t, surahs, 1)

	_, err = g.Estimate(DefaultConfig())
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestEstimateAndMeter(t *testing.T) {
	g := New()
	cfg := DefaultConfig()

	est, err := g.Estimate(cfg)
	require.NoError(t, err)
	// 2*60 + 6*(90+110)
	assert.Equal(t, 1320.0, est.TotalHeight)
	assert.True(t, est.IsFull)

	meter, err := g.Meter(cfg.WithRange(1, 2, 6).WithActivities(activity.Tracing))
	require.NoError(t, err)
	assert.Equal(t, 30, meter.Percentage)
	assert.Equal(t, "fits", string(meter.State))
}

func TestPaginate(t *testing.T) {
	doc, err := New().Paginate(DefaultConfig().WithActivities(activity.Tracing, activity.MCQMeaning))
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Len())
	assert.Len(t, doc.AnswerKey, 1)
}

func TestPreview(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().SetBrand("Sekolah").Preview(DefaultConfig(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Sekolah • Halaman 2/2")
}

func TestExportBytes(t *testing.T) {
	data, err := fastGenerator().ExportBytes(context.Background(), DefaultConfig())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportSelection(t *testing.T) {
	g := fastGenerator()
	cfg := DefaultConfig().WithActivities(activity.Tracing, activity.CopyLines, activity.FillInBlank)

	result, err := g.Export(context.Background(), cfg, "current:2", nil)
	require.NoError(t, err)
	// one student page and the answer key
	assert.Equal(t, 2, result.Pages)

	_, err = g.Export(context.Background(), cfg, "two", nil)
	assert.Error(t, err)
}

func TestExportToDir(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig().WithActivities(activity.Tracing)

	paths, err := fastGenerator().ExportToDir(context.Background(), cfg, dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "worksheet-latiefathfall-an-nas-1-6.pdf"), paths[0])

	_, err = os.Stat(paths[0])
	assert.NoError(t, err)
}
