package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/worksheet/internal/config"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/store"
	"github.com/gompdf/worksheet/internal/worksheet"
)

// setupEnv creates a temporary database and a fast render configuration.
func setupEnv(t *testing.T) *appEnv {
	t.Helper()
	database, err := store.Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	repo, err := loadRepository(database)
	require.NoError(t, err)

	cfg := config.FromEnv()
	cfg.Render.Scale = 0.5
	cfg.Render.Concurrency = 2
	cfg.Render.Seed = 5
	cfg.Render.Timeout = 0
	cfg.Render.OutputDir = t.TempDir()
	cfg.Storage.S3Bucket = ""
	return &appEnv{db: database, cfg: &cfg, repo: repo}
}

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, env *appEnv, args ...string) (string, error) {
	t.Helper()
	app := newCLIApp(env)
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"worksheet"}, args...))
	return out.String(), err
}

func decodeJSON(t *testing.T, s string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(s), v), s)
}

func TestCLIEstimateJSON(t *testing.T) {
	env := setupEnv(t)

	out, err := run(t, env, "estimate", "--json", "-s", "114", "-a", "tracing,copy_lines")
	require.NoError(t, err)

	var got struct {
		TotalHeight float64 `json:"totalHeight"`
		IsFull      bool    `json:"isFull"`
		MaxVerses   int     `json:"maxVerses"`
		Meter       struct {
			Percentage int    `json:"percentage"`
			State      string `json:"state"`
		} `json:"meter"`
	}
	decodeJSON(t, out, &got)
	assert.Equal(t, 1320.0, got.TotalHeight)
	assert.True(t, got.IsFull)
	assert.Equal(t, 3, got.MaxVerses)
	assert.Equal(t, 100, got.Meter.Percentage)
	assert.Equal(t, "full", got.Meter.State)
}

func TestCLIEstimateMeter(t *testing.T) {
	env := setupEnv(t)

	out, err := run(t, env, "estimate", "-s", "114", "-a", "tracing,copy_lines")
	require.NoError(t, err)
	assert.Contains(t, out, "An-Nas 1-6")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "Halaman sudah penuh!")
	assert.Contains(t, out, "copy_lines")

	out, err = run(t, env, "estimate", "-s", "114", "--to", "2", "-a", "tracing")
	require.NoError(t, err)
	assert.Contains(t, out, "30%")
	assert.NotContains(t, out, "Halaman")
}

func TestCLIPaginate(t *testing.T) {
	env := setupEnv(t)

	out, err := run(t, env, "paginate", "-a", "tracing,mcq_meaning", "--from", "4", "--to", "2")
	require.NoError(t, err)

	var got struct {
		Total int `json:"total"`
		Pages []struct {
			Kind   string      `json:"kind"`
			Title  string      `json:"title"`
			Range  quran.Range `json:"range"`
			Footer string      `json:"footer"`
		} `json:"pages"`
	}
	decodeJSON(t, out, &got)
	require.Equal(t, 3, got.Total)
	require.Len(t, got.Pages, 3)
	assert.Equal(t, "answer_key", got.Pages[2].Kind)
	assert.Equal(t, "KUNCI JAWABAN", got.Pages[2].Title)
	assert.Equal(t, quran.Range{From: 2, To: 4}, got.Pages[0].Range)
	assert.Equal(t, "latiefAthfall Worksheet Generator • Halaman 3/3", got.Pages[2].Footer)

	out, err = run(t, env, "paginate", "-a", "tracing,mcq_meaning", "--mode", "compact", "--no-answer-key")
	require.NoError(t, err)
	decodeJSON(t, out, &got)
	assert.Equal(t, 1, got.Total)
}

func TestCLIMaxVerses(t *testing.T) {
	env := setupEnv(t)

	out, err := run(t, env, "max-verses", "tracing,copy_lines")
	require.NoError(t, err)
	var got map[string]int
	decodeJSON(t, out, &got)
	assert.Equal(t, 3, got["maxVerses"])

	out, err = run(t, env, "max-verses")
	require.NoError(t, err)
	decodeJSON(t, out, &got)
	assert.Equal(t, 99, got["maxVerses"])

	_, err = run(t, env, "max-verses", "juggling")
	assert.Error(t, err)
}

func TestCLIPreview(t *testing.T) {
	env := setupEnv(t)
	path := filepath.Join(t.TempDir(), "preview.html")

	out, err := run(t, env, "preview", "-a", "tracing", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Contains(t, string(data), "Halaman 1/1")
}

func TestCLIExportAndHistory(t *testing.T) {
	env := setupEnv(t)
	dir := t.TempDir()

	out, err := run(t, env, "export", "-a", "tracing", "--out", dir, "--school", "SDIT Harapan")
	require.NoError(t, err)

	var got struct {
		ID     string   `json:"id"`
		Format string   `json:"format"`
		Pages  int      `json:"pages"`
		Seed   int64    `json:"seed"`
		Files  []string `json:"files"`
	}
	decodeJSON(t, out, &got)
	assert.Equal(t, "PDF", got.Format)
	assert.Equal(t, 1, got.Pages)
	assert.Equal(t, int64(5), got.Seed)
	require.Equal(t, []string{filepath.Join(dir, "worksheet-latiefathfall-an-nas-1-6.pdf")}, got.Files)
	_, err = os.Stat(got.Files[0])
	require.NoError(t, err)

	out, err = run(t, env, "history")
	require.NoError(t, err)
	var list []*store.Export
	decodeJSON(t, out, &list)
	require.Len(t, list, 1)
	assert.Equal(t, got.ID, list[0].ID)
	assert.Equal(t, "SDIT Harapan", list[0].Config.Header.SchoolName)

	out, err = run(t, env, "history", got.ID)
	require.NoError(t, err)
	var one store.Export
	decodeJSON(t, out, &one)
	assert.Equal(t, 114, one.SurahNumber)

	_, err = run(t, env, "history", "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestCLIExportZip(t *testing.T) {
	env := setupEnv(t)

	out, err := run(t, env, "export", "-a", "tracing,fill_in_blank", "-f", "zip", "-q")
	require.NoError(t, err)

	var got struct {
		Pages int      `json:"pages"`
		Files []string `json:"files"`
	}
	decodeJSON(t, out, &got)
	assert.Equal(t, 3, got.Pages)
	require.Len(t, got.Files, 1)
	assert.True(t, strings.HasSuffix(got.Files[0], ".zip"))
	assert.Equal(t, env.cfg.Render.OutputDir, filepath.Dir(got.Files[0]))
}

func TestCLIExportErrors(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"s3 without bucket", []string{"export", "--s3"}, "INVALID_REQUEST"},
		{"no activities", []string{"export", "-a", ""}, "NO_PAGES"},
		{"page out of range", []string{"export", "-p", "4-5"}, "INVALID_PAGE_RANGE"},
		{"bad format", []string{"export", "-f", "docx"}, "INVALID_CONFIG"},
		{"unknown surah", []string{"export", "-s", "2"}, "NOT_FOUND"},
		{"unknown activity", []string{"export", "-a", "dance"}, "INVALID_CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, env, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCLISurahsAndImport(t *testing.T) {
	env := setupEnv(t)

	out, err := run(t, env, "surahs")
	require.NoError(t, err)
	var surahs []struct {
		Number int `json:"number"`
		Ayahs  int `json:"ayahs"`
	}
	decodeJSON(t, out, &surahs)
	require.Len(t, surahs, 6)
	assert.Equal(t, 114, surahs[0].Number)
	assert.Equal(t, 6, surahs[0].Ayahs)

	doc := quran.Document{Surahs: []quran.Surah{{
		Number: 112,
		Name:   "الإخلاص",
		Latin:  "Al-Ikhlas",
		Verses: quran.Placeholders(4),
	}}}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "surahs.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err = run(t, env, "import", path)
	require.NoError(t, err)
	var imported map[string]int
	decodeJSON(t, out, &imported)
	assert.Equal(t, 1, imported["imported"])

	repo, err := loadRepository(env.db)
	require.NoError(t, err)
	assert.Len(t, repo.Surahs(), 1)

	_, err = run(t, env, "import")
	assert.Error(t, err)
}

func TestCLIConfigInit(t *testing.T) {
	env := setupEnv(t)
	path := filepath.Join(t.TempDir(), "worksheet.yaml")

	_, err := run(t, env, "config", "init", path)
	require.NoError(t, err)

	cfg, err := worksheet.Load(path)
	require.NoError(t, err)
	assert.Equal(t, worksheet.Default(), cfg)

	_, err = run(t, env, "config", "init", path)
	assert.Error(t, err)

	_, err = run(t, env, "config", "init", "--force", path)
	assert.NoError(t, err)

	out, err := run(t, env, "estimate", "--json", "-c", path, "-a", "tracing", "--to", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalHeight": 240`)
}

func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		args []string
		cli  bool
		help bool
	}{
		{[]string{"worksheet"}, false, false},
		{[]string{"worksheet", "estimate"}, true, false},
		{[]string{"worksheet", "mcp"}, true, false},
		{[]string{"worksheet", "--help"}, true, true},
		{[]string{"worksheet", "help"}, true, true},
		{[]string{"worksheet", "-v"}, true, true},
		{[]string{"worksheet", "bogus"}, false, false},
	}

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.cli, isCLIMode())
			assert.Equal(t, tt.help, isHelpOrVersion())
		})
	}
}
