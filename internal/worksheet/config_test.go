package worksheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "SD Contoh Nusantara", cfg.Header.SchoolName)
	assert.Equal(t, 114, cfg.SurahNumber)
	assert.Equal(t, quran.Range{From: 1, To: 6}, cfg.AyahRange)
	assert.Equal(t, activity.Selection{activity.Tracing, activity.CopyLines}, cfg.Activities)
	assert.True(t, cfg.Output.IncludeAnswerKey)
	assert.Equal(t, pagination.ModeSingleActivityPerPage, cfg.Output.PaginationMode)
}

func TestWithDoesNotMutate(t *testing.T) {
	base := Default()

	toggled := base.ToggleActivity(activity.MCQMeaning)
	assert.Equal(t, activity.Selection{activity.Tracing, activity.CopyLines}, base.Activities)
	assert.Equal(t, activity.Selection{activity.Tracing, activity.CopyLines, activity.MCQMeaning}, toggled.Activities)

	renamed := base.WithSchoolName("MI Al-Hikmah").WithClassName("1B")
	assert.Equal(t, "SD Contoh Nusantara", base.Header.SchoolName)
	assert.Equal(t, "MI Al-Hikmah", renamed.Header.SchoolName)
	assert.Equal(t, "1B", renamed.Header.ClassName)

	compact := base.WithPaginationMode(pagination.ModeCompact).WithAnswerKey(false)
	assert.Equal(t, pagination.ModeSingleActivityPerPage, base.Output.PaginationMode)
	assert.False(t, compact.Output.IncludeAnswerKey)

	updated := base.WithBorder(BorderHearts)
	updated.Activities[0] = activity.PuzzleAyah
	assert.Equal(t, activity.Tracing, base.Activities[0])
}

func TestWithSurahResetsRange(t *testing.T) {
	repo, err := quran.Embedded()
	require.NoError(t, err)
	falaq, err := repo.Surah(113)
	require.NoError(t, err)

	cfg := Default().WithRange(2, 3, 6).WithSurah(falaq)
	assert.Equal(t, 113, cfg.SurahNumber)
	assert.Equal(t, quran.Range{From: 1, To: 5}, cfg.AyahRange)
}

func TestWithRangeNormalizes(t *testing.T) {
	cfg := Default().WithRange(9, 3, 6)
	assert.Equal(t, quran.Range{From: 3, To: 6}, cfg.AyahRange)
}

func TestWithActivitiesDeduplicates(t *testing.T) {
	cfg := Default().WithActivities(activity.PuzzleAyah, activity.Tracing, activity.PuzzleAyah)
	assert.Equal(t, activity.Selection{activity.PuzzleAyah, activity.Tracing}, cfg.Activities)
}

func TestNormalize(t *testing.T) {
	repo, err := quran.Embedded()
	require.NoError(t, err)

	cfg := Default()
	cfg.SurahNumber = 112
	cfg.AyahRange = quran.Range{From: 3, To: 10}

	got, s, err := cfg.Normalize(repo)
	require.NoError(t, err)
	assert.Equal(t, 112, s.Number)
	assert.Equal(t, quran.Range{From: 3, To: 4}, got.AyahRange)

	cfg.SurahNumber = 2
	_, _, err = cfg.Normalize(repo)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"surah", Default().WithRange(1, 1, 1).withSurahNumber(0)},
		{"activity", Default().WithActivities("drawing")},
		{"border", Default().WithBorder("glitter")},
		{"background", Default().WithBackground("neon")},
		{"font", Default().WithFont("Arial")},
		{"format", Default().WithFormat("DOCX")},
		{"mode", Default().WithPaginationMode("flow")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
		})
	}
}

func (c Config) withSurahNumber(n int) Config {
	c.SurahNumber = n
	return c
}

func TestSaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws", "worksheet.yaml")
	cfg := Default().
		WithActivities(activity.WordMeaning, activity.FillInBlank).
		WithBackground(BackgroundDotGrid).
		WithFormat(FormatZIP)

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParseJSONOverDefaults(t *testing.T) {
	doc := `{"surahNumber": 112, "activities": ["mcq_meaning"], "output": {"format": "PNG", "includeAnswerKey": false, "paginationMode": "compact"}}`
	cfg, err := Parse([]byte(doc), true)
	require.NoError(t, err)

	assert.Equal(t, 112, cfg.SurahNumber)
	assert.Equal(t, activity.Selection{activity.MCQMeaning}, cfg.Activities)
	assert.Equal(t, pagination.ModeCompact, cfg.Output.PaginationMode)
	assert.Equal(t, "SD Contoh Nusantara", cfg.Header.SchoolName)
	assert.Equal(t, BorderStars, cfg.Design.Border)

	_, err = Parse([]byte(`{"activities": ["nope"]}`), true)
	require.Error(t, err)

	_, err = Parse([]byte("design:\n  border: glitter\n"), false)
	require.Error(t, err)
}

func TestLoadCanonicalizesOutput(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		doc    string
		format Format
		mode   pagination.Mode
	}{
		{
			name:   "yaml mixed case",
			file:   "worksheet.yaml",
			doc:    "output:\n  format: png\n  paginationMode: Compact\n",
			format: FormatPNG,
			mode:   pagination.ModeCompact,
		},
		{
			name:   "yaml short single",
			file:   "worksheet.yml",
			doc:    "output:\n  format: Zip\n  paginationMode: SINGLE\n",
			format: FormatZIP,
			mode:   pagination.ModeSingleActivityPerPage,
		},
		{
			name:   "json padded",
			file:   "worksheet.json",
			doc:    `{"output": {"format": " pdf ", "paginationMode": "single-activity-per-page"}}`,
			format: FormatPDF,
			mode:   pagination.ModeSingleActivityPerPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.format, cfg.Output.Format)
			assert.Equal(t, tt.mode, cfg.Output.PaginationMode)
		})
	}
}

func TestNormalizeCanonicalizesOutput(t *testing.T) {
	repo, err := quran.Embedded()
	require.NoError(t, err)

	tests := []struct {
		format Format
		mode   pagination.Mode
		want   Output
	}{
		{"png", "Compact", Output{Format: FormatPNG, PaginationMode: pagination.ModeCompact}},
		{"Pdf", "single", Output{Format: FormatPDF, PaginationMode: pagination.ModeSingleActivityPerPage}},
		{FormatZIP, pagination.ModeCompact, Output{Format: FormatZIP, PaginationMode: pagination.ModeCompact}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format)+"_"+string(tt.mode), func(t *testing.T) {
			cfg := Default().WithFormat(tt.format).WithPaginationMode(tt.mode)
			cfg.Output.IncludeAnswerKey = false
			require.NoError(t, cfg.Validate())

			got, _, err := cfg.Normalize(repo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Output)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("zip")
	require.NoError(t, err)
	assert.Equal(t, FormatZIP, f)

	_, err = ParseFormat("tiff")
	require.Error(t, err)
}
