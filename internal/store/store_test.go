package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/worksheet"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitMigrates(t *testing.T) {
	dir := t.TempDir()
	db, err := Init(dir)
	require.NoError(t, err)

	v, err := GetUserVersion(db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, v)
	require.NoError(t, db.Close())

	// reopening an up to date database is a no-op
	db, err = Init(dir)
	require.NoError(t, err)
	defer db.Close()
	v, err = GetUserVersion(db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, v)
}

func TestImportSurahs(t *testing.T) {
	db := setupTestDB(t)
	embedded, err := quran.Embedded()
	require.NoError(t, err)

	n, err := ImportSurahs(db, embedded.Surahs())
	require.NoError(t, err)
	assert.Equal(t, len(embedded.Surahs()), n)

	list, err := ListSurahs(db)
	require.NoError(t, err)
	require.Len(t, list, n)
	assert.Equal(t, 1, list[0].Number)

	s, err := GetSurah(db, 114)
	require.NoError(t, err)
	want, _ := embedded.Surah(114)
	assert.Equal(t, want, s)

	// importing again replaces rows instead of duplicating them
	n, err = ImportSurahs(db, embedded.Surahs()[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	list, err = ListSurahs(db)
	require.NoError(t, err)
	assert.Len(t, list, len(embedded.Surahs()))
}

func TestImportRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	s := quran.Surah{Number: 112, Name: "الإخلاص", Latin: "Al-Ikhlas"}
	_, err := ImportSurahs(db, []quran.Surah{s, s})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestGetSurahNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := GetSurah(db, 2)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = Repository(db)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestRepository(t *testing.T) {
	db := setupTestDB(t)
	embedded, err := quran.Embedded()
	require.NoError(t, err)
	_, err = ImportSurahs(db, embedded.Surahs())
	require.NoError(t, err)

	repo, err := Repository(db)
	require.NoError(t, err)
	s, err := repo.Surah(113)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
}

func TestExports(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().Unix()

	cfg := worksheet.Default()
	for i, id := range []string{"01A", "01B", "01C"} {
		require.NoError(t, InsertExport(db, &Export{
			ID:          id,
			SurahNumber: 114,
			From:        1,
			To:          6,
			Format:      worksheet.FormatPDF,
			Pages:       3,
			Location:    "out/" + id + ".pdf",
			Config:      cfg,
			CreatedAt:   now + int64(i),
		}))
	}

	list, err := ListExports(db, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "01C", list[0].ID)
	assert.Equal(t, "01B", list[1].ID)

	e, err := GetExport(db, "01A")
	require.NoError(t, err)
	assert.Equal(t, cfg, e.Config)
	assert.Equal(t, worksheet.FormatPDF, e.Format)

	_, err = GetExport(db, "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	// duplicate IDs are rejected by the primary key
	assert.Error(t, InsertExport(db, &Export{ID: "01A", Config: cfg}))
}
