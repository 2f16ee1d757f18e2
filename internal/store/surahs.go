package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/quran"
)

// SurahSummary is a row of the surah listing.
type SurahSummary struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	Latin      string `json:"latin"`
	AyahCount  int    `json:"ayahCount"`
	ImportedAt int64  `json:"importedAt"`
}

// ImportSurahs upserts surahs in one transaction and returns how many were written.
// The set is validated through quran.NewMemoryRepository first, so duplicates
// and out of range numbers are rejected before anything is written.
func ImportSurahs(db *sql.DB, surahs []quran.Surah) (int, error) {
	repo, err := quran.NewMemoryRepository(surahs)
	if err != nil {
		return 0, errors.NewInvalidRequest(err.Error())
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO surahs (number, name, latin, ayahs_json, ayah_count, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(number) DO UPDATE SET
			name = excluded.name,
			latin = excluded.latin,
			ayahs_json = excluded.ayahs_json,
			ayah_count = excluded.ayah_count,
			imported_at = excluded.imported_at
	`)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, s := range repo.Surahs() {
		ayahs, err := json.Marshal(s.Verses)
		if err != nil {
			return 0, errors.NewInternal(err)
		}
		if _, err := stmt.Exec(s.Number, s.Name, s.Latin, string(ayahs), len(s.Verses), now); err != nil {
			return 0, errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewInternal(err)
	}
	return len(repo.Surahs()), nil
}

// ListSurahs returns the imported surahs ordered by number.
func ListSurahs(db *sql.DB) ([]SurahSummary, error) {
	rows, err := db.Query(`SELECT number, name, latin, ayah_count, imported_at FROM surahs ORDER BY number`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []SurahSummary
	for rows.Next() {
		var s SurahSummary
		if err := rows.Scan(&s.Number, &s.Name, &s.Latin, &s.AyahCount, &s.ImportedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// GetSurah loads one imported surah.
func GetSurah(db *sql.DB, number int) (*quran.Surah, error) {
	var (
		s     quran.Surah
		ayahs string
	)
	err := db.QueryRow(`SELECT number, name, latin, ayahs_json FROM surahs WHERE number = ?`, number).
		Scan(&s.Number, &s.Name, &s.Latin, &ayahs)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("surah", strconv.Itoa(number))
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := json.Unmarshal([]byte(ayahs), &s.Verses); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to decode ayahs of surah %d: %w", number, err))
	}
	return &s, nil
}

// Repository loads every imported surah into a memory repository.
// It returns a NOT_FOUND error when nothing has been imported yet.
func Repository(db *sql.DB) (*quran.MemoryRepository, error) {
	list, err := ListSurahs(db)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.NewNotFound("surah", "any")
	}

	surahs := make([]quran.Surah, 0, len(list))
	for _, row := range list {
		s, err := GetSurah(db, row.Number)
		if err != nil {
			return nil, err
		}
		surahs = append(surahs, *s)
	}
	return quran.NewMemoryRepository(surahs)
}
