package store

import (
	"database/sql"
	"encoding/json"

	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/worksheet"
)

// Export is one entry of the export history.
type Export struct {
	ID          string           `json:"id"`
	SurahNumber int              `json:"surahNumber"`
	From        int              `json:"from"`
	To          int              `json:"to"`
	Format      worksheet.Format `json:"format"`
	Pages       int              `json:"pages"`
	Location    string           `json:"location"`
	Config      worksheet.Config `json:"config"`
	CreatedAt   int64            `json:"createdAt"`
}

// InsertExport records a finished export.
func InsertExport(db *sql.DB, e *Export) error {
	cfg, err := json.Marshal(e.Config)
	if err != nil {
		return errors.NewInternal(err)
	}

	_, err = db.Exec(`
		INSERT INTO exports (id, surah_number, range_from, range_to, format, pages, location, config_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.SurahNumber, e.From, e.To, string(e.Format), e.Pages, e.Location, string(cfg), e.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetExport retrieves an export by its ULID.
func GetExport(db *sql.DB, id string) (*Export, error) {
	row := db.QueryRow(`
		SELECT id, surah_number, range_from, range_to, format, pages, location, config_json, created_at
		FROM exports WHERE id = ?
	`, id)
	e, err := scanExport(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("export", id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return e, nil
}

// ListExports returns the most recent exports first. The ULID breaks ties
// between exports created in the same second.
func ListExports(db *sql.DB, limit, offset int) ([]*Export, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := db.Query(`
		SELECT id, surah_number, range_from, range_to, format, pages, location, config_json, created_at
		FROM exports
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	out := make([]*Export, 0)
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExport(s scanner) (*Export, error) {
	var (
		e      Export
		format string
		cfg    string
	)
	if err := s.Scan(&e.ID, &e.SurahNumber, &e.From, &e.To, &format, &e.Pages, &e.Location, &cfg, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Format = worksheet.Format(format)
	if err := json.Unmarshal([]byte(cfg), &e.Config); err != nil {
		return nil, err
	}
	return &e, nil
}
