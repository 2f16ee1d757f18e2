package quran

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/gompdf/worksheet/internal/errors"
)

//go:embed data/surahs.json
var embeddedSurahs []byte

// Repository is a read-only chapter lookup.
type Repository interface {
	Surah(number int) (*Surah, error)
	Surahs() []Surah
}

// Document is the on-disk shape of a surah collection.
type Document struct {
	Surahs []Surah `json:"surahs"`
}

// MemoryRepository indexes surahs by number.
type MemoryRepository struct {
	surahs  []Surah
	byIndex map[int]*Surah
}

// NewMemoryRepository indexes the given surahs. Verses are sorted by number and
// must then run 1..n; duplicate surah numbers are rejected.
func NewMemoryRepository(surahs []Surah) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		surahs:  make([]Surah, 0, len(surahs)),
		byIndex: make(map[int]*Surah, len(surahs)),
	}

	seen := make(map[int]bool, len(surahs))
	for _, s := range surahs {
		if s.Number < 1 || s.Number > 114 {
			return nil, fmt.Errorf("surah number %d out of range", s.Number)
		}
		if seen[s.Number] {
			return nil, fmt.Errorf("duplicate surah %d", s.Number)
		}
		seen[s.Number] = true

		verses := append([]Verse(nil), s.Verses...)
		sort.SliceStable(verses, func(i, j int) bool { return verses[i].Number < verses[j].Number })
		for i, v := range verses {
			if v.Number != i+1 {
				return nil, fmt.Errorf("surah %d verse numbers must run 1..%d", s.Number, len(verses))
			}
		}
		s.Verses = verses
		repo.surahs = append(repo.surahs, s)
	}

	sort.Slice(repo.surahs, func(i, j int) bool { return repo.surahs[i].Number < repo.surahs[j].Number })
	for i := range repo.surahs {
		repo.byIndex[repo.surahs[i].Number] = &repo.surahs[i]
	}
	return repo, nil
}

// ParseDocument decodes a surah collection from JSON.
func ParseDocument(data []byte) ([]Surah, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse surah JSON: %w", err)
	}
	return doc.Surahs, nil
}

// Embedded returns the repository bundled with the binary.
func Embedded() (*MemoryRepository, error) {
	surahs, err := ParseDocument(embeddedSurahs)
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(surahs)
}

// Surah returns the surah with the given number.
func (r *MemoryRepository) Surah(number int) (*Surah, error) {
	s, ok := r.byIndex[number]
	if !ok {
		return nil, errors.NewNotFound("surah", strconv.Itoa(number))
	}
	return s, nil
}

// Surahs returns all surahs ordered by number.
func (r *MemoryRepository) Surahs() []Surah {
	return r.surahs
}

// Ordered returns the repository's surahs in SurahOrder, followed by any
// surah that SurahOrder does not list.
func Ordered(repo Repository) []Surah {
	all := repo.Surahs()
	seen := make(map[int]bool, len(all))
	out := make([]Surah, 0, len(all))
	for _, n := range SurahOrder {
		if s, err := repo.Surah(n); err == nil {
			out = append(out, *s)
			seen[n] = true
		}
	}
	for _, s := range all {
		if !seen[s.Number] {
			out = append(out, s)
		}
	}
	return out
}
