package quran

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/worksheet/internal/errors"
)

func TestEmbedded(t *testing.T) {
	repo, err := Embedded()
	require.NoError(t, err)

	nas, err := repo.Surah(114)
	require.NoError(t, err)
	assert.Equal(t, "An-Nas", nas.Latin)
	require.Equal(t, 6, nas.Len())

	glossed := 0
	for i, v := range nas.Verses {
		assert.Equal(t, i+1, v.Number)
		assert.NotEmpty(t, v.Text)
		assert.NotEmpty(t, v.Translation)
		glossed += v.GlossedWords()
	}
	assert.Equal(t, 20, glossed)

	fatihah, err := repo.Surah(1)
	require.NoError(t, err)
	assert.Equal(t, 7, fatihah.Len())
}

func TestEmbeddedWordsMatchText(t *testing.T) {
	repo, err := Embedded()
	require.NoError(t, err)

	for _, s := range repo.Surahs() {
		for _, v := range s.Verses {
			assert.Len(t, v.Words, len(v.Tokens()), "surah %d verse %d", s.Number, v.Number)
		}
	}
}

func TestSurahNotFound(t *testing.T) {
	repo, err := Embedded()
	require.NoError(t, err)

	_, err = repo.Surah(2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestNewMemoryRepositoryRejects(t *testing.T) {
	tests := []struct {
		name   string
		surahs []Surah
	}{
		{"duplicate surah", []Surah{{Number: 1}, {Number: 1}}},
		{"duplicate surah with verses", []Surah{
			{Number: 112, Verses: Placeholders(4)},
			{Number: 112, Verses: Placeholders(4)},
		}},
		{"number out of range", []Surah{{Number: 115}}},
		{"repeated verse number", []Surah{{
			Number: 112,
			Verses: []Verse{{Number: 1}, {Number: 1}, {Number: 5}},
		}}},
		{"gap in verse numbers", []Surah{{
			Number: 112,
			Verses: []Verse{{Number: 1}, {Number: 3}},
		}}},
		{"verses not starting at one", []Surah{{
			Number: 112,
			Verses: []Verse{{Number: 2}, {Number: 3}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewMemoryRepository(tt.surahs)
			require.Error(t, err)
			assert.Nil(t, repo)
		})
	}
}

func TestNewMemoryRepositorySortsVerses(t *testing.T) {
	repo, err := NewMemoryRepository([]Surah{{
		Number: 112,
		Verses: []Verse{{Number: 2}, {Number: 1}},
	}})
	require.NoError(t, err)

	s, err := repo.Surah(112)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Verses[0].Number)
	assert.Equal(t, 2, s.Verses[1].Number)
}

func TestOrdered(t *testing.T) {
	repo, err := Embedded()
	require.NoError(t, err)

	var numbers []int
	for _, s := range Ordered(repo) {
		numbers = append(numbers, s.Number)
	}
	assert.Equal(t, []int{114, 113, 112, 108, 103, 1}, numbers)
}

func TestNormalizeRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		max      int
		want     Range
	}{
		{"valid", 2, 4, 6, Range{2, 4}},
		{"swapped", 5, 2, 6, Range{2, 5}},
		{"clamp high", 3, 40, 6, Range{3, 6}},
		{"clamp low", -2, 0, 6, Range{1, 1}},
		{"both above", 9, 8, 6, Range{6, 6}},
		{"empty chapter", 1, 3, 0, Range{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRange(tt.from, tt.to, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.From <= got.To)
		})
	}
}

func TestParseRange(t *testing.T) {
	assert.Equal(t, Range{1, 6}, ParseRange("", "", 6))
	assert.Equal(t, Range{3, 6}, ParseRange("3", "abc", 6))
	assert.Equal(t, Range{2, 4}, ParseRange(" 4 ", "2", 6))
}

func TestSlice(t *testing.T) {
	repo, err := Embedded()
	require.NoError(t, err)
	nas, err := repo.Surah(114)
	require.NoError(t, err)

	verses := nas.Slice(Range{From: 5, To: 2})
	require.Len(t, verses, 4)
	assert.Equal(t, 2, verses[0].Number)
	assert.Equal(t, 5, verses[3].Number)

	assert.Len(t, nas.Slice(Range{From: 1, To: 99}), 6)
	assert.Equal(t, Range{1, 6}, nas.FullRange())
}

func TestPlaceholders(t *testing.T) {
	p := Placeholders(3)
	require.Len(t, p, 3)
	for _, v := range p {
		assert.Empty(t, v.Text)
		assert.Zero(t, v.GlossedWords())
	}
	assert.Empty(t, Placeholders(-1))
}

func TestWordGlossed(t *testing.T) {
	assert.True(t, Word{Text: "قُلْ", Translation: "katakanlah"}.Glossed())
	assert.False(t, Word{Text: "قُلْ"}.Glossed())
	assert.False(t, Word{Translation: "x"}.Glossed())
}
