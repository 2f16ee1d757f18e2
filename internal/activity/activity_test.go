package activity

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gompdf/worksheet/internal/quran"
)

func TestEstimateHeightTable(t *testing.T) {
	tests := []struct {
		activity Type
		units    int
		want     float64
	}{
		{Tracing, 6, 60 + 540},
		{CopyLines, 6, 60 + 660},
		{TajwidColor, 3, 60 + 165 + 60},
		{MCQMeaning, 2, 60 + 280 + 40},
		{MatchAyahTranslation, 4, 60 + 280 + 40},
		{FillInBlank, 5, 60 + 275 + 80},
		{WordMeaning, 10, 60 + 450},
		{MemorizationCard, 3, 60 + 240},
		{ReorderWords, 1, 60 + 120},
		{PuzzleAyah, 0, 60},
	}

	for _, tt := range tests {
		t.Run(string(tt.activity), func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateHeight(tt.activity, tt.units))
		})
	}
}

func TestEstimateHeightZeroUnits(t *testing.T) {
	for _, a := range All() {
		assert.Equal(t, BaseHeight+ExtraHeight(a), EstimateHeight(a, 0), a)
	}
}

func TestEffectiveUnits(t *testing.T) {
	verses := []quran.Verse{
		{Number: 1, Words: []quran.Word{{Text: "a", Translation: "x"}, {Text: "b", Translation: "y"}, {Text: "c", Translation: ""}}},
		{Number: 2, Words: []quran.Word{{Text: "d", Translation: "z"}}},
		{Number: 3},
	}

	assert.Equal(t, 3, EffectiveUnits(Tracing, verses))
	assert.Equal(t, 2, EffectiveUnits(MemorizationCard, verses))
	// 3 glossed words over two columns
	assert.Equal(t, 2, EffectiveUnits(WordMeaning, verses))

	assert.Equal(t, 0, EffectiveUnits(WordMeaning, nil))
	assert.Equal(t, 0, EffectiveUnits(MemorizationCard, nil))
	assert.Equal(t, 3, EffectiveUnits(MemorizationCard, quran.Placeholders(6)))
	assert.Equal(t, 4, EffectiveUnits(MemorizationCard, quran.Placeholders(7)))
}

func TestCountUnits(t *testing.T) {
	tests := []struct {
		t    Type
		n    int
		want int
	}{
		{Tracing, 6, 6},
		{Tracing, -3, 0},
		{MemorizationCard, 7, 4},
		{MemorizationCard, math.MaxInt, math.MaxInt/2 + 1},
		{WordMeaning, 50, 0},
		{PuzzleAyah, math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CountUnits(tt.t, tt.n), "%s over %d", tt.t, tt.n)
	}

	for _, a := range All() {
		for _, n := range []int{0, 1, 6, 7} {
			assert.Equal(t, EffectiveUnits(a, quran.Placeholders(n)), CountUnits(a, n), "%s over %d", a, n)
		}
	}
}

func TestParse(t *testing.T) {
	for _, a := range All() {
		got, err := Parse(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := Parse(" Copy-Lines ")
	require.NoError(t, err)
	assert.Equal(t, CopyLines, got)

	_, err = Parse("drawing")
	require.Error(t, err)
}

func TestParseList(t *testing.T) {
	sel, err := ParseList("tracing, copy_lines,tracing,,mcq_meaning")
	require.NoError(t, err)
	assert.Equal(t, Selection{Tracing, CopyLines, MCQMeaning}, sel)

	_, err = ParseList("tracing,unknown")
	require.Error(t, err)
}

func TestSolvable(t *testing.T) {
	var got []Type
	for _, a := range All() {
		if a.Solvable() {
			got = append(got, a)
		}
	}
	assert.Equal(t, []Type{MCQMeaning, MatchAyahTranslation, FillInBlank, WordMeaning, ReorderWords, PuzzleAyah}, got)

	sel := Selection{Tracing, PuzzleAyah, MemorizationCard, MCQMeaning}
	assert.Equal(t, Selection{PuzzleAyah, MCQMeaning}, sel.Solvable())
}

func TestNames(t *testing.T) {
	assert.Len(t, All(), 10)
	for _, a := range All() {
		assert.NotEqual(t, string(a), a.Name())
	}
	assert.Equal(t, "Menebalkan Huruf (Tracing)", Tracing.Name())
	assert.Equal(t, "bogus", Type("bogus").Name())
}

func TestSelectionToggle(t *testing.T) {
	sel := Selection{Tracing, CopyLines}

	added := sel.Toggle(MCQMeaning)
	assert.Equal(t, Selection{Tracing, CopyLines, MCQMeaning}, added)
	assert.Equal(t, Selection{Tracing, CopyLines}, sel)

	removed := added.Toggle(Tracing)
	assert.Equal(t, Selection{CopyLines, MCQMeaning}, removed)
}

func TestSelectionNormalize(t *testing.T) {
	sel := Selection{CopyLines, Tracing, CopyLines, Tracing, PuzzleAyah}
	assert.Equal(t, Selection{CopyLines, Tracing, PuzzleAyah}, sel.Normalize())
}

func TestTypeUnmarshal(t *testing.T) {
	var fromJSON []Type
	require.NoError(t, json.Unmarshal([]byte(`["tracing","puzzle_ayah"]`), &fromJSON))
	assert.Equal(t, []Type{Tracing, PuzzleAyah}, fromJSON)
	require.Error(t, json.Unmarshal([]byte(`["nope"]`), &fromJSON))

	var fromYAML []Type
	require.NoError(t, yaml.Unmarshal([]byte("- word_meaning\n- memorization_card\n"), &fromYAML))
	assert.Equal(t, []Type{WordMeaning, MemorizationCard}, fromYAML)
	require.Error(t, yaml.Unmarshal([]byte("- nope\n"), &fromYAML))
}
