package exercise

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/quran"
)

func surah(t *testing.T, n int) []quran.Verse {
	t.Helper()
	repo, err := quran.Embedded()
	require.NoError(t, err)
	s, err := repo.Surah(n)
	require.NoError(t, err)
	return s.Verses
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestAnswerKeyOnlyForSolvable(t *testing.T) {
	verses := surah(t, 114)
	for _, a := range activity.All() {
		t.Run(string(a), func(t *testing.T) {
			c, ok := Generate(a, verses, verses, true, seeded())
			assert.Equal(t, a.Solvable(), ok)
			if ok {
				assert.True(t, c.AnswerKey)
				assert.True(t, strings.HasPrefix(c.Title, "Kunci Jawaban: "))
			}

			c, ok = Generate(a, verses, verses, false, seeded())
			require.True(t, ok)
			assert.Equal(t, a.Name(), c.Title)
		})
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	verses := surah(t, 114)
	for _, a := range activity.All() {
		first, _ := Generate(a, verses, verses, false, rand.New(rand.NewSource(42)))
		second, _ := Generate(a, verses, verses, false, rand.New(rand.NewSource(42)))
		assert.Equal(t, first, second, a)
	}
}

func TestMCQ(t *testing.T) {
	verses := surah(t, 114)
	c, ok := Generate(activity.MCQMeaning, verses[:2], verses, false, seeded())
	require.True(t, ok)
	require.Len(t, c.Items, 2)

	for i, item := range c.Items {
		assert.Len(t, item.Options, 1+MaxDistractors)
		assert.Contains(t, item.Options, verses[i].Translation)
		assert.Equal(t, verses[i].Translation, item.Answer)

		seen := map[string]bool{}
		for _, o := range item.Options {
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
		}
	}
}

func TestMCQShortSurahHasFewerDistractors(t *testing.T) {
	verses := surah(t, 103)
	c, _ := Generate(activity.MCQMeaning, verses[:1], verses, false, seeded())
	require.Len(t, c.Items, 1)
	assert.Len(t, c.Items[0].Options, 3)
}

func TestMatchBankIsPermutation(t *testing.T) {
	verses := surah(t, 114)
	c, _ := Generate(activity.MatchAyahTranslation, verses, verses, false, seeded())

	want := make([]string, 0, len(verses))
	for _, v := range verses {
		want = append(want, v.Translation)
	}
	assert.ElementsMatch(t, want, c.Bank)
	require.Len(t, c.Items, len(verses))
	for i, item := range c.Items {
		assert.Equal(t, verses[i].Text, item.Arabic)
		assert.Equal(t, verses[i].Translation, item.Answer)
	}
}

func TestBlankWord(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		idx    int
		ok     bool
	}{
		{"too short", []string{"abcd", "efgh"}, 0, false},
		{"first long word", []string{"ab", "abcd", "abcde"}, 1, true},
		{"all short takes middle", []string{"ab", "cd", "ef", "gh"}, 2, true},
		{"arabic runes", []string{"قُلْ", "هُوَ", "اللّٰهُ"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := BlankWord(tt.tokens)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.idx, idx)
			}
		})
	}
}

func TestFillInBlank(t *testing.T) {
	verses := surah(t, 114)
	c, _ := Generate(activity.FillInBlank, verses, verses, false, seeded())
	require.Len(t, c.Items, 6)

	assert.Equal(t, "_______ اَعُوْذُ بِرَبِّ النَّاسِ", c.Items[0].Arabic)
	assert.Equal(t, "قُلْ", c.Items[0].Answer)

	// two-word verses are printed unchanged
	assert.Equal(t, verses[1].Text, c.Items[1].Arabic)
	assert.Empty(t, c.Items[1].Answer)

	var answers []string
	for i, item := range c.Items {
		if item.Answer == "" {
			continue
		}
		answers = append(answers, item.Answer)
		assert.Equal(t, verses[i].Text, strings.Replace(item.Arabic, Blank, item.Answer, 1))
	}
	assert.Len(t, answers, 4)
	assert.ElementsMatch(t, answers, c.Bank)
}

func TestWordMeaning(t *testing.T) {
	verses := surah(t, 114)
	c, _ := Generate(activity.WordMeaning, verses, verses, true, seeded())
	assert.Len(t, c.Items, 20)
	for _, item := range c.Items {
		assert.NotEmpty(t, item.Arabic)
		assert.NotEmpty(t, item.Answer)
	}

	c, _ = Generate(activity.WordMeaning, quran.Placeholders(3), nil, false, seeded())
	assert.Empty(t, c.Items)
	assert.Equal(t, "Tidak ada data kata penting untuk ayat yang dipilih.", c.Instruction)
}

func TestReorderWords(t *testing.T) {
	verses := surah(t, 113)
	c, _ := Generate(activity.ReorderWords, verses, verses, false, seeded())
	require.Len(t, c.Items, len(verses))
	for i, item := range c.Items {
		assert.ElementsMatch(t, verses[i].Tokens(), item.Pieces)
		assert.Equal(t, verses[i].Text, item.Answer)
		assert.Contains(t, item.Prompt, "(Ayat")
	}
}

func TestChunks(t *testing.T) {
	assert.Equal(t, []string{"a b c", "d e"}, Chunks("a b c d e"))
	assert.Equal(t, []string{"a b c"}, Chunks("a b c"))
	assert.Equal(t, []string{"a"}, Chunks("a"))
}

func TestPuzzle(t *testing.T) {
	verses := surah(t, 1)
	c, _ := Generate(activity.PuzzleAyah, verses[6:], verses, false, seeded())
	require.Len(t, c.Items, 1)
	// nine words in three chunks
	assert.Len(t, c.Items[0].Pieces, 3)
	assert.ElementsMatch(t, Chunks(verses[6].Text), c.Items[0].Pieces)
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name string
		text string
		rule Rule
		want string
	}{
		{"qalqalah", "لَمْ يَلِدْ وَلَمْ يُوْلَدْ", RuleQalqalah, "دْ"},
		{"idgham", "وَلَمْ يَكُنْ لَّهٗ كُفُوًا اَحَدٌ", RuleIdgham, "نْ ل"},
		{"mad", "قُلْ هُوَ اللّٰهُ اَحَدٌ", RuleMad, "و"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Highlight(tt.text)

			var b strings.Builder
			found := false
			for _, s := range segs {
				b.WriteString(s.Text)
				if s.Rule == tt.rule && s.Text == tt.want {
					found = true
				}
			}
			assert.Equal(t, tt.text, b.String())
			assert.True(t, found)
		})
	}
}

func TestGenerateAll(t *testing.T) {
	verses := surah(t, 112)
	acts := []activity.Type{activity.Tracing, activity.MCQMeaning, activity.MemorizationCard, activity.PuzzleAyah}

	assert.Len(t, GenerateAll(acts, verses, verses, false, seeded()), 4)

	key := GenerateAll(acts, verses, verses, true, seeded())
	require.Len(t, key, 2)
	assert.Equal(t, activity.MCQMeaning, key[0].Activity)
	assert.Equal(t, activity.PuzzleAyah, key[1].Activity)
}

func TestBookKeepsOrderForAnswerKey(t *testing.T) {
	verses := surah(t, 114)
	acts := []activity.Type{activity.Tracing, activity.MCQMeaning, activity.FillInBlank}
	book := NewBook(acts, verses, verses, seeded())
	require.Len(t, book, 3)

	student := book.Page(acts, false)
	key := book.Page(acts, true)
	require.Len(t, student, 3)
	require.Len(t, key, 2)

	assert.False(t, student[1].AnswerKey)
	assert.True(t, key[0].AnswerKey)
	assert.Equal(t, "Kunci Jawaban: "+activity.MCQMeaning.Name(), key[0].Title)
	assert.Equal(t, student[1].Items, key[0].Items)
	assert.Equal(t, student[2].Bank, key[1].Bank)

	_, ok := AsAnswerKey(student[0])
	assert.False(t, ok)
	again, ok := AsAnswerKey(key[0])
	require.True(t, ok)
	assert.Equal(t, key[0].Title, again.Title)
}

func TestRuleLabel(t *testing.T) {
	assert.Equal(t, "Mad", RuleMad.Label())
	assert.Equal(t, "Qalqalah", RuleQalqalah.Label())
	assert.Empty(t, RuleNone.Label())
}
