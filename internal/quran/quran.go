package quran

import "strings"

// Word is a single word of a verse with its gloss. An empty Translation
// means no gloss is available for the word.
type Word struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// Glossed reports whether the word carries both source text and a gloss.
func (w Word) Glossed() bool {
	return w.Text != "" && w.Translation != ""
}

// Verse is one numbered ayah of a surah.
type Verse struct {
	Number      int    `json:"ayah"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Words       []Word `json:"words"`
}

// GlossedWords counts the words with a non-empty gloss.
func (v Verse) GlossedWords() int {
	n := 0
	for _, w := range v.Words {
		if w.Glossed() {
			n++
		}
	}
	return n
}

// Tokens splits the verse text on single spaces.
func (v Verse) Tokens() []string {
	if v.Text == "" {
		return nil
	}
	return strings.Split(v.Text, " ")
}

// Surah is a chapter with its ordered verses.
type Surah struct {
	Number int     `json:"number"`
	Name   string  `json:"name"`
	Latin  string  `json:"latin"`
	Verses []Verse `json:"ayahs"`
}

// Len returns the number of verses in the surah.
func (s *Surah) Len() int {
	return len(s.Verses)
}

// Slice returns the verses inside rng. The range is normalized against the
// surah length first, so the result is never out of bounds.
func (s *Surah) Slice(rng Range) []Verse {
	if len(s.Verses) == 0 {
		return nil
	}
	rng = NormalizeRange(rng.From, rng.To, len(s.Verses))
	out := make([]Verse, 0, rng.Len())
	for _, v := range s.Verses {
		if v.Number >= rng.From && v.Number <= rng.To {
			out = append(out, v)
		}
	}
	return out
}

// FullRange returns [1, Len()].
func (s *Surah) FullRange() Range {
	return NormalizeRange(1, len(s.Verses), len(s.Verses))
}

// Placeholders builds n verses with no text and no glosses.
func Placeholders(n int) []Verse {
	if n < 0 {
		n = 0
	}
	out := make([]Verse, n)
	for i := range out {
		out[i] = Verse{Number: i + 1}
	}
	return out
}

// SurahOrder is the listing order of the juz amma picker, followed by Al-Fatihah.
var SurahOrder = []int{
	114, 113, 112, 111, 110, 109, 108, 107, 106, 105, 104, 103, 102, 101, 100,
	99, 98, 97, 96, 95, 94, 93, 92, 91, 90, 89, 88, 87, 86, 85, 84, 83, 82,
	81, 80, 79, 78, 1,
}
