// Package exercise builds the printable content of each activity from a verse
// selection. Every random choice goes through the *rand.Rand passed in, so a
// fixed seed reproduces the same worksheet.
package exercise

import (
	"fmt"
	"math/rand"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/quran"
)

// Blank replaces the removed word in a fill-in-the-blank verse.
const Blank = "_______"

// MaxDistractors is the number of wrong options offered per MCQ question.
const MaxDistractors = 3

// RepeatBoxes is the number of tick boxes on a memorization card.
const RepeatBoxes = 5

const answerKeyPrefix = "Kunci Jawaban: "

// Item is one row of an activity. Which fields are set depends on the activity.
type Item struct {
	// Number is the verse number the item belongs to. Zero for word items.
	Number int
	// Arabic is the verse text as shown, with a blank for fill-in-the-blank.
	Arabic      string
	Translation string
	// Prompt is a per-item instruction line.
	Prompt string
	// Options are the MCQ choices in display order.
	Options []string
	// Pieces are the shuffled words or chunks to be reordered.
	Pieces []string
	// Segments is the verse text split by tajwid rule.
	Segments []Segment
	// Answer is the expected answer: the MCQ translation, the removed word,
	// the word gloss or the full verse for reorder and puzzle.
	Answer string
}

// Content is the rendered form of one activity.
type Content struct {
	Activity    activity.Type
	Title       string
	Instruction string
	Items       []Item
	// Bank holds shared choices: the fill-in-the-blank word bank or the
	// shuffled translations of the matching column.
	Bank      []string
	Note      string
	AnswerKey bool
}

// Empty reports whether the content has nothing to print besides its heading.
func (c Content) Empty() bool {
	return len(c.Items) == 0 && len(c.Bank) == 0
}

// Generate builds the content of t for verses. all is the whole surah and is
// used for MCQ distractors. When answerKey is set, the answer-bearing variant
// is produced and ok is false for activities that have no answer key.
func Generate(t activity.Type, verses, all []quran.Verse, answerKey bool, rng *rand.Rand) (Content, bool) {
	if answerKey && !t.Solvable() {
		return Content{}, false
	}

	c := Content{
		Activity:  t,
		Title:     t.Name(),
		AnswerKey: answerKey,
	}
	if answerKey {
		c.Title = answerKeyPrefix + c.Title
	}

	switch t {
	case activity.Tracing, activity.CopyLines:
		c.Items = verseItems(verses)
	case activity.TajwidColor:
		c.Items = tajwidItems(verses)
		c.Note = "Catatan: Pewarnaan tajwid ini adalah penyederhanaan untuk tujuan belajar."
	case activity.MCQMeaning:
		c.Instruction = "Pilihlah terjemahan yang paling tepat untuk setiap ayat berikut!"
		c.Items = mcqItems(verses, all, rng)
	case activity.MatchAyahTranslation:
		c.Instruction = "Pasangkan ayat di sebelah kanan dengan terjemahan yang benar di sebelah kiri dengan menarik garis!"
		c.Items, c.Bank = matchItems(verses, rng)
	case activity.FillInBlank:
		c.Instruction = "Isilah bagian yang kosong pada ayat-ayat berikut dengan kata yang tepat dari Bank Kata!"
		c.Items, c.Bank = blankItems(verses, rng)
	case activity.WordMeaning:
		c.Items = wordItems(verses)
		if len(c.Items) == 0 {
			c.Instruction = "Tidak ada data kata penting untuk ayat yang dipilih."
		} else {
			c.Instruction = "Tulislah arti dari kata-kata berikut!"
		}
	case activity.MemorizationCard:
		c.Instruction = "Ulangi:"
		c.Items = verseItems(verses)
	case activity.ReorderWords:
		c.Items = reorderItems(verses, rng)
	case activity.PuzzleAyah:
		c.Items = puzzleItems(verses, rng)
	default:
		return Content{}, false
	}
	return c, true
}

// GenerateAll builds the content of every activity on a page in order,
// skipping the ones with no variant for the requested mode.
func GenerateAll(acts []activity.Type, verses, all []quran.Verse, answerKey bool, rng *rand.Rand) []Content {
	out := make([]Content, 0, len(acts))
	for _, t := range acts {
		if c, ok := Generate(t, verses, all, answerKey, rng); ok {
			out = append(out, c)
		}
	}
	return out
}

func verseItems(verses []quran.Verse) []Item {
	items := make([]Item, 0, len(verses))
	for _, v := range verses {
		items = append(items, Item{Number: v.Number, Arabic: v.Text, Translation: v.Translation})
	}
	return items
}

func mcqItems(verses, all []quran.Verse, rng *rand.Rand) []Item {
	items := make([]Item, 0, len(verses))
	for _, v := range verses {
		var pool []string
		for _, o := range all {
			if o.Translation != v.Translation {
				pool = append(pool, o.Translation)
			}
		}
		shuffle(rng, pool)
		if len(pool) > MaxDistractors {
			pool = pool[:MaxDistractors]
		}

		options := append([]string{v.Translation}, pool...)
		shuffle(rng, options)
		items = append(items, Item{
			Number:      v.Number,
			Arabic:      v.Text,
			Translation: v.Translation,
			Options:     options,
			Answer:      v.Translation,
		})
	}
	return items
}

func matchItems(verses []quran.Verse, rng *rand.Rand) ([]Item, []string) {
	items := verseItems(verses)
	bank := make([]string, 0, len(verses))
	for _, v := range verses {
		bank = append(bank, v.Translation)
	}
	shuffle(rng, bank)
	for i := range items {
		items[i].Answer = items[i].Translation
	}
	return items, bank
}

func wordItems(verses []quran.Verse) []Item {
	var items []Item
	for _, v := range verses {
		for _, w := range v.Words {
			if w.Glossed() {
				items = append(items, Item{Arabic: w.Text, Answer: w.Translation})
			}
		}
	}
	return items
}

func reorderItems(verses []quran.Verse, rng *rand.Rand) []Item {
	items := make([]Item, 0, len(verses))
	for _, v := range verses {
		pieces := v.Tokens()
		shuffle(rng, pieces)
		items = append(items, Item{
			Number: v.Number,
			Prompt: fmt.Sprintf("Susunlah kata-kata berikut menjadi urutan yang benar (Ayat %d):", v.Number),
			Pieces: pieces,
			Answer: v.Text,
		})
	}
	return items
}

func shuffle[T any](rng *rand.Rand, s []T) {
	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// AsAnswerKey returns the answer key variant of c, keeping every shuffled
// order so the key matches the student page. ok is false for activities
// without an answer key.
func AsAnswerKey(c Content) (Content, bool) {
	if !c.Activity.Solvable() {
		return Content{}, false
	}
	if c.AnswerKey {
		return c, true
	}
	c.AnswerKey = true
	c.Title = answerKeyPrefix + c.Title
	return c, true
}

// Book holds the generated content of every activity of one worksheet, so
// that student and answer key pages print the same exercises.
type Book map[activity.Type]Content

// NewBook generates each activity once, in order.
func NewBook(acts []activity.Type, verses, all []quran.Verse, rng *rand.Rand) Book {
	b := make(Book, len(acts))
	for _, t := range acts {
		if _, ok := b[t]; ok {
			continue
		}
		if c, ok := Generate(t, verses, all, false, rng); ok {
			b[t] = c
		}
	}
	return b
}

// Page returns the contents of acts in order, as answer keys when answerKey
// is set. Activities missing from the book or without an answer key are skipped.
func (b Book) Page(acts []activity.Type, answerKey bool) []Content {
	out := make([]Content, 0, len(acts))
	for _, t := range acts {
		c, ok := b[t]
		if !ok {
			continue
		}
		if answerKey {
			if c, ok = AsAnswerKey(c); !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
