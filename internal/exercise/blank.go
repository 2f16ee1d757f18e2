package exercise

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/gompdf/worksheet/internal/quran"
)

// minBlankWords is the shortest verse, in words, that gets a blank.
const minBlankWords = 3

// PuzzleChunk is the number of words per puzzle piece.
const PuzzleChunk = 3

// BlankWord picks the word to remove from tokens: the first word longer than
// three runes, or the middle word when every word is short. ok is false for
// verses of fewer than three words.
func BlankWord(tokens []string) (idx int, ok bool) {
	if len(tokens) < minBlankWords {
		return 0, false
	}
	for i, w := range tokens {
		if utf8.RuneCountInString(w) > 3 {
			return i, true
		}
	}
	return len(tokens) / 2, true
}

func blankItems(verses []quran.Verse, rng *rand.Rand) ([]Item, []string) {
	items := make([]Item, 0, len(verses))
	var bank []string
	for _, v := range verses {
		tokens := v.Tokens()
		idx, ok := BlankWord(tokens)
		if !ok {
			items = append(items, Item{Number: v.Number, Arabic: v.Text})
			continue
		}

		removed := tokens[idx]
		tokens[idx] = Blank
		bank = append(bank, removed)
		items = append(items, Item{
			Number: v.Number,
			Arabic: strings.Join(tokens, " "),
			Answer: removed,
		})
	}
	shuffle(rng, bank)
	return items, bank
}

// Chunks splits text into groups of PuzzleChunk words.
func Chunks(text string) []string {
	words := strings.Split(text, " ")
	out := make([]string, 0, (len(words)+PuzzleChunk-1)/PuzzleChunk)
	for i := 0; i < len(words); i += PuzzleChunk {
		end := min(i+PuzzleChunk, len(words))
		out = append(out, strings.Join(words[i:end], " "))
	}
	return out
}

func puzzleItems(verses []quran.Verse, rng *rand.Rand) []Item {
	items := make([]Item, 0, len(verses))
	for _, v := range verses {
		pieces := Chunks(v.Text)
		shuffle(rng, pieces)
		items = append(items, Item{
			Number: v.Number,
			Prompt: fmt.Sprintf("Susunlah potongan ayat %d berikut menjadi benar dengan memberi nomor:", v.Number),
			Pieces: pieces,
			Answer: v.Text,
		})
	}
	return items
}
