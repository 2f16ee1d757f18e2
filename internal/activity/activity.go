package activity

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type identifies one of the worksheet exercise kinds.
type Type string

const (
	Tracing              Type = "tracing"
	CopyLines            Type = "copy_lines"
	TajwidColor          Type = "tajwid_color"
	MCQMeaning           Type = "mcq_meaning"
	MatchAyahTranslation Type = "match_ayah_translation"
	FillInBlank          Type = "fill_in_blank"
	WordMeaning          Type = "word_meaning"
	MemorizationCard     Type = "memorization_card"
	ReorderWords         Type = "reorder_words"
	PuzzleAyah           Type = "puzzle_ayah"
)

var all = []Type{
	Tracing,
	CopyLines,
	TajwidColor,
	MCQMeaning,
	MatchAyahTranslation,
	FillInBlank,
	WordMeaning,
	MemorizationCard,
	ReorderWords,
	PuzzleAyah,
}

var names = map[Type]string{
	Tracing:              "Menebalkan Huruf (Tracing)",
	CopyLines:            "Menyalin Ayat (Copy Lines)",
	TajwidColor:          "Mewarnai Tajwid (Tajwid Coloring)",
	MCQMeaning:           "Pilihan Ganda Arti Ayat (MCQ)",
	MatchAyahTranslation: "Mencocokkan Ayat & Terjemahan",
	FillInBlank:          "Isi Bagian Kosong (Fill in the Blank)",
	WordMeaning:          "Arti Kata (Word Meaning)",
	MemorizationCard:     "Kartu Hafalan (Memorization Card)",
	ReorderWords:         "Menyusun Kata (Reorder Words)",
	PuzzleAyah:           "Menyusun Potongan Ayat (Ayah Puzzle)",
}

var solvable = map[Type]bool{
	MCQMeaning:           true,
	MatchAyahTranslation: true,
	FillInBlank:          true,
	WordMeaning:          true,
	ReorderWords:         true,
	PuzzleAyah:           true,
}

// All returns every activity type in canonical order.
func All() []Type {
	return append([]Type(nil), all...)
}

// Parse resolves a wire name such as "copy_lines". Dashes are accepted in
// place of underscores.
func Parse(s string) (Type, error) {
	t := Type(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !t.Valid() {
		return "", fmt.Errorf("unknown activity %q", s)
	}
	return t, nil
}

// ParseList parses a comma-separated list of activities into a deduplicated selection.
func ParseList(s string) (Selection, error) {
	var sel Selection
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := Parse(part)
		if err != nil {
			return nil, err
		}
		if !sel.Contains(t) {
			sel = append(sel, t)
		}
	}
	return sel, nil
}

// Valid reports whether t is one of the ten known types.
func (t Type) Valid() bool {
	_, ok := names[t]
	return ok
}

func (t Type) String() string {
	return string(t)
}

// Name returns the display name shown as the activity heading.
func (t Type) Name() string {
	if n, ok := names[t]; ok {
		return n
	}
	return string(t)
}

// Solvable reports whether an answer key exists for t.
func (t Type) Solvable() bool {
	return solvable[t]
}

// UnmarshalJSON rejects unknown activity names.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalYAML rejects unknown activity names.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Selection is an ordered set of activities as chosen by the user.
type Selection []Type

// Contains reports whether t is selected.
func (s Selection) Contains(t Type) bool {
	for _, x := range s {
		if x == t {
			return true
		}
	}
	return false
}

// Toggle returns a new selection with t removed if present, or appended otherwise.
func (s Selection) Toggle(t Type) Selection {
	out := make(Selection, 0, len(s)+1)
	found := false
	for _, x := range s {
		if x == t {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, t)
	}
	return out
}

// Normalize drops duplicates, keeping the first occurrence.
func (s Selection) Normalize() Selection {
	out := make(Selection, 0, len(s))
	for _, t := range s {
		if !out.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Solvable returns the selected activities that have an answer key, in order.
func (s Selection) Solvable() Selection {
	var out Selection
	for _, t := range s {
		if t.Solvable() {
			out = append(out, t)
		}
	}
	return out
}

// Strings returns the wire names of the selection.
func (s Selection) Strings() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = string(t)
	}
	return out
}
