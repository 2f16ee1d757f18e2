package activity

import "github.com/gompdf/worksheet/internal/quran"

// BaseHeight is the title and margin allowance every activity block pays.
const BaseHeight = 60.0

var perUnitHeight = map[Type]float64{
	Tracing:              90,
	CopyLines:            110,
	TajwidColor:          55,
	MCQMeaning:           140,
	MatchAyahTranslation: 70,
	FillInBlank:          55,
	WordMeaning:          45,
	MemorizationCard:     80,
	ReorderWords:         120,
	PuzzleAyah:           120,
}

// Fixed sections such as the tajwid legend or the fill-in word bank.
var extraHeight = map[Type]float64{
	TajwidColor:          60,
	FillInBlank:          80,
	MCQMeaning:           40,
	MatchAyahTranslation: 40,
}

// PerUnitHeight is the height added for each effective unit.
func PerUnitHeight(t Type) float64 {
	return perUnitHeight[t]
}

// ExtraHeight is the fixed per-activity extra section height, zero when absent.
func ExtraHeight(t Type) float64 {
	return extraHeight[t]
}

// EstimateHeight returns the estimated rendered height of one activity block
// holding units effective units.
func EstimateHeight(t Type, units int) float64 {
	return BaseHeight + perUnitHeight[t]*float64(units) + extraHeight[t]
}

// EffectiveUnits is the quantity the cost of t scales with over verses.
// Word meaning lays glossed words out in two columns and memorization cards
// sit two per row; every other activity costs per verse.
func EffectiveUnits(t Type, verses []quran.Verse) int {
	switch t {
	case WordMeaning:
		words := 0
		for _, v := range verses {
			words += v.GlossedWords()
		}
		return ceilHalf(words)
	case MemorizationCard:
		return ceilHalf(len(verses))
	default:
		return len(verses)
	}
}

// CountUnits is EffectiveUnits over n verses that carry no word glosses.
func CountUnits(t Type, n int) int {
	n = max(n, 0)
	switch t {
	case WordMeaning:
		return 0
	case MemorizationCard:
		return ceilHalf(n)
	default:
		return n
	}
}

func ceilHalf(n int) int {
	return n/2 + n%2
}
