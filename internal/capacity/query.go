package capacity

import (
	"math"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/quran"
)

// Unbounded is returned by MaxUnitsForActivities when nothing is selected.
const Unbounded = 99

// WouldActivityOverflow reports whether adding candidate to current pushes the
// page past AvailableContentHeight. The candidate is costed with its effective
// unit count, the same rule EstimatePageHeight applies.
func WouldActivityOverflow(current []activity.Type, candidate activity.Type, verses []quran.Verse) bool {
	est := EstimatePageHeight(current, verses)
	add := activity.EstimateHeight(candidate, activity.EffectiveUnits(candidate, verses))
	return est.TotalHeight+add > AvailableContentHeight
}

// WouldActivityOverflowRaw is WouldActivityOverflow with the candidate costed
// per verse regardless of its layout. It over-estimates word meaning and
// memorization cards and exists for callers that need the older numbers.
func WouldActivityOverflowRaw(current []activity.Type, candidate activity.Type, verses []quran.Verse) bool {
	est := EstimatePageHeight(current, verses)
	add := activity.EstimateHeight(candidate, len(verses))
	return est.TotalHeight+add > AvailableContentHeight
}

// WouldAyahsOverflow reports whether growing the selection from currentCount
// by additionalCount verses fills the page. The verses are costed as carrying
// no word glosses, so word meaning contributes only its fixed cost. The sum
// saturates at math.MaxInt.
func WouldAyahsOverflow(activities []activity.Type, currentCount, additionalCount int) bool {
	a, b := max(currentCount, 0), max(additionalCount, 0)
	n := math.MaxInt
	if b <= math.MaxInt-a {
		n = a + b
	}

	total := 0.0
	for _, t := range activities {
		total += activity.EstimateHeight(t, activity.CountUnits(t, n))
	}
	return total >= AvailableContentHeight
}

// MaxUnitsForActivities inverts the linear cost model: the largest verse count
// n with Σ(base+extra) + n·Σ perUnit ≤ AvailableContentHeight, never below 1.
func MaxUnitsForActivities(activities []activity.Type) int {
	if len(activities) == 0 {
		return Unbounded
	}

	perUnit, base := 0.0, 0.0
	for _, a := range activities {
		perUnit += activity.PerUnitHeight(a)
		base += activity.BaseHeight + activity.ExtraHeight(a)
	}
	if perUnit <= 0 {
		return Unbounded
	}

	n := int(math.Floor((AvailableContentHeight - base) / perUnit))
	return max(n, 1)
}
