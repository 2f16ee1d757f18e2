// Package capacity estimates how much of a worksheet page a set of
// activities occupies and answers overflow questions about it.
package capacity

import (
	"fmt"
	"math"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
)

// AvailableContentHeight is the page height left for activities once the
// border padding, header and footer are taken out.
const AvailableContentHeight = pagination.A4HeightPx - pagination.BorderPadding -
	pagination.HeaderHeight - pagination.FooterHeight

// NearlyFullPercentage is the lower bound of the nearly-full band.
const NearlyFullPercentage = 85.0

// ActivityHeight is one entry of the estimate breakdown.
type ActivityHeight struct {
	Activity activity.Type `json:"activity"`
	Height   float64       `json:"height"`
}

// Estimation is the projected fill of a single page.
type Estimation struct {
	TotalHeight     float64          `json:"totalHeight"`
	AvailableHeight float64          `json:"availableHeight"`
	UsedPercentage  float64          `json:"usedPercentage"`
	IsFull          bool             `json:"isFull"`
	IsNearlyFull    bool             `json:"isNearlyFull"`
	RemainingHeight float64          `json:"remainingHeight"`
	Breakdown       []ActivityHeight `json:"activityBreakdown"`
}

// EstimatePageHeight sums the estimated height of every activity over verses.
// UsedPercentage is capped at 100 for display while IsFull and IsNearlyFull
// are classified from the uncapped ratio.
func EstimatePageHeight(activities []activity.Type, verses []quran.Verse) Estimation {
	breakdown := make([]ActivityHeight, 0, len(activities))
	total := 0.0
	for _, a := range activities {
		h := activity.EstimateHeight(a, activity.EffectiveUnits(a, verses))
		breakdown = append(breakdown, ActivityHeight{Activity: a, Height: h})
		total += h
	}

	used := total / AvailableContentHeight * 100
	full := total >= AvailableContentHeight

	return Estimation{
		TotalHeight:     total,
		AvailableHeight: AvailableContentHeight,
		UsedPercentage:  math.Min(used, 100),
		IsFull:          full,
		IsNearlyFull:    !full && used >= NearlyFullPercentage && used < 100,
		RemainingHeight: math.Max(0, AvailableContentHeight-total),
		Breakdown:       breakdown,
	}
}

// WarningMessage returns the capacity warning shown above a compact page,
// and false when the page still has comfortable room.
func WarningMessage(e Estimation) (string, bool) {
	if e.IsFull {
		return "Halaman sudah penuh! Tidak bisa menambah aktivitas atau ayat lagi.", true
	}
	if e.IsNearlyFull {
		return fmt.Sprintf("Halaman hampir penuh (%d%%). Hati-hati saat menambah konten.", int(math.Round(e.UsedPercentage))), true
	}
	return "", false
}

// State names the capacity band of an estimate.
type State string

const (
	StateFits       State = "fits"
	StateNearlyFull State = "nearly_full"
	StateFull       State = "full"
)

// Meter is the compact summary used by live capacity indicators.
type Meter struct {
	Percentage int     `json:"percentage"`
	State      State   `json:"state"`
	Remaining  float64 `json:"remaining"`
	Warning    string  `json:"warning,omitempty"`
}

// NewMeter summarizes an estimate.
func NewMeter(e Estimation) Meter {
	m := Meter{
		Percentage: int(math.Round(e.UsedPercentage)),
		State:      StateFits,
		Remaining:  e.RemainingHeight,
	}
	switch {
	case e.IsFull:
		m.State = StateFull
	case e.IsNearlyFull:
		m.State = StateNearlyFull
	}
	m.Warning, _ = WarningMessage(e)
	return m
}
