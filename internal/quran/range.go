package quran

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive 1-based verse range.
type Range struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Len returns the number of verses covered by the range.
func (r Range) Len() int {
	if r.To < r.From {
		return 0
	}
	return r.To - r.From + 1
}

// String formats the range as "from-to".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// NormalizeRange clamps both ends into [1, max] and swaps them when reversed.
func NormalizeRange(from, to, max int) Range {
	if max < 1 {
		max = 1
	}
	from = clamp(from, 1, max)
	to = clamp(to, 1, max)
	if from > to {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// ParseRange normalizes user-typed bounds. An unparsable from defaults to 1
// and an unparsable to defaults to max.
func ParseRange(from, to string, max int) Range {
	f, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		f = 1
	}
	t, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		t = max
	}
	return NormalizeRange(f, t, max)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
