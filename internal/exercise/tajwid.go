package exercise

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gompdf/worksheet/internal/quran"
)

// Rule is a simplified tajwid rule used for coloring.
type Rule string

const (
	RuleNone     Rule = ""
	RuleMad      Rule = "mad"
	RuleQalqalah Rule = "qalqalah"
	RuleIdgham   Rule = "idgham"
)

// RuleColors maps each rule to the hex color it is printed in.
var RuleColors = map[Rule]string{
	RuleMad:      "#EF4444",
	RuleQalqalah: "#3B82F6",
	RuleIdgham:   "#10B981",
}

// Legend lists the rules in the order of the printed legend.
var Legend = []Rule{RuleMad, RuleQalqalah, RuleIdgham}

// Label is the legend caption of the rule.
func (r Rule) Label() string {
	if r == RuleNone {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// Segment is a run of verse text with the rule it is colored by.
type Segment struct {
	Text string
	Rule Rule
}

var tajwidRules = []struct {
	rule Rule
	re   *regexp.Regexp
}{
	{RuleMad, regexp.MustCompile(`[اىو]`)},
	{RuleQalqalah, regexp.MustCompile(`[قطبجد]ْ`)},
	{RuleIdgham, regexp.MustCompile(`نْ\s[يرملون]`)},
}

type span struct {
	start, end int
	rule       Rule
}

// Highlight splits text into segments. Rules are applied in Legend order and
// a later rule never recolors text an earlier rule already matched.
func Highlight(text string) []Segment {
	var spans []span
	for _, r := range tajwidRules {
		for _, loc := range r.re.FindAllStringIndex(text, -1) {
			if !overlaps(spans, loc[0], loc[1]) {
				spans = append(spans, span{loc[0], loc[1], r.rule})
			}
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var out []Segment
	pos := 0
	for _, s := range spans {
		if s.start > pos {
			out = append(out, Segment{Text: text[pos:s.start]})
		}
		out = append(out, Segment{Text: text[s.start:s.end], Rule: s.rule})
		pos = s.end
	}
	if pos < len(text) {
		out = append(out, Segment{Text: text[pos:]})
	}
	return out
}

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}

func tajwidItems(verses []quran.Verse) []Item {
	items := verseItems(verses)
	for i := range items {
		items[i].Segments = Highlight(items[i].Arabic)
	}
	return items
}
