package pagination

import (
	"fmt"
	"strings"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/quran"
)

// Mode selects how activities are grouped into pages.
type Mode string

const (
	// ModeSingleActivityPerPage puts each activity on its own page.
	ModeSingleActivityPerPage Mode = "single_activity_per_page"
	// ModeCompact puts all activities on one page and relies on the capacity
	// estimate to warn about overflow. Overflowing content is not split.
	ModeCompact Mode = "compact"
)

// ParseMode resolves a mode name. "single" and "compact" are accepted as short forms.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeSingleActivityPerPage), "single", "single-activity-per-page":
		return ModeSingleActivityPerPage, nil
	case string(ModeCompact):
		return ModeCompact, nil
	}
	return "", fmt.Errorf("unknown pagination mode %q", s)
}

// AnswerKeyTitle heads the answer key page.
const AnswerKeyTitle = "KUNCI JAWABAN"

// Kind tells student pages from answer key pages.
type Kind int

const (
	KindStudent Kind = iota
	KindAnswerKey
)

func (k Kind) String() string {
	if k == KindAnswerKey {
		return "answer_key"
	}
	return "student"
}

// Page is one page unit: the activities rendered on it and the verse range
// every activity on it covers.
type Page struct {
	Kind       Kind
	Title      string
	Activities activity.Selection
	Range      quran.Range
}

// Paginate groups activities into student pages according to mode. Mode
// spellings accepted by ParseMode are honored; an unknown mode falls back to
// one activity per page.
func Paginate(activities []activity.Type, rng quran.Range, mode Mode) []*Page {
	if len(activities) == 0 {
		return []*Page{}
	}
	if m, err := ParseMode(string(mode)); err == nil {
		mode = m
	}

	switch mode {
	case ModeCompact:
		return []*Page{{
			Kind:       KindStudent,
			Activities: append(activity.Selection(nil), activities...),
			Range:      rng,
		}}
	case ModeSingleActivityPerPage:
		return singlePages(activities, rng)
	default:
		return singlePages(activities, rng)
	}
}

func singlePages(activities []activity.Type, rng quran.Range) []*Page {
	pages := make([]*Page, 0, len(activities))
	for _, a := range activities {
		pages = append(pages, &Page{
			Kind:       KindStudent,
			Activities: activity.Selection{a},
			Range:      rng,
		})
	}
	return pages
}

// AnswerKeyPages returns the single answer key page holding every solvable
// activity, or no page when include is false or nothing is solvable.
func AnswerKeyPages(activities []activity.Type, rng quran.Range, include bool) []*Page {
	if !include {
		return []*Page{}
	}
	solvable := activity.Selection(activities).Solvable()
	if len(solvable) == 0 {
		return []*Page{}
	}
	return []*Page{{
		Kind:       KindAnswerKey,
		Title:      AnswerKeyTitle,
		Activities: solvable,
		Range:      rng,
	}}
}

// Document is the full page list of a worksheet.
type Document struct {
	Student   []*Page
	AnswerKey []*Page
}

// Pages returns student pages followed by answer key pages.
func (d Document) Pages() []*Page {
	out := make([]*Page, 0, d.Len())
	out = append(out, d.Student...)
	return append(out, d.AnswerKey...)
}

// Len returns the total page count.
func (d Document) Len() int {
	return len(d.Student) + len(d.AnswerKey)
}
