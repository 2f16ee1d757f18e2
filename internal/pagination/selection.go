package pagination

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gompdf/worksheet/internal/errors"
)

// SelectionKind is the export page selection mode.
type SelectionKind string

const (
	SelectAll     SelectionKind = "all"
	SelectCurrent SelectionKind = "current"
	SelectCustom  SelectionKind = "custom"
)

// PageSelection picks which student pages go to export. Current is a 0-based
// page index; From and To are 1-based and inclusive.
type PageSelection struct {
	Kind    SelectionKind
	Current int
	From    int
	To      int
}

// ParsePageSelection reads "all", "current:N" (1-based) or "N-M".
func ParsePageSelection(s string) (PageSelection, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == string(SelectAll):
		return PageSelection{Kind: SelectAll}, nil
	case strings.HasPrefix(s, string(SelectCurrent)):
		n := 1
		if rest := strings.TrimPrefix(strings.TrimPrefix(s, string(SelectCurrent)), ":"); rest != "" {
			v, err := strconv.Atoi(rest)
			if err != nil {
				return PageSelection{}, fmt.Errorf("invalid page %q: %w", rest, err)
			}
			n = v
		}
		return PageSelection{Kind: SelectCurrent, Current: n - 1}, nil
	}

	from, to, ok := strings.Cut(s, "-")
	if !ok {
		to = from
	}
	f, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return PageSelection{}, fmt.Errorf("invalid page range %q: %w", s, err)
	}
	t, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return PageSelection{}, fmt.Errorf("invalid page range %q: %w", s, err)
	}
	return PageSelection{Kind: SelectCustom, From: f, To: t}, nil
}

// Validate checks the selection against the number of student pages.
func (s PageSelection) Validate(total int) error {
	switch s.Kind {
	case SelectAll, "":
		return nil
	case SelectCurrent:
		if s.Current < 0 || s.Current >= total {
			return errors.NewInvalidPageRange(s.Current+1, s.Current+1, total)
		}
		return nil
	case SelectCustom:
		if s.From < 1 || s.From > s.To || s.To > total {
			return errors.NewInvalidPageRange(s.From, s.To, total)
		}
		return nil
	}
	return errors.NewInvalidRequest(fmt.Sprintf("unknown page selection %q", s.Kind))
}

// Select returns the chosen student pages followed by all answer key pages.
// The result may be empty; callers exporting it must reject that case.
func (d Document) Select(sel PageSelection) ([]*Page, error) {
	if err := sel.Validate(len(d.Student)); err != nil {
		return nil, err
	}

	var student []*Page
	switch sel.Kind {
	case SelectCurrent:
		student = d.Student[sel.Current : sel.Current+1]
	case SelectCustom:
		student = d.Student[sel.From-1 : sel.To]
	default:
		student = d.Student
	}

	out := make([]*Page, 0, len(student)+len(d.AnswerKey))
	out = append(out, student...)
	return append(out, d.AnswerKey...), nil
}
