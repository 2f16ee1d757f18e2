package pagination

import (
	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/quran"
)

// Options represents options for the pagination engine
type Options struct {
	Mode             Mode
	IncludeAnswerKey bool
	PageSize         PageSize
	Chrome           Chrome
}

// Engine handles the pagination process
type Engine struct {
	options Options
}

// NewEngine creates a new pagination engine
func NewEngine() *Engine {
	return &Engine{
		options: Options{
			Mode:             ModeSingleActivityPerPage,
			IncludeAnswerKey: true,
			PageSize:         PageSizeA4Px,
			Chrome:           DefaultChrome,
		},
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Options returns the engine options.
func (e *Engine) Options() Options {
	return e.options
}

// ContentHeight is the space left for activity blocks on one page.
func (e *Engine) ContentHeight() float64 {
	return e.options.Chrome.ContentHeight(e.options.PageSize)
}

// Paginate groups the activities into student pages followed by the answer key pages.
func (e *Engine) Paginate(activities []activity.Type, rng quran.Range) Document {
	return Document{
		Student:   Paginate(activities, rng, e.options.Mode),
		AnswerKey: AnswerKeyPages(activities, rng, e.options.IncludeAnswerKey),
	}
}
