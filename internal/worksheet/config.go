// Package worksheet holds the worksheet configuration value. A Config is never
// mutated in place: every With method returns an updated copy.
package worksheet

import (
	"fmt"
	"strings"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
)

// Header is printed at the top of every page.
type Header struct {
	SchoolName string `json:"schoolName" yaml:"schoolName"`
	ClassName  string `json:"className" yaml:"className"`
	// LogoURL is a file path, http(s) URL or data: URL. Empty means no logo.
	LogoURL string `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty"`
}

// Output controls what the export produces.
type Output struct {
	Format           Format          `json:"format" yaml:"format"`
	IncludeAnswerKey bool            `json:"includeAnswerKey" yaml:"includeAnswerKey"`
	PaginationMode   pagination.Mode `json:"paginationMode" yaml:"paginationMode"`
}

// Config is the complete description of one worksheet.
type Config struct {
	Header      Header             `json:"header" yaml:"header"`
	SurahNumber int                `json:"surahNumber" yaml:"surahNumber"`
	AyahRange   quran.Range        `json:"ayahRange" yaml:"ayahRange"`
	Activities  activity.Selection `json:"activities" yaml:"activities"`
	Design      Design             `json:"design" yaml:"design"`
	Output      Output             `json:"output" yaml:"output"`
}

// Default returns the configuration a new worksheet starts from.
func Default() Config {
	return Config{
		Header: Header{
			SchoolName: "SD Contoh Nusantara",
			ClassName:  "3A",
		},
		SurahNumber: 114,
		AyahRange:   quran.Range{From: 1, To: 6},
		Activities:  activity.Selection{activity.Tracing, activity.CopyLines},
		Design: Design{
			FontLatin:  FontComicNeue,
			FontArabic: FontArabic,
			Border:     BorderStars,
			Background: BackgroundNone,
		},
		Output: Output{
			Format:           FormatPDF,
			IncludeAnswerKey: true,
			PaginationMode:   pagination.ModeSingleActivityPerPage,
		},
	}
}

// clone detaches the activity slice so updates never alias the receiver.
func (c Config) clone() Config {
	c.Activities = append(activity.Selection(nil), c.Activities...)
	return c
}

// WithHeader replaces the header.
func (c Config) WithHeader(h Header) Config {
	c = c.clone()
	c.Header = h
	return c
}

// WithSchoolName sets the school name.
func (c Config) WithSchoolName(name string) Config {
	c = c.clone()
	c.Header.SchoolName = name
	return c
}

// WithClassName sets the class name.
func (c Config) WithClassName(name string) Config {
	c = c.clone()
	c.Header.ClassName = name
	return c
}

// WithLogo sets the logo reference.
func (c Config) WithLogo(ref string) Config {
	c = c.clone()
	c.Header.LogoURL = ref
	return c
}

// WithSurah switches to another surah and resets the range to all of its verses.
func (c Config) WithSurah(s *quran.Surah) Config {
	c = c.clone()
	c.SurahNumber = s.Number
	c.AyahRange = s.FullRange()
	return c
}

// WithRange sets the verse range, normalized against the surah length.
func (c Config) WithRange(from, to, max int) Config {
	c = c.clone()
	c.AyahRange = quran.NormalizeRange(from, to, max)
	return c
}

// WithActivities replaces the activity selection, dropping duplicates.
func (c Config) WithActivities(acts ...activity.Type) Config {
	c.Activities = activity.Selection(acts).Normalize()
	return c
}

// ToggleActivity adds or removes one activity.
func (c Config) ToggleActivity(a activity.Type) Config {
	c.Activities = c.Activities.Toggle(a)
	return c
}

// WithDesign replaces the design.
func (c Config) WithDesign(d Design) Config {
	c = c.clone()
	c.Design = d
	return c
}

// WithBorder sets the border style.
func (c Config) WithBorder(b Border) Config {
	c = c.clone()
	c.Design.Border = b
	return c
}

// WithBackground sets the background style.
func (c Config) WithBackground(b Background) Config {
	c = c.clone()
	c.Design.Background = b
	return c
}

// WithFont sets the Latin font.
func (c Config) WithFont(f Font) Config {
	c = c.clone()
	c.Design.FontLatin = f
	return c
}

// WithFormat sets the export format.
func (c Config) WithFormat(f Format) Config {
	c = c.clone()
	c.Output.Format = f
	return c
}

// WithAnswerKey toggles answer key generation.
func (c Config) WithAnswerKey(include bool) Config {
	c = c.clone()
	c.Output.IncludeAnswerKey = include
	return c
}

// WithPaginationMode sets the pagination mode.
func (c Config) WithPaginationMode(m pagination.Mode) Config {
	c = c.clone()
	c.Output.PaginationMode = m
	return c
}

// Normalize resolves the surah against repo, clamps the verse range and
// rewrites the output format and pagination mode to their canonical names.
func (c Config) Normalize(repo quran.Repository) (Config, *quran.Surah, error) {
	s, err := repo.Surah(c.SurahNumber)
	if err != nil {
		return c, nil, err
	}
	c = c.WithRange(c.AyahRange.From, c.AyahRange.To, s.Len())
	c.Activities = c.Activities.Normalize()
	c.Output = c.Output.canonical()
	return c, s, nil
}

// canonical returns o with Format and PaginationMode replaced by the values
// ParseFormat and ParseMode resolve them to. Unknown values are left as is.
func (o Output) canonical() Output {
	if f, err := ParseFormat(string(o.Format)); err == nil {
		o.Format = f
	}
	if m, err := pagination.ParseMode(string(o.PaginationMode)); err == nil {
		o.PaginationMode = m
	}
	return o
}

// Validate checks every enumerated field. The verse range is not checked here
// since Normalize repairs it.
func (c Config) Validate() error {
	if c.SurahNumber < 1 || c.SurahNumber > 114 {
		return errors.NewInvalidConfig("surahNumber", fmt.Sprintf("%d is not a surah", c.SurahNumber))
	}
	for _, a := range c.Activities {
		if !a.Valid() {
			return errors.NewInvalidConfig("activities", fmt.Sprintf("unknown activity %q", a))
		}
	}
	if err := c.Design.validate(); err != nil {
		return errors.NewInvalidConfig("design", err.Error())
	}
	if _, err := ParseFormat(string(c.Output.Format)); err != nil {
		return errors.NewInvalidConfig("output.format", err.Error())
	}
	if _, err := pagination.ParseMode(string(c.Output.PaginationMode)); err != nil {
		return errors.NewInvalidConfig("output.paginationMode", err.Error())
	}
	return nil
}

// Title is the worksheet title used for document metadata.
func (c Config) Title(s *quran.Surah) string {
	return fmt.Sprintf("Lembar Kerja %s %s", s.Latin, c.AyahRange)
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
