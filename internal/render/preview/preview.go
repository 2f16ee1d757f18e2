// Package preview renders worksheet pages as a standalone HTML document for
// checking a worksheet in a browser before exporting it.
package preview

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/exercise"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/theme"
	"github.com/gompdf/worksheet/internal/worksheet"
)

// PageClass marks every page container in the document.
const PageClass = "page-container"

// Page is one page of the preview
type Page struct {
	Unit     *pagination.Page
	Contents []exercise.Content
}

// Sheet is the worksheet to preview
type Sheet struct {
	Config worksheet.Config
	Surah  *quran.Surah
	Pages  []Page
	// Brand precedes the page counter in every footer.
	Brand string
}

const stylesheet = `
body { background: #e5e7eb; margin: 0; padding: 24px; font-family: "%s", sans-serif; }
.page-container { width: 8.27in; height: 11.69in; margin: 0 auto 24px; padding: 0.5in; box-sizing: border-box; border-radius: 16px; overflow: hidden; }
.sheet { height: 100%%; padding: 24px; box-sizing: border-box; border-radius: 8px; display: flex; flex-direction: column; }
header { border-bottom: 4px solid #1f2937; padding-bottom: 16px; margin-bottom: 24px; display: flex; justify-content: space-between; }
header dl { display: grid; grid-template-columns: 7rem 12rem; gap: 8px 0; margin: 0; font-size: 14px; }
header dt { font-weight: bold; }
header dd { margin: 0; border-bottom: 1px solid #6b7280; }
header .title { text-align: right; }
header img { height: 80px; width: 80px; object-fit: contain; }
main { flex-grow: 1; overflow: hidden; }
footer { text-align: center; font-size: 12px; color: #6b7280; padding-top: 8px; }
section { margin-bottom: 32px; }
h2.key { text-align: center; }
h3 { background: #dbeafe; color: #1e3a8a; padding: 6px 12px; border-radius: 8px; }
.arabic { font-family: "%s", serif; font-size: 26px; direction: rtl; text-align: right; }
.trace { color: #d1d5db; font-size: 36px; }
.line { border-bottom: 1px dashed #9ca3af; height: 32px; }
.chip { display: inline-block; border: 1px solid #93c5fd; background: #eff6ff; border-radius: 999px; padding: 2px 12px; margin: 4px; }
.answer { color: #047857; font-weight: bold; }
.card { border: 2px dashed #fbbf24; border-radius: 12px; padding: 12px; margin-bottom: 12px; }
.note { font-size: 12px; color: #6b7280; font-style: italic; }
table { width: 100%%; border-collapse: collapse; }
td { padding: 6px; vertical-align: top; }
`

// Render writes the HTML document for s to w.
func Render(w io.Writer, s Sheet) error {
	if s.Surah == nil {
		return fmt.Errorf("preview has no surah")
	}
	if err := html.Render(w, Build(s)); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	return nil
}

// Build returns the document node of the preview.
func Build(s Sheet) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := el(atom.Html, "lang", "id")
	doc.AppendChild(root)

	head := el(atom.Head)
	head.AppendChild(el(atom.Meta, "charset", "utf-8"))
	title := el(atom.Title)
	title.AppendChild(text(s.Config.Title(s.Surah)))
	head.AppendChild(title)
	style := el(atom.Style)
	style.AppendChild(text(fmt.Sprintf(stylesheet, s.Config.Design.FontLatin, s.Config.Design.FontArabic)))
	head.AppendChild(style)
	root.AppendChild(head)

	body := el(atom.Body)
	root.AppendChild(body)
	for i, p := range s.Pages {
		body.AppendChild(page(s, p, i+1, len(s.Pages)))
	}
	return doc
}

func page(s Sheet, p Page, n, total int) *html.Node {
	d := s.Config.Design
	container := el(atom.Div,
		"class", PageClass,
		"data-page", fmt.Sprint(n),
		"style", "background-color: "+hex(theme.BorderFill(d.Border)),
	)
	sheet := el(atom.Div, "class", "sheet", "style", "background-color: "+hex(theme.BackgroundFill(d.Background)))
	container.AppendChild(sheet)

	sheet.AppendChild(header(s))

	main := el(atom.Main)
	if p.Unit != nil && p.Unit.Kind == pagination.KindAnswerKey {
		h := el(atom.H2, "class", "key")
		h.AppendChild(text(p.Unit.Title))
		main.AppendChild(h)
	}
	for _, c := range p.Contents {
		main.AppendChild(section(c))
	}
	sheet.AppendChild(main)

	footer := el(atom.Footer)
	brand := s.Brand
	if brand != "" {
		brand += " • "
	}
	footer.AppendChild(text(brand + pagination.Footer(n, total)))
	sheet.AppendChild(footer)
	return container
}

func header(s Sheet) *html.Node {
	h := el(atom.Header)

	dl := el(atom.Dl)
	for _, row := range [][2]string{
		{"Nama Sekolah:", s.Config.Header.SchoolName},
		{"Kelas:", s.Config.Header.ClassName},
		{"Nama:", ""},
		{"Nilai:", ""},
	} {
		dt := el(atom.Dt)
		dt.AppendChild(text(row[0]))
		dd := el(atom.Dd)
		dd.AppendChild(text(row[1]))
		dl.AppendChild(dt)
		dl.AppendChild(dd)
	}
	h.AppendChild(dl)

	title := el(atom.Div, "class", "title")
	name := el(atom.H1, "class", "arabic", "dir", "rtl")
	name.AppendChild(text(s.Surah.Name))
	title.AppendChild(name)
	latin := el(atom.P)
	latin.AppendChild(text(fmt.Sprintf("%s: %d-%d", s.Surah.Latin, s.Config.AyahRange.From, s.Config.AyahRange.To)))
	title.AppendChild(latin)
	h.AppendChild(title)

	if s.Config.Header.LogoURL != "" {
		h.AppendChild(el(atom.Img, "src", s.Config.Header.LogoURL, "alt", "Logo Sekolah"))
	}
	return h
}

func section(c exercise.Content) *html.Node {
	sec := el(atom.Section, "data-activity", string(c.Activity))
	h := el(atom.H3)
	h.AppendChild(text(c.Title))
	sec.AppendChild(h)
	if c.Instruction != "" && c.Activity != activity.MemorizationCard {
		p := el(atom.P)
		p.AppendChild(text(c.Instruction))
		sec.AppendChild(p)
	}

	switch c.Activity {
	case activity.Tracing:
		for _, it := range c.Items {
			sec.AppendChild(arabic(it.Arabic, "arabic trace"))
		}
	case activity.CopyLines:
		for _, it := range c.Items {
			sec.AppendChild(arabic(it.Arabic, "arabic"))
			sec.AppendChild(el(atom.Div, "class", "line"))
			sec.AppendChild(el(atom.Div, "class", "line"))
		}
	case activity.TajwidColor:
		sec.AppendChild(legend())
		for _, it := range c.Items {
			p := el(atom.P, "class", "arabic", "dir", "rtl")
			for _, seg := range it.Segments {
				if seg.Rule == exercise.RuleNone {
					p.AppendChild(text(seg.Text))
					continue
				}
				span := el(atom.Span, "style", "color: "+exercise.RuleColors[seg.Rule])
				span.AppendChild(text(seg.Text))
				p.AppendChild(span)
			}
			sec.AppendChild(p)
		}
	case activity.MCQMeaning:
		for _, it := range c.Items {
			sec.AppendChild(arabic(it.Arabic, "arabic"))
			ol := el(atom.Ol, "type", "a")
			for _, o := range it.Options {
				li := el(atom.Li)
				if c.AnswerKey && o == it.Answer {
					li.Attr = append(li.Attr, html.Attribute{Key: "class", Val: "answer"})
				}
				li.AppendChild(text(o))
				ol.AppendChild(li)
			}
			sec.AppendChild(ol)
		}
	case activity.MatchAyahTranslation:
		table := el(atom.Table)
		for i, it := range c.Items {
			tr := el(atom.Tr)
			left := el(atom.Td)
			if c.AnswerKey {
				left.Attr = append(left.Attr, html.Attribute{Key: "class", Val: "answer"})
				left.AppendChild(text(it.Answer))
			} else if i < len(c.Bank) {
				left.AppendChild(text(c.Bank[i]))
			}
			right := el(atom.Td, "class", "arabic", "dir", "rtl")
			right.AppendChild(text(it.Arabic))
			tr.AppendChild(left)
			tr.AppendChild(right)
			table.AppendChild(tr)
		}
		sec.AppendChild(table)
	case activity.FillInBlank:
		sec.AppendChild(chips("Bank Kata:", c.Bank))
		for _, it := range c.Items {
			sec.AppendChild(arabic(it.Arabic, "arabic"))
			if c.AnswerKey && it.Answer != "" {
				sec.AppendChild(answer(it.Answer))
			}
		}
	case activity.WordMeaning:
		table := el(atom.Table)
		for _, it := range c.Items {
			tr := el(atom.Tr)
			word := el(atom.Td, "class", "arabic", "dir", "rtl")
			word.AppendChild(text(it.Arabic))
			meaning := el(atom.Td)
			if c.AnswerKey {
				meaning.Attr = append(meaning.Attr, html.Attribute{Key: "class", Val: "answer"})
				meaning.AppendChild(text(it.Answer))
			} else {
				meaning.AppendChild(el(atom.Div, "class", "line"))
			}
			tr.AppendChild(word)
			tr.AppendChild(meaning)
			table.AppendChild(tr)
		}
		sec.AppendChild(table)
	case activity.MemorizationCard:
		for _, it := range c.Items {
			card := el(atom.Div, "class", "card")
			card.AppendChild(arabic(it.Arabic, "arabic"))
			p := el(atom.P)
			p.AppendChild(text(c.Instruction + " " + strings.Repeat("☐ ", exercise.RepeatBoxes)))
			card.AppendChild(p)
			sec.AppendChild(card)
		}
	case activity.ReorderWords, activity.PuzzleAyah:
		for _, it := range c.Items {
			if it.Prompt != "" {
				p := el(atom.P)
				p.AppendChild(text(it.Prompt))
				sec.AppendChild(p)
			}
			chipsNode := chips("", it.Pieces)
			chipsNode.Attr = append(chipsNode.Attr, html.Attribute{Key: "dir", Val: "rtl"})
			sec.AppendChild(chipsNode)
			if c.AnswerKey {
				sec.AppendChild(answer(it.Answer))
			} else {
				sec.AppendChild(el(atom.Div, "class", "line"))
			}
		}
	}

	if c.Note != "" {
		p := el(atom.P, "class", "note")
		p.AppendChild(text(c.Note))
		sec.AppendChild(p)
	}
	return sec
}

func legend() *html.Node {
	p := el(atom.P)
	for _, rule := range exercise.Legend {
		span := el(atom.Span, "class", "chip", "style", "color: "+exercise.RuleColors[rule])
		span.AppendChild(text(rule.Label()))
		p.AppendChild(span)
	}
	return p
}

func arabic(s, class string) *html.Node {
	p := el(atom.P, "class", class, "dir", "rtl")
	p.AppendChild(text(s))
	return p
}

func answer(s string) *html.Node {
	p := el(atom.P, "class", "answer arabic", "dir", "rtl")
	p.AppendChild(text(s))
	return p
}

func chips(label string, words []string) *html.Node {
	div := el(atom.Div)
	if label != "" {
		b := el(atom.B)
		b.AppendChild(text(label))
		div.AppendChild(b)
	}
	for _, w := range words {
		span := el(atom.Span, "class", "chip")
		span.AppendChild(text(w))
		div.AppendChild(span)
	}
	return div
}

// el creates an element; attrs are key, value pairs.
func el(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
