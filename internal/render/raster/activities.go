package raster

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/exercise"
	"github.com/gompdf/worksheet/internal/layout"
	"github.com/gompdf/worksheet/internal/theme"
)

const (
	headingHeight = 36
	itemGap       = 16
	chipPad       = 10
)

// drawActivity draws c with its top-left corner at x, y inside width w and
// returns the height used.
func (r *Renderer) drawActivity(pn *pen, c exercise.Content, x, y, w float64) float64 {
	top := y
	y += r.drawHeading(pn, c, x, y, w)

	body := pn.shaper(r.fonts.Regular, sizeBody)
	if c.Instruction != "" && c.Activity != activity.MemorizationCard {
		y += pn.paragraph(body, c.Instruction, x+8, y, w-16, theme.Ink) + 8
	}

	x, w = x+8, w-16
	switch c.Activity {
	case activity.Tracing:
		y = r.drawTracing(pn, c, x, y, w)
	case activity.CopyLines:
		y = r.drawCopyLines(pn, c, x, y, w)
	case activity.TajwidColor:
		y = r.drawTajwid(pn, c, x, y, w)
	case activity.MCQMeaning:
		y = r.drawMCQ(pn, c, x, y, w)
	case activity.MatchAyahTranslation:
		y = r.drawMatch(pn, c, x, y, w)
	case activity.FillInBlank:
		y = r.drawFillInBlank(pn, c, x, y, w)
	case activity.WordMeaning:
		y = r.drawWordMeaning(pn, c, x, y, w)
	case activity.MemorizationCard:
		y = r.drawCards(pn, c, x, y, w)
	case activity.ReorderWords, activity.PuzzleAyah:
		y = r.drawPieces(pn, c, x, y, w)
	}
	return y - top
}

func (r *Renderer) drawHeading(pn *pen, c exercise.Content, x, y, w float64) float64 {
	fill, ink := theme.HeadingFill, theme.Heading
	if c.AnswerKey {
		fill, ink = theme.KeyFill, theme.KeyHeading
	}
	pn.roundRect(x, y, w, headingHeight, 6, fill, nil)
	pn.rect(x, y, 4, headingHeight, ink)

	s := pn.shaper(r.fonts.Bold, sizeHeading)
	pn.draw(s, c.Title, x+16, y+(headingHeight-pn.lineHeight(s))/2, ink)
	return headingHeight + 16
}

// verse draws one right-aligned verse with its number in the left margin.
func (r *Renderer) verse(pn *pen, item exercise.Item, size float64, ink color.Color, x, y, w float64) float64 {
	s := pn.shaper(r.fonts.Arabic, size)
	if item.Number > 0 {
		num := pn.shaper(r.fonts.Regular, sizeBody)
		pn.draw(num, fmt.Sprintf("(%d)", item.Number), x, y+pn.lineHeight(s)/3, theme.Muted)
		x, w = x+40, w-40
	}
	return pn.paragraph(s, item.Arabic, x, y, w, ink)
}

func (r *Renderer) drawTracing(pn *pen, c exercise.Content, x, y, w float64) float64 {
	for _, item := range c.Items {
		y += r.verse(pn, item, sizeTrace, theme.MustHex("#D1D5DB"), x, y, w) + 24
	}
	return y
}

func (r *Renderer) drawCopyLines(pn *pen, c exercise.Content, x, y, w float64) float64 {
	for _, item := range c.Items {
		y += r.verse(pn, item, sizeArabic, theme.Ink, x, y, w) + 8
		for i := 0; i < 2; i++ {
			y += 40
			pn.line(x, y, x+w, y, 2, theme.RuleLine, true)
		}
		y += itemGap
	}
	return y
}

func (r *Renderer) drawTajwid(pn *pen, c exercise.Content, x, y, w float64) float64 {
	small := pn.shaper(r.fonts.Bold, sizeSmall+1)
	lx := x + w/2 - 150
	for _, rule := range exercise.Legend {
		col := theme.MustHex(exercise.RuleColors[rule])
		pn.dc.DrawCircle(lx+6, y+8, 6)
		pn.dc.SetColor(col)
		pn.dc.Fill()
		pn.draw(small, rule.Label(), lx+18, y, theme.Ink)
		lx += 100
	}
	y += 32

	s := pn.shaper(r.fonts.Arabic, sizeArabic)
	for _, item := range c.Items {
		for _, line := range pn.wrap(s, item.Arabic, w) {
			var parts []run
			for _, seg := range exercise.Highlight(line) {
				col := theme.Ink
				if seg.Rule != exercise.RuleNone {
					col = theme.MustHex(exercise.RuleColors[seg.Rule])
				}
				parts = append(parts, run{text: seg.Text, color: col})
			}
			pn.runs(s, parts, x+w, y)
			y += pn.lineHeight(s)
		}
		y += 8
	}

	if c.Note != "" {
		note := pn.shaper(r.fonts.Regular, sizeSmall)
		y += 8
		pn.draw(note, c.Note, x+(w-pn.width(note, c.Note))/2, y, theme.Muted)
		y += pn.lineHeight(note)
	}
	return y
}

func (r *Renderer) drawMCQ(pn *pen, c exercise.Content, x, y, w float64) float64 {
	opt := pn.shaper(r.fonts.Regular, sizeBody-1)
	for _, item := range c.Items {
		y += r.verse(pn, item, sizeArabic-4, theme.Ink, x, y, w) + 6
		for _, o := range item.Options {
			lines := pn.wrap(opt, `"`+o+`"`, w-64)
			h := float64(len(lines))*pn.lineHeight(opt) + 8
			if c.AnswerKey && o == item.Answer {
				pn.roundRect(x+24, y, w-24, h, 6, theme.AnswerFill, theme.Answer)
			}
			pn.circle(x+40, y+h/2, 7, theme.RuleLine)
			pn.paragraph(opt, `"`+o+`"`, x+56, y+4, w-64, theme.Ink)
			y += h + 4
		}
		y += itemGap
	}
	return y
}

func (r *Renderer) drawMatch(pn *pen, c exercise.Content, x, y, w float64) float64 {
	cols := layout.Box{X: x, Y: y, Width: w}.SplitColumns(2, w*0.04)
	tr := pn.shaper(r.fonts.Regular, sizeBody-1)
	ar := pn.shaper(r.fonts.Arabic, sizeArabic-6)

	left := c.Bank
	if c.AnswerKey {
		// rows line up translation with verse
		left = make([]string, len(c.Items))
		for i, item := range c.Items {
			left[i] = item.Answer
		}
	}

	for i, item := range c.Items {
		var tl string
		if i < len(left) {
			tl = `"` + left[i] + `"`
		}
		lh := float64(len(pn.wrap(tr, tl, cols[0].Width-40))) * pn.lineHeight(tr)
		rh := float64(len(pn.wrap(ar, item.Arabic, cols[1].Width-40))) * pn.lineHeight(ar)
		h := max(lh, rh) + 20

		pn.roundRect(cols[0].X, y, cols[0].Width, h, 8, theme.MustHex("#F9FAFB"), theme.RuleLine)
		pn.roundRect(cols[1].X, y, cols[1].Width, h, 8, theme.CardFill, theme.RuleLine)
		pn.paragraph(tr, tl, cols[0].X+10, y+10, cols[0].Width-40, theme.Ink)
		pn.paragraph(ar, item.Arabic, cols[1].X+30, y+10, cols[1].Width-40, theme.Ink)
		if !c.AnswerKey {
			pn.circle(cols[0].Right()-16, y+h/2, 6, theme.RuleLine)
			pn.circle(cols[1].X+16, y+h/2, 6, theme.RuleLine)
		}
		y += h + 12
	}
	return y
}

func (r *Renderer) drawFillInBlank(pn *pen, c exercise.Content, x, y, w float64) float64 {
	s := pn.shaper(r.fonts.Arabic, sizeArabic)
	num := pn.shaper(r.fonts.Regular, sizeBody)
	for _, item := range c.Items {
		pn.draw(num, fmt.Sprintf("(%d)", item.Number), x, y+pn.lineHeight(s)/3, theme.Muted)
		if c.AnswerKey && item.Answer != "" {
			before, after, _ := strings.Cut(item.Arabic, exercise.Blank)
			pn.runs(s, []run{
				{text: before, color: theme.Ink},
				{text: item.Answer, color: theme.Answer},
				{text: after, color: theme.Ink},
			}, x+w, y)
			y += pn.lineHeight(s)
		} else {
			y += pn.paragraph(s, item.Arabic, x+40, y, w-40, theme.Ink)
		}
		y += 8
	}

	if len(c.Bank) == 0 || c.AnswerKey {
		return y
	}
	y += 12
	pn.line(x, y, x+w, y, 2, theme.RuleLine, true)
	y += 12
	title := pn.shaper(r.fonts.Bold, sizeBody+2)
	pn.draw(title, "Bank Kata", x+(w-pn.width(title, "Bank Kata"))/2, y, theme.Ink)
	y += pn.lineHeight(title) + 8

	return y + r.drawChips(pn, c.Bank, x, y, w, false)
}

func (r *Renderer) drawWordMeaning(pn *pen, c exercise.Content, x, y, w float64) float64 {
	cols := layout.Box{X: x, Width: w}.SplitColumns(2, 32)
	ar := pn.shaper(r.fonts.Arabic, sizeArabic-4)
	ans := pn.shaper(r.fonts.Bold, sizeBody-1)
	rowH := pn.lineHeight(ar) + 12

	for i, item := range c.Items {
		col := cols[i%2]
		ry := y + float64(i/2)*rowH
		wordW := col.Width / 3
		pn.draw(ar, item.Arabic, col.X+wordW-pn.width(ar, item.Arabic), ry, theme.Ink)
		lineY := ry + rowH - 14
		pn.line(col.X+wordW+16, lineY, col.Right(), lineY, 2, theme.RuleLine, true)
		if c.AnswerKey {
			pn.draw(ans, item.Answer, col.X+wordW+20, lineY-pn.lineHeight(ans), theme.Answer)
		}
	}
	rows := (len(c.Items) + 1) / 2
	return y + float64(rows)*rowH
}

func (r *Renderer) drawCards(pn *pen, c exercise.Content, x, y, w float64) float64 {
	cols := layout.Box{X: x, Width: w}.SplitColumns(2, 16)
	ar := pn.shaper(r.fonts.Arabic, sizeArabic-4)
	tr := pn.shaper(r.fonts.Regular, sizeBody-2)
	label := pn.shaper(r.fonts.Bold, sizeSmall)

	for row := 0; row*2 < len(c.Items); row++ {
		rowH := 0.0
		for i := row * 2; i < min(row*2+2, len(c.Items)); i++ {
			item := c.Items[i]
			cw := cols[i%2].Width - 32
			h := float64(len(pn.wrap(ar, item.Arabic, cw)))*pn.lineHeight(ar) +
				float64(len(pn.wrap(tr, item.Translation, cw)))*pn.lineHeight(tr) + 72
			rowH = max(rowH, h)
		}

		for i := row * 2; i < min(row*2+2, len(c.Items)); i++ {
			item := c.Items[i]
			col := cols[i%2]
			pn.dc.Push()
			pn.dc.SetDash(6*pn.scale, 4*pn.scale)
			pn.roundRect(col.X, y, col.Width, rowH, 8, theme.CardFill, theme.CardBorder)
			pn.dc.Pop()

			cy := y + 12
			cy += r.verse(pn, item, sizeArabic-4, theme.Ink, col.X+16, cy, col.Width-32)
			cy += pn.paragraph(tr, `"`+item.Translation+`"`, col.X+16, cy+4, col.Width-32, theme.Muted)

			by := y + rowH - 28
			lw := pn.width(label, c.Instruction)
			bx := col.X + (col.Width-lw-exercise.RepeatBoxes*24)/2
			pn.draw(label, c.Instruction, bx, by, theme.Ink)
			for b := 0; b < exercise.RepeatBoxes; b++ {
				pn.roundRect(bx+lw+8+float64(b)*24, by, 16, 16, 3, theme.White, theme.RuleLine)
			}
		}
		y += rowH + 16
	}
	return y
}

func (r *Renderer) drawPieces(pn *pen, c exercise.Content, x, y, w float64) float64 {
	prompt := pn.shaper(r.fonts.Bold, sizeBody-1)
	ar := pn.shaper(r.fonts.Arabic, sizeArabic)
	numbered := c.Activity == activity.PuzzleAyah

	for _, item := range c.Items {
		y += pn.paragraph(prompt, item.Prompt, x, y, w, theme.Ink) + 8
		y += r.drawChips(pn, item.Pieces, x, y, w, numbered) + 12

		lineY := y + pn.lineHeight(ar)
		pn.line(x, lineY, x+w, lineY, 2, theme.RuleLine, true)
		if c.AnswerKey {
			pn.paragraph(ar, item.Answer, x, y, w, theme.Answer)
		}
		y = lineY + itemGap + 8
	}
	return y
}

// drawChips lays pieces right to left in wrapped rows and returns the height.
// With numbered set each chip gets an empty circle for the order number.
func (r *Renderer) drawChips(pn *pen, pieces []string, x, y, w float64, numbered bool) float64 {
	s := pn.shaper(r.fonts.Arabic, sizeArabic-4)
	lh := pn.lineHeight(s) + chipPad
	extra := 0.0
	if numbered {
		extra = 32
	}

	widths := make([]float64, len(pieces))
	for i, p := range pieces {
		widths[i] = min(pn.width(s, p)+2*chipPad+extra, w)
	}
	area := layout.Box{X: x, Y: y, Width: w}
	for i, chip := range layout.Wrap(area, widths, lh, 10, true) {
		box := chip.Box
		if numbered {
			pn.circle(box.X+14, box.Y+lh/2, 12, theme.RuleLine)
			box = box.Inset(0, 0, 0, extra)
		}
		pn.roundRect(box.X, box.Y, box.Width, box.Height, 6, theme.ChipFill, theme.ChipBorder)
		pn.draw(s, pieces[i], box.X+chipPad, box.Y+chipPad/2, theme.Ink)
	}
	return layout.WrapHeight(area, widths, lh, 10)
}
