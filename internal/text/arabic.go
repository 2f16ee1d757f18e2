package text

import "unicode"

type joining uint8

const (
	joinNone joining = iota
	// joinRight letters connect only to the letter before them.
	joinRight
	// joinDual letters connect on both sides.
	joinDual
	// joinCausing letters connect on both sides but have no contextual forms.
	joinCausing
)

type letter struct {
	// isolated is the first of the consecutive presentation forms:
	// isolated, final, then initial and medial for dual joining letters.
	isolated rune
	join     joining
}

var letters = map[rune]letter{
	0x0621: {0xFE80, joinNone},
	0x0622: {0xFE81, joinRight},
	0x0623: {0xFE83, joinRight},
	0x0624: {0xFE85, joinRight},
	0x0625: {0xFE87, joinRight},
	0x0626: {0xFE89, joinDual},
	0x0627: {0xFE8D, joinRight},
	0x0628: {0xFE8F, joinDual},
	0x0629: {0xFE93, joinRight},
	0x062A: {0xFE95, joinDual},
	0x062B: {0xFE99, joinDual},
	0x062C: {0xFE9D, joinDual},
	0x062D: {0xFEA1, joinDual},
	0x062E: {0xFEA5, joinDual},
	0x062F: {0xFEA9, joinRight},
	0x0630: {0xFEAB, joinRight},
	0x0631: {0xFEAD, joinRight},
	0x0632: {0xFEAF, joinRight},
	0x0633: {0xFEB1, joinDual},
	0x0634: {0xFEB5, joinDual},
	0x0635: {0xFEB9, joinDual},
	0x0636: {0xFEBD, joinDual},
	0x0637: {0xFEC1, joinDual},
	0x0638: {0xFEC5, joinDual},
	0x0639: {0xFEC9, joinDual},
	0x063A: {0xFECD, joinDual},
	0x0640: {0x0640, joinCausing},
	0x0641: {0xFED1, joinDual},
	0x0642: {0xFED5, joinDual},
	0x0643: {0xFED9, joinDual},
	0x0644: {0xFEDD, joinDual},
	0x0645: {0xFEE1, joinDual},
	0x0646: {0xFEE5, joinDual},
	0x0647: {0xFEE9, joinDual},
	0x0648: {0xFEED, joinRight},
	0x0649: {0xFEEF, joinRight},
	0x064A: {0xFEF1, joinDual},
	0x0671: {0xFB50, joinRight},
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// joinsForward reports whether l connects to the letter after it.
func (l letter) joinsForward() bool {
	return l.join == joinDual || l.join == joinCausing
}

// joinsBackward reports whether l connects to the letter before it.
func (l letter) joinsBackward() bool {
	return l.join != joinNone
}

func (l letter) form(prev, next bool) rune {
	switch l.join {
	case joinCausing, joinNone:
		return l.isolated
	case joinRight:
		if prev {
			return l.isolated + 1
		}
		return l.isolated
	}
	switch {
	case prev && next:
		return l.isolated + 3
	case prev:
		return l.isolated + 1
	case next:
		return l.isolated + 2
	}
	return l.isolated
}

// Shape replaces Arabic letters with their contextual presentation forms so a
// font without an OpenType shaper draws connected script. Combining marks are
// kept and do not break a connection. The result is still in logical order.
func Shape(s string) string {
	runes := []rune(s)
	out := make([]rune, len(runes))

	neighbor := func(i, step int) (letter, bool) {
		for j := i + step; j >= 0 && j < len(runes); j += step {
			if isMark(runes[j]) {
				continue
			}
			l, ok := letters[runes[j]]
			return l, ok
		}
		return letter{}, false
	}

	for i, r := range runes {
		l, ok := letters[r]
		if !ok {
			out[i] = r
			continue
		}
		p, hasPrev := neighbor(i, -1)
		n, hasNext := neighbor(i, 1)
		prev := hasPrev && p.joinsForward()
		next := hasNext && n.joinsBackward()
		out[i] = l.form(prev, next)
	}
	return string(out)
}
