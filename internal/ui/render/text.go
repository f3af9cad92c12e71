// Package render provides text helpers for sheet rows. Widths are terminal
// cells, so wide characters and combining marks are measured correctly.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Sanitize drops control characters and invalid UTF-8 from tag values and
// turns non-breaking spaces into plain ones. Tabs are kept.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[:size])
		}
		s = s[size:]
	}
	return b.String()
}

// needsSanitize is a byte scan that lets clean strings skip the rebuild.
func needsSanitize(s string) bool {
	for i := range len(s) {
		c := s[i]
		switch {
		case c < 0x20 && c != '\t':
			return true
		case c == 0xc2 && i+1 < len(s) && s[i+1] <= 0xa0:
			// NBSP or a C1 control
			return true
		}
	}
	return !utf8.ValidString(s)
}

// Truncate sanitizes s and cuts it to maxWidth cells, ending with an
// ellipsis when something was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), maxWidth, ellipsis)
}

// Blank returns width spaces.
func Blank(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}

// Center pads s with spaces on both sides to width.
func Center(s string, width int) string {
	w := uniseg.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return Blank(left) + s + Blank(width-w-left)
}

// Spaced inserts gap spaces between the grapheme clusters of s.
func Spaced(s string, gap int) string {
	if gap <= 0 || s == "" {
		return s
	}
	sep := Blank(gap)
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	first := true
	for g.Next() {
		if !first {
			b.WriteString(sep)
		}
		b.WriteString(g.Str())
		first = false
	}
	return b.String()
}
