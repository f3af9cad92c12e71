// Package overlay composes styled strings on top of each other.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws overlay over base, line by line. On each overlay line the
// span from the first to the last non-space cell replaces the base; the
// spaces around it stay transparent. width is the visible width of base.
func Compose(base, overlay string, width int) string {
	lines := strings.Split(base, "\n")
	for i, over := range strings.Split(overlay, "\n") {
		if i >= len(lines) {
			break
		}
		plain := strings.TrimRight(ansi.Strip(over), " ")
		start := len(plain) - len(strings.TrimLeft(plain, " "))
		if start == len(plain) {
			continue
		}
		end := ansi.StringWidth(plain)
		lines[i] = Place(lines[i], ansi.Cut(over, start, end), start, width)
	}
	return strings.Join(lines, "\n")
}

// Place writes s over line starting at display column col, keeping the
// styled base on either side. width is the visible width of line.
func Place(line, s string, col, width int) string {
	sw := ansi.StringWidth(s)
	if sw == 0 || col >= width {
		return line
	}
	if col < 0 {
		s = ansi.Cut(s, -col, sw)
		sw += col
		col = 0
	}
	if col+sw > width {
		s = ansi.Truncate(s, width-col, "")
		sw = width - col
	}
	return fit(ansi.Cut(line, 0, col), col) + s + fit(ansi.Cut(line, col+sw, width), width-col-sw)
}

// fit pads s with spaces to w columns. Cuts come up short on a base line
// narrower than width or when they split a wide character.
func fit(s string, w int) string {
	if gap := w - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
