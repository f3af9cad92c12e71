// Package testutil provides helpers for testing rendered views and for
// driving bubbletea models and popups from tests.
package testutil

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered output can be compared
// as plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// SplitLines splits output into lines, dropping trailing blank lines.
func SplitLines(output string) []string {
	lines := strings.Split(output, "\n")
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// LineWidths returns the display width of every line of output.
func LineWidths(output string) []int {
	lines := strings.Split(output, "\n")
	widths := make([]int, len(lines))
	for i, line := range lines {
		widths[i] = ansi.StringWidth(line)
	}
	return widths
}

// FindLine returns the first plain-text line containing substr, or "".
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(ansi.Strip(output), "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// ContainsLine reports whether a single line of output contains substr.
func ContainsLine(output, substr string) bool {
	return FindLine(output, substr) != ""
}

// AssertContains returns a failure message if the plain text of output
// lacks substr, or "" if it is there.
func AssertContains(output, substr string) string {
	if !strings.Contains(ansi.Strip(output), substr) {
		return fmt.Sprintf("expected output to contain %q", substr)
	}
	return ""
}

// AssertNotContains returns a failure message if the plain text of output
// contains substr, or "" if it does not.
func AssertNotContains(output, substr string) string {
	if strings.Contains(ansi.Strip(output), substr) {
		return fmt.Sprintf("expected output to not contain %q", substr)
	}
	return ""
}
