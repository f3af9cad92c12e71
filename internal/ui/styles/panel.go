package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the rounded panel style, with the accent border when
// focused.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.Primary
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2)
}
