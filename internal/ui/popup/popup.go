// Package popup renders bordered, centered boxes over the sheet.
package popup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/coverscroll/internal/ui/styles"
)

// Popup is a modal component. View renders the content only; the caller
// adds the border and centers it with RenderBordered.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// chrome is the border plus padding around popup content, per axis.
const (
	chromeWidth  = 6
	chromeHeight = 4
	screenMargin = 4
)

// RenderBordered wraps content in a rounded border sized to fit it, within
// a margin of the screen edges, and centers the box on the screen.
func RenderBordered(content string, screenW, screenH int) string {
	width := min(lipgloss.Width(content)+chromeWidth, screenW-screenMargin)
	height := min(strings.Count(content, "\n")+1+chromeHeight, screenH-screenMargin)

	box := styles.PanelStyle(true).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Render(content)
	return Center(box, screenW, screenH)
}

// Center places a pre-rendered box in the middle of the screen, padding
// with plain spaces. A box larger than the screen is returned as is.
func Center(box string, screenW, screenH int) string {
	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}
