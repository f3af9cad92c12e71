// internal/app/view.go
package app

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/coverscroll/internal/scroller"
	"github.com/llehouerou/coverscroll/internal/ui/overlay"
	"github.com/llehouerou/coverscroll/internal/ui/popup"
	"github.com/llehouerou/coverscroll/internal/ui/render"
	"github.com/llehouerou/coverscroll/internal/ui/styles"
)

const (
	// gradientRows is how many header rows the title gradient darkens.
	gradientRows = 3
	// gradientShade is the darkest the gradient gets at full alpha.
	gradientShade = 0.6
	// spacedTitleScale is the scale above which the title is letter-spaced.
	spacedTitleScale = 0.95
)

var glowBlocks = []rune(" ▁▂▃▄▅▆▇█")

// View renders the application UI.
func (m Model) View() string {
	if m.Quitting || m.sheet == nil {
		return ""
	}

	lines := make([]string, m.Height)
	for r := range lines {
		lines[r] = m.sheet.renderRow(r)
	}
	if g := m.sheet.glow; !g.IsFinished() && m.Height > 0 {
		last := m.Height - 1
		lines[last] = m.sheet.renderGlow(lines[last])
	}
	view := strings.Join(lines, "\n")

	if m.ShowHelp {
		box := popup.RenderBordered(m.Help.View(), m.Width, m.Height)
		view = overlay.Compose(view, box, m.Width)
	}
	return view
}

// scrimLine is a backdrop row of width columns, dimmed as the spacer closes.
func (s *sheet) scrimLine(width int) string {
	if width <= 0 {
		return ""
	}
	t := styles.T()
	bg := styles.Blend(t.BgBase, t.Backdrop, s.scrim)
	return lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", width))
}

// renderRow draws terminal row r across the whole terminal width.
func (s *sheet) renderRow(r int) string {
	yc := s.grid.RowCenter(r)
	if yc < s.transparent {
		return s.scrimLine(s.cols)
	}

	var body string
	if s.geo.Panel == scroller.TwoPanel {
		body = s.twoPanelRow(yc)
	} else {
		body = s.singlePanelRow(yc)
	}
	right := s.cols - s.geo.Left - s.geo.Width
	return s.scrimLine(s.geo.Left) + body + s.scrimLine(right)
}

func (s *sheet) singlePanelRow(yc int) string {
	t, h := s.transparent, s.header
	if yc < t+h {
		shown := s.grid.RoundRows(h)
		crop := max((s.geo.PhotoRows()-shown)/2, 0)
		hr := s.grid.RowAt(yc - t)
		line := s.photo.Row(crop+hr, s.gradientShade(shown-1-hr))
		if hr == s.titleRow() {
			line = s.placeTitle(line, s.geo.PhotoCols)
		}
		return line
	}
	i := s.grid.RowAt(yc - t - h + s.list.Offset())
	first := s.grid.RowAt(yc-t-h) == 0
	return s.list.Line(i, first && s.visuals.Elevated)
}

func (s *sheet) twoPanelRow(yc int) string {
	t := s.transparent
	hr := s.grid.RowAt(yc - t)
	rows := s.geo.PhotoRows()

	var left string
	if hr < rows {
		left = s.photo.Row(hr, s.gradientShade(rows-1-hr))
		if hr == s.titleRow() {
			left = s.placeTitle(left, s.geo.PhotoCols)
		}
	} else {
		left = styles.T().S().Base.Render(render.Blank(s.geo.PhotoCols))
	}
	gap := styles.T().S().Base.Render(render.Blank(s.geo.ListLeft - s.geo.PhotoCols))
	i := s.grid.RowAt(yc - t + s.list.Offset())
	return left + gap + s.list.Line(i, false)
}

// gradientShade darkens the bottom header rows under the title. fromBottom
// counts rows up from the last header row.
func (s *sheet) gradientShade(fromBottom int) float64 {
	if fromBottom < 0 || fromBottom >= gradientRows {
		return 0
	}
	alpha := float64(s.visuals.GradientAlpha) / 255
	return alpha * gradientShade * float64(gradientRows-fromBottom) / gradientRows
}

// titleRow is the header row holding the title.
func (s *sheet) titleRow() int {
	return s.grid.RoundRows(s.visuals.TitleTop - s.transparent)
}

func (s *sheet) placeTitle(line string, width int) string {
	col := s.visuals.TitleStartMargin / s.grid.ColUnits()
	title := render.Sanitize(s.list.Title())
	if s.visuals.TitleScale >= spacedTitleScale {
		title = render.Spaced(title, 1)
	}
	title = render.Truncate(title, max(width-2*col, 0))
	if title == "" {
		return line
	}
	t := styles.T()
	return overlay.Place(line, styles.ApplyBoldGradient(title, t.Primary, t.Secondary), col, width)
}

// renderGlow draws the overscroll glow over the bottom row of the sheet.
func (s *sheet) renderGlow(line string) string {
	w := s.geo.Width
	if w <= 0 {
		return line
	}
	amount := s.glow.Amount()
	// The glow is anchored at the bottom edge, so its origin is mirrored.
	peak := (1 - s.glow.Origin()) * float64(w-1)
	t := styles.T()
	tint := s.glow.Color()
	fg := styles.Blend(t.BgBase, styles.FromRGBA(tint), float64(tint.A)/255)
	style := lipgloss.NewStyle().Foreground(fg).Background(t.BgBase)

	var b strings.Builder
	for c := range w {
		falloff := 1 - math.Abs(float64(c)-peak)/float64(w)
		level := int(math.Round(amount * falloff * float64(len(glowBlocks)-1)))
		level = min(max(level, 0), len(glowBlocks)-1)
		b.WriteRune(glowBlocks[level])
	}
	glow := style.Render(b.String())
	return overlay.Place(line, glow, s.geo.Left, ansi.StringWidth(line))
}
