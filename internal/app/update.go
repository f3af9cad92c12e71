// internal/app/update.go
package app

import (
	"image/color"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/coverscroll/internal/keymap"
	"github.com/llehouerou/coverscroll/internal/ui/action"
	"github.com/llehouerou/coverscroll/internal/ui/helpbindings"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)

	case FrameMsg:
		if m.sheet != nil {
			m.sheet.tickPending = false
			m.sheet.frame()
		}

	case TintMsg:
		m = m.handleTint(color.RGBA(msg))

	case tea.MouseMsg:
		m = m.handleMouse(msg)

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case action.Msg:
		m = m.handleAction(msg)
	}

	if m.Quitting {
		return m, tea.Quit
	}
	if m.sheet != nil && m.sheet.offBottom {
		m.Quitting = true
		return m, tea.Quit
	}
	return m, tea.Batch(cmd, m.scheduleFrame())
}

// scheduleFrame starts the frame loop when something is moving and no
// frame is already on its way.
func (m Model) scheduleFrame() tea.Cmd {
	s := m.sheet
	if s == nil || s.tickPending || !s.busy() {
		return nil
	}
	s.tickPending = true
	return FrameCmd(s.cfg.RefreshRate)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.Width, m.Height = msg.Width, msg.Height
	m.Help.SetSize(msg.Width, msg.Height)
	if m.sheet != nil {
		m.sheet.resize(msg.Width, msg.Height)
		return m
	}
	if msg.Width <= 0 || msg.Height <= 0 {
		return m
	}
	m.sheet = newSheet(m.Album, m.Photo, m.opts, msg.Width, msg.Height)
	slog.Debug("sheet created",
		"cols", msg.Width, "rows", msg.Height,
		"panel", m.sheet.geo.Panel, "photo", m.sheet.geo.PhotoCols)
	if m.tint != nil {
		m.sheet.engine.SetHeaderTint(*m.tint)
	}
	m.sheet.engine.ScrollUpForEntrance(!m.opts.Scroller.OpenFullscreen)
	return m
}

func (m Model) handleTint(c color.RGBA) Model {
	slog.Debug("header tint", "r", c.R, "g", c.G, "b", c.B)
	if m.sheet == nil {
		m.tint = &c
		return m
	}
	m.sheet.engine.SetHeaderTint(c)
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	s := m.sheet
	if s == nil || m.ShowHelp {
		return m
	}
	step := s.grid.UnitsPerRow

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		s.engine.ScrollStep(-step)
		return m
	case msg.Button == tea.MouseButtonWheelDown:
		s.engine.ScrollStep(step)
		return m
	}

	x, y := s.pointerUnits(msg.X, msg.Y)
	now := s.now()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		s.press = pointer{down: true, col: msg.X, row: msg.Y}
		s.engine.OnTouchDown(x, y, now)
	case tea.MouseActionMotion:
		if s.press.down {
			s.engine.OnTouchMove(x, y, now)
		}
	case tea.MouseActionRelease:
		if !s.press.down {
			return m
		}
		press := s.press
		s.press = pointer{}
		if s.engine.OnTouchUp(x, y, now) {
			m.handleClick(press.col, press.row)
		}
	}
	return m
}

// handleClick delivers a click that never became a drag to the region
// under the press.
func (m Model) handleClick(col, row int) {
	s := m.sheet
	switch s.hitTest(col, row) {
	case hitHeader:
		s.engine.ExpandCollapseHeader()
	case hitTransparent:
		s.engine.ScrollOffBottom()
	case hitList, hitOutside:
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.ShowHelp {
		_, cmd := m.Help.Update(msg)
		return m, cmd
	}

	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		m.Quitting = true
	case keymap.ActionHelp:
		m.Help.SetContexts(helpContexts)
		m.ShowHelp = true
	case keymap.ActionToggleHeader:
		if m.sheet != nil && m.sheet.engine.AcceptsInput() {
			m.sheet.engine.ExpandCollapseHeader()
		}
	case keymap.ActionToggleGradient:
		if m.sheet != nil {
			m.sheet.toggleGradient()
		}
	case keymap.ActionDismiss:
		if m.sheet == nil {
			m.Quitting = true
			break
		}
		m.sheet.engine.ScrollOffBottom()
	case keymap.ActionScrollUp:
		if m.sheet != nil {
			m.sheet.engine.ScrollStep(-m.sheet.grid.UnitsPerRow)
		}
	case keymap.ActionScrollDown:
		if m.sheet != nil {
			m.sheet.engine.ScrollStep(m.sheet.grid.UnitsPerRow)
		}
	}
	return m, nil
}

func (m Model) handleAction(msg action.Msg) Model {
	slog.Debug("popup action", "msg", msg)
	if msg.Source != helpbindings.Source {
		return m
	}
	if _, ok := msg.Action.(helpbindings.Close); ok {
		m.ShowHelp = false
	}
	return m
}
