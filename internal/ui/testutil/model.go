package testutil

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ModelHarness drives a tea.Model through Update the way the program
// loop does, keeping the latest model and every command it returned.
type ModelHarness struct {
	recorder
	model tea.Model
}

// NewModelHarness creates a test harness for m and captures its init command.
func NewModelHarness(m tea.Model) *ModelHarness {
	h := &ModelHarness{model: m}
	h.record(m.Init())
	return h
}

// Model returns the latest model for type assertion.
func (h *ModelHarness) Model() tea.Model {
	return h.model
}

// View returns the latest model's rendered view.
func (h *ModelHarness) View() string {
	return h.model.View()
}

// Send delivers msg and returns the resulting command.
func (h *ModelHarness) Send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return h.record(cmd)
}

// Resize sends a window size message.
func (h *ModelHarness) Resize(width, height int) tea.Cmd {
	return h.Send(tea.WindowSizeMsg{Width: width, Height: height})
}

// SendKey simulates a key press. See KeyMsg for key names.
func (h *ModelHarness) SendKey(key string) tea.Cmd {
	return h.Send(KeyMsg(key))
}

// Press sends a left button press at a cell.
func (h *ModelHarness) Press(col, row int) tea.Cmd {
	return h.Send(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// Drag sends pointer motion with the left button held.
func (h *ModelHarness) Drag(col, row int) tea.Cmd {
	return h.Send(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

// Release sends a button release at a cell.
func (h *ModelHarness) Release(col, row int) tea.Cmd {
	return h.Send(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

// Click presses and releases at the same cell.
func (h *ModelHarness) Click(col, row int) tea.Cmd {
	h.Press(col, row)
	return h.Release(col, row)
}

// Wheel sends one wheel step at a cell. Positive steps scroll down.
func (h *ModelHarness) Wheel(col, row, steps int) tea.Cmd {
	button := tea.MouseButtonWheelDown
	if steps < 0 {
		button = tea.MouseButtonWheelUp
		steps = -steps
	}
	var cmd tea.Cmd
	for range steps {
		cmd = h.Send(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: button})
	}
	return cmd
}
