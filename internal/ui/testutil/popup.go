package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/coverscroll/internal/ui/popup"
)

// PopupHarness wraps a popup for testing, providing helpers to simulate
// key presses and inspect the rendered content.
type PopupHarness struct {
	recorder
	popup popup.Popup
}

// NewPopupHarness creates a harness for p and captures its init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.record(p.Init())
	return h
}

// Popup returns the underlying popup for type assertion when needed.
func (h *PopupHarness) Popup() popup.Popup {
	return h.popup
}

// SetSize sets the popup dimensions.
func (h *PopupHarness) SetSize(width, height int) {
	h.popup.SetSize(width, height)
}

// View returns the popup's rendered content.
func (h *PopupHarness) View() string {
	return h.popup.View()
}

// SendMsg delivers msg to the popup and returns the resulting command.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	return h.record(cmd)
}

// SendKey simulates a key press. See KeyMsg for key names.
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(KeyMsg(key))
}

// SendEnter sends the enter key.
func (h *PopupHarness) SendEnter() tea.Cmd { return h.SendKey("enter") }

// SendEscape sends the escape key.
func (h *PopupHarness) SendEscape() tea.Cmd { return h.SendKey("esc") }

// SendUp sends the up arrow key.
func (h *PopupHarness) SendUp() tea.Cmd { return h.SendKey("up") }

// SendDown sends the down arrow key.
func (h *PopupHarness) SendDown() tea.Cmd { return h.SendKey("down") }

// ExecuteAndSend runs cmd and feeds its message back to the popup.
func (h *PopupHarness) ExecuteAndSend(cmd tea.Cmd) (tea.Msg, tea.Cmd) {
	msg := ExecuteCmd(cmd)
	if msg == nil {
		return nil, nil
	}
	return msg, h.SendMsg(msg)
}

// ViewContains reports whether a line of the plain-text view contains substr.
func (h *PopupHarness) ViewContains(substr string) bool {
	return ContainsLine(h.View(), substr)
}

// AssertViewContains returns a failure message if the view lacks substr.
func (h *PopupHarness) AssertViewContains(substr string) string {
	return AssertContains(h.View(), substr)
}

// AssertViewNotContains returns a failure message if the view contains substr.
func (h *PopupHarness) AssertViewNotContains(substr string) string {
	return AssertNotContains(h.View(), substr)
}
