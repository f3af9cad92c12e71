package helpbindings

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/coverscroll/internal/ui/action"
)

// Source names the help popup in action messages.
const Source = "help"

// Close asks the app to hide the help popup.
type Close struct{}

// ActionType implements action.Action.
func (Close) ActionType() string { return "help.close" }

func closeCmd() tea.Cmd {
	return action.Cmd(Source, Close{})
}
