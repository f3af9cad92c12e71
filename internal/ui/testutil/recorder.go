package testutil

import (
	tea "github.com/charmbracelet/bubbletea"
)

// specialKeys maps key names to the key types bubbletea reports for them.
var specialKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEscape,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"tab":    tea.KeyTab,
	"ctrl+c": tea.KeyCtrlC,
}

// KeyMsg builds the message bubbletea sends for key. Names such as "esc"
// and "down" become special keys; anything else is typed as runes.
func KeyMsg(key string) tea.KeyMsg {
	if t, ok := specialKeys[key]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// recorder keeps every non-nil command a harness received.
type recorder struct {
	cmds []tea.Cmd
}

func (r *recorder) record(cmd tea.Cmd) tea.Cmd {
	if cmd != nil {
		r.cmds = append(r.cmds, cmd)
	}
	return cmd
}

// Commands returns all commands collected since creation or the last ClearCommands.
func (r *recorder) Commands() []tea.Cmd {
	return r.cmds
}

// LastCommand returns the most recent command, or nil if none.
func (r *recorder) LastCommand() tea.Cmd {
	if len(r.cmds) == 0 {
		return nil
	}
	return r.cmds[len(r.cmds)-1]
}

// ClearCommands forgets the collected commands.
func (r *recorder) ClearCommands() {
	r.cmds = nil
}

// ExecuteCmd runs a command and returns its message, or nil for a nil command.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
