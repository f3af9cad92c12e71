// Package action carries results from popups back to the app.
package action

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Action is a typed result emitted by a popup. ActionType names it in logs.
type Action interface {
	ActionType() string
}

// Msg wraps an Action with the name of the popup that emitted it.
type Msg struct {
	Source string
	Action Action
}

// Cmd returns a command that delivers a from source.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg {
		return Msg{Source: source, Action: a}
	}
}

// LogValue implements slog.LogValuer.
func (m Msg) LogValue() slog.Value {
	kind := ""
	if m.Action != nil {
		kind = m.Action.ActionType()
	}
	return slog.GroupValue(
		slog.String("source", m.Source),
		slog.String("action", kind),
	)
}
