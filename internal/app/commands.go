// internal/app/commands.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/coverscroll/internal/ui/cover"
)

// FrameCmd returns a command that sends FrameMsg after one frame at fps.
func FrameCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(max(fps, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// TintCmd averages the cover colors off the UI loop.
func TintCmd(photo *cover.Photo) tea.Cmd {
	return func() tea.Msg {
		return TintMsg(photo.AverageColor())
	}
}
