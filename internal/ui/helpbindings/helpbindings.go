// Package helpbindings is the scrollable popup listing key bindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/coverscroll/internal/keymap"
	"github.com/llehouerou/coverscroll/internal/ui"
	"github.com/llehouerou/coverscroll/internal/ui/popup"
	"github.com/llehouerou/coverscroll/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// sections lists the binding contexts in display order.
var sections = []struct {
	context string
	label   string
}{
	{"global", "Global"},
	{"sheet", "Album Sheet"},
}

// chrome is the title, footer and blank lines around the bindings, plus
// the border added by the popup renderer.
const chrome = 10

// Model holds the state for the help popup.
type Model struct {
	ui.Base
	keys   *keymap.Resolver
	lines  []string
	offset int
}

// New creates a help popup showing the keys known to keys.
func New(keys *keymap.Resolver) Model {
	return Model{keys: keys}
}

// SetContexts chooses which binding contexts to list and scrolls to the top.
func (m *Model) SetContexts(contexts []string) {
	m.lines = m.build(contexts)
	m.offset = 0
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.keys.Resolve(key.String()) {
	case keymap.ActionHelp, keymap.ActionDismiss, keymap.ActionQuit:
		return m, closeCmd()
	case keymap.ActionScrollDown:
		m.offset = min(m.offset+1, m.maxOffset())
	case keymap.ActionScrollUp:
		m.offset = max(m.offset-1, 0)
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	// Pad to the widest line so the box keeps its width while scrolling.
	width := 0
	for _, line := range m.lines {
		width = max(width, lipgloss.Width(line))
	}
	end := min(m.offset+m.visible(), len(m.lines))
	shown := make([]string, 0, end-m.offset)
	for _, line := range m.lines[m.offset:end] {
		shown = append(shown, line+strings.Repeat(" ", width-lipgloss.Width(line)))
	}

	t := styles.T()
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(shown, "\n"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.FgSubtle).Render(m.footer()))
	return b.String()
}

func (m *Model) build(contexts []string) []string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.FgBase)
	headStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	ruleStyle := lipgloss.NewStyle().Foreground(t.FgSubtle)

	type entry struct{ keys, desc string }
	var groups [][]entry
	var labels []string
	keyWidth := 0
	for _, s := range sections {
		if !slices.Contains(contexts, s.context) {
			continue
		}
		var group []entry
		for _, b := range keymap.ByContext(s.context) {
			keys := strings.Join(m.keys.Keys(b.Action), ", ")
			if keys == "" {
				continue
			}
			keyWidth = max(keyWidth, lipgloss.Width(keys))
			group = append(group, entry{keys, b.Description})
		}
		if len(group) > 0 {
			groups = append(groups, group)
			labels = append(labels, s.label)
		}
	}

	var lines []string
	for i, group := range groups {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			headStyle.Render(labels[i]),
			ruleStyle.Render(strings.Repeat("─", keyWidth+15)))
		for _, e := range group {
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(e.keys))
			lines = append(lines, keyStyle.Render(e.keys+pad)+"  "+descStyle.Render(e.desc))
		}
	}
	return lines
}

func (m *Model) footer() string {
	closeHint := m.keys.Hint(keymap.ActionHelp, keymap.ActionDismiss) + " close"
	if m.maxOffset() == 0 {
		return closeHint
	}
	return m.keys.Hint(keymap.ActionScrollDown, keymap.ActionScrollUp) + " scroll · " + closeHint
}

func (m *Model) visible() int {
	return max(m.Height()-chrome, 5)
}

func (m *Model) maxOffset() int {
	return max(len(m.lines)-m.visible(), 0)
}
