package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the sheet's palette. Primary and Secondary run the title
// gradient; Backdrop is what the scrim fades toward.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgBase   lipgloss.Color
	BgShadow lipgloss.Color // list row under an elevated header
	Backdrop lipgloss.Color

	Border lipgloss.Color

	styles *Styles
}

// Styles are the text styles built from a Theme, all on the sheet background.
type Styles struct {
	Base   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style
	Title  lipgloss.Style
	Number lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   "#a78bfa",
	Secondary: "#f1a208",

	FgBase:   "#c0c0c0",
	FgMuted:  "#808080",
	FgSubtle: "#585858",

	BgBase:   "#1a1a1a",
	BgShadow: "#0d0d0d",
	Backdrop: "#000000",

	Border: "#585858",
}

// T returns the process-wide theme.
func T() *Theme {
	return &defaultTheme
}

// Configure overrides the accent and backdrop colors. Empty values keep
// the defaults.
func (t *Theme) Configure(accent, backdrop string) {
	if accent != "" {
		t.Primary = lipgloss.Color(accent)
	}
	if backdrop != "" {
		t.Backdrop = lipgloss.Color(backdrop)
	}
	t.styles = nil
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase).Background(t.BgBase)

	return &Styles{
		Base:   base,
		Muted:  base.Foreground(t.FgMuted),
		Subtle: base.Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Number: base.Foreground(t.Primary),
	}
}
