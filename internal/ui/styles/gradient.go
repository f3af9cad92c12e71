package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for palette colors, which have no fixed RGB value.
var neutral = colorful.Color{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255}

// parse reads a "#rrggbb" color. ANSI palette indexes map to neutral gray.
func parse(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return neutral
}

// Blend mixes from toward to by t in [0, 1], in HCL space.
func Blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	t = min(max(t, 0), 1)
	return lipgloss.Color(parse(from).BlendHcl(parse(to), t).Clamped().Hex())
}

// ToRGBA converts a hex lipgloss color to an opaque image color.
func ToRGBA(c lipgloss.Color) color.RGBA {
	r, g, b := parse(c).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FromRGBA converts an image color to a hex lipgloss color, ignoring alpha.
func FromRGBA(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex())
}

// ApplyBoldGradient renders bold text whose color runs from from to to,
// one step per grapheme cluster.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	base := lipgloss.NewStyle().Bold(true)
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return base.Foreground(from).Render(text)
	}

	var b strings.Builder
	last := float64(len(clusters) - 1)
	for i, cluster := range clusters {
		b.WriteString(base.Foreground(Blend(from, to, float64(i)/last)).Render(cluster))
	}
	return b.String()
}
