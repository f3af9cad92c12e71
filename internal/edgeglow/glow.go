// Package edgeglow draws the overscroll indicator shown when the list is
// pushed past its end.
package edgeglow

import (
	"image/color"
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	frequency = 6.0
	damping   = 1.0
	// absorbScale converts fling velocity into the spring's initial velocity.
	absorbScale = 0.004
	maxAbsorb   = 12.0
	epsilon     = 0.002
)

// defaultColor is a translucent white until a tint is set.
var defaultColor = color.RGBA{R: 255, G: 255, B: 255, A: 0x99}

// Glow is a spring-driven overscroll indicator. Pulls stretch it directly;
// releases and absorbed flings let the spring bring it back to rest.
type Glow struct {
	spring harmonica.Spring
	amount float64
	vel    float64
	target float64
	origin float64
	color  color.RGBA
}

// New returns an idle glow stepped fps times per second.
func New(fps int) *Glow {
	if fps <= 0 {
		fps = 60
	}
	return &Glow{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		origin: 0.5,
		color:  defaultColor,
	}
}

// Pull stretches the glow by amount at horizontal origin.
func (g *Glow) Pull(amount, origin float64) {
	g.amount = clamp(g.amount+amount, 0, 1)
	g.target = g.amount
	g.vel = 0
	g.origin = clamp(origin, 0, 1)
}

// Absorb kicks the glow with the velocity of a fling hitting the end.
func (g *Glow) Absorb(velocity int) {
	g.vel = math.Min(math.Abs(float64(velocity))*absorbScale, maxAbsorb)
	g.target = 0
}

// Release lets the glow recede.
func (g *Glow) Release() {
	g.target = 0
}

// Step advances the spring by one frame.
func (g *Glow) Step() {
	if g.IsFinished() {
		return
	}
	g.amount, g.vel = g.spring.Update(g.amount, g.vel, g.target)
	g.amount = clamp(g.amount, 0, 1)
	if g.target == 0 && g.amount < epsilon && math.Abs(g.vel) < epsilon*10 {
		g.amount, g.vel = 0, 0
	}
}

// IsFinished reports whether the glow is invisible and at rest.
func (g *Glow) IsFinished() bool {
	return g.amount == 0 && g.vel == 0 && g.target == 0
}

// Amount is the current stretch in [0, 1].
func (g *Glow) Amount() float64 { return g.amount }

// Origin is the horizontal position of the last pull in [0, 1].
func (g *Glow) Origin() float64 { return g.origin }

// Color is the glow color. Its alpha is the opacity at full stretch.
func (g *Glow) Color() color.RGBA { return g.color }

// SetTint takes the red, green and blue of c and keeps the current alpha.
func (g *Glow) SetTint(c color.RGBA) {
	g.color = color.RGBA{R: c.R, G: c.G, B: c.B, A: g.color.A}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
