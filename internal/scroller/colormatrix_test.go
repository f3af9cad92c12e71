package scroller

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertColorNear(t *testing.T, want, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 1, "red")
	assert.InDelta(t, want.G, got.G, 1, "green")
	assert.InDelta(t, want.B, got.B, 1, "blue")
	assert.InDelta(t, want.A, got.A, 1, "alpha")
}

func TestColorMatrix_Identity(t *testing.T) {
	c := color.RGBA{R: 12, G: 200, B: 99, A: 255}
	assert.Equal(t, c, IdentityMatrix().Apply(c))
}

func TestColorMatrix_Desaturate(t *testing.T) {
	c := color.RGBA{R: 250, G: 20, B: 20, A: 255}
	got := SaturationMatrix(0).Apply(c)

	assert.Equal(t, got.R, got.G)
	assert.Equal(t, got.G, got.B)
	assert.Equal(t, uint8(255), got.A)
}

func TestColorMatrix_AlphaBlendOnWhite(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	tint := color.RGBA{R: 40, G: 90, B: 200, A: 255}

	assertColorNear(t, tint, AlphaBlendMatrix(1, tint).Apply(white))
	assertColorNear(t, white, AlphaBlendMatrix(0, tint).Apply(white))
}

func TestColorMatrix_MultiplyBlend(t *testing.T) {
	c := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	tint := color.RGBA{R: 255, G: 0, B: 128, A: 255}

	got := MultiplyBlendMatrix(tint, 1).Apply(c)
	assertColorNear(t, color.RGBA{R: 200, G: 0, B: 100, A: 255}, got)

	assert.Equal(t, c, MultiplyBlendMatrix(tint, 0).Apply(c))
}

func TestColorMatrix_PostConcatOrder(t *testing.T) {
	c := color.RGBA{R: 180, G: 60, B: 30, A: 255}
	first := SaturationMatrix(0.3)
	second := AlphaBlendMatrix(0.4, color.RGBA{R: 10, G: 120, B: 240, A: 255})

	combined := first.PostConcat(second)
	assertColorNear(t, second.Apply(first.Apply(c)), combined.Apply(c))

	assert.Equal(t, second, IdentityMatrix().PostConcat(second))
}
