package scroller

import "image/color"

// ColorMatrix is a 4x5 row-major matrix transforming RGBA colors in the
// 0-255 range:
//
//	R' = m[0]*R + m[1]*G + m[2]*B + m[3]*A + m[4]
//	G' = m[5]*R + ...
//
// The zero value is not the identity; use IdentityMatrix.
type ColorMatrix [20]float64

// Luminance weights used for desaturation.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// IdentityMatrix returns the matrix that leaves colors unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// SaturationMatrix returns a matrix that scales saturation: 0 is grayscale,
// 1 leaves colors unchanged.
func SaturationMatrix(sat float64) ColorMatrix {
	inv := 1 - sat
	r, g, b := lumR*inv, lumG*inv, lumB*inv
	return ColorMatrix{
		r + sat, g, b, 0, 0,
		r, g + sat, b, 0, 0,
		r, g, b + sat, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// AlphaBlendMatrix returns a matrix that blends a white-ish source toward
// tint by alpha. Used for flat placeholder images.
func AlphaBlendMatrix(alpha float64, tint color.RGBA) ColorMatrix {
	offset := 255 * (1 - alpha)
	return ColorMatrix{
		float64(tint.R) * alpha / 255, 0, 0, 0, offset,
		0, float64(tint.G) * alpha / 255, 0, 0, offset,
		0, 0, float64(tint.B) * alpha / 255, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// MultiplyBlendMatrix returns a matrix that multiplies the source by tint,
// weighted by alpha. Used for photographs.
func MultiplyBlendMatrix(tint color.RGBA, alpha float64) ColorMatrix {
	return ColorMatrix{
		multiplyBlend(tint.R, alpha), 0, 0, 0, 0,
		0, multiplyBlend(tint.G, alpha), 0, 0, 0,
		0, 0, multiplyBlend(tint.B, alpha), 0, 0,
		0, 0, 0, 1, 0,
	}
}

func multiplyBlend(c uint8, alpha float64) float64 {
	return float64(c)*alpha/255 + (1 - alpha)
}

// PostConcat returns the matrix that applies m first and then next.
func (m ColorMatrix) PostConcat(next ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := range 4 {
		for col := range 5 {
			var v float64
			for k := range 4 {
				v += next[row*5+k] * m[k*5+col]
			}
			if col == 4 {
				v += next[row*5+4]
			}
			out[row*5+col] = v
		}
	}
	return out
}

// Apply transforms c, clamping each channel to 0-255.
func (m ColorMatrix) Apply(c color.RGBA) color.RGBA {
	r, g, b, a := float64(c.R), float64(c.G), float64(c.B), float64(c.A)
	channel := func(row int) uint8 {
		v := m[row*5]*r + m[row*5+1]*g + m[row*5+2]*b + m[row*5+3]*a + m[row*5+4]
		return uint8(clampf(v+0.5, 0, 255))
	}
	return color.RGBA{R: channel(0), G: channel(1), B: channel(2), A: channel(3)}
}
