// Package cover draws the album cover in the terminal with upper-half
// block characters, two image rows per terminal row.
package cover

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder for covers
	_ "image/png"  // PNG decoder for covers
	"log/slog"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/llehouerou/coverscroll/internal/scroller"
	"github.com/llehouerou/coverscroll/internal/tags"
)

const upperHalf = "▀"

// ErrNoCover is returned by Decode for an album without cover art.
var ErrNoCover = errors.New("no cover")

// Decode decodes the cover image data.
func Decode(c tags.Cover) (image.Image, error) {
	if c.Empty() {
		return nil, ErrNoCover
	}
	img, _, err := image.Decode(bytes.NewReader(c.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Source, err)
	}
	return img, nil
}

// Photo is the header image. It satisfies scroller.Image: the engine pushes
// a tint matrix and the photo applies it per pixel when drawing rows.
type Photo struct {
	src         image.Image
	source      string
	cache       *Cache
	placeholder color.RGBA

	size   int
	pixels []color.RGBA
	tint   scroller.ColorMatrix
}

// New creates a photo from a decoded image. A nil image makes a flat
// placeholder of the given color.
func New(img image.Image, source string, placeholder color.RGBA, cache *Cache) *Photo {
	placeholder.A = 255
	return &Photo{
		src:         img,
		source:      source,
		cache:       cache,
		placeholder: placeholder,
		tint:        scroller.IdentityMatrix(),
	}
}

// PlaceholderColor is the flat color used when there is no image.
func (p *Photo) PlaceholderColor() color.RGBA {
	return p.placeholder
}

// SetTintTransform implements scroller.Image.
func (p *Photo) SetTintTransform(m scroller.ColorMatrix) {
	p.tint = m
}

// IsPlaceholder implements scroller.Image.
func (p *Photo) IsPlaceholder() bool {
	return p.src == nil
}

// Cols returns the photo width in columns.
func (p *Photo) Cols() int {
	return p.size
}

// SetSize scales the photo to cols columns, which is cols pixels square.
func (p *Photo) SetSize(cols int) {
	if cols == p.size {
		return
	}
	p.size = cols
	p.pixels = nil
	if p.src == nil || cols <= 0 {
		return
	}

	scaled := p.cache.Get(p.source, cols)
	if scaled == nil {
		scaled = resize.Resize(uint(cols), uint(cols), squareCrop(p.src), resize.Lanczos3) //nolint:gosec // cols is a terminal width
		if err := p.cache.Put(p.source, cols, scaled); err != nil {
			slog.Debug("cover cache write failed", "source", p.source, "err", err)
		}
	}

	b := scaled.Bounds()
	p.pixels = make([]color.RGBA, 0, cols*cols)
	for y := range cols {
		for x := range cols {
			c, _ := color.RGBAModel.Convert(scaled.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			c.A = 255
			p.pixels = append(p.pixels, c)
		}
	}
}

// squareCrop returns the centered square of img.
func squareCrop(img image.Image) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	x := b.Min.X + (b.Dx()-side)/2
	y := b.Min.Y + (b.Dy()-side)/2
	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok || (side == b.Dx() && side == b.Dy()) {
		return img
	}
	return sub.SubImage(image.Rect(x, y, x+side, y+side))
}

func (p *Photo) at(x, y int) color.RGBA {
	if p.pixels == nil || x < 0 || y < 0 || x >= p.size || y >= p.size {
		return p.placeholder
	}
	return p.pixels[y*p.size+x]
}

// Row draws terminal row r of the photo, tinted, and darkened toward black
// by shade in [0, 1].
func (p *Photo) Row(r int, shade float64) string {
	if p.size <= 0 {
		return ""
	}
	shade = min(max(shade, 0), 1)

	var b strings.Builder
	var prevTop, prevBottom color.RGBA
	for x := range p.size {
		top := darken(p.tint.Apply(p.at(x, 2*r)), shade)
		bottom := darken(p.tint.Apply(p.at(x, 2*r+1)), shade)
		if x == 0 || top != prevTop || bottom != prevBottom {
			b.WriteString(ansi.Style{}.ForegroundColor(top).BackgroundColor(bottom).String())
			prevTop, prevBottom = top, bottom
		}
		b.WriteString(upperHalf)
	}
	b.WriteString(ansi.ResetStyle)
	return b.String()
}

func darken(c color.RGBA, shade float64) color.RGBA {
	if shade == 0 {
		return c
	}
	k := 1 - shade
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: 255,
	}
}

// AverageColor returns the mean color of the photo, averaged in linear RGB.
// A placeholder returns its own color.
func (p *Photo) AverageColor() color.RGBA {
	if p.src == nil {
		return p.placeholder
	}
	b := p.src.Bounds()
	step := max(max(b.Dx(), b.Dy())/64, 1)

	var r, g, bl float64
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c, ok := colorful.MakeColor(p.src.At(x, y))
			if !ok {
				continue
			}
			lr, lg, lb := c.LinearRgb()
			r, g, bl = r+lr, g+lg, bl+lb
			n++
		}
	}
	if n == 0 {
		return p.placeholder
	}
	avg := colorful.LinearRgb(r/float64(n), g/float64(n), bl/float64(n)).Clamped()
	cr, cg, cb := avg.RGB255()
	return color.RGBA{R: cr, G: cg, B: cb, A: 255}
}
