package scroller

import (
	"image/color"
	"math"
)

const (
	// Exponent applied before saturation so the curve is flat at full collapse.
	saturationExponent = 1.1
	// Placeholders are tinted more slowly so they stay visible until the
	// intermediate point, where the blend reaches placeholderIntermediateAlpha.
	placeholderExponent          = 1.5
	placeholderIntermediateAlpha = 0.9
)

// Rect is an axis-aligned box in engine units.
type Rect struct {
	X, Y, W, H int
}

// CollapsedTitle is where the title sits when the header is fully collapsed.
type CollapsedTitle struct {
	StartMargin  int
	BottomMargin int
	// TextSize is the height of the collapsed title.
	TextSize int
}

// MeasureCollapsedTitle computes the collapsed title position from the
// header bounds and the bounds of the placeholder the title collapses into.
// textSize is the height of the title at full scale.
func MeasureCollapsedTitle(header, placeholder Rect, textSize int) CollapsedTitle {
	topToCenter := placeholder.Y + placeholder.H/2 - header.Y
	return CollapsedTitle{
		StartMargin:  placeholder.X - header.X,
		BottomMargin: topToCenter - textSize/2,
		TextSize:     placeholder.H,
	}
}

// TitleGeometry holds the title measurements taken once at first layout.
type TitleGeometry struct {
	Collapsed CollapsedTitle
	MaxMargin int
	// MaxTextSize is the title height at full scale.
	MaxTextSize int
}

// VisualInput is everything the visual parameters depend on.
type VisualInput struct {
	Limits
	Panel       PanelMode
	Header      int
	Transparent int
	Placeholder bool
	Tint        color.RGBA
	Title       TitleGeometry
	// HideGradient turns off the gradient under the title.
	HideGradient bool
}

// Visuals are the header presentation parameters for one scroll position.
type Visuals struct {
	Tint ColorMatrix
	// TintAlpha is how strongly the tint color is blended in.
	TintAlpha float64
	// Saturation of the photo before tinting.
	Saturation float64

	TitleScale        float64
	TitleStartMargin  int
	TitleBottomMargin int
	// TitleTop is the title's top edge measured from the top of the surface.
	TitleTop int

	// GradientAlpha is the opacity of the gradient under the title, 0-255.
	GradientAlpha int
	// Elevated is set when the header should cast a shadow on the content.
	Elevated bool
}

// Interpolate computes the visual parameters for the given input. It has no
// state: equal inputs yield equal outputs.
func Interpolate(in VisualInput) Visuals {
	var v Visuals
	v.Elevated = in.Panel == SinglePanel && in.Header <= in.MinHeader
	v.Tint, v.Saturation, v.TintAlpha, v.GradientAlpha = tint(in)
	v.TitleScale, v.TitleStartMargin, v.TitleBottomMargin = titleTransform(in)
	v.TitleTop = in.Transparent + in.Header - v.TitleBottomMargin - in.Title.MaxTextSize
	if in.HideGradient {
		v.GradientAlpha = 0
	}
	return v
}

// HeightRatio maps a header height onto [0, 1] between the portrait
// minimum and maximum.
func HeightRatio(l Limits, height int) float64 {
	span := l.MaxPortraitHeader - l.MinPortraitHeader
	if span <= 0 {
		return 1
	}
	return clampf(float64(height-l.MinPortraitHeader)/float64(span), 0, 1)
}

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func tint(in VisualInput) (m ColorMatrix, saturation, alpha float64, gradient int) {
	intermediate := HeightRatio(in.Limits, int(float64(in.MaxPortraitHeader)*intermediateHeaderRatio))
	if intermediate <= 0 {
		intermediate = math.SmallestNonzeroFloat64
	}
	// Two-panel headers never resize; they look like a portrait header at
	// its intermediate height.
	ratio := intermediate
	if in.Panel == SinglePanel {
		ratio = HeightRatio(in.Limits, in.Header)
	}

	linearBeforeMiddle := math.Max(1-(1-ratio)/intermediate, 0)
	semiLinear := math.Pow(linearBeforeMiddle, saturationExponent)

	m = SaturationMatrix(semiLinear).PostConcat(AlphaBlendMatrix(ratio, white))
	if in.Placeholder {
		alpha = 1 - math.Pow(placeholderLinear(ratio, intermediate), placeholderExponent)
		m = m.PostConcat(AlphaBlendMatrix(alpha, in.Tint))
	} else {
		alpha = 1 - semiLinear
		m = m.PostConcat(MultiplyBlendMatrix(in.Tint, alpha))
	}
	return m, semiLinear, alpha, int(255 * linearBeforeMiddle)
}

// placeholderLinear is the placeholder's linear collapse term, slowed so that
// 1 - placeholderLinear^placeholderExponent equals placeholderIntermediateAlpha
// when ratio equals intermediate.
func placeholderLinear(ratio, intermediate float64) float64 {
	target := 1 - math.Pow(1-placeholderIntermediateAlpha, 1/placeholderExponent)
	if intermediate >= 1 {
		return math.Max(1-(1-ratio)/intermediate, 0)
	}
	slowing := (1 - intermediate) / intermediate / target
	return math.Max(1-(1-ratio)/intermediate/slowing, 0)
}

// titleTransform returns the title scale and margins. Above twice the
// minimum header height the title is at full size and full margin.
func titleTransform(in VisualInput) (scale float64, start, bottom int) {
	maxMargin := in.Title.MaxMargin
	threshold := 2 * in.MinHeader
	if in.Panel == TwoPanel || in.Header >= threshold || threshold <= in.MinHeader {
		return 1, maxMargin, maxMargin
	}

	fraction := clampf(float64(in.Header-in.MinHeader)/float64(threshold-in.MinHeader), 0, 1)
	scale = 1
	if in.Title.MaxTextSize > 0 {
		minSize := float64(in.Title.Collapsed.TextSize)
		maxSize := float64(in.Title.MaxTextSize)
		scale = math.Min((minSize+(maxSize-minSize)*fraction)/maxSize, 1)
	}

	collapsed := in.Title.Collapsed
	start = int(float64(collapsed.StartMargin)*(1-fraction) + float64(maxMargin)*fraction)
	bottom = int(float64(collapsed.BottomMargin)*(1-fraction) + float64(maxMargin)*fraction)
	return scale, start, bottom
}
