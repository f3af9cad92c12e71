package scroller

import (
	"math"
	"time"
)

// Interpolator maps animation progress t in [0, 1] to eased progress.
type Interpolator interface {
	Interpolation(t float64) float64
}

// InterpolatorFunc adapts a function to Interpolator.
type InterpolatorFunc func(t float64) float64

// Interpolation calls f(t).
func (f InterpolatorFunc) Interpolation(t float64) float64 { return f(t) }

// Linear is the identity interpolator.
var Linear = InterpolatorFunc(func(t float64) float64 { return t })

// LinearOutSlowIn starts at full speed and decelerates into the end value.
var LinearOutSlowIn = NewCubicBezier(0, 0, 0.2, 1)

// CubicBezier eases along a cubic bezier from (0,0) to (1,1) with control
// points (x1,y1) and (x2,y2).
type CubicBezier struct {
	x1, y1, x2, y2 float64
}

// NewCubicBezier returns the bezier interpolator for the given control points.
func NewCubicBezier(x1, y1, x2, y2 float64) CubicBezier {
	return CubicBezier{x1: x1, y1: y1, x2: x2, y2: y2}
}

func bezier(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

// Interpolation solves x(s) = t by bisection and returns y(s).
func (c CubicBezier) Interpolation(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	lo, hi := 0.0, 1.0
	s := t
	for range 40 {
		x := bezier(s, c.x1, c.x2)
		if math.Abs(x-t) < 1e-6 {
			break
		}
		if x > t {
			hi = s
		} else {
			lo = s
		}
		s = (lo + hi) / 2
	}
	return bezier(s, c.y1, c.y2)
}

const viscousFluidScale = 8.0

var viscousFluidNormalize = 1 / viscousFluidRaw(1)

func viscousFluidRaw(x float64) float64 {
	x *= viscousFluidScale
	if x < 1 {
		return x - (1 - math.Exp(-x))
	}
	start := 0.36787944117 // 1/e
	x = 1 - math.Exp(1-x)
	return start + x*(1-start)
}

// ViscousFluid is the default easing for programmatic scrolls.
var ViscousFluid = InterpolatorFunc(func(t float64) float64 {
	return viscousFluidRaw(t) * viscousFluidNormalize
})

// AcceleratingFling accelerates toward the end of an animation while
// starting at the speed of the released pointer, so a scroll-off continues
// the user's motion without a visible jump in speed.
type AcceleratingFling struct {
	pxPerFrame float64
	frames     float64
	delta      float64
}

// NewAcceleratingFling builds the interpolator for an animation of duration
// covering totalDelta units, starting at startVelocity units per second on a
// display refreshing refreshRate times per second.
func NewAcceleratingFling(duration time.Duration, startVelocity float64, totalDelta int, refreshRate float64) AcceleratingFling {
	if refreshRate <= 0 {
		refreshRate = defaultRefreshRate
	}
	// Frame interval is whole milliseconds.
	frameMs := math.Trunc(1000 / refreshRate)
	if frameMs < 1 {
		frameMs = 1
	}
	return AcceleratingFling{
		pxPerFrame: startVelocity / refreshRate,
		frames:     float64(duration.Milliseconds()) / frameMs,
		delta:      float64(totalDelta),
	}
}

// Interpolation adds the linear motion at the starting speed to a quadratic
// acceleration, capped at 1. When the start velocity points away from the
// target, the quadratic term grows faster to compensate.
func (a AcceleratingFling) Interpolation(t float64) float64 {
	linear := 0.0
	if a.delta != 0 {
		linear = a.frames * t * a.pxPerFrame / a.delta
	}
	if a.pxPerFrame >= 0 {
		return math.Min(t*t+linear, 1)
	}
	return math.Min(t*(t-linear)+linear, 1)
}

// AccelerateDecelerate starts and ends slowly, fastest in the middle.
var AccelerateDecelerate = InterpolatorFunc(func(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
})
