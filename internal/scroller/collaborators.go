package scroller

import (
	"image/color"
	"time"
)

// Region identifies one of the engine-sized regions.
type Region int

const (
	RegionTransparent Region = iota
	RegionHeader
)

// Layout receives region extents whenever the engine changes them.
type Layout interface {
	SetSize(r Region, size int)
}

// Content is the scrollable list below the header.
type Content interface {
	// IntrinsicHeight is the full height of the content, including leftover space.
	IntrinsicHeight() int
	Offset() int
	// ScrollBy moves the content, clamping the offset to its own bounds.
	ScrollBy(delta int)
}

// Surface is the render loop hosting the engine.
type Surface interface {
	// RequestFrame asks for OnFrame to be called on the next frame.
	RequestFrame()
	Now() time.Time
	RefreshRate() float64
}

// Animator runs timed property animations on the render loop.
type Animator interface {
	AnimateValue(target PropertyTarget, p Property, from, to int, d time.Duration, in Interpolator, onComplete func())
}

// Image is the header photo.
type Image interface {
	SetTintTransform(m ColorMatrix)
	// IsPlaceholder reports whether the image is a flat-color placeholder.
	IsPlaceholder() bool
}

// HeaderView receives the computed header presentation.
type HeaderView interface {
	SetVisuals(v Visuals)
}

// EdgeEffect is the overscroll indicator at the upper scroll bound.
type EdgeEffect interface {
	// Pull stretches the indicator by amount, a fraction of the viewport,
	// at horizontal position origin in [0, 1].
	Pull(amount, origin float64)
	// Absorb takes the energy of a fling hitting the bound.
	Absorb(velocity int)
	Release()
	IsFinished() bool
	// SetTint recolors the indicator, keeping its own alpha.
	SetTint(c color.RGBA)
}

// VelocityTracker estimates pointer velocity from position samples.
type VelocityTracker interface {
	AddSample(t time.Time, pos float64)
	// Velocity returns units per second, clamped to ±maxVelocity.
	Velocity(maxVelocity float64) float64
	Clear()
}

// Listener is notified when the surface crosses scroll boundaries.
type Listener interface {
	OnScrolledOffBottom()
	OnStartScrollOffBottom()
	OnEnterFullscreen()
	OnExitFullscreen()
	// OnTransparentHeightChange reports 0 with the spacer open, 1 once closed.
	OnTransparentHeightChange(ratio float64)
}
