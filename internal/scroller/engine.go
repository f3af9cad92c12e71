// Package scroller implements a composite scrolling surface: a transparent
// spacer, a shrinkable photo header and a scrollable content list that move
// together along a single scroll coordinate.
//
// The Engine owns the region sizes and is driven by pointer events and frame
// callbacks from its host. Everything runs on the host's render loop; the
// engine never blocks and is not safe for concurrent use.
package scroller

import (
	"image/color"
	"math"
	"time"
)

// Default timings and thresholds.
const (
	DefaultExitDuration     = 300 * time.Millisecond
	DefaultHeaderDuration   = 300 * time.Millisecond
	DefaultEntranceDuration = 300 * time.Millisecond
	DefaultTouchSlop        = 8
	DefaultMinFlingVelocity = 50.0
	DefaultMaxFlingVelocity = 8000.0
	defaultRefreshRate      = 60.0
	flingBound              = math.MaxInt32
)

// Config holds the fixed dimension inputs, read once at initialization.
type Config struct {
	MinHeader        int
	TransparentStart int
	TouchSlop        int
	MinFlingVelocity float64
	MaxFlingVelocity float64
	// Density converts engine units to device-independent units for the
	// fling friction model.
	Density    float64
	HeaderMode HeaderMode
	Panel      PanelMode
	// Tint is the header color blended over the photo as it collapses.
	Tint color.RGBA

	ExitDuration     time.Duration
	HeaderDuration   time.Duration
	EntranceDuration time.Duration
}

func (c Config) withDefaults() Config {
	if c.TouchSlop <= 0 {
		c.TouchSlop = DefaultTouchSlop
	}
	if c.MinFlingVelocity <= 0 {
		c.MinFlingVelocity = DefaultMinFlingVelocity
	}
	if c.MaxFlingVelocity <= 0 {
		c.MaxFlingVelocity = DefaultMaxFlingVelocity
	}
	if c.Density <= 0 {
		c.Density = 1
	}
	if c.ExitDuration <= 0 {
		c.ExitDuration = DefaultExitDuration
	}
	if c.HeaderDuration <= 0 {
		c.HeaderDuration = DefaultHeaderDuration
	}
	if c.EntranceDuration <= 0 {
		c.EntranceDuration = DefaultEntranceDuration
	}
	return c
}

// Deps are the collaborators the engine drives. Content, Surface and
// Animator are required; the rest default to no-ops.
type Deps struct {
	Layout   Layout
	Content  Content
	Surface  Surface
	Animator Animator
	Image    Image
	Header   HeaderView
	Edge     EdgeEffect
	Velocity VelocityTracker
}

// Engine maps pointer motion and animation ticks onto the three regions.
type Engine struct {
	cfg Config

	layout   Layout
	content  Content
	surface  Surface
	animator Animator
	image    Image
	header   HeaderView
	edge     EdgeEffect
	velocity VelocityTracker
	listener Listener

	laidOut bool
	width   int
	regions Regions
	title   TitleGeometry
	visuals Visuals
	fling   *Fling

	state        GestureState
	last         point
	receivedDown bool

	touchDisabledForExit     bool
	touchDisabledForEntrance bool
	fullscreenDownwardsFling bool
	exiting                  bool
	headerAnimating          bool
	hideGradient             bool
}

type point struct{ x, y float64 }

// New creates an engine. It does nothing until OnLayout is called.
func New(cfg Config, deps Deps, listener Listener) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:      cfg,
		layout:   deps.Layout,
		content:  deps.Content,
		surface:  deps.Surface,
		animator: deps.Animator,
		image:    deps.Image,
		header:   deps.Header,
		edge:     deps.Edge,
		velocity: deps.Velocity,
		listener: listener,
		fling:    NewFling(cfg.Density),
	}
	if e.layout == nil {
		e.layout = nopLayout{}
	}
	if e.image == nil {
		e.image = nopImage{}
	}
	if e.header == nil {
		e.header = nopHeader{}
	}
	if e.edge == nil {
		e.edge = nopEdge{}
	}
	if e.velocity == nil {
		e.velocity = nopVelocity{}
	}
	if cfg.Tint != (color.RGBA{}) {
		e.edge.SetTint(cfg.Tint)
	}
	return e
}

// OnLayout sets the surface size. The first call fixes the region limits
// from the header container width; later calls only update the viewport.
func (e *Engine) OnLayout(width, height int, title TitleGeometry) {
	e.width = width
	e.title = title
	if e.laidOut {
		e.regions.Viewport = height
		e.publish()
		return
	}
	limits := ComputeLimits(e.cfg.Panel, e.cfg.MinHeader, e.cfg.TransparentStart, width, height)
	e.regions = NewRegions(limits, e.cfg.HeaderMode, e.cfg.Panel, height)
	e.laidOut = true
	e.publish()
}

// LaidOut reports whether OnLayout has been called.
func (e *Engine) LaidOut() bool { return e.laidOut }

// Regions returns a copy of the current region state.
func (e *Engine) Regions() Regions { return e.regions }

// Visuals returns the most recently computed header presentation.
func (e *Engine) Visuals() Visuals { return e.visuals }

// State returns the gesture state.
func (e *Engine) State() GestureState { return e.state }

// Scroll returns the composite scroll coordinate.
func (e *Engine) Scroll() int {
	return e.regions.Scroll(e.content.Offset())
}

func (e *Engine) scrollIgnoringOversizedHeader() int {
	return e.regions.ScrollIgnoringOversizedHeader(e.content.Offset())
}

func (e *Engine) maxScrollUpwards() int {
	return e.regions.MaxScrollUpwards(e.content.IntrinsicHeight())
}

func (e *Engine) scrollUntilOffBottom() int {
	return e.regions.ScrollUntilOffBottom(e.content.Offset())
}

// IsFullscreen reports whether the transparent spacer is closed.
func (e *Engine) IsFullscreen() bool {
	return e.regions.Transparent <= 0
}

// SetLeftoverSpace sets how much of the content's intrinsic height is padding.
func (e *Engine) SetLeftoverSpace(h int) {
	e.regions.LeftoverSpace = max(h, 0)
}

// ScrollTo moves the surface so the composite scroll equals y.
func (e *Engine) ScrollTo(y int) {
	if !e.laidOut {
		return
	}
	wasFullscreen := e.IsFullscreen()
	e.regions.Distribute(y-e.Scroll(), e.content)
	e.publish()

	isFullscreen := e.IsFullscreen()
	if e.listener != nil {
		switch {
		case wasFullscreen && !isFullscreen:
			e.listener.OnExitFullscreen()
		case !wasFullscreen && isFullscreen:
			e.listener.OnEnterFullscreen()
		}
		if !isFullscreen || !wasFullscreen {
			e.listener.OnTransparentHeightChange(e.regions.TransparentRatio())
		}
	}
	if e.scrollUntilOffBottom() <= 0 {
		e.notifyScrolledOffBottom()
	}
}

// notifyScrolledOffBottom fires the terminal event once and releases the listener.
func (e *Engine) notifyScrolledOffBottom() {
	if e.listener == nil {
		return
	}
	l := e.listener
	e.listener = nil
	l.OnScrolledOffBottom()
}

// HeaderHeight returns the header height.
func (e *Engine) HeaderHeight() int { return e.regions.Header }

// SetHeaderHeight resizes the header directly, clamped to its limits.
func (e *Engine) SetHeaderHeight(h int) {
	if !e.laidOut {
		return
	}
	e.regions.Header = min(max(h, e.regions.MinHeader), e.regions.MaxHeader)
	e.publish()
}

// HeaderTint returns the color blended over the photo as it collapses.
func (e *Engine) HeaderTint() color.RGBA { return e.cfg.Tint }

// SetHeaderTint changes the header tint and recolors the edge effect.
func (e *Engine) SetHeaderTint(c color.RGBA) {
	e.cfg.Tint = c
	e.edge.SetTint(c)
	if e.laidOut {
		e.publish()
	}
}

// SetUseGradient shows or hides the gradient under the title.
func (e *Engine) SetUseGradient(use bool) {
	e.hideGradient = !use
	if e.laidOut {
		e.publish()
	}
}

func (e *Engine) publish() {
	e.layout.SetSize(RegionTransparent, e.regions.Transparent)
	e.layout.SetSize(RegionHeader, e.regions.Header)
	e.visuals = Interpolate(VisualInput{
		Limits:      e.regions.Limits,
		Panel:       e.regions.Panel,
		Header:      e.regions.Header,
		Transparent: e.regions.Transparent,
		Placeholder: e.image.IsPlaceholder(),
		Tint:        e.cfg.Tint,
		Title:       e.title,

		HideGradient: e.hideGradient,
	})
	e.image.SetTintTransform(e.visuals.Tint)
	e.header.SetVisuals(e.visuals)
}

// OnFrame advances any fling or snap in progress. The host calls it once
// per requested frame.
func (e *Engine) OnFrame() {
	now := e.surface.Now()
	if e.fling.ComputeOffset(now) {
		next := e.fling.Curr()
		bound := e.maxScrollUpwards()
		if next > bound && e.Scroll() < bound {
			e.edge.Absorb(int(e.fling.CurrVelocity(now)))
		}
		e.ScrollTo(next)

		if e.fullscreenDownwardsFling && e.regions.Transparent > 0 {
			// Stop once the top of the surface comes back on screen.
			e.ScrollTo(e.Scroll() + e.regions.Transparent)
			e.edge.Absorb(int(e.fling.CurrVelocity(now)))
			e.fling.ForceFinished(true)
			e.fullscreenDownwardsFling = false
		}
		if next >= bound {
			e.fling.ForceFinished(true)
			e.fullscreenDownwardsFling = false
		}
		if !e.fling.IsFinished() {
			e.surface.RequestFrame()
		}
	}
	if !e.edge.IsFinished() {
		e.surface.RequestFrame()
	}
	e.settle()
}

// ExpandCollapseHeader animates the header to the full square photo, or
// back to the intermediate height when it is already fully expanded.
// Requests made while the header is still animating are ignored.
func (e *Engine) ExpandCollapseHeader() {
	if !e.laidOut || e.headerAnimating {
		return
	}
	h := e.regions.Header
	switch {
	case h != e.regions.MaxHeader:
		e.headerAnimating = true
		e.animator.AnimateValue(e, PropertyHeaderHeight, h, e.regions.MaxHeader,
			e.cfg.HeaderDuration, AccelerateDecelerate, e.headerAnimationEnded)
		if off := e.content.Offset(); off != 0 {
			e.animator.AnimateValue(e, PropertyContentOffset, off, 0,
				e.cfg.HeaderDuration, AccelerateDecelerate, nil)
		}
	case h != e.regions.MinHeader:
		e.headerAnimating = true
		e.animator.AnimateValue(e, PropertyHeaderHeight, h, e.regions.IntermediateHeader,
			e.cfg.HeaderDuration, AccelerateDecelerate, e.headerAnimationEnded)
	}
}

func (e *Engine) headerAnimationEnded() { e.headerAnimating = false }

// HeaderAnimating reports whether an expand or collapse is in progress.
func (e *Engine) HeaderAnimating() bool { return e.headerAnimating }

// PrepareForShrinkingContent grows the header into the space that will
// open up when the content shrinks by heightDelta, so the surface does not
// jump.
func (e *Engine) PrepareForShrinkingContent(heightDelta int) {
	if !e.laidOut || e.regions.Panel == TwoPanel {
		return
	}
	empty := -e.regions.OverflowingContent(e.content.IntrinsicHeight()) + heightDelta
	if empty <= 0 {
		return
	}
	h := e.regions.Header
	desired := min(h+empty, e.regions.MaxScrollableHeader())
	if desired == h {
		return
	}
	// Replaces any expand or collapse in progress.
	e.headerAnimating = false
	e.animator.AnimateValue(e, PropertyHeaderHeight, h, desired,
		e.cfg.HeaderDuration, AccelerateDecelerate, nil)
}

// ScrollOffBottom animates the whole surface down out of the viewport,
// continuing at the pointer's release velocity.
func (e *Engine) ScrollOffBottom() {
	if !e.laidOut || e.exiting {
		return
	}
	e.touchDisabledForExit = true
	distance := e.scrollUntilOffBottom()
	interp := NewAcceleratingFling(e.cfg.ExitDuration, e.currentVelocity(), distance, e.surface.RefreshRate())
	e.fling.ForceFinished(true)
	e.fullscreenDownwardsFling = false
	e.state = Settling
	e.exiting = true

	start := e.Scroll()
	e.animator.AnimateValue(e, PropertyScroll, start, start-distance, e.cfg.ExitDuration, interp, e.scrollOffBottomEnded)
	if e.listener != nil {
		e.listener.OnStartScrollOffBottom()
	}
}

func (e *Engine) scrollOffBottomEnded() {
	// Rounding can leave the surface a unit short of the bottom.
	if e.scrollUntilOffBottom() > 0 {
		e.notifyScrolledOffBottom()
	}
	e.exiting = false
	e.state = Idle
}

// ScrollUpForEntrance slides the surface in from the bottom of the viewport.
// With fromCurrent it returns to the current position, otherwise it goes on
// to close the transparent spacer.
func (e *Engine) ScrollUpForEntrance(fromCurrent bool) {
	if !e.laidOut {
		return
	}
	current := e.Scroll()
	bottom := current - (e.regions.Viewport - e.regions.Transparent) + 1
	desired := current + e.regions.Transparent
	if fromCurrent {
		desired = current + current
	}
	e.touchDisabledForEntrance = true
	e.animator.AnimateValue(e, PropertyScroll, bottom, desired, e.cfg.EntranceDuration, LinearOutSlowIn, func() {
		e.touchDisabledForEntrance = false
	})
}

// smoothScrollBy starts a short programmatic scroll. A zero delta is a
// caller bug.
func (e *Engine) smoothScrollBy(delta int) {
	if delta == 0 {
		panic("scroller: smooth scroll by a zero delta")
	}
	e.fling.StartScroll(e.Scroll(), delta, e.surface.Now(), 0)
	e.state = Settling
	e.surface.RequestFrame()
}

type nopLayout struct{}

func (nopLayout) SetSize(Region, int) {}

type nopImage struct{}

func (nopImage) SetTintTransform(ColorMatrix) {}
func (nopImage) IsPlaceholder() bool          { return false }

type nopHeader struct{}

func (nopHeader) SetVisuals(Visuals) {}

type nopEdge struct{}

func (nopEdge) Pull(float64, float64) {}
func (nopEdge) Absorb(int)            {}
func (nopEdge) Release()              {}
func (nopEdge) IsFinished() bool      { return true }
func (nopEdge) SetTint(color.RGBA)    {}

type nopVelocity struct{}

func (nopVelocity) AddSample(time.Time, float64) {}
func (nopVelocity) Velocity(float64) float64     { return 0 }
func (nopVelocity) Clear()                       {}
