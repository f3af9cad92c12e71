package scroller

import (
	"math"
	"time"
)

// GestureState is the pointer-interaction state of the engine.
type GestureState int

const (
	// Idle: no gesture and no motion in progress.
	Idle GestureState = iota
	// Dragging: the engine owns the pointer and follows it.
	Dragging
	// Settling: a fling, snap or scroll-off is running after release.
	Settling
)

func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

func (e *Engine) touchDisabled() bool {
	return !e.laidOut || e.touchDisabledForExit || e.touchDisabledForEntrance
}

// AcceptsInput reports whether pointer input is currently delivered to the
// engine. It is false before layout and while an exit or entrance runs.
func (e *Engine) AcceptsInput() bool {
	return !e.touchDisabled()
}

// ScrollStep moves the surface by delta without a gesture, as a mouse wheel
// does. Downward steps stop at the resting position instead of dismissing
// the surface, and upward steps stop at the upper bound.
func (e *Engine) ScrollStep(delta int) {
	if e.touchDisabled() || e.state == Dragging || delta == 0 {
		return
	}
	e.fling.ForceFinished(true)
	e.fullscreenDownwardsFling = false
	cur := e.Scroll()
	target := min(cur+delta, max(e.maxScrollUpwards(), cur))
	if delta < 0 {
		target = max(target, min(cur, 0))
	}
	if target != cur {
		e.ScrollTo(target)
	}
	e.settle()
}

// OnTouchDown starts a gesture. A down that lands while a fling or snap is
// still moving stops it and starts dragging immediately.
func (e *Engine) OnTouchDown(x, y float64, t time.Time) {
	if e.touchDisabled() {
		return
	}
	e.velocity.Clear()
	e.velocity.AddSample(t, y)
	e.last = point{x, y}
	if !e.fling.IsFinished() {
		e.startDrag()
		return
	}
	e.receivedDown = true
}

// OnTouchMove follows the pointer. Outside a drag, it starts one once the
// motion passes the touch slop and is more vertical than horizontal.
func (e *Engine) OnTouchMove(x, y float64, t time.Time) {
	if e.touchDisabled() {
		return
	}
	e.velocity.AddSample(t, y)
	if e.state != Dragging {
		if e.shouldStartDrag(x, y) {
			e.last = point{x, y}
			e.startDrag()
		}
		return
	}

	delta := e.last.y - y
	e.last = point{x, y}
	distanceFromMax := e.maxScrollUpwards() - e.Scroll()
	e.ScrollTo(e.Scroll() + int(math.Round(delta)))
	e.receivedDown = false

	if delta > float64(distanceFromMax) && e.regions.Viewport > 0 && e.width > 0 {
		e.edge.Pull(delta/float64(e.regions.Viewport), 1-x/float64(e.width))
	}
	if !e.edge.IsFinished() {
		e.surface.RequestFrame()
	}
}

// OnTouchUp ends a gesture. It returns true when the gesture was a click
// that never started a drag, so the host can deliver it to the view under
// the pointer.
func (e *Engine) OnTouchUp(x, y float64, t time.Time) bool {
	if e.touchDisabled() {
		return false
	}
	e.velocity.AddSample(t, y)
	if e.state != Dragging {
		click := e.receivedDown
		e.receivedDown = false
		return click
	}
	e.receivedDown = false
	e.stopDrag(false)
	return false
}

// OnTouchCancel abandons the gesture without flinging.
func (e *Engine) OnTouchCancel() {
	e.receivedDown = false
	if e.state == Dragging {
		e.stopDrag(true)
	}
}

func (e *Engine) shouldStartDrag(x, y float64) bool {
	dy := math.Abs(y - e.last.y)
	dx := math.Abs(x - e.last.x)
	return dy > float64(e.cfg.TouchSlop) && dx <= dy
}

func (e *Engine) startDrag() {
	e.state = Dragging
	e.fling.ForceFinished(true)
	e.fullscreenDownwardsFling = false
}

func (e *Engine) stopDrag(cancelled bool) {
	e.state = Settling
	flingDelta := 0
	if !cancelled {
		v := e.currentVelocity()
		if math.Abs(v) > e.cfg.MinFlingVelocity {
			e.startFling(-v)
			flingDelta = e.fling.Final() - e.fling.Start()
		}
	}
	e.onDragFinished(flingDelta)

	e.velocity.Clear()
	e.edge.Release()
	if !e.edge.IsFinished() {
		e.surface.RequestFrame()
	}
	e.settle()
}

func (e *Engine) currentVelocity() float64 {
	return e.velocity.Velocity(e.cfg.MaxFlingVelocity)
}

func (e *Engine) startFling(velocity float64) {
	e.fling.Fling(e.Scroll(), velocity, e.surface.Now(), -flingBound, flingBound)
	if velocity < 0 && e.IsFullscreen() {
		e.fullscreenDownwardsFling = true
	}
	e.surface.RequestFrame()
}

// onDragFinished snaps the surface to a rest position based on where the
// fling would land.
func (e *Engine) onDragFinished(flingDelta int) {
	if !e.snapToTop(flingDelta) {
		e.snapToBottom(flingDelta)
	}
}

// snapToTop closes the transparent spacer when the surface would otherwise
// come to rest partway across it.
func (e *Engine) snapToTop(flingDelta int) bool {
	scroll := e.scrollIgnoringOversizedHeader()
	required := e.regions.TransparentStart - scroll
	projected := -scroll - flingDelta
	if projected < 0 && projected > -e.regions.TransparentStart && required != 0 {
		e.fling.ForceFinished(true)
		e.smoothScrollBy(required)
		return true
	}
	return false
}

// snapToBottom dismisses the surface when it would come to rest below its
// resting entrance position.
func (e *Engine) snapToBottom(flingDelta int) bool {
	if -e.scrollIgnoringOversizedHeader()-flingDelta > 0 {
		e.ScrollOffBottom()
		return true
	}
	return false
}

func (e *Engine) settle() {
	if e.state == Settling && e.fling.IsFinished() && !e.exiting {
		e.state = Idle
	}
}
