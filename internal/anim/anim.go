// Package anim runs timed property animations on the UI frame loop.
package anim

import (
	"math"
	"time"

	"github.com/llehouerou/coverscroll/internal/scroller"
)

type animation struct {
	target     scroller.PropertyTarget
	prop       scroller.Property
	from, to   int
	start      time.Time
	duration   time.Duration
	interp     scroller.Interpolator
	onComplete func()
}

// Animator drives scroller properties from from to to over a duration.
// Starting an animation on a property that is already animating replaces
// the old one without running its completion callback.
type Animator struct {
	now     func() time.Time
	running []*animation
}

// New returns an animator reading the current time from now.
func New(now func() time.Time) *Animator {
	if now == nil {
		now = time.Now
	}
	return &Animator{now: now}
}

// AnimateValue starts an animation and applies its start value immediately.
func (a *Animator) AnimateValue(
	target scroller.PropertyTarget,
	p scroller.Property,
	from, to int,
	d time.Duration,
	in scroller.Interpolator,
	onComplete func(),
) {
	if in == nil {
		in = scroller.Linear
	}
	for i, r := range a.running {
		if r.target == target && r.prop == p {
			a.running = append(a.running[:i], a.running[i+1:]...)
			break
		}
	}
	a.running = append(a.running, &animation{
		target:     target,
		prop:       p,
		from:       from,
		to:         to,
		start:      a.now(),
		duration:   d,
		interp:     in,
		onComplete: onComplete,
	})
	target.SetProperty(p, from)
}

// Running reports whether any animation is in progress.
func (a *Animator) Running() bool {
	return len(a.running) > 0
}

// Tick advances every animation to now. Finished animations are removed
// before their callbacks run, so a callback may start new animations.
func (a *Animator) Tick(now time.Time) {
	if len(a.running) == 0 {
		return
	}
	current := a.running
	a.running = nil
	var done []*animation
	for _, r := range current {
		t := 1.0
		if r.duration > 0 {
			t = min(float64(now.Sub(r.start))/float64(r.duration), 1)
		}
		t = max(t, 0)
		v := r.from + int(math.Round(r.interp.Interpolation(t)*float64(r.to-r.from)))
		if t >= 1 {
			v = r.to
		}
		r.target.SetProperty(r.prop, v)
		if t >= 1 {
			done = append(done, r)
			continue
		}
		a.running = append(a.running, r)
	}
	for _, r := range done {
		if r.onComplete != nil {
			r.onComplete()
		}
	}
}
