package scroller

import (
	"math"
	"time"
)

// Spline fling constants.
const (
	inflexion       = 0.35
	startTension    = 0.5
	endTension      = 1.0
	splineP1        = startTension * inflexion
	splineP2        = 1.0 - endTension*(1.0-inflexion)
	splineSamples   = 100
	gravityEarth    = 9.80665
	inchesPerMeter  = 39.37
	scrollFriction  = 0.015
	defaultDuration = 250 * time.Millisecond
)

var (
	decelerationRate = math.Log(0.78) / math.Log(0.9)
	splinePosition   [splineSamples + 1]float64
)

func init() {
	xMin := 0.0
	for i := range splineSamples {
		alpha := float64(i) / splineSamples
		xMax := 1.0
		var x, coef float64
		for {
			x = xMin + (xMax-xMin)/2
			coef = 3 * x * (1 - x)
			tx := coef*((1-x)*splineP1+x*splineP2) + x*x*x
			if math.Abs(tx-alpha) < 1e-5 {
				break
			}
			if tx > alpha {
				xMax = x
			} else {
				xMin = x
			}
		}
		splinePosition[i] = coef*((1-x)*startTension+x) + x*x*x
	}
	splinePosition[splineSamples] = 1
}

type flingMode int

const (
	scrollMode flingMode = iota
	flingingMode
)

// Fling animates a single coordinate, either as a decelerating fling or as a
// fixed-duration scroll. It is advanced by calling ComputeOffset once per frame.
type Fling struct {
	mode     flingMode
	finished bool

	start    int
	final    int
	curr     int
	minPos   int
	maxPos   int
	distance int

	startTime time.Time
	duration  time.Duration

	velocity     float64
	currVelocity float64
	deceleration float64
	physCoeff    float64
	interp       Interpolator
}

// NewFling returns a finished Fling for a display of the given density,
// where density is device-independent units per engine unit.
func NewFling(density float64) *Fling {
	if density <= 0 {
		density = 1
	}
	ppi := density * 160
	return &Fling{
		finished:     true,
		physCoeff:    gravityEarth * inchesPerMeter * ppi * 0.84,
		deceleration: gravityEarth * inchesPerMeter * ppi * scrollFriction,
		interp:       ViscousFluid,
	}
}

// IsFinished reports whether the animation has ended.
func (f *Fling) IsFinished() bool { return f.finished }

// ForceFinished stops the animation where it is.
func (f *Fling) ForceFinished(finished bool) { f.finished = finished }

// Abort stops the animation and jumps to the final position.
func (f *Fling) Abort() {
	f.curr = f.final
	f.finished = true
}

// Curr returns the current position.
func (f *Fling) Curr() int { return f.curr }

// Start returns the starting position.
func (f *Fling) Start() int { return f.start }

// Final returns where the animation will end.
func (f *Fling) Final() int { return f.final }

// CurrVelocity returns the current speed in units per second.
func (f *Fling) CurrVelocity(now time.Time) float64 {
	if f.mode == flingingMode {
		return f.currVelocity
	}
	elapsed := now.Sub(f.startTime).Seconds()
	return f.velocity - f.deceleration*elapsed/2
}

// StartScroll animates from start by delta over duration, easing with the
// viscous fluid curve. A zero duration uses the default.
func (f *Fling) StartScroll(start, delta int, now time.Time, duration time.Duration) {
	if duration <= 0 {
		duration = defaultDuration
	}
	f.mode = scrollMode
	f.finished = false
	f.duration = duration
	f.startTime = now
	f.start = start
	f.curr = start
	f.final = start + delta
	f.minPos = math.MinInt
	f.maxPos = math.MaxInt
	f.velocity = 0
}

// Fling starts a fling from start at velocity units per second, bounded by [minPos, maxPos].
func (f *Fling) Fling(start int, velocity float64, now time.Time, minPos, maxPos int) {
	f.mode = flingingMode
	f.finished = false
	f.velocity = velocity
	f.currVelocity = velocity
	f.startTime = now
	f.start = start
	f.curr = start
	f.minPos = minPos
	f.maxPos = maxPos
	f.duration = 0
	f.distance = 0
	f.final = start

	speed := math.Abs(velocity)
	if speed == 0 {
		f.finished = true
		return
	}
	f.duration = f.splineDuration(speed)
	if f.duration <= 0 {
		f.finished = true
		return
	}
	total := f.splineDistance(speed)
	sign := 1.0
	if velocity < 0 {
		sign = -1
	}
	f.distance = int(total * sign)
	final := float64(start) + math.Round(total*sign)
	f.final = int(clampf(final, float64(minPos), float64(maxPos)))
}

func (f *Fling) splineDeceleration(speed float64) float64 {
	return math.Log(inflexion * speed / (scrollFriction * f.physCoeff))
}

func (f *Fling) splineDuration(speed float64) time.Duration {
	l := f.splineDeceleration(speed)
	ms := 1000 * math.Exp(l/(decelerationRate-1))
	return time.Duration(ms) * time.Millisecond
}

func (f *Fling) splineDistance(speed float64) float64 {
	l := f.splineDeceleration(speed)
	return scrollFriction * f.physCoeff * math.Exp(decelerationRate/(decelerationRate-1)*l)
}

// ComputeOffset advances the animation to now. It returns false once the
// animation had already finished before this call.
func (f *Fling) ComputeOffset(now time.Time) bool {
	if f.finished {
		return false
	}
	elapsed := now.Sub(f.startTime)
	if elapsed >= f.duration {
		f.curr = f.final
		f.currVelocity = 0
		f.finished = true
		return true
	}

	t := float64(elapsed) / float64(f.duration)
	switch f.mode {
	case scrollMode:
		x := f.interp.Interpolation(t)
		f.curr = f.start + int(math.Round(x*float64(f.final-f.start)))
	case flingingMode:
		index := int(splineSamples * t)
		distanceCoef, velocityCoef := 1.0, 0.0
		if index < splineSamples {
			tInf := float64(index) / splineSamples
			tSup := float64(index+1) / splineSamples
			dInf := splinePosition[index]
			dSup := splinePosition[index+1]
			velocityCoef = (dSup - dInf) / (tSup - tInf)
			distanceCoef = dInf + (t-tInf)*velocityCoef
		}
		f.currVelocity = velocityCoef * float64(f.distance) / float64(f.duration.Milliseconds()) * 1000
		curr := f.start + int(math.Round(distanceCoef*float64(f.final-f.start)))
		f.curr = min(max(curr, f.minPos), f.maxPos)
		if f.curr == f.final {
			f.finished = true
		}
	}
	return true
}
