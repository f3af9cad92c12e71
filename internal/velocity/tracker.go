// Package velocity estimates pointer velocity from recent position samples.
package velocity

import (
	"math"
	"time"
)

const (
	// horizon is how far back samples count toward the estimate.
	horizon = 100 * time.Millisecond
	// assumeStopped drops the history when the pointer pauses this long.
	assumeStopped = 40 * time.Millisecond
	maxSamples    = 20
)

type sample struct {
	t   time.Time
	pos float64
}

// Tracker fits a line through the samples of the last 100ms and reports its
// slope. The zero value is ready to use.
type Tracker struct {
	samples []sample
}

// AddSample records the pointer position at t.
func (tr *Tracker) AddSample(t time.Time, pos float64) {
	if n := len(tr.samples); n > 0 && t.Sub(tr.samples[n-1].t) > assumeStopped {
		tr.samples = tr.samples[:0]
	}
	if len(tr.samples) == maxSamples {
		copy(tr.samples, tr.samples[1:])
		tr.samples = tr.samples[:maxSamples-1]
	}
	tr.samples = append(tr.samples, sample{t: t, pos: pos})
}

// Clear drops all samples.
func (tr *Tracker) Clear() {
	tr.samples = tr.samples[:0]
}

// Velocity returns units per second, clamped to ±limit. It is zero with
// fewer than two samples in the horizon.
func (tr *Tracker) Velocity(limit float64) float64 {
	n := len(tr.samples)
	if n < 2 {
		return 0
	}
	newest := tr.samples[n-1].t

	var sumT, sumP, sumTT, sumTP float64
	count := 0
	for i := n - 1; i >= 0; i-- {
		s := tr.samples[i]
		age := newest.Sub(s.t)
		if age > horizon {
			break
		}
		x := -age.Seconds()
		sumT += x
		sumP += s.pos
		sumTT += x * x
		sumTP += x * s.pos
		count++
	}
	if count < 2 {
		return 0
	}
	c := float64(count)
	denom := c*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	v := (c*sumTP - sumT*sumP) / denom
	if limit > 0 {
		v = math.Max(-limit, math.Min(v, limit))
	}
	return v
}
