package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/coverscroll/internal/scroller"
)

type valueTarget struct {
	values map[scroller.Property]int
	sets   int
}

func newValueTarget() *valueTarget {
	return &valueTarget{values: map[scroller.Property]int{}}
}

func (v *valueTarget) Property(p scroller.Property) int { return v.values[p] }
func (v *valueTarget) SetProperty(p scroller.Property, x int) {
	v.values[p] = x
	v.sets++
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAnimator_Linear(t *testing.T) {
	now := t0
	a := New(func() time.Time { return now })
	target := newValueTarget()
	completed := 0

	a.AnimateValue(target, scroller.PropertyScroll, 0, 100, 100*time.Millisecond, scroller.Linear, func() { completed++ })
	assert.Equal(t, 0, target.values[scroller.PropertyScroll])
	assert.True(t, a.Running())

	a.Tick(t0.Add(25 * time.Millisecond))
	assert.Equal(t, 25, target.values[scroller.PropertyScroll])

	a.Tick(t0.Add(150 * time.Millisecond))
	assert.Equal(t, 100, target.values[scroller.PropertyScroll])
	assert.Equal(t, 1, completed)
	assert.False(t, a.Running())

	a.Tick(t0.Add(200 * time.Millisecond))
	assert.Equal(t, 1, completed)
}

func TestAnimator_ReplacesSameProperty(t *testing.T) {
	a := New(func() time.Time { return t0 })
	target := newValueTarget()
	first := false

	a.AnimateValue(target, scroller.PropertyHeaderHeight, 0, 100, time.Second, nil, func() { first = true })
	a.AnimateValue(target, scroller.PropertyHeaderHeight, 50, 60, time.Second, nil, nil)
	a.AnimateValue(target, scroller.PropertyContentOffset, 10, 0, time.Second, nil, nil)

	a.Tick(t0.Add(2 * time.Second))
	assert.False(t, first)
	assert.Equal(t, 60, target.values[scroller.PropertyHeaderHeight])
	assert.Equal(t, 0, target.values[scroller.PropertyContentOffset])
}

func TestAnimator_CallbackMayChain(t *testing.T) {
	a := New(func() time.Time { return t0 })
	target := newValueTarget()

	a.AnimateValue(target, scroller.PropertyScroll, 0, 10, 10*time.Millisecond, nil, func() {
		a.AnimateValue(target, scroller.PropertyScroll, 10, 20, 10*time.Millisecond, nil, nil)
	})
	a.Tick(t0.Add(10 * time.Millisecond))

	require.True(t, a.Running())
	a.Tick(t0.Add(time.Second))
	assert.Equal(t, 20, target.values[scroller.PropertyScroll])
	assert.False(t, a.Running())
}

func TestAnimator_ZeroDurationCompletesOnFirstTick(t *testing.T) {
	a := New(func() time.Time { return t0 })
	target := newValueTarget()
	done := false

	a.AnimateValue(target, scroller.PropertyScroll, 5, 9, 0, nil, func() { done = true })
	a.Tick(t0)

	assert.True(t, done)
	assert.Equal(t, 9, target.values[scroller.PropertyScroll])
}
