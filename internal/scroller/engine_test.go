package scroller

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listContent clamps its offset to what does not fit below the header.
type listContent struct {
	height  int
	offset  int
	visible func() int
}

func (c *listContent) IntrinsicHeight() int { return c.height }
func (c *listContent) Offset() int          { return c.offset }
func (c *listContent) ScrollBy(delta int) {
	maxOffset := max(c.height-c.visible(), 0)
	c.offset = min(max(c.offset+delta, 0), maxOffset)
}

type manualSurface struct {
	now    time.Time
	frames int
}

func (s *manualSurface) RequestFrame()        { s.frames++ }
func (s *manualSurface) Now() time.Time       { return s.now }
func (s *manualSurface) RefreshRate() float64 { return 60 }

type animation struct {
	target     PropertyTarget
	prop       Property
	from, to   int
	d          time.Duration
	in         Interpolator
	onComplete func()
}

// recordingAnimator queues animations until finish is called.
type recordingAnimator struct {
	pending []animation
	started []animation
	// short ends each animation this many units before its target.
	short int
}

func (a *recordingAnimator) AnimateValue(target PropertyTarget, p Property, from, to int, d time.Duration, in Interpolator, onComplete func()) {
	anim := animation{target, p, from, to, d, in, onComplete}
	a.pending = append(a.pending, anim)
	a.started = append(a.started, anim)
	target.SetProperty(p, from)
}

func (a *recordingAnimator) finish() {
	pending := a.pending
	a.pending = nil
	for _, anim := range pending {
		to := anim.to
		switch {
		case anim.to < anim.from:
			to += a.short
		case anim.to > anim.from:
			to -= a.short
		}
		anim.target.SetProperty(anim.prop, to)
		if anim.onComplete != nil {
			anim.onComplete()
		}
	}
}

type recordingListener struct {
	offBottom      int
	startOffBottom int
	enter          int
	exit           int
	ratios         []float64
}

func (l *recordingListener) OnScrolledOffBottom()    { l.offBottom++ }
func (l *recordingListener) OnStartScrollOffBottom() { l.startOffBottom++ }
func (l *recordingListener) OnEnterFullscreen()      { l.enter++ }
func (l *recordingListener) OnExitFullscreen()       { l.exit++ }
func (l *recordingListener) OnTransparentHeightChange(r float64) {
	l.ratios = append(l.ratios, r)
}

type recordingEdge struct {
	pulls    []float64
	absorbs  []int
	tints    []color.RGBA
	releases int
	active   bool
}

func (e *recordingEdge) Pull(amount, _ float64) {
	e.pulls = append(e.pulls, amount)
	e.active = true
}

func (e *recordingEdge) Absorb(v int) {
	e.absorbs = append(e.absorbs, v)
	e.active = true
}

func (e *recordingEdge) Release()         { e.releases++; e.active = false }
func (e *recordingEdge) IsFinished() bool { return !e.active }
func (e *recordingEdge) SetTint(c color.RGBA) { e.tints = append(e.tints, c) }

type fixedVelocity struct{ v float64 }

func (f *fixedVelocity) AddSample(time.Time, float64) {}
func (f *fixedVelocity) Velocity(limit float64) float64 {
	return min(max(f.v, -limit), limit)
}
func (f *fixedVelocity) Clear() {}

type recordingLayout struct {
	sizes map[Region]int
}

func (l *recordingLayout) SetSize(r Region, size int) { l.sizes[r] = size }

type recordingHeader struct {
	visuals []Visuals
}

func (h *recordingHeader) SetVisuals(v Visuals) { h.visuals = append(h.visuals, v) }

type harness struct {
	engine   *Engine
	content  *listContent
	surface  *manualSurface
	animator *recordingAnimator
	listener *recordingListener
	edge     *recordingEdge
	velocity *fixedVelocity
	layout   *recordingLayout
	header   *recordingHeader
}

func newHarness(t *testing.T, contentHeight int, mode HeaderMode, panel PanelMode) *harness {
	t.Helper()
	h := &harness{
		content:  &listContent{height: contentHeight},
		surface:  &manualSurface{now: epoch},
		animator: &recordingAnimator{},
		listener: &recordingListener{},
		edge:     &recordingEdge{},
		velocity: &fixedVelocity{},
		layout:   &recordingLayout{sizes: map[Region]int{}},
		header:   &recordingHeader{},
	}
	cfg := Config{
		MinHeader:        40,
		TransparentStart: 100,
		HeaderMode:       mode,
		Panel:            panel,
		Tint:             color.RGBA{R: 40, G: 90, B: 200, A: 255},
	}
	h.engine = New(cfg, Deps{
		Layout:   h.layout,
		Content:  h.content,
		Surface:  h.surface,
		Animator: h.animator,
		Header:   h.header,
		Edge:     h.edge,
		Velocity: h.velocity,
	}, h.listener)
	h.content.visible = func() int {
		if panel == TwoPanel {
			return 400
		}
		return 400 - h.engine.HeaderHeight()
	}
	h.engine.OnLayout(200, 400, TitleGeometry{MaxMargin: 16, MaxTextSize: 20})
	return h
}

// drag moves the pointer from y0 to y1, starting a drag on the first step.
func (h *harness) drag(y0, y1 float64) {
	e := h.engine
	e.OnTouchDown(100, y0, h.surface.now)
	step := 10.0
	if y1 < y0 {
		step = -10
	}
	e.OnTouchMove(100, y0+step, h.surface.now)
	e.OnTouchMove(100, y1, h.surface.now)
}

// runFrames advances the clock in 16ms steps until the engine settles.
func (h *harness) runFrames() {
	for range 1000 {
		h.surface.now = h.surface.now.Add(16 * time.Millisecond)
		h.engine.OnFrame()
		if h.engine.State() == Idle {
			return
		}
	}
}

func TestEngine_Layout(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)

	assert.True(t, h.engine.LaidOut())
	assert.Equal(t, 100, h.layout.sizes[RegionTransparent])
	assert.Equal(t, 100, h.layout.sizes[RegionHeader])
	assert.Equal(t, 0, h.engine.Scroll())
	assert.NotEmpty(t, h.header.visuals)
	assert.Equal(t, Idle, h.engine.State())
}

func TestEngine_IgnoresInputBeforeLayout(t *testing.T) {
	e := New(Config{MinHeader: 40}, Deps{
		Content:  &listContent{height: 10, visible: func() int { return 10 }},
		Surface:  &manualSurface{now: epoch},
		Animator: &recordingAnimator{},
	}, nil)

	e.OnTouchDown(0, 0, epoch)
	assert.False(t, e.OnTouchUp(0, 0, epoch))
	e.ScrollTo(50)
	assert.False(t, e.LaidOut())
}

func TestEngine_DragClosesTransparent(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)

	h.drag(300, 260)

	r := h.engine.Regions()
	assert.Equal(t, Dragging, h.engine.State())
	assert.Equal(t, 70, r.Transparent)
	assert.Equal(t, 100, r.Header)
	assert.Equal(t, 30, h.engine.Scroll())
	assert.Equal(t, 70, h.layout.sizes[RegionTransparent])
}

func TestEngine_SlowReleaseSnapsToTop(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	h.drag(300, 260)

	click := h.engine.OnTouchUp(100, 260, h.surface.now)

	assert.False(t, click)
	assert.Equal(t, Settling, h.engine.State())
	assert.Equal(t, 100, h.engine.fling.Final())

	h.runFrames()
	assert.Equal(t, Idle, h.engine.State())
	assert.Equal(t, 100, h.engine.Scroll())
	assert.Equal(t, 0, h.engine.Regions().Transparent)
	assert.True(t, h.engine.IsFullscreen())
	assert.Equal(t, 1, h.listener.enter)
	assert.InDelta(t, 1.0, h.listener.ratios[len(h.listener.ratios)-1], 1e-9)
}

func TestEngine_ReleaseBelowRestScrollsOffBottom(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	h.drag(100, 150)
	require.Equal(t, -40, h.engine.Scroll())

	h.engine.OnTouchUp(100, 150, h.surface.now)

	assert.Equal(t, 1, h.listener.startOffBottom)
	assert.Equal(t, 0, h.listener.offBottom)
	require.Len(t, h.animator.pending, 1)
	anim := h.animator.pending[0]
	assert.Equal(t, PropertyScroll, anim.prop)
	assert.Equal(t, -40, anim.from)
	assert.Equal(t, -40-260, anim.to)
	assert.Equal(t, DefaultExitDuration, anim.d)
	assert.IsType(t, AcceleratingFling{}, anim.in)

	// Touch is ignored while leaving.
	h.engine.OnTouchDown(100, 100, h.surface.now)
	assert.False(t, h.engine.OnTouchUp(100, 100, h.surface.now))

	h.animator.finish()
	assert.Equal(t, 1, h.listener.offBottom)
	assert.Equal(t, Idle, h.engine.State())

	// A second request does nothing once the listener has been released.
	h.engine.ScrollOffBottom()
	h.animator.finish()
	assert.Equal(t, 1, h.listener.offBottom)
	assert.Equal(t, 1, h.listener.startOffBottom)
}

func TestEngine_ScrollOffBottomFiresWhenAnimationEndsShort(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	h.animator.short = 1

	h.engine.ScrollOffBottom()
	h.animator.finish()

	assert.Equal(t, 1, h.listener.startOffBottom)
	assert.Equal(t, 1, h.listener.offBottom)
}

func TestEngine_ClickPassesThrough(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	e := h.engine

	e.OnTouchDown(50, 200, h.surface.now)
	e.OnTouchMove(52, 203, h.surface.now)
	assert.True(t, e.OnTouchUp(52, 203, h.surface.now))

	h.drag(300, 260)
	assert.False(t, e.OnTouchUp(100, 260, h.surface.now))
}

func TestEngine_HorizontalMotionDoesNotDrag(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	e := h.engine

	e.OnTouchDown(50, 200, h.surface.now)
	e.OnTouchMove(90, 180, h.surface.now)

	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 0, e.Scroll())
}

func TestEngine_FlingAndTouchDownStopsIt(t *testing.T) {
	h := newHarness(t, 2000, IntermediateMode, SinglePanel)
	h.drag(300, 0)
	require.Equal(t, 290, h.engine.Scroll())

	h.velocity.v = -3000
	h.engine.OnTouchUp(100, 0, h.surface.now)
	require.Equal(t, Settling, h.engine.State())
	require.False(t, h.engine.fling.IsFinished())

	h.surface.now = h.surface.now.Add(16 * time.Millisecond)
	h.engine.OnFrame()
	moved := h.engine.Scroll()
	assert.Greater(t, moved, 290)

	h.engine.OnTouchDown(100, 200, h.surface.now)
	assert.Equal(t, Dragging, h.engine.State())
	assert.True(t, h.engine.fling.IsFinished())
	assert.Equal(t, moved, h.engine.Scroll())
}

func TestEngine_FlingStopsAtUpperBound(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	h.drag(300, 100)
	bound := h.engine.maxScrollUpwards()
	require.Equal(t, 400, bound)

	h.velocity.v = -8000
	h.engine.OnTouchUp(100, 100, h.surface.now)
	h.runFrames()

	assert.Equal(t, bound, h.engine.Scroll())
	assert.Len(t, h.edge.absorbs, 1)
	assert.Positive(t, h.edge.absorbs[0])
	assert.Equal(t, Idle, h.engine.State())
}

func TestEngine_OverscrollPullsEdge(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	h.drag(500, 0)
	require.Equal(t, 400, h.engine.Scroll())
	framesBefore := h.surface.frames

	h.engine.OnTouchMove(100, -40, h.surface.now)

	assert.Equal(t, 400, h.engine.Scroll())
	require.NotEmpty(t, h.edge.pulls)
	assert.InDelta(t, 40.0/400, h.edge.pulls[len(h.edge.pulls)-1], 1e-9)
	assert.Greater(t, h.surface.frames, framesBefore)

	h.engine.OnTouchUp(100, -40, h.surface.now)
	assert.Equal(t, 1, h.edge.releases)
}

func TestEngine_FullscreenCallbacks(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)

	h.engine.ScrollTo(100)
	assert.Equal(t, 1, h.listener.enter)
	assert.Equal(t, 0, h.listener.exit)

	h.engine.ScrollTo(200)
	assert.Equal(t, 1, h.listener.enter)
	ratios := len(h.listener.ratios)

	h.engine.ScrollTo(50)
	assert.Equal(t, 1, h.listener.exit)
	assert.Len(t, h.listener.ratios, ratios+1)
	assert.InDelta(t, 0.5, h.listener.ratios[ratios], 1e-9)
}

func TestEngine_ExpandCollapseHeader(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	e := h.engine

	e.ExpandCollapseHeader()
	require.Len(t, h.animator.pending, 1)
	assert.Equal(t, PropertyHeaderHeight, h.animator.pending[0].prop)
	assert.Equal(t, 200, h.animator.pending[0].to)
	h.animator.finish()
	assert.Equal(t, 200, e.HeaderHeight())
	assert.Equal(t, -100, e.Scroll())

	e.ExpandCollapseHeader()
	require.Len(t, h.animator.pending, 1)
	assert.Equal(t, 100, h.animator.pending[0].to)
	h.animator.finish()
	assert.Equal(t, 100, e.HeaderHeight())
}

func TestEngine_ExpandCollapseIgnoredWhileAnimating(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	e := h.engine

	e.ExpandCollapseHeader()
	assert.True(t, e.HeaderAnimating())
	e.ExpandCollapseHeader()
	e.ExpandCollapseHeader()
	require.Len(t, h.animator.pending, 1)

	h.animator.finish()
	assert.False(t, e.HeaderAnimating())
	assert.Equal(t, 200, e.HeaderHeight())

	e.ExpandCollapseHeader()
	require.Len(t, h.animator.pending, 1)
	assert.Equal(t, 100, h.animator.pending[0].to)
}

func TestEngine_ExpandResetsContentOffset(t *testing.T) {
	h := newHarness(t, 2000, IntermediateMode, SinglePanel)
	h.engine.ScrollTo(300)
	require.Equal(t, 140, h.content.offset)

	h.engine.ExpandCollapseHeader()
	require.Len(t, h.animator.pending, 2)
	assert.Equal(t, PropertyContentOffset, h.animator.pending[1].prop)

	h.animator.finish()
	assert.Equal(t, 0, h.content.offset)
	assert.Equal(t, 200, h.engine.HeaderHeight())
}

func TestEngine_ExpandCollapseTwoPanelDoesNothing(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, TwoPanel)
	h.engine.ExpandCollapseHeader()
	assert.Empty(t, h.animator.started)
}

func TestEngine_PrepareForShrinkingContent(t *testing.T) {
	h := newHarness(t, 600, OpenSquareMode, SinglePanel)
	h.engine.SetHeaderHeight(150)

	h.engine.PrepareForShrinkingContent(400)

	require.Len(t, h.animator.pending, 1)
	anim := h.animator.pending[0]
	assert.Equal(t, PropertyHeaderHeight, anim.prop)
	assert.Equal(t, 150, anim.from)
	assert.Equal(t, 200, anim.to)

	h.animator.pending = nil
	h.engine.PrepareForShrinkingContent(100)
	assert.Empty(t, h.animator.pending)
}

func TestEngine_PrepareForShrinkingContentTwoPanel(t *testing.T) {
	h := newHarness(t, 600, OpenSquareMode, TwoPanel)
	h.engine.PrepareForShrinkingContent(1000)
	assert.Empty(t, h.animator.started)
}

func TestEngine_ScrollUpForEntrance(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)

	h.engine.ScrollUpForEntrance(false)

	require.Len(t, h.animator.pending, 1)
	anim := h.animator.pending[0]
	assert.Equal(t, -299, anim.from)
	assert.Equal(t, 100, anim.to)
	assert.Equal(t, DefaultEntranceDuration, anim.d)
	assert.Equal(t, 0, h.listener.offBottom)

	h.engine.OnTouchDown(100, 100, h.surface.now)
	assert.False(t, h.engine.OnTouchUp(100, 100, h.surface.now))

	h.animator.finish()
	assert.Equal(t, 100, h.engine.Scroll())
	h.engine.OnTouchDown(100, 100, h.surface.now)
	assert.True(t, h.engine.OnTouchUp(100, 100, h.surface.now))
}

func TestEngine_SmoothScrollByZeroPanics(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	assert.Panics(t, func() { h.engine.smoothScrollBy(0) })
}

func TestEngine_SetHeaderHeightClamps(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)

	h.engine.SetHeaderHeight(5)
	assert.Equal(t, 40, h.engine.HeaderHeight())

	h.engine.SetHeaderHeight(900)
	assert.Equal(t, 200, h.engine.HeaderHeight())
}

func TestEngine_Property(t *testing.T) {
	h := newHarness(t, 2000, IntermediateMode, SinglePanel)
	e := h.engine

	e.SetProperty(PropertyScroll, 150)
	assert.Equal(t, 150, e.Property(PropertyScroll))

	e.SetProperty(PropertyContentOffset, 30)
	assert.Equal(t, 30, e.Property(PropertyContentOffset))

	e.SetProperty(PropertyHeaderHeight, 90)
	assert.Equal(t, 90, e.Property(PropertyHeaderHeight))
	assert.Equal(t, "headerHeight", PropertyHeaderHeight.String())
}

func TestEngine_ScrollStep(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"up from rest", 0, 50, 50},
		{"down stops at rest", 50, -80, 0},
		{"down at rest is ignored", 0, -8, 0},
		{"below rest does not go further", -20, -8, -20},
		{"up stops at bound", 395, 20, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 600, IntermediateMode, SinglePanel)
			h.engine.ScrollTo(tt.start)

			h.engine.ScrollStep(tt.delta)

			assert.Equal(t, tt.want, h.engine.Scroll())
			assert.Equal(t, 0, h.listener.offBottom)
		})
	}
}

func TestEngine_AcceptsInput(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	assert.True(t, h.engine.AcceptsInput())

	h.engine.ScrollOffBottom()
	assert.False(t, h.engine.AcceptsInput())
	h.engine.ScrollStep(40)
	assert.Equal(t, 0, h.engine.Scroll())
}

func TestEngine_UpwardScrollIsMonotonic(t *testing.T) {
	h := newHarness(t, 1000, IntermediateMode, SinglePanel)
	bound := h.engine.maxScrollUpwards()

	prev := h.engine.Scroll()
	for _, delta := range []int{7, 35, 1, 90, 13, 60, 200, 5, 400, 3} {
		h.engine.ScrollTo(h.engine.Scroll() + delta)
		got := h.engine.Scroll()
		if got < prev {
			t.Errorf("delta %d: scroll went from %d to %d", delta, prev, got)
		}
		if got > bound {
			t.Errorf("delta %d: scroll %d past the upper bound %d", delta, got, bound)
		}
		prev = got
	}
	assert.Equal(t, bound, prev)
	assert.Equal(t, 1000-(400-40), h.content.offset)
}

func TestEngine_FullscreenDownwardFlingStopsAtTop(t *testing.T) {
	h := newHarness(t, 2000, IntermediateMode, SinglePanel)
	e := h.engine
	e.ScrollTo(400)
	require.True(t, e.IsFullscreen())

	e.state = Settling
	e.startFling(-3000)
	require.True(t, e.fullscreenDownwardsFling)
	require.Less(t, e.fling.Final(), 100, "the fling would reopen the spacer")

	h.runFrames()

	assert.Equal(t, Idle, e.State())
	assert.True(t, e.fling.IsFinished())
	assert.False(t, e.fullscreenDownwardsFling)
	assert.Equal(t, 0, e.Regions().Transparent)
	assert.Equal(t, 100, e.HeaderHeight())
	assert.Equal(t, 100, e.Scroll())
	assert.True(t, e.IsFullscreen())
	require.Len(t, h.edge.absorbs, 1)
	assert.NotZero(t, h.edge.absorbs[0])
}

func TestEngine_SetHeaderTint(t *testing.T) {
	h := newHarness(t, 600, IntermediateMode, SinglePanel)
	e := h.engine
	initial := color.RGBA{R: 40, G: 90, B: 200, A: 255}
	require.Equal(t, []color.RGBA{initial}, h.edge.tints)
	before := len(h.header.visuals)

	red := color.RGBA{R: 220, G: 30, B: 30, A: 255}
	e.SetHeaderTint(red)

	assert.Equal(t, red, e.HeaderTint())
	assert.Equal(t, []color.RGBA{initial, red}, h.edge.tints)
	require.Len(t, h.header.visuals, before+1)
	want := Interpolate(VisualInput{
		Limits: e.Regions().Limits,
		Panel:  SinglePanel,
		Header: e.HeaderHeight(),
		// The resting spacer is still open.
		Transparent: 100,
		Tint:        red,
		Title:       TitleGeometry{MaxMargin: 16, MaxTextSize: 20},
	})
	assert.Equal(t, want.Tint, e.Visuals().Tint)
}

func TestEngine_SetUseGradient(t *testing.T) {
	h := newHarness(t, 600, OpenSquareMode, SinglePanel)
	e := h.engine
	require.Equal(t, 255, e.Visuals().GradientAlpha)

	e.SetUseGradient(false)
	assert.Equal(t, 0, e.Visuals().GradientAlpha)

	e.SetUseGradient(true)
	assert.Equal(t, 255, e.Visuals().GradientAlpha)
}
