package scroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedContent is a list whose offset is clamped to [0, maxOffset].
type fixedContent struct {
	height    int
	offset    int
	maxOffset int
}

func (c *fixedContent) IntrinsicHeight() int { return c.height }
func (c *fixedContent) Offset() int          { return c.offset }
func (c *fixedContent) ScrollBy(delta int) {
	c.offset = min(max(c.offset+delta, 0), c.maxOffset)
}

func testRegions() Regions {
	l := ComputeLimits(SinglePanel, 40, 100, 200, 400)
	return NewRegions(l, IntermediateMode, SinglePanel, 400)
}

func TestComputeLimits(t *testing.T) {
	tests := []struct {
		name  string
		panel PanelMode
		want  Limits
	}{
		{
			name:  "single panel",
			panel: SinglePanel,
			want: Limits{
				MinHeader:          40,
				IntermediateHeader: 100,
				MaxHeader:          200,
				MinPortraitHeader:  40,
				MaxPortraitHeader:  200,
				TransparentStart:   100,
			},
		},
		{
			name:  "two panel",
			panel: TwoPanel,
			want: Limits{
				MinHeader:          400,
				IntermediateHeader: 400,
				MaxHeader:          400,
				MinPortraitHeader:  40,
				MaxPortraitHeader:  400,
				TransparentStart:   100,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLimits(tt.panel, 40, 100, 200, 400)
			if got != tt.want {
				t.Errorf("ComputeLimits() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRegions_RestingPosition(t *testing.T) {
	r := testRegions()

	assert.Equal(t, 100, r.Transparent)
	assert.Equal(t, 100, r.Header)
	assert.Equal(t, 0, r.Scroll(0))
	assert.Equal(t, 300, r.ScrollUntilOffBottom(0))
	assert.InDelta(t, 0.0, r.TransparentRatio(), 1e-9)
}

func TestRegions_UpwardDragClosesTransparentFirst(t *testing.T) {
	r := testRegions()
	content := &fixedContent{height: 600, maxOffset: 240}

	m := r.Distribute(40, content)

	assert.Equal(t, Motion{Transparent: 40}, m)
	assert.Equal(t, 60, r.Transparent)
	assert.Equal(t, 100, r.Header)
	assert.Equal(t, 0, content.offset)
	assert.Equal(t, 40, r.Scroll(content.offset))
}

func TestRegions_CompressedHeaderPassesMotionToContent(t *testing.T) {
	r := testRegions()
	r.Transparent = 0
	r.Header = r.MinHeader
	content := &fixedContent{height: 600, maxOffset: 240}

	m := r.Distribute(50, content)

	assert.Equal(t, Motion{Content: 50}, m)
	assert.Equal(t, 0, r.Transparent)
	assert.Equal(t, 40, r.Header)
	assert.Equal(t, 50, content.offset)
}

func TestRegions_UpwardCascade(t *testing.T) {
	r := testRegions()
	content := &fixedContent{height: 600, maxOffset: 240}

	m := r.Distribute(230, content)

	assert.Equal(t, Motion{Transparent: 100, Header: 60, Content: 70}, m)
	assert.Equal(t, 230, r.Scroll(content.offset))
}

func TestRegions_DownwardCascade(t *testing.T) {
	r := testRegions()
	r.Transparent = 0
	r.Header = 40
	content := &fixedContent{height: 600, offset: 50, maxOffset: 240}

	m := r.Distribute(-300, content)

	assert.Equal(t, Motion{Content: -50, Header: -60, Transparent: -190}, m)
	assert.Equal(t, 190, r.Transparent)
	assert.Equal(t, 100, r.Header)
	assert.Equal(t, 0, content.offset)
}

func TestRegions_TransparentGrowsWithoutBound(t *testing.T) {
	r := testRegions()
	content := &fixedContent{height: 600, maxOffset: 240}

	r.Distribute(-1000, content)

	assert.Equal(t, 1100, r.Transparent)
	assert.Equal(t, -1000, r.Scroll(0))
	assert.Less(t, r.ScrollUntilOffBottom(0), 0)
}

func TestRegions_ShortContentKeepsHeader(t *testing.T) {
	r := testRegions()
	r.Transparent = 0
	content := &fixedContent{height: 100}

	m := r.Distribute(30, content)

	assert.Equal(t, Motion{Leftover: 30}, m)
	assert.Equal(t, 100, r.Header)
}

func TestRegions_DistributeSumsToDelta(t *testing.T) {
	deltas := []int{-500, -120, -37, -1, 0, 1, 13, 99, 180, 420, 900}
	for _, delta := range deltas {
		r := testRegions()
		r.Transparent = 30
		r.Header = 90
		content := &fixedContent{height: 600, offset: 20, maxOffset: 290}
		before := r.Scroll(content.offset)

		m := r.Distribute(delta, content)

		sum := m.Transparent + m.Header + m.Content + m.Leftover
		if sum != delta {
			t.Errorf("delta %d: motion %+v sums to %d", delta, m, sum)
		}
		if got := r.Scroll(content.offset) - before; got != delta-m.Leftover {
			t.Errorf("delta %d: scroll moved %d, want %d", delta, got, delta-m.Leftover)
		}
		if r.Header < r.MinHeader || r.Header > r.MaxScrollableHeader() {
			t.Errorf("delta %d: header %d out of range", delta, r.Header)
		}
		if delta > 0 && r.Transparent < 0 {
			t.Errorf("delta %d: negative transparent height %d", delta, r.Transparent)
		}
	}
}

func TestRegions_MaxScrollUpwards(t *testing.T) {
	r := testRegions()
	assert.Equal(t, 400, r.MaxScrollUpwards(600))

	two := NewRegions(ComputeLimits(TwoPanel, 40, 100, 200, 400), IntermediateMode, TwoPanel, 400)
	assert.Equal(t, 300, two.MaxScrollUpwards(600))
}

func TestRegions_OversizedHeaderScroll(t *testing.T) {
	r := testRegions()
	r.Header = r.MaxHeader

	assert.Equal(t, -100, r.Scroll(0))
	assert.Equal(t, 0, r.ScrollIgnoringOversizedHeader(0))
}

func TestRegions_OpenSquareCeiling(t *testing.T) {
	l := ComputeLimits(SinglePanel, 40, 100, 200, 400)
	r := NewRegions(l, OpenSquareMode, SinglePanel, 400)

	assert.Equal(t, 200, r.Header)
	assert.Equal(t, 200, r.MaxScrollableHeader())
}
