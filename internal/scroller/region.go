package scroller

// HeaderMode selects the header ceiling used while scrolling.
type HeaderMode int

const (
	// IntermediateMode caps the scrollable header at the intermediate height.
	IntermediateMode HeaderMode = iota
	// OpenSquareMode lets the header grow to the full square photo.
	OpenSquareMode
)

// PanelMode describes how the header and content are laid out.
type PanelMode int

const (
	// SinglePanel stacks the header above the content; the header shrinks.
	SinglePanel PanelMode = iota
	// TwoPanel places the header beside the content at full height.
	TwoPanel
)

// intermediateHeaderRatio is the intermediate header height as a fraction of the maximum.
const intermediateHeaderRatio = 0.5

// Limits are the static region bounds, fixed after the first layout.
type Limits struct {
	MinHeader          int
	IntermediateHeader int
	MaxHeader          int
	// MinPortraitHeader and MaxPortraitHeader bound the visual ratios. They
	// keep their portrait values in two-panel mode, where the header itself
	// never resizes.
	MinPortraitHeader int
	MaxPortraitHeader int
	TransparentStart  int
}

// ComputeLimits derives the limits from the surface size at first layout.
// In single-panel mode the photo is square, so the header never exceeds the
// container width. In two-panel mode the header fills the surface height
// and the portrait reference is the surface height.
func ComputeLimits(panel PanelMode, minHeader, transparentStart, width, height int) Limits {
	l := Limits{
		MinHeader:         minHeader,
		MinPortraitHeader: minHeader,
		TransparentStart:  max(transparentStart, 0),
	}
	if panel == TwoPanel {
		l.MinHeader = height
		l.MaxHeader = height
		l.IntermediateHeader = height
		l.MaxPortraitHeader = height
		return l
	}
	l.MaxHeader = max(width, minHeader)
	l.IntermediateHeader = max(int(float64(l.MaxHeader)*intermediateHeaderRatio), minHeader)
	l.MaxPortraitHeader = l.MaxHeader
	return l
}

// MaxScrollableHeader returns the header ceiling for the given mode.
func (l Limits) MaxScrollableHeader(mode HeaderMode) int {
	if mode == OpenSquareMode {
		return l.MaxHeader
	}
	return l.IntermediateHeader
}

// Regions is the mutable state of the transparent spacer and the header.
// The content offset lives in the Content collaborator, which clamps it.
type Regions struct {
	Limits
	Mode  HeaderMode
	Panel PanelMode

	Transparent int
	Header      int

	// Viewport is the surface height.
	Viewport int
	// LeftoverSpace is padding at the end of the content that does not
	// count as real content.
	LeftoverSpace int
}

// NewRegions returns regions at their resting entrance position: the
// transparent spacer fully open and the header at its scrollable ceiling.
func NewRegions(l Limits, mode HeaderMode, panel PanelMode, viewport int) Regions {
	return Regions{
		Limits:      l,
		Mode:        mode,
		Panel:       panel,
		Transparent: l.TransparentStart,
		Header:      l.MaxScrollableHeader(mode),
		Viewport:    viewport,
	}
}

// MaxScrollableHeader returns the header ceiling for the current mode.
func (r *Regions) MaxScrollableHeader() int {
	return r.Limits.MaxScrollableHeader(r.Mode)
}

// OverflowingContent returns how much of the content does not fit below the header.
func (r *Regions) OverflowingContent(contentHeight int) int {
	return contentHeight - r.LeftoverSpace - r.Viewport + r.Header
}

// FullyCompressedHeader is the smallest height the header may shrink to
// before the content starts scrolling. While the content still fits, the
// header keeps absorbing motion.
func (r *Regions) FullyCompressedHeader(contentHeight int) int {
	h := r.Header - r.OverflowingContent(contentHeight)
	return min(max(h, r.MinHeader), r.MaxScrollableHeader())
}

// Motion records how a delta was split across the regions.
// Positive values are upward motion. The fields always sum to the delta.
type Motion struct {
	Transparent int
	Header      int
	Content     int
	Leftover    int
}

// Distribute applies delta to the regions in priority order and reports
// what each region consumed. Upward motion closes the spacer, then shrinks
// the header, then scrolls the content. Downward motion scrolls the content
// back, then grows the header, then opens the spacer without bound.
func (r *Regions) Distribute(delta int, content Content) Motion {
	if delta > 0 {
		return r.scrollUp(delta, content)
	}
	return r.scrollDown(delta, content)
}

func (r *Regions) scrollUp(delta int, content Content) Motion {
	var m Motion
	if r.Transparent != 0 {
		original := r.Transparent
		r.Transparent = max(r.Transparent-delta, 0)
		m.Transparent = original - r.Transparent
		delta -= m.Transparent
	}

	compressed := r.FullyCompressedHeader(content.IntrinsicHeight())
	if r.Header > compressed {
		original := r.Header
		r.Header = max(r.Header-delta, compressed)
		m.Header = original - r.Header
		delta -= m.Header
	}

	before := content.Offset()
	content.ScrollBy(delta)
	m.Content = content.Offset() - before
	m.Leftover = delta - m.Content
	return m
}

func (r *Regions) scrollDown(delta int, content Content) Motion {
	var m Motion
	if before := content.Offset(); before > 0 {
		content.ScrollBy(delta)
		m.Content = content.Offset() - before
		delta -= m.Content
	}

	ceiling := r.MaxScrollableHeader()
	if r.Header < ceiling {
		original := r.Header
		r.Header = min(r.Header-delta, ceiling)
		m.Header = original - r.Header
		delta -= m.Header
	}

	r.Transparent -= delta
	m.Transparent = delta
	return m
}

// Scroll is the composite scroll coordinate across all three regions.
func (r *Regions) Scroll(contentOffset int) int {
	return r.TransparentStart - r.Transparent +
		r.MaxScrollableHeader() - r.Header +
		contentOffset
}

// ScrollIgnoringOversizedHeader is the composite scroll used for snapping.
// A header taller than the scrollable ceiling counts as sitting at the
// ceiling. Never compare it with Scroll.
func (r *Regions) ScrollIgnoringOversizedHeader(contentOffset int) int {
	return r.TransparentStart - r.Transparent +
		max(r.MaxScrollableHeader()-r.Header, 0) +
		contentOffset
}

// MaxScrollUpwards is the largest composite scroll reachable by upward motion.
func (r *Regions) MaxScrollUpwards(contentHeight int) int {
	if r.Panel == TwoPanel {
		return r.TransparentStart + max(0, contentHeight-r.Viewport)
	}
	compressed := r.FullyCompressedHeader(contentHeight)
	return r.TransparentStart +
		r.MaxScrollableHeader() - compressed +
		max(0, contentHeight-r.Viewport+compressed)
}

// ScrollUntilOffBottom is how far the surface must move down to leave the viewport.
func (r *Regions) ScrollUntilOffBottom(contentOffset int) int {
	return r.Viewport + r.ScrollIgnoringOversizedHeader(contentOffset) - r.TransparentStart
}

// TransparentRatio is 0 with the spacer fully open and 1 once it is closed.
func (r *Regions) TransparentRatio() float64 {
	if r.TransparentStart <= 0 {
		return 1
	}
	ratio := float64(r.Transparent) / float64(r.TransparentStart)
	return 1 - clampf(ratio, 0, 1)
}

func clampf(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
