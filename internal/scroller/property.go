package scroller

// Property names an animatable engine value.
type Property int

const (
	// PropertyScroll is the composite scroll coordinate.
	PropertyScroll Property = iota
	// PropertyHeaderHeight is the header height.
	PropertyHeaderHeight
	// PropertyContentOffset is the content's own scroll offset.
	PropertyContentOffset
)

func (p Property) String() string {
	switch p {
	case PropertyScroll:
		return "scroll"
	case PropertyHeaderHeight:
		return "headerHeight"
	case PropertyContentOffset:
		return "contentOffset"
	default:
		return "unknown"
	}
}

// PropertyTarget is anything with animatable integer properties.
type PropertyTarget interface {
	Property(p Property) int
	SetProperty(p Property, v int)
}

// Property returns the current value of p.
func (e *Engine) Property(p Property) int {
	switch p {
	case PropertyScroll:
		return e.Scroll()
	case PropertyHeaderHeight:
		return e.regions.Header
	case PropertyContentOffset:
		return e.content.Offset()
	default:
		return 0
	}
}

// SetProperty sets p to v.
func (e *Engine) SetProperty(p Property, v int) {
	switch p {
	case PropertyScroll:
		e.ScrollTo(v)
	case PropertyHeaderHeight:
		e.SetHeaderHeight(v)
	case PropertyContentOffset:
		e.content.ScrollBy(v - e.content.Offset())
	}
}
