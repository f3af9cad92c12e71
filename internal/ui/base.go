// Package ui holds pieces shared by the sheet's components.
package ui

// Base records the size given to a component. Embed it to get SetSize,
// Width and Height.
type Base struct {
	w, h int
}

// SetSize stores the component's size in cells.
func (b *Base) SetSize(width, height int) { b.w, b.h = width, height }

// Width is the width in cells from the last SetSize.
func (b Base) Width() int { return b.w }

// Height is the height in cells from the last SetSize.
func (b Base) Height() int { return b.h }
