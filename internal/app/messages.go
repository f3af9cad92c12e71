// Package app is the bubbletea program hosting the album sheet.
package app

import (
	"image/color"
	"time"
)

// FrameMsg advances the sheet by one display frame.
type FrameMsg time.Time

// TintMsg changes the header tint. Init sends it once the cover's average
// color is known.
type TintMsg color.RGBA
