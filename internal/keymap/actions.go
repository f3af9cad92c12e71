// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Sheet actions
	ActionToggleHeader   Action = "toggle_header"   // e - expand/collapse the photo
	ActionToggleGradient Action = "toggle_gradient" // g - shade under the title
	ActionDismiss        Action = "dismiss"         // esc - slide the sheet off screen
	ActionScrollUp       Action = "scroll_up"       // k/up - one row, like a wheel step
	ActionScrollDown     Action = "scroll_down"     // j/down
)
