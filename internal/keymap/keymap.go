package keymap

// Binding maps keys to an action, with a description for the help overlay.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "sheet"
}

// Bindings contains all key bindings, in help display order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Sheet
	{ActionToggleHeader, []string{"e", "enter"}, "Expand/collapse photo", "sheet"},
	{ActionToggleGradient, []string{"g"}, "Toggle title shade", "sheet"},
	{ActionDismiss, []string{"esc"}, "Dismiss sheet", "sheet"},
	{ActionScrollUp, []string{"k", "up"}, "Scroll up", "sheet"},
	{ActionScrollDown, []string{"j", "down"}, "Scroll down", "sheet"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
