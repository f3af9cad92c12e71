package keymap

import "strings"

// Resolver maps key strings to actions and actions back to their keys.
// A key bound twice keeps its first binding.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewResolver indexes bindings in order.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if _, taken := r.actions[key]; taken {
				continue
			}
			r.actions[key] = b.Action
			r.keys[b.Action] = append(r.keys[b.Action], key)
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" if none is.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// Keys returns the keys that resolve to a.
func (r *Resolver) Keys(a Action) []string {
	return r.keys[a]
}

// Hint is the primary key of each action joined by "/", as shown in
// footers: Hint(ActionHelp, ActionDismiss) is "?/esc".
func (r *Resolver) Hint(actions ...Action) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		if keys := r.keys[a]; len(keys) > 0 {
			parts = append(parts, keys[0])
		}
	}
	return strings.Join(parts, "/")
}
