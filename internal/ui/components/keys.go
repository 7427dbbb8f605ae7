package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/careercoach/coach/internal/ui/layout"
)

// Hint converts a binding's help text into a footer hint.
func Hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

// Hints converts enabled bindings into footer hints, skipping those without
// help text.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() || b.Help().Key == "" {
			continue
		}
		out = append(out, Hint(b))
	}
	return out
}

// Navigation bindings shared by list-style components.
var (
	KeyUp = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑↓", "Navigate"),
	)
	KeyDown = key.NewBinding(
		key.WithKeys("down", "j"),
	)
	KeySelect = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Select"),
	)
	KeyBack = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Back"),
	)
)
