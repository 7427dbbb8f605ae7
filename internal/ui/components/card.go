package components

import (
	"charm.land/lipgloss/v2"

	"github.com/careercoach/coach/internal/ui/theme"
)

// ContentWidth returns the uniform inner width for cards so stacked
// sections line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at content width cw.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// Center places block in the middle of a width x height area.
func Center(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// ErrorBanner renders a one-line error notice at width w. Empty msg renders
// nothing.
func ErrorBanner(msg string, w int) string {
	if msg == "" {
		return ""
	}
	return theme.Banner.Width(w).Render("! " + msg)
}
