package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/careercoach/coach/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is an optional interface for screens that consume Esc
// themselves, for example to close a detail pane before leaving. When
// HandlesBack reports true the app forwards Esc instead of popping.
type BackHandler interface {
	HandlesBack() bool
}

// Resumer is an optional interface for screens that refresh when the
// screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// StatusProvider is an optional interface for screens that show a short
// progress line on the right of the footer.
type StatusProvider interface {
	Status() string
}
