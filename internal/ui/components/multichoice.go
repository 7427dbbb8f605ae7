package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careercoach/coach/internal/ui/theme"
)

// KeyPick selects an option by its one-based number.
var KeyPick = key.NewBinding(
	key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
	key.WithHelp("1-4/↑↓", "Choose"),
)

// MultiChoice renders a list of answer options with a cursor. It does not
// own the answer: callers feed the chosen index back through Chosen.
type MultiChoice struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when unanswered
	Correct int // -1 when unknown; highlighted once Reveal is set
	Reveal  bool
}

// NewMultiChoice creates a multiple-choice list with nothing chosen.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options: options,
		Chosen:  -1,
		Correct: -1,
	}
}

// Update moves the cursor or picks an option. picked is the option index
// the key chose, or -1 when the key did not choose one. Arrow keys move the
// cursor and choose the option under it.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Options) == 0 {
		return m, -1
	}

	switch {
	case key.Matches(kmsg, KeyUp):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, m.Cursor
	case key.Matches(kmsg, KeyDown):
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, m.Cursor
	case key.Matches(kmsg, KeyPick):
		i := int(kmsg.String()[0] - '1')
		if i < 0 || i >= len(m.Options) {
			return m, -1
		}
		m.Cursor = i
		return m, i
	}
	return m, -1
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "   "
		if i == m.Cursor && !m.Reveal {
			prefix = " ▸ "
		}
		mark := "( )"
		if i == m.Chosen {
			mark = "(•)"
		}
		line := prefix + mark + " " + opt

		var style lipgloss.Style
		switch {
		case m.Reveal && i == m.Correct:
			style = theme.Correct
		case m.Reveal && i == m.Chosen:
			style = theme.Incorrect
		case m.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Chosen:
			style = theme.Chosen
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
