package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	hist "github.com/careercoach/coach/internal/history"
	"github.com/careercoach/coach/internal/quiz"
	"github.com/careercoach/coach/internal/router"
	"github.com/careercoach/coach/internal/screen"
	"github.com/careercoach/coach/internal/screens/history"
	"github.com/careercoach/coach/internal/screens/interview"
	"github.com/careercoach/coach/internal/ui/components"
	"github.com/careercoach/coach/internal/ui/theme"
)

const banner = `  ___ ___   _   ___ _  _
 / __/ _ \ /_\ / __| || |
| (_| (_) / _ \ (__| __ |
 \___\___/_/ \_\___|_||_|`

// statsLoadedMsg carries the history summary shown under the menu.
type statsLoadedMsg struct {
	Stats hist.Stats
	Err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu     components.Menu
	source   hist.Source
	identity string
	stats    *hist.Stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen. The quiz screen reuses session across visits
// so a quiz left by navigating away can be restarted from the same state.
// identity is shown under the banner; empty hides it.
func New(session *quiz.Session, executor *quiz.Executor, source hist.Source, identity string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start Quiz", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: interview.New(session, executor)}
			}
		}},
		{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(source)}
			}
		}},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:     components.NewMenu(items),
		source:   source,
		identity: identity,
	}
}

// Init loads a history summary for the dashboard line. Failures only hide
// the line.
func (h *HomeScreen) Init() tea.Cmd {
	src := h.source
	return func() tea.Msg {
		v, err := hist.Load(context.Background(), src)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Stats: v.Stats()}
	}
}

// Resume refreshes the summary when a pushed screen returns.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err == nil {
			st := msg.Stats
			h.stats = &st
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := height < 20

	var sections []string
	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Primary).Bold(true).
			Width(cw).Align(lipgloss.Center).
			Render(banner))
	}
	sections = append(sections, theme.Subtitle.Width(cw).Render("Technical interview practice"))
	if h.identity != "" {
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).Render(h.identity))
	}
	sections = append(sections, components.Card(h.menu.View(), cw))
	if line := h.statsLine(); line != "" {
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).Render(line))
	}

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) statsLine() string {
	if h.stats == nil {
		return ""
	}
	if h.stats.Count == 0 {
		return "No quizzes yet"
	}
	noun := "quizzes"
	if h.stats.Count == 1 {
		noun = "quiz"
	}
	return fmt.Sprintf("%d %s taken, average %.1f%%, latest %.1f%%",
		h.stats.Count, noun, h.stats.Average, h.stats.Latest)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
