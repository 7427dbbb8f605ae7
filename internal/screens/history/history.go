package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	hist "github.com/careercoach/coach/internal/history"
	"github.com/careercoach/coach/internal/router"
	"github.com/careercoach/coach/internal/screen"
	"github.com/careercoach/coach/internal/ui/components"
	"github.com/careercoach/coach/internal/ui/layout"
	"github.com/careercoach/coach/internal/ui/theme"
)

type historyLoadedMsg struct {
	View *hist.View
	Err  error
}

var keyReload = key.NewBinding(
	key.WithKeys("r"),
	key.WithHelp("r", "Reload"),
)

// HistoryScreen lists past assessments with aggregate stats.
type HistoryScreen struct {
	source   hist.Source
	view     *hist.View
	selected int
	loaded   bool
	errMsg   string
	now      func() time.Time
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.BackHandler = (*HistoryScreen)(nil)
var _ screen.StatusProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen reading from source.
func New(source hist.Source) *HistoryScreen {
	return &HistoryScreen{
		source: source,
		view:   hist.New(nil),
		now:    time.Now,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	src := s.source
	return func() tea.Msg {
		v, err := hist.Load(context.Background(), src)
		return historyLoadedMsg{View: v, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

// HandlesBack reports true so Esc first closes an open entry.
func (s *HistoryScreen) HandlesBack() bool {
	return true
}

// Status shows the selected position once history has loaded.
func (s *HistoryScreen) Status() string {
	if !s.loaded || s.errMsg != "" || s.view.Empty() {
		return ""
	}
	return fmt.Sprintf("%d of %d", s.selected+1, s.view.Len())
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if _, ok := s.view.Inspected(); ok {
		return components.Hints(components.KeyBack)
	}
	details := components.KeySelect
	details.SetHelp("Enter", "Details")
	return components.Hints(details, components.KeyUp, keyReload, components.KeyBack)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.view = msg.View
		s.selected = min(s.selected, max(s.view.Len()-1, 0))
		return s, nil

	case tea.KeyPressMsg:
		_, inspecting := s.view.Inspected()
		switch {
		case key.Matches(msg, components.KeyBack):
			if inspecting {
				s.view.Clear()
				return s, nil
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case inspecting:
			return s, nil
		case key.Matches(msg, components.KeyUp):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, components.KeyDown):
			if s.selected < s.view.Len()-1 {
				s.selected++
			}
		case key.Matches(msg, components.KeySelect):
			s.view.Inspect(s.selected)
		case key.Matches(msg, keyReload):
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.errMsg != "" {
		return components.Center(components.ErrorBanner("Could not load history: "+s.errMsg, cw), width, height)
	}
	if !s.loaded {
		return components.Center(theme.Hint.Render("Loading history..."), width, height)
	}
	if s.view.Empty() {
		return components.Center(theme.Hint.Render("No assessments yet. Take a quiz to get started!"), width, height)
	}

	if e, ok := s.view.Inspected(); ok {
		return components.Center(s.renderDetail(e, cw), width, height)
	}

	sections := []string{s.renderStats(cw), s.renderList(cw, height)}
	return components.Center(strings.Join(sections, "\n"), width, height)
}

func (s *HistoryScreen) renderStats(cw int) string {
	st := s.view.Stats()
	cell := func(label, value string) string {
		return theme.Hint.Render(label+" ") + theme.Body.Bold(true).Render(value)
	}
	line := strings.Join([]string{
		cell("Quizzes", fmt.Sprintf("%d", st.Count)),
		cell("Average", fmt.Sprintf("%.1f%%", st.Average)),
		cell("Best", fmt.Sprintf("%.1f%%", st.Best)),
		cell("Latest", fmt.Sprintf("%.1f%%", st.Latest)),
		cell("Questions", fmt.Sprintf("%d", st.TotalQuestions)),
	}, "   ")
	if trend := s.view.Trend(); len(trend) > 1 {
		line += "\n" + theme.Hint.Render("Trend ") + components.Sparkline(trend, cw-12)
	}
	return components.Card(line, cw)
}

func (s *HistoryScreen) renderList(cw, height int) string {
	entries := s.view.Entries()

	// Keep the selection visible when the list is taller than the screen.
	rows := max(height-8, 3)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(entries))

	now := s.now()
	var b strings.Builder
	for i := start; i < end; i++ {
		e := entries[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		when := e.Date()
		if rel := e.Relative(now); rel != "" {
			when += "  (" + rel + ")"
		}
		left := style.Render(fmt.Sprintf("%s%-8s", prefix, e.Label())) + "  " + theme.Hint.Render(when)
		right := theme.ScoreStyle(e.Record.QuizScore).Render(e.Percent())
		gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
		b.WriteString(left + strings.Repeat(" ", gap) + right)
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderDetail(e hist.Entry, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 4).Render(e.Label()))
	b.WriteString("\n")
	if d := e.Date(); d != "" {
		b.WriteString(theme.Subtitle.Width(cw - 4).Render(d))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.ScoreStyle(e.Record.QuizScore).Render("Score " + e.Percent()))
	if n := len(e.Review()); n > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("   %d of %d correct", e.CorrectCount(), n)))
	}
	b.WriteString("\n")

	if tip := e.Tip(); tip != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Tip"))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(cw - 4).Render(tip))
		b.WriteString("\n")
	}

	if review := e.Review(); len(review) > 0 {
		b.WriteString("\n")
		for i, item := range review {
			mark := theme.Incorrect.Render("✗")
			if item.IsCorrect {
				mark = theme.Correct.Render("✓")
			}
			b.WriteString(mark + " " + theme.Body.Width(cw-6).Render(fmt.Sprintf("%d. %s", i+1, item.Question)))
			b.WriteString("\n")
			answer := item.UserAnswer
			if answer == "" {
				answer = "(no answer)"
			}
			b.WriteString(theme.Hint.Render(fmt.Sprintf("   you: %s   correct: %s", answer, item.Answer)))
			b.WriteString("\n")
			if item.Explanation != "" && !item.IsCorrect {
				b.WriteString(theme.Hint.Width(cw - 6).Render("   " + item.Explanation))
				b.WriteString("\n")
			}
		}
	}
	return components.Card(b.String(), cw)
}
