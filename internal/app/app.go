package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	hist "github.com/careercoach/coach/internal/history"
	"github.com/careercoach/coach/internal/quiz"
	"github.com/careercoach/coach/internal/router"
	"github.com/careercoach/coach/internal/screen"
	"github.com/careercoach/coach/internal/screens/home"
	"github.com/careercoach/coach/internal/screens/interview"
	"github.com/careercoach/coach/internal/ui/layout"
)

// Options wires the application's collaborators.
type Options struct {
	Session  *quiz.Session
	Executor *quiz.Executor
	History  hist.Source

	// Identity is shown on the right of the header.
	Identity string

	// QuizOnly opens directly on the quiz screen instead of the home menu.
	QuizOnly bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	identity string
	width    int
	height   int
}

// newAppModel creates a new AppModel on the home or quiz screen.
func newAppModel(opts Options) AppModel {
	var initial screen.Screen
	if opts.QuizOnly {
		initial = interview.New(opts.Session, opts.Executor)
	} else {
		initial = home.New(opts.Session, opts.Executor, opts.History, opts.Identity)
	}
	return AppModel{
		router:   router.New(initial),
		identity: opts.Identity,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if p, ok := active.(screen.StatusProvider); ok {
		status = p.Status()
	}

	frame := layout.Frame{
		Title:    title,
		Identity: m.identity,
		Status:   status,
		Hints:    m.footerHints(),
	}
	content := m.router.View(m.width, frame.BodyHeight(m.width, m.height))
	return frame.Render(content, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
