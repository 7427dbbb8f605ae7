// Package interview is the quiz screen. It owns a quiz.Session and performs
// the effects its transitions request as tea.Cmds, so network round trips
// never block the UI loop.
package interview

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/careercoach/coach/internal/assessment"
	"github.com/careercoach/coach/internal/quiz"
	"github.com/careercoach/coach/internal/router"
	"github.com/careercoach/coach/internal/screen"
	"github.com/careercoach/coach/internal/ui/components"
	"github.com/careercoach/coach/internal/ui/layout"
)

// effectDoneMsg carries the outcome of an effect back to the screen.
type effectDoneMsg struct {
	Event quiz.Event
}

var keys = struct {
	Start   key.Binding
	Next    key.Binding
	Explain key.Binding
	Again   key.Binding
	Leave   key.Binding
}{
	Start: key.NewBinding(
		key.WithKeys("enter", "s"),
		key.WithHelp("Enter", "Start quiz"),
	),
	Next: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Next"),
	),
	Explain: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "Explanation"),
	),
	Again: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "New quiz"),
	),
	Leave: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Leave"),
	),
}

// InterviewScreen runs one quiz session at a time.
type InterviewScreen struct {
	session  *quiz.Session
	executor *quiz.Executor

	// cancel aborts the in-flight effect, if any.
	cancel context.CancelFunc

	choice      components.MultiChoice
	shown       int // question index choice was built for; -1 for none
	showExplain bool
	errMsg      string
	spinner     spinner.Model
	spinning    bool
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.BackHandler = (*InterviewScreen)(nil)
var _ screen.StatusProvider = (*InterviewScreen)(nil)

// New creates an InterviewScreen driving session through executor.
func New(session *quiz.Session, executor *quiz.Executor) *InterviewScreen {
	return &InterviewScreen{
		session:  session,
		executor: executor,
		shown:    -1,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	s.syncChoice()
	return nil
}

func (s *InterviewScreen) Title() string {
	return "Interview Quiz"
}

// HandlesBack reports true so Esc abandons the quiz before leaving.
func (s *InterviewScreen) HandlesBack() bool {
	return true
}

// State returns the underlying session state.
func (s *InterviewScreen) State() quiz.State {
	return s.session.State()
}

// Err returns the message of the last failed transition, or "".
func (s *InterviewScreen) Err() string {
	return s.errMsg
}

// Status summarizes quiz progress for the footer.
func (s *InterviewScreen) Status() string {
	st := s.session.State()
	switch st.Phase {
	case quiz.PhaseGenerating:
		return "Generating questions"
	case quiz.PhaseInProgress:
		return fmt.Sprintf("Q%d/%d · %d answered", st.Current+1, st.Total(), st.Answers.AnsweredCount())
	case quiz.PhaseSubmitting:
		return "Saving result"
	case quiz.PhaseCompleted:
		if st.Result != nil {
			return fmt.Sprintf("Score %.1f%%", st.Result.Score)
		}
	}
	return ""
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	st := s.session.State()
	switch st.Phase {
	case quiz.PhaseIdle:
		return components.Hints(keys.Start, keys.Leave)
	case quiz.PhaseGenerating, quiz.PhaseSubmitting:
		return components.Hints(keys.Leave)
	case quiz.PhaseInProgress:
		next := keys.Next
		if st.OnLast() {
			next.SetHelp("Enter", "Finish")
		}
		hints := []key.Binding{components.KeyPick}
		if st.CanAdvance() {
			hints = append(hints, next, keys.Explain)
		}
		return components.Hints(append(hints, keys.Leave)...)
	case quiz.PhaseCompleted:
		return components.Hints(keys.Again, keys.Leave)
	}
	return nil
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case effectDoneMsg:
		return s, s.dispatch(msg.Event)

	case spinner.TickMsg:
		if !s.spinning {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *InterviewScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	st := s.session.State()

	if key.Matches(msg, keys.Leave) {
		cmd := s.leave()
		return tea.Batch(cmd, func() tea.Msg { return router.PopScreenMsg{} })
	}

	switch st.Phase {
	case quiz.PhaseIdle:
		if key.Matches(msg, keys.Start) {
			return s.dispatch(quiz.Start{})
		}

	case quiz.PhaseInProgress:
		if key.Matches(msg, keys.Next) {
			return s.dispatch(quiz.Advance{})
		}
		if key.Matches(msg, keys.Explain) {
			if st.Answers.Answered(st.Current) {
				s.showExplain = !s.showExplain
				s.choice.Reveal = s.showExplain
			}
			return nil
		}
		// A revealed answer is locked until the next question.
		if s.showExplain {
			return nil
		}
		var picked int
		s.choice, picked = s.choice.Update(msg)
		if picked >= 0 {
			return s.dispatch(quiz.Select{Index: st.Current, Option: s.choice.Options[picked]})
		}

	case quiz.PhaseCompleted:
		if key.Matches(msg, keys.Again) {
			return s.dispatch(quiz.Start{})
		}
	}
	return nil
}

// leave abandons the running quiz, if any, and cancels in-flight work.
func (s *InterviewScreen) leave() tea.Cmd {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.session.State().Phase == quiz.PhaseIdle {
		return nil
	}
	return s.dispatch(quiz.Abandon{})
}

// dispatch applies ev and schedules the requested effect.
func (s *InterviewScreen) dispatch(ev quiz.Event) tea.Cmd {
	if ev == nil {
		return nil
	}
	t := s.session.Dispatch(context.Background(), ev)
	if t.Ignored {
		return nil
	}

	if t.Failure != nil {
		s.errMsg = t.Failure.Message
	} else {
		s.errMsg = ""
	}
	s.syncChoice()

	busy := t.State.Busy()
	if !busy {
		s.spinning = false
	}
	if t.Effect == nil {
		return nil
	}

	cmd := s.perform(t.Effect)
	if busy && !s.spinning {
		s.spinning = true
		return tea.Batch(cmd, s.spinner.Tick)
	}
	return cmd
}

// perform returns a command executing eff with a cancellable context.
func (s *InterviewScreen) perform(eff quiz.Effect) tea.Cmd {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	x := s.executor
	return func() tea.Msg {
		defer cancel()
		return effectDoneMsg{Event: x.Execute(ctx, eff)}
	}
}

// syncChoice rebuilds the option list when the displayed question changes
// and mirrors the recorded answer into it.
func (s *InterviewScreen) syncChoice() {
	st := s.session.State()
	q, ok := st.CurrentQuestion()
	if !ok || st.Phase != quiz.PhaseInProgress {
		s.shown = -1
		s.showExplain = false
		return
	}
	if s.shown != st.Current {
		s.choice = components.NewMultiChoice(q.Options)
		s.choice.Correct = correctIndex(q)
		s.shown = st.Current
		s.showExplain = false
	}
	s.choice.Chosen = chosenIndex(q, st.Answers[st.Current])
	if s.choice.Chosen >= 0 {
		s.choice.Cursor = s.choice.Chosen
	}
	s.choice.Reveal = s.showExplain
}

func correctIndex(q assessment.Question) int {
	for i, opt := range q.Options {
		if assessment.ParseLabel(opt) == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

func chosenIndex(q assessment.Question, a assessment.Answer) int {
	if !a.Answered {
		return -1
	}
	for i, opt := range q.Options {
		if opt == a.Option {
			return i
		}
	}
	return -1
}
