package quiz

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careercoach/coach/internal/assessment"
	"github.com/careercoach/coach/internal/store"
)

// Repository is the subset of the assessment repository a quiz needs.
type Repository interface {
	Generate(ctx context.Context) (assessment.QuizSet, error)
	Submit(ctx context.Context, set assessment.QuizSet, answers assessment.AnswerRecord, score float64) (*assessment.ScoredResult, error)
}

// Executor performs effects against a Repository.
type Executor struct {
	repo Repository
}

// NewExecutor creates an Executor backed by repo.
func NewExecutor(repo Repository) *Executor {
	return &Executor{repo: repo}
}

// Execute performs eff and returns the event reporting its outcome. It does
// not touch any session, so it is safe to call from another goroutine.
func (x *Executor) Execute(ctx context.Context, eff Effect) Event {
	switch eff := eff.(type) {
	case GenerateEffect:
		set, err := x.repo.Generate(ctx)
		return Generated{Attempt: eff.Attempt, Questions: set, Err: err}
	case SubmitEffect:
		res, err := x.repo.Submit(ctx, eff.Questions, eff.Answers, eff.Score)
		return Submitted{Attempt: eff.Attempt, Result: res, Err: err}
	default:
		return nil
	}
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithJournal records attempt lifecycle events to repo.
func WithJournal(repo store.AttemptRepo) SessionOption {
	return func(s *Session) {
		s.journal = repo
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session holds the current State and applies events to it. It is not safe
// for concurrent use: events must be dispatched from a single goroutine.
type Session struct {
	state     State
	attemptID string
	journal   store.AttemptRepo
	logger    *slog.Logger
}

// NewSession creates an idle session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// AttemptID returns the journal identifier of the current attempt, or ""
// before the first Start.
func (s *Session) AttemptID() string {
	return s.attemptID
}

// Dispatch applies ev and returns the transition. The caller performs the
// returned Effect, if any, and dispatches its outcome event.
func (s *Session) Dispatch(ctx context.Context, ev Event) Transition {
	prev := s.state
	t := Step(prev, ev)
	if t.Ignored {
		s.logger.Debug("quiz event ignored",
			"event", eventName(ev), "phase", prev.Phase.String(), "attempt", prev.Attempt)
		return t
	}

	s.state = t.State
	if _, ok := ev.(Start); ok {
		s.attemptID = uuid.NewString()
	}

	if t.Failure != nil {
		s.logger.Warn("quiz transition failed",
			"op", t.Failure.Op, "phase", t.State.Phase.String(), "err", t.Failure.Message)
	} else if prev.Phase != t.State.Phase {
		s.logger.Info("quiz phase changed",
			"from", prev.Phase.String(), "to", t.State.Phase.String(), "attempt", t.State.Attempt)
	}

	s.record(ctx, prev, ev, t)
	return t
}

// Run dispatches ev and then performs every resulting effect synchronously
// through x, dispatching each outcome, until no effect remains. It returns
// the last transition.
func (s *Session) Run(ctx context.Context, x *Executor, ev Event) Transition {
	t := s.Dispatch(ctx, ev)
	for t.Effect != nil {
		out := x.Execute(ctx, t.Effect)
		if out == nil {
			break
		}
		t = s.Dispatch(ctx, out)
	}
	return t
}

// record appends the journal event for an applied transition. Journal
// failures are logged and never affect the session.
func (s *Session) record(ctx context.Context, prev State, ev Event, t Transition) {
	if s.journal == nil || s.attemptID == "" {
		return
	}

	e := store.AttemptEvent{AttemptID: s.attemptID}
	switch ev.(type) {
	case Start:
		e.Action = store.ActionStart
	case Generated:
		e.Action = store.ActionGenerated
		e.QuestionCount = t.State.Total()
		if t.Failure != nil {
			e.Action = store.ActionGenerateFailed
			e.Message = t.Failure.Message
		}
	case Submitted:
		e.Action = store.ActionSubmitted
		e.QuestionCount = t.State.Total()
		e.AnsweredCount = t.State.Answers.AnsweredCount()
		if t.Failure != nil {
			e.Action = store.ActionSubmitFailed
			e.Message = t.Failure.Message
		} else if t.State.Result != nil {
			e.Score = t.State.Result.Score
		}
	case Abandon:
		e.Action = store.ActionAbandon
		e.QuestionCount = prev.Total()
		e.AnsweredCount = prev.Answers.AnsweredCount()
	default:
		return
	}

	if err := s.journal.Append(ctx, e); err != nil {
		s.logger.Warn("journal append failed", "action", string(e.Action), "err", err)
	}
}

func eventName(ev Event) string {
	switch ev.(type) {
	case Start:
		return "start"
	case Generated:
		return "generated"
	case Select:
		return "select"
	case Advance:
		return "advance"
	case Submitted:
		return "submitted"
	case Abandon:
		return "abandon"
	default:
		return "unknown"
	}
}
