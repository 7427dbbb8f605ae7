package quiz

import (
	"errors"
	"fmt"
	"slices"

	"github.com/careercoach/coach/internal/assessment"
)

// Event is an input to Step.
type Event interface {
	event()
}

// Start begins a new attempt, discarding any loaded quiz.
type Start struct{}

// Generated delivers the outcome of a GenerateEffect.
type Generated struct {
	Attempt   uint64
	Questions assessment.QuizSet
	Err       error
}

// Select records option as the answer for question Index.
type Select struct {
	Index  int
	Option string
}

// Advance moves to the next question, or submits from the last one.
type Advance struct{}

// Submitted delivers the outcome of a SubmitEffect.
type Submitted struct {
	Attempt uint64
	Result  *assessment.ScoredResult
	Err     error
}

// Abandon drops the current attempt and returns to Idle. Responses still in
// flight for it are discarded when they arrive.
type Abandon struct{}

func (Start) event()     {}
func (Generated) event() {}
func (Select) event()    {}
func (Advance) event()   {}
func (Submitted) event() {}
func (Abandon) event()   {}

// Effect is a side effect requested by a transition.
type Effect interface {
	effect()
}

// GenerateEffect asks for a fresh question set.
type GenerateEffect struct {
	Attempt uint64
}

// SubmitEffect asks for the transcript to be saved with the given score.
type SubmitEffect struct {
	Attempt   uint64
	Questions assessment.QuizSet
	Answers   assessment.AnswerRecord
	Score     float64
}

func (GenerateEffect) effect() {}
func (SubmitEffect) effect()   {}

// Failure is the failed-transition signal: the operation that failed, a
// message fit for display, and the underlying cause.
type Failure struct {
	Op      string
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Operation names carried by Failure.
const (
	OpGenerate = "generate"
	OpSubmit   = "submit"
	OpSelect   = "select"
)

// ErrInvalidSelection is the cause of a rejected Select.
var ErrInvalidSelection = errors.New("invalid selection")

func failure(op string, err error) *Failure {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		switch op {
		case OpGenerate:
			msg = assessment.ErrGenerationFailed.Error()
		case OpSubmit:
			msg = assessment.ErrSubmissionFailed.Error()
		default:
			msg = op + " failed"
		}
	}
	return &Failure{Op: op, Message: msg, Err: err}
}

func validateSelect(s State, ev Select) error {
	if ev.Index < 0 || ev.Index >= len(s.Questions) {
		return fmt.Errorf("%w: no question %d of %d", ErrInvalidSelection, ev.Index+1, len(s.Questions))
	}
	if ev.Option == "" {
		return fmt.Errorf("%w: empty option", ErrInvalidSelection)
	}
	if opts := s.Questions[ev.Index].Options; len(opts) > 0 && !slices.Contains(opts, ev.Option) {
		return fmt.Errorf("%w: %q is not an option of question %d", ErrInvalidSelection, ev.Option, ev.Index+1)
	}
	return nil
}
