package quiz

import (
	"github.com/careercoach/coach/internal/assessment"
)

// Transition is the outcome of applying one Event.
type Transition struct {
	// State is the state after the event. Equal to the input when Ignored.
	State State

	// Effect is the side effect to perform next, or nil.
	Effect Effect

	// Failure is set when the event reports or causes a failed transition.
	Failure *Failure

	// Ignored is true when the event was rejected or stale and had no
	// effect at all.
	Ignored bool
}

func ignore(s State) Transition {
	return Transition{State: s, Ignored: true}
}

// Step applies ev to s. It is pure: network work is returned as an Effect
// for the caller to perform, and its outcome comes back as a Generated or
// Submitted event carrying the same Attempt.
func Step(s State, ev Event) Transition {
	switch ev := ev.(type) {
	case Start:
		return stepStart(s)
	case Generated:
		return stepGenerated(s, ev)
	case Select:
		return stepSelect(s, ev)
	case Advance:
		return stepAdvance(s)
	case Submitted:
		return stepSubmitted(s, ev)
	case Abandon:
		return stepAbandon(s)
	default:
		return ignore(s)
	}
}

func stepStart(s State) Transition {
	if s.Busy() {
		return ignore(s)
	}
	next := State{Phase: PhaseGenerating, Attempt: s.Attempt + 1}
	return Transition{State: next, Effect: GenerateEffect{Attempt: next.Attempt}}
}

func stepGenerated(s State, ev Generated) Transition {
	if s.Phase != PhaseGenerating || ev.Attempt != s.Attempt {
		return ignore(s)
	}
	idle := State{Phase: PhaseIdle, Attempt: s.Attempt}
	if ev.Err != nil {
		return Transition{State: idle, Failure: failure(OpGenerate, ev.Err)}
	}
	if len(ev.Questions) == 0 {
		return Transition{State: idle, Failure: failure(OpGenerate, assessment.ErrGenerationFailed)}
	}
	return Transition{State: State{
		Phase:     PhaseInProgress,
		Attempt:   s.Attempt,
		Questions: ev.Questions,
		Answers:   assessment.NewAnswerRecord(len(ev.Questions)),
	}}
}

func stepSelect(s State, ev Select) Transition {
	if s.Phase != PhaseInProgress {
		return ignore(s)
	}
	if err := validateSelect(s, ev); err != nil {
		return Transition{State: s, Failure: failure(OpSelect, err)}
	}
	next := s
	next.Answers = s.Answers.With(ev.Index, ev.Option)
	return Transition{State: next}
}

func stepAdvance(s State) Transition {
	if !s.CanAdvance() {
		return ignore(s)
	}
	next := s
	if !s.OnLast() {
		next.Current++
		return Transition{State: next}
	}
	next.Phase = PhaseSubmitting
	return Transition{State: next, Effect: SubmitEffect{
		Attempt:   s.Attempt,
		Questions: s.Questions,
		Answers:   s.Answers,
		Score:     Score(s.Questions, s.Answers),
	}}
}

func stepSubmitted(s State, ev Submitted) Transition {
	if s.Phase != PhaseSubmitting || ev.Attempt != s.Attempt {
		return ignore(s)
	}
	next := s
	if ev.Err != nil {
		next.Phase = PhaseInProgress
		return Transition{State: next, Failure: failure(OpSubmit, ev.Err)}
	}
	result := ev.Result
	if result == nil {
		result = &assessment.ScoredResult{
			Score:   Score(s.Questions, s.Answers),
			Correct: assessment.Grade(s.Questions, s.Answers),
		}
	}
	next.Phase = PhaseCompleted
	next.Result = result
	return Transition{State: next}
}

func stepAbandon(s State) Transition {
	if s.Phase == PhaseIdle {
		return ignore(s)
	}
	return Transition{State: State{Phase: PhaseIdle, Attempt: s.Attempt + 1}}
}
