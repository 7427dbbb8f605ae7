// Package quiz implements the interview quiz session: a pure transition
// function over State plus an orchestrator that performs the network side
// effects the transitions request.
package quiz

import (
	"github.com/careercoach/coach/internal/assessment"
)

// Phase is the lifecycle position of a quiz session.
type Phase int

const (
	PhaseIdle       Phase = iota // No quiz loaded
	PhaseGenerating              // Waiting for a question set
	PhaseInProgress              // Answering questions
	PhaseSubmitting              // Waiting for the save round trip
	PhaseCompleted               // Result available
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseInProgress:
		return "in_progress"
	case PhaseSubmitting:
		return "submitting"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a quiz session. Step never modifies the
// State it is given.
type State struct {
	Phase Phase

	// Attempt identifies the outstanding network round trip. Every effect
	// carries it and response events are applied only when it still matches.
	Attempt uint64

	// Questions is the active question set (nil outside InProgress,
	// Submitting and Completed).
	Questions assessment.QuizSet

	// Answers has one slot per question.
	Answers assessment.AnswerRecord

	// Current is the index of the displayed question.
	Current int

	// Result is set only in Completed.
	Result *assessment.ScoredResult
}

// Total returns the number of questions in the active set.
func (s State) Total() int {
	return len(s.Questions)
}

// CurrentQuestion returns the displayed question, if any.
func (s State) CurrentQuestion() (assessment.Question, bool) {
	if s.Current < 0 || s.Current >= len(s.Questions) {
		return assessment.Question{}, false
	}
	return s.Questions[s.Current], true
}

// OnLast reports whether the displayed question is the final one.
func (s State) OnLast() bool {
	return len(s.Questions) > 0 && s.Current == len(s.Questions)-1
}

// CanAdvance reports whether Advance would move the session forward.
func (s State) CanAdvance() bool {
	return s.Phase == PhaseInProgress && s.Answers.Answered(s.Current)
}

// Busy reports whether a network round trip is outstanding.
func (s State) Busy() bool {
	return s.Phase == PhaseGenerating || s.Phase == PhaseSubmitting
}

// Score returns 100 * matches / len(set), where a match is an answered slot
// whose label equals the question's correct answer. An empty set scores 0.
func Score(set assessment.QuizSet, answers assessment.AnswerRecord) float64 {
	if len(set) == 0 {
		return 0
	}
	matches := 0
	for _, ok := range assessment.Grade(set, answers) {
		if ok {
			matches++
		}
	}
	return 100 * float64(matches) / float64(len(set))
}
