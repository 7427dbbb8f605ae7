package assessment

import (
	"bytes"
	"encoding/json"
	"time"
)

// Question is one generated multiple-choice interview question.
// Options carry their label prefix ("A. ...") and CorrectAnswer is the bare
// label ("A").
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuizSet is the ordered question set of one quiz attempt.
type QuizSet []Question

// Answer is the option selected for one question. The zero value is
// unanswered and encodes as JSON null.
type Answer struct {
	Option   string
	Answered bool
}

// Chose returns an answered Answer for option.
func Chose(option string) Answer {
	return Answer{Option: option, Answered: true}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.Answered {
		return []byte("null"), nil
	}
	return json.Marshal(a.Option)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Answer{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Answer{Option: s, Answered: s != ""}
	return nil
}

// AnswerRecord holds one Answer per question of the active QuizSet.
type AnswerRecord []Answer

// NewAnswerRecord returns an all-unanswered record for n questions.
func NewAnswerRecord(n int) AnswerRecord {
	return make(AnswerRecord, n)
}

// With returns a copy of r with slot i set to option. r is not modified.
func (r AnswerRecord) With(i int, option string) AnswerRecord {
	out := make(AnswerRecord, len(r))
	copy(out, r)
	out[i] = Chose(option)
	return out
}

// Answered reports whether slot i holds a selection.
func (r AnswerRecord) Answered(i int) bool {
	return i >= 0 && i < len(r) && r[i].Answered
}

// AnsweredCount returns the number of answered slots.
func (r AnswerRecord) AnsweredCount() int {
	n := 0
	for _, a := range r {
		if a.Answered {
			n++
		}
	}
	return n
}

// SubmitRequest is the body of POST /interview/save.
type SubmitRequest struct {
	Questions   QuizSet      `json:"questions"`
	UserAnswers AnswerRecord `json:"userAnswers"`
	Score       float64      `json:"score"`
}

// ReviewItem is the graded form of one question inside an assessment record.
type ReviewItem struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"userAnswer"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// Assessment is a persisted assessment record as returned by the backend,
// both from a submission and in the history list.
type Assessment struct {
	PK             string       `json:"pk,omitempty"`
	SK             string       `json:"sk,omitempty"`
	QuizScore      float64      `json:"quizScore"`
	Category       string       `json:"category,omitempty"`
	ImprovementTip string       `json:"improvementTip,omitempty"`
	Questions      []ReviewItem `json:"questions,omitempty"`
	CreatedAt      string       `json:"createdAt,omitempty"`
	UpdatedAt      string       `json:"updatedAt,omitempty"`
}

// ID returns the record identifier.
func (a Assessment) ID() string {
	return a.SK
}

// Created parses CreatedAt. ok is false when the timestamp is missing or
// unparseable.
func (a Assessment) Created() (t time.Time, ok bool) {
	if a.CreatedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, a.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ScoredResult is the outcome of a completed quiz: the locally computed
// score, per-question correctness, and the backend's record.
type ScoredResult struct {
	Score   float64
	Correct []bool
	Record  Assessment
	// Raw is the undecoded submission payload.
	Raw json.RawMessage
}
