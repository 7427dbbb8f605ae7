package assessment

import "strings"

// ParseLabel extracts the option label from a selected option: everything
// before the first "." with surrounding whitespace trimmed. An option without
// a "." is trimmed and returned whole.
//
//	ParseLabel("B. Paris") == "B"
func ParseLabel(option string) string {
	label, _, _ := strings.Cut(option, ".")
	return strings.TrimSpace(label)
}

// Accepts reports whether a is answered and its label equals the question's
// correct answer (case-sensitive).
func (q Question) Accepts(a Answer) bool {
	return a.Answered && ParseLabel(a.Option) == q.CorrectAnswer
}

// Grade returns per-question correctness. Slots beyond either slice are
// false.
func Grade(set QuizSet, answers AnswerRecord) []bool {
	out := make([]bool, len(set))
	for i, q := range set {
		if i < len(answers) {
			out[i] = q.Accepts(answers[i])
		}
	}
	return out
}
