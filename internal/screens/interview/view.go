package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/careercoach/coach/internal/assessment"
	"github.com/careercoach/coach/internal/quiz"
	"github.com/careercoach/coach/internal/ui/components"
	"github.com/careercoach/coach/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	st := s.session.State()
	cw := components.ContentWidth(width)

	var body string
	switch st.Phase {
	case quiz.PhaseIdle:
		body = renderIntro(cw)
	case quiz.PhaseGenerating:
		body = s.renderWaiting("Preparing your interview questions...", cw)
	case quiz.PhaseInProgress:
		body = s.renderQuestion(st, cw)
	case quiz.PhaseSubmitting:
		body = s.renderWaiting("Scoring your answers...", cw)
	case quiz.PhaseCompleted:
		body = renderResult(st, cw)
	}

	if banner := components.ErrorBanner(s.errMsg, cw); banner != "" {
		body = banner + "\n\n" + body
	}
	return components.Center(body, width, height)
}

func renderIntro(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 4).Render("Technical Interview Practice"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(cw - 4).Render(
		"You will get a fresh set of multiple-choice questions. " +
			"Pick an answer for each one, then finish to get your score " +
			"and a tip on what to review next."))
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Start quiz", true).View())
	return components.Card(b.String(), cw)
}

func (s *InterviewScreen) renderWaiting(label string, cw int) string {
	line := s.spinner.View() + " " + label
	return components.Card(theme.Subtitle.Width(cw-4).Render(line), cw)
}

func (s *InterviewScreen) renderQuestion(st quiz.State, cw int) string {
	q, ok := st.CurrentQuestion()
	if !ok {
		return ""
	}

	var b strings.Builder
	counter := fmt.Sprintf("Question %d of %d", st.Current+1, st.Total())
	answered := fmt.Sprintf("%d answered", st.Answers.AnsweredCount())
	gap := max(cw-4-lipgloss.Width(counter)-lipgloss.Width(answered), 1)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(counter))
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(theme.Hint.Render(answered))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(st.Current+1)/float64(st.Total()), false, cw-4).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Width(cw - 4).Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if s.showExplain {
		b.WriteString("\n")
		verdict := theme.Incorrect.Render("Not quite.")
		if q.Accepts(st.Answers[st.Current]) {
			verdict = theme.Correct.Render("Correct.")
		}
		explanation := q.Explanation
		if explanation == "" {
			explanation = "No explanation provided."
		}
		b.WriteString(verdict + " " + theme.Hint.Width(cw-4).Render(explanation))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	label := "Next"
	if st.OnLast() {
		label = "Finish"
	}
	b.WriteString(components.NewButton(label, st.CanAdvance()).View())

	return components.Card(b.String(), cw)
}

func renderResult(st quiz.State, cw int) string {
	res := st.Result
	if res == nil {
		return ""
	}

	correct := 0
	for _, ok := range res.Correct {
		if ok {
			correct++
		}
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 4).Render("Quiz complete"))
	b.WriteString("\n\n")
	b.WriteString(theme.ScoreStyle(res.Score).Render(fmt.Sprintf("Score %.1f%%", res.Score)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("   %d of %d correct", correct, st.Total())))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", res.Score/100, true, cw-4).View())
	b.WriteString("\n")

	if tip := res.Record.ImprovementTip; tip != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Tip"))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(cw - 4).Render(tip))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderReview(st.Questions, st.Answers, res.Correct, cw-4))
	return components.Card(b.String(), cw)
}

// renderReview lists each question with the chosen and correct answers.
func renderReview(set assessment.QuizSet, answers assessment.AnswerRecord, correct []bool, w int) string {
	var b strings.Builder
	for i, q := range set {
		mark := theme.Incorrect.Render("✗")
		if i < len(correct) && correct[i] {
			mark = theme.Correct.Render("✓")
		}
		b.WriteString(mark + " " + theme.Body.Width(w-2).Render(fmt.Sprintf("%d. %s", i+1, q.Text)))
		b.WriteString("\n")

		chosen := "(no answer)"
		if i < len(answers) && answers[i].Answered {
			chosen = answers[i].Option
		}
		b.WriteString(theme.Hint.Render(fmt.Sprintf("   you: %s   correct: %s", chosen, q.CorrectAnswer)))
		b.WriteString("\n")
	}
	return b.String()
}
