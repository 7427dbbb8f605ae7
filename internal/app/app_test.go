package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/careercoach/coach/internal/assessment"
	"github.com/careercoach/coach/internal/quiz"
	"github.com/careercoach/coach/internal/router"
	"github.com/careercoach/coach/internal/screen"
)

type fakeRepo struct{}

func (fakeRepo) Generate(context.Context) (assessment.QuizSet, error) {
	return assessment.QuizSet{{Text: "q", Options: []string{"A. x"}, CorrectAnswer: "A"}}, nil
}

func (fakeRepo) Submit(context.Context, assessment.QuizSet, assessment.AnswerRecord, float64) (*assessment.ScoredResult, error) {
	return &assessment.ScoredResult{}, nil
}

func (fakeRepo) History(context.Context) ([]assessment.Assessment, error) {
	return nil, nil
}

func testModel(quizOnly bool) AppModel {
	return newAppModel(Options{
		Session:  quiz.NewSession(),
		Executor: quiz.NewExecutor(fakeRepo{}),
		History:  fakeRepo{},
		Identity: "user-42",
		QuizOnly: quizOnly,
	})
}

func sized(m AppModel, w, h int) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(AppModel)
}

func TestApp_CtrlCQuits(t *testing.T) {
	_, cmd := testModel(false).Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := sized(testModel(false), 40, 10)
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestApp_FrameShowsTitleAndIdentity(t *testing.T) {
	m := sized(testModel(false), 100, 30)
	content := m.render()
	for _, want := range []string{"Coach", "Home", "user-42", "Ctrl+C"} {
		if !strings.Contains(content, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestApp_QuizOnlyStartsOnQuiz(t *testing.T) {
	m := sized(testModel(true), 100, 30)
	if got := m.router.Active().Title(); got != "Interview Quiz" {
		t.Errorf("active = %q, want Interview Quiz", got)
	}
	if !strings.Contains(m.render(), "Start quiz") {
		t.Error("expected quiz key hints in footer")
	}
}

func TestApp_FooterShowsScreenStatus(t *testing.T) {
	m := sized(testModel(true), 100, 30)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(m.render(), "Generating questions") {
		t.Error("expected quiz status in footer")
	}
}

func TestApp_EscPopsPlainScreens(t *testing.T) {
	m := testModel(false)
	m.router.Push(&plainScreen{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestApp_EscForwardedToBackHandler(t *testing.T) {
	m := testModel(true)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected the quiz screen to handle Esc")
	}
}

type plainScreen struct{}

func (*plainScreen) Init() tea.Cmd                          { return nil }
func (s *plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (*plainScreen) View(int, int) string                   { return "" }
func (*plainScreen) Title() string                          { return "plain" }
