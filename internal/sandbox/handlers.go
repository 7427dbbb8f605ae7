package sandbox

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careercoach/coach/internal/assessment"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	set := draw(s.bank, s.quizSize, s.rng)
	s.mu.Unlock()

	s.logger.Info("generated quiz", "user", userID(r.Context()), "questions", len(set))
	s.respond(w, http.StatusOK, map[string]any{"questions": set})
}

// saveRequest mirrors assessment.SubmitRequest with a plain string slice so
// null answers decode as "".
type saveRequest struct {
	Questions   []assessment.Question `json:"questions"`
	UserAnswers []*string             `json:"userAnswers"`
	Score       float64               `json:"score"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.errorf(w, http.StatusBadRequest, "read body: %v", err)
		return
	}
	if strings.TrimSpace(string(raw)) == "" {
		s.errorf(w, http.StatusBadRequest, "Request body is required for saving result")
		return
	}

	var req saveRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		s.errorf(w, http.StatusBadRequest, "Invalid request body: %v", err)
		return
	}
	if len(req.Questions) == 0 {
		s.errorf(w, http.StatusBadRequest, "Questions list cannot be empty")
		return
	}
	if len(req.UserAnswers) != len(req.Questions) {
		s.errorf(w, http.StatusBadRequest, "userAnswers has %d entries, want %d", len(req.UserAnswers), len(req.Questions))
		return
	}
	if req.Score < 0 || req.Score > 100 {
		s.errorf(w, http.StatusBadRequest, "score %.1f out of range", req.Score)
		return
	}

	user := userID(r.Context())
	now := s.now().UTC().Format(time.RFC3339Nano)
	record := assessment.Assessment{
		PK:        "USER#" + user,
		SK:        "ASSESS#" + uuid.NewString(),
		QuizScore: req.Score,
		Category:  "Technical",
		CreatedAt: now,
		UpdatedAt: now,
	}

	var wrong []assessment.ReviewItem
	for i, q := range req.Questions {
		var answer assessment.Answer
		if a := req.UserAnswers[i]; a != nil {
			answer = assessment.Answer{Option: *a, Answered: *a != ""}
		}
		item := assessment.ReviewItem{
			Question:    q.Text,
			Answer:      q.CorrectAnswer,
			UserAnswer:  answer.Option,
			IsCorrect:   q.Accepts(answer),
			Explanation: q.Explanation,
		}
		record.Questions = append(record.Questions, item)
		if !item.IsCorrect {
			wrong = append(wrong, item)
		}
	}
	record.ImprovementTip = improvementTip(wrong)

	s.mu.Lock()
	s.records[user] = append(s.records[user], record)
	s.mu.Unlock()

	s.logger.Info("saved assessment", "user", user, "id", record.SK, "score", record.QuizScore)
	s.respond(w, http.StatusOK, record)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user := userID(r.Context())

	s.mu.Lock()
	list := make([]assessment.Assessment, len(s.records[user]))
	copy(list, s.records[user])
	s.mu.Unlock()

	// Newest first; RFC 3339 UTC strings sort chronologically.
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt > list[j].CreatedAt
	})

	s.respond(w, http.StatusOK, list)
}

// improvementTip summarizes what to revisit. Empty when nothing was missed.
func improvementTip(wrong []assessment.ReviewItem) string {
	switch len(wrong) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Revisit this topic: %q. %s", wrong[0].Question, wrong[0].Explanation)
	default:
		return fmt.Sprintf("You missed %d questions. Start by revisiting %q. %s",
			len(wrong), wrong[0].Question, wrong[0].Explanation)
	}
}
