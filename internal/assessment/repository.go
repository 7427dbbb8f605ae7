package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Backend paths.
const (
	PathGenerate = "/interview/generate"
	PathSave     = "/interview/save"
	PathHistory  = "/interview/history"
)

var (
	// ErrGenerationFailed indicates the generate payload had no usable
	// question sequence.
	ErrGenerationFailed = errors.New("failed to generate quiz questions")

	// ErrSubmissionFailed wraps any error raised while saving a result.
	ErrSubmissionFailed = errors.New("failed to save quiz results")

	// ErrMalformedHistory indicates a history payload that is neither empty
	// nor a list of assessments.
	ErrMalformedHistory = errors.New("unexpected history payload")
)

// Transport performs one authenticated round trip and returns the unwrapped
// payload. *api.Client implements it.
type Transport interface {
	Do(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// Repository exposes the interview assessment endpoints. It keeps no local
// state: every call is a single round trip.
type Repository struct {
	transport Transport
	logger    *slog.Logger
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithLogger sets the logger used for payload diagnostics.
func WithLogger(l *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRepository creates a Repository over t.
func NewRepository(t Transport, opts ...RepositoryOption) *Repository {
	r := &Repository{
		transport: t,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Generate requests a fresh question set. Transport errors are returned as
// is; a payload without a non-empty, well-formed question list yields
// ErrGenerationFailed.
func (r *Repository) Generate(ctx context.Context) (QuizSet, error) {
	payload, err := r.transport.Do(ctx, http.MethodPost, PathGenerate, struct{}{})
	if err != nil {
		return nil, err
	}

	if err := validateGenerated(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var resp struct {
		Questions QuizSet `json:"questions"`
	}
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Questions) == 0 {
		return nil, ErrGenerationFailed
	}
	return resp.Questions, nil
}

// Submit posts the quiz transcript together with the locally computed score.
// The returned result carries score as sent; the backend's echo is not
// re-validated. A payload that is not an assessment object still counts as
// saved and is kept in Raw.
func (r *Repository) Submit(ctx context.Context, set QuizSet, answers AnswerRecord, score float64) (*ScoredResult, error) {
	payload, err := r.transport.Do(ctx, http.MethodPost, PathSave, SubmitRequest{
		Questions:   set,
		UserAnswers: answers,
		Score:       score,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	result := &ScoredResult{
		Score:   score,
		Correct: Grade(set, answers),
		Raw:     payload,
	}
	// A record that does not decode cleanly is dropped whole; the save itself
	// succeeded and the score is local.
	if err := json.Unmarshal(payload, &result.Record); err != nil {
		result.Record = Assessment{}
		r.logger.Warn("saved assessment record not decoded", "err", err)
	}
	return result, nil
}

// History returns the user's past assessments in backend order. An empty or
// absent payload yields an empty slice.
func (r *Repository) History(ctx context.Context) ([]Assessment, error) {
	payload, err := r.transport.Do(ctx, http.MethodGet, PathHistory, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return []Assessment{}, nil
	}

	var list []Assessment
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHistory, err)
	}
	if list == nil {
		list = []Assessment{}
	}
	return list, nil
}
