package history

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/careercoach/coach/internal/api"
	"github.com/careercoach/coach/internal/assessment"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// scriptedSource returns its scripted errors in order, then succeeds.
type scriptedSource struct {
	errs  []error
	calls int
}

func (s *scriptedSource) History(context.Context) ([]assessment.Assessment, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return []assessment.Assessment{{SK: "ASSESS#1"}}, nil
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	src := &scriptedSource{}
	list, err := WithRetry(src, retryConfig()).History(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(list))
	}
	if src.calls != 1 {
		t.Fatalf("expected 1 call, got %d", src.calls)
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	src := &scriptedSource{errs: []error{
		&api.RemoteError{StatusCode: http.StatusBadGateway, Message: "status 502"},
		fmt.Errorf("GET /interview/history: %w", errors.New("connection reset")),
	}}
	_, err := WithRetry(src, retryConfig()).History(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", src.calls)
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	unavailable := &api.RemoteError{StatusCode: http.StatusServiceUnavailable, Message: "status 503"}
	src := &scriptedSource{errs: []error{unavailable, unavailable, unavailable, unavailable}}
	_, err := WithRetry(src, retryConfig()).History(context.Background())
	if !errors.Is(err, unavailable) {
		t.Fatalf("expected last error, got %v", err)
	}
	if src.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", src.calls)
	}
}

func TestRetry_PermanentErrorsNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unauthenticated", api.ErrUnauthenticated},
		{"client error", &api.RemoteError{StatusCode: http.StatusForbidden, Message: "Forbidden"}},
		{"malformed payload", fmt.Errorf("%w: bad", assessment.ErrMalformedHistory)},
		{"cancelled", context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{errs: []error{tt.err}}
			_, err := WithRetry(src, retryConfig()).History(context.Background())
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if src.calls != 1 {
				t.Fatalf("expected 1 call, got %d", src.calls)
			}
		})
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	cfg := retryConfig()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	src := &scriptedSource{errs: []error{errors.New("down")}}
	go cancel()

	_, err := WithRetry(src, cfg).History(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBackoff_Bounds(t *testing.T) {
	r := &RetrySource{config: retryConfig()}
	for attempt := range 6 {
		wait := r.backoff(attempt)
		if wait < 0 || wait > 12*time.Millisecond {
			t.Fatalf("attempt %d: wait %v out of bounds", attempt, wait)
		}
	}
}
