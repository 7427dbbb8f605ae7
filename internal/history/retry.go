package history

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/careercoach/coach/internal/api"
	"github.com/careercoach/coach/internal/assessment"
)

// RetryConfig configures retries for history fetches.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns three attempts with 500ms doubling backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     4 * time.Second,
		Multiplier:  2.0,
	}
}

// RetrySource is a decorator that retries transient history failures with
// exponential backoff and jitter. History reads have no side effects, unlike
// quiz generation and submission, which are never retried.
type RetrySource struct {
	inner  Source
	config RetryConfig
}

// WithRetry wraps src with retry logic.
func WithRetry(src Source, cfg RetryConfig) Source {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetrySource{inner: src, config: cfg}
}

func (r *RetrySource) History(ctx context.Context) ([]assessment.Assessment, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		list, err := r.inner.History(ctx)
		if err == nil {
			return list, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// Last attempt: return the error without sleeping.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return nil, lastErr
}

// shouldRetry reports whether err is transient.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Re-authentication is the user's job.
	if errors.Is(err, api.ErrUnauthenticated) {
		return false
	}

	var re *api.RemoteError
	if errors.As(err, &re) {
		return re.StatusCode == http.StatusTooManyRequests || re.StatusCode >= 500
	}

	// A payload that does not decode won't decode on the next try either.
	if errors.Is(err, assessment.ErrMalformedHistory) {
		return false
	}

	// Network errors are transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetrySource) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
