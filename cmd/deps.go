package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/careercoach/coach/internal/api"
	"github.com/careercoach/coach/internal/assessment"
	"github.com/careercoach/coach/internal/auth"
	"github.com/careercoach/coach/internal/config"
	"github.com/careercoach/coach/internal/history"
	"github.com/careercoach/coach/internal/telemetry"
)

// newLogger builds the process logger. Command-line output logs to stderr;
// the TUI owns the terminal, so it logs to COACH_LOG_FILE or nowhere. The
// returned close function releases the log file.
func newLogger(cfg config.Config, tui bool) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case tui:
		return slog.New(slog.DiscardHandler), closeFn, nil
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// setupTelemetry starts tracing when configured. Setup failures are logged
// and never block the command.
func setupTelemetry(ctx context.Context, cfg config.Config, logger *slog.Logger) func() {
	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		Endpoint:       cfg.OTelEndpoint,
		Enabled:        cfg.OTelEnabled,
		ServiceVersion: version,
	})
	if err != nil {
		logger.Warn("telemetry disabled", "err", err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown", "err", err)
		}
	}
}

// backend bundles the remote-facing collaborators every command shares.
type backend struct {
	client  *api.Client
	repo    *assessment.Repository
	history history.Source
	tokens  auth.Source
}

func newBackend(cfg config.Config, logger *slog.Logger) backend {
	tokens := cfg.TokenSource()
	client := api.New(
		api.WithBaseURL(cfg.APIURL),
		api.WithTimeout(cfg.Timeout),
		api.WithTokenSource(tokens),
		api.WithLogger(logger),
		api.WithUserAgent("coach/"+version),
	)
	repo := assessment.NewRepository(client, assessment.WithLogger(logger))

	retry := history.DefaultRetryConfig()
	retry.MaxAttempts = cfg.HistoryRetries

	return backend{
		client:  client,
		repo:    repo,
		history: history.WithRetry(repo, retry),
		tokens:  tokens,
	}
}

// identity describes who the client will act as, for display only.
func (b backend) identity(ctx context.Context) string {
	host := b.client.BaseURL()
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		host = u.Host
	}

	tok, err := b.tokens.Token(ctx)
	if err != nil {
		return "signed out · " + host
	}
	if sub := auth.Subject(tok); sub != "" {
		return sub + " · " + host
	}
	return host
}
