// Package config loads client settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/careercoach/coach/internal/auth"
)

// DefaultAPIURL is the backend used when COACH_API_URL is unset. It matches
// the sandbox's default listen address.
const DefaultAPIURL = "http://127.0.0.1:8787"

// Config holds all client configuration.
type Config struct {
	// APIURL is the backend base URL.
	APIURL string `env:"COACH_API_URL" envDefault:"http://127.0.0.1:8787"`

	// Token is a bearer token. Takes precedence over TokenFile.
	Token string `env:"COACH_TOKEN"`

	// TokenFile is re-read on every request. Default:
	// $XDG_CONFIG_HOME/coach/token.
	TokenFile string `env:"COACH_TOKEN_FILE"`

	// DBPath is the attempt journal. Empty resolves via store.DefaultDBPath.
	DBPath string `env:"COACH_DB"`

	// Timeout bounds a single request. Generation can be slow.
	Timeout time.Duration `env:"COACH_TIMEOUT" envDefault:"90s"`

	// HistoryRetries is the number of attempts for a history fetch.
	HistoryRetries int `env:"COACH_HISTORY_RETRIES" envDefault:"3"`

	LogLevel string `env:"COACH_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"COACH_LOG_FILE"`

	OTelEndpoint string `env:"COACH_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"COACH_OTEL_ENABLED" envDefault:"true"`

	// SandboxSecret signs and verifies sandbox tokens.
	SandboxSecret string `env:"COACH_SANDBOX_SECRET" envDefault:"coach-sandbox-dev-secret"`
}

// Load reads .env from the working directory when present, then parses the
// environment. Variables already set win over .env entries.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the environment without touching .env.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = DefaultTokenFile()
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid COACH_API_URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid COACH_API_URL %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid COACH_API_URL %q: missing host", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("COACH_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.HistoryRetries < 1 {
		return fmt.Errorf("COACH_HISTORY_RETRIES must be at least 1, got %d", c.HistoryRetries)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// TokenSource returns the credential chain: Token, then TokenFile.
func (c Config) TokenSource() auth.Source {
	return auth.Chain(auth.Static(c.Token), auth.File(c.TokenFile))
}

// DefaultTokenFile resolves $XDG_CONFIG_HOME/coach/token, falling back to
// ~/.config/coach/token. Returns "" when no home directory is known.
func DefaultTokenFile() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "coach", "token")
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid COACH_LOG_LEVEL %q", s)
	}
}
