package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Config reads so host settings don't leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"COACH_API_URL", "COACH_TOKEN", "COACH_TOKEN_FILE", "COACH_DB",
		"COACH_TIMEOUT", "COACH_HISTORY_RETRIES", "COACH_LOG_LEVEL", "COACH_LOG_FILE",
		"COACH_OTEL_ENDPOINT", "COACH_OTEL_ENABLED", "COACH_SANDBOX_SECRET",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.HistoryRetries)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, filepath.Join("/cfg", "coach", "token"), cfg.TokenFile)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("COACH_API_URL", "https://api.example.com/prod")
	t.Setenv("COACH_TOKEN", "tok")
	t.Setenv("COACH_TIMEOUT", "5s")
	t.Setenv("COACH_OTEL_ENABLED", "false")
	t.Setenv("COACH_TOKEN_FILE", "/tmp/tok")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/prod", cfg.APIURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "/tmp/tok", cfg.TokenFile)
}

func TestFromEnv_BadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("COACH_TIMEOUT", "soon")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("COACH_API_URL=http://from-dotenv:9000\nCOACH_LOG_LEVEL=debug\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("COACH_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:9000", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over .env")
	os.Unsetenv("COACH_API_URL")
}

func TestLoad_NoDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load()
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{APIURL: DefaultAPIURL, Timeout: time.Second, HistoryRetries: 1, LogLevel: "info"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad scheme", func(c *Config) { c.APIURL = "ftp://x" }},
		{"no host", func(c *Config) { c.APIURL = "http://" }},
		{"unparseable", func(c *Config) { c.APIURL = "http://[::1" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"no retries", func(c *Config) { c.HistoryRetries = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestTokenSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))

	tok, err := Config{TokenFile: path}.TokenSource().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-file", tok)

	tok, err = Config{Token: "from-env", TokenFile: path}.TokenSource().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-env", tok)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
