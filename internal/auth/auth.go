// Package auth supplies bearer credentials issued by the external identity
// provider. It never signs users in; it only reads and sanity-checks tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoCredential indicates no token is configured.
	ErrNoCredential = errors.New("no credential available")

	// ErrExpired indicates a JWT whose exp claim has passed.
	ErrExpired = errors.New("credential expired")
)

// Source yields the current bearer token.
type Source interface {
	Token(ctx context.Context) (string, error)
}

// Static returns a Source that always yields token after validation.
func Static(token string) Source {
	return staticSource(token)
}

type staticSource string

func (s staticSource) Token(context.Context) (string, error) {
	tok := strings.TrimSpace(string(s))
	if err := Validate(tok, time.Now()); err != nil {
		return "", err
	}
	return tok, nil
}

// File returns a Source that reads the token from path on every call, so a
// login refresh done by another program is picked up without a restart.
// A missing file is ErrNoCredential.
func File(path string) Source {
	return fileSource(path)
}

type fileSource string

func (f fileSource) Token(context.Context) (string, error) {
	if f == "" {
		return "", ErrNoCredential
	}
	raw, err := os.ReadFile(string(f))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	tok := strings.TrimSpace(string(raw))
	if err := Validate(tok, time.Now()); err != nil {
		return "", err
	}
	return tok, nil
}

// Chain returns a Source that tries each source in order and yields the
// first token found. Sources reporting ErrNoCredential are skipped; any
// other error stops the chain.
func Chain(sources ...Source) Source {
	return chainSource(sources)
}

type chainSource []Source

func (c chainSource) Token(ctx context.Context) (string, error) {
	for _, s := range c {
		if s == nil {
			continue
		}
		tok, err := s.Token(ctx)
		if errors.Is(err, ErrNoCredential) {
			continue
		}
		if err != nil {
			return "", err
		}
		return tok, nil
	}
	return "", ErrNoCredential
}

// Validate checks token without verifying its signature; the backend does
// that. Opaque (non-JWT) tokens are accepted as is. A JWT is rejected only
// when its exp claim is at or before now.
func Validate(token string, now time.Time) error {
	if strings.TrimSpace(token) == "" {
		return ErrNoCredential
	}
	claims, ok := parse(token)
	if !ok {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if !now.Before(exp.Time) {
		return fmt.Errorf("%w at %s", ErrExpired, exp.Time.Format(time.RFC3339))
	}
	return nil
}

// Subject returns the sub claim of a JWT, or "" for opaque tokens.
func Subject(token string) string {
	claims, ok := parse(token)
	if !ok {
		return ""
	}
	sub, _ := claims.GetSubject()
	return sub
}

func parse(token string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
