// Package sandbox is a local stand-in for the interview assessment backend.
// It speaks the same wire contract as the hosted service, including the
// Lambda proxy envelope, so the client can be exercised end to end offline.
package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"github.com/careercoach/coach/internal/assessment"
)

// Server serves the interview endpoints from memory.
type Server struct {
	secret   []byte
	raw      bool
	quizSize int
	bank     []assessment.Question
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	rng     *rand.Rand
	records map[string][]assessment.Assessment // by user id
}

// Option configures a Server.
type Option func(*Server)

// WithSecret sets the HS256 signing secret.
func WithSecret(secret string) Option {
	return func(s *Server) {
		s.secret = []byte(secret)
	}
}

// WithRaw disables the Lambda proxy envelope: payloads are written as plain
// JSON bodies.
func WithRaw(raw bool) Option {
	return func(s *Server) {
		s.raw = raw
	}
}

// WithQuizSize sets the number of questions per quiz.
func WithQuizSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.quizSize = n
		}
	}
}

// WithBank replaces the built-in question bank.
func WithBank(bank []assessment.Question) Option {
	return func(s *Server) {
		s.bank = bank
	}
}

// WithSeed makes question draws deterministic.
func WithSeed(seed uint64) Option {
	return func(s *Server) {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a Server.
func New(opts ...Option) *Server {
	s := &Server{
		secret:   []byte("coach-sandbox-dev-secret"),
		quizSize: DefaultQuizSize,
		bank:     DefaultBank(),
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		records:  make(map[string][]assessment.Assessment),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/interview", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/generate", s.handleGenerate)
		r.Post("/save", s.handleSave)
		r.Get("/history", s.handleHistory)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found: "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed: "+r.Method+" "+r.URL.Path)
	})

	return r
}

// MintToken issues a signed bearer token for sub valid for ttl.
func (s *Server) MintToken(sub string, ttl time.Duration) (string, error) {
	if sub == "" {
		return "", errors.New("mint token: empty subject")
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    "coach-sandbox",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

type contextKey string

const userIDKey contextKey = "user_id"

func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// authenticate verifies the bearer token and attaches its subject to the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			writeError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "Token has expired")
				return
			}
			writeError(w, http.StatusUnauthorized, "Token validation failed")
			return
		}
		if claims.Subject == "" {
			writeError(w, http.StatusUnauthorized, "Token has no subject")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"latency", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

// respond writes a success payload, wrapped in the Lambda proxy envelope
// unless the server runs raw.
func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	if s.raw {
		writeJSON(w, status, payload)
		return
	}
	inner, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "JSON Serialization Error")
		return
	}
	writeJSON(w, status, envelope{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(inner),
	})
}

// envelope is the Lambda proxy integration response shape.
type envelope struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) errorf(w http.ResponseWriter, status int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.logger.Warn("request rejected", "status", status, "err", msg)
	writeError(w, status, msg)
}
