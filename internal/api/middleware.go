package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"verdant/internal/types"
)

// Authenticator resolves a bearer token to a user ID.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// SingleUserAuthenticator accepts exactly one static token. The deployment
// target is a personal garden tracker, so a single pre-shared token keeps
// the surface small while the Authenticator interface leaves room for a
// real token service.
type SingleUserAuthenticator struct {
	Token  types.SecretString
	UserID string
}

// Authenticate compares the presented token against the configured one.
func (a SingleUserAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	if token != a.Token.Unmask() || a.UserID == "" {
		return "", types.NewAppError(types.ErrCodeAuthTokenInvalid, "invalid token", nil)
	}
	return a.UserID, nil
}

// responseCapture wraps an http.ResponseWriter to record the status code
// written by downstream handlers.
type responseCapture struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rc *responseCapture) WriteHeader(code int) {
	if !rc.written {
		rc.statusCode = code
		rc.written = true
	}
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	if !rc.written {
		rc.statusCode = http.StatusOK
		rc.written = true
	}
	return rc.ResponseWriter.Write(b)
}

func (rc *responseCapture) Unwrap() http.ResponseWriter {
	return rc.ResponseWriter
}

// Recoverer catches panics in the handler chain, logs the stack trace,
// and writes a standardized 500 response. Outermost middleware.
func (s *Server) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				s.logger.Error("panic recovered",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprintf("%v", rvr)),
					slog.String("stack", string(debug.Stack())),
				)
				Error(w, r, types.NewAppError(types.ErrCodeInternalUnexpected, "an unexpected error occurred", nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware propagates an incoming X-Request-Id or generates a
// fresh one, storing it in the context and echoing it on the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = newRequestID()
		}
		ctx := types.WithRequestID(r.Context(), reqID)
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "req-unknown"
	}
	return "req-" + hex.EncodeToString(buf)
}

// RequestLogger logs request metadata after the handler chain completes.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rc := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rc, r)

			logger.InfoContext(r.Context(), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rc.statusCode),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", types.GetRequestID(r.Context())),
			)
		})
	}
}

// AuthMiddleware resolves the bearer token to a user ID and stores it in
// the request context.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			Error(w, r, types.NewAppError(types.ErrCodeAuthTokenMissing, "authorization header required", nil))
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			Error(w, r, types.NewAppError(types.ErrCodeAuthTokenInvalid, "authorization header must use the Bearer scheme", nil))
			return
		}

		userID, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(types.WithUserID(r.Context(), userID)))
	})
}
