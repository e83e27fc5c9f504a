package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"aquascout-backend/internal/domain"
	"aquascout-backend/internal/logger"
	"aquascout-backend/internal/security"
)

type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyRole   contextKey = "role"
)

// AuthMiddleware validates the bearer token and stashes the caller's
// identity on the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeError(w, http.StatusUnauthorized, security.ErrWrongTokenType.Error())
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, contextKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers whose token carries a different role.
func RequireRole(role domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if actorRole(r) != role {
			writeError(w, http.StatusForbidden, "insufficient role")
			return
		}
		next(w, r)
	}
}

func actorID(r *http.Request) int32 {
	id, _ := r.Context().Value(contextKeyUserID).(int32)
	return id
}

func actorRole(r *http.Request) domain.Role {
	role, _ := r.Context().Value(contextKeyRole).(domain.Role)
	return role
}

// LoggingMiddleware logs one line per request with status and latency.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.InfoContext(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
