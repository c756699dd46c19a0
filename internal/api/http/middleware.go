package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"autorent-backend/internal/logger"
	"autorent-backend/internal/security"

	"github.com/google/uuid"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the validated token claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

// RequestLogging tags each request with an id and logs method, path, and
// duration.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("http request",
			"request_id", requestID, "method", r.Method, "path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// RequireRole validates the bearer token and checks it carries one of the
// given roles. The engine behind these handlers trusts this gate and does
// not re-check roles.
func RequireRole(tm security.TokenManager, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims, err := tm.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			if len(roles) > 0 && !claims.HasAnyRole(roles...) {
				WriteError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
