// file: internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"picnicquest/internal/services"
)

// Auth middleware validates the bearer token and puts the user ID into
// the request context. Requests without a valid token get 401.
func Auth(auth services.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			userID, err := auth.ValidateToken(r.Context(), token)
			if err != nil {
				GetLogger(r.Context(), logger).Debug("Token validation failed", zap.Error(err))
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"error":{"type":"UNAUTHORIZED","message":"authentication required"}}`))
}
