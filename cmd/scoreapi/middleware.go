package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fitglue/zonecore/pkg/bootstrap"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

const bearerPrefix = "Bearer "

// firebaseAuth verifies the caller's Firebase ID token via
// auth.Client.VerifyIDToken, the production path the teacher's own
// fit-parser-handler left as a documented TODO (its token check decodes
// the JWT without verifying it). A missing or invalid token is rejected
// before the handler runs; the verified UID is attached to the request
// context under userIDContextKey.
func firebaseAuth(svc *bootstrap.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if svc.Auth == nil {
				http.Error(w, "authentication unavailable", http.StatusServiceUnavailable)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			idToken := strings.TrimPrefix(authHeader, bearerPrefix)

			token, err := svc.Auth.VerifyIDToken(r.Context(), idToken)
			if err != nil {
				logger.Warn("scoreapi: token verification failed", "error", err)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, token.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
