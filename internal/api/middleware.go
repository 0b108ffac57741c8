package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/JobDeck-io/jobdeck/internal/auth"
	"github.com/JobDeck-io/jobdeck/internal/models"
)

type contextKey string

const adminContextKey contextKey = "admin"

// RequireAdmin authenticates a request with either the session cookie or a
// signed Bearer token, and puts the admin on the context.
func (api *Api) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := auth.SessionTokenFromRequest(r); token != "" {
			admin, err := api.auth.AdminFromSession(token)
			if err == nil {
				ctx := context.WithValue(r.Context(), adminContextKey, admin)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respondError(w, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			claims, err := api.tokens.ValidateToken(parts[1])
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			admin := &models.Admin{ID: claims.AdminID, Username: claims.Username}
			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		respondError(w, http.StatusUnauthorized, "Not authenticated")
	})
}

// AdminFromContext retrieves the authenticated admin from the context
func AdminFromContext(ctx context.Context) (*models.Admin, bool) {
	admin, ok := ctx.Value(adminContextKey).(*models.Admin)
	return admin, ok
}
