package middleware

import (
	"context"
	"log"
	"net/http"

	"proinc-backend/internal/models"
)

// RoleLookup resolves the user record behind a session for the role check.
type RoleLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// AdminOnly gates a route group on role == admin. A missing user record is
// treated as a security-relevant anomaly and denied outright, never a
// crash; no partial content is ever rendered past this point.
func AdminOnly(users RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("Error checking admin role for %s: %v", userID, err)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if user == nil {
				log.Printf("⚠️  Admin check: no user record for %s", userID)
				writeError(w, http.StatusForbidden, "admin access required")
				return
			}
			if user.Role != models.RoleAdmin {
				writeError(w, http.StatusForbidden, "admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
