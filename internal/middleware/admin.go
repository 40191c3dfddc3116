package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"mukbang-backend/internal/models"
)

type profileGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
}

type AdminGuard struct {
	users profileGetter
}

func NewAdminGuard(users profileGetter) *AdminGuard {
	return &AdminGuard{users: users}
}

// Middleware rejects non-admin users. Must run after JWTAuth.Middleware.
// The flag is checked against the database per request so revoking admin
// takes effect without waiting for token expiry.
func (g *AdminGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := GetUserID(r.Context())
		if userID == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		profile, err := g.users.GetByID(r.Context(), userID)
		if err != nil || !profile.IsAdmin {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
