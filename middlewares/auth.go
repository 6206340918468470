package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
)

// SessionVerifier resolves a bearer token to its active owner.
type SessionVerifier interface {
	Verify(token string) (models.User, error)
}

type contextKey int

const userContextKey contextKey = iota

// CurrentUser returns the authenticated user placed on the request context by
// RequireAuth.
func CurrentUser(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(userContextKey).(models.User)
	return user, ok
}

// RequireAuth reads the auth cookie once, validates it, and hands the handler
// a request carrying the resolved user. Handlers never touch the cookie.
func RequireAuth(v SessionVerifier, f http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(utils.AUTH_COOKIE_NAME)
		if err != nil || cookie.Value == "" {
			unauthorized(w, utils.NO_TOKEN)
			return
		}
		user, err := v.Verify(cookie.Value)
		if err != nil {
			unauthorized(w, utils.INVALID_TOKEN)
			return
		}
		f(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// RequireAdmin is RequireAuth plus an admin-role check.
func RequireAdmin(v SessionVerifier, f http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(v, func(w http.ResponseWriter, r *http.Request) {
		user, _ := CurrentUser(r)
		if user.Role != models.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": utils.ADMIN_REQUIRED})
			return
		}
		f(w, r)
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
