package middleware

import (
	"context"
	"net/http"

	"github.com/vocabulariojapones/backend/internal/models"
)

const userIDKey contextKey = "userID"

// SessionCookieName is the cookie carrying the opaque session token
const SessionCookieName = "session_token"

// SessionResolver resolves a session token to the logged-in user.
// It is implemented by the auth service.
type SessionResolver interface {
	// CurrentUser resolves the user behind a session token. Returns an error
	// when the session does not exist or has expired.
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware validates the session cookie and puts the user ID into the request context
func AuthMiddleware(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}

			user, err := sessions.CurrentUser(r.Context(), cookie.Value)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid or expired session"}`))
				return
			}

			// Add userID to context
			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}
