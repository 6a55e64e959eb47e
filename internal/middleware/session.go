package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type sessionContextKey struct{}

// SessionCookieName identifies the anonymous browser session used for
// vote/flag deduplication. The cookie is not tied to any account; a new
// browser session gets a new ID, so deduplication is advisory only.
const SessionCookieName = "scamsentry_session"

// Session assigns an anonymous session ID cookie to every request that
// lacks one and puts the ID on the request context.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
			sessionID = c.Value
		} else {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(24 * time.Hour),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionContextKey{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID returns the anonymous session ID from context, or "" if
// the session middleware did not run.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionContextKey{}).(string); ok {
		return id
	}
	return ""
}
