package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/oxturret/turretweb/internal/model"
	"github.com/oxturret/turretweb/internal/services/auth"
	"github.com/oxturret/turretweb/internal/services/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "SESSION"

// Sessions outlive browser restarts; 400 days, matching the cookie cap
// most browsers enforce.
const sessionCookieMaxAge = 34560000

// GetSessionID retrieves the authenticated session from the request context.
// It is empty only for requests that bypassed the auth middleware.
func GetSessionID(ctx context.Context) model.SessionID {
	id, _ := ctx.Value(sessionContextKey).(model.SessionID)
	return id
}

// Auth gates requests on HTTP Basic credentials or an existing session
// cookie. Authorized requests get a session (created if needed), a
// refreshed cookie, and the session id in the request context. Everything
// else gets a 401 inviting Basic auth.
func Auth(authService *auth.Service, sessions *session.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)

			authorized := false
			if username, password, ok := r.BasicAuth(); ok && authService.VerifyBasic(username, password) {
				authorized = true
			}
			if !authorized && token != "" {
				exists, err := sessions.Exists(r.Context(), token)
				if err != nil {
					logger.Error("session lookup failed", slog.String("error", err.Error()))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				authorized = exists
			}
			if !authorized {
				w.Header().Set("WWW-Authenticate", "Basic")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			sessionID, err := sessions.GetOrCreate(r.Context(), token)
			if err != nil {
				logger.Error("session resolution failed", slog.String("error", err.Error()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			// Refresh the cookie on every authorized request.
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    string(sessionID),
				Path:     "/",
				MaxAge:   sessionCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			})

			ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
