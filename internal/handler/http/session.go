package http

import (
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/logger"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/middleware"
)

// SessionCookie carries the session ID for browser clients.
const SessionCookie = "vv_session"

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieMaxAge time.Duration
	CookieSecure bool
}

// Session resolves the storefront session from the X-Session-ID header or the
// vv_session cookie, minting a new one when neither holds a well-formed ID.
// The session ID is always echoed in the response header; minted sessions are
// also set as a cookie.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := r.Header.Get(middleware.SessionIDHeader)
			if !sessionIDPattern.MatchString(sid) {
				sid = ""
				if c, err := r.Cookie(SessionCookie); err == nil && sessionIDPattern.MatchString(c.Value) {
					sid = c.Value
				}
			}

			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(cfg.CookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(middleware.SessionIDHeader, sid)

			ctx := logger.WithSessionID(r.Context(), sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionID returns the session resolved by Session.
func sessionID(r *http.Request) string {
	return logger.SessionIDFromContext(r.Context())
}
