package sessionhttp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

type contextKey struct{}

// SessionID returns the session identifier pinned to the request context, or
// the empty string when the request passed through no session middleware.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)

	return id
}

// WithSessionID returns a context carrying the session identifier. Mostly
// useful in tests and non-HTTP callers that want the same accessor.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, contextKey{}, sessionID)
}

// Middleware returns http middleware that resolves the request's session
// identifier and injects it into the request context. The identifier is read
// from the configured header, then the cookie; when neither is present a new
// one is minted and set as a cookie on the response.
//
// Every request touches the tracker, so a session stays alive as long as it
// keeps making requests.
func Middleware(cfg Config, tracker *Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(cfg.Header)

			if id == "" {
				if cookie, err := r.Cookie(cfg.Cookie); err == nil {
					id = cookie.Value
				}
			}

			if id == "" {
				id = newSessionID()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.Cookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
				})
			}

			tracker.Touch(id)

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

// newSessionID mints a 128-bit random identifier.
func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	return hex.EncodeToString(buf)
}
