// internal/handlers/session.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/spyfall-io/spyfall/internal/auth"
)

// EnsureGuestSession resolves the caller's guest identity from the auth_token
// cookie, minting a fresh one when the cookie is absent or invalid. The
// returned id is the stable player identifier for as long as the client keeps
// the cookie; the game core never sees the token itself.
//
// Must be called before the connection is hijacked for websocket use, since
// it may need to set a cookie on the response.
func EnsureGuestSession(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if token := extractCookieToken(r.Header.Get("Cookie"), "auth_token"); token != "" {
		if sub, err := auth.AuthenticateJWT(token); err == nil {
			if id, err := uuid.Parse(sub); err == nil {
				return id, nil
			}
		}
		// Bad or stale token: fall through and mint a new identity.
	}

	id := uuid.New()
	token, err := auth.CreateJWT(id.String())
	if err != nil {
		return uuid.Nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return id, nil
}

// extractCookieToken pulls a named cookie value out of a raw Cookie header,
// or returns empty if not found.
func extractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}
