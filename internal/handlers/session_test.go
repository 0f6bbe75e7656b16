// internal/handlers/session_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyfall-io/spyfall/internal/auth"
)

func TestEnsureGuestSessionMintsAndReusesIdentity(t *testing.T) {
	auth.Init()

	// First contact: no cookie, a fresh identity is minted and set.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/rooms/ws/ABCDEF", nil)
	id1, err := EnsureGuestSession(w, r)
	require.NoError(t, err)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "expected an auth_token cookie to be set")
	assert.True(t, cookie.HttpOnly)

	// Second contact with the cookie: same identity, no new cookie.
	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodGet, "/rooms/ws/ABCDEF", nil)
	r2.Header.Set("Cookie", cookie.Name+"="+cookie.Value)
	id2, err := EnsureGuestSession(w2, r2)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Empty(t, w2.Result().Cookies())
}

func TestEnsureGuestSessionReplacesBadToken(t *testing.T) {
	auth.Init()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Cookie", "auth_token=garbage")
	id, err := EnsureGuestSession(w, r)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, w.Result().Cookies(), 1, "a replacement cookie must be issued")
}

func TestExtractCookieToken(t *testing.T) {
	assert.Equal(t, "abc", extractCookieToken("auth_token=abc", "auth_token"))
	assert.Equal(t, "abc", extractCookieToken("other=x; auth_token=abc; y=z", "auth_token"))
	assert.Equal(t, "", extractCookieToken("other=x", "auth_token"))
	assert.Equal(t, "", extractCookieToken("", "auth_token"))
}
