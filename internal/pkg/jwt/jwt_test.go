package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret", CookieOptions{Name: "tempus_session"})
}

func TestSessionToken_RoundTrip(t *testing.T) {
	svc := newTestService()
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	token, err := svc.GenerateSessionToken("3f0c1b5e-1111-4a4a-8a8a-000000000001", 42, expiresAt)
	require.NoError(t, err)

	claims, err := svc.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "3f0c1b5e-1111-4a4a-8a8a-000000000001", claims.SessionID)
	assert.Equal(t, int64(42), claims.UserID)
	assert.True(t, claims.ExpiresAt.Equal(expiresAt))
}

func TestParseSessionToken_Expired(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateSessionToken("sid", 1, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = svc.ParseSessionToken(token)
	assert.Error(t, err)
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	other := NewJWTService("another-secret", CookieOptions{Name: "tempus_session"})
	token, err := other.GenerateSessionToken("sid", 1, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = newTestService().ParseSessionToken(token)
	assert.Error(t, err)
}

func TestParseSessionToken_WrongType(t *testing.T) {
	svc := newTestService()
	_, token, err := svc.JWTAuth().Encode(map[string]interface{}{
		"jti":  "sid",
		"sub":  "1",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"type": "access",
	})
	require.NoError(t, err)

	_, err = svc.ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionCookie(t *testing.T) {
	svc := NewJWTService("test-secret", CookieOptions{Name: "tempus_session", Secure: true})
	expiresAt := time.Now().Add(30 * 24 * time.Hour)

	cookie := svc.SessionCookie("value", expiresAt)
	assert.Equal(t, "tempus_session", cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Greater(t, cookie.MaxAge, 0)

	cleared := svc.ClearSessionCookie()
	assert.Equal(t, "tempus_session", cleared.Name)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestTokenFromCookie(t *testing.T) {
	find := TokenFromCookie("tempus_session")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", find(r))

	r.AddCookie(&http.Cookie{Name: "tempus_session", Value: "abc"})
	assert.Equal(t, "abc", find(r))
}
