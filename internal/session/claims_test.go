package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenFrom(t *testing.T) {
	assert.Equal(t, "abc", TokenFrom(json.RawMessage(`{"token":"abc"}`)))
	assert.Equal(t, "xyz", TokenFrom(json.RawMessage(`{"accessToken":"xyz","user":{"id":1}}`)))
	assert.Equal(t, "snake", TokenFrom(json.RawMessage(`{"access_token":"snake"}`)))
	assert.Empty(t, TokenFrom(json.RawMessage(`{"token":42}`)))
	assert.Empty(t, TokenFrom(json.RawMessage(`["token"]`)))
	assert.Empty(t, TokenFrom(nil))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got, ok := TokenExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())

	_, ok = TokenExpiry("abc")
	assert.False(t, ok, "opaque tokens have no expiry")

	_, ok = TokenExpiry("")
	assert.False(t, ok)
}
