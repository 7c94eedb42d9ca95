package helpers

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	m, err := NewTokenManager("", time.Hour)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestNewTokenManagerDefaultsTTL(t *testing.T) {
	m, err := NewTokenManager("s3cret", 0)
	require.NoError(t, err)
	assert.Equal(t, 100*time.Hour, m.TTL())
}

func TestIssueAndVerify(t *testing.T) {
	m, err := NewTokenManager("s3cret", DefaultTokenTTL)
	require.NoError(t, err)

	tok, exp, err := m.Issue("user-42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), exp, 2*time.Second)

	id, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestTokenPayloadShape(t *testing.T) {
	m, err := NewTokenManager("s3cret", time.Hour)
	require.NoError(t, err)
	tok, _, err := m.Issue("abc")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, map[string]any{"id": "abc"}, payload["user"])
	assert.Contains(t, payload, "exp")
	assert.Contains(t, payload, "iat")
}

func TestVerifyRejectsUniformly(t *testing.T) {
	m, err := NewTokenManager("s3cret", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenManager("other", time.Hour)
	require.NoError(t, err)

	foreign, _, err := other.Issue("abc")
	require.NoError(t, err)

	issuedAt := time.Now()
	expiring, err := NewTokenManager("s3cret", time.Minute)
	require.NoError(t, err)
	expiring.now = func() time.Time { return issuedAt }
	stale, _, err := expiring.Issue("abc")
	require.NoError(t, err)
	m.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{User: TokenUser{ID: "abc"}}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"wrong secret": foreign,
		"expired":      stale,
		"malformed":    "not.a.token",
		"empty":        "",
		"alg none":     noneTok,
		"missing user": noUser,
	} {
		t.Run(name, func(t *testing.T) {
			id, err := m.Verify(tok)
			assert.Empty(t, id)
			assert.Equal(t, ErrInvalidToken, err)
		})
	}
}

func TestTokenOutlivesNothingButExpiry(t *testing.T) {
	m, err := NewTokenManager("s3cret", time.Hour)
	require.NoError(t, err)
	start := time.Now()
	m.now = func() time.Time { return start }
	tok, _, err := m.Issue("abc")
	require.NoError(t, err)

	m.now = func() time.Time { return start.Add(59 * time.Minute) }
	id, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	m.now = func() time.Time { return start.Add(61 * time.Minute) }
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
