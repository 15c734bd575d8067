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

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "nexstu")

	tok, exp, err := m.GenerateAccessToken("2f1b7a52-8d1e-4d8b-9a53-0a4c1a0b9f11")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
	assert.Equal(t, 2, strings.Count(tok, "."))

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "2f1b7a52-8d1e-4d8b-9a53-0a4c1a0b9f11", claims.Identity())
	assert.Same(t, m, DefaultJWT())
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := NewJWTManager("one", time.Hour, "")
	verifier := NewJWTManager("two", time.Hour, "")

	tok, _, err := signer.GenerateAccessToken("u1")
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, "")
	tok, _, err := m.GenerateAccessToken("u1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRejectsUnsignedPayload(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "")
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"data":{"id":1}}`))

	_, err := m.ParseAccessToken(header + "." + payload + ".")
	assert.Error(t, err)
}

func TestLegacyDataClaim(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Data: &LegacyData{ID: "7c1e"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := tok.SignedString(m.AccessSecret)
	require.NoError(t, err)

	claims, err := m.ParseAccessToken(s)
	require.NoError(t, err)
	assert.Equal(t, "7c1e", claims.Identity())
}

func TestLegacyIDAcceptsNumbers(t *testing.T) {
	var d LegacyData
	require.NoError(t, json.Unmarshal([]byte(`{"id":42}`), &d))
	assert.Equal(t, LegacyID("42"), d.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc"}`), &d))
	assert.Equal(t, LegacyID("abc"), d.ID)
}

func TestParseRequiresIdentity(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	s, err := tok.SignedString(m.AccessSecret)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(s)
	assert.ErrorIs(t, err, ErrMissingUserID)
}
