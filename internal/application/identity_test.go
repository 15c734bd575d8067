package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexstu/socialgraph/internal/domain/shared"
	"github.com/nexstu/socialgraph/pkg/helpers"
)

func TestResolveAcceptsBearerAndRawTokens(t *testing.T) {
	jm := helpers.NewJWTManager("test-secret", time.Hour, "test")
	r := NewIdentityResolver(jm)
	tok, _, err := jm.GenerateAccessToken(amaraID)
	require.NoError(t, err)

	for _, cred := range []string{"Bearer " + tok, "bearer " + tok, tok, "  " + tok + " "} {
		id, err := r.Resolve(cred)
		require.NoError(t, err, cred)
		assert.Equal(t, amaraID, id)
	}
}

func TestResolveRejects(t *testing.T) {
	jm := helpers.NewJWTManager("test-secret", time.Hour, "test")
	r := NewIdentityResolver(jm)
	other, _, err := helpers.NewJWTManager("other-secret", time.Hour, "test").GenerateAccessToken(amaraID)
	require.NoError(t, err)
	expired, _, err := helpers.NewJWTManager("test-secret", -time.Minute, "test").GenerateAccessToken(amaraID)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":         "",
		"bearer only":   "Bearer ",
		"one segment":   "abc",
		"two segments":  "abc.def",
		"garbage":       "a.b.c",
		"wrong secret":  other,
		"expired token": expired,
	}
	for name, cred := range cases {
		id, err := r.Resolve(cred)
		assert.ErrorIs(t, err, shared.ErrUnauthenticated, name)
		assert.Empty(t, id, name)
	}

	_, err = r.Resolve(expired)
	assert.Equal(t, "Token expired", shared.MessageOf(err))
}
