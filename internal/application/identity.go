package application

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nexstu/socialgraph/internal/domain/shared"
	"github.com/nexstu/socialgraph/pkg/helpers"
)

// TokenParser verifies a compact JWT and returns its claims.
type TokenParser interface {
	ParseAccessToken(tokenStr string) (*helpers.Claims, error)
}

// IdentityResolver turns a bearer credential into a caller id.
type IdentityResolver struct {
	Tokens TokenParser
}

func NewIdentityResolver(tokens TokenParser) *IdentityResolver {
	return &IdentityResolver{Tokens: tokens}
}

// Resolve accepts "Bearer <jwt>" or a raw token. Every failure is
// ErrUnauthenticated; callers treat an empty credential as anonymous before
// calling.
func (r *IdentityResolver) Resolve(credential string) (string, error) {
	const op = "identity.Resolve"
	tok := strings.TrimSpace(credential)
	if len(tok) >= 7 && strings.EqualFold(tok[:7], "bearer ") {
		tok = strings.TrimSpace(tok[7:])
	}
	if tok == "" {
		return "", shared.E(op, shared.ErrUnauthenticated, "Authentication required", nil)
	}
	if strings.Count(tok, ".") != 2 {
		return "", shared.E(op, shared.ErrUnauthenticated, "Malformed token", nil)
	}

	claims, err := r.Tokens.ParseAccessToken(tok)
	if err != nil {
		msg := "Invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "Token expired"
		}
		return "", shared.E(op, shared.ErrUnauthenticated, msg, err)
	}
	id := claims.Identity()
	if id == "" {
		return "", shared.E(op, shared.ErrUnauthenticated, "Token carries no user id", nil)
	}
	return id, nil
}
