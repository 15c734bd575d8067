package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexstu/socialgraph/internal/domain/shared"
	"github.com/nexstu/socialgraph/pkg/response"
)

const CtxUserIDKey = "userID"

// Resolver turns a credential into a caller id.
type Resolver interface {
	Resolve(credential string) (string, error)
}

// Auth requires a verifiable bearer token and sets userID in the Gin context.
func Auth(identity Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := credential(c)
		if cred == "" {
			response.Error(c, http.StatusUnauthorized, "Authentication required", response.ErrorBody{Code: response.CodeUnauthenticated})
			return
		}
		uid, err := identity.Resolve(cred)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, shared.MessageOf(err), response.ErrorBody{Code: response.CodeUnauthenticated})
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through with no userID. A credential
// that is present but invalid is still rejected.
func OptionalAuth(identity Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := credential(c)
		if cred == "" {
			c.Next()
			return
		}
		uid, err := identity.Resolve(cred)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, shared.MessageOf(err), response.ErrorBody{Code: response.CodeUnauthenticated})
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

// CallerID returns the authenticated user id, or "" for anonymous requests.
func CallerID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

func credential(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.EqualFold(h, "bearer") {
		return ""
	}
	return h
}
