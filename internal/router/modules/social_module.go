package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexstu/socialgraph/internal/interface/http"
	"github.com/nexstu/socialgraph/internal/interface/middleware"
)

// SocialModule wires the follow graph routes.
// Protected: POST /api/follow
// Public: GET /api/users/:user_id/connections
type SocialModule struct {
	Handler  *handlers.SocialHandler
	Identity middleware.Resolver
	Limits   Limits
}

func NewSocialModule(h *handlers.SocialHandler, identity middleware.Resolver, limits Limits) *SocialModule {
	return &SocialModule{Handler: h, Identity: identity, Limits: limits}
}

func (m *SocialModule) Register(rg *gin.RouterGroup) {
	rg.POST("/follow", middleware.Auth(m.Identity), m.Limits.Follow(), m.Handler.Follow)
	rg.GET("/users/:user_id/connections", m.Limits.Read(), m.Handler.ListConnections)
}
