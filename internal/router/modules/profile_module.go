package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexstu/socialgraph/internal/interface/http"
	"github.com/nexstu/socialgraph/internal/interface/middleware"
)

type ProfileModule struct {
	Handler  *handlers.ProfileHandler
	Identity middleware.Resolver
	Limits   Limits
}

func NewProfileModule(h *handlers.ProfileHandler, identity middleware.Resolver, limits Limits) *ProfileModule {
	return &ProfileModule{Handler: h, Identity: identity, Limits: limits}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", middleware.Auth(m.Identity), m.Limits.Read(), m.Handler.GetOwnProfile)
	rg.GET("/profile/:user_id", middleware.OptionalAuth(m.Identity), m.Limits.Read(), m.Handler.GetProfile)
}
