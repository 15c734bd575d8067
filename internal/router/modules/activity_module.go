package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexstu/socialgraph/internal/interface/http"
	"github.com/nexstu/socialgraph/internal/interface/middleware"
)

type ActivityModule struct {
	Handler  *handlers.ActivityHandler
	Identity middleware.Resolver
	Limits   Limits
}

func NewActivityModule(h *handlers.ActivityHandler, identity middleware.Resolver, limits Limits) *ActivityModule {
	return &ActivityModule{Handler: h, Identity: identity, Limits: limits}
}

func (m *ActivityModule) Register(rg *gin.RouterGroup) {
	rg.GET("/activity", middleware.Auth(m.Identity), m.Limits.Read(), m.Handler.Recent)
}
