package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexstu/socialgraph/internal/interface/http"
)

type SearchModule struct {
	Handler *handlers.SearchHandler
	Limits  Limits
}

func NewSearchModule(h *handlers.SearchHandler, limits Limits) *SearchModule {
	return &SearchModule{Handler: h, Limits: limits}
}

func (m *SearchModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users/search", m.Limits.Read(), m.Handler.SearchUsers)
}
