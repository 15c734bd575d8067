package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nexstu/socialgraph/internal/container"
	"github.com/nexstu/socialgraph/internal/interface/middleware"
	"github.com/nexstu/socialgraph/pkg/validation"
)

// NewEngine builds the Gin engine with global middleware and every module
// registered from the container.
func NewEngine() *gin.Engine {
	cfg := container.GetConfig()
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID, "X-RateLimit-Remaining", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(container.GetLogger()))
	}

	reg := NewRegistry(r)
	reg.Use(middleware.Timeout(cfg.RequestTimeout))
	InitModules(reg)
	reg.RegisterAll()
	return r
}
