package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nexstu/socialgraph/internal/interface/middleware"
)

// Limits builds the per-minute limiters shared by the feature modules.
type Limits struct {
	Redis        *redis.Client
	FollowPerMin int
	ReadPerMin   int
}

// Follow limits toggles per caller; it runs after Auth.
func (l Limits) Follow() gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, "follow", l.FollowPerMin, time.Minute, middleware.KeyByUserID("follow"), nil)
}

// Read limits read endpoints per client IP.
func (l Limits) Read() gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, "read", l.ReadPerMin, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
}
