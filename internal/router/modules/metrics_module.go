package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nexstu/socialgraph/pkg/metrics"
)

// MetricsModule exposes Prometheus at /metrics on the engine root.
type MetricsModule struct{}

func NewMetricsModule() *MetricsModule { return &MetricsModule{} }

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/metrics", gin.WrapH(metrics.Handler()))
}
