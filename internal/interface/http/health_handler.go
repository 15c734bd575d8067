package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexstu/socialgraph/pkg/response"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Storage Pinger
}

func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{Storage: storage}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Storage.Ping(ctx); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "Storage unreachable", response.ErrorBody{Code: response.CodeServiceUnavailable})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"storage": "ok"}, "OK", nil)
}
