package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexstu/socialgraph/internal/application"
	"github.com/nexstu/socialgraph/pkg/response"
)

type SearchHandler struct {
	Search *application.SearchService
	Logger *logrus.Logger
}

func NewSearchHandler(search *application.SearchService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{Search: search, Logger: logger}
}

func (h *SearchHandler) SearchUsers(c *gin.Context) {
	res, err := h.Search.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toSummaries(res), "OK", gin.H{"count": len(res)})
}
