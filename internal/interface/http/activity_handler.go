package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexstu/socialgraph/internal/application"
	"github.com/nexstu/socialgraph/internal/interface/middleware"
	"github.com/nexstu/socialgraph/pkg/response"
)

type ActivityHandler struct {
	Activities *application.ActivityService
	Logger     *logrus.Logger
}

func NewActivityHandler(acts *application.ActivityService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{Activities: acts, Logger: logger}
}

func (h *ActivityHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.Activities.Recent(c.Request.Context(), middleware.CallerID(c), limit)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toActivities(list), "OK", nil)
}
