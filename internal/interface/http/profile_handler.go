package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexstu/socialgraph/internal/application"
	"github.com/nexstu/socialgraph/internal/interface/middleware"
	"github.com/nexstu/socialgraph/pkg/response"
)

type ProfileHandler struct {
	Profiles *application.ProfileService
	Logger   *logrus.Logger
}

func NewProfileHandler(profiles *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Logger: logger}
}

// GetProfile serves a public profile; the viewer is optional.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	view, err := h.Profiles.GetProfile(c.Request.Context(), c.Param("user_id"), middleware.CallerID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(view), "OK", nil)
}

// GetOwnProfile serves the caller's own profile.
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	view, err := h.Profiles.GetOwnProfile(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(view), "OK", nil)
}
