package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexstu/socialgraph/internal/application"
	"github.com/nexstu/socialgraph/internal/domain/entity"
	"github.com/nexstu/socialgraph/internal/interface/middleware"
	"github.com/nexstu/socialgraph/pkg/response"
)

type SocialHandler struct {
	Relationships *application.RelationshipService
	Connections   *application.ConnectionService
	Logger        *logrus.Logger
}

func NewSocialHandler(rel *application.RelationshipService, conns *application.ConnectionService, logger *logrus.Logger) *SocialHandler {
	return &SocialHandler{Relationships: rel, Connections: conns, Logger: logger}
}

type followRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
}

type connectionsQuery struct {
	Type   string `form:"type" binding:"required,connkind"`
	Limit  int    `form:"limit" binding:"gte=0,lte=100"`
	Offset int    `form:"offset" binding:"gte=0"`
}

// Follow toggles the caller's follow edge towards target_user_id.
func (h *SocialHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	res, err := h.Relationships.Toggle(c.Request.Context(), middleware.CallerID(c), req.TargetUserID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}

	msg := "Followed"
	if res.Action == entity.ActionUnfollowed {
		msg = "Unfollowed"
	}
	response.Success(c, http.StatusOK, res, msg, nil)
}

// ListConnections pages through a user's followers or followees.
func (h *SocialHandler) ListConnections(c *gin.Context) {
	var q connectionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.Connections.List(c.Request.Context(), c.Param("user_id"), entity.ConnectionKind(q.Type), q.Limit, q.Offset)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toSummaries(list), "OK", gin.H{
		"type":   q.Type,
		"limit":  q.Limit,
		"offset": q.Offset,
		"count":  len(list),
	})
}
