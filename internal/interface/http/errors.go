package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexstu/socialgraph/pkg/response"
	"github.com/nexstu/socialgraph/pkg/validation"
)

// fail logs unexpected failures and writes the mapped envelope.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status, _ := response.StatusOf(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
	}
	response.FromError(c, err)
}

func bindFailed(c *gin.Context, err error) {
	details := validation.ToDetails(err)
	response.Error(c, http.StatusBadRequest, validation.FirstMessage(details), response.ErrorBody{
		Code:    response.CodeValidation,
		Details: details,
	})
}
