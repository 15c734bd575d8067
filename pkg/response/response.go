package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexstu/socialgraph/internal/domain/shared"
)

type APIResponse[T any] struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Message   string      `json:"message"`
	Data      T           `json:"data"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// ErrorBody is the stable machine-readable part of an error response.
type ErrorBody struct {
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeSelfFollow         = "SELF_FOLLOW"
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

// Success writes a success envelope.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    "success",
		Code:      status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes an error envelope and aborts the chain.
func Error(ctx *gin.Context, status int, message string, body ErrorBody) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, APIResponse[any]{
		Status:    "error",
		Code:      status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Message:   message,
		Error:     body,
	})
}

// StatusOf maps a domain error to an HTTP status and stable code.
func StatusOf(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthenticated
	case errors.Is(err, shared.ErrSelfFollow):
		return http.StatusBadRequest, CodeSelfFollow
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, shared.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, CodeServiceUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// FromError writes the envelope for err. Unclassified errors never leak
// their text to the client.
func FromError(ctx *gin.Context, err error) {
	status, code := StatusOf(err)
	msg := shared.MessageOf(err)
	if code == CodeInternal {
		msg = "Internal server error"
	}
	_ = ctx.Error(err)
	Error(ctx, status, msg, ErrorBody{Code: code})
}
