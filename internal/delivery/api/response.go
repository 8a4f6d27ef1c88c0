package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

// APIResponse is the envelope of every response body.
type APIResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *APIError      `json:"error,omitempty"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func success(data any, meta map[string]any) APIResponse {
	return APIResponse{Data: data, Meta: meta}
}

func failure(status int, msg string) APIResponse {
	return APIResponse{Error: &APIError{Code: status, Message: msg}}
}

// degraded is a 200 body carrying a safe default together with the reason
// the real value is missing.
func degraded(data any, msg string) APIResponse {
	return APIResponse{Data: data, Error: &APIError{Code: http.StatusServiceUnavailable, Message: msg}}
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	status := statusFor(err)

	fields := []zap.Field{
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("user_id", c.GetString(userIDKey)),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, fields...)
		c.AbortWithStatusJSON(status, failure(status, msg))
		return
	}

	h.logger.Debug(msg, fields...)
	c.AbortWithStatusJSON(status, failure(status, msg+": "+err.Error()))
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, failure(http.StatusBadRequest, msg))
}

func (h *Handler) respond(c *gin.Context, status int, data any, meta map[string]any) {
	c.JSON(status, success(data, meta))
}
