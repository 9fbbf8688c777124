package http

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"support-router/internal/chat"
	"support-router/pkg/response"
)

// writeError translates use-case errors into HTTP responses.
// Collaborator failures never reach here; Chat recovers them into a degraded turn.
func (h *handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrMessageTooLong):
		response.Error(c, err, map[string]interface{}{"field": "message"})
	case errors.Is(err, context.Canceled):
		c.Abort()
	case errors.Is(err, context.DeadlineExceeded):
		response.ServiceUnavailable(c, "request timed out")
	default:
		response.InternalError(c, err)
	}
}
