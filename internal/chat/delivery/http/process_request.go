package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// processChatReq binds and validates the chat request body. The rate limiter
// may already have read the body, so it is bound from the context cache.
func (h *handler) processChatReq(c *gin.Context) (chatReq, error) {
	var req chatReq
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		return req, err
	}
	return req, req.validate()
}
