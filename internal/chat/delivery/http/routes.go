package http

import (
	"github.com/gin-gonic/gin"

	"support-router/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Only the chat endpoint is rate limited; it is the one that spends LLM tokens.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.POST("/chat", mw.RateLimit(), h.Chat)
	rg.GET("/intents", h.Intents)
	rg.GET("/stats", h.Stats)
}
