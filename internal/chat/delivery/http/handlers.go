package http

import (
	"github.com/gin-gonic/gin"

	"support-router/pkg/response"
)

// Chat godoc
// @Summary     Answer a customer message
// @Description Classifies the message, routes it to a template, retrieval-augmented generation or escalation, and returns the answer with its routing decision.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Customer message"
// @Success     200  {object} chatResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	turn, err := h.uc.Chat(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Chat: %v", err)
		h.writeError(c, err)
		return
	}

	response.OK(c, h.newChatResp(turn))
}

// Intents godoc
// @Summary     List routed intents
// @Description Returns the routing table grouped by bucket with cost tiers and the confidence threshold.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} intentsResp
// @Router      /api/v1/intents [GET]
func (h *handler) Intents(c *gin.Context) {
	response.OK(c, h.newIntentsResp(h.uc.Intents(c.Request.Context())))
}

// Stats godoc
// @Summary     Routing statistics
// @Description Returns request counts per bucket and action, confidence statistics and the estimated cost against escalating every request.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} statsResp
// @Router      /api/v1/stats [GET]
func (h *handler) Stats(c *gin.Context) {
	response.OK(c, h.newStatsResp(h.uc.Stats(c.Request.Context())))
}
