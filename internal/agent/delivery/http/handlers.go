package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"student-calendar-assistant/pkg/response"
)

// Chat godoc
// @Summary     Chat with the calendar assistant
// @Description Sends a natural-language message to the assistant. The assistant can look up events, check free/busy, suggest slots, and create or delete events on the student's behalf.
// @Tags        Agent
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Message and optional session ID"
// @Success     200 {object} chatResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := h.orch.ProcessQuery(ctx, req.SessionID, req.Message)
	if err != nil {
		h.l.Errorf(ctx, "orchestrator.ProcessQuery: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, chatResp{SessionID: req.SessionID, Reply: reply})
}
