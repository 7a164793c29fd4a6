package handler

import (
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

// InterviewChat runs one conversational turn against the session.
func (h *Handler) InterviewChat(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var req model.ChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}
	s, ok := h.loadSession(c, req.SessionID, id.UserID)
	if !ok {
		return
	}

	res, err := h.Chat.Turn(c.Request.Context(), s, req.Message, req.ConversationHistory)
	if err != nil {
		h.fail(c, "interview chat", err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) ScoreAnswer(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}
	var req model.ScoreAnswerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}

	score, err := h.Scorer.Score(c.Request.Context(), req.Question, req.Answer, req.Context)
	if err != nil {
		h.fail(c, "score answer", err)
		return
	}
	response.OK(c, score)
}

// SessionFeedback aggregates scored answers into the session summary and
// marks the session completed.
func (h *Handler) SessionFeedback(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var req model.SessionFeedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}
	if req.StartTime != nil && req.EndTime != nil && req.EndTime.Before(*req.StartTime) {
		response.BadRequest(c, "endTime is before startTime")
		return
	}
	s, ok := h.loadSession(c, req.SessionID, id.UserID)
	if !ok {
		return
	}

	res, err := h.Feedback.Summarize(c.Request.Context(), s, req)
	if err != nil {
		h.fail(c, "session feedback", err)
		return
	}
	h.Logger.Sugar().Infow("session completed", "session_id", s.ID, "average_score", res.AverageScore)
	response.OK(c, res)
}
