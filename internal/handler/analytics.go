package handler

import (
	"time"

	"github.com/abhishek622/mockmate/internal/analytics"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

// TrackQuestion records telemetry for one question of a session.
func (h *Handler) TrackQuestion(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var req model.TrackQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}
	if _, ok := h.loadSession(c, req.SessionID, id.UserID); !ok {
		return
	}

	if err := h.Analytics.TrackQuestion(c.Request.Context(), req.SessionID, req.QuestionAnalytics); err != nil {
		h.fail(c, "track question", err)
		return
	}
	response.Success(c)
}

// CompleteSessionAnalytics computes and stores the session summary, then
// returns it with advice strings.
func (h *Handler) CompleteSessionAnalytics(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}
	var req model.CompleteAnalyticsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}
	s, ok := h.loadSession(c, sessionID, id.UserID)
	if !ok {
		return
	}

	stats := analytics.CalculateSessionStats(req.Questions)
	sa := model.SessionAnalytics{
		SessionID:       s.ID,
		Role:            s.Role,
		ExperienceLevel: s.ExperienceLevel,
		SessionStats:    stats,
		CompletedAt:     time.Now().UTC(),
	}
	if err := h.Analytics.CompleteSession(c.Request.Context(), sa, req.Questions); err != nil {
		h.fail(c, "complete session analytics", err)
		return
	}
	response.OK(c, model.CompleteAnalyticsRes{Stats: stats, Insights: analytics.PerformanceInsights(stats)})
}

func (h *Handler) GetSessionAnalytics(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	sa, err := h.Analytics.GetSessionAnalytics(c.Request.Context(), sessionID, id.UserID)
	if err != nil {
		h.fail(c, "get session analytics", err)
		return
	}
	response.OK(c, sa)
}

func (h *Handler) MyAnalytics(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	ua, err := h.Analytics.UserAnalytics(c.Request.Context(), id.UserID)
	if err != nil {
		h.fail(c, "user analytics", err)
		return
	}
	response.OK(c, ua)
}

// QuestionInsights summarises question telemetry across all users for a
// role and level.
func (h *Handler) QuestionInsights(c *gin.Context) {
	var q model.QuestionInsightsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}

	insights, err := h.Analytics.QuestionInsights(c.Request.Context(), q.Role, q.ExperienceLevel)
	if err != nil {
		h.fail(c, "question insights", err)
		return
	}
	if insights == nil {
		insights = []model.QuestionInsight{}
	}
	response.OK(c, gin.H{"insights": insights})
}
