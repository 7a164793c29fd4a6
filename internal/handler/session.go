package handler

import (
	"strings"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

// CreateSession stores a new interview session. Questions are generated
// later, on demand.
func (h *Handler) CreateSession(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req model.CreateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}
	req.Role = strings.TrimSpace(req.Role)
	if req.Role == "" {
		response.BadRequest(c, "role is required")
		return
	}

	s := &model.InterviewSession{
		UserID:             id.UserID,
		Title:              model.SessionTitle(req.Role, req.ExperienceLevel),
		Type:               req.ResponseFormat,
		Role:               req.Role,
		ExperienceLevel:    req.ExperienceLevel,
		ResumeText:         optional(req.ResumeText),
		JobDescriptionText: optional(req.JobDescriptionText),
	}
	if err := h.Sessions.Create(c.Request.Context(), s); err != nil {
		h.fail(c, "create session", err)
		return
	}

	h.Logger.Sugar().Infow("session created", "session_id", s.ID, "user_id", id.UserID, "role", s.Role)
	response.Created(c, gin.H{"success": true, "sessionId": s.ID})
}

func (h *Handler) ListSessions(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var q model.ListSessionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}
	limit, offset := pageOffset(q.Page, q.PageSize)

	items, hasNext, err := h.Sessions.ListByUser(c.Request.Context(), id.UserID, limit, offset)
	if err != nil {
		h.fail(c, "list sessions", err)
		return
	}
	if items == nil {
		items = []model.SessionListItem{}
	}
	response.Paged(c, items, offset/limit+1, limit, hasNext)
}

// SessionDetail is a stored session plus the advisory chat countdown.
type SessionDetail struct {
	*model.InterviewSession
	TurnLimitMinutes int `json:"turn_limit_minutes"`
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	s, ok := h.loadSession(c, sessionID, id.UserID)
	if !ok {
		return
	}
	response.OK(c, SessionDetail{InterviewSession: s, TurnLimitMinutes: model.TurnLimitMinutes})
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
