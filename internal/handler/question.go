package handler

import (
	"slices"

	"github.com/abhishek622/mockmate/internal/questions"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

// SessionQuestions returns the session's question list, generating and
// storing one the first time. A list, once stored, never changes.
func (h *Handler) SessionQuestions(c *gin.Context) {
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

	if len(s.Questions) > 0 {
		response.OK(c, questions.Result{Questions: s.Questions, Source: questions.SourceStored})
		return
	}

	res, err := h.Questions.QuestionsFor(c.Request.Context(), model.ParamsFromSession(s))
	if err != nil {
		h.fail(c, "generate questions", err)
		return
	}
	stored, err := h.Sessions.SetQuestions(c.Request.Context(), s.ID, id.UserID, res.Questions)
	if err != nil {
		h.fail(c, "store questions", err)
		return
	}
	// a concurrent request may have stored its list first
	if !slices.Equal(stored, res.Questions) {
		res = questions.Result{Questions: stored, Source: questions.SourceStored}
	}
	response.OK(c, res)
}

// GenerateQuestionsOnDemand builds free-form questions from the session's
// résumé and job description.
func (h *Handler) GenerateQuestionsOnDemand(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var req model.OnDemandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}
	s, ok := h.loadSession(c, req.SessionID, id.UserID)
	if !ok {
		return
	}
	if !s.HasResume() || !s.HasJobDescription() {
		response.BadRequest(c, questions.ErrMissingDocuments.Error())
		return
	}

	qs, err := h.OnDemand.GenerateFromDocuments(c.Request.Context(), s.Role, s.ExperienceLevel, *s.ResumeText, *s.JobDescriptionText)
	if err != nil {
		h.fail(c, "generate on-demand questions", err)
		return
	}
	response.OK(c, gin.H{"questions": qs})
}

func (h *Handler) CacheStats(c *gin.Context) {
	stats, err := h.Cache.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "cache stats", err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) PopularQuestionSets(c *gin.Context) {
	var q model.PopularQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, bindError(err))
		return
	}
	sets, err := h.Cache.Popular(c.Request.Context(), q.Role, q.Limit)
	if err != nil {
		h.fail(c, "popular question sets", err)
		return
	}
	if sets == nil {
		sets = []model.CachedQuestionSet{}
	}
	response.OK(c, gin.H{"sets": sets})
}
