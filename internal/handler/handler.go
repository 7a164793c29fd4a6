// Package handler implements the JSON API. Handlers depend on narrow
// interfaces so each endpoint can be tested with in-memory fakes.
package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishek622/mockmate/internal/auth"
	"github.com/abhishek622/mockmate/internal/extract"
	"github.com/abhishek622/mockmate/internal/fetcher"
	"github.com/abhishek622/mockmate/internal/questions"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionStore interface {
	Create(ctx context.Context, s *model.InterviewSession) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*model.InterviewSession, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.SessionListItem, bool, error)
	SetQuestions(ctx context.Context, id, userID uuid.UUID, qs []model.Question) ([]model.Question, error)
}

type ProfileStore interface {
	GetOrCreate(ctx context.Context, id uuid.UUID, email string) (*model.UserProfile, error)
}

type AnalyticsStore interface {
	TrackQuestion(ctx context.Context, sessionID uuid.UUID, qa model.QuestionAnalytics) error
	CompleteSession(ctx context.Context, sa model.SessionAnalytics, qs []model.QuestionAnalytics) error
	GetSessionAnalytics(ctx context.Context, sessionID, userID uuid.UUID) (*model.SessionAnalytics, error)
	UserAnalytics(ctx context.Context, userID uuid.UUID) (*model.UserAnalytics, error)
	QuestionInsights(ctx context.Context, role string, level model.ExperienceLevel) ([]model.QuestionInsight, error)
}

type QuestionService interface {
	QuestionsFor(ctx context.Context, p model.GenerateParams) (questions.Result, error)
}

type CacheReader interface {
	Popular(ctx context.Context, role string, limit int) ([]model.CachedQuestionSet, error)
	Stats(ctx context.Context) (*model.CacheStats, error)
}

type ChatRunner interface {
	Turn(ctx context.Context, s *model.InterviewSession, message string, history []model.ChatMessage) (*model.ChatRes, error)
}

type AnswerScorer interface {
	Score(ctx context.Context, question, answer, extra string) (*model.AnswerScore, error)
}

type FeedbackSummarizer interface {
	Summarize(ctx context.Context, s *model.InterviewSession, req model.SessionFeedbackReq) (*model.SessionFeedbackRes, error)
}

type DocumentQuestioner interface {
	GenerateFromDocuments(ctx context.Context, role string, level model.ExperienceLevel, resume, jd string) ([]string, error)
}

type JobFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.JobPosting, error)
}

type Handler struct {
	Logger    *zap.Logger
	Sessions  SessionStore
	Profiles  ProfileStore
	Analytics AnalyticsStore
	Questions QuestionService
	Cache     CacheReader
	Chat      ChatRunner
	Scorer    AnswerScorer
	Feedback  FeedbackSummarizer
	OnDemand  DocumentQuestioner
	Fetcher   JobFetcher
}

const identityKey = "identity"

// SetIdentity stores the authenticated caller for downstream handlers.
func SetIdentity(c *gin.Context, id *auth.Identity) {
	c.Set(identityKey, id)
}

// IdentityFromContext retrieves the caller set by the auth middleware.
func IdentityFromContext(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	return id, ok && id != nil
}

// caller aborts with 401 when no identity is present.
func caller(c *gin.Context) (*auth.Identity, bool) {
	id, ok := IdentityFromContext(c)
	if !ok {
		response.Unauthorized(c, "")
	}
	return id, ok
}

func sessionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

// loadSession fetches a session owned by the caller, writing the error
// response itself when that fails.
func (h *Handler) loadSession(c *gin.Context, id, userID uuid.UUID) (*model.InterviewSession, bool) {
	s, err := h.Sessions.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.fail(c, "load session", err)
		return nil, false
	}
	return s, true
}

// fail maps domain errors onto statuses. Anything unrecognised is logged
// and reported as a generic 500.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(c, "")
	case errors.Is(err, model.ErrSessionCompleted):
		response.Conflict(c, err.Error())
	case errors.Is(err, extract.ErrUnsupportedType),
		errors.Is(err, questions.ErrMissingDocuments),
		errors.Is(err, fetcher.ErrInvalidURL),
		errors.Is(err, fetcher.ErrNoContent):
		response.BadRequest(c, err.Error())
	default:
		h.Logger.Sugar().Errorw(op+" failed", "path", c.FullPath(), "err", err)
		response.InternalError(c, "")
	}
}

// bindError reports the first failed validation rule, or a generic message
// for malformed bodies.
func bindError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		f := ve[0]
		if f.Param() != "" {
			return fmt.Sprintf("invalid %s: must satisfy %s=%s", f.Field(), f.Tag(), f.Param())
		}
		return fmt.Sprintf("invalid %s: %s", f.Field(), f.Tag())
	}
	return "invalid request body"
}

func pageOffset(page, size int) (limit, offset int) {
	if size <= 0 || size > 100 {
		size = 20
	}
	if page < 1 {
		page = 1
	}
	return size, (page - 1) * size
}
