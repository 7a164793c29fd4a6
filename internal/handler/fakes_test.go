package handler

import (
	"context"
	"errors"
	"sync"

	"github.com/abhishek622/mockmate/internal/fetcher"
	"github.com/abhishek622/mockmate/internal/questions"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/google/uuid"
)

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*model.InterviewSession
	err      error
}

func newFakeSessions(ss ...*model.InterviewSession) *fakeSessions {
	f := &fakeSessions{sessions: map[uuid.UUID]*model.InterviewSession{}}
	for _, s := range ss {
		f.sessions[s.ID] = s
	}
	return f
}

func (f *fakeSessions) Create(_ context.Context, s *model.InterviewSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	s.ID = uuid.New()
	s.Status = model.SessionNotStarted
	s.Questions = []model.Question{}
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessions) GetByID(_ context.Context, id, userID uuid.UUID) (*model.InterviewSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[id]
	if !ok || s.UserID != userID {
		return nil, model.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.SessionListItem, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SessionListItem
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, model.SessionListItem{ID: s.ID, Title: s.Title, Role: s.Role, Status: s.Status})
		}
	}
	if offset >= len(out) {
		return nil, false, nil
	}
	out = out[offset:]
	hasNext := len(out) > limit
	if hasNext {
		out = out[:limit]
	}
	return out, hasNext, nil
}

func (f *fakeSessions) SetQuestions(_ context.Context, id, userID uuid.UUID, qs []model.Question) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.UserID != userID {
		return nil, model.ErrNotFound
	}
	if len(s.Questions) == 0 {
		s.Questions = qs
	}
	return s.Questions, nil
}

type fakeProfiles struct {
	profiles map[uuid.UUID]*model.UserProfile
}

func (f *fakeProfiles) GetOrCreate(_ context.Context, id uuid.UUID, email string) (*model.UserProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	p := &model.UserProfile{ID: id, Email: email, Plan: model.PlanFree}
	f.profiles[id] = p
	return p, nil
}

type fakeAnalytics struct {
	tracked   []model.QuestionAnalytics
	completed *model.SessionAnalytics
	stored    map[uuid.UUID]*model.SessionAnalytics
}

func (f *fakeAnalytics) TrackQuestion(_ context.Context, _ uuid.UUID, qa model.QuestionAnalytics) error {
	f.tracked = append(f.tracked, qa)
	return nil
}

func (f *fakeAnalytics) CompleteSession(_ context.Context, sa model.SessionAnalytics, _ []model.QuestionAnalytics) error {
	f.completed = &sa
	return nil
}

func (f *fakeAnalytics) GetSessionAnalytics(_ context.Context, sessionID, _ uuid.UUID) (*model.SessionAnalytics, error) {
	if sa, ok := f.stored[sessionID]; ok {
		return sa, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeAnalytics) UserAnalytics(_ context.Context, userID uuid.UUID) (*model.UserAnalytics, error) {
	return &model.UserAnalytics{UserID: userID, TotalSessions: 3}, nil
}

func (f *fakeAnalytics) QuestionInsights(context.Context, string, model.ExperienceLevel) ([]model.QuestionInsight, error) {
	return nil, nil
}

type fakeQuestions struct {
	res   questions.Result
	calls int
}

func (f *fakeQuestions) QuestionsFor(context.Context, model.GenerateParams) (questions.Result, error) {
	f.calls++
	return f.res, nil
}

type fakeCache struct{}

func (fakeCache) Popular(_ context.Context, role string, limit int) ([]model.CachedQuestionSet, error) {
	return []model.CachedQuestionSet{{Role: role, UsageCount: limit}}, nil
}

func (fakeCache) Stats(context.Context) (*model.CacheStats, error) {
	return nil, errors.New("connection refused")
}

type fakeChat struct{}

func (fakeChat) Turn(_ context.Context, s *model.InterviewSession, message string, history []model.ChatMessage) (*model.ChatRes, error) {
	if s.Status == model.SessionCompleted {
		return nil, model.ErrSessionCompleted
	}
	h := append(history,
		model.ChatMessage{Role: model.ChatRoleUser, Content: message},
		model.ChatMessage{Role: model.ChatRoleAssistant, Content: "Next question?"},
	)
	return &model.ChatRes{Success: true, Response: "Next question?", ConversationHistory: h, QuestionsAnswered: s.QuestionsAnswered + 1}, nil
}

type fakeScorer struct{ err error }

func (f fakeScorer) Score(_ context.Context, _, _, _ string) (*model.AnswerScore, error) {
	if f.err != nil {
		return nil, f.err
	}
	score := 7.0
	return &model.AnswerScore{Score: &score, Feedback: "Good"}, nil
}

type fakeFeedback struct{ got *model.SessionFeedbackReq }

func (f *fakeFeedback) Summarize(_ context.Context, _ *model.InterviewSession, req model.SessionFeedbackReq) (*model.SessionFeedbackRes, error) {
	f.got = &req
	return &model.SessionFeedbackRes{AverageScore: 7, Feedback: model.SessionFeedback{Tips: []string{"t"}, Strengths: []string{}}}, nil
}

type fakeOnDemand struct{}

func (fakeOnDemand) GenerateFromDocuments(context.Context, string, model.ExperienceLevel, string, string) ([]string, error) {
	return []string{"Tell me about Go.", "Why us?"}, nil
}

type fakeFetcher struct{}

func (fakeFetcher) Fetch(_ context.Context, rawURL string) (*fetcher.JobPosting, error) {
	if rawURL == "ftp://x" {
		return nil, fetcher.ErrInvalidURL
	}
	return &fetcher.JobPosting{Title: "Backend Engineer", URL: rawURL, Text: "Build APIs."}, nil
}
