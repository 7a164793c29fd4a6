package model

import (
	"time"

	"github.com/google/uuid"
)

type QuestionAnalytics struct {
	QuestionID   int          `json:"questionId" binding:"required,min=1"`
	QuestionType QuestionType `json:"questionType" binding:"required,oneof=technical behavioral"`
	Difficulty   Difficulty   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	TimeSpent    int          `json:"timeSpent" binding:"min=0"`    // seconds
	AnswerLength int          `json:"answerLength" binding:"min=0"` // characters
	Skipped      bool         `json:"skipped"`
	Rating       *int         `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
}

type TrackQuestionReq struct {
	SessionID uuid.UUID `json:"sessionId" binding:"required"`
	QuestionAnalytics
}

type SessionStats struct {
	TotalQuestions         int     `json:"totalQuestions"`
	QuestionsAnswered      int     `json:"questionsAnswered"`
	QuestionsSkipped       int     `json:"questionsSkipped"`
	AverageTimePerQuestion float64 `json:"averageTimePerQuestion"`
	TotalSessionTime       int     `json:"totalSessionTime"`
	AverageAnswerLength    float64 `json:"averageAnswerLength"`
	AverageRating          float64 `json:"averageRating"`
	CompletionRate         float64 `json:"completionRate"`
}

type SessionAnalytics struct {
	SessionID       uuid.UUID       `json:"sessionId" db:"session_id"`
	Role            string          `json:"role" db:"role"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" db:"experience_level"`
	SessionStats
	CompletedAt time.Time `json:"completedAt" db:"completed_at"`
}

// QuestionInsight aggregates question telemetry for one role and level,
// grouped by question type and difficulty.
type QuestionInsight struct {
	QuestionType        QuestionType `json:"questionType"`
	Difficulty          Difficulty   `json:"difficulty"`
	Attempts            int          `json:"attempts"`
	AverageTimeSpent    float64      `json:"averageTimeSpent"`
	AverageAnswerLength float64      `json:"averageAnswerLength"`
	SkipRate            float64      `json:"skipRate"`
	AverageRating       *float64     `json:"averageRating"`
}

type QuestionInsightsQuery struct {
	Role            string          `form:"role" binding:"required"`
	ExperienceLevel ExperienceLevel `form:"experienceLevel" binding:"required,oneof=entry mid senior"`
}

type CompleteAnalyticsReq struct {
	Questions []QuestionAnalytics `json:"questions" binding:"required,min=1,dive"`
}

type CompleteAnalyticsRes struct {
	Stats    SessionStats `json:"stats"`
	Insights []string     `json:"insights"`
}

type UserAnalytics struct {
	UserID                 uuid.UUID  `json:"userId"`
	TotalSessions          int        `json:"totalSessions"`
	CompletedSessions      int        `json:"completedSessions"`
	TotalQuestionsAnswered int        `json:"totalQuestionsAnswered"`
	AverageSessionScore    float64    `json:"averageSessionScore"`
	AverageTimePerQuestion float64    `json:"averageTimePerQuestion"`
	FavoriteRole           string     `json:"favoriteRole"`
	CompletionRate         float64    `json:"completionRate"`
	LastActive             *time.Time `json:"lastActive"`
}
