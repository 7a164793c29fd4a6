package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SessionType string

const (
	SessionTypeTechnical  SessionType = "technical"
	SessionTypeBehavioral SessionType = "behavioral"
	SessionTypeMixed      SessionType = "mixed"
)

type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// SessionStatus is the explicit progress state of an interview session.
//
//	not_started -> active -> completed
//	not_started -> completed (question mode, answers scored client side)
//	completed -> completed (feedback summarized again)
type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionActive     SessionStatus = "active"
	SessionCompleted  SessionStatus = "completed"
)

// TurnLimitMinutes is the advisory chat countdown shown by clients. Not enforced.
const TurnLimitMinutes = 20

type InterviewSession struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	UserID             uuid.UUID        `json:"user_id" db:"user_id"`
	Title              string           `json:"title" db:"title"`
	Type               SessionType      `json:"type" db:"type"`
	Role               string           `json:"role" db:"role"`
	ExperienceLevel    ExperienceLevel  `json:"experience_level" db:"experience_level"`
	Status             SessionStatus    `json:"status" db:"status"`
	ResumeText         *string          `json:"resume_text,omitempty" db:"resume_text"`
	JobDescriptionText *string          `json:"job_description_text,omitempty" db:"job_description_text"`
	Questions          []Question       `json:"questions" db:"questions"`
	QuestionsAnswered  int              `json:"questions_answered" db:"questions_answered"`
	Score              *float64         `json:"score" db:"score"`
	Feedback           *SessionFeedback `json:"feedback" db:"feedback"`
	DurationMinutes    *int             `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
	CompletedAt        *time.Time       `json:"completed_at" db:"completed_at"`
}

func (s *InterviewSession) HasResume() bool {
	return s.ResumeText != nil && *s.ResumeText != ""
}

func (s *InterviewSession) HasJobDescription() bool {
	return s.JobDescriptionText != nil && *s.JobDescriptionText != ""
}

// SessionTitle derives the display title stored on a new session.
func SessionTitle(role string, level ExperienceLevel) string {
	return fmt.Sprintf("%s Interview - %s level", role, level)
}

type SessionFeedback struct {
	Tips      []string `json:"tips"`
	Strengths []string `json:"strengths"`
}

// SessionSummary is what the feedback aggregator writes back onto a session.
type SessionSummary struct {
	Score           float64
	Feedback        SessionFeedback
	CompletedAt     time.Time
	DurationMinutes *int
}

type CreateSessionReq struct {
	Role               string          `json:"role" binding:"required"`
	ExperienceLevel    ExperienceLevel `json:"experienceLevel" binding:"required,oneof=entry mid senior"`
	ResumeText         string          `json:"resumeText"`
	JobDescriptionText string          `json:"jobDescriptionText"`
	ResponseFormat     SessionType     `json:"responseFormat" binding:"required,oneof=technical behavioral mixed"`
}

type ListSessionsQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

type SessionListItem struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Type              SessionType     `json:"type"`
	Role              string          `json:"role"`
	ExperienceLevel   ExperienceLevel `json:"experience_level"`
	Status            SessionStatus   `json:"status"`
	QuestionsAnswered int             `json:"questions_answered"`
	Score             *float64        `json:"score"`
	DurationMinutes   *int            `json:"duration_minutes"`
	CreatedAt         time.Time       `json:"created_at"`
	CompletedAt       *time.Time      `json:"completed_at"`
}
