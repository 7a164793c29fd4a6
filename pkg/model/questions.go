package model

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionTechnical  QuestionType = "technical"
	QuestionBehavioral QuestionType = "behavioral"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question ids are 1-based and sequential within a session.
type Question struct {
	ID         int          `json:"id"`
	Type       QuestionType `json:"type"`
	Question   string       `json:"question"`
	Difficulty Difficulty   `json:"difficulty"`
}

// GenerateParams is the request shape the generator and the cache key off.
type GenerateParams struct {
	Role               string
	ExperienceLevel    ExperienceLevel
	ResponseFormat     SessionType
	ResumeText         string
	JobDescriptionText string
}

func (p GenerateParams) HasResume() bool         { return p.ResumeText != "" }
func (p GenerateParams) HasJobDescription() bool { return p.JobDescriptionText != "" }

// ParamsFromSession builds generator input from a stored session.
func ParamsFromSession(s *InterviewSession) GenerateParams {
	p := GenerateParams{
		Role:            s.Role,
		ExperienceLevel: s.ExperienceLevel,
		ResponseFormat:  s.Type,
	}
	if s.ResumeText != nil {
		p.ResumeText = *s.ResumeText
	}
	if s.JobDescriptionText != nil {
		p.JobDescriptionText = *s.JobDescriptionText
	}
	return p
}

type CachedQuestionSet struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Hash            string          `json:"hash" db:"hash"`
	Role            string          `json:"role" db:"role"`
	ExperienceLevel ExperienceLevel `json:"experience_level" db:"experience_level"`
	ResponseFormat  SessionType     `json:"response_format" db:"response_format"`
	Questions       []Question      `json:"questions" db:"questions"`
	UsageCount      int             `json:"usage_count" db:"usage_count"`
	LastUsed        time.Time       `json:"last_used" db:"last_used"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

type CacheStats struct {
	TotalCachedSets int     `json:"totalCachedSets"`
	TotalUsage      int     `json:"totalUsage"`
	AverageUsage    float64 `json:"averageUsage"`
	MostPopularRole string  `json:"mostPopularRole"`
}

type PopularQuery struct {
	Role  string `form:"role" binding:"required"`
	Limit int    `form:"limit,default=5" binding:"min=1,max=50"`
}

type OnDemandReq struct {
	SessionID uuid.UUID `json:"sessionId" binding:"required"`
}
