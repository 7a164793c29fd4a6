package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of a session transcript. Order is conversation order.
type ChatMessage struct {
	Role    ChatRole `json:"role" binding:"required,oneof=user assistant"`
	Content string   `json:"content"`
}

type ChatReq struct {
	SessionID           uuid.UUID     `json:"sessionId" binding:"required"`
	Message             string        `json:"message" binding:"required"`
	ConversationHistory []ChatMessage `json:"conversationHistory" binding:"dive"`
}

type ChatRes struct {
	Success             bool          `json:"success"`
	Response            string        `json:"response"`
	ConversationHistory []ChatMessage `json:"conversationHistory"`
	QuestionsAnswered   int           `json:"questionsAnswered"`
}

type ScoreAnswerReq struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	Context  string `json:"context"`
}

// AnswerScore is the scorer output. Score is nil when nothing numeric could be recovered.
type AnswerScore struct {
	Score    *float64 `json:"score"`
	Feedback string   `json:"feedback"`
}

type ScoredAnswer struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Score    *float64 `json:"score"`
	Feedback string   `json:"feedback"`
}

type SessionFeedbackReq struct {
	SessionID           uuid.UUID      `json:"sessionId" binding:"required"`
	QuestionsAndAnswers []ScoredAnswer `json:"questionsAndAnswers" binding:"required,min=1"`
	Context             string         `json:"context"`
	StartTime           *time.Time     `json:"startTime"`
	EndTime             *time.Time     `json:"endTime"`
}

type SessionFeedbackRes struct {
	AverageScore    float64         `json:"averageScore"`
	Feedback        SessionFeedback `json:"feedback"`
	DurationMinutes *int            `json:"duration_minutes"`
}
