package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhishek622/mockmate/internal/llm"
	"github.com/abhishek622/mockmate/pkg/model"
	"go.uber.org/zap"
)

const (
	chatMaxTokens   = 500
	chatTemperature = 0.7
)

// Orchestrator runs one interviewer turn at a time. The transcript lives on
// the client and is replayed in full on every turn.
type Orchestrator struct {
	llm      llm.Client
	sessions SessionStore
	model    string
	log      *zap.SugaredLogger
}

func NewOrchestrator(client llm.Client, sessions SessionStore, modelName string, log *zap.Logger) *Orchestrator {
	return &Orchestrator{llm: client, sessions: sessions, model: modelName, log: log.Sugar()}
}

// SystemPrompt describes the interview the assistant should conduct.
func SystemPrompt(s *model.InterviewSession) string {
	var docs strings.Builder
	if s.HasResume() {
		docs.WriteString("\n\nCandidate Resume:\n" + *s.ResumeText)
	}
	if s.HasJobDescription() {
		docs.WriteString("\n\nJob Description:\n" + *s.JobDescriptionText)
	}

	return fmt.Sprintf(`You are an expert interviewer conducting a %[1]s level interview for a %[2]s position.

Your role is to:
1. Ask relevant questions based on the candidate's responses
2. Provide constructive feedback on their answers
3. Guide the conversation naturally
4. Keep the interview professional but conversational
5. Ask follow-up questions to dig deeper into their experiences

Interview Context:
- Role: %[2]s
- Experience Level: %[1]s
- Session Type: %[3]s%[4]s

Be conversational, ask one question at a time, and provide brief feedback when appropriate. Keep responses concise and engaging.`,
		s.ExperienceLevel, s.Role, s.Type, docs.String())
}

// Turn sends the transcript plus message and, on a non-empty reply, bumps
// the session's answer counter. A failed turn leaves the session untouched
// so the client can resend the same transcript.
func (o *Orchestrator) Turn(ctx context.Context, s *model.InterviewSession, message string, history []model.ChatMessage) (*model.ChatRes, error) {
	if s.Status == model.SessionCompleted {
		return nil, model.ErrSessionCompleted
	}

	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt(s)})
	for _, m := range history {
		msgs = append(msgs, llm.Message{Role: llm.Role(m.Role), Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	reply, err := o.llm.Chat(ctx, llm.ChatRequest{
		Model:       o.model,
		Messages:    msgs,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("interview chat: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return nil, fmt.Errorf("interview chat: %w", llm.ErrEmptyResponse)
	}

	answered, err := o.sessions.IncrementQuestionsAnswered(ctx, s.ID)
	switch {
	case errors.Is(err, model.ErrCounterSaturated):
		o.log.Infow("questions answered counter already at question count", "session_id", s.ID)
		answered = s.QuestionsAnswered
	case err != nil:
		return nil, fmt.Errorf("increment questions answered: %w", err)
	}

	updated := make([]model.ChatMessage, 0, len(history)+2)
	updated = append(updated, history...)
	updated = append(updated,
		model.ChatMessage{Role: model.ChatRoleUser, Content: message},
		model.ChatMessage{Role: model.ChatRoleAssistant, Content: reply},
	)

	return &model.ChatRes{
		Success:             true,
		Response:            reply,
		ConversationHistory: updated,
		QuestionsAnswered:   answered,
	}, nil
}
