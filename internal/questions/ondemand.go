package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhishek622/mockmate/internal/llm"
	"github.com/abhishek622/mockmate/pkg"
	"github.com/abhishek622/mockmate/pkg/model"
)

var ErrMissingDocuments = errors.New("session needs both a resume and a job description")

const (
	onDemandMaxTokens   = 1200
	onDemandTemperature = 0.7
)

// OnDemand asks for a free-form numbered list of questions tailored to a
// résumé and job description.
type OnDemand struct {
	llm   llm.Client
	model string
}

func NewOnDemand(client llm.Client, modelName string) *OnDemand {
	return &OnDemand{llm: client, model: modelName}
}

func onDemandPrompt(role string, level model.ExperienceLevel, resume, jd string) string {
	return fmt.Sprintf("You are an expert interviewer. Using the following candidate resume and job description, "+
		"generate 10-15 interview questions (mix of technical and behavioral) for a %s (%s level) interview. "+
		"Return the questions as a numbered list.\n\nCandidate Resume:\n%s\n\nJob Description:\n%s",
		role, level, resume, jd)
}

// GenerateFromDocuments returns one question per non-empty line of the reply.
func (o *OnDemand) GenerateFromDocuments(ctx context.Context, role string, level model.ExperienceLevel, resume, jd string) ([]string, error) {
	if strings.TrimSpace(resume) == "" || strings.TrimSpace(jd) == "" {
		return nil, ErrMissingDocuments
	}
	out, err := o.llm.Chat(ctx, llm.ChatRequest{
		Model: o.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are an expert interview question generator."},
			{Role: llm.RoleUser, Content: onDemandPrompt(role, level, resume, jd)},
		},
		MaxTokens:   onDemandMaxTokens,
		Temperature: onDemandTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	qs := pkg.NumberedLines(out)
	if len(qs) == 0 {
		return nil, llm.ErrEmptyResponse
	}
	return qs, nil
}
