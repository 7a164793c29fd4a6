package interview

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/abhishek622/mockmate/internal/llm"
	"github.com/abhishek622/mockmate/pkg/model"
)

const (
	scorerMaxTokens   = 200
	scorerTemperature = 0.2
)

var scorePattern = regexp.MustCompile(`(?i)score\D*(\d+)`)

type Scorer struct {
	llm   llm.Client
	model string
}

func NewScorer(client llm.Client, modelName string) *Scorer {
	return &Scorer{llm: client, model: modelName}
}

func scorePrompt(question, answer, extra string) string {
	if extra == "" {
		extra = "N/A"
	}
	return fmt.Sprintf("You are an expert interview coach. Given the following interview question and candidate answer, "+
		"score the answer from 1 to 10 (10 is perfect) and provide a brief justification.\n\n"+
		"Context: %s\nQuestion: %s\nAnswer: %s\n\n"+
		`Respond in JSON: {"score": <number>, "feedback": <string>}`,
		extra, question, answer)
}

// Score grades one answer. Upstream failures are returned; unparseable
// replies are not.
func (s *Scorer) Score(ctx context.Context, question, answer, extra string) (*model.AnswerScore, error) {
	out, err := s.llm.Chat(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: coachSystemPrompt},
			{Role: llm.RoleUser, Content: scorePrompt(question, answer, extra)},
		},
		MaxTokens:   scorerMaxTokens,
		Temperature: scorerTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("score answer: %w", err)
	}
	return ParseScore(out), nil
}

// ParseScore reads {"score", "feedback"} from the reply. Without usable JSON
// it looks for a number after the word "score" and keeps the raw text as
// feedback; the score stays nil if none is found.
func ParseScore(out string) *model.AnswerScore {
	var parsed struct {
		Score    *float64 `json:"score"`
		Feedback string   `json:"feedback"`
	}
	if err := llm.DecodeObject(out, &parsed); err == nil {
		return &model.AnswerScore{Score: parsed.Score, Feedback: parsed.Feedback}
	}

	res := &model.AnswerScore{Feedback: out}
	if m := scorePattern.FindStringSubmatch(out); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			res.Score = &v
		}
	}
	return res
}
