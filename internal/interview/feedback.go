package interview

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abhishek622/mockmate/internal/llm"
	"github.com/abhishek622/mockmate/pkg/model"
)

const (
	feedbackMaxTokens   = 400
	feedbackTemperature = 0.2
)

// Aggregator summarizes a finished session and writes the summary back.
type Aggregator struct {
	llm      llm.Client
	sessions SessionStore
	model    string
	now      func() time.Time
}

func NewAggregator(client llm.Client, sessions SessionStore, modelName string) *Aggregator {
	return &Aggregator{llm: client, sessions: sessions, model: modelName, now: time.Now}
}

// AverageScore is the mean of the numeric scores, nil scores ignored, 0 when
// there are none.
func AverageScore(qas []model.ScoredAnswer) float64 {
	var sum float64
	var n int
	for _, qa := range qas {
		if qa.Score != nil {
			sum += *qa.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// DurationMinutes rounds end-start to whole minutes. Nil unless both are set.
func DurationMinutes(start, end *time.Time) *int {
	if start == nil || end == nil {
		return nil
	}
	m := int(math.Round(float64(end.Sub(*start).Milliseconds()) / 60000))
	return &m
}

func formatScore(s *float64) string {
	if s == nil {
		return "null"
	}
	return strconv.FormatFloat(*s, 'f', -1, 64)
}

func feedbackPrompt(qas []model.ScoredAnswer, extra string) string {
	if extra == "" {
		extra = "N/A"
	}
	items := make([]string, 0, len(qas))
	for i, qa := range qas {
		items = append(items, fmt.Sprintf("Q%d: %s\nA%d: %s\nScore: %s\nFeedback: %s",
			i+1, qa.Question, i+1, qa.Answer, formatScore(qa.Score), qa.Feedback))
	}
	return fmt.Sprintf("You are an expert interview coach. Given the following interview questions, answers, and scores, provide:\n"+
		"- 2-3 tips for improvement\n- 2-3 things the user did well\n\n"+
		"Context: %s\n\n%s\n\n"+
		`Respond in JSON: {"tips": [<string>], "strengths": [<string>]}`,
		extra, strings.Join(items, "\n\n"))
}

// ParseFeedback reads {"tips", "strengths"}; without usable JSON the whole
// reply becomes the only tip.
func ParseFeedback(out string) model.SessionFeedback {
	var fb model.SessionFeedback
	if err := llm.DecodeObject(out, &fb); err != nil {
		return model.SessionFeedback{Tips: []string{out}, Strengths: []string{}}
	}
	if fb.Tips == nil {
		fb.Tips = []string{}
	}
	if fb.Strengths == nil {
		fb.Strengths = []string{}
	}
	return fb
}

// Summarize computes the session summary and persists it as a single
// overwrite. Any status may complete, and a completed session can be
// summarized again. Nothing is written when the LLM call fails.
func (a *Aggregator) Summarize(ctx context.Context, s *model.InterviewSession, req model.SessionFeedbackReq) (*model.SessionFeedbackRes, error) {
	avg := AverageScore(req.QuestionsAndAnswers)
	duration := DurationMinutes(req.StartTime, req.EndTime)

	out, err := a.llm.Chat(ctx, llm.ChatRequest{
		Model: a.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: coachSystemPrompt},
			{Role: llm.RoleUser, Content: feedbackPrompt(req.QuestionsAndAnswers, req.Context)},
		},
		MaxTokens:   feedbackMaxTokens,
		Temperature: feedbackTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("session feedback: %w", err)
	}
	fb := ParseFeedback(out)

	completed := a.now()
	if req.EndTime != nil {
		completed = *req.EndTime
	}
	summary := model.SessionSummary{
		Score:           avg,
		Feedback:        fb,
		CompletedAt:     completed,
		DurationMinutes: duration,
	}
	if err := a.sessions.SaveFeedback(ctx, s.ID, summary); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}

	return &model.SessionFeedbackRes{
		AverageScore:    avg,
		Feedback:        fb,
		DurationMinutes: duration,
	}, nil
}
