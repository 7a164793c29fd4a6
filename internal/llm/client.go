// Package llm wraps the chat-completion providers the interview services talk to.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishek622/mockmate/internal/config"
)

var ErrEmptyResponse = errors.New("llm returned empty content")

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float32   `json:"temperature,omitempty"`
}

// Client sends a chat transcript and returns the first reply's text.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

const (
	openAIBaseURL = "https://api.openai.com/v1"
	groqBaseURL   = "https://api.groq.com/openai/v1"
)

// NewClient builds the provider selected in config.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey)
	case "groq":
		return NewOpenAIClient(cfg.APIKey, firstNonEmpty(cfg.BaseURL, groqBaseURL), cfg.Timeout), nil
	case "openai", "":
		return NewOpenAIClient(cfg.APIKey, firstNonEmpty(cfg.BaseURL, openAIBaseURL), cfg.Timeout), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
