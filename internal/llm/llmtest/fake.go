// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/abhishek622/mockmate/internal/llm"
)

type Reply struct {
	Content string
	Err     error
}

// Fake returns scripted replies in order and records every request.
// Once the script runs out the last reply repeats.
type Fake struct {
	mu       sync.Mutex
	replies  []Reply
	requests []llm.ChatRequest
}

func New(replies ...Reply) *Fake {
	return &Fake{replies: replies}
}

// Returning is shorthand for a fake that always answers content.
func Returning(content string) *Fake {
	return New(Reply{Content: content})
}

// Failing is shorthand for a fake that always fails with err.
func Failing(err error) *Fake {
	return New(Reply{Err: err})
}

func (f *Fake) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	idx := len(f.requests) - 1
	if idx >= len(f.replies) {
		idx = len(f.replies) - 1
	}
	r := f.replies[idx]
	return r.Content, r.Err
}

func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *Fake) Requests() []llm.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]llm.ChatRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Last returns the most recent request. It panics when nothing was sent.
func (f *Fake) Last() llm.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}
