// Package interview runs chat turns, scores answers and summarizes
// finished sessions.
package interview

import (
	"context"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/google/uuid"
)

const coachSystemPrompt = "You are an expert interview coach."

// SessionStore is the slice of the session repository the interview
// services write through.
type SessionStore interface {
	// IncrementQuestionsAnswered atomically bumps the counter and returns the
	// new value. It returns model.ErrCounterSaturated when the session has a
	// question list and every question is already answered.
	IncrementQuestionsAnswered(ctx context.Context, id uuid.UUID) (int, error)
	SaveFeedback(ctx context.Context, id uuid.UUID, summary model.SessionSummary) error
}
