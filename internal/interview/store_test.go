package interview

import (
	"context"
	"sync"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/google/uuid"
)

type fakeSessions struct {
	mu        sync.Mutex
	answered  map[uuid.UUID]int
	limit     map[uuid.UUID]int
	summaries map[uuid.UUID]model.SessionSummary
	err       error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		answered:  map[uuid.UUID]int{},
		limit:     map[uuid.UUID]int{},
		summaries: map[uuid.UUID]model.SessionSummary{},
	}
}

func (f *fakeSessions) IncrementQuestionsAnswered(_ context.Context, id uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	if l, ok := f.limit[id]; ok && f.answered[id] >= l {
		return 0, model.ErrCounterSaturated
	}
	f.answered[id]++
	return f.answered[id], nil
}

func (f *fakeSessions) SaveFeedback(_ context.Context, id uuid.UUID, s model.SessionSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.summaries[id] = s
	return nil
}
