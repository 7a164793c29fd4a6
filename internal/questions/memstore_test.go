package questions

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/google/uuid"
)

// memStore mirrors the SQL semantics of the Postgres question cache.
type memStore struct {
	mu   sync.Mutex
	rows []*model.CachedQuestionSet
	now  func() time.Time

	lookupErr error
	insertErr error
	lookups   int
}

func newMemStore() *memStore {
	return &memStore{now: time.Now}
}

func (m *memStore) Lookup(_ context.Context, hash, role string, level model.ExperienceLevel, format model.SessionType) (*model.CachedQuestionSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}

	var best *model.CachedQuestionSet
	for _, r := range m.rows {
		if r.Hash != hash || !strings.EqualFold(r.Role, role) || r.ExperienceLevel != level || r.ResponseFormat != format {
			continue
		}
		if best == nil || r.UsageCount > best.UsageCount {
			best = r
		}
	}
	if best == nil {
		return nil, nil
	}
	best.UsageCount++
	best.LastUsed = m.now()
	out := *best
	return &out, nil
}

func (m *memStore) Insert(_ context.Context, set *model.CachedQuestionSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	row := *set
	row.ID = uuid.New()
	m.rows = append(m.rows, &row)
	return nil
}

func (m *memStore) DeleteStale(_ context.Context, cutoff time.Time, minUsage int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*model.CachedQuestionSet
	var n int64
	for _, r := range m.rows {
		if r.LastUsed.Before(cutoff) && r.UsageCount < minUsage {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n, nil
}

func (m *memStore) Popular(_ context.Context, role string, limit int) ([]model.CachedQuestionSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CachedQuestionSet
	for _, r := range m.rows {
		if strings.EqualFold(r.Role, role) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UsageCount > out[j].UsageCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Stats(context.Context) (*model.CacheStats, error) {
	return nil, errors.New("not implemented")
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
