package questions

import (
	"context"
	"time"

	"github.com/abhishek622/mockmate/pkg/model"
)

const (
	// Entries idle this long and used fewer than CleanupMinUsage times are evicted.
	CleanupMaxAge   = 30 * 24 * time.Hour
	CleanupMinUsage = 3

	DefaultPopularLimit = 5
)

// Store persists cached question sets. Implemented by the Postgres
// repository; tests use an in-memory fake.
type Store interface {
	// Lookup returns the most used set matching the key and bumps its usage
	// count and last-used time in the same write. Miss is (nil, nil).
	Lookup(ctx context.Context, hash, role string, level model.ExperienceLevel, format model.SessionType) (*model.CachedQuestionSet, error)
	Insert(ctx context.Context, set *model.CachedQuestionSet) error
	DeleteStale(ctx context.Context, cutoff time.Time, minUsage int) (int64, error)
	Popular(ctx context.Context, role string, limit int) ([]model.CachedQuestionSet, error)
	Stats(ctx context.Context) (*model.CacheStats, error)
}

type Cache struct {
	store Store
	now   func() time.Time
}

func NewCache(store Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

func (c *Cache) Lookup(ctx context.Context, p model.GenerateParams) (*model.CachedQuestionSet, error) {
	return c.store.Lookup(ctx, FingerprintParams(p), p.Role, p.ExperienceLevel, p.ResponseFormat)
}

// Store inserts a new row with usage count 1. Concurrent misses for the same
// fingerprint may each insert; Lookup prefers the most used duplicate.
func (c *Cache) Store(ctx context.Context, qs []model.Question, p model.GenerateParams) error {
	now := c.now()
	return c.store.Insert(ctx, &model.CachedQuestionSet{
		Hash:            FingerprintParams(p),
		Role:            p.Role,
		ExperienceLevel: p.ExperienceLevel,
		ResponseFormat:  p.ResponseFormat,
		Questions:       qs,
		UsageCount:      1,
		LastUsed:        now,
		CreatedAt:       now,
	})
}

// Cleanup evicts idle, rarely used entries. Safe to run repeatedly.
func (c *Cache) Cleanup(ctx context.Context) (int64, error) {
	return c.store.DeleteStale(ctx, c.now().Add(-CleanupMaxAge), CleanupMinUsage)
}

func (c *Cache) Popular(ctx context.Context, role string, limit int) ([]model.CachedQuestionSet, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return c.store.Popular(ctx, role, limit)
}

func (c *Cache) Stats(ctx context.Context) (*model.CacheStats, error) {
	return c.store.Stats(ctx)
}
