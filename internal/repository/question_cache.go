package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhishek622/mockmate/pkg"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionCacheRepository backs questions.Store.
type QuestionCacheRepository struct {
	db *pgxpool.Pool
}

const cacheColumns = `id, hash, role, experience_level, response_format, questions, usage_count, last_used, created_at`

func scanCachedSet(row pgx.Row) (*model.CachedQuestionSet, error) {
	var c model.CachedQuestionSet
	err := row.Scan(&c.ID, &c.Hash, &c.Role, &c.ExperienceLevel, &c.ResponseFormat,
		&c.Questions, &c.UsageCount, &c.LastUsed, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Lookup picks the most used matching row and bumps it in one statement.
func (r *QuestionCacheRepository) Lookup(ctx context.Context, hash, role string, level model.ExperienceLevel, format model.SessionType) (*model.CachedQuestionSet, error) {
	const q = `
UPDATE question_cache
SET usage_count = usage_count + 1, last_used = now()
WHERE id = (
	SELECT id FROM question_cache
	WHERE hash = $1 AND lower(role) = lower($2) AND experience_level = $3 AND response_format = $4
	ORDER BY usage_count DESC, created_at ASC
	LIMIT 1
)
RETURNING ` + cacheColumns

	c, err := scanCachedSet(r.db.QueryRow(ctx, q, hash, role, level, format))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup cached questions: %w", err)
	}
	return c, nil
}

func (r *QuestionCacheRepository) Insert(ctx context.Context, c *model.CachedQuestionSet) error {
	const q = `
INSERT INTO question_cache (hash, role, experience_level, response_format, questions, usage_count, last_used, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`
	row := r.db.QueryRow(ctx, q,
		c.Hash, c.Role, c.ExperienceLevel, c.ResponseFormat, c.Questions, c.UsageCount, c.LastUsed, c.CreatedAt,
	)
	if err := row.Scan(&c.ID); err != nil {
		return fmt.Errorf("insert cached questions: %w", err)
	}
	return nil
}

func (r *QuestionCacheRepository) DeleteStale(ctx context.Context, cutoff time.Time, minUsage int) (int64, error) {
	const q = `DELETE FROM question_cache WHERE last_used < $1 AND usage_count < $2`
	tag, err := r.db.Exec(ctx, q, cutoff, minUsage)
	if err != nil {
		return 0, fmt.Errorf("delete stale cache: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *QuestionCacheRepository) Popular(ctx context.Context, role string, limit int) ([]model.CachedQuestionSet, error) {
	q := `SELECT ` + cacheColumns + `
FROM question_cache
WHERE lower(role) = lower($1)
ORDER BY usage_count DESC
LIMIT $2`
	rows, err := r.db.Query(ctx, q, role, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular sets: %w", err)
	}
	defer rows.Close()

	out := make([]model.CachedQuestionSet, 0, limit)
	for rows.Next() {
		c, err := scanCachedSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cached set: %w", err)
		}
		out = append(out, *c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *QuestionCacheRepository) Stats(ctx context.Context) (*model.CacheStats, error) {
	var s model.CacheStats
	const totals = `SELECT COUNT(1), COALESCE(SUM(usage_count), 0) FROM question_cache`
	if err := r.db.QueryRow(ctx, totals).Scan(&s.TotalCachedSets, &s.TotalUsage); err != nil {
		return nil, fmt.Errorf("cache totals: %w", err)
	}
	if s.TotalCachedSets == 0 {
		return &s, nil
	}
	s.AverageUsage = pkg.Round2(float64(s.TotalUsage) / float64(s.TotalCachedSets))

	const popular = `
SELECT role FROM question_cache
GROUP BY role
ORDER BY SUM(usage_count) DESC, role ASC
LIMIT 1
`
	if err := r.db.QueryRow(ctx, popular).Scan(&s.MostPopularRole); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("most popular role: %w", err)
	}
	return &s, nil
}
