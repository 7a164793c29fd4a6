// Package repository persists sessions, profiles, cached question sets and
// analytics in Postgres.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishek622/mockmate/pkg"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	Sessions  *SessionRepository
	Cache     *QuestionCacheRepository
	Profiles  *ProfileRepository
	Analytics *AnalyticsRepository
}

// NewRepository wires every repository to one pool. crypto may be nil, in
// which case résumé and job description text are stored as given.
func NewRepository(db *pgxpool.Pool, crypto *pkg.Crypto) *Repository {
	return &Repository{
		Sessions:  &SessionRepository{db: db, crypto: crypto},
		Cache:     &QuestionCacheRepository{db: db},
		Profiles:  &ProfileRepository{db: db},
		Analytics: &AnalyticsRepository{db: db},
	}
}

func execTx(ctx context.Context, db *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// notFound maps pgx.ErrNoRows onto model.ErrNotFound and wraps the rest.
func notFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
