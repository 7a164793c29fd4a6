package repository

import (
	"context"
	"fmt"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository stores app-side profile data for identity-provider users.
type ProfileRepository struct {
	db *pgxpool.Pool
}

const profileColumns = `id, email, name, plan, credits, profile_image_url, created_at`

// GetOrCreate returns the user's profile, creating a free plan profile with
// no credits the first time a user is seen.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, id uuid.UUID, email string) (*model.UserProfile, error) {
	const q = `
INSERT INTO users (id, email, plan, credits)
VALUES ($1, $2, $3, 0)
ON CONFLICT (id) DO NOTHING
`
	if _, err := r.db.Exec(ctx, q, id, email, model.PlanFree); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a user by id.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	const q = `SELECT ` + profileColumns + ` FROM users WHERE id = $1`

	var u model.UserProfile
	err := r.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.Name, &u.Plan, &u.Credits, &u.ProfileImageURL, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err, "scan user by id")
	}
	return &u, nil
}
