package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishek622/mockmate/pkg"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	db     *pgxpool.Pool
	crypto *pkg.Crypto
}

const sessionColumns = `
	id, user_id, title, type, role, experience_level, status,
	resume_text, job_description_text, questions, questions_answered,
	score, feedback, duration_minutes, created_at, completed_at`

// Create inserts a new session with an empty question list and fills in the
// generated id, status and creation time.
func (r *SessionRepository) Create(ctx context.Context, s *model.InterviewSession) error {
	resume, err := r.seal(s.ResumeText)
	if err != nil {
		return fmt.Errorf("seal resume: %w", err)
	}
	jd, err := r.seal(s.JobDescriptionText)
	if err != nil {
		return fmt.Errorf("seal job description: %w", err)
	}
	questions := s.Questions
	if questions == nil {
		questions = []model.Question{}
	}

	const q = `
INSERT INTO interview_sessions (
	user_id, title, type, role, experience_level, status,
	resume_text, job_description_text, questions
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, status, created_at
`
	row := r.db.QueryRow(ctx, q,
		s.UserID, s.Title, s.Type, s.Role, s.ExperienceLevel, model.SessionNotStarted,
		resume, jd, questions,
	)
	if err := row.Scan(&s.ID, &s.Status, &s.CreatedAt); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	s.Questions = questions
	return nil
}

// GetByID returns the session only if userID owns it.
func (r *SessionRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.InterviewSession, error) {
	q := `SELECT` + sessionColumns + ` FROM interview_sessions WHERE id = $1 AND user_id = $2`

	s, err := r.scan(r.db.QueryRow(ctx, q, id, userID))
	if err != nil {
		return nil, notFound(err, "get session")
	}
	return s, nil
}

func (r *SessionRepository) scan(row pgx.Row) (*model.InterviewSession, error) {
	var s model.InterviewSession
	err := row.Scan(
		&s.ID, &s.UserID, &s.Title, &s.Type, &s.Role, &s.ExperienceLevel, &s.Status,
		&s.ResumeText, &s.JobDescriptionText, &s.Questions, &s.QuestionsAnswered,
		&s.Score, &s.Feedback, &s.DurationMinutes, &s.CreatedAt, &s.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if s.ResumeText, err = r.open(s.ResumeText); err != nil {
		return nil, fmt.Errorf("open resume: %w", err)
	}
	if s.JobDescriptionText, err = r.open(s.JobDescriptionText); err != nil {
		return nil, fmt.Errorf("open job description: %w", err)
	}
	return &s, nil
}

// ListByUser returns one page of the user's sessions, newest first, plus
// whether another page exists.
func (r *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.SessionListItem, bool, error) {
	const q = `
SELECT id, title, type, role, experience_level, status, questions_answered,
	score, duration_minutes, created_at, completed_at
FROM interview_sessions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`
	rows, err := r.db.Query(ctx, q, userID, limit+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := make([]model.SessionListItem, 0, limit)
	for rows.Next() {
		var s model.SessionListItem
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Type, &s.Role, &s.ExperienceLevel, &s.Status, &s.QuestionsAnswered,
			&s.Score, &s.DurationMinutes, &s.CreatedAt, &s.CompletedAt,
		); err != nil {
			return nil, false, fmt.Errorf("scan session row: %w", err)
		}
		out = append(out, s)
	}
	if rows.Err() != nil {
		return nil, false, fmt.Errorf("rows error: %w", rows.Err())
	}

	hasNext := len(out) > limit
	if hasNext {
		out = out[:limit]
	}
	return out, hasNext, nil
}

// SetQuestions stores the generated question list. Questions are immutable
// once set: a session that already has questions is left alone and its
// existing list is returned.
func (r *SessionRepository) SetQuestions(ctx context.Context, id, userID uuid.UUID, qs []model.Question) ([]model.Question, error) {
	const q = `
UPDATE interview_sessions
SET questions = $3::jsonb,
    questions_answered = LEAST(questions_answered, jsonb_array_length($3::jsonb))
WHERE id = $1 AND user_id = $2 AND jsonb_array_length(questions) = 0
RETURNING questions
`
	var stored []model.Question
	err := r.db.QueryRow(ctx, q, id, userID, qs).Scan(&stored)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("set questions: %w", err)
	}

	existing, err := r.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return existing.Questions, nil
}

// IncrementQuestionsAnswered bumps the counter in one statement and moves a
// fresh session to active. When the session has a question list the counter
// stops at its length.
func (r *SessionRepository) IncrementQuestionsAnswered(ctx context.Context, id uuid.UUID) (int, error) {
	const q = `
UPDATE interview_sessions
SET questions_answered = questions_answered + 1,
	status = CASE WHEN status = 'not_started' THEN 'active' ELSE status END
WHERE id = $1
	AND (jsonb_array_length(questions) = 0 OR questions_answered < jsonb_array_length(questions))
RETURNING questions_answered
`
	var n int
	err := r.db.QueryRow(ctx, q, id).Scan(&n)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("increment questions answered: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM interview_sessions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check session exists: %w", err)
	}
	if !exists {
		return 0, model.ErrNotFound
	}
	return 0, model.ErrCounterSaturated
}

// SaveFeedback overwrites score, feedback and duration. completed_at keeps
// its first value.
func (r *SessionRepository) SaveFeedback(ctx context.Context, id uuid.UUID, s model.SessionSummary) error {
	const q = `
UPDATE interview_sessions
SET score = $2,
	feedback = $3,
	duration_minutes = $4,
	completed_at = COALESCE(completed_at, $5),
	status = 'completed'
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, q, id, s.Score, s.Feedback, s.DurationMinutes, s.CompletedAt)
	if err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) seal(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	out, err := r.crypto.Seal(*s)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SessionRepository) open(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	out, err := r.crypto.Open(*s)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
