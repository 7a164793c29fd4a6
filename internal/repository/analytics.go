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
	"golang.org/x/sync/errgroup"
)

type AnalyticsRepository struct {
	db *pgxpool.Pool
}

const insertQuestionAnalytics = `
INSERT INTO question_analytics (session_id, question_id, question_type, difficulty, time_spent, answer_length, skipped, rating)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *AnalyticsRepository) TrackQuestion(ctx context.Context, sessionID uuid.UUID, qa model.QuestionAnalytics) error {
	_, err := r.db.Exec(ctx, insertQuestionAnalytics,
		sessionID, qa.QuestionID, qa.QuestionType, qa.Difficulty, qa.TimeSpent, qa.AnswerLength, qa.Skipped, qa.Rating)
	if err != nil {
		return fmt.Errorf("insert question analytics: %w", err)
	}
	return nil
}

// CompleteSession records the per-question rows and the session roll-up in
// one transaction. Completing again replaces the roll-up.
func (r *AnalyticsRepository) CompleteSession(ctx context.Context, sa model.SessionAnalytics, questions []model.QuestionAnalytics) error {
	return execTx(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, qa := range questions {
			batch.Queue(insertQuestionAnalytics,
				sa.SessionID, qa.QuestionID, qa.QuestionType, qa.Difficulty, qa.TimeSpent, qa.AnswerLength, qa.Skipped, qa.Rating)
		}

		br := tx.SendBatch(ctx, batch)
		for i := range questions {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("batch insert question analytics %d: %w", i, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}

		const q = `
INSERT INTO session_analytics (
	session_id, role, experience_level, total_questions, questions_answered, questions_skipped,
	average_time_per_question, total_session_time, average_answer_length, average_rating,
	completion_rate, completed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (session_id) DO UPDATE SET
	total_questions = EXCLUDED.total_questions,
	questions_answered = EXCLUDED.questions_answered,
	questions_skipped = EXCLUDED.questions_skipped,
	average_time_per_question = EXCLUDED.average_time_per_question,
	total_session_time = EXCLUDED.total_session_time,
	average_answer_length = EXCLUDED.average_answer_length,
	average_rating = EXCLUDED.average_rating,
	completion_rate = EXCLUDED.completion_rate,
	completed_at = EXCLUDED.completed_at
`
		_, err := tx.Exec(ctx, q,
			sa.SessionID, sa.Role, sa.ExperienceLevel, sa.TotalQuestions, sa.QuestionsAnswered, sa.QuestionsSkipped,
			sa.AverageTimePerQuestion, sa.TotalSessionTime, sa.AverageAnswerLength, sa.AverageRating,
			sa.CompletionRate, sa.CompletedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert session analytics: %w", err)
		}
		return nil
	})
}

// GetSessionAnalytics returns the roll-up for a session owned by userID.
func (r *AnalyticsRepository) GetSessionAnalytics(ctx context.Context, sessionID, userID uuid.UUID) (*model.SessionAnalytics, error) {
	const q = `
SELECT sa.session_id, sa.role, sa.experience_level, sa.total_questions, sa.questions_answered,
	sa.questions_skipped, sa.average_time_per_question, sa.total_session_time,
	sa.average_answer_length, sa.average_rating, sa.completion_rate, sa.completed_at
FROM session_analytics sa
JOIN interview_sessions s ON s.id = sa.session_id
WHERE sa.session_id = $1 AND s.user_id = $2
`
	var sa model.SessionAnalytics
	err := r.db.QueryRow(ctx, q, sessionID, userID).Scan(
		&sa.SessionID, &sa.Role, &sa.ExperienceLevel, &sa.TotalQuestions, &sa.QuestionsAnswered,
		&sa.QuestionsSkipped, &sa.AverageTimePerQuestion, &sa.TotalSessionTime,
		&sa.AverageAnswerLength, &sa.AverageRating, &sa.CompletionRate, &sa.CompletedAt,
	)
	if err != nil {
		return nil, notFound(err, "get session analytics")
	}
	return &sa, nil
}

// UserAnalytics aggregates every session the user started.
func (r *AnalyticsRepository) UserAnalytics(ctx context.Context, userID uuid.UUID) (*model.UserAnalytics, error) {
	ua := model.UserAnalytics{UserID: userID}

	const totals = `
SELECT COUNT(1),
	COUNT(1) FILTER (WHERE status = 'completed'),
	COALESCE(SUM(questions_answered), 0),
	COALESCE(AVG(score), 0),
	MAX(COALESCE(completed_at, created_at))
FROM interview_sessions
WHERE user_id = $1
`
	err := r.db.QueryRow(ctx, totals, userID).Scan(
		&ua.TotalSessions, &ua.CompletedSessions, &ua.TotalQuestionsAnswered, &ua.AverageSessionScore, &ua.LastActive,
	)
	if err != nil {
		return nil, fmt.Errorf("user session totals: %w", err)
	}
	if ua.TotalSessions == 0 {
		return &ua, nil
	}
	ua.AverageSessionScore = pkg.Round2(ua.AverageSessionScore)
	ua.CompletionRate = pkg.Percent(ua.CompletedSessions, ua.TotalSessions)

	// favorite role and average pace are independent reads
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		const favorite = `
SELECT role FROM interview_sessions
WHERE user_id = $1
GROUP BY role
ORDER BY COUNT(1) DESC, MAX(created_at) DESC
LIMIT 1
`
		if err := r.db.QueryRow(gCtx, favorite, userID).Scan(&ua.FavoriteRole); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("favorite role: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		const avgTime = `
SELECT COALESCE(AVG(sa.average_time_per_question), 0)
FROM session_analytics sa
JOIN interview_sessions s ON s.id = sa.session_id
WHERE s.user_id = $1
`
		if err := r.db.QueryRow(gCtx, avgTime, userID).Scan(&ua.AverageTimePerQuestion); err != nil {
			return fmt.Errorf("average time per question: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ua.AverageTimePerQuestion = pkg.Round2(ua.AverageTimePerQuestion)
	return &ua, nil
}

// QuestionInsights groups telemetry from every session for a role and level.
func (r *AnalyticsRepository) QuestionInsights(ctx context.Context, role string, level model.ExperienceLevel) ([]model.QuestionInsight, error) {
	const q = `
SELECT qa.question_type, qa.difficulty, COUNT(1),
	AVG(qa.time_spent)::float8,
	AVG(qa.answer_length)::float8,
	AVG(CASE WHEN qa.skipped THEN 1 ELSE 0 END)::float8,
	AVG(qa.rating)::float8
FROM question_analytics qa
JOIN interview_sessions s ON s.id = qa.session_id
WHERE lower(s.role) = lower($1) AND s.experience_level = $2
GROUP BY qa.question_type, qa.difficulty
ORDER BY qa.question_type, qa.difficulty
`
	rows, err := r.db.Query(ctx, q, role, level)
	if err != nil {
		return nil, fmt.Errorf("query question insights: %w", err)
	}
	defer rows.Close()

	out := []model.QuestionInsight{}
	for rows.Next() {
		var in model.QuestionInsight
		if err := rows.Scan(&in.QuestionType, &in.Difficulty, &in.Attempts,
			&in.AverageTimeSpent, &in.AverageAnswerLength, &in.SkipRate, &in.AverageRating); err != nil {
			return nil, fmt.Errorf("scan question insight: %w", err)
		}
		in.AverageTimeSpent = pkg.Round2(in.AverageTimeSpent)
		in.AverageAnswerLength = pkg.Round2(in.AverageAnswerLength)
		in.SkipRate = pkg.Round2(in.SkipRate * 100)
		if in.AverageRating != nil {
			v := pkg.Round2(*in.AverageRating)
			in.AverageRating = &v
		}
		out = append(out, in)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
