package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

const sessionColumns = `id, user_id, task_id, duration_seconds, status, xp_earned,
	notes, started_at, ended_at, created_at`

type focusSessionRepository struct {
	pool *pgxpool.Pool
}

// NewFocusSessionRepository returns a Postgres-backed FocusSessionRepository.
func NewFocusSessionRepository(pool *pgxpool.Pool) repository.FocusSessionRepository {
	return &focusSessionRepository{pool: pool}
}

func (r *focusSessionRepository) Create(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	if session == nil {
		return nil, domain.ErrInvalidPayload
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO focus_sessions (id, user_id, task_id, duration_seconds, status, xp_earned, notes, started_at, ended_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		nullString(session.TaskID),
		session.DurationSeconds,
		session.Status,
		session.XPEarned,
		session.Notes,
		session.StartedAt,
		session.EndedAt,
	).Scan(&session.CreatedAt); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *focusSessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.FocusSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM focus_sessions WHERE user_id = $1 ORDER BY started_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *focusSessionRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.FocusSession, error) {
	query := `
	SELECT ` + sessionColumns + `
	FROM focus_sessions
	WHERE user_id = $1 AND started_at >= $2 AND started_at <= $3
	ORDER BY started_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *focusSessionRepository) ListByTask(ctx context.Context, userID, taskID string) ([]domain.FocusSession, error) {
	query := `
	SELECT ` + sessionColumns + `
	FROM focus_sessions
	WHERE user_id = $1 AND task_id = $2
	ORDER BY started_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *focusSessionRepository) Stats(ctx context.Context, userID string) (*domain.FocusStats, error) {
	const query = `
	SELECT COUNT(*),
		COALESCE(SUM(duration_seconds), 0),
		COALESCE(SUM(xp_earned), 0),
		COUNT(*) FILTER (WHERE status = $2),
		COUNT(*) FILTER (WHERE status = $3)
	FROM focus_sessions
	WHERE user_id = $1
	`
	var stats domain.FocusStats
	if err := r.pool.QueryRow(ctx, query, userID,
		domain.FocusStatusCompleted,
		domain.FocusStatusInterrupted,
	).Scan(
		&stats.TotalSessions,
		&stats.TotalDuration,
		&stats.TotalXP,
		&stats.CompletedSessions,
		&stats.InterruptedSessions,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func collectSessions(rows pgx.Rows) ([]domain.FocusSession, error) {
	var sessions []domain.FocusSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func scanSession(row interface {
	Scan(dest ...interface{}) error
}) (*domain.FocusSession, error) {
	var session domain.FocusSession
	var taskID *string

	if err := row.Scan(
		&session.ID,
		&session.UserID,
		&taskID,
		&session.DurationSeconds,
		&session.Status,
		&session.XPEarned,
		&session.Notes,
		&session.StartedAt,
		&session.EndedAt,
		&session.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	if taskID != nil {
		session.TaskID = *taskID
	}
	return &session, nil
}
