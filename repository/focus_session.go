package repository

import (
	"context"
	"time"

	"github.com/auroraminds/backend/domain"
)

// FocusSessionRepository persists focus sessions. Sessions are append-only:
// there is no update or delete path.
type FocusSessionRepository interface {
	Create(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error)

	// ListByUser returns all sessions, newest start first.
	ListByUser(ctx context.Context, userID string) ([]domain.FocusSession, error)

	// ListByUserBetween returns the sessions started inside [from, to],
	// oldest start first.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.FocusSession, error)

	ListByTask(ctx context.Context, userID, taskID string) ([]domain.FocusSession, error)

	Stats(ctx context.Context, userID string) (*domain.FocusStats, error)
}
