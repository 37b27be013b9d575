package repository

import (
	"context"
	"time"

	"github.com/auroraminds/backend/domain"
)

type TaskFilter struct {
	UserID      string
	Status      string
	Subject     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error

	// ExistsByUserAndSubject reports whether any task of the user references
	// the subject. Used to block deleting subjects that are still in use.
	ExistsByUserAndSubject(ctx context.Context, userID, subject string) (bool, error)

	// CountInWindow returns how many tasks the user created inside [from, to]
	// and how many of those are completed.
	CountInWindow(ctx context.Context, userID string, from, to time.Time) (total, completed int, err error)

	// ListDueBetween returns the user's not-yet-completed tasks with a due
	// date inside [from, to], ordered by due date, capped at limit.
	ListDueBetween(ctx context.Context, userID string, from, to time.Time, limit int) ([]domain.Task, error)
}
