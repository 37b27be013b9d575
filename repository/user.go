package repository

import (
	"context"

	"github.com/auroraminds/backend/domain"
)

// NotificationKind selects users opted into one of the scheduled email jobs.
type NotificationKind string

const (
	NotifyTaskReminders NotificationKind = "task_reminders"
	NotifyDailyDigest   NotificationKind = "daily_digest"
	NotifyWeeklyReport  NotificationKind = "weekly_report"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// IncrementXP atomically adds delta to the stored XP counter and returns
	// the new total. Implementations must perform the increment in storage,
	// never read-modify-write.
	IncrementXP(ctx context.Context, id string, delta int64) (int64, error)

	ListTopByXP(ctx context.Context, limit int) ([]domain.User, error)
	ListByNotification(ctx context.Context, kind NotificationKind) ([]domain.User, error)
}
