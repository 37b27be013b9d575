package focus

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
	"github.com/auroraminds/backend/usecase"
)

// CreateInput carries the fields accepted when recording a finished focus
// session. The client never supplies the XP value; it is derived here.
type CreateInput struct {
	TaskID          string
	DurationSeconds int
	Status          string
	Notes           string
	StartedAt       time.Time
	EndedAt         time.Time
}

type UseCase struct {
	sessions repository.FocusSessionRepository
	tasks    repository.TaskRepository
	users    repository.UserRepository
	grants   usecase.GrantBuffer
	logger   *zap.Logger
}

func New(sessions repository.FocusSessionRepository, tasks repository.TaskRepository, users repository.UserRepository, grants usecase.GrantBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions: sessions,
		tasks:    tasks,
		users:    users,
		grants:   grants,
		logger:   logger,
	}
}

// Create records the session and grants the earned XP. The session record is
// the primary artifact: a failed grant is buffered for replay, never surfaced
// as an error and never a reason to drop the session.
func (uc *UseCase) Create(ctx context.Context, userID string, input CreateInput) (*domain.FocusSession, error) {
	if input.DurationSeconds <= 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "duration must be positive")
	}
	if !domain.ValidFocusStatus(input.Status) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "status must be completed or interrupted")
	}
	if input.TaskID != "" {
		task, err := uc.tasks.GetByID(ctx, input.TaskID)
		if err != nil {
			return nil, err
		}
		if task.UserID != userID {
			return nil, domain.ErrTaskNotFound
		}
	}

	now := time.Now()
	if input.EndedAt.IsZero() {
		input.EndedAt = now
	}
	if input.StartedAt.IsZero() {
		input.StartedAt = input.EndedAt.Add(-time.Duration(input.DurationSeconds) * time.Second)
	}

	xp := domain.FocusSessionXP(input.DurationSeconds, input.Status)
	session := &domain.FocusSession{
		UserID:          userID,
		TaskID:          input.TaskID,
		DurationSeconds: input.DurationSeconds,
		Status:          input.Status,
		XPEarned:        int(xp),
		Notes:           input.Notes,
		StartedAt:       input.StartedAt,
		EndedAt:         input.EndedAt,
	}

	created, err := uc.sessions.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	if xp > 0 {
		uc.grantXP(ctx, userID, xp)
	}
	return created, nil
}

func (uc *UseCase) List(ctx context.Context, userID string) ([]domain.FocusSession, error) {
	return uc.sessions.ListByUser(ctx, userID)
}

func (uc *UseCase) ListByTask(ctx context.Context, userID, taskID string) ([]domain.FocusSession, error) {
	return uc.sessions.ListByTask(ctx, userID, taskID)
}

func (uc *UseCase) Stats(ctx context.Context, userID string) (*domain.FocusStats, error) {
	return uc.sessions.Stats(ctx, userID)
}

func (uc *UseCase) grantXP(ctx context.Context, userID string, amount int64) {
	_, err := uc.users.IncrementXP(ctx, userID, amount)
	if err == nil {
		return
	}
	uc.logger.Warn("xp grant failed, buffering",
		zap.String("user_id", userID),
		zap.Int64("amount", amount),
		zap.Error(err))
	if uc.grants == nil {
		return
	}
	if err := uc.grants.BufferGrant(ctx, userID, amount, usecase.GrantReasonFocusSession); err != nil {
		uc.logger.Error("xp grant lost, buffer rejected it",
			zap.String("user_id", userID),
			zap.Int64("amount", amount),
			zap.Error(err))
	}
}
