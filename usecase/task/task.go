package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
	"github.com/auroraminds/backend/usecase"
)

// CreateInput carries the fields accepted when creating a task. Priority
// defaults to medium and status to pending when left empty.
type CreateInput struct {
	Title       string
	Subject     string
	TaskType    string
	Description string
	DueDate     *time.Time
	Priority    string
	Status      string
}

// UpdateInput carries the optional fields of a task update. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Title       *string
	Subject     *string
	TaskType    *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
}

// ListInput narrows the task listing.
type ListInput struct {
	Status  string
	Subject string
	Limit   int
	Offset  int
}

type UseCase struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	grants usecase.GrantBuffer
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, users repository.UserRepository, grants usecase.GrantBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		users:  users,
		grants: grants,
		logger: logger,
	}
}

// Create persists a new task and grants the creation XP. The task itself is
// never rolled back when the grant fails; the grant is buffered for replay.
func (uc *UseCase) Create(ctx context.Context, userID string, input CreateInput) (*domain.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Subject = strings.TrimSpace(input.Subject)
	if input.Title == "" || input.Subject == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title and subject are required")
	}
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}
	if !domain.ValidTaskPriority(input.Priority) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "priority must be low, medium or high")
	}
	if input.Status == "" {
		input.Status = domain.TaskStatusPending
	}
	if !domain.ValidTaskStatus(input.Status) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "status must be pending, in-progress or completed")
	}
	if !domain.ValidTaskType(input.TaskType) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "taskType must be lab, assignment or project")
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       input.Title,
		Subject:     input.Subject,
		TaskType:    input.TaskType,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Status:      input.Status,
	}

	// A task created directly in the completed status already consumed its
	// one-time completion grant.
	award := domain.TaskCreationXP(task.Priority)
	if task.IsCompleted() {
		task.CompletionXPAwarded = true
		award += domain.TaskCompletionXP(task.Priority)
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.grantXP(ctx, userID, award, usecase.GrantReasonTaskCreate)
	return created, nil
}

func (uc *UseCase) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return uc.owned(ctx, userID, taskID)
}

func (uc *UseCase) List(ctx context.Context, userID string, input ListInput) ([]domain.Task, error) {
	if input.Status != "" && !domain.ValidTaskStatus(input.Status) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "status must be pending, in-progress or completed")
	}
	return uc.tasks.List(ctx, repository.TaskFilter{
		UserID:  userID,
		Status:  input.Status,
		Subject: input.Subject,
		Limit:   input.Limit,
		Offset:  input.Offset,
	})
}

// Update applies the given fields and grants the completion XP when the task
// transitions into the completed status for the first time. Reopening a task
// keeps the flag set, so later completions award nothing.
func (uc *UseCase) Update(ctx context.Context, userID, taskID string, input UpdateInput) (*domain.Task, error) {
	task, err := uc.owned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "title cannot be empty")
		}
		task.Title = title
	}
	if input.Subject != nil {
		subject := strings.TrimSpace(*input.Subject)
		if subject == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "subject cannot be empty")
		}
		task.Subject = subject
	}
	if input.TaskType != nil {
		if !domain.ValidTaskType(*input.TaskType) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "taskType must be lab, assignment or project")
		}
		task.TaskType = *input.TaskType
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Priority != nil {
		if !domain.ValidTaskPriority(*input.Priority) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "priority must be low, medium or high")
		}
		task.Priority = *input.Priority
	}

	wasCompleted := task.IsCompleted()
	if input.Status != nil {
		if !domain.ValidTaskStatus(*input.Status) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "status must be pending, in-progress or completed")
		}
		task.Status = *input.Status
	}

	var award int64
	if task.IsCompleted() && !wasCompleted && !task.CompletionXPAwarded {
		task.CompletionXPAwarded = true
		award = domain.TaskCompletionXP(task.Priority)
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if award > 0 {
		uc.grantXP(ctx, userID, award, usecase.GrantReasonTaskComplete)
	}
	return task, nil
}

// Delete removes the task. XP already granted for it is kept.
func (uc *UseCase) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := uc.owned(ctx, userID, taskID); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, taskID)
}

// owned loads a task and hides other users' tasks behind a not-found error.
func (uc *UseCase) owned(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// grantXP applies the increment, falling back to the pending-grant buffer
// when storage is unavailable. It never fails the caller.
func (uc *UseCase) grantXP(ctx context.Context, userID string, amount int64, reason string) {
	if amount <= 0 {
		return
	}
	_, err := uc.users.IncrementXP(ctx, userID, amount)
	if err == nil {
		return
	}
	uc.logger.Warn("xp grant failed, buffering",
		zap.String("user_id", userID),
		zap.Int64("amount", amount),
		zap.String("reason", reason),
		zap.Error(err))
	if uc.grants == nil {
		return
	}
	if err := uc.grants.BufferGrant(ctx, userID, amount, reason); err != nil {
		uc.logger.Error("xp grant lost, buffer rejected it",
			zap.String("user_id", userID),
			zap.Int64("amount", amount),
			zap.String("reason", reason),
			zap.Error(err))
	}
}
