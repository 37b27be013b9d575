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

const taskColumns = `id, user_id, title, subject, task_type, description, due_date,
	priority, status, completion_xp_awarded, created_at, updated_at`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR subject = $3)
	  AND ($4::timestamptz IS NULL OR created_at >= $4)
	  AND ($5::timestamptz IS NULL OR created_at <= $5)
	ORDER BY created_at DESC
	LIMIT $6 OFFSET $7
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.Status,
		filter.Subject,
		filter.CreatedFrom,
		filter.CreatedTo,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, subject, task_type, description, due_date, priority, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`
	var due interface{}
	if task.DueDate != nil {
		due = *task.DueDate
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Subject,
		task.TaskType,
		task.Description,
		due,
		task.Priority,
		task.Status,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		subject = $3,
		task_type = $4,
		description = $5,
		due_date = $6,
		priority = $7,
		status = $8,
		completion_xp_awarded = $9,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	var due interface{}
	if task.DueDate != nil {
		due = *task.DueDate
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Subject,
		task.TaskType,
		task.Description,
		due,
		task.Priority,
		task.Status,
		task.CompletionXPAwarded,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) ExistsByUserAndSubject(ctx context.Context, userID, subject string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM tasks WHERE user_id = $1 AND subject = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, subject).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *taskRepository) CountInWindow(ctx context.Context, userID string, from, to time.Time) (int, int, error) {
	const query = `
	SELECT COUNT(*),
		COUNT(*) FILTER (WHERE status = $4)
	FROM tasks
	WHERE user_id = $1
	  AND created_at >= $2
	  AND created_at <= $3
	`
	var total, completed int
	if err := r.pool.QueryRow(ctx, query, userID, from, to, domain.TaskStatusCompleted).
		Scan(&total, &completed); err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func (r *taskRepository) ListDueBetween(ctx context.Context, userID string, from, to time.Time, limit int) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = $1
	  AND status <> $2
	  AND due_date IS NOT NULL
	  AND due_date >= $3
	  AND due_date <= $4
	ORDER BY due_date ASC
	LIMIT $5
	`
	rows, err := r.pool.Query(ctx, query, userID, domain.TaskStatusCompleted, from, to, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var due *time.Time

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Subject,
		&task.TaskType,
		&task.Description,
		&due,
		&task.Priority,
		&task.Status,
		&task.CompletionXPAwarded,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task.DueDate = due
	return &task, nil
}
