package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

const userColumns = `id, email, name, password_hash, theme, subjects, xp,
	notify_task_reminders, notify_daily_digest, notify_weekly_report, reminder_time,
	created_at, updated_at`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Theme == "" {
		user.Theme = domain.ThemeSystem
	}
	if len(user.Subjects) == 0 {
		user.Subjects = append([]string(nil), domain.DefaultSubjects...)
	}

	const query = `
	INSERT INTO users (id, email, name, password_hash, theme, subjects, xp,
		notify_task_reminders, notify_daily_digest, notify_weekly_report, reminder_time)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Theme,
		user.Subjects,
		user.XP,
		user.Notifications.TaskReminders,
		user.Notifications.DailyDigest,
		user.Notifications.WeeklyReport,
		user.Notifications.ReminderTime,
	).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE users
	SET name = $2,
		password_hash = $3,
		theme = $4,
		subjects = $5,
		notify_task_reminders = $6,
		notify_daily_digest = $7,
		notify_weekly_report = $8,
		reminder_time = $9,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.PasswordHash,
		user.Theme,
		user.Subjects,
		user.Notifications.TaskReminders,
		user.Notifications.DailyDigest,
		user.Notifications.WeeklyReport,
		user.Notifications.ReminderTime,
	).Scan(&user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

// IncrementXP relies on a single UPDATE so concurrent grants for the same
// user serialize inside the database.
func (r *userRepository) IncrementXP(ctx context.Context, id string, delta int64) (int64, error) {
	const query = `
	UPDATE users
	SET xp = xp + $2, updated_at = NOW()
	WHERE id = $1
	RETURNING xp
	`
	var total int64
	if err := r.pool.QueryRow(ctx, query, id, delta).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}
	return total, nil
}

func (r *userRepository) ListTopByXP(ctx context.Context, limit int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY xp DESC, created_at ASC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

var notificationColumn = map[repository.NotificationKind]string{
	repository.NotifyTaskReminders: "notify_task_reminders",
	repository.NotifyDailyDigest:   "notify_daily_digest",
	repository.NotifyWeeklyReport:  "notify_weekly_report",
}

func (r *userRepository) ListByNotification(ctx context.Context, kind repository.NotificationKind) ([]domain.User, error) {
	column, ok := notificationColumn[kind]
	if !ok {
		return nil, fmt.Errorf("unknown notification kind %q", kind)
	}
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at ASC`, userColumns, column)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Theme,
		&user.Subjects,
		&user.XP,
		&user.Notifications.TaskReminders,
		&user.Notifications.DailyDigest,
		&user.Notifications.WeeklyReport,
		&user.Notifications.ReminderTime,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
