package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

// UpdateInput carries the optional profile fields a user may change. Nil
// pointers leave the stored value untouched.
type UpdateInput struct {
	Name          *string
	Password      *string
	Theme         *string
	Notifications *domain.NotificationPrefs
}

// Profile is the user as exposed to the client, with the derived level.
type Profile struct {
	*domain.User
	Level int `json:"level"`
}

type UseCase struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*Profile, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Level: user.Level()}, nil
}

func (uc *UseCase) Update(ctx context.Context, userID string, input UpdateInput) (*Profile, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "name cannot be empty")
		}
		user.Name = name
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return nil, domain.NewError(domain.ErrCodeInvalid, "password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if input.Theme != nil {
		switch *input.Theme {
		case domain.ThemeLight, domain.ThemeDark, domain.ThemeSystem:
			user.Theme = *input.Theme
		default:
			return nil, domain.NewError(domain.ErrCodeInvalid, "theme must be light, dark or system")
		}
	}
	if input.Notifications != nil {
		user.Notifications = *input.Notifications
		if user.Notifications.ReminderTime == "" {
			user.Notifications.ReminderTime = domain.DefaultNotificationPrefs().ReminderTime
		}
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &Profile{User: user, Level: user.Level()}, nil
}

func (uc *UseCase) Subjects(ctx context.Context, userID string) ([]string, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Subjects, nil
}

func (uc *UseCase) AddSubject(ctx context.Context, userID, subject string) ([]string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "subject cannot be empty")
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasSubject(subject) {
		return nil, domain.ErrSubjectExists
	}

	user.Subjects = append(user.Subjects, subject)
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Subjects, nil
}

// RemoveSubject deletes a subject from the user's set. Subjects still
// referenced by any of the user's tasks cannot be removed.
func (uc *UseCase) RemoveSubject(ctx context.Context, userID, subject string) ([]string, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasSubject(subject) {
		return nil, domain.ErrSubjectNotFound
	}

	inUse, err := uc.tasks.ExistsByUserAndSubject(ctx, userID, subject)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, domain.ErrSubjectInUse
	}

	kept := user.Subjects[:0]
	for _, s := range user.Subjects {
		if s != subject {
			kept = append(kept, s)
		}
	}
	user.Subjects = kept

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Subjects, nil
}
