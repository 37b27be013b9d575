package profile

import (
	"context"
	"testing"
	"time"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	clone.Subjects = append([]string(nil), user.Subjects...)
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) IncrementXP(_ context.Context, id string, delta int64) (int64, error) {
	user, ok := f.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	user.XP += delta
	return user.XP, nil
}

func (f *fakeUserRepo) ListTopByXP(context.Context, int) ([]domain.User, error) { return nil, nil }

func (f *fakeUserRepo) ListByNotification(context.Context, repository.NotificationKind) ([]domain.User, error) {
	return nil, nil
}

type fakeTaskRepo struct {
	subjectInUse map[string]bool
}

func (f *fakeTaskRepo) GetByID(context.Context, string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) List(context.Context, repository.TaskFilter) ([]domain.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (f *fakeTaskRepo) Update(context.Context, *domain.Task) error { return nil }
func (f *fakeTaskRepo) Delete(context.Context, string) error       { return nil }

func (f *fakeTaskRepo) ExistsByUserAndSubject(_ context.Context, _ string, subject string) (bool, error) {
	return f.subjectInUse[subject], nil
}

func (f *fakeTaskRepo) CountInWindow(context.Context, string, time.Time, time.Time) (int, int, error) {
	return 0, 0, nil
}

func (f *fakeTaskRepo) ListDueBetween(context.Context, string, time.Time, time.Time, int) ([]domain.Task, error) {
	return nil, nil
}

func newFixture(inUse map[string]bool) (*UseCase, *fakeUserRepo) {
	users := &fakeUserRepo{users: map[string]*domain.User{
		"u1": {
			ID:       "u1",
			Email:    "mara@example.com",
			Name:     "Mara",
			Theme:    domain.ThemeSystem,
			Subjects: []string{"Math", "Art"},
			XP:       350,
		},
	}}
	tasks := &fakeTaskRepo{subjectInUse: inUse}
	return New(users, tasks, nil), users
}

func TestGetDerivesLevel(t *testing.T) {
	uc, _ := newFixture(nil)

	profile, err := uc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// 350 XP: past the 100 and 300 thresholds.
	if profile.Level != 3 {
		t.Errorf("Level = %d, want 3", profile.Level)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	uc, users := newFixture(nil)

	name := "Mara K"
	theme := domain.ThemeDark
	profile, err := uc.Update(context.Background(), "u1", UpdateInput{Name: &name, Theme: &theme})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if profile.Name != "Mara K" || profile.Theme != domain.ThemeDark {
		t.Errorf("profile = %+v", profile.User)
	}
	if users.users["u1"].Email != "mara@example.com" {
		t.Error("untouched field changed")
	}
}

func TestUpdateRejectsBadTheme(t *testing.T) {
	uc, _ := newFixture(nil)

	theme := "sepia"
	if _, err := uc.Update(context.Background(), "u1", UpdateInput{Theme: &theme}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("err = %v, want INVALID", err)
	}
}

func TestAddSubject(t *testing.T) {
	uc, _ := newFixture(nil)

	subjects, err := uc.AddSubject(context.Background(), "u1", "  Biology ")
	if err != nil {
		t.Fatalf("AddSubject: %v", err)
	}
	if len(subjects) != 3 || subjects[2] != "Biology" {
		t.Errorf("subjects = %v", subjects)
	}

	if _, err := uc.AddSubject(context.Background(), "u1", "Biology"); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("duplicate: err = %v, want INVALID", err)
	}
	if _, err := uc.AddSubject(context.Background(), "u1", "   "); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("blank: err = %v, want INVALID", err)
	}
}

func TestRemoveSubject(t *testing.T) {
	uc, _ := newFixture(nil)

	subjects, err := uc.RemoveSubject(context.Background(), "u1", "Art")
	if err != nil {
		t.Fatalf("RemoveSubject: %v", err)
	}
	if len(subjects) != 1 || subjects[0] != "Math" {
		t.Errorf("subjects = %v", subjects)
	}

	if _, err := uc.RemoveSubject(context.Background(), "u1", "Art"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("missing: err = %v, want NOT_FOUND", err)
	}
}

func TestRemoveSubjectBlockedWhileReferenced(t *testing.T) {
	uc, users := newFixture(map[string]bool{"Math": true})

	if _, err := uc.RemoveSubject(context.Background(), "u1", "Math"); !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Errorf("err = %v, want CONFLICT", err)
	}
	if len(users.users["u1"].Subjects) != 2 {
		t.Errorf("subjects mutated: %v", users.users["u1"].Subjects)
	}
}
