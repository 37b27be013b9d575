package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

type fakeTaskRepo struct {
	tasks map[string]*domain.Task
	next  int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]*domain.Task{}}
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (f *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.tasks {
		if filter.UserID != "" && task.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Subject != "" && task.Subject != filter.Subject {
			continue
		}
		out = append(out, *task)
	}
	return out, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	f.next++
	task.ID = "task-" + string(rune('a'+f.next-1))
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	clone := *task
	f.tasks[task.ID] = &clone
	return task, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *task
	f.tasks[task.ID] = &clone
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) ExistsByUserAndSubject(_ context.Context, userID, subject string) (bool, error) {
	for _, task := range f.tasks {
		if task.UserID == userID && task.Subject == subject {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskRepo) CountInWindow(_ context.Context, userID string, from, to time.Time) (int, int, error) {
	total, completed := 0, 0
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		total++
		if task.Status == domain.TaskStatusCompleted {
			completed++
		}
	}
	return total, completed, nil
}

func (f *fakeTaskRepo) ListDueBetween(_ context.Context, userID string, from, to time.Time, limit int) ([]domain.Task, error) {
	return nil, nil
}

type fakeUserRepo struct {
	xp      map[string]int64
	failing bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{xp: map[string]int64{}}
}

func (f *fakeUserRepo) IncrementXP(_ context.Context, id string, delta int64) (int64, error) {
	if f.failing {
		return 0, errors.New("storage offline")
	}
	f.xp[id] += delta
	return f.xp[id], nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, XP: f.xp[id]}, nil
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (f *fakeUserRepo) Update(context.Context, *domain.User) error { return nil }

func (f *fakeUserRepo) ListTopByXP(context.Context, int) ([]domain.User, error) { return nil, nil }

func (f *fakeUserRepo) ListByNotification(context.Context, repository.NotificationKind) ([]domain.User, error) {
	return nil, nil
}

type fakeGrantBuffer struct {
	grants []int64
}

func (f *fakeGrantBuffer) BufferGrant(_ context.Context, _ string, amount int64, _ string) error {
	f.grants = append(f.grants, amount)
	return nil
}

func TestCreateGrantsCreationXP(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	uc := New(tasks, users, nil, nil)

	created, err := uc.Create(context.Background(), "u1", CreateInput{
		Title:    "Finish lab report",
		Subject:  "Science",
		Priority: domain.TaskPriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != domain.TaskStatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if users.xp["u1"] != 20 {
		t.Errorf("xp = %d, want 20", users.xp["u1"])
	}
}

func TestCreateDefaultsPriorityMedium(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	uc := New(tasks, users, nil, nil)

	if _, err := uc.Create(context.Background(), "u1", CreateInput{
		Title:   "Read chapter",
		Subject: "History",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if users.xp["u1"] != 15 {
		t.Errorf("xp = %d, want 15 for medium default", users.xp["u1"])
	}
}

func TestCreateCompletedAwardsBothGrants(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	uc := New(tasks, users, nil, nil)

	created, err := uc.Create(context.Background(), "u1", CreateInput{
		Title:    "Already done",
		Subject:  "Math",
		Priority: domain.TaskPriorityLow,
		Status:   domain.TaskStatusCompleted,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.CompletionXPAwarded {
		t.Error("CompletionXPAwarded not set on completed create")
	}
	// 10 creation + 15 completion for low priority.
	if users.xp["u1"] != 25 {
		t.Errorf("xp = %d, want 25", users.xp["u1"])
	}
}

func TestCreateValidation(t *testing.T) {
	uc := New(newFakeTaskRepo(), newFakeUserRepo(), nil, nil)

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing title", CreateInput{Subject: "Math"}},
		{"missing subject", CreateInput{Title: "x"}},
		{"bad priority", CreateInput{Title: "x", Subject: "Math", Priority: "urgent"}},
		{"bad status", CreateInput{Title: "x", Subject: "Math", Status: "done"}},
		{"bad type", CreateInput{Title: "x", Subject: "Math", TaskType: "quiz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Create(context.Background(), "u1", tt.input); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
				t.Errorf("err = %v, want INVALID", err)
			}
		})
	}
}

func TestCompletionXPAwardedOnce(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	uc := New(tasks, users, nil, nil)

	created, err := uc.Create(context.Background(), "u1", CreateInput{
		Title:    "Essay",
		Subject:  "English",
		Priority: domain.TaskPriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	afterCreate := users.xp["u1"]

	complete := domain.TaskStatusCompleted
	if _, err := uc.Update(context.Background(), "u1", created.ID, UpdateInput{Status: &complete}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := users.xp["u1"] - afterCreate; got != 50 {
		t.Fatalf("completion grant = %d, want 50", got)
	}

	// Reopen and complete again: no second grant.
	pending := domain.TaskStatusPending
	if _, err := uc.Update(context.Background(), "u1", created.ID, UpdateInput{Status: &pending}); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := uc.Update(context.Background(), "u1", created.ID, UpdateInput{Status: &complete}); err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if got := users.xp["u1"] - afterCreate; got != 50 {
		t.Errorf("xp after re-completion = +%d, want +50 (no double grant)", got)
	}
}

func TestUpdateNonStatusFieldKeepsXP(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	uc := New(tasks, users, nil, nil)

	created, _ := uc.Create(context.Background(), "u1", CreateInput{
		Title: "Lab", Subject: "Science",
	})
	before := users.xp["u1"]

	title := "Lab 2"
	if _, err := uc.Update(context.Background(), "u1", created.ID, UpdateInput{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if users.xp["u1"] != before {
		t.Errorf("xp changed on title update: %d -> %d", before, users.xp["u1"])
	}
}

func TestOwnershipHiddenAsNotFound(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	uc := New(tasks, users, nil, nil)

	created, _ := uc.Create(context.Background(), "owner", CreateInput{
		Title: "Private", Subject: "Art",
	})

	if _, err := uc.Get(context.Background(), "intruder", created.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("Get: err = %v, want NOT_FOUND", err)
	}
	status := domain.TaskStatusCompleted
	if _, err := uc.Update(context.Background(), "intruder", created.ID, UpdateInput{Status: &status}); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("Update: err = %v, want NOT_FOUND", err)
	}
	if err := uc.Delete(context.Background(), "intruder", created.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("Delete: err = %v, want NOT_FOUND", err)
	}
}

func TestDeleteKeepsEarnedXP(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	uc := New(tasks, users, nil, nil)

	created, _ := uc.Create(context.Background(), "u1", CreateInput{
		Title: "Doomed", Subject: "Math", Priority: domain.TaskPriorityHigh,
	})
	complete := domain.TaskStatusCompleted
	if _, err := uc.Update(context.Background(), "u1", created.ID, UpdateInput{Status: &complete}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	before := users.xp["u1"]

	if err := uc.Delete(context.Background(), "u1", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if users.xp["u1"] != before {
		t.Errorf("xp retracted on delete: %d -> %d", before, users.xp["u1"])
	}
	if _, err := uc.Get(context.Background(), "u1", created.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("task still readable after delete: %v", err)
	}
}

func TestGrantBufferedWhenIncrementFails(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	users.failing = true
	grants := &fakeGrantBuffer{}
	uc := New(tasks, users, grants, nil)

	created, err := uc.Create(context.Background(), "u1", CreateInput{
		Title: "Resilient", Subject: "Science", Priority: domain.TaskPriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create must not fail on grant error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("task not persisted")
	}
	if len(grants.grants) != 1 || grants.grants[0] != 20 {
		t.Errorf("buffered grants = %v, want [20]", grants.grants)
	}
}
