package focus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

type fakeSessionRepo struct {
	sessions []domain.FocusSession
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	session.ID = "s1"
	session.CreatedAt = time.Now()
	f.sessions = append(f.sessions, *session)
	return session, nil
}

func (f *fakeSessionRepo) ListByUser(_ context.Context, userID string) ([]domain.FocusSession, error) {
	var out []domain.FocusSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByUserBetween(_ context.Context, userID string, from, to time.Time) ([]domain.FocusSession, error) {
	return f.ListByUser(nil, userID)
}

func (f *fakeSessionRepo) ListByTask(_ context.Context, userID, taskID string) ([]domain.FocusSession, error) {
	var out []domain.FocusSession
	for _, s := range f.sessions {
		if s.UserID == userID && s.TaskID == taskID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Stats(_ context.Context, userID string) (*domain.FocusStats, error) {
	stats := &domain.FocusStats{}
	for _, s := range f.sessions {
		if s.UserID != userID {
			continue
		}
		stats.TotalSessions++
		stats.TotalDuration += int64(s.DurationSeconds)
		stats.TotalXP += int64(s.XPEarned)
		switch s.Status {
		case domain.FocusStatusCompleted:
			stats.CompletedSessions++
		case domain.FocusStatusInterrupted:
			stats.InterruptedSessions++
		}
	}
	return stats, nil
}

type fakeTaskRepo struct {
	tasks map[string]*domain.Task
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeTaskRepo) List(context.Context, repository.TaskFilter) ([]domain.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (f *fakeTaskRepo) Update(context.Context, *domain.Task) error { return nil }
func (f *fakeTaskRepo) Delete(context.Context, string) error       { return nil }

func (f *fakeTaskRepo) ExistsByUserAndSubject(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *fakeTaskRepo) CountInWindow(context.Context, string, time.Time, time.Time) (int, int, error) {
	return 0, 0, nil
}

func (f *fakeTaskRepo) ListDueBetween(context.Context, string, time.Time, time.Time, int) ([]domain.Task, error) {
	return nil, nil
}

type fakeUserRepo struct {
	xp      map[string]int64
	failing bool
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

func newUseCase(sessions *fakeSessionRepo, users *fakeUserRepo, grants *fakeGrantBuffer) *UseCase {
	tasks := &fakeTaskRepo{tasks: map[string]*domain.Task{
		"t1": {ID: "t1", UserID: "u1", Subject: "Math"},
	}}
	if grants == nil {
		return New(sessions, tasks, users, nil, nil)
	}
	return New(sessions, tasks, users, grants, nil)
}

func TestCreateComputesXPServerSide(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		status   string
		wantXP   int
	}{
		{"completed truncates to minutes", 125, domain.FocusStatusCompleted, 2},
		{"interrupted earns nothing", 1500, domain.FocusStatusInterrupted, 0},
		{"twenty five minutes", 1500, domain.FocusStatusCompleted, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &fakeSessionRepo{}
			users := &fakeUserRepo{xp: map[string]int64{}}
			uc := newUseCase(sessions, users, nil)

			created, err := uc.Create(context.Background(), "u1", CreateInput{
				DurationSeconds: tt.duration,
				Status:          tt.status,
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if created.XPEarned != tt.wantXP {
				t.Errorf("XPEarned = %d, want %d", created.XPEarned, tt.wantXP)
			}
			if users.xp["u1"] != int64(tt.wantXP) {
				t.Errorf("granted xp = %d, want %d", users.xp["u1"], tt.wantXP)
			}
		})
	}
}

func TestCreateValidation(t *testing.T) {
	uc := newUseCase(&fakeSessionRepo{}, &fakeUserRepo{xp: map[string]int64{}}, nil)

	if _, err := uc.Create(context.Background(), "u1", CreateInput{
		DurationSeconds: 0, Status: domain.FocusStatusCompleted,
	}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("zero duration: err = %v, want INVALID", err)
	}
	if _, err := uc.Create(context.Background(), "u1", CreateInput{
		DurationSeconds: 60, Status: "paused",
	}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("bad status: err = %v, want INVALID", err)
	}
}

func TestCreateRejectsForeignTask(t *testing.T) {
	uc := newUseCase(&fakeSessionRepo{}, &fakeUserRepo{xp: map[string]int64{}}, nil)

	if _, err := uc.Create(context.Background(), "u2", CreateInput{
		TaskID:          "t1",
		DurationSeconds: 60,
		Status:          domain.FocusStatusCompleted,
	}); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestCreateBuffersGrantOnFailure(t *testing.T) {
	sessions := &fakeSessionRepo{}
	users := &fakeUserRepo{xp: map[string]int64{}, failing: true}
	grants := &fakeGrantBuffer{}
	uc := newUseCase(sessions, users, grants)

	created, err := uc.Create(context.Background(), "u1", CreateInput{
		DurationSeconds: 600,
		Status:          domain.FocusStatusCompleted,
	})
	if err != nil {
		t.Fatalf("Create must not fail on grant error: %v", err)
	}
	if len(sessions.sessions) != 1 {
		t.Fatal("session not persisted")
	}
	if created.XPEarned != 10 {
		t.Errorf("XPEarned = %d, want 10", created.XPEarned)
	}
	if len(grants.grants) != 1 || grants.grants[0] != 10 {
		t.Errorf("buffered grants = %v, want [10]", grants.grants)
	}
}

func TestStatsAggregates(t *testing.T) {
	sessions := &fakeSessionRepo{}
	users := &fakeUserRepo{xp: map[string]int64{}}
	uc := newUseCase(sessions, users, nil)

	inputs := []CreateInput{
		{DurationSeconds: 600, Status: domain.FocusStatusCompleted},
		{DurationSeconds: 300, Status: domain.FocusStatusCompleted},
		{DurationSeconds: 200, Status: domain.FocusStatusInterrupted},
	}
	for _, input := range inputs {
		if _, err := uc.Create(context.Background(), "u1", input); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	stats, err := uc.Stats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalSessions != 3 || stats.CompletedSessions != 2 || stats.InterruptedSessions != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.TotalDuration != 1100 {
		t.Errorf("TotalDuration = %d, want 1100", stats.TotalDuration)
	}
	if stats.TotalXP != 15 {
		t.Errorf("TotalXP = %d, want 15", stats.TotalXP)
	}
}
