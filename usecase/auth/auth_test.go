package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func (f *fakeUserRepo) GetByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	user.ID = "u-" + user.Email
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) Update(context.Context, *domain.User) error { return nil }

func (f *fakeUserRepo) IncrementXP(context.Context, string, int64) (int64, error) { return 0, nil }

func (f *fakeUserRepo) ListTopByXP(context.Context, int) ([]domain.User, error) { return nil, nil }

func (f *fakeUserRepo) ListByNotification(context.Context, repository.NotificationKind) ([]domain.User, error) {
	return nil, nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func (f *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) Save(_ context.Context, session *domain.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) Extend(_ context.Context, id string, ttlSeconds int) error {
	session, ok := f.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

func newUseCase() (*UseCase, *fakeUserRepo, *fakeSessionRepo) {
	users := &fakeUserRepo{byEmail: map[string]*domain.User{}}
	sessions := &fakeSessionRepo{sessions: map[string]*domain.Session{}}
	return New(users, sessions, "test-secret", "auroraminds", time.Hour, nil), users, sessions
}

func TestRegisterNormalizesEmail(t *testing.T) {
	uc, users, _ := newUseCase()

	user, err := uc.Register(context.Background(), "  Mara@Example.COM ", "Mara", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "mara@example.com" {
		t.Errorf("Email = %q", user.Email)
	}
	if _, ok := users.byEmail["mara@example.com"]; !ok {
		t.Error("user not stored under normalized email")
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterValidation(t *testing.T) {
	uc, _, _ := newUseCase()

	cases := []struct {
		name     string
		email    string
		userName string
		password string
	}{
		{"blank email", "", "Mara", "hunter22"},
		{"blank name", "mara@example.com", "  ", "hunter22"},
		{"short password", "mara@example.com", "Mara", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Register(context.Background(), tc.email, tc.userName, tc.password); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
				t.Errorf("err = %v, want INVALID", err)
			}
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, _, _ := newUseCase()

	if _, err := uc.Register(context.Background(), "mara@example.com", "Mara", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := uc.Register(context.Background(), "MARA@example.com", "Other", "hunter22"); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("err = %v, want INVALID", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	uc, users, sessions := newUseCase()

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	users.byEmail["mara@example.com"] = &domain.User{
		ID:           "u1",
		Email:        "mara@example.com",
		PasswordHash: string(hash),
	}

	result, err := uc.Login(context.Background(), "Mara@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Session == nil || sessions.sessions[result.Session.ID] == nil {
		t.Fatal("session not stored")
	}

	token, err := jwt.Parse(result.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != "u1" {
		t.Errorf("user_id claim = %v", claims["user_id"])
	}
	if claims["iss"] != "auroraminds" {
		t.Errorf("iss claim = %v", claims["iss"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	uc, users, _ := newUseCase()

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	users.byEmail["mara@example.com"] = &domain.User{ID: "u1", Email: "mara@example.com", PasswordHash: string(hash)}

	if _, err := uc.Login(context.Background(), "mara@example.com", "wrong"); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Errorf("err = %v, want UNAUTHORIZED", err)
	}
	if _, err := uc.Login(context.Background(), "nobody@example.com", "hunter22"); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Errorf("unknown email: err = %v, want UNAUTHORIZED", err)
	}
}

func TestRefreshExpiredSession(t *testing.T) {
	uc, _, sessions := newUseCase()

	sessions.sessions["s1"] = &domain.Session{
		ID:        "s1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	if _, err := uc.RefreshSession(context.Background(), "s1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
	if _, ok := sessions.sessions["s1"]; ok {
		t.Error("expired session not removed")
	}
}

func TestRefreshExtendsSession(t *testing.T) {
	uc, _, sessions := newUseCase()

	sessions.sessions["s1"] = &domain.Session{
		ID:        "s1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Minute),
	}

	result, err := uc.RefreshSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("RefreshSession: %v", err)
	}
	if result.Token == "" {
		t.Error("no token issued")
	}
	if !sessions.sessions["s1"].ExpiresAt.After(time.Now().Add(30 * time.Minute)) {
		t.Error("session not extended")
	}
}
