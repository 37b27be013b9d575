package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

// Result bundles what a successful login returns to the client.
type Result struct {
	Token   string          `json:"token"`
	Session *domain.Session `json:"session"`
	User    *domain.User    `json:"user"`
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	issuer   string
	ttl      time.Duration
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, secret, issuer string, ttl time.Duration, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		issuer:   issuer,
		ttl:      ttl,
		logger:   logger,
	}
}

// Register creates a new account with the default subject set and
// notification preferences.
func (uc *UseCase) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || name == "" || len(password) < 6 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "email, name and a password of at least 6 characters are required")
	}

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, "email already registered")
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:         email,
		Name:          name,
		PasswordHash:  string(hash),
		Notifications: domain.DefaultNotificationPrefs(),
	}
	return uc.users.Create(ctx, user)
}

// Login verifies credentials, stores a session and issues a signed token.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*Result, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(uc.ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.issueToken(user.ID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return &Result{Token: token, Session: session, User: user}, nil
}

// RefreshSession extends an existing session and re-issues a token.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string) (*Result, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	if err := uc.sessions.Extend(ctx, sessionID, int(uc.ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(uc.ttl)

	token, err := uc.issueToken(session.UserID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, Session: session}, nil
}

// RevokeSession removes the session from the cache.
func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) issueToken(userID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     uc.issuer,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.secret)
}
