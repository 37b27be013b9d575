package rewards

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

// Overview pairs the caller's level with the full catalog and per-entry
// claim status.
type Overview struct {
	Rewards   []domain.RewardWithStatus `json:"rewards"`
	UserLevel int                       `json:"userLevel"`
}

type UseCase struct {
	catalog *Catalog
	users   repository.UserRepository
	claims  repository.ClaimedRewardRepository
	logger  *zap.Logger
}

func New(catalog *Catalog, users repository.UserRepository, claims repository.ClaimedRewardRepository, logger *zap.Logger) *UseCase {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		catalog: catalog,
		users:   users,
		claims:  claims,
		logger:  logger,
	}
}

// List returns every catalog entry with the user's status for it: claimed
// wins over unlocked, unlocked over locked.
func (uc *UseCase) List(ctx context.Context, userID string) (*Overview, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	level := user.Level()

	claimed, err := uc.claims.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	claimedIDs := make(map[string]bool, len(claimed))
	for _, c := range claimed {
		claimedIDs[c.RewardID] = true
	}

	entries := uc.catalog.All()
	out := make([]domain.RewardWithStatus, 0, len(entries))
	for _, entry := range entries {
		status := domain.RewardStatusLocked
		switch {
		case claimedIDs[entry.ID]:
			status = domain.RewardStatusClaimed
		case level >= entry.Level:
			status = domain.RewardStatusUnlocked
		}
		out = append(out, domain.RewardWithStatus{Reward: entry, Status: status})
	}

	return &Overview{Rewards: out, UserLevel: level}, nil
}

// Claim redeems a reward for the user. Claiming is idempotent: a repeated
// claim returns the existing ledger record with its original code, and two
// concurrent claims collapse onto whichever insert won.
func (uc *UseCase) Claim(ctx context.Context, userID, rewardID string) (*domain.ClaimedReward, error) {
	reward, ok := uc.catalog.Get(rewardID)
	if !ok {
		return nil, domain.ErrRewardNotFound
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Level() < reward.Level {
		return nil, domain.ErrRewardLocked
	}

	existing, err := uc.claims.GetByUserAndReward(ctx, userID, rewardID)
	if err == nil {
		return existing, nil
	}
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	claim := &domain.ClaimedReward{
		UserID:   userID,
		RewardID: rewardID,
		Code:     claimCode(rewardID),
	}
	if err := uc.claims.Insert(ctx, claim); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeConflict) {
			// Lost the race; the winning record is the claim.
			return uc.claims.GetByUserAndReward(ctx, userID, rewardID)
		}
		return nil, err
	}
	return claim, nil
}

// Claimed returns the user's claim history.
func (uc *UseCase) Claimed(ctx context.Context, userID string) ([]domain.ClaimedReward, error) {
	return uc.claims.ListByUser(ctx, userID)
}

func claimCode(rewardID string) string {
	segment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("AURORA-%s-%s", strings.ToUpper(rewardID), strings.ToUpper(segment))
}
