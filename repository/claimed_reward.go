package repository

import (
	"context"

	"github.com/auroraminds/backend/domain"
)

// ClaimedRewardRepository is the at-most-once claim ledger. The storage layer
// carries a unique (user_id, reward_id) constraint; Insert surfaces a
// violation as domain.ErrClaimConflict so callers can fall back to fetching
// the record that won the race.
type ClaimedRewardRepository interface {
	Insert(ctx context.Context, claim *domain.ClaimedReward) error
	GetByUserAndReward(ctx context.Context, userID, rewardID string) (*domain.ClaimedReward, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ClaimedReward, error)
}
