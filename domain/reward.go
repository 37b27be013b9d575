package domain

import "time"

// Reward claim status values as exposed to clients.
const (
	RewardStatusLocked   = "locked"
	RewardStatusUnlocked = "unlocked"
	RewardStatusClaimed  = "claimed"
)

// Reward is a static catalog entry unlockable at a level threshold.
type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
	Logo        string `json:"logo"`
	Category    string `json:"category"`
}

// RewardWithStatus decorates a catalog entry with the caller's claim status.
type RewardWithStatus struct {
	Reward
	Status string `json:"status"`
}

// ClaimedReward is the ledger record of a one-time reward redemption.
// A user can hold at most one claim per reward id; the storage layer enforces
// the uniqueness so concurrent claims collapse onto a single record.
type ClaimedReward struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	RewardID  string    `json:"rewardId"`
	Code      string    `json:"code"`
	ClaimedAt time.Time `json:"claimedAt"`
}
