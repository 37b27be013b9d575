package leaderboard

import (
	"context"

	"github.com/auroraminds/backend/repository"
)

const defaultSize = 100

// Entry is one leaderboard row.
type Entry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	XP    int64  `json:"xp"`
	Level int    `json:"level"`
}

type UseCase struct {
	users repository.UserRepository
}

func New(users repository.UserRepository) *UseCase {
	return &UseCase{users: users}
}

// Top returns the highest-XP users, ranked from 1. A non-positive limit
// falls back to the default board size.
func (uc *UseCase) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultSize
	}

	users, err := uc.users.ListTopByXP(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(users))
	for i, user := range users {
		entries = append(entries, Entry{
			Rank:  i + 1,
			Name:  user.Name,
			XP:    user.XP,
			Level: user.Level(),
		})
	}
	return entries, nil
}
