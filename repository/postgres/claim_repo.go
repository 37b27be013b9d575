package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

const uniqueViolation = "23505"

type claimedRewardRepository struct {
	pool *pgxpool.Pool
}

// NewClaimedRewardRepository returns a Postgres-backed claim ledger.
func NewClaimedRewardRepository(pool *pgxpool.Pool) repository.ClaimedRewardRepository {
	return &claimedRewardRepository{pool: pool}
}

// Insert persists the claim. The claimed_rewards table carries a unique
// (user_id, reward_id) index; a violation is reported as ErrClaimConflict so
// the use case can return the record that won the race.
func (r *claimedRewardRepository) Insert(ctx context.Context, claim *domain.ClaimedReward) error {
	if claim == nil {
		return domain.ErrInvalidPayload
	}
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO claimed_rewards (id, user_id, reward_id, code)
	VALUES ($1, $2, $3, $4)
	RETURNING claimed_at
	`
	if err := r.pool.QueryRow(ctx, query,
		claim.ID,
		claim.UserID,
		claim.RewardID,
		claim.Code,
	).Scan(&claim.ClaimedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.WrapError(domain.ErrCodeConflict, "reward already claimed", err)
		}
		return err
	}
	return nil
}

func (r *claimedRewardRepository) GetByUserAndReward(ctx context.Context, userID, rewardID string) (*domain.ClaimedReward, error) {
	const query = `
	SELECT id, user_id, reward_id, code, claimed_at
	FROM claimed_rewards
	WHERE user_id = $1 AND reward_id = $2
	`
	return scanClaim(r.pool.QueryRow(ctx, query, userID, rewardID))
}

func (r *claimedRewardRepository) ListByUser(ctx context.Context, userID string) ([]domain.ClaimedReward, error) {
	const query = `
	SELECT id, user_id, reward_id, code, claimed_at
	FROM claimed_rewards
	WHERE user_id = $1
	ORDER BY claimed_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.ClaimedReward
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, *claim)
	}
	return claims, rows.Err()
}

func scanClaim(row interface {
	Scan(dest ...interface{}) error
}) (*domain.ClaimedReward, error) {
	var claim domain.ClaimedReward
	if err := row.Scan(
		&claim.ID,
		&claim.UserID,
		&claim.RewardID,
		&claim.Code,
		&claim.ClaimedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}
	return &claim, nil
}
