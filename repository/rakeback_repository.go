package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"gamblebot/database"
	"gamblebot/models"
)

// RakebackRepository implements service.RakebackRepository
type RakebackRepository struct {
	q queryable
}

func NewRakebackRepository(db *database.DB) *RakebackRepository {
	return &RakebackRepository{q: db.Pool}
}

func newRakebackRepositoryWithTx(tx queryable) *RakebackRepository {
	return &RakebackRepository{q: tx}
}

// Fetch returns nil when no accumulator exists
func (r *RakebackRepository) Fetch(ctx context.Context, userID int64) (*models.Rakeback, error) {
	query := `SELECT user_id, amount, last_claimed FROM economy.rakeback WHERE user_id = $1`

	var rb models.Rakeback
	err := r.q.QueryRow(ctx, query, userID).Scan(&rb.UserID, &rb.Amount, &rb.LastClaimed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rakeback for user %d: %w", userID, err)
	}
	return &rb, nil
}

// UpsertAdd adds amount to the accumulator, creating it when missing
func (r *RakebackRepository) UpsertAdd(ctx context.Context, userID int64, amount decimal.Decimal) error {
	query := `
		INSERT INTO economy.rakeback (user_id, amount)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET amount = economy.rakeback.amount + EXCLUDED.amount
	`
	if _, err := r.q.Exec(ctx, query, userID, amount); err != nil {
		return fmt.Errorf("failed to accrue rakeback for user %d: %w", userID, err)
	}
	return nil
}

// ResetAndStamp zeroes the accumulator and records at as the claim time
func (r *RakebackRepository) ResetAndStamp(ctx context.Context, userID int64, at time.Time) error {
	query := `
		INSERT INTO economy.rakeback (user_id, amount, last_claimed)
		VALUES ($1, 0, $2)
		ON CONFLICT (user_id) DO UPDATE SET amount = 0, last_claimed = EXCLUDED.last_claimed
	`
	if _, err := r.q.Exec(ctx, query, userID, at); err != nil {
		return fmt.Errorf("failed to reset rakeback for user %d: %w", userID, err)
	}
	return nil
}
