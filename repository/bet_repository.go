package repository

import (
	"context"
	"fmt"

	"gamblebot/database"
	"gamblebot/models"
)

// BetRepository implements service.BetRepository
type BetRepository struct {
	q queryable
}

func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

func newBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

// Append inserts a bet record
func (r *BetRepository) Append(ctx context.Context, record *models.BetRecord) error {
	query := `
		INSERT INTO economy.bets (user_id, amount, multiplier, payout, game)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		record.UserID,
		record.Amount,
		record.Multiplier,
		record.Payout,
		record.Game,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append bet for user %d: %w", record.UserID, err)
	}
	return nil
}

// QueryRecent returns up to limit bets newest first, optionally for a single game
func (r *BetRepository) QueryRecent(ctx context.Context, userID int64, game string, limit int) ([]*models.BetRecord, error) {
	query := `
		SELECT id, user_id, amount, multiplier, payout, game, created_at
		FROM economy.bets
		WHERE user_id = $1 AND ($2::text = '' OR game = $2::text)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, userID, game, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent bets: %w", err)
	}
	defer rows.Close()

	var records []*models.BetRecord
	for rows.Next() {
		var record models.BetRecord
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Amount,
			&record.Multiplier,
			&record.Payout,
			&record.Game,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bets: %w", err)
	}
	return records, nil
}

// CountByUser counts every bet a user has placed
func (r *BetRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM economy.bets WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bets for user %d: %w", userID, err)
	}
	return count, nil
}
