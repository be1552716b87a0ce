package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"gamblebot/database"
	"gamblebot/models"
)

const ledgerColumns = `user_id, balance, wagered, net_profit, experience, last_daily, last_worked, created_at, updated_at`

// LedgerRepository implements service.LedgerRepository
type LedgerRepository struct {
	q               queryable
	startingBalance decimal.Decimal
}

// NewLedgerRepository creates a ledger repository on the pool
func NewLedgerRepository(db *database.DB, startingBalance decimal.Decimal) *LedgerRepository {
	return &LedgerRepository{q: db.Pool, startingBalance: startingBalance}
}

func newLedgerRepositoryWithTx(tx queryable, startingBalance decimal.Decimal) *LedgerRepository {
	return &LedgerRepository{q: tx, startingBalance: startingBalance}
}

func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := row.Scan(
		&entry.UserID,
		&entry.Balance,
		&entry.Wagered,
		&entry.NetProfit,
		&entry.Experience,
		&entry.LastDaily,
		&entry.LastWorked,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Fetch returns the user's entry, or the starting entry if none is stored
func (r *LedgerRepository) Fetch(ctx context.Context, userID int64) (*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM economy.users WHERE user_id = $1`

	entry, err := scanLedgerEntry(r.q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewLedgerEntry(userID, r.startingBalance), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entry for user %d: %w", userID, err)
	}
	return entry, nil
}

// Save upserts every column of entry
func (r *LedgerRepository) Save(ctx context.Context, entry *models.LedgerEntry) error {
	query := `
		INSERT INTO economy.users (user_id, balance, wagered, net_profit, experience, last_daily, last_worked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = EXCLUDED.balance,
			wagered = EXCLUDED.wagered,
			net_profit = EXCLUDED.net_profit,
			experience = EXCLUDED.experience,
			last_daily = EXCLUDED.last_daily,
			last_worked = EXCLUDED.last_worked,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.Balance,
		entry.Wagered,
		entry.NetProfit,
		entry.Experience,
		entry.LastDaily,
		entry.LastWorked,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save ledger entry for user %d: %w", entry.UserID, err)
	}
	return nil
}

// Top returns up to limit entries with a positive balance, richest first
func (r *LedgerRepository) Top(ctx context.Context, limit int) ([]*models.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM economy.users
		WHERE balance > 0
		ORDER BY balance DESC, user_id
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top balances: %w", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top balances: %w", err)
	}
	return entries, nil
}

// TotalWagered sums the lifetime wagered amount of every user
func (r *LedgerRepository) TotalWagered(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(wagered), 0) FROM economy.users`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum wagered: %w", err)
	}
	return total, nil
}
