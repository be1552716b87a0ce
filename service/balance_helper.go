package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"gamblebot/events"
	"gamblebot/models"
)

const (
	// rakebackRate is the share of a winning stake paid into rakeback (0.15/50)
	rakebackRate = "0.003"

	// streakWindow is how many recent bets a loss streak is counted over
	streakWindow = 20
)

// saveLedger persists entry and announces the balance change once the unit of
// work commits. All ledger writes go through here.
func saveLedger(ctx context.Context, uow UnitOfWork, entry *models.LedgerEntry, oldBalance decimal.Decimal, reason string) error {
	if err := uow.LedgerRepository().Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to save ledger entry: %w", err)
	}

	if !entry.Balance.Equal(oldBalance) {
		uow.EventBus().Publish(events.BalanceChangeEvent{
			UserID:     entry.UserID,
			OldBalance: oldBalance,
			NewBalance: entry.Balance,
			Reason:     reason,
		})
	}
	return nil
}

// recordBet appends a bet record, accrues rakeback on a winning bet and
// publishes the bet. Negative payouts are stored as zero.
func recordBet(ctx context.Context, uow UnitOfWork, record *models.BetRecord) error {
	if record.Payout.IsNegative() {
		record.Payout = decimal.Zero
	}

	if err := uow.BetRepository().Append(ctx, record); err != nil {
		return fmt.Errorf("failed to record bet: %w", err)
	}

	if record.Payout.IsPositive() {
		accrued := record.Amount.Mul(decimal.RequireFromString(rakebackRate))
		if err := uow.RakebackRepository().UpsertAdd(ctx, record.UserID, accrued); err != nil {
			return fmt.Errorf("failed to accrue rakeback: %w", err)
		}
	}

	uow.EventBus().Publish(events.BetPlacedEvent{
		UserID:     record.UserID,
		BetID:      record.ID,
		Game:       record.Game,
		Amount:     record.Amount,
		Multiplier: record.Multiplier,
		Payout:     record.Payout,
	})
	return nil
}

// lossStreak counts the trailing zero-payout bets in recent, newest first
func lossStreak(recent []*models.BetRecord) int {
	streak := 0
	for _, bet := range recent {
		if bet.Won() {
			break
		}
		streak++
	}
	return streak
}
