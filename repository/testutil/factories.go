package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"gamblebot/models"
)

// CreateTestLedgerEntry returns an entry with a 1000 balance
func CreateTestLedgerEntry(userID int64) *models.LedgerEntry {
	return CreateTestLedgerEntryWithBalance(userID, decimal.NewFromInt(1000))
}

func CreateTestLedgerEntryWithBalance(userID int64, balance decimal.Decimal) *models.LedgerEntry {
	entry := models.NewLedgerEntry(userID, balance)
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return entry
}

// CreateTestBet returns a bet record; a zero payout is a loss
func CreateTestBet(userID int64, game string, amount, payout int64) *models.BetRecord {
	return &models.BetRecord{
		UserID:     userID,
		Amount:     decimal.NewFromInt(amount),
		Multiplier: 2,
		Payout:     decimal.NewFromInt(payout),
		Game:       game,
	}
}
