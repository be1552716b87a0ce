package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a user's wallet. Rows are created on first save and never deleted.
type LedgerEntry struct {
	UserID     int64           `db:"user_id"`
	Balance    decimal.Decimal `db:"balance"`
	Wagered    decimal.Decimal `db:"wagered"`    // Lifetime stake, never decreases
	NetProfit  decimal.Decimal `db:"net_profit"` // Sum of signed payouts
	Experience int             `db:"experience"`
	LastDaily  *time.Time      `db:"last_daily"`
	LastWorked *time.Time      `db:"last_worked"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// NewLedgerEntry returns the entry an unseen user starts with
func NewLedgerEntry(userID int64, startingBalance decimal.Decimal) *LedgerEntry {
	return &LedgerEntry{
		UserID:    userID,
		Balance:   startingBalance,
		Wagered:   decimal.Zero,
		NetProfit: decimal.Zero,
	}
}

// ApplyWager books a resolved wager: the stake counts towards wagered and
// the signed payout moves the balance.
func (e *LedgerEntry) ApplyWager(stake, payout decimal.Decimal) {
	e.Wagered = e.Wagered.Add(stake)
	e.Balance = e.Balance.Add(payout)
	e.NetProfit = e.NetProfit.Add(payout)
}
