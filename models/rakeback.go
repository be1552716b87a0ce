package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rakeback is the claimable rebate accrued from winning bets
type Rakeback struct {
	UserID      int64           `db:"user_id"`
	Amount      decimal.Decimal `db:"amount"`
	LastClaimed *time.Time      `db:"last_claimed"`
}
