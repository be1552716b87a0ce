package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game names as stored on bet records
const (
	GameDice        = "Dice"
	GameCoinflip    = "Coinflip"
	GameRoulette    = "Roulette"
	GameSlots       = "Slots"
	GameLimbo       = "Limbo"
	GameBlackjack   = "Blackjack"
	GameUncrossable = "Uncrossable"
)

// BetRecord is an append-only history row for a resolved wager
type BetRecord struct {
	ID         int64           `db:"id"`
	UserID     int64           `db:"user_id"`
	Amount     decimal.Decimal `db:"amount"`
	Multiplier float64         `db:"multiplier"`
	Payout     decimal.Decimal `db:"payout"` // Net winnings, zero on a loss or push
	Game       string          `db:"game"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Won reports whether anything was credited
func (b BetRecord) Won() bool {
	return b.Payout.IsPositive()
}
