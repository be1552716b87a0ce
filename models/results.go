package models

import (
	"time"

	"github.com/shopspring/decimal"

	"gamblebot/games"
)

// WagerResult is the ledger side of a resolved wager. The embedded engine
// outcome carries the signed payout.
type WagerResult struct {
	Stake      decimal.Decimal
	NewBalance decimal.Decimal
}

type DiceResult struct {
	WagerResult
	games.DiceOutcome
	LossStreak int // Consecutive dice losses including this one
}

type CoinflipResult struct {
	WagerResult
	games.CoinflipOutcome
}

type RouletteResult struct {
	WagerResult
	games.RouletteOutcome
}

type SlotsResult struct {
	WagerResult
	games.SlotsOutcome
}

type LimboResult struct {
	WagerResult
	games.LimboOutcome
}

// RewardResult is returned by daily and work
type RewardResult struct {
	Amount        decimal.Decimal
	NewBalance    decimal.Decimal
	NextAvailable time.Time
}

type TipResult struct {
	Amount           decimal.Decimal
	SenderBalance    decimal.Decimal
	RecipientBalance decimal.Decimal
}

type RakebackClaimResult struct {
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}

// RainResult describes an even split among reactors
type RainResult struct {
	HostID       int64
	Amount       decimal.Decimal
	Participants []int64
	Share        decimal.Decimal
	Remainder    decimal.Decimal // rounding leftover returned to the host
}
