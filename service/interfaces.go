package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gamblebot/events"
	"gamblebot/games"
	"gamblebot/models"
)

// LedgerRepository persists user wallets
type LedgerRepository interface {
	// Fetch returns the stored entry or a fresh default entry for an unseen user
	Fetch(ctx context.Context, userID int64) (*models.LedgerEntry, error)

	// Save upserts the full entry
	Save(ctx context.Context, entry *models.LedgerEntry) error

	// Top returns the richest entries with a positive balance
	Top(ctx context.Context, limit int) ([]*models.LedgerEntry, error)

	// TotalWagered sums wagered across every entry
	TotalWagered(ctx context.Context) (decimal.Decimal, error)
}

// BetRepository stores the append-only bet history
type BetRepository interface {
	// Append inserts record and fills in its ID and CreatedAt
	Append(ctx context.Context, record *models.BetRecord) error

	// QueryRecent returns a user's bets newest first. An empty game matches all games.
	QueryRecent(ctx context.Context, userID int64, game string, limit int) ([]*models.BetRecord, error)

	// CountByUser returns how many bets a user has placed
	CountByUser(ctx context.Context, userID int64) (int, error)
}

// RakebackRepository stores rakeback accumulators
type RakebackRepository interface {
	// Fetch returns nil when the user has never accrued rakeback
	Fetch(ctx context.Context, userID int64) (*models.Rakeback, error)

	// UpsertAdd creates the accumulator or adds amount to it
	UpsertAdd(ctx context.Context, userID int64, amount decimal.Decimal) error

	// ResetAndStamp zeroes the accumulator and records the claim time
	ResetAndStamp(ctx context.Context, userID int64, at time.Time) error
}

// EventPublisher queues events until the unit of work commits
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork scopes repositories to a single transaction
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	LedgerRepository() LedgerRepository
	BetRepository() BetRepository
	RakebackRepository() RakebackRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// EconomyService covers everything that moves money outside of games
type EconomyService interface {
	// Profile returns the ledger entry, the most recent bets and the bet count
	Profile(ctx context.Context, userID int64) (*models.Profile, error)

	// Daily pays the daily reward once per cooldown
	Daily(ctx context.Context, userID int64) (*models.RewardResult, error)

	// Work pays the work reward once per cooldown
	Work(ctx context.Context, userID int64) (*models.RewardResult, error)

	// Tip moves an amount parsed against the sender's balance to the recipient
	Tip(ctx context.Context, fromID, toID int64, amountText string) (*models.TipResult, error)

	// Leaderboard returns the richest users and the total wagered
	Leaderboard(ctx context.Context, limit int) (*models.Leaderboard, error)
}

// GamblingService resolves the single-shot games
type GamblingService interface {
	PlayDice(ctx context.Context, userID int64, amountText string, chance float64) (*models.DiceResult, error)
	PlayCoinflip(ctx context.Context, userID int64, amountText string, side games.Side) (*models.CoinflipResult, error)
	PlayRoulette(ctx context.Context, userID int64, amountText string, color games.Color) (*models.RouletteResult, error)
	PlaySlots(ctx context.Context, userID int64, amountText string) (*models.SlotsResult, error)
	PlayLimbo(ctx context.Context, userID int64, amountText string, target float64) (*models.LimboResult, error)
}

// BlackjackService runs interactive blackjack hands
type BlackjackService interface {
	// Start debits the stake and deals. Naturals come back already resolved.
	Start(ctx context.Context, userID int64, amountText string) (*BlackjackSession, error)

	// Apply performs an action on an open hand owned by userID
	Apply(ctx context.Context, sessionID string, userID int64, action games.Action) (*BlackjackSession, error)
}

// RoadService runs interactive crossings
type RoadService interface {
	Start(ctx context.Context, userID int64, amountText string, difficulty games.Difficulty) (*RoadSession, error)
	Cross(ctx context.Context, sessionID string, userID int64) (*RoadSession, error)
	CashOut(ctx context.Context, sessionID string, userID int64) (*RoadSession, error)
}

// RakebackService claims accrued rakeback
type RakebackService interface {
	// Pending returns the claimable amount
	Pending(ctx context.Context, userID int64) (decimal.Decimal, error)

	Claim(ctx context.Context, userID int64) (*models.RakebackClaimResult, error)
}

// RainService splits an amount among the users who react in time
type RainService interface {
	// Start debits the host up front and returns the rain amount
	Start(ctx context.Context, hostID int64, amountText string) (decimal.Decimal, error)

	// Distribute credits an even share to each participant except the host
	Distribute(ctx context.Context, hostID, channelID int64, amount decimal.Decimal, participants []int64) (*models.RainResult, error)
}
