package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"gamblebot/config"
	"gamblebot/games"
	"gamblebot/models"
)

const recentBetsShown = 5

var ErrSelfTip = errors.New("you can't tip yourself")

// reward bounds, inclusive
const (
	dailyMin = 100
	dailyMax = 300
	workMin  = 60
	workMax  = 200
)

type economyService struct {
	uowFactory UnitOfWorkFactory
	rng        games.RNG
	now        func() time.Time
}

// NewEconomyService creates the service behind balance, daily, work, tip and leaderboard
func NewEconomyService(uowFactory UnitOfWorkFactory) EconomyService {
	return &economyService{
		uowFactory: uowFactory,
		rng:        games.DefaultRNG,
		now:        time.Now,
	}
}

func (s *economyService) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entry, err := uow.LedgerRepository().Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	recent, err := uow.BetRepository().QueryRecent(ctx, userID, "", recentBetsShown)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bets: %w", err)
	}

	count, err := uow.BetRepository().CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bets: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Profile{Entry: entry, RecentBets: recent, TotalBets: count}, nil
}

func (s *economyService) Daily(ctx context.Context, userID int64) (*models.RewardResult, error) {
	return s.reward(ctx, userID, rewardKind{
		name:     "daily",
		min:      dailyMin,
		max:      dailyMax,
		cooldown: config.Get().DailyCooldown,
		err:      ErrDailyCooldown,
		stamp:    func(e *models.LedgerEntry) **time.Time { return &e.LastDaily },
	})
}

func (s *economyService) Work(ctx context.Context, userID int64) (*models.RewardResult, error) {
	return s.reward(ctx, userID, rewardKind{
		name:     "work",
		min:      workMin,
		max:      workMax,
		cooldown: config.Get().WorkCooldown,
		err:      ErrWorkCooldown,
		stamp:    func(e *models.LedgerEntry) **time.Time { return &e.LastWorked },
	})
}

type rewardKind struct {
	name     string
	min, max int
	cooldown time.Duration
	err      error
	stamp    func(e *models.LedgerEntry) **time.Time
}

// reward pays a random whole amount in [min, max] once per cooldown
func (s *economyService) reward(ctx context.Context, userID int64, kind rewardKind) (*models.RewardResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entry, err := uow.LedgerRepository().Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	now := s.now()
	last := kind.stamp(entry)
	if err := checkCooldown(*last, kind.cooldown, now, kind.err); err != nil {
		return nil, err
	}

	amount := decimal.NewFromInt(int64(kind.min + s.rng.IntN(kind.max-kind.min+1)))
	oldBalance := entry.Balance
	entry.Balance = entry.Balance.Add(amount)
	*last = &now

	if err := saveLedger(ctx, uow, entry, oldBalance, kind.name); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.RewardResult{
		Amount:        amount,
		NewBalance:    entry.Balance,
		NextAvailable: now.Add(kind.cooldown),
	}, nil
}

func (s *economyService) Tip(ctx context.Context, fromID, toID int64, amountText string) (*models.TipResult, error) {
	if fromID == toID {
		return nil, ErrSelfTip
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sender, err := uow.LedgerRepository().Fetch(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender ledger: %w", err)
	}

	amount, err := ParseAmount(amountText, sender.Balance)
	if err != nil {
		return nil, err
	}

	recipient, err := uow.LedgerRepository().Fetch(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient ledger: %w", err)
	}

	senderOld, recipientOld := sender.Balance, recipient.Balance
	sender.Balance = sender.Balance.Sub(amount)
	recipient.Balance = recipient.Balance.Add(amount)

	if err := saveLedger(ctx, uow, sender, senderOld, "tip"); err != nil {
		return nil, err
	}
	if err := saveLedger(ctx, uow, recipient, recipientOld, "tip"); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"from":   fromID,
		"to":     toID,
		"amount": amount.String(),
	}).Info("Tip sent")

	return &models.TipResult{
		Amount:           amount,
		SenderBalance:    sender.Balance,
		RecipientBalance: recipient.Balance,
	}, nil
}

func (s *economyService) Leaderboard(ctx context.Context, limit int) (*models.Leaderboard, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.LedgerRepository().Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	total, err := uow.LedgerRepository().TotalWagered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total wagered: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Leaderboard{Entries: entries, TotalWagered: total}, nil
}
