package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"gamblebot/games"
	"gamblebot/models"
)

type gamblingService struct {
	uowFactory UnitOfWorkFactory
	rng        games.RNG
}

// NewGamblingService creates a new gambling service
func NewGamblingService(uowFactory UnitOfWorkFactory) GamblingService {
	return &gamblingService{
		uowFactory: uowFactory,
		rng:        games.DefaultRNG,
	}
}

// wager describes one single-shot game round
type wager struct {
	game string

	// resolve runs the engine for a validated stake
	resolve func(stake decimal.Decimal) (payout decimal.Decimal, multiplier float64, err error)

	// afterRecord runs inside the transaction once the bet is stored
	afterRecord func(ctx context.Context, uow UnitOfWork) error
}

// play parses the stake, resolves the round and books it in one transaction
func (s *gamblingService) play(ctx context.Context, userID int64, amountText string, w wager) (models.WagerResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return models.WagerResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entry, err := uow.LedgerRepository().Fetch(ctx, userID)
	if err != nil {
		return models.WagerResult{}, fmt.Errorf("failed to get ledger: %w", err)
	}

	stake, err := ParseAmount(amountText, entry.Balance)
	if err != nil {
		return models.WagerResult{}, err
	}

	payout, multiplier, err := w.resolve(stake)
	if err != nil {
		return models.WagerResult{}, err
	}

	oldBalance := entry.Balance
	entry.ApplyWager(stake, payout)
	if err := saveLedger(ctx, uow, entry, oldBalance, w.game); err != nil {
		return models.WagerResult{}, err
	}

	record := &models.BetRecord{
		UserID:     userID,
		Amount:     stake,
		Multiplier: multiplier,
		Payout:     payout,
		Game:       w.game,
	}
	if err := recordBet(ctx, uow, record); err != nil {
		return models.WagerResult{}, err
	}

	if w.afterRecord != nil {
		if err := w.afterRecord(ctx, uow); err != nil {
			return models.WagerResult{}, err
		}
	}

	if err := uow.Commit(); err != nil {
		return models.WagerResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID": userID,
		"game":   w.game,
		"stake":  stake.String(),
		"payout": payout.String(),
	}).Debug("Wager resolved")

	return models.WagerResult{Stake: stake, NewBalance: entry.Balance}, nil
}

func (s *gamblingService) PlayDice(ctx context.Context, userID int64, amountText string, chance float64) (*models.DiceResult, error) {
	result := &models.DiceResult{}

	wr, err := s.play(ctx, userID, amountText, wager{
		game: models.GameDice,
		resolve: func(stake decimal.Decimal) (decimal.Decimal, float64, error) {
			outcome, err := games.Dice(s.rng, stake, chance)
			if err != nil {
				return decimal.Zero, 0, err
			}
			result.DiceOutcome = outcome
			return outcome.Payout, outcome.Multiplier, nil
		},
		afterRecord: func(ctx context.Context, uow UnitOfWork) error {
			recent, err := uow.BetRepository().QueryRecent(ctx, userID, models.GameDice, streakWindow)
			if err != nil {
				return fmt.Errorf("failed to get recent dice bets: %w", err)
			}
			result.LossStreak = lossStreak(recent)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	result.WagerResult = wr
	return result, nil
}

func (s *gamblingService) PlayCoinflip(ctx context.Context, userID int64, amountText string, side games.Side) (*models.CoinflipResult, error) {
	result := &models.CoinflipResult{}

	wr, err := s.play(ctx, userID, amountText, wager{
		game: models.GameCoinflip,
		resolve: func(stake decimal.Decimal) (decimal.Decimal, float64, error) {
			outcome, err := games.Coinflip(s.rng, stake, side)
			if err != nil {
				return decimal.Zero, 0, err
			}
			result.CoinflipOutcome = outcome
			return outcome.Payout, 2, nil
		},
	})
	if err != nil {
		return nil, err
	}

	result.WagerResult = wr
	return result, nil
}

func (s *gamblingService) PlayRoulette(ctx context.Context, userID int64, amountText string, color games.Color) (*models.RouletteResult, error) {
	result := &models.RouletteResult{}

	wr, err := s.play(ctx, userID, amountText, wager{
		game: models.GameRoulette,
		resolve: func(stake decimal.Decimal) (decimal.Decimal, float64, error) {
			outcome, err := games.Roulette(s.rng, stake, color)
			if err != nil {
				return decimal.Zero, 0, err
			}
			result.RouletteOutcome = outcome
			return outcome.Payout, float64(games.RouletteMultiplier(color)), nil
		},
	})
	if err != nil {
		return nil, err
	}

	result.WagerResult = wr
	return result, nil
}

func (s *gamblingService) PlaySlots(ctx context.Context, userID int64, amountText string) (*models.SlotsResult, error) {
	result := &models.SlotsResult{}

	wr, err := s.play(ctx, userID, amountText, wager{
		game: models.GameSlots,
		resolve: func(stake decimal.Decimal) (decimal.Decimal, float64, error) {
			outcome := games.Slots(s.rng, stake)
			result.SlotsOutcome = outcome
			return outcome.Payout, float64(max(outcome.Multiplier, 0)), nil
		},
	})
	if err != nil {
		return nil, err
	}

	result.WagerResult = wr
	return result, nil
}

func (s *gamblingService) PlayLimbo(ctx context.Context, userID int64, amountText string, target float64) (*models.LimboResult, error) {
	result := &models.LimboResult{}

	wr, err := s.play(ctx, userID, amountText, wager{
		game: models.GameLimbo,
		resolve: func(stake decimal.Decimal) (decimal.Decimal, float64, error) {
			outcome, err := games.Limbo(s.rng, stake, target)
			if err != nil {
				return decimal.Zero, 0, err
			}
			result.LimboOutcome = outcome
			return outcome.Payout, target, nil
		},
	})
	if err != nil {
		return nil, err
	}

	result.WagerResult = wr
	return result, nil
}
