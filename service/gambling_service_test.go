package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamblebot/events"
	"gamblebot/games"
	"gamblebot/models"
)

func newTestGamblingService(h *testUoW, rng games.RNG) *gamblingService {
	s := NewGamblingService(h.factory).(*gamblingService)
	s.rng = rng
	return s
}

func TestGamblingService_PlayDice_Win(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := newTestGamblingService(h, &fixedRNG{ints: []int{10}}) // roll 11

	h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "100"), nil)
	h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.Balance.Equal(dec("151.02")) && e.Wagered.Equal(dec("50")) && e.NetProfit.Equal(dec("51.02"))
	})).Return(nil)
	h.bets.On("Append", ctx, mock.MatchedBy(func(b *models.BetRecord) bool {
		return b.Game == models.GameDice && b.Amount.Equal(dec("50")) && b.Payout.Equal(dec("51.02")) && b.Multiplier == 2.0204
	})).Return(nil)
	h.rakeback.On("UpsertAdd", ctx, int64(1), decEq("0.15")).Return(nil)
	h.bets.On("QueryRecent", ctx, int64(1), models.GameDice, streakWindow).Return([]*models.BetRecord{
		{Game: models.GameDice, Payout: dec("51.02")},
	}, nil)

	result, err := service.PlayDice(ctx, 1, "50", 49)
	require.NoError(t, err)

	assert.Equal(t, 11, result.Roll)
	assert.True(t, result.Won)
	assert.Equal(t, "51.02", result.Payout.String())
	assert.Equal(t, "151.02", result.NewBalance.String())
	assert.Zero(t, result.LossStreak)

	h.uow.AssertCalled(t, "Commit")
	h.bus.AssertCalled(t, "Publish", publishedBalanceChange(1, "151.02"))
	h.bus.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.Event) bool {
		bet, ok := e.(events.BetPlacedEvent)
		return ok && bet.Game == models.GameDice
	}))
	h.assertExpectations(t)
}

func TestGamblingService_PlayDice_FractionalChance(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := newTestGamblingService(h, &fixedRNG{ints: []int{32}}) // roll 33

	h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "100"), nil)
	h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.Balance.Equal(dec("198.65"))
	})).Return(nil)
	h.bets.On("Append", ctx, mock.MatchedBy(func(b *models.BetRecord) bool {
		return b.Multiplier == 2.973 && b.Payout.Equal(dec("98.65"))
	})).Return(nil)
	h.rakeback.On("UpsertAdd", ctx, int64(1), decEq("0.15")).Return(nil)
	h.bets.On("QueryRecent", ctx, int64(1), models.GameDice, streakWindow).Return(nil, nil)

	result, err := service.PlayDice(ctx, 1, "50", 33.3)
	require.NoError(t, err)

	assert.True(t, result.Won)
	assert.Equal(t, 33.3, result.Chance)
	h.assertExpectations(t)
}

func TestGamblingService_PlayDice_LossStreak(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := newTestGamblingService(h, &fixedRNG{ints: []int{89}}) // roll 90

	h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "100"), nil)
	h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.Balance.Equal(dec("90")) && e.Wagered.Equal(dec("10"))
	})).Return(nil)
	h.bets.On("Append", ctx, mock.MatchedBy(func(b *models.BetRecord) bool {
		return b.Payout.IsZero()
	})).Return(nil)
	h.bets.On("QueryRecent", ctx, int64(1), models.GameDice, streakWindow).
		Return(append(losses(models.GameDice, 6), &models.BetRecord{Payout: dec("5")}), nil)

	result, err := service.PlayDice(ctx, 1, "10", 50)
	require.NoError(t, err)

	assert.False(t, result.Won)
	assert.Equal(t, "-10", result.Payout.String())
	assert.Equal(t, 6, result.LossStreak)
	h.rakeback.AssertNotCalled(t, "UpsertAdd", mock.Anything, mock.Anything, mock.Anything)
	h.assertExpectations(t)
}

func TestGamblingService_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("stake over balance", func(t *testing.T) {
		h := newTestUoW(ctx)
		service := newTestGamblingService(h, &fixedRNG{})
		h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "100"), nil)

		_, err := service.PlayDice(ctx, 1, "500", 50)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		h.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		h.uow.AssertNotCalled(t, "Commit")
		h.uow.AssertCalled(t, "Rollback")
	})

	t.Run("chance out of range", func(t *testing.T) {
		h := newTestUoW(ctx)
		service := newTestGamblingService(h, &fixedRNG{})
		h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "100"), nil)

		_, err := service.PlayDice(ctx, 1, "10", 99)
		assert.ErrorIs(t, err, games.ErrInvalidChance)
		h.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("broke user", func(t *testing.T) {
		h := newTestUoW(ctx)
		service := newTestGamblingService(h, &fixedRNG{})
		h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "0"), nil)

		_, err := service.PlaySlots(ctx, 1, "all")
		assert.ErrorIs(t, err, ErrNoFunds)
	})
}

func TestGamblingService_PlayCoinflip_AccruesRakeback(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := newTestGamblingService(h, &fixedRNG{ints: []int{0}}) // heads

	h.ledger.On("Fetch", ctx, int64(2)).Return(entryWithBalance(2, "100"), nil)
	h.ledger.On("Save", ctx, mock.Anything).Return(nil)
	h.bets.On("Append", ctx, mock.MatchedBy(func(b *models.BetRecord) bool {
		return b.Game == models.GameCoinflip && b.Multiplier == 2 && b.Payout.Equal(dec("100"))
	})).Return(nil)
	h.rakeback.On("UpsertAdd", ctx, int64(2), decEq("0.3")).Return(nil)

	result, err := service.PlayCoinflip(ctx, 2, "all", games.Heads)
	require.NoError(t, err)

	assert.True(t, result.Won)
	assert.Equal(t, "200", result.NewBalance.String())
	h.assertExpectations(t)
}

func TestGamblingService_PlayRoulette_Green(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := newTestGamblingService(h, &fixedRNG{ints: []int{0}})

	h.ledger.On("Fetch", ctx, int64(3)).Return(entryWithBalance(3, "100"), nil)
	h.ledger.On("Save", ctx, mock.Anything).Return(nil)
	h.bets.On("Append", ctx, mock.MatchedBy(func(b *models.BetRecord) bool {
		return b.Multiplier == 35 && b.Payout.Equal(dec("350"))
	})).Return(nil)
	h.rakeback.On("UpsertAdd", ctx, int64(3), decEq("0.03")).Return(nil)

	result, err := service.PlayRoulette(ctx, 3, "10", games.Green)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Landing)
	assert.Equal(t, "450", result.NewBalance.String())
	h.assertExpectations(t)
}

func TestGamblingService_PlaySlots_Loss(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := newTestGamblingService(h, &fixedRNG{ints: []int{0, 1, 2, 3}})

	h.ledger.On("Fetch", ctx, int64(4)).Return(entryWithBalance(4, "100"), nil)
	h.ledger.On("Save", ctx, mock.Anything).Return(nil)
	h.bets.On("Append", ctx, mock.MatchedBy(func(b *models.BetRecord) bool {
		return b.Game == models.GameSlots && b.Multiplier == 0 && b.Payout.IsZero()
	})).Return(nil)

	result, err := service.PlaySlots(ctx, 4, "half")
	require.NoError(t, err)

	assert.Equal(t, games.SlotsLoss, result.Multiplier)
	assert.Equal(t, "50", result.NewBalance.String())
	h.assertExpectations(t)
}

func TestGamblingService_PlayLimbo(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := newTestGamblingService(h, &fixedRNG{floats: []float64{0.1}}) // 9.0x

	h.ledger.On("Fetch", ctx, int64(5)).Return(entryWithBalance(5, "100"), nil)
	h.ledger.On("Save", ctx, mock.Anything).Return(nil)
	h.bets.On("Append", ctx, mock.MatchedBy(func(b *models.BetRecord) bool {
		return b.Multiplier == 5 && b.Payout.Equal(dec("40"))
	})).Return(nil)
	h.rakeback.On("UpsertAdd", ctx, int64(5), decEq("0.03")).Return(nil)

	result, err := service.PlayLimbo(ctx, 5, "10", 5)
	require.NoError(t, err)

	assert.Equal(t, 9.0, result.Result)
	assert.Equal(t, "140", result.NewBalance.String())
	h.assertExpectations(t)
}
