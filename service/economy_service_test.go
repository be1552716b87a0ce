package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamblebot/models"
)

func newTestEconomyService(h *testUoW, rng *fixedRNG, clock *fakeClock) *economyService {
	s := NewEconomyService(h.factory).(*economyService)
	s.rng = rng
	s.now = clock.Now
	return s
}

func TestEconomyService_Daily(t *testing.T) {
	ctx := context.Background()

	t.Run("first claim", func(t *testing.T) {
		h := newTestUoW(ctx)
		clock := newFakeClock()
		service := newTestEconomyService(h, &fixedRNG{ints: []int{50}}, clock)

		h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "50"), nil)
		h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
			return e.Balance.Equal(dec("200")) && e.LastDaily != nil && e.LastDaily.Equal(clock.now)
		})).Return(nil)

		result, err := service.Daily(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, "150", result.Amount.String())
		assert.Equal(t, "200", result.NewBalance.String())
		assert.Equal(t, clock.now.Add(24*time.Hour), result.NextAvailable)
		h.assertExpectations(t)
	})

	t.Run("inside cooldown", func(t *testing.T) {
		h := newTestUoW(ctx)
		clock := newFakeClock()
		service := newTestEconomyService(h, &fixedRNG{}, clock)

		last := clock.now.Add(-time.Hour)
		entry := entryWithBalance(1, "50")
		entry.LastDaily = &last
		h.ledger.On("Fetch", ctx, int64(1)).Return(entry, nil)

		_, err := service.Daily(ctx, 1)
		require.ErrorIs(t, err, ErrDailyCooldown)

		var cooldown *CooldownError
		require.True(t, errors.As(err, &cooldown))
		assert.Equal(t, last.Add(24*time.Hour), cooldown.NextAvailable)
		h.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("after cooldown", func(t *testing.T) {
		h := newTestUoW(ctx)
		clock := newFakeClock()
		service := newTestEconomyService(h, &fixedRNG{ints: []int{0}}, clock)

		last := clock.now.Add(-25 * time.Hour)
		entry := entryWithBalance(1, "0")
		entry.LastDaily = &last
		h.ledger.On("Fetch", ctx, int64(1)).Return(entry, nil)
		h.ledger.On("Save", ctx, mock.Anything).Return(nil)

		result, err := service.Daily(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "100", result.Amount.String())
	})
}

func TestEconomyService_Work(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	clock := newFakeClock()
	service := newTestEconomyService(h, &fixedRNG{ints: []int{140}}, clock)

	entry := entryWithBalance(1, "10")
	h.ledger.On("Fetch", ctx, int64(1)).Return(entry, nil)
	h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.LastWorked != nil && e.LastDaily == nil
	})).Return(nil)

	result, err := service.Work(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "200", result.Amount.String())
	assert.Equal(t, clock.now.Add(time.Hour), result.NextAvailable)

	// Second shift within the hour is refused
	clock.Advance(30 * time.Minute)
	_, err = service.Work(ctx, 1)
	assert.ErrorIs(t, err, ErrWorkCooldown)
}

func TestEconomyService_Tip(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the amount", func(t *testing.T) {
		h := newTestUoW(ctx)
		service := newTestEconomyService(h, &fixedRNG{}, newFakeClock())

		h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "100"), nil)
		h.ledger.On("Fetch", ctx, int64(2)).Return(entryWithBalance(2, "50"), nil)
		h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
			return e.UserID == 1 && e.Balance.Equal(dec("50"))
		})).Return(nil)
		h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
			return e.UserID == 2 && e.Balance.Equal(dec("100"))
		})).Return(nil)

		result, err := service.Tip(ctx, 1, 2, "half")
		require.NoError(t, err)

		assert.Equal(t, "50", result.Amount.String())
		assert.Equal(t, "50", result.SenderBalance.String())
		assert.Equal(t, "100", result.RecipientBalance.String())
		h.bus.AssertCalled(t, "Publish", publishedBalanceChange(2, "100"))
		h.assertExpectations(t)
	})

	t.Run("self tip", func(t *testing.T) {
		h := newTestUoW(ctx)
		service := newTestEconomyService(h, &fixedRNG{}, newFakeClock())

		_, err := service.Tip(ctx, 1, 1, "10")
		assert.ErrorIs(t, err, ErrSelfTip)
		h.factory.AssertNotCalled(t, "Create")
	})

	t.Run("more than balance", func(t *testing.T) {
		h := newTestUoW(ctx)
		service := newTestEconomyService(h, &fixedRNG{}, newFakeClock())
		h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "5"), nil)

		_, err := service.Tip(ctx, 1, 2, "10")
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		h.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestEconomyService_Profile(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := newTestEconomyService(h, &fixedRNG{}, newFakeClock())

	entry := entryWithBalance(1, "75")
	recent := losses(models.GameDice, 5)
	h.ledger.On("Fetch", ctx, int64(1)).Return(entry, nil)
	h.bets.On("QueryRecent", ctx, int64(1), "", recentBetsShown).Return(recent, nil)
	h.bets.On("CountByUser", ctx, int64(1)).Return(12, nil)

	profile, err := service.Profile(ctx, 1)
	require.NoError(t, err)

	assert.Same(t, entry, profile.Entry)
	assert.Len(t, profile.RecentBets, 5)
	assert.Equal(t, 12, profile.TotalBets)
	h.assertExpectations(t)
}

func TestEconomyService_Leaderboard(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := newTestEconomyService(h, &fixedRNG{}, newFakeClock())

	top := []*models.LedgerEntry{entryWithBalance(3, "900"), entryWithBalance(1, "300")}
	h.ledger.On("Top", ctx, 10).Return(top, nil)
	h.ledger.On("TotalWagered", ctx).Return(decimal.NewFromInt(12345), nil)

	board, err := service.Leaderboard(ctx, 10)
	require.NoError(t, err)

	assert.Len(t, board.Entries, 2)
	assert.Equal(t, "12345", board.TotalWagered.String())
	h.assertExpectations(t)
}
