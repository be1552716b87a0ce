package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamblebot/events"
	"gamblebot/models"
)

func TestRainService_Start(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := NewRainService(h.factory)

	h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "500"), nil)
	h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.Balance.Equal(dec("250"))
	})).Return(nil)

	amount, err := service.Start(ctx, 1, "half")
	require.NoError(t, err)

	assert.Equal(t, "250", amount.String())
	h.assertExpectations(t)
}

func TestRainService_StartInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := NewRainService(h.factory)

	h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "50"), nil)

	_, err := service.Start(ctx, 1, "100")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	h.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRainService_Distribute(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := NewRainService(h.factory)

	for _, id := range []int64{2, 3} {
		h.ledger.On("Fetch", ctx, id).Return(entryWithBalance(id, "10"), nil)
	}
	h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.Balance.Equal(dec("35"))
	})).Return(nil).Twice()

	// Duplicates and the host are dropped
	result, err := service.Distribute(ctx, 1, 99, dec("50"), []int64{2, 1, 3, 2})
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3}, result.Participants)
	assert.Equal(t, "25", result.Share.String())
	h.bus.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.Event) bool {
		rain, ok := e.(events.RainDistributedEvent)
		return ok && rain.ChannelID == 99 && len(rain.Participants) == 2
	}))
	h.assertExpectations(t)
}

func TestRainService_DistributeRoundsDown(t *testing.T) {
	ctx := context.Background()
	h := newTestUoW(ctx)
	service := NewRainService(h.factory)

	for _, id := range []int64{2, 3, 4} {
		h.ledger.On("Fetch", ctx, id).Return(entryWithBalance(id, "0"), nil)
	}
	h.ledger.On("Fetch", ctx, int64(1)).Return(entryWithBalance(1, "90"), nil)
	h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID != 1 && e.Balance.Equal(dec("3.3333"))
	})).Return(nil).Times(3)
	// 10 - 3*3.3333 goes back to the host
	h.ledger.On("Save", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == 1 && e.Balance.Equal(dec("90.0001"))
	})).Return(nil).Once()

	result, err := service.Distribute(ctx, 1, 99, dec("10"), []int64{2, 3, 4})
	require.NoError(t, err)

	assert.Equal(t, "3.3333", result.Share.String())
	assert.Equal(t, "0.0001", result.Remainder.String())
	h.assertExpectations(t)
}

func TestRainService_DistributeWithoutParticipants(t *testing.T) {
	ctx := context.Background()
	service := NewRainService(new(MockUnitOfWorkFactory))

	result, err := service.Distribute(ctx, 1, 99, dec("50"), []int64{1})
	require.NoError(t, err)

	assert.Empty(t, result.Participants)
	assert.True(t, result.Share.IsZero())
}
