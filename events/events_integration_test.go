package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionalBus_FlushDelivers(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	received := make(chan BetPlacedEvent, 1)
	bus.Subscribe(EventTypeBetPlaced, func(ctx context.Context, event Event) {
		if bet, ok := event.(BetPlacedEvent); ok {
			received <- bet
		}
	})

	published := BetPlacedEvent{
		UserID:     42,
		BetID:      7,
		Game:       "Dice",
		Amount:     decimal.NewFromInt(100),
		Multiplier: 2.0204,
		Payout:     decimal.RequireFromString("202.04"),
	}
	txBus.Publish(published)
	require.Len(t, txBus.Pending(), 1)

	require.NoError(t, txBus.Flush(context.Background()))
	assert.Empty(t, txBus.Pending())

	select {
	case got := <-received:
		assert.Equal(t, published.UserID, got.UserID)
		assert.Equal(t, published.Game, got.Game)
		assert.True(t, published.Payout.Equal(got.Payout))
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestTransactionalBus_DiscardDropsEvents(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	delivered := make(chan struct{}, 1)
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		delivered <- struct{}{}
	})

	txBus.Publish(BalanceChangeEvent{UserID: 1, OldBalance: decimal.NewFromInt(50), NewBalance: decimal.NewFromInt(40)})
	txBus.Discard()
	require.NoError(t, txBus.Flush(context.Background()))

	select {
	case <-delivered:
		t.Fatal("discarded event was delivered")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_MultipleHandlersAndTypes(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(3)

	var mu sync.Mutex
	var balanceCalls, rainCalls int
	for range 2 {
		bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
			defer wg.Done()
			mu.Lock()
			balanceCalls++
			mu.Unlock()
		})
	}
	bus.Subscribe(EventTypeRainDistributed, func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		rainCalls++
		mu.Unlock()
	})

	bus.Emit(context.Background(), BalanceChangeEvent{UserID: 1})
	bus.Emit(context.Background(), RainDistributedEvent{HostID: 1, Participants: []int64{2, 3}})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not run")
	}

	assert.Equal(t, 2, balanceCalls)
	assert.Equal(t, 1, rainCalls)
}

func TestBus_HandlerPanicIsRecovered(t *testing.T) {
	bus := NewBus()

	done := make(chan struct{})
	bus.Subscribe(EventTypeRakebackClaimed, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeRakebackClaimed, func(ctx context.Context, event Event) {
		close(done)
	})

	bus.Emit(context.Background(), RakebackClaimedEvent{UserID: 1, Amount: decimal.NewFromInt(3)})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler did not run")
	}
}

func TestBalanceChangeEvent_Delta(t *testing.T) {
	e := BalanceChangeEvent{OldBalance: decimal.NewFromInt(50), NewBalance: decimal.RequireFromString("42.5")}
	assert.Equal(t, "-7.5", e.Delta().String())
}
