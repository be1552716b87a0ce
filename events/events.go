package events

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType names an event for subscription
type EventType string

const (
	EventTypeBalanceChange   EventType = "balance_change"
	EventTypeBetPlaced       EventType = "bet_placed"
	EventTypeRakebackClaimed EventType = "rakeback_claimed"
	EventTypeRainDistributed EventType = "rain_distributed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent is published whenever a ledger entry is saved with a new balance
type BalanceChangeEvent struct {
	UserID     int64
	OldBalance decimal.Decimal
	NewBalance decimal.Decimal
	Reason     string // game name or economy command
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// Delta is the signed balance change
func (e BalanceChangeEvent) Delta() decimal.Decimal {
	return e.NewBalance.Sub(e.OldBalance)
}

// BetPlacedEvent is published for every recorded bet
type BetPlacedEvent struct {
	UserID     int64
	BetID      int64
	Game       string
	Amount     decimal.Decimal
	Multiplier float64
	Payout     decimal.Decimal // Net winnings, zero on a loss or push
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// RakebackClaimedEvent is published after a successful claim
type RakebackClaimedEvent struct {
	UserID int64
	Amount decimal.Decimal
}

func (e RakebackClaimedEvent) Type() EventType {
	return EventTypeRakebackClaimed
}

// RainDistributedEvent is published once a rain has been split
type RainDistributedEvent struct {
	HostID       int64
	ChannelID    int64
	Amount       decimal.Decimal
	Participants []int64
}

func (e RainDistributedEvent) Type() EventType {
	return EventTypeRainDistributed
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus fans events out to subscribers. Handlers run on their own goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]Handler)}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed event handler")
}

// Emit dispatches event to every handler subscribed to its type
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type()]...)
	b.mu.RUnlock()

	for i, handler := range handlers {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": i,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			handler(ctx, event)
		}()
	}
}

// TransactionalBus holds events published inside a unit of work until the
// transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Pending returns the events waiting for a commit
func (b *TransactionalBus) Pending() []Event {
	return b.pending
}

// Flush emits pending events. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing transactional events")

	// Handlers outlive the request, so they get a fresh context
	eventCtx := context.WithoutCancel(ctx)
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
