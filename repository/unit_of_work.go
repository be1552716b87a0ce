package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"gamblebot/database"
	"gamblebot/events"
	"gamblebot/service"
)

const notStarted = "unit of work not started - call Begin() first"

// unitOfWork implements service.UnitOfWork over one pgx transaction
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	startingBalance  decimal.Decimal
	transactionalBus *events.TransactionalBus

	ledgerRepo   service.LedgerRepository
	betRepo      service.BetRepository
	rakebackRepo service.RakebackRepository
}

type unitOfWorkFactory struct {
	db              *database.DB
	eventBus        *events.Bus
	startingBalance decimal.Decimal
}

// NewUnitOfWorkFactory creates a UnitOfWork factory. startingBalance seeds
// ledger entries for unseen users.
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus, startingBalance decimal.Decimal) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:              db,
		eventBus:        eventBus,
		startingBalance: startingBalance,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		startingBalance:  f.startingBalance,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts the transaction and binds the repositories to it
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx
	u.ledgerRepo = newLedgerRepositoryWithTx(tx, u.startingBalance)
	u.betRepo = newBetRepositoryWithTx(tx)
	u.rakebackRepo = newRakebackRepositoryWithTx(tx)
	return nil
}

// Commit commits the transaction and flushes queued events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	if err := u.transactionalBus.Flush(u.ctx); err != nil {
		log.WithError(err).Error("Failed to flush events after commit")
	}
	return nil
}

// Rollback is a no-op once committed
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.transactionalBus.Discard()

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) LedgerRepository() service.LedgerRepository {
	if u.ledgerRepo == nil {
		panic(notStarted)
	}
	return u.ledgerRepo
}

func (u *unitOfWork) BetRepository() service.BetRepository {
	if u.betRepo == nil {
		panic(notStarted)
	}
	return u.betRepo
}

func (u *unitOfWork) RakebackRepository() service.RakebackRepository {
	if u.rakebackRepo == nil {
		panic(notStarted)
	}
	return u.rakebackRepo
}

// EventBus returns the transactional bus flushed on commit
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
