package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"gamblebot/events"
	"gamblebot/models"
)

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Fetch(ctx context.Context, userID int64) (*models.LedgerEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, entry *models.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) Top(ctx context.Context, limit int) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) TotalWagered(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Append(ctx context.Context, record *models.BetRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBetRepository) QueryRecent(ctx context.Context, userID int64, game string, limit int) ([]*models.BetRecord, error) {
	args := m.Called(ctx, userID, game, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BetRecord), args.Error(1)
}

func (m *MockBetRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockRakebackRepository is a mock implementation of RakebackRepository
type MockRakebackRepository struct {
	mock.Mock
}

func (m *MockRakebackRepository) Fetch(ctx context.Context, userID int64) (*models.Rakeback, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rakeback), args.Error(1)
}

func (m *MockRakebackRepository) UpsertAdd(ctx context.Context, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockRakebackRepository) ResetAndStamp(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock UnitOfWork handing out preset repositories
type MockUnitOfWork struct {
	mock.Mock
	ledgerRepo   LedgerRepository
	betRepo      BetRepository
	rakebackRepo RakebackRepository
	eventBus     EventPublisher
}

// SetRepositories sets the repositories and event bus returned by the unit of work
func (m *MockUnitOfWork) SetRepositories(ledger LedgerRepository, bets BetRepository, rakeback RakebackRepository, bus EventPublisher) {
	m.ledgerRepo = ledger
	m.betRepo = bets
	m.rakebackRepo = rakeback
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) LedgerRepository() LedgerRepository     { return m.ledgerRepo }
func (m *MockUnitOfWork) BetRepository() BetRepository           { return m.betRepo }
func (m *MockUnitOfWork) RakebackRepository() RakebackRepository { return m.rakebackRepo }
func (m *MockUnitOfWork) EventBus() EventPublisher               { return m.eventBus }

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
