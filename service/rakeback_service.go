package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gamblebot/config"
	"gamblebot/events"
	"gamblebot/models"
)

var ErrNoRakeback = errors.New("you don't have any rakeback to claim")

type rakebackService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

func NewRakebackService(uowFactory UnitOfWorkFactory) RakebackService {
	return &rakebackService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (s *rakebackService) Pending(ctx context.Context, userID int64) (decimal.Decimal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rb, err := uow.RakebackRepository().Fetch(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rakeback: %w", err)
	}
	if rb == nil {
		return decimal.Zero, nil
	}
	return rb.Amount, nil
}

// Claim credits the accumulator to the ledger and resets it in one transaction
func (s *rakebackService) Claim(ctx context.Context, userID int64) (*models.RakebackClaimResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rb, err := uow.RakebackRepository().Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rakeback: %w", err)
	}
	if rb == nil {
		return nil, ErrNoRakeback
	}

	now := s.now()
	if err := checkCooldown(rb.LastClaimed, config.Get().RakebackCooldown, now, ErrRakebackCooldown); err != nil {
		return nil, err
	}
	if !rb.Amount.IsPositive() {
		return nil, ErrNoRakeback
	}

	entry, err := uow.LedgerRepository().Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	oldBalance := entry.Balance
	entry.Balance = entry.Balance.Add(rb.Amount)
	if err := saveLedger(ctx, uow, entry, oldBalance, "rakeback"); err != nil {
		return nil, err
	}
	if err := uow.RakebackRepository().ResetAndStamp(ctx, userID, now); err != nil {
		return nil, fmt.Errorf("failed to reset rakeback: %w", err)
	}

	uow.EventBus().Publish(events.RakebackClaimedEvent{UserID: userID, Amount: rb.Amount})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.RakebackClaimResult{Amount: rb.Amount, NewBalance: entry.Balance}, nil
}
