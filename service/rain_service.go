package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"gamblebot/events"
	"gamblebot/models"
)

// rainSharePlaces is the precision each share is rounded down to
const rainSharePlaces = 4

type rainService struct {
	uowFactory UnitOfWorkFactory
}

func NewRainService(uowFactory UnitOfWorkFactory) RainService {
	return &rainService{uowFactory: uowFactory}
}

func (s *rainService) Start(ctx context.Context, hostID int64, amountText string) (decimal.Decimal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entry, err := uow.LedgerRepository().Fetch(ctx, hostID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get ledger: %w", err)
	}

	amount, err := ParseAmount(amountText, entry.Balance)
	if err != nil {
		return decimal.Zero, err
	}

	oldBalance := entry.Balance
	entry.Balance = entry.Balance.Sub(amount)
	if err := saveLedger(ctx, uow, entry, oldBalance, "rain"); err != nil {
		return decimal.Zero, err
	}
	if err := uow.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return amount, nil
}

// Distribute splits amount evenly. With nobody to pay the amount stays spent.
func (s *rainService) Distribute(ctx context.Context, hostID, channelID int64, amount decimal.Decimal, participants []int64) (*models.RainResult, error) {
	result := &models.RainResult{HostID: hostID, Amount: amount, Share: decimal.Zero, Remainder: decimal.Zero}

	for _, id := range participants {
		if id != hostID && !slices.Contains(result.Participants, id) {
			result.Participants = append(result.Participants, id)
		}
	}
	if len(result.Participants) == 0 {
		log.WithFields(log.Fields{
			"hostID":    hostID,
			"channelID": channelID,
			"amount":    amount.String(),
		}).Info("Rain ended without participants")
		return result, nil
	}

	count := decimal.NewFromInt(int64(len(result.Participants)))
	result.Share = amount.Div(count).RoundDown(rainSharePlaces)
	result.Remainder = amount.Sub(result.Share.Mul(count))

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	for _, id := range result.Participants {
		entry, err := uow.LedgerRepository().Fetch(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get ledger for %d: %w", id, err)
		}
		oldBalance := entry.Balance
		entry.Balance = entry.Balance.Add(result.Share)
		if err := saveLedger(ctx, uow, entry, oldBalance, "rain"); err != nil {
			return nil, err
		}
	}

	if result.Remainder.IsPositive() {
		host, err := uow.LedgerRepository().Fetch(ctx, hostID)
		if err != nil {
			return nil, fmt.Errorf("failed to get ledger for host %d: %w", hostID, err)
		}
		oldBalance := host.Balance
		host.Balance = host.Balance.Add(result.Remainder)
		if err := saveLedger(ctx, uow, host, oldBalance, "rain"); err != nil {
			return nil, err
		}
	}

	uow.EventBus().Publish(events.RainDistributedEvent{
		HostID:       hostID,
		ChannelID:    channelID,
		Amount:       amount,
		Participants: result.Participants,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"hostID":       hostID,
		"channelID":    channelID,
		"amount":       amount.String(),
		"participants": len(result.Participants),
		"share":        result.Share.String(),
		"remainder":    result.Remainder.String(),
	}).Info("Rain distributed")
	return result, nil
}
