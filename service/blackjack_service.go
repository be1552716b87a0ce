package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"gamblebot/games"
	"gamblebot/models"
)

// blackjackMultiplier is what a win pays on the (possibly doubled) stake
const blackjackMultiplier = 2

// BlackjackSession is an open or just-finished blackjack hand
type BlackjackSession struct {
	ID           string // empty once the hand is resolved
	UserID       int64
	Hand         *games.Blackjack
	InitialStake decimal.Decimal
	Balance      decimal.Decimal // ledger balance after the last action
	Deadline     time.Time
}

// Resolved reports whether the hand is over
func (s *BlackjackSession) Resolved() bool {
	return s.Hand.State == games.StateResolved
}

type blackjackService struct {
	uowFactory UnitOfWorkFactory
	sessions   *SessionStore[*BlackjackSession]
	rng        games.RNG
}

// NewBlackjackService creates a blackjack service keeping open hands in sessions
func NewBlackjackService(uowFactory UnitOfWorkFactory, sessions *SessionStore[*BlackjackSession]) BlackjackService {
	return &blackjackService{
		uowFactory: uowFactory,
		sessions:   sessions,
		rng:        games.DefaultRNG,
	}
}

func (s *blackjackService) Start(ctx context.Context, userID int64, amountText string) (*BlackjackSession, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entry, err := uow.LedgerRepository().Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	stake, err := ParseAmount(amountText, entry.Balance)
	if err != nil {
		return nil, err
	}

	hand := games.NewBlackjack(s.rng, stake)

	oldBalance := entry.Balance
	entry.Balance = entry.Balance.Sub(stake)
	entry.Wagered = entry.Wagered.Add(stake)

	if hand.State == games.StateResolved {
		if err := settleBlackjack(ctx, uow, entry, hand); err != nil {
			return nil, err
		}
	}

	if err := saveLedger(ctx, uow, entry, oldBalance, models.GameBlackjack); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	session := &BlackjackSession{
		UserID:       userID,
		Hand:         hand,
		InitialStake: stake,
		Balance:      entry.Balance,
	}
	if !session.Resolved() {
		session.ID = s.sessions.Put(session)
		session.Deadline, _ = s.sessions.Deadline(session.ID)
	}

	log.WithFields(log.Fields{
		"userID":  userID,
		"stake":   stake.String(),
		"natural": session.Resolved(),
	}).Debug("Blackjack hand dealt")

	return session, nil
}

func (s *blackjackService) Apply(ctx context.Context, sessionID string, userID int64, action games.Action) (*BlackjackSession, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	// The stored hand only moves on once the ledger write commits
	hand := session.Hand.Clone()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entry, err := uow.LedgerRepository().Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	oldBalance := entry.Balance

	if action == games.ActionDoubleDown {
		if !hand.CanDoubleDown() {
			return nil, games.ErrDoubleDownUnavailable
		}
		// The second stake must be covered on top of the one already taken
		if entry.Balance.LessThan(hand.Stake) {
			return nil, ErrInsufficientFunds
		}
		entry.Balance = entry.Balance.Sub(hand.Stake)
		entry.Wagered = entry.Wagered.Add(hand.Stake)
	}

	state, err := hand.Apply(action)
	if err != nil {
		return nil, err
	}

	if state == games.StateResolved {
		if err := settleBlackjack(ctx, uow, entry, hand); err != nil {
			return nil, err
		}
	}

	if !entry.Balance.Equal(oldBalance) || state == games.StateResolved {
		if err := saveLedger(ctx, uow, entry, oldBalance, models.GameBlackjack); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	session.Hand = hand
	session.Balance = entry.Balance
	if state == games.StateResolved {
		s.sessions.Delete(sessionID)
		session.ID = ""
	} else {
		session.Deadline, _ = s.sessions.Deadline(sessionID)
	}
	return session, nil
}

// settleBlackjack credits a resolved hand and records the bet. The stake was
// debited when the hand started.
func settleBlackjack(ctx context.Context, uow UnitOfWork, entry *models.LedgerEntry, hand *games.Blackjack) error {
	entry.Balance = entry.Balance.Add(hand.Credit())
	entry.NetProfit = entry.NetProfit.Add(hand.Payout())

	return recordBet(ctx, uow, &models.BetRecord{
		UserID:     entry.UserID,
		Amount:     hand.Stake,
		Multiplier: blackjackMultiplier,
		Payout:     hand.Payout(),
		Game:       models.GameBlackjack,
	})
}
