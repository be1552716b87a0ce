package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gamblebot/games"
	"gamblebot/models"
)

// RoadSession is an open or just-finished crossing
type RoadSession struct {
	ID       string // empty once the crossing is over
	UserID   int64
	Road     *games.Road
	Balance  decimal.Decimal
	Deadline time.Time
}

// Over reports whether the crossing has ended
func (s *RoadSession) Over() bool {
	return s.Road.State != games.RoadActive
}

type roadService struct {
	uowFactory UnitOfWorkFactory
	sessions   *SessionStore[*RoadSession]
	rng        games.RNG
}

func NewRoadService(uowFactory UnitOfWorkFactory, sessions *SessionStore[*RoadSession]) RoadService {
	return &roadService{
		uowFactory: uowFactory,
		sessions:   sessions,
		rng:        games.DefaultRNG,
	}
}

// Start debits the stake and opens a crossing
func (s *roadService) Start(ctx context.Context, userID int64, amountText string, difficulty games.Difficulty) (*RoadSession, error) {
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

	road, err := games.NewRoad(stake, difficulty)
	if err != nil {
		return nil, err
	}

	oldBalance := entry.Balance
	entry.Balance = entry.Balance.Sub(stake)
	entry.Wagered = entry.Wagered.Add(stake)

	if err := saveLedger(ctx, uow, entry, oldBalance, models.GameUncrossable); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	session := &RoadSession{UserID: userID, Road: road, Balance: entry.Balance}
	session.ID = s.sessions.Put(session)
	session.Deadline, _ = s.sessions.Deadline(session.ID)
	return session, nil
}

// Cross attempts the next lane. A collision books the lost bet and closes the session.
func (s *roadService) Cross(ctx context.Context, sessionID string, userID int64) (*RoadSession, error) {
	session, err := s.ownedSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	road := session.Road.Clone()
	hit, err := road.Cross(s.rng)
	if err != nil {
		return nil, err
	}
	if !hit {
		session.Road = road
		session.Deadline, _ = s.sessions.Deadline(sessionID)
		return session, nil
	}

	if err := s.finish(ctx, session, road); err != nil {
		return nil, err
	}
	return session, nil
}

// CashOut pays the escalated bet and closes the session
func (s *roadService) CashOut(ctx context.Context, sessionID string, userID int64) (*RoadSession, error) {
	session, err := s.ownedSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	road := session.Road.Clone()
	if _, err := road.CashOut(); err != nil {
		return nil, err
	}

	if err := s.finish(ctx, session, road); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *roadService) ownedSession(sessionID string, userID int64) (*RoadSession, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// finish settles the ended crossing and only then closes the session, so a
// failed write leaves the session open for a retry.
func (s *roadService) finish(ctx context.Context, session *RoadSession, road *games.Road) error {
	balance, err := s.settle(ctx, session.UserID, road)
	if err != nil {
		return err
	}

	s.sessions.Delete(session.ID)
	session.ID = ""
	session.Road = road
	session.Balance = balance
	return nil
}

// settle books a finished crossing: a cash-out credits the bet, a collision
// only records the loss since the stake was taken at start.
func (s *roadService) settle(ctx context.Context, userID int64, road *games.Road) (decimal.Decimal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entry, err := uow.LedgerRepository().Fetch(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get ledger: %w", err)
	}

	oldBalance := entry.Balance
	if road.State == games.RoadCashedOut {
		entry.Balance = entry.Balance.Add(road.Bet)
	}
	entry.NetProfit = entry.NetProfit.Add(road.Payout())

	if err := saveLedger(ctx, uow, entry, oldBalance, models.GameUncrossable); err != nil {
		return decimal.Zero, err
	}

	err = recordBet(ctx, uow, &models.BetRecord{
		UserID:     userID,
		Amount:     road.Stake,
		Multiplier: road.Multiplier(),
		Payout:     road.Payout(),
		Game:       models.GameUncrossable,
	})
	if err != nil {
		return decimal.Zero, err
	}

	if err := uow.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entry.Balance, nil
}
