package games

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"
)

// Card is a single playing card
type Card struct {
	Rank  string
	Suit  string
	Value int // ace counts 11 here, Score reduces it
}

func (c Card) String() string {
	return c.Rank + c.Suit
}

var (
	ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	suits = []string{"♠", "♥", "♦", "♣"}
)

// NewDeck builds an unshuffled 52 card deck
func NewDeck() []Card {
	deck := make([]Card, 0, len(ranks)*len(suits))
	for _, suit := range suits {
		for i, rank := range ranks {
			value := i + 2
			switch rank {
			case "J", "Q", "K":
				value = 10
			case "A":
				value = 11
			}
			deck = append(deck, Card{Rank: rank, Suit: suit, Value: value})
		}
	}
	return deck
}

// Score totals a hand, counting aces as 1 while the hand would bust
func Score(hand []Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		total += c.Value
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsNatural reports a two card 21
func IsNatural(hand []Card) bool {
	return len(hand) == 2 && Score(hand) == 21
}

type BlackjackState int

const (
	StateDealing BlackjackState = iota
	StatePlayerTurn
	StateDealerTurn
	StateResolved
)

func (s BlackjackState) String() string {
	switch s {
	case StateDealing:
		return "dealing"
	case StatePlayerTurn:
		return "player_turn"
	case StateDealerTurn:
		return "dealer_turn"
	case StateResolved:
		return "resolved"
	}
	return "unknown"
}

type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomePlayerWin
	OutcomeDealerWin
	OutcomePush
)

type Action string

const (
	ActionHit        Action = "hit"
	ActionStand      Action = "stand"
	ActionDoubleDown Action = "double"
)

var (
	ErrHandOver              = errors.New("hand is already over")
	ErrUnknownAction         = errors.New("unknown blackjack action")
	ErrDoubleDownUnavailable = errors.New("double down is only allowed as the first action")
)

// Blackjack is one hand against the dealer
type Blackjack struct {
	Stake   decimal.Decimal // doubled in place on double down
	Player  []Card
	Dealer  []Card
	State   BlackjackState
	Outcome Outcome
	Doubled bool

	deck []Card
}

// NewBlackjack shuffles a fresh deck and deals two cards each. A natural on
// either side resolves the hand immediately.
func NewBlackjack(rng RNG, stake decimal.Decimal) *Blackjack {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return dealFrom(stake, deck)
}

func dealFrom(stake decimal.Decimal, deck []Card) *Blackjack {
	b := &Blackjack{Stake: stake, State: StateDealing, deck: deck}
	b.Player = append(b.Player, b.draw(), b.draw())
	b.Dealer = append(b.Dealer, b.draw(), b.draw())
	b.State = StatePlayerTurn

	if IsNatural(b.Player) {
		if IsNatural(b.Dealer) {
			b.finish(OutcomePush)
		} else {
			b.finish(OutcomePlayerWin)
		}
	}
	return b
}

func (b *Blackjack) draw() Card {
	c := b.deck[0]
	b.deck = b.deck[1:]
	return c
}

// Clone returns an independent copy of the hand, remaining deck included
func (b *Blackjack) Clone() *Blackjack {
	c := *b
	c.Player = slices.Clone(b.Player)
	c.Dealer = slices.Clone(b.Dealer)
	c.deck = slices.Clone(b.deck)
	return &c
}

// CanDoubleDown reports whether the hand still allows a double down
func (b *Blackjack) CanDoubleDown() bool {
	return b.State == StatePlayerTurn && len(b.Player) == 2 && !b.Doubled
}

// Apply performs a player action and returns the resulting state
func (b *Blackjack) Apply(action Action) (BlackjackState, error) {
	if b.State != StatePlayerTurn {
		return b.State, ErrHandOver
	}

	switch action {
	case ActionHit:
		b.Player = append(b.Player, b.draw())
		if Score(b.Player) >= 21 {
			b.playDealer()
		}
	case ActionStand:
		b.playDealer()
	case ActionDoubleDown:
		if !b.CanDoubleDown() {
			return b.State, ErrDoubleDownUnavailable
		}
		b.Doubled = true
		b.Stake = b.Stake.Mul(decimal.NewFromInt(2))
		b.Player = append(b.Player, b.draw())
		b.playDealer()
	default:
		return b.State, ErrUnknownAction
	}
	return b.State, nil
}

// playDealer ends the player's turn. The dealer draws while under 16 or
// behind the player.
func (b *Blackjack) playDealer() {
	b.State = StateDealerTurn

	player := Score(b.Player)
	if player > 21 {
		b.finish(OutcomeDealerWin)
		return
	}

	for len(b.deck) > 0 {
		dealer := Score(b.Dealer)
		if dealer >= 16 && dealer >= player {
			break
		}
		b.Dealer = append(b.Dealer, b.draw())
	}
	b.finish(b.resolve())
}

func (b *Blackjack) resolve() Outcome {
	player, dealer := Score(b.Player), Score(b.Dealer)
	switch {
	case player > 21:
		return OutcomeDealerWin
	case dealer > 21:
		return OutcomePlayerWin
	case IsNatural(b.Dealer) && !IsNatural(b.Player):
		return OutcomeDealerWin
	case player > dealer:
		return OutcomePlayerWin
	case player == dealer:
		return OutcomePush
	default:
		return OutcomeDealerWin
	}
}

func (b *Blackjack) finish(outcome Outcome) {
	b.Outcome = outcome
	b.State = StateResolved
}

// Credit is what the ledger receives back once the hand is resolved.
// The stake was taken when the hand started.
func (b *Blackjack) Credit() decimal.Decimal {
	switch b.Outcome {
	case OutcomePlayerWin:
		return b.Stake.Mul(decimal.NewFromInt(2))
	case OutcomePush:
		return b.Stake
	default:
		return decimal.Zero
	}
}

// Payout is the net change over the whole hand
func (b *Blackjack) Payout() decimal.Decimal {
	return b.Credit().Sub(b.Stake)
}
