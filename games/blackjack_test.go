package games

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(ranks ...string) []Card {
	hand := make([]Card, 0, len(ranks))
	for _, r := range ranks {
		value := 0
		switch r {
		case "J", "Q", "K":
			value = 10
		case "A":
			value = 11
		default:
			for _, c := range NewDeck()[:13] {
				if c.Rank == r {
					value = c.Value
				}
			}
		}
		hand = append(hand, Card{Rank: r, Suit: "♠", Value: value})
	}
	return hand
}

// deal builds a hand where the player gets the first two cards, the dealer the
// next two, and draws follow in order.
func deal(ranks ...string) *Blackjack {
	return dealFrom(decimal.NewFromInt(100), cards(ranks...))
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck, 52)

	seen := make(map[string]bool)
	for _, c := range deck {
		seen[c.String()] = true
	}
	assert.Len(t, seen, 52)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 21, Score(cards("A", "A", "9")))
	assert.Equal(t, 20, Score(cards("K", "Q")))
	assert.Equal(t, 21, Score(cards("A", "K")))
	assert.Equal(t, 12, Score(cards("A", "A")))
	assert.Equal(t, 22, Score(cards("K", "Q", "2")))

	assert.True(t, IsNatural(cards("A", "K")))
	assert.False(t, IsNatural(cards("7", "4", "K")))
}

func TestBlackjack_Naturals(t *testing.T) {
	t.Run("player natural wins even money", func(t *testing.T) {
		b := deal("A", "K", "9", "7")

		assert.Equal(t, StateResolved, b.State)
		assert.Equal(t, OutcomePlayerWin, b.Outcome)
		assert.Equal(t, "200", b.Credit().String())
		assert.Equal(t, "100", b.Payout().String())
	})

	t.Run("both natural push", func(t *testing.T) {
		b := deal("A", "K", "Q", "A")

		assert.Equal(t, OutcomePush, b.Outcome)
		assert.Equal(t, "100", b.Credit().String())
	})

	t.Run("dealer natural beats twenty one", func(t *testing.T) {
		b := deal("7", "4", "A", "Q", "K")
		require.Equal(t, StatePlayerTurn, b.State)

		state, err := b.Apply(ActionHit)
		require.NoError(t, err)
		assert.Equal(t, StateResolved, state)
		assert.Equal(t, 21, Score(b.Player))
		assert.Equal(t, OutcomeDealerWin, b.Outcome)
	})
}

func TestBlackjack_DealerChasesPlayer(t *testing.T) {
	// player 18, dealer 15, dealer draws 2 (17, still behind) then A (18)
	b := deal("10", "8", "10", "5", "2", "A", "K")

	state, err := b.Apply(ActionStand)
	require.NoError(t, err)

	assert.Equal(t, StateResolved, state)
	assert.Len(t, b.Dealer, 4)
	assert.Equal(t, 18, Score(b.Dealer))
	assert.Equal(t, OutcomePush, b.Outcome)
	assert.Equal(t, "100", b.Credit().String())
}

func TestBlackjack_DealerBusts(t *testing.T) {
	b := deal("10", "9", "10", "6", "K")

	_, err := b.Apply(ActionStand)
	require.NoError(t, err)

	assert.Equal(t, 26, Score(b.Dealer))
	assert.Equal(t, OutcomePlayerWin, b.Outcome)
}

func TestBlackjack_PlayerBusts(t *testing.T) {
	b := deal("10", "6", "10", "7", "K")

	state, err := b.Apply(ActionHit)
	require.NoError(t, err)

	assert.Equal(t, StateResolved, state)
	assert.Len(t, b.Dealer, 2)
	assert.Equal(t, OutcomeDealerWin, b.Outcome)
	assert.True(t, b.Credit().IsZero())
	assert.Equal(t, "-100", b.Payout().String())

	_, err = b.Apply(ActionHit)
	assert.ErrorIs(t, err, ErrHandOver)
}

func TestBlackjack_HitKeepsTurn(t *testing.T) {
	b := deal("5", "4", "10", "7", "2")

	state, err := b.Apply(ActionHit)
	require.NoError(t, err)

	assert.Equal(t, StatePlayerTurn, state)
	assert.Equal(t, 11, Score(b.Player))
	assert.False(t, b.CanDoubleDown())

	_, err = b.Apply(ActionDoubleDown)
	assert.ErrorIs(t, err, ErrDoubleDownUnavailable)
}

func TestBlackjack_DoubleDown(t *testing.T) {
	// player 11 doubles into 21, dealer 17 draws to 20
	b := deal("6", "5", "10", "7", "K", "3")

	require.True(t, b.CanDoubleDown())
	state, err := b.Apply(ActionDoubleDown)
	require.NoError(t, err)

	assert.Equal(t, StateResolved, state)
	assert.True(t, b.Doubled)
	assert.Len(t, b.Player, 3)
	assert.Equal(t, "200", b.Stake.String())
	assert.Equal(t, OutcomePlayerWin, b.Outcome)
	assert.Equal(t, "400", b.Credit().String())
}

func TestBlackjack_Clone(t *testing.T) {
	b := deal("6", "5", "10", "7", "K", "3")

	next := b.Clone()
	_, err := next.Apply(ActionDoubleDown)
	require.NoError(t, err)

	assert.Equal(t, StatePlayerTurn, b.State)
	assert.Equal(t, "100", b.Stake.String())
	assert.Len(t, b.Player, 2)
	assert.Len(t, b.deck, 2)

	// The original still plays out the same way
	_, err = b.Apply(ActionDoubleDown)
	require.NoError(t, err)
	assert.Equal(t, next.Player, b.Player)
	assert.Equal(t, next.Outcome, b.Outcome)
}

func TestBlackjack_UnknownAction(t *testing.T) {
	b := deal("5", "4", "10", "7")

	_, err := b.Apply(Action("split"))
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestNewBlackjack_UsesWholeDeck(t *testing.T) {
	b := NewBlackjack(DefaultRNG, decimal.NewFromInt(10))

	assert.Len(t, b.Player, 2)
	assert.Len(t, b.Dealer, 2)
	assert.Len(t, b.deck, 48)
}
