package games

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Side string

const (
	Heads Side = "heads"
	Tails Side = "tails"
)

var ErrInvalidSide = errors.New("side must be heads or tails")

// ParseSide accepts heads/tails and their first letters
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heads", "h":
		return Heads, nil
	case "tails", "t":
		return Tails, nil
	}
	return "", ErrInvalidSide
}

type CoinflipOutcome struct {
	Choice Side
	Landed Side
	Won    bool
	Payout decimal.Decimal
}

// Coinflip pays even money when the coin lands on choice
func Coinflip(rng RNG, stake decimal.Decimal, choice Side) (CoinflipOutcome, error) {
	if choice != Heads && choice != Tails {
		return CoinflipOutcome{}, ErrInvalidSide
	}

	landed := Heads
	if rng.IntN(2) == 1 {
		landed = Tails
	}

	outcome := CoinflipOutcome{Choice: choice, Landed: landed, Won: landed == choice}
	if outcome.Won {
		outcome.Payout = stake
	} else {
		outcome.Payout = stake.Neg()
	}
	return outcome, nil
}
