package games

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	MinDiceChance = 1
	MaxDiceChance = 98

	// diceEdge replaces 100 in the multiplier so every chance carries a house edge
	diceEdge = 99.0
)

var ErrInvalidChance = errors.New("chance must be between 1 and 98")

// DiceOutcome is a single dice roll against a win chance
type DiceOutcome struct {
	Chance     float64
	Multiplier float64
	Roll       int // 1..100
	Won        bool
	Payout     decimal.Decimal
}

// DiceMultiplier returns the gross multiplier paid for a winning roll at chance percent
func DiceMultiplier(chance float64) float64 {
	return roundTo(diceEdge/chance, 4)
}

// ExpectedValue is the expected net return per unit staked at chance percent
func ExpectedValue(chance float64) float64 {
	p := chance / 100
	return p*(DiceMultiplier(chance)-1) - (1 - p)
}

// Dice rolls 1..100 and wins when the roll is at or under chance
func Dice(rng RNG, stake decimal.Decimal, chance float64) (DiceOutcome, error) {
	if chance < MinDiceChance || chance > MaxDiceChance {
		return DiceOutcome{}, ErrInvalidChance
	}

	multiplier := DiceMultiplier(chance)
	roll := rng.IntN(100) + 1

	outcome := DiceOutcome{
		Chance:     chance,
		Multiplier: multiplier,
		Roll:       roll,
		Won:        float64(roll) <= chance,
	}
	if outcome.Won {
		outcome.Payout = stake.Mul(decimal.NewFromFloat(multiplier).Sub(decimal.NewFromInt(1)))
	} else {
		outcome.Payout = stake.Neg()
	}
	return outcome, nil
}
