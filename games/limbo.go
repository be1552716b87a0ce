package games

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	MinLimboTarget = 1.01
	MaxLimboTarget = 1_000_000
)

var ErrInvalidTarget = errors.New("target multiplier must be between 1.01 and 1000000")

type LimboOutcome struct {
	Target float64
	Result float64
	Won    bool
	Payout decimal.Decimal
}

// LimboResult turns a draw in (0,1) into the crash multiplier.
// Draws under 0.25 are trimmed by 10%.
func LimboResult(value float64) float64 {
	result := 1 / value
	if value < 0.25 {
		result *= 0.90
	}
	return roundTo(result, 3)
}

// Limbo wins when the drawn multiplier reaches target
func Limbo(rng RNG, stake decimal.Decimal, target float64) (LimboOutcome, error) {
	if target < MinLimboTarget || target > MaxLimboTarget {
		return LimboOutcome{}, ErrInvalidTarget
	}

	value := rng.Float64()
	for value == 0 {
		value = rng.Float64()
	}

	outcome := LimboOutcome{Target: target, Result: LimboResult(value)}
	outcome.Won = outcome.Result >= target
	if outcome.Won {
		outcome.Payout = stake.Mul(decimal.NewFromFloat(target).Sub(decimal.NewFromInt(1)))
	} else {
		outcome.Payout = stake.Neg()
	}
	return outcome, nil
}
