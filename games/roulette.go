package games

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

const (
	greenMultiplier = 35
	colorMultiplier = 2
)

var ErrInvalidColor = errors.New("color must be red, black or green")

func ParseColor(s string) (Color, error) {
	switch c := Color(strings.ToLower(strings.TrimSpace(s))); c {
	case Red, Black, Green:
		return c, nil
	}
	return "", ErrInvalidColor
}

// ColorOf maps a wheel pocket 0..36 to its color
func ColorOf(landing int) Color {
	switch {
	case landing == 0:
		return Green
	case landing >= 1 && landing <= 10, landing >= 19 && landing <= 28:
		return Red
	default:
		return Black
	}
}

// RouletteMultiplier is what a winning bet on color pays
func RouletteMultiplier(color Color) int {
	if color == Green {
		return greenMultiplier
	}
	return colorMultiplier
}

type RouletteOutcome struct {
	Choice  Color
	Landing int
	Color   Color
	Won     bool
	Payout  decimal.Decimal
}

// Roulette spins 0..36 and pays when the pocket color matches choice
func Roulette(rng RNG, stake decimal.Decimal, choice Color) (RouletteOutcome, error) {
	if _, err := ParseColor(string(choice)); err != nil {
		return RouletteOutcome{}, err
	}
	return resolveRoulette(stake, choice, rng.IntN(37)), nil
}

func resolveRoulette(stake decimal.Decimal, choice Color, landing int) RouletteOutcome {
	outcome := RouletteOutcome{
		Choice:  choice,
		Landing: landing,
		Color:   ColorOf(landing),
	}
	outcome.Won = outcome.Color == choice
	if outcome.Won {
		outcome.Payout = stake.Mul(decimal.NewFromInt(int64(RouletteMultiplier(choice))))
	} else {
		outcome.Payout = stake.Neg()
	}
	return outcome
}
