package games

import "github.com/shopspring/decimal"

// SlotSymbols is the reel alphabet, every reel draws uniformly from it
var SlotSymbols = []string{"🍎", "🍊", "🍐", "🍋", "🍉", "🍇", "🍓", "🍒", "🍌", "🍍", "🥥", "🍑", "🥭"}

const SlotsLoss = -1

type SlotsOutcome struct {
	Symbols    [4]string
	Multiplier int // SlotsLoss when nothing matched
	Payout     decimal.Decimal
}

// EvaluateSlots returns the multiplier for four reels
func EvaluateSlots(symbols [4]string) int {
	counts := make(map[string]int, len(symbols))
	for _, s := range symbols {
		counts[s]++
	}

	pairs, best := 0, 0
	for _, n := range counts {
		if n == 2 {
			pairs++
		}
		best = max(best, n)
	}

	switch {
	case best == 4:
		return 100
	case best == 3:
		return 10
	case pairs == 2:
		return 10
	case pairs == 1:
		return 1
	default:
		return SlotsLoss
	}
}

// Slots spins four reels
func Slots(rng RNG, stake decimal.Decimal) SlotsOutcome {
	var symbols [4]string
	for i := range symbols {
		symbols[i] = SlotSymbols[rng.IntN(len(SlotSymbols))]
	}
	return resolveSlots(stake, symbols)
}

func resolveSlots(stake decimal.Decimal, symbols [4]string) SlotsOutcome {
	multiplier := EvaluateSlots(symbols)
	outcome := SlotsOutcome{Symbols: symbols, Multiplier: multiplier}
	if multiplier > 0 {
		outcome.Payout = stake.Mul(decimal.NewFromInt(int64(multiplier)))
	} else {
		outcome.Payout = stake.Neg()
	}
	return outcome
}
