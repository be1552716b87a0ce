// Command simulate plays every game engine many times and reports the
// observed return to player next to the win rate.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"gamblebot/games"
)

// play runs one round and returns the net result for stake
type play func(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error)

type result struct {
	name    string
	rounds  int
	wins    int
	wagered decimal.Decimal
	net     decimal.Decimal
}

func (r result) rtp() float64 {
	if r.wagered.IsZero() {
		return 0
	}
	return r.wagered.Add(r.net).Div(r.wagered).InexactFloat64() * 100
}

func main() {
	rounds := flag.Int("rounds", 100_000, "rounds per game")
	flag.Parse()

	if *rounds <= 0 {
		log.Fatal("rounds must be positive")
	}

	scenarios := []struct {
		name string
		play play
	}{
		{"dice 50%", func(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error) {
			out, err := games.Dice(rng, stake, 50)
			return out.Payout, err
		}},
		{"dice 10%", func(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error) {
			out, err := games.Dice(rng, stake, 10)
			return out.Payout, err
		}},
		{"coinflip", func(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error) {
			out, err := games.Coinflip(rng, stake, games.Heads)
			return out.Payout, err
		}},
		{"roulette red", func(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error) {
			out, err := games.Roulette(rng, stake, games.Red)
			return out.Payout, err
		}},
		{"roulette green", func(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error) {
			out, err := games.Roulette(rng, stake, games.Green)
			return out.Payout, err
		}},
		{"slots", func(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error) {
			return games.Slots(rng, stake).Payout, nil
		}},
		{"limbo 2x", func(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error) {
			out, err := games.Limbo(rng, stake, 2)
			return out.Payout, err
		}},
		{"blackjack hit<17", playBlackjack},
		{"road easy x3", crossRoad(games.Easy, 3)},
		{"road hard x5", crossRoad(games.Hard, 5)},
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tROUNDS\tWIN RATE\tRTP")
	for _, sc := range scenarios {
		r, err := simulate(sc.name, sc.play, *rounds)
		if err != nil {
			log.WithError(err).WithField("game", sc.name).Fatal("Simulation failed")
		}
		fmt.Fprintf(w, "%s\t%d\t%.2f%%\t%.2f%%\n",
			r.name, r.rounds, float64(r.wins)/float64(r.rounds)*100, r.rtp())
	}
	w.Flush()
}

func simulate(name string, p play, rounds int) (result, error) {
	stake := decimal.NewFromInt(100)
	r := result{name: name, rounds: rounds}
	for range rounds {
		net, err := p(games.DefaultRNG, stake)
		if err != nil {
			return r, err
		}
		if net.IsPositive() {
			r.wins++
		}
		r.wagered = r.wagered.Add(stake)
		r.net = r.net.Add(net)
	}
	return r, nil
}

// playBlackjack hits below 17 and never doubles
func playBlackjack(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error) {
	hand := games.NewBlackjack(rng, stake)
	for hand.State == games.StatePlayerTurn {
		action := games.ActionStand
		if games.Score(hand.Player) < 17 {
			action = games.ActionHit
		}
		if _, err := hand.Apply(action); err != nil {
			return decimal.Zero, err
		}
	}
	return hand.Payout(), nil
}

// crossRoad crosses lanes times and then cashes out
func crossRoad(difficulty games.Difficulty, lanes int) play {
	return func(rng games.RNG, stake decimal.Decimal) (decimal.Decimal, error) {
		road, err := games.NewRoad(stake, difficulty)
		if err != nil {
			return decimal.Zero, err
		}
		for range lanes {
			hit, err := road.Cross(rng)
			if err != nil {
				return decimal.Zero, err
			}
			if hit {
				return road.Payout(), nil
			}
		}
		if _, err := road.CashOut(); err != nil {
			return decimal.Zero, err
		}
		return road.Payout(), nil
	}
}
