package games

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// laneBlock is how many lanes share a collision step
const laneBlock = 25

var (
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium or hard")
	ErrRoadOver          = errors.New("crossing is already over")
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", ErrInvalidDifficulty
}

// HitChance is the base collision chance in percent
func (d Difficulty) HitChance() int {
	switch d {
	case Medium:
		return 3
	case Hard:
		return 5
	default:
		return 1
	}
}

// CollisionChance is the percent chance of being hit crossing from position
func CollisionChance(d Difficulty, position int) int {
	return min(d.HitChance()*(position/laneBlock+1), 100)
}

type RoadState int

const (
	RoadActive RoadState = iota
	RoadCrashed
	RoadCashedOut
)

// Road is a push-your-luck crossing. Each lane crossed doubles the bet.
type Road struct {
	Stake       decimal.Decimal
	Bet         decimal.Decimal
	Position    int
	Multipliers []float64
	Difficulty  Difficulty
	State       RoadState
}

func NewRoad(stake decimal.Decimal, difficulty Difficulty) (*Road, error) {
	if _, err := ParseDifficulty(string(difficulty)); err != nil {
		return nil, err
	}
	return &Road{
		Stake:       stake,
		Bet:         stake,
		Multipliers: []float64{1},
		Difficulty:  difficulty,
		State:       RoadActive,
	}, nil
}

// Multiplier is the current cumulative multiplier
func (r *Road) Multiplier() float64 {
	return r.Multipliers[len(r.Multipliers)-1]
}

// NextCollisionChance is the risk of the next crossing
func (r *Road) NextCollisionChance() int {
	return CollisionChance(r.Difficulty, r.Position)
}

// Cross attempts the next lane and reports whether the player was hit
func (r *Road) Cross(rng RNG) (bool, error) {
	if r.State != RoadActive {
		return false, ErrRoadOver
	}

	if rng.IntN(100)+1 <= r.NextCollisionChance() {
		r.State = RoadCrashed
		return true, nil
	}

	r.Position++
	r.Bet = r.Bet.Mul(decimal.NewFromInt(2))
	r.Multipliers = append(r.Multipliers, r.Multiplier()*2)
	return false, nil
}

// CashOut ends the crossing and returns the escalated bet. Before the
// first lane that is the stake itself.
func (r *Road) CashOut() (decimal.Decimal, error) {
	if r.State != RoadActive {
		return decimal.Zero, ErrRoadOver
	}
	r.State = RoadCashedOut
	return r.Bet, nil
}

// Clone returns an independent copy of the crossing
func (r *Road) Clone() *Road {
	c := *r
	c.Multipliers = slices.Clone(r.Multipliers)
	return &c
}

// Payout is the net result of the crossing so far
func (r *Road) Payout() decimal.Decimal {
	switch r.State {
	case RoadCashedOut:
		return r.Bet.Sub(r.Stake)
	case RoadCrashed:
		return r.Stake.Neg()
	default:
		return decimal.Zero
	}
}
