// Package games holds the outcome engines and the interactive game state
// machines. Nothing in here touches the ledger or the database.
package games

import (
	"math"
	"math/rand/v2"
)

// RNG is the random source every engine draws from
type RNG interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int                     { return rand.IntN(n) }
func (globalRNG) Float64() float64                   { return rand.Float64() }
func (globalRNG) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRNG draws from the process-wide math/rand/v2 source
var DefaultRNG RNG = globalRNG{}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
