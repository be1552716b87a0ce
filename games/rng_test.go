package games

// scriptedRNG replays fixed draws and never shuffles
type scriptedRNG struct {
	ints   []int
	floats []float64
}

func (r *scriptedRNG) IntN(n int) int {
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRNG) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRNG) Shuffle(int, func(i, j int)) {}
