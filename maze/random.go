package maze

import "math/rand"

// RandomSource yields uniform integers in [0, n).
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// NewSeededSource returns a deterministic RandomSource for seed.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// shuffle permutes moves in place, drawing once per slot from the end of
// the slice towards the front. A four element list always consumes four
// draws: Intn(4), Intn(3), Intn(2), Intn(1).
func shuffle(moves []Move, rnd RandomSource) {
	for counter := len(moves); counter > 0; {
		index := rnd.Intn(counter)
		counter--
		moves[counter], moves[index] = moves[index], moves[counter]
	}
}
