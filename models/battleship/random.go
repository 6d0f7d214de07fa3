package battleship

import (
	"math/rand"
	"time"
)

// RandomSource is shared by random placement and every AI decision.
// *rand.Rand satisfies it, so tests seed one and get a reproducible game.
type RandomSource interface {
	Intn(n int) int
}

func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// rollSuccess draws uniformly from [1,100] and succeeds below rate.
func rollSuccess(rng RandomSource, rate float64) bool {
	return float64(1+rng.Intn(100)) < rate
}

func choose[T any](rng RandomSource, items []T) T {
	return items[rng.Intn(len(items))]
}
