package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Int64n func(n int64) int64
	Bool   func() bool
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // for tests

	return Randomizer{
		Int64n: random.Int63n,
		Bool:   func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
	}
}

// Pick returns a random element of values. values must not be empty.
func Pick[T any](r Randomizer, values []T) T {
	return values[r.Int64n(int64(len(values)))]
}

// Amounts returns n random picks from denominations.
func (r Randomizer) Amounts(denominations []int64, n int) []int64 {
	amounts := make([]int64, n)
	for i := range amounts {
		amounts[i] = Pick(r, denominations)
	}
	return amounts
}
