package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	IntN    func(n int) int
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		IntN:    random.Intn,
	}
}

// Prices returns n prices in major units with two decimals, each in (0, maxPrice].
func (r Randomizer) Prices(n int, maxPrice float64) []float64 {
	prices := make([]float64, n)

	for i := range prices {
		cents := r.IntN(int(maxPrice*100)) + 1 //nolint:mnd
		prices[i] = float64(cents) / 100       //nolint:mnd
	}

	return prices
}
