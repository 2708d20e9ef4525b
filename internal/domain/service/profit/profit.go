package profit

import (
	"sort"
	"strconv"

	"card_market/internal/domain/entity"
)

// Commission is the marketplace fee withheld from every sale.
const Commission = 0.1304

const precision = 3

// CardsDropped is the number of cards a full set owner receives by playing.
func CardsDropped(n int) int {
	if n == 5 { //nolint:mnd
		return 3
	}

	return n / 2 //nolint:mnd
}

// Mean is the arithmetic mean; 0 for an empty slice.
func Mean(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	var sum float64
	for _, p := range prices {
		sum += p
	}

	return sum / float64(len(prices))
}

// Median of prices sorted ascending. The input is not modified.
func Median(prices []float64) float64 {
	n := len(prices)
	if n == 0 {
		return 0
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2 //nolint:mnd
}

// Round rounds the exact binary value of x to three decimals, ties to even.
// -0.9125 is stored as -0.91249999... and therefore rounds to -0.912.
func Round(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', precision, 64), 64)
	if err != nil {
		return x
	}

	return r
}

// Return is the expected ratio earned by buying a game at price and selling
// every dropped card at p.
func Return(p float64, dropped int, price float64) float64 {
	if price == 0 {
		return 0
	}

	return Round(p*float64(dropped)*(1-Commission)/price - 1)
}

// Compute derives the profit record from the card prices of a game. It
// returns the zero record when price is 0 or there are no cards.
func Compute(price float64, prices []float64) entity.Profit {
	if price == 0 || len(prices) == 0 {
		return entity.Profit{}
	}

	dropped := CardsDropped(len(prices))

	lowest := prices[0]
	for _, p := range prices[1:] {
		if p < lowest {
			lowest = p
		}
	}

	return entity.Profit{
		Min: Return(lowest, dropped, price),
		Avg: Return(Mean(prices), dropped, price),
		Med: Return(Median(prices), dropped, price),
	}
}
