package entity

import (
	"strconv"
	"strings"
)

// Game is a store catalog entry together with its card set and the profit
// estimate derived from it.
type Game struct {
	AppID       int64
	Name        string
	Price       float64
	IsFree      bool
	LastUpdated int64
	HasCards    bool
	Cards       []Card
	Profit      Profit
}

// Profit holds the expected return ratios, each rounded to three decimals.
type Profit struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	Med float64 `json:"med"`
}

// Empty reports whether the entry has nothing worth persisting.
func (g Game) Empty() bool {
	return g.Price == 0 || len(g.Cards) == 0
}

// CardPrices returns the prices used for scoring, in card order.
func (g Game) CardPrices(instant bool) []float64 {
	prices := make([]float64, len(g.Cards))

	for i, c := range g.Cards {
		if instant {
			prices[i] = c.InstantPrice
		} else {
			prices[i] = c.Price
		}
	}

	return prices
}

// CardsList renders prices as the ", "-joined column value.
func CardsList(prices []float64) string {
	parts := make([]string, len(prices))

	for i, p := range prices {
		parts[i] = strconv.FormatFloat(p, 'f', -1, 64)
	}

	return strings.Join(parts, ", ")
}

// ParseCardsList is the inverse of CardsList. Unparsable tokens are skipped.
func ParseCardsList(s string) []float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var prices []float64

	for _, part := range strings.Split(s, ",") {
		p, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			continue
		}

		prices = append(prices, p)
	}

	return prices
}
