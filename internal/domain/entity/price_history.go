package entity

import "time"

// PricePoint is one hourly (or daily, for old sales) bucket of market sales.
type PricePoint struct {
	Time   time.Time
	Price  float64
	Volume int
}
