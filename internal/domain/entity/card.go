package entity

// Card is a resalable trading card belonging to exactly one Game.
type Card struct {
	Name     string `json:"name"`
	HashName string `json:"hashName"`
	Listings int    `json:"listings"`
	// Price is the lowest ask in major currency units.
	Price float64 `json:"price"`
	// InstantPrice is the highest standing bid, 0 when unknown.
	InstantPrice float64 `json:"instantPrice,omitempty"`
}
