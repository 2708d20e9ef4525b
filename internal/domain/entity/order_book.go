package entity

type OrderLevel struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderBook is the aggregated bid/ask curve of one market item.
type OrderBook struct {
	HighestBuyOrder float64      `json:"highestBuyOrder"`
	LowestSellOrder float64      `json:"lowestSellOrder"`
	BuyOrders       []OrderLevel `json:"buyOrders"`
	SellOrders      []OrderLevel `json:"sellOrders"`
}
