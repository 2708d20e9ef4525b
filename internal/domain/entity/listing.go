package entity

// Listing is a discounted store search result.
type Listing struct {
	AppID int64
	Price float64
}
