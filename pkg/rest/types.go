package rest

import "time"

type Game struct {
	AppID        int64     `json:"appId"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	MinReturn    float64   `json:"minReturn"`
	MeanReturn   float64   `json:"meanReturn"`
	MedianReturn float64   `json:"medianReturn"`
	Cards        []float64 `json:"cards"`
	LastUpdate   time.Time `json:"lastUpdate"`
	StoreURL     string    `json:"storeUrl"`
}

type TopGamesResponse struct {
	Table string `json:"table"`
	Order string `json:"order"`
	Games []Game `json:"games"`
}

// RefreshRequest Rescore the given apps outside the schedule
type RefreshRequest struct {
	AppIDs  []int64 `json:"appIds" validate:"required,min=1,max=50,dive,gt=0"`
	Instant bool    `json:"instant"`
}

type SyncResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// RefreshResponse Status is "queued" with TaskID, or "done" with Result
type RefreshResponse struct {
	Status string      `json:"status"`
	TaskID string      `json:"taskId,omitempty"`
	Result *SyncResult `json:"result,omitempty"`
}

// Error Error model
type Error struct {
	// Code Error code
	Code ErrorCode `json:"code"`

	// Message Human readable description
	Message string `json:"message"`

	// SupportID Trace id to quote when reporting the problem
	SupportID string `json:"supportId"`
}

// ErrorCode Error code
type ErrorCode string

const (
	RefreshStatusQueued = "queued"
	RefreshStatusDone   = "done"
)

type PricePoint struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Volume int       `json:"volume"`
}

// PriceHistoryResponse Sales of one card, oldest first
type PriceHistoryResponse struct {
	HashName string       `json:"hashName"`
	Since    string       `json:"since"`
	Points   []PricePoint `json:"points"`
}
