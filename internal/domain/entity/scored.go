package entity

import (
	"time"

	"card_market/internal/domain/value"
)

// GameScored is emitted after a scored game row commits.
type GameScored struct {
	Table    value.Table `json:"table"`
	AppID    int64       `json:"appId"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Profit   Profit      `json:"profit"`
	Cards    []float64   `json:"cards"`
	ScoredAt time.Time   `json:"scoredAt"`
}
