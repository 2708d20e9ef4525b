package entity

import "time"

// SyncResult counts what a table sync did with its entries.
type SyncResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// PassReport summarises one scoring pass.
type PassReport struct {
	PassID     string
	StartedAt  time.Time
	FinishedAt time.Time
	Listed     int
	Excluded   int
	Games      SyncResult
	Instant    SyncResult
	Top        []*Game
	Err        string
}

func (r PassReport) Failed() bool {
	return r.Err != ""
}

func (r PassReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
