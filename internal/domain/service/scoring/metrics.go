package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultUpdated = "updated"
	resultSkipped = "skipped"
	resultFailed  = "failed"
)

//nolint:gochecknoglobals
var scoredEntries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "scoring_entries_total",
		Help: "Catalog entries processed by the database sync, by table and result.",
	},
	[]string{"table", "result"},
)
