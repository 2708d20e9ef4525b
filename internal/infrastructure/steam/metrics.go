package steam

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var fetchAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "steam_fetch_attempts_total",
		Help: "Upstream GET attempts by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)
