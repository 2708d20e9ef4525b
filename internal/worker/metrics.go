package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	passesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_passes_total",
			Help: "Scoring passes by result.",
		},
		[]string{"result"},
	)

	passDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoring_pass_duration_seconds",
			Help:    "Wall time of a scoring pass.",
			Buckets: prometheus.ExponentialBuckets(60, 2, 8), //nolint:mnd
		},
	)
)
