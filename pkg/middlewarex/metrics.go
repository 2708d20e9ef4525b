package middlewarex

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zenazn/goji/web/mutil"
)

const routeUnmatched = "unmatched"

var (
	httpRequestsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by route pattern and status.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec( //nolint:gochecknoglobals
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency, by route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Metrics counts requests by chi route pattern, so /v1/games/{appid} stays one
// series regardless of the id.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := mutil.WrapWriter(w)

		next.ServeHTTP(lw, r)

		route := routeUnmatched
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(statusOf(lw))).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// statusOf reports 200 when the handler wrote a body without calling WriteHeader.
func statusOf(lw mutil.WriterProxy) int {
	if status := lw.Status(); status != 0 {
		return status
	}

	return http.StatusOK
}
