package middlewarex

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"card_market/pkg/httpx/reply"
	"card_market/pkg/logx"
)

var panicsTotal = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
	Name: "http_handler_panics_total",
	Help: "Panics recovered in HTTP handlers.",
})

// Recovery turns a handler panic into a 500 with the usual error body, so the
// caller still gets a support id to quote.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint,goerr113
				panic(rec)
			}

			panicsTotal.Inc()

			logger(ctx).Error(
				"panic in handler",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.Error(ctx, w, fmt.Errorf("panic: %v", rec)) //nolint:goerr113
		}()

		next.ServeHTTP(w, r)
	})
}
