package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"card_market/pkg/contextx"
	"card_market/pkg/logx"
)

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// PrometheusServer exposes the default registry on /metrics, together with a
// constant build_info series labelled by application name and version.
type PrometheusServer struct {
	listenAddress string
	registry      *prometheus.Registry
	gatherer      prometheus.Gatherer
}

func NewPrometheusServer(
	listenAddress string,
) PrometheusServer {
	registry := prometheus.NewRegistry()

	return PrometheusServer{
		listenAddress: listenAddress,
		registry:      registry,
		gatherer:      prometheus.Gatherers{prometheus.DefaultGatherer, registry},
	}
}

// WithBuildInfo registers build_info{app,version} = 1.
func (p PrometheusServer) WithBuildInfo(app, version string) PrometheusServer {
	buildInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "build_info",
		Help:        "Constant 1, labelled with the running build.",
		ConstLabels: prometheus.Labels{"app": app, "version": version},
	})
	buildInfo.Set(1)

	p.registry.MustRegister(buildInfo)

	return p
}

func (p PrometheusServer) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{
		ErrorLog:          slog.NewLogLogger(logger(ctx).Handler(), slog.LevelError),
		EnableOpenMetrics: true,
	}))

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              p.listenAddress,
		Handler:           mux,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info("prometheus server started", slog.String("address", p.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("prometheus server stopped")

	return nil
}
