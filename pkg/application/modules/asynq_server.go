package modules

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

type AsynqQueues map[string]int

type AsynqHandler struct {
	Pattern string
	Handle  func(context.Context, *asynq.Task) error
}

// AsynqServer processes background tasks. Concurrency defaults to one
// worker so tasks run one at a time.
type AsynqServer struct {
	RedisUsername   string
	RedisPassword   string
	RedisAddress    string
	RedisDB         int
	Concurrency     int
	ShutdownTimeout time.Duration
}

func (s AsynqServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	queues AsynqQueues,
	handlers ...AsynqHandler,
) {
	g.Go(func() error {
		redisConnection := asynq.RedisClientOpt{
			Addr:     s.RedisAddress,
			Username: s.RedisUsername,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		}

		worker := asynq.NewServer(redisConnection, asynq.Config{
			BaseContext:     func() context.Context { return ctx },
			Queues:          queues,
			Concurrency:     max(s.Concurrency, 1),
			ShutdownTimeout: s.ShutdownTimeout,
			Logger:          asynqLogger{logger: logger(ctx)},
		})

		mux := asynq.NewServeMux()

		for _, h := range handlers {
			mux.HandleFunc(h.Pattern, h.Handle)
		}

		logger(ctx).Info("asynq server started", slog.String("redis-address", s.RedisAddress), slog.Int("redis-db", s.RedisDB))

		if err := worker.Start(mux); err != nil {
			return fmt.Errorf("asynqServer.Start: %w", err)
		}

		<-ctx.Done()
		worker.Shutdown()

		logger(ctx).Info("asynq server stopped", slog.String("redis-address", s.RedisAddress), slog.Int("redis-db", s.RedisDB))

		return nil
	})
}

type asynqLogger struct {
	logger *slog.Logger
}

func (l asynqLogger) Debug(args ...any) { l.logger.Debug(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any)  { l.logger.Info(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any)  { l.logger.Warn(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.logger.Error(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.logger.Error(fmt.Sprint(args...)) }
