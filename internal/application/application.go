package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"card_market/internal/config"
	"card_market/internal/domain/service/scoring"
	"card_market/internal/infrastructure/notifier"
	"card_market/internal/infrastructure/persistence"
	"card_market/internal/infrastructure/publisher"
	"card_market/internal/server"
	"card_market/internal/transport/bot"
	"card_market/internal/transport/bot/handler"
	"card_market/internal/transport/tasks"
	"card_market/internal/worker"
	"card_market/pkg/application/connectors"
	"card_market/pkg/application/modules"
	"card_market/pkg/contextx"
	"card_market/pkg/logx"
	"card_market/pkg/probe"
)

const (
	httpServerReadHeaderTimeout = 5 * time.Second
	httpLogFieldMaxLen          = 2048
)

// Init loads the configuration and installs the configured logger as the
// default one and into ctx.
func Init(ctx context.Context) (context.Context, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, config.Config{}, fmt.Errorf("config.Load: %w", err)
	}

	log := logx.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	slog.SetDefault(log)

	return contextx.WithLogger(ctx, log), cfg, nil
}

// OpenStore connects to the score store and applies migrations.
func OpenStore(ctx context.Context, cfg config.Store) (*connectors.Database, *persistence.GameRepository, error) {
	database := &connectors.Database{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}

	db := database.Client(ctx)

	if err := persistence.Migrate(ctx, db); err != nil {
		database.Close(ctx)
		return nil, nil, fmt.Errorf("persistence.Migrate: %w", err)
	}

	return database, persistence.NewGameRepository(db), nil
}

// NewSyncer wires the scoring pipeline from the scoring config.
func NewSyncer(cfg config.Scoring, market scoring.Market, repo scoring.Repository) (*scoring.Syncer, error) {
	policy, err := scoring.ParseEmptyPolicy(cfg.EmptyPolicy)
	if err != nil {
		return nil, fmt.Errorf("scoring.ParseEmptyPolicy: %w", err)
	}

	calculator := scoring.NewCalculator(market).WithInstantRetries(cfg.InstantRetries)

	return scoring.NewSyncer(calculator, repo).
		WithEmptyPolicy(policy).
		WithFastModeLimit(cfg.FastModeLimit), nil
}

//nolint:funlen
func Run(ctx context.Context) error {
	ctx, cfg, err := Init(ctx)
	if err != nil {
		return err
	}

	database, repo, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	var (
		redisClient *redis.Client
		readiness   = []probe.ReadinessCheck{database.Client(ctx).PingContext}
	)

	if cfg.Redis.Enabled() {
		rc := &connectors.Redis{
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			Address:        cfg.Redis.Address,
			DatabaseNumber: cfg.Redis.DB,
			PoolSize:       cfg.Redis.PoolSize,
		}
		redisClient = rc.Client(ctx)
		readiness = append(readiness, rc.Ping)

		defer rc.Close(ctx)
	}

	steamClient := NewSteamClient(ctx, cfg.Steam, redisClient)

	syncer, err := NewSyncer(cfg.Scoring, steamClient, repo)
	if err != nil {
		return err
	}

	if cfg.Kafka.Enabled() {
		kafka := publisher.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := kafka.Close(); err != nil {
				logger(ctx).Error("kafka.Close", logx.Error(err))
			}
		}()

		syncer.WithPublisher(kafka)
	}

	scanner := worker.NewPassScanner(steamClient, syncer, repo).
		WithMaxPrice(cfg.Steam.MaxPrice).
		WithTopN(cfg.Scoring.InstantTopN)
	scanner.Exclude(cfg.Scoring.ExcludeAppIDs...)

	if cfg.Bot.Enabled() && cfg.Bot.ChatID != 0 {
		alerts, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		scanner.WithNotifier(alerts.WithTopN(cfg.Bot.ReportN))
	}

	gamesServer := server.NewGamesServer(repo, scanner).WithPriceHistory(steamClient)
	botHandler := handler.New(scanner, repo)

	var (
		redisOpt asynq.RedisClientOpt
		adminBot *bot.Bot
	)

	if cfg.Redis.Enabled() {
		redisOpt = asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}

		enqueuer := tasks.NewEnqueuer(redisOpt)
		defer enqueuer.Close()

		gamesServer = gamesServer.WithEnqueuer(enqueuer)
		botHandler = botHandler.WithEnqueuer(enqueuer)
	}

	if cfg.Bot.Enabled() {
		adminBot, err = bot.New(cfg.Bot.Token, cfg.Bot.Admins, botHandler)
		if err != nil {
			return fmt.Errorf("bot.New: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Server.ProbeAddr,
		Checks:        readiness,
	}.Run(ctx, g)

	modules.MetricServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Server.MetricsAddr,
	}.Run(ctx, g)

	if cfg.Redis.Enabled() {
		modules.AsynqServer{
			RedisUsername:   redisOpt.Username,
			RedisPassword:   redisOpt.Password,
			RedisAddress:    redisOpt.Addr,
			RedisDB:         redisOpt.DB,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}.Run(ctx, g, tasks.Queues(), tasks.NewHandler(scanner).Handlers()...)
	}

	modules.HTTPServer{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.Server.Addr,
		Handler:           server.NewServer(gamesServer).Handler(logx.NewSensitiveDataMasker(), httpLogFieldMaxLen),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	if cfg.Scheduler.Enabled {
		scheduler := worker.NewScheduler(scanner, cfg.Scheduler.Spec).
			WithRunOnStart(cfg.Scheduler.RunOnStart)

		g.Go(func() error {
			if err := scheduler.Run(ctx); err != nil {
				return fmt.Errorf("scheduler.Run: %w", err)
			}

			return nil
		})
	}

	if adminBot != nil {
		g.Go(func() error {
			if err := adminBot.Run(ctx); err != nil {
				return fmt.Errorf("bot.Run: %w", err)
			}

			return nil
		})
	}

	logger(ctx).Info("application started")

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	return nil
}
