package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"card_market/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	rq := require.New(t)

	cfg, err := config.Load()
	rq.NoError(err)

	rq.Equal("sqlite", cfg.Store.Driver)
	rq.Equal("ar", cfg.Steam.CountryCode)
	rq.Equal(34, cfg.Steam.Currency)
	rq.InDelta(16.0, cfg.Steam.MaxPrice, 0)
	rq.Equal(5*time.Second, cfg.Steam.RetryInitial)
	rq.Equal(time.Second, cfg.Steam.HistogramPause)
	rq.Equal(100, cfg.Steam.CrawlerPages)
	rq.Equal("skip", cfg.Scoring.EmptyPolicy)
	rq.Equal(10, cfg.Scoring.InstantTopN)
	rq.Equal(250, cfg.Scoring.FastModeLimit)
	rq.Equal("@every 1h", cfg.Scheduler.Spec)
	rq.False(cfg.Redis.Enabled())
	rq.False(cfg.Kafka.Enabled())
	rq.False(cfg.Bot.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	rq := require.New(t)

	t.Setenv("STORE_DRIVER", "pgx")
	t.Setenv("SCORING_EXCLUDE_APPIDS", "10,20,30")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("STEAM_COOKIES", `"sessionid=abc; steamLoginSecure=xyz"`)
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := config.Load()
	rq.NoError(err)

	rq.Equal("pgx", cfg.Store.Driver)
	rq.Equal([]int64{10, 20, 30}, cfg.Scoring.ExcludeAppIDs)
	rq.Equal([]string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	rq.Equal("sessionid=abc; steamLoginSecure=xyz", cfg.Steam.Cookies)
	rq.True(cfg.Redis.Enabled())
	rq.True(cfg.Kafka.Enabled())
}
