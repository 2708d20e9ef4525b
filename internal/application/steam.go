package application

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/redis/go-redis/v9"

	"card_market/internal/config"
	"card_market/internal/infrastructure/cache"
	"card_market/internal/infrastructure/steam"
	"card_market/pkg/httpx"
	"card_market/pkg/logx"
)

const httpDumpMaxLen = 4096

// NewSteamClient builds the market client over an authenticated session.
// Listing tokens are cached in redis when a client is given, in memory
// otherwise.
func NewSteamClient(ctx context.Context, cfg config.Steam, redisClient *redis.Client) *steam.Client {
	var transport http.RoundTripper = httpx.NewSessionRoundTripper(
		http.DefaultTransport,
		httpx.Session{
			UserAgent: cfg.UserAgent,
			Cookies:   httpx.ParseCookies(cfg.Cookies),
		},
	)

	if cfg.DebugHTTP {
		transport = httpx.NewLoggingRoundTripper(
			transport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(httpDumpMaxLen),
		)
	}

	// cookiejar.New only fails on a broken public suffix list, nil has none
	jar, _ := cookiejar.New(nil) //nolint:errcheck

	httpClient := &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   cfg.RequestTimeout,
	}

	var nameIDs steam.NameIDCache = cache.NewMemoryNameIDs(cfg.NameIDTTL)
	if redisClient != nil {
		nameIDs = cache.NewRedisNameIDs(redisClient, cfg.NameIDTTL)
	}

	logger(ctx).Debug("steam client configured")

	return steam.NewClient(
		steam.NewFetcher(httpClient),
		steam.Config{
			StoreURL:       cfg.StoreURL,
			CommunityURL:   cfg.CommunityURL,
			CountryCode:    cfg.CountryCode,
			Currency:       cfg.Currency,
			Language:       cfg.Language,
			RetryInitial:   cfg.RetryInitial,
			CrawlerRetries: cfg.CrawlerRetries,
			CrawlerPages:   cfg.CrawlerPages,
			HistogramPause: cfg.HistogramPause,
			CarefulPause:   time.Second,
		},
	).WithNameIDCache(nameIDs)
}
