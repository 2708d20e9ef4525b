package steam

import (
	"context"
	"strings"
	"time"
)

// Config holds the upstream locations and the regional market parameters.
type Config struct {
	StoreURL       string
	CommunityURL   string
	CountryCode    string
	Currency       int
	Language       string
	RetryInitial   time.Duration
	CrawlerRetries int
	CrawlerPages   int
	HistogramPause time.Duration
	CarefulPause   time.Duration
}

func DefaultConfig() Config {
	return Config{
		StoreURL:       "https://store.steampowered.com",
		CommunityURL:   "https://steamcommunity.com",
		CountryCode:    "ar",
		Currency:       34, //nolint:mnd
		Language:       "spanish",
		RetryInitial:   5 * time.Second, //nolint:mnd
		CrawlerRetries: 0,
		CrawlerPages:   100, //nolint:mnd
		HistogramPause: time.Second,
		CarefulPause:   time.Second,
	}
}

// NameIDCache remembers the listing token of a market item.
type NameIDCache interface {
	Get(ctx context.Context, hashName string) (string, bool)
	Set(ctx context.Context, hashName, nameID string)
}

type nopNameIDCache struct{}

func (nopNameIDCache) Get(context.Context, string) (string, bool) { return "", false }
func (nopNameIDCache) Set(context.Context, string, string)        {}

// Client talks to the store and the community market.
type Client struct {
	fetcher *Fetcher
	cfg     Config
	nameIDs NameIDCache
	now     func() time.Time
}

func NewClient(fetcher *Fetcher, cfg Config) *Client {
	cfg.StoreURL = strings.TrimRight(cfg.StoreURL, "/")
	cfg.CommunityURL = strings.TrimRight(cfg.CommunityURL, "/")

	return &Client{
		fetcher: fetcher,
		cfg:     cfg,
		nameIDs: nopNameIDCache{},
		now:     time.Now,
	}
}

func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

func (c *Client) WithNameIDCache(cache NameIDCache) *Client {
	c.nameIDs = cache
	return c
}

// Pause sleeps d, returning early when ctx is done.
func (c *Client) Pause(ctx context.Context, d time.Duration) error {
	return c.fetcher.Pause(ctx, d)
}

func (c *Client) CarefulPause() time.Duration {
	return c.cfg.CarefulPause
}

func (c *Client) forever() Backoff {
	return Backoff{Initial: c.cfg.RetryInitial}
}
