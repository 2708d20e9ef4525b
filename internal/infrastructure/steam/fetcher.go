package steam

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"card_market/pkg/logx"
)

// Doer is the authenticated session every request goes through.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Response is a fully read upstream reply.
type Response struct {
	Status int
	Body   []byte
}

// Fetcher issues GET requests and retries failed ones according to a Backoff.
type Fetcher struct {
	doer  Doer
	sleep Sleeper
}

type FetcherOption func(*Fetcher)

func WithSleeper(sleep Sleeper) FetcherOption {
	return func(f *Fetcher) {
		f.sleep = sleep
	}
}

func NewFetcher(doer Doer, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		doer:  doer,
		sleep: SleepContext,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Get returns the first 200 response, retrying per policy.
func (f *Fetcher) Get(ctx context.Context, rawURL string, policy Backoff) (Response, error) {
	return f.GetValid(ctx, rawURL, policy, nil)
}

// GetValid is Get where a 200 response only counts as success when validate
// accepts its body.
func (f *Fetcher) GetValid(
	ctx context.Context,
	rawURL string,
	policy Backoff,
	validate func([]byte) error,
) (Response, error) {
	endpoint := endpointOf(rawURL)

	for retries := 0; ; retries++ {
		resp, err := f.attempt(ctx, rawURL)
		if err == nil && validate != nil {
			if verr := validate(resp.Body); verr != nil {
				err = fmt.Errorf("%w: %w", ErrTransientFetch, verr)
			}
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, fmt.Errorf("steam.Fetcher.Get: %w", ctxErr)
		}

		outcome := policy.Next(retries, err)
		fetchAttempts.WithLabelValues(endpoint, outcome.Kind.String()).Inc()

		switch outcome.Kind {
		case OutcomeSuccess:
			return resp, nil
		case OutcomeExhausted:
			logger(ctx).Error(
				"upstream retries exhausted",
				slog.String(logx.FieldEndpoint, endpoint),
				slog.Int(logx.FieldAttempt, retries+1),
				slog.Int(logx.FieldStatus, resp.Status),
				logx.Error(err),
			)

			return resp, fmt.Errorf("steam.Fetcher.Get: %w after %d attempts: %w", ErrFetchExhausted, retries+1, err)
		case OutcomeRetry:
		}

		logger(ctx).Log(
			ctx,
			retryLevel(retries+1),
			"upstream request failed, retrying",
			slog.String(logx.FieldEndpoint, endpoint),
			slog.Int(logx.FieldAttempt, retries+1),
			slog.Int(logx.FieldStatus, resp.Status),
			slog.Duration(logx.FieldDelay, outcome.Delay),
			logx.Error(err),
		)

		if err = f.sleep(ctx, outcome.Delay); err != nil {
			return Response{}, fmt.Errorf("steam.Fetcher.Get: %w", err)
		}
	}
}

// Once issues a single attempt without retrying.
func (f *Fetcher) Once(ctx context.Context, rawURL string) (Response, error) {
	resp, err := f.attempt(ctx, rawURL)

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeExhausted
	}

	fetchAttempts.WithLabelValues(endpointOf(rawURL), outcome.String()).Inc()

	if err != nil {
		return resp, fmt.Errorf("steam.Fetcher.Once: %w: %w", ErrFetchExhausted, err)
	}

	return resp, nil
}

// Pause sleeps through the configured sleeper.
func (f *Fetcher) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	return f.sleep(ctx, d)
}

func (f *Fetcher) attempt(ctx context.Context, rawURL string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return Response{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := f.doer.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrTransientFetch, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Status: resp.StatusCode}, fmt.Errorf("%w: io.ReadAll: %w", ErrTransientFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		return Response{Status: resp.StatusCode, Body: body},
			fmt.Errorf("%w: status %d", ErrTransientFetch, resp.StatusCode)
	}

	return Response{Status: resp.StatusCode, Body: body}, nil
}

func retryLevel(retry int) slog.Level {
	switch {
	case retry <= 2: //nolint:mnd
		return slog.LevelInfo
	case retry <= 5: //nolint:mnd
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// SleepContext is the production Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-timer.C:
		return nil
	}
}

func endpointOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}

	switch path := u.Path; {
	case strings.HasPrefix(path, "/search/results"):
		return "search"
	case strings.HasPrefix(path, "/api/appdetails"):
		return "appdetails"
	case strings.HasPrefix(path, "/market/search/render"):
		return "market_search"
	case strings.HasPrefix(path, "/market/listings/"):
		return "listings"
	case strings.HasPrefix(path, "/market/itemordershistogram"):
		return "histogram"
	default:
		return "other"
	}
}
