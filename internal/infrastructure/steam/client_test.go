package steam_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"card_market/internal/infrastructure/steam"
)

func newTestClient(t *testing.T, handler http.Handler) (*steam.Client, *sleepRecorder) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	recorder := &sleepRecorder{}

	cfg := steam.DefaultConfig()
	cfg.StoreURL = srv.URL
	cfg.CommunityURL = srv.URL + "/"
	cfg.RetryInitial = 5 * time.Second

	fetcher := steam.NewFetcher(srv.Client(), steam.WithSleeper(recorder.sleep))

	return steam.NewClient(fetcher, cfg), recorder
}
