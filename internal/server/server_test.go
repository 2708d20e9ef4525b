package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"card_market/internal/domain"
	"card_market/internal/domain/entity"
	"card_market/internal/domain/value"
	"card_market/internal/infrastructure/persistence"
	"card_market/internal/server"
	"card_market/internal/transport/tasks"
	"card_market/pkg/dbtest"
	"card_market/pkg/errcodes"
	"card_market/pkg/logx"
	"card_market/pkg/rest"
	"card_market/pkg/tests"
)

type fakeRefresher struct {
	appIDs []int64
	table  value.Table
	err    error
}

func (r *fakeRefresher) Refresh(_ context.Context, appIDs []int64, table value.Table) (entity.SyncResult, error) {
	r.appIDs = appIDs
	r.table = table

	return entity.SyncResult{Updated: len(appIDs) - 1, Skipped: 1}, r.err
}

type fakeEnqueuer struct {
	payloads []tasks.RefreshPayload
}

func (e *fakeEnqueuer) EnqueueRefresh(_ context.Context, p tasks.RefreshPayload) (string, error) {
	e.payloads = append(e.payloads, p)
	return "task-7", nil
}

func seed(t *testing.T) *persistence.GameRepository {
	t.Helper()

	db := dbtest.NewSQLite(t)
	require.NoError(t, persistence.Migrate(context.Background(), db))

	repo := persistence.NewGameRepository(db)

	games := []*entity.Game{
		{AppID: 10, Name: "Ten", Price: 10, LastUpdated: 1700000000, Cards: []entity.Card{{Price: 1}, {Price: 2}, {Price: 3}}, Profit: entity.Profit{Min: -0.913, Avg: -0.826, Med: -0.826}},
		{AppID: 20, Name: "Twenty", Price: 1, LastUpdated: 1700000100, Cards: []entity.Card{{Price: 1.5}, {Price: 1.5}}, Profit: entity.Profit{Min: 0.304, Avg: 0.304, Med: 0.304}},
		{AppID: 30, Name: "Thirty", Price: 2, LastUpdated: 1700000200, Cards: []entity.Card{{Price: 1}, {Price: 3}}, Profit: entity.Profit{Min: -0.565, Avg: -0.13, Med: -0.13}},
	}

	for _, g := range games {
		require.NoError(t, repo.Upsert(context.Background(), value.TableGames, g))
	}

	return repo
}

func newAPI(t *testing.T, srv server.GamesServer) tests.APIClient {
	t.Helper()

	ts := httptest.NewServer(server.NewServer(srv).Handler(logx.NewSensitiveDataMasker(), 1000))
	t.Cleanup(ts.Close)

	return tests.NewAPIClient(ts.URL, ts.Client())
}

func TestGetV1GamesTop(t *testing.T) {
	testCases := []struct {
		name       string
		query      string
		statusCode int
		appIDs     []int64
		code       string
	}{
		{name: "Defaults", query: "", statusCode: http.StatusOK, appIDs: []int64{20, 30, 10}},
		{name: "Limit", query: "?limit=1", statusCode: http.StatusOK, appIDs: []int64{20}},
		{name: "Mean", query: "?order=mean_return&limit=2", statusCode: http.StatusOK, appIDs: []int64{20, 30}},
		{name: "Empty instant table", query: "?table=instant_prices", statusCode: http.StatusOK, appIDs: []int64{}},
		{name: "Bad table", query: "?table=users", statusCode: http.StatusBadRequest, code: errcodes.InvalidTable.String()},
		{name: "Bad order", query: "?order=name", statusCode: http.StatusBadRequest, code: errcodes.InvalidReturnColumn.String()},
		{name: "Bad limit", query: "?limit=1000", statusCode: http.StatusBadRequest, code: errcodes.InvalidLimit.String()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			api := newAPI(t, server.NewGamesServer(seed(t), &fakeRefresher{}))

			var (
				response rest.TopGamesResponse
				apiErr   rest.Error
			)

			resp, err := api.Get(context.Background(), "/v1/games/top"+tc.query, nil, &response, &apiErr)
			rq.NoError(err)
			rq.Equal(tc.statusCode, resp.StatusCode)

			if tc.code != "" {
				rq.Equal(tc.code, string(apiErr.Code))
				rq.NotEmpty(apiErr.SupportID)

				return
			}

			ids := make([]int64, 0, len(response.Games))
			for _, g := range response.Games {
				ids = append(ids, g.AppID)
			}

			rq.Equal(tc.appIDs, ids)
		})
	}
}

func TestGetV1Game(t *testing.T) {
	rq := require.New(t)

	api := newAPI(t, server.NewGamesServer(seed(t), &fakeRefresher{}))

	var game rest.Game

	resp, err := api.Get(context.Background(), "/v1/games/10", nil, &game, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("Ten", game.Name)
	rq.Equal([]float64{1, 2, 3}, game.Cards)
	rq.InDelta(-0.913, game.MinReturn, 1e-9)
	rq.Equal(int64(1700000000), game.LastUpdate.Unix())
	rq.Equal("https://store.steampowered.com/app/10", game.StoreURL)

	var apiErr rest.Error

	resp, err = api.Get(context.Background(), "/v1/games/99", nil, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(errcodes.GameNotFound.String(), string(apiErr.Code))

	resp, err = api.Get(context.Background(), "/v1/games/abc", nil, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(errcodes.InvalidAppID.String(), string(apiErr.Code))
}

func TestPostV1GamesRefresh(t *testing.T) {
	rq := require.New(t)

	refresher := &fakeRefresher{}
	api := newAPI(t, server.NewGamesServer(seed(t), refresher))

	var response rest.RefreshResponse

	resp, err := api.Post(context.Background(), "/v1/games/refresh", nil,
		rest.RefreshRequest{AppIDs: []int64{10, 20, 10}, Instant: true}, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(rest.RefreshStatusDone, response.Status)
	rq.Equal(&rest.SyncResult{Updated: 1, Skipped: 1}, response.Result)
	rq.Equal([]int64{10, 20}, refresher.appIDs)
	rq.Equal(value.TableInstantPrices, refresher.table)

	var apiErr rest.Error

	resp, err = api.Post(context.Background(), "/v1/games/refresh", nil,
		rest.RefreshRequest{}, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(errcodes.ValidationError.String(), string(apiErr.Code))

	refresher.err = domain.NewError(errcodes.RefreshInProgress, "busy")

	resp, err = api.Post(context.Background(), "/v1/games/refresh", nil,
		rest.RefreshRequest{AppIDs: []int64{10}}, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusConflict, resp.StatusCode)
	rq.Equal(errcodes.RefreshInProgress.String(), string(apiErr.Code))
}

func TestPostV1GamesRefreshQueued(t *testing.T) {
	rq := require.New(t)

	refresher := &fakeRefresher{}
	enqueuer := &fakeEnqueuer{}
	api := newAPI(t, server.NewGamesServer(seed(t), refresher).WithEnqueuer(enqueuer))

	var response rest.RefreshResponse

	resp, err := api.Post(context.Background(), "/v1/games/refresh", nil,
		rest.RefreshRequest{AppIDs: []int64{30}}, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusAccepted, resp.StatusCode)
	rq.Equal(rest.RefreshResponse{Status: rest.RefreshStatusQueued, TaskID: "task-7"}, response)
	rq.Equal([]tasks.RefreshPayload{{AppIDs: []int64{30}}}, enqueuer.payloads)
	rq.Nil(refresher.appIDs)
}

type fakeHistory struct {
	hashName string
	since    value.HistoryWindow
	err      error
}

func (h *fakeHistory) PriceHistory(_ context.Context, hashName string, since value.HistoryWindow) ([]entity.PricePoint, error) {
	h.hashName = hashName
	h.since = since

	if h.err != nil {
		return nil, h.err
	}

	return []entity.PricePoint{
		{Time: time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC), Price: 0.9, Volume: 7},
	}, nil
}

func TestGetV1CardHistory(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		history    *fakeHistory
		statusCode int
		code       string
		hashName   string
		since      value.HistoryWindow
	}{
		{
			name:       "Default window",
			path:       "/v1/cards/440-Scout/history",
			history:    &fakeHistory{},
			statusCode: http.StatusOK,
			hashName:   "440-Scout",
			since:      value.HistoryGeneral,
		},
		{
			name:       "Encoded name, last week",
			path:       "/v1/cards/440-Spy%20%2F%20Sapper/history?since=last-week",
			history:    &fakeHistory{},
			statusCode: http.StatusOK,
			hashName:   "440-Spy%20%2F%20Sapper",
			since:      value.HistoryLastWeek,
		},
		{
			name:       "Bad window",
			path:       "/v1/cards/440-Scout/history?since=forever",
			history:    &fakeHistory{},
			statusCode: http.StatusBadRequest,
			code:       errcodes.InvalidHistory.String(),
		},
		{
			name:       "Upstream failure",
			path:       "/v1/cards/440-Scout/history",
			history:    &fakeHistory{err: errors.New("no history")},
			statusCode: http.StatusInternalServerError,
			code:       errcodes.InternalServerError.String(),
		},
		{
			name:       "Not wired",
			path:       "/v1/cards/440-Scout/history",
			statusCode: http.StatusNotFound,
			code:       errcodes.NotFound.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			srv := server.NewGamesServer(seed(t), &fakeRefresher{})
			if tc.history != nil {
				srv = srv.WithPriceHistory(tc.history)
			}

			api := newAPI(t, srv)

			var (
				response rest.PriceHistoryResponse
				apiErr   rest.Error
			)

			resp, err := api.Get(context.Background(), tc.path, nil, &response, &apiErr)
			rq.NoError(err)
			rq.Equal(tc.statusCode, resp.StatusCode)

			if tc.code != "" {
				rq.Equal(tc.code, string(apiErr.Code))
				return
			}

			rq.Equal(tc.hashName, tc.history.hashName)
			rq.Equal(tc.since, tc.history.since)
			rq.Equal(tc.hashName, response.HashName)
			rq.Equal(tc.since.String(), response.Since)
			rq.Equal([]rest.PricePoint{
				{Time: time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC), Price: 0.9, Volume: 7},
			}, response.Points)
		})
	}
}
