package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"card_market/internal/domain"
	"card_market/internal/domain/entity"
	"card_market/internal/domain/value"
	"card_market/internal/transport/tasks"
	"card_market/pkg/errcodes"
	"card_market/pkg/httpx/reply"
	"card_market/pkg/httpx/req"
	"card_market/pkg/lox"
	"card_market/pkg/rest"
)

type gameRepository interface {
	GetByID(ctx context.Context, table value.Table, appID int64) (*entity.Game, error)
	Top(ctx context.Context, table value.Table, column value.ReturnColumn, limit int) ([]*entity.Game, error)
}

type refresher interface {
	Refresh(ctx context.Context, appIDs []int64, table value.Table) (entity.SyncResult, error)
}

type enqueuer interface {
	EnqueueRefresh(ctx context.Context, p tasks.RefreshPayload) (string, error)
}

type priceHistory interface {
	PriceHistory(ctx context.Context, hashName string, since value.HistoryWindow) ([]entity.PricePoint, error)
}

type GamesServer struct {
	games     gameRepository
	refresher refresher
	enqueuer  enqueuer
	history   priceHistory
}

func NewGamesServer(games gameRepository, refresher refresher) GamesServer {
	return GamesServer{
		games:     games,
		refresher: refresher,
	}
}

// WithEnqueuer makes refresh requests asynchronous.
func (s GamesServer) WithEnqueuer(e enqueuer) GamesServer {
	s.enqueuer = e
	return s
}

func (s GamesServer) WithPriceHistory(h priceHistory) GamesServer {
	s.history = h
	return s
}

func (s GamesServer) getV1GamesTop(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	query := r.URL.Query()

	table, err := value.ParseTable(query.Get("table"))
	if err != nil {
		return fmt.Errorf("value.ParseTable: %w", err)
	}

	column, err := value.ParseReturnColumn(query.Get("order"))
	if err != nil {
		return fmt.Errorf("value.ParseReturnColumn: %w", err)
	}

	limit, err := value.ParseLimit(query.Get("limit"))
	if err != nil {
		return fmt.Errorf("value.ParseLimit: %w", err)
	}

	games, err := s.games.Top(ctx, table, column, limit)
	if err != nil {
		return fmt.Errorf("games.Top: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.TopGamesResponse{
		Table: table.String(),
		Order: column.String(),
		Games: lox.Map(games, func(g *entity.Game) rest.Game {
			return newRESTGame(g, table.Instant())
		}),
	})

	return nil
}

func (s GamesServer) getV1Game(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	appID, err := value.ParseAppID(chi.URLParam(r, "appid"))
	if err != nil {
		return fmt.Errorf("value.ParseAppID: %w", err)
	}

	table, err := value.ParseTable(r.URL.Query().Get("table"))
	if err != nil {
		return fmt.Errorf("value.ParseTable: %w", err)
	}

	game, err := s.games.GetByID(ctx, table, appID)
	if err != nil {
		return fmt.Errorf("games.GetByID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTGame(game, table.Instant()))

	return nil
}

func (s GamesServer) postV1GamesRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RefreshRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	appIDs := lo.Uniq(request.AppIDs)

	if s.enqueuer != nil {
		taskID, err := s.enqueuer.EnqueueRefresh(ctx, tasks.RefreshPayload{AppIDs: appIDs, Instant: request.Instant})
		if err != nil {
			return fmt.Errorf("enqueuer.EnqueueRefresh: %w", err)
		}

		reply.JSON(ctx, w, http.StatusAccepted, rest.RefreshResponse{
			Status: rest.RefreshStatusQueued,
			TaskID: taskID,
		})

		return nil
	}

	table := value.TableGames
	if request.Instant {
		table = value.TableInstantPrices
	}

	result, err := s.refresher.Refresh(ctx, appIDs, table)
	if err != nil {
		return fmt.Errorf("refresher.Refresh: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.RefreshResponse{
		Status: rest.RefreshStatusDone,
		Result: newRESTSyncResult(result),
	})

	return nil
}

func (s GamesServer) getV1CardHistory(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if s.history == nil {
		return domain.NewError(errcodes.NotFound, "price history is not available")
	}

	name, err := url.PathUnescape(chi.URLParam(r, "hashName"))
	if err != nil || name == "" {
		return domain.NewError(errcodes.InvalidHashName, "invalid market hash name")
	}

	since, err := value.ParseHistoryWindow(r.URL.Query().Get("since"))
	if err != nil {
		return fmt.Errorf("value.ParseHistoryWindow: %w", err)
	}

	hashName := url.PathEscape(name)

	points, err := s.history.PriceHistory(ctx, hashName, since)
	if err != nil {
		return fmt.Errorf("history.PriceHistory: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.PriceHistoryResponse{
		HashName: hashName,
		Since:    since.String(),
		Points:   lox.Map(points, newRESTPricePoint),
	})

	return nil
}
