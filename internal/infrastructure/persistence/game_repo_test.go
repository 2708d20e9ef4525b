package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"card_market/internal/domain"
	"card_market/internal/domain/entity"
	"card_market/internal/domain/value"
	"card_market/internal/infrastructure/persistence"
	"card_market/pkg/dbtest"
	"card_market/pkg/errcodes"
)

func newRepo(t *testing.T) *persistence.GameRepository {
	t.Helper()

	return persistence.NewGameRepository(dbtest.NewSQLite(t, "migrations/001_init.sql"))
}

func game(appID int64, minReturn float64) *entity.Game {
	return &entity.Game{
		AppID:       appID,
		Name:        "Game",
		Price:       10,
		LastUpdated: 1700000000,
		HasCards:    true,
		Cards:       []entity.Card{{Price: 1, InstantPrice: 0.9}, {Price: 2, InstantPrice: 1.8}, {Price: 3, InstantPrice: 2.7}},
		Profit:      entity.Profit{Min: minReturn, Avg: minReturn + 0.1, Med: minReturn + 0.2},
	}
}

func TestGameRepositoryUpsertIdempotent(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	repo := newRepo(t)

	g := game(440, -0.913)

	rq.NoError(repo.Upsert(ctx, value.TableGames, g))
	rq.NoError(repo.Upsert(ctx, value.TableGames, g))

	n, err := repo.Count(ctx, value.TableGames)
	rq.NoError(err)
	rq.Equal(1, n)

	stored, err := repo.GetByID(ctx, value.TableGames, 440)
	rq.NoError(err)
	rq.Equal(int64(440), stored.AppID)
	rq.InDelta(-0.913, stored.Profit.Min, 1e-9)
	rq.Equal([]float64{1, 2, 3}, stored.CardPrices(false))
	rq.Equal(int64(1700000000), stored.LastUpdated)

	g.Name = "Renamed"
	g.Profit.Min = 0.5
	g.LastUpdated = 1800000000
	rq.NoError(repo.Upsert(ctx, value.TableGames, g))

	stored, err = repo.GetByID(ctx, value.TableGames, 440)
	rq.NoError(err)
	rq.Equal("Renamed", stored.Name)
	rq.InDelta(0.5, stored.Profit.Min, 1e-9)
	rq.Equal(int64(1800000000), stored.LastUpdated)

	n, err = repo.Count(ctx, value.TableGames)
	rq.NoError(err)
	rq.Equal(1, n)
}

func TestGameRepositoryTablesAreSeparate(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	repo := newRepo(t)

	rq.NoError(repo.Upsert(ctx, value.TableInstantPrices, game(440, 0.1)))

	stored, err := repo.GetByID(ctx, value.TableInstantPrices, 440)
	rq.NoError(err)
	rq.Equal([]float64{0.9, 1.8, 2.7}, stored.CardPrices(true))

	_, err = repo.GetByID(ctx, value.TableGames, 440)
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.GameNotFound, code)
}

func TestGameRepositoryTop(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	repo := newRepo(t)

	for i, r := range []float64{-0.5, 0.3, 0.1, 0.3, -0.9} {
		rq.NoError(repo.Upsert(ctx, value.TableGames, game(int64(i+1), r)))
	}

	ids, err := repo.TopAppIDs(ctx, value.TableGames, value.ReturnMin, 3)
	rq.NoError(err)
	rq.Equal([]int64{2, 4, 3}, ids)

	games, err := repo.Top(ctx, value.TableGames, value.ReturnMedian, 10)
	rq.NoError(err)
	rq.Len(games, 5)
	rq.InDelta(0.5, games[0].Profit.Med, 1e-9)

	_, err = repo.Top(ctx, value.Table("games; DROP TABLE games"), value.ReturnMin, 1)
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.InvalidTable, code)

	_, err = repo.Top(ctx, value.TableGames, value.ReturnColumn("price"), 1)
	code, ok = domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.InvalidReturnColumn, code)
}
