package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"card_market/internal/domain"
	"card_market/internal/domain/entity"
	"card_market/internal/domain/value"
	"card_market/pkg/errcodes"
)

// GameRepository stores scored games. Table and column names are only ever
// taken from validated value types.
type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Upsert inserts the game row or overwrites every column of the existing one.
// Each call commits on its own.
func (r *GameRepository) Upsert(ctx context.Context, table value.Table, game *entity.Game) error {
	if _, err := value.ParseTable(table.String()); err != nil {
		return err
	}

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO ` + table.String() + ` (
				appid, name, price, min_return, mean_return,
				median_return, cards_list, last_update
			) VALUES (
				:appid, :name, :price, :min_return, :mean_return,
				:median_return, :cards_list, :last_update
			)
			ON CONFLICT (appid) DO UPDATE SET
				name = excluded.name,
				price = excluded.price,
				min_return = excluded.min_return,
				mean_return = excluded.mean_return,
				median_return = excluded.median_return,
				cards_list = excluded.cards_list,
				last_update = excluded.last_update`

		if _, err := tx.NamedExecContext(ctx, query, fromGame(game, table.Instant())); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, fmt.Sprintf("failed to upsert game %d", game.AppID))
		}

		return nil
	})
}

func (r *GameRepository) GetByID(ctx context.Context, table value.Table, appID int64) (*entity.Game, error) {
	if _, err := value.ParseTable(table.String()); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT * FROM ` + table.String() + ` WHERE appid = ?`)

	var schema gameSchema
	if err := r.db.GetContext(ctx, &schema, query, appID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.GameNotFound, fmt.Sprintf("game %d not found in %s", appID, table))
		}

		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get game")
	}

	return schema.toDomain(table.Instant()), nil
}

// Top returns at most limit games ordered by column, best first.
func (r *GameRepository) Top(
	ctx context.Context,
	table value.Table,
	column value.ReturnColumn,
	limit int,
) ([]*entity.Game, error) {
	if _, err := value.ParseTable(table.String()); err != nil {
		return nil, err
	}

	if _, err := value.ParseReturnColumn(column.String()); err != nil {
		return nil, err
	}

	query := r.db.Rebind(
		`SELECT * FROM ` + table.String() + ` ORDER BY ` + column.String() + ` DESC, appid ASC LIMIT ?`,
	)

	var schemas []gameSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list top games")
	}

	games := make([]*entity.Game, len(schemas))
	for i := range schemas {
		games[i] = schemas[i].toDomain(table.Instant())
	}

	return games, nil
}

// TopAppIDs is Top reduced to identifiers.
func (r *GameRepository) TopAppIDs(
	ctx context.Context,
	table value.Table,
	column value.ReturnColumn,
	limit int,
) ([]int64, error) {
	games, err := r.Top(ctx, table, column, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(games))
	for i, g := range games {
		ids[i] = g.AppID
	}

	return ids, nil
}

func (r *GameRepository) Count(ctx context.Context, table value.Table) (int, error) {
	if _, err := value.ParseTable(table.String()); err != nil {
		return 0, err
	}

	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table.String()); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count games")
	}

	return n, nil
}
