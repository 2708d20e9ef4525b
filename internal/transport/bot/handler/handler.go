package handler

import (
	"context"

	"card_market/internal/domain/entity"
	"card_market/internal/domain/value"
	"card_market/internal/transport/tasks"
)

type Scanner interface {
	IsRunning() bool
	LastReport() *entity.PassReport
	Refresh(ctx context.Context, appIDs []int64, table value.Table) (entity.SyncResult, error)
	Exclude(ids ...int64)
	Include(id int64)
	IsExcluded(id int64) bool
	Excluded() []int64
}

type Ranking interface {
	Top(ctx context.Context, table value.Table, column value.ReturnColumn, limit int) ([]*entity.Game, error)
}

type Enqueuer interface {
	EnqueueRefresh(ctx context.Context, p tasks.RefreshPayload) (string, error)
}

type Handler struct {
	scanner  Scanner
	ranking  Ranking
	enqueuer Enqueuer
	pageSize int
}

func New(scanner Scanner, ranking Ranking) *Handler {
	return &Handler{
		scanner:  scanner,
		ranking:  ranking,
		pageSize: defaultPageSize,
	}
}

// WithEnqueuer makes /refresh queue an asynq task instead of running inline.
func (h *Handler) WithEnqueuer(e Enqueuer) *Handler {
	h.enqueuer = e
	return h
}

func (h *Handler) WithPageSize(n int) *Handler {
	if n > 0 {
		h.pageSize = n
	}

	return h
}
