package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"card_market/internal/domain/entity"
	"card_market/internal/domain/value"
	"card_market/pkg/application/modules"
	"card_market/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	TypeRefresh  = "games:refresh"
	QueueDefault = "default"

	refreshMaxRetry = 3
	refreshTimeout  = 2 * time.Hour
)

// Queues served by the asynq worker, with their priorities.
func Queues() modules.AsynqQueues {
	return modules.AsynqQueues{QueueDefault: 1}
}

type RefreshPayload struct {
	AppIDs  []int64 `json:"appIds"`
	Instant bool    `json:"instant"`
}

func (p RefreshPayload) Table() value.Table {
	if p.Instant {
		return value.TableInstantPrices
	}

	return value.TableGames
}

func NewRefreshTask(p RefreshPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(
		TypeRefresh,
		payload,
		asynq.MaxRetry(refreshMaxRetry),
		asynq.Timeout(refreshTimeout),
		asynq.Queue(QueueDefault),
	), nil
}

type taskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Enqueuer hands refresh requests to the asynq worker.
type Enqueuer struct {
	client taskClient
}

func NewEnqueuer(opt asynq.RedisClientOpt) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(opt)}
}

func NewEnqueuerWithClient(client taskClient) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueRefresh returns the id of the queued task.
func (e *Enqueuer) EnqueueRefresh(ctx context.Context, p RefreshPayload) (string, error) {
	task, err := NewRefreshTask(p)
	if err != nil {
		return "", err
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Info(
		"refresh task enqueued",
		slog.String("task-id", info.ID),
		slog.Int(logx.FieldCount, len(p.AppIDs)),
		slog.String(logx.FieldTable, p.Table().String()),
	)

	return info.ID, nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}

type Refresher interface {
	Refresh(ctx context.Context, appIDs []int64, table value.Table) (entity.SyncResult, error)
}

type Handler struct {
	refresher Refresher
}

func NewHandler(refresher Refresher) *Handler {
	return &Handler{refresher: refresher}
}

func (h *Handler) Handlers() []modules.AsynqHandler {
	return []modules.AsynqHandler{
		{Pattern: TypeRefresh, Handle: h.HandleRefresh},
	}
}

// HandleRefresh rescores the payload apps. A busy scanner makes asynq retry
// the task later; a malformed payload is dropped.
func (h *Handler) HandleRefresh(ctx context.Context, task *asynq.Task) error {
	var p RefreshPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal: %w: %w", err, asynq.SkipRetry)
	}

	if len(p.AppIDs) == 0 {
		return nil
	}

	result, err := h.refresher.Refresh(ctx, p.AppIDs, p.Table())
	if err != nil {
		return fmt.Errorf("refresher.Refresh: %w", err)
	}

	logger(ctx).Info(
		"refresh task done",
		slog.String(logx.FieldTable, p.Table().String()),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
	)

	return nil
}
