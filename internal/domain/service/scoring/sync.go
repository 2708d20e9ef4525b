package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"card_market/internal/domain"
	"card_market/internal/domain/entity"
	"card_market/internal/domain/value"
	"card_market/pkg/errcodes"
	"card_market/pkg/logx"
)

const DefaultFastModeLimit = 250

//nolint:gochecknoglobals
var (
	slowSecondsPerEntry = decimal.RequireFromString("3.1")
	fastSecondsPerEntry = decimal.RequireFromString("1.35")
)

// EmptyPolicy decides what happens to entries without cards or without a price.
type EmptyPolicy string

const (
	EmptySkip     EmptyPolicy = "skip"
	EmptyZeroFill EmptyPolicy = "zero-fill"
)

func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch p := EmptyPolicy(s); p {
	case EmptySkip, EmptyZeroFill:
		return p, nil
	case "":
		return EmptySkip, nil
	default:
		return "", domain.NewError(errcodes.ValidationError, fmt.Sprintf("unknown empty policy %q", s))
	}
}

type Scorer interface {
	Score(ctx context.Context, appID int64, mode Mode) (*entity.Game, error)
}

type Repository interface {
	Upsert(ctx context.Context, table value.Table, game *entity.Game) error
}

type Publisher interface {
	PublishScored(ctx context.Context, event entity.GameScored) error
}

type SyncResult = entity.SyncResult

// Syncer scores catalog entries one by one and upserts them into a table.
type Syncer struct {
	scorer        Scorer
	repo          Repository
	publisher     Publisher
	policy        EmptyPolicy
	fastModeLimit int
	now           func() time.Time
}

func NewSyncer(scorer Scorer, repo Repository) *Syncer {
	return &Syncer{
		scorer:        scorer,
		repo:          repo,
		policy:        EmptySkip,
		fastModeLimit: DefaultFastModeLimit,
		now:           time.Now,
	}
}

func (s *Syncer) WithPublisher(p Publisher) *Syncer {
	s.publisher = p
	return s
}

func (s *Syncer) WithEmptyPolicy(p EmptyPolicy) *Syncer {
	s.policy = p
	return s
}

func (s *Syncer) WithFastModeLimit(n int) *Syncer {
	s.fastModeLimit = n
	return s
}

func (s *Syncer) WithClock(now func() time.Time) *Syncer {
	s.now = now
	return s
}

// UpdateDatabase scores appIDs in order and upserts every non-empty result
// into table. A failing entry is logged and counted, the batch goes on.
// Only context cancellation stops the batch early.
func (s *Syncer) UpdateDatabase(ctx context.Context, appIDs []int64, table value.Table) (SyncResult, error) {
	var result SyncResult

	mode := Mode{Fast: true, Instant: table.Instant()}

	if !table.Instant() {
		if len(appIDs) > s.fastModeLimit {
			mode.Fast = false
		}

		logger(ctx).Info(
			"expected completion time",
			slog.String(logx.FieldTable, table.String()),
			slog.Int(logx.FieldCount, len(appIDs)),
			slog.Bool("fast", mode.Fast),
			slog.String("eta", ExpectedCompletion(len(appIDs), mode.Fast)),
		)
	}

	for i, appID := range appIDs {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("scoring.UpdateDatabase: %w", err)
		}

		log := logger(ctx).With(
			slog.Int64(logx.FieldAppID, appID),
			slog.String(logx.FieldTable, table.String()),
		)

		log.Debug("updating game", slog.String(logx.FieldProgress, fmt.Sprintf("%d/%d", i+1, len(appIDs))))

		outcome, err := s.syncOne(ctx, appID, table, mode)
		if err != nil {
			if ctx.Err() != nil {
				return result, fmt.Errorf("scoring.UpdateDatabase: %w", ctx.Err())
			}

			log.Error("failed to update game", logx.Error(err))
		}

		switch outcome {
		case resultUpdated:
			result.Updated++
		case resultSkipped:
			result.Skipped++
		default:
			result.Failed++
		}

		scoredEntries.WithLabelValues(table.String(), outcome).Inc()
	}

	return result, nil
}

func (s *Syncer) syncOne(ctx context.Context, appID int64, table value.Table, mode Mode) (string, error) {
	game, err := s.scorer.Score(ctx, appID, mode)
	if err != nil {
		return resultFailed, fmt.Errorf("scorer.Score: %w", err)
	}

	if game.Empty() {
		if s.policy != EmptyZeroFill {
			return resultSkipped, nil
		}

		game.Profit = entity.Profit{}
	}

	if err = s.repo.Upsert(ctx, table, game); err != nil {
		return resultFailed, fmt.Errorf("repo.Upsert: %w", err)
	}

	s.publish(ctx, table, game)

	return resultUpdated, nil
}

func (s *Syncer) publish(ctx context.Context, table value.Table, game *entity.Game) {
	if s.publisher == nil {
		return
	}

	event := entity.GameScored{
		Table:    table,
		AppID:    game.AppID,
		Name:     game.Name,
		Price:    game.Price,
		Profit:   game.Profit,
		Cards:    game.CardPrices(table.Instant()),
		ScoredAt: s.now().UTC(),
	}

	if err := s.publisher.PublishScored(ctx, event); err != nil {
		logger(ctx).Warn(
			"failed to publish scored game",
			slog.Int64(logx.FieldAppID, game.AppID),
			logx.Error(err),
		)
	}
}

// ExpectedCompletion estimates how long a batch of n entries takes:
// "Xhs Ymin" in careful mode, "Xmin Ysec" in fast mode.
func ExpectedCompletion(n int, fast bool) string {
	if fast {
		secs := decimal.NewFromInt(int64(n)).Mul(fastSecondsPerEntry).IntPart()
		return fmt.Sprintf("%dmin %dsec", secs/60, secs%60)
	}

	secs := decimal.NewFromInt(int64(n)).Mul(slowSecondsPerEntry).IntPart()

	return fmt.Sprintf("%dhs %dmin", secs/3600, secs%3600/60)
}
