package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"card_market/internal/domain"
	"card_market/internal/domain/entity"
	"card_market/internal/domain/value"
	"card_market/pkg/contextx"
	"card_market/pkg/errcodes"
	"card_market/pkg/logx"
)

const (
	defaultMaxPrice = 16
	defaultTopN     = 10
)

type Crawler interface {
	SearchDiscounted(ctx context.Context, maxPrice float64) ([]entity.Listing, error)
}

type Syncer interface {
	UpdateDatabase(ctx context.Context, appIDs []int64, table value.Table) (entity.SyncResult, error)
}

type Ranking interface {
	Top(ctx context.Context, table value.Table, column value.ReturnColumn, limit int) ([]*entity.Game, error)
	TopAppIDs(ctx context.Context, table value.Table, column value.ReturnColumn, limit int) ([]int64, error)
}

type Notifier interface {
	NotifyPass(ctx context.Context, report entity.PassReport) error
}

// PassScanner runs scoring passes: crawl the discounted listings, score them
// into the games table, then rescore the best ones on instant prices.
// Passes and on-demand refreshes never overlap.
type PassScanner struct {
	crawler  Crawler
	syncer   Syncer
	ranking  Ranking
	notifier Notifier

	maxPrice float64
	topN     int
	now      func() time.Time

	// held for the whole pass or refresh
	busy sync.Mutex

	mu       sync.Mutex
	excluded map[int64]struct{}
	running  bool
	last     *entity.PassReport
}

func NewPassScanner(crawler Crawler, syncer Syncer, ranking Ranking) *PassScanner {
	return &PassScanner{
		crawler:  crawler,
		syncer:   syncer,
		ranking:  ranking,
		maxPrice: defaultMaxPrice,
		topN:     defaultTopN,
		now:      time.Now,
		excluded: make(map[int64]struct{}),
	}
}

func (w *PassScanner) WithNotifier(n Notifier) *PassScanner {
	w.notifier = n
	return w
}

func (w *PassScanner) WithMaxPrice(maxPrice float64) *PassScanner {
	w.maxPrice = maxPrice
	return w
}

func (w *PassScanner) WithTopN(n int) *PassScanner {
	w.topN = n
	return w
}

func (w *PassScanner) WithClock(now func() time.Time) *PassScanner {
	w.now = now
	return w
}

// IsRunning reports whether a pass or a refresh is in progress.
func (w *PassScanner) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.running
}

// LastReport returns a copy of the most recent pass report, nil before the
// first pass finishes.
func (w *PassScanner) LastReport() *entity.PassReport {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.last == nil {
		return nil
	}

	report := *w.last

	return &report
}

func (w *PassScanner) acquire() error {
	if !w.busy.TryLock() {
		return domain.NewError(errcodes.RefreshInProgress, "a scoring pass is already running")
	}

	w.setRunning(true)

	return nil
}

func (w *PassScanner) release() {
	w.setRunning(false)
	w.busy.Unlock()
}

func (w *PassScanner) setRunning(running bool) {
	w.mu.Lock()
	w.running = running
	w.mu.Unlock()
}

// RunPass executes one full pass and returns its report.
func (w *PassScanner) RunPass(ctx context.Context) (*entity.PassReport, error) {
	if err := w.acquire(); err != nil {
		return nil, err
	}
	defer w.release()

	passID := contextx.PassID(xid.New().String())
	ctx = contextx.WithPassID(ctx, passID)
	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldPassID, passID.String())))

	report := &entity.PassReport{
		PassID:    passID.String(),
		StartedAt: w.now(),
	}

	logger(ctx).Info("scoring pass started")

	err := w.pass(ctx, report)

	report.FinishedAt = w.now()
	passDuration.Observe(report.Duration().Seconds())

	if err != nil {
		report.Err = err.Error()
		passesTotal.WithLabelValues("failed").Inc()

		logger(ctx).Error("scoring pass failed", logx.Error(err))
	} else {
		passesTotal.WithLabelValues("ok").Inc()

		logger(ctx).Info(
			"scoring pass finished",
			slog.Int64(logx.FieldDurationMs, report.Duration().Milliseconds()),
		)
	}

	w.mu.Lock()
	w.last = report
	w.mu.Unlock()

	w.notify(ctx, *report)

	return report, err
}

func (w *PassScanner) pass(ctx context.Context, report *entity.PassReport) error {
	listings, err := w.crawler.SearchDiscounted(ctx, w.maxPrice)
	if err != nil {
		return fmt.Errorf("crawler.SearchDiscounted: %w", err)
	}

	report.Listed = len(listings)
	logger(ctx).Info("discounted listings crawled", slog.Int(logx.FieldCount, report.Listed))

	appIDs := w.filterExcluded(listings)
	report.Excluded = report.Listed - len(appIDs)
	logger(ctx).Info(
		"excluded apps removed",
		slog.Int(logx.FieldCount, len(appIDs)),
		slog.Int("excluded", report.Excluded),
	)

	report.Games, err = w.syncer.UpdateDatabase(ctx, appIDs, value.TableGames)
	if err != nil {
		return fmt.Errorf("syncer.UpdateDatabase %s: %w", value.TableGames, err)
	}

	logSync(ctx, value.TableGames, report.Games)

	top, err := w.ranking.TopAppIDs(ctx, value.TableGames, value.ReturnMin, w.topN)
	if err != nil {
		return fmt.Errorf("ranking.TopAppIDs: %w", err)
	}

	report.Instant, err = w.syncer.UpdateDatabase(ctx, top, value.TableInstantPrices)
	if err != nil {
		return fmt.Errorf("syncer.UpdateDatabase %s: %w", value.TableInstantPrices, err)
	}

	logSync(ctx, value.TableInstantPrices, report.Instant)

	report.Top, err = w.ranking.Top(ctx, value.TableInstantPrices, value.ReturnMin, w.topN)
	if err != nil {
		return fmt.Errorf("ranking.Top: %w", err)
	}

	return nil
}

// Refresh rescores the given apps into one table outside the schedule.
func (w *PassScanner) Refresh(ctx context.Context, appIDs []int64, table value.Table) (entity.SyncResult, error) {
	if err := w.acquire(); err != nil {
		return entity.SyncResult{}, err
	}
	defer w.release()

	result, err := w.syncer.UpdateDatabase(ctx, appIDs, table)
	if err != nil {
		return result, fmt.Errorf("syncer.UpdateDatabase: %w", err)
	}

	logSync(ctx, table, result)

	return result, nil
}

func (w *PassScanner) notify(ctx context.Context, report entity.PassReport) {
	if w.notifier == nil {
		return
	}

	if err := w.notifier.NotifyPass(ctx, report); err != nil {
		logger(ctx).Warn("failed to send pass report", logx.Error(err))
	}
}

func logSync(ctx context.Context, table value.Table, result entity.SyncResult) {
	logger(ctx).Info(
		"table synced",
		slog.String(logx.FieldTable, table.String()),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
	)
}
