package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"card_market/internal/domain"
	"card_market/internal/domain/entity"
	"card_market/pkg/errcodes"
	"card_market/pkg/logx"
)

type PassRunner interface {
	RunPass(ctx context.Context) (*entity.PassReport, error)
}

// Scheduler triggers passes on a cron spec. A tick that fires while the
// previous pass still runs is skipped.
type Scheduler struct {
	runner     PassRunner
	spec       string
	runOnStart bool
}

func NewScheduler(runner PassRunner, spec string) *Scheduler {
	return &Scheduler{
		runner: runner,
		spec:   spec,
	}
}

func (s *Scheduler) WithRunOnStart(runOnStart bool) *Scheduler {
	s.runOnStart = runOnStart
	return s
}

// Run blocks until ctx is done, then waits for the running pass to return.
func (s *Scheduler) Run(ctx context.Context) error {
	log := cronLogger{logger: logger(ctx)}

	c := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)

	id, err := c.AddFunc(s.spec, func() { s.runPass(ctx) })
	if err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
	}

	var startup sync.WaitGroup

	if s.runOnStart {
		job := c.Entry(id).WrappedJob

		startup.Add(1)

		go func() {
			defer startup.Done()
			job.Run()
		}()
	}

	c.Start()
	logger(ctx).Info("scheduler started", slog.String("spec", s.spec))

	<-ctx.Done()

	<-c.Stop().Done()
	startup.Wait()
	logger(ctx).Info("scheduler stopped")

	return nil
}

func (s *Scheduler) runPass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	// other failures are logged by the runner; the schedule keeps going
	_, err := s.runner.RunPass(ctx)
	if code, ok := domain.GetCode(err); ok && code == errcodes.RefreshInProgress {
		logger(ctx).Info("scheduled pass skipped, scanner busy", slog.String("spec", s.spec))
	}
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, logx.Error(err))...)
}
