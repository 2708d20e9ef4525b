package worker_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"card_market/internal/domain"
	"card_market/internal/domain/entity"
	"card_market/internal/worker"
	"card_market/pkg/contextx"
	"card_market/pkg/errcodes"
)

type countingRunner struct {
	runs atomic.Int32
	err  error
}

func (r *countingRunner) RunPass(context.Context) (*entity.PassReport, error) {
	r.runs.Add(1)

	if r.err != nil {
		return nil, r.err
	}

	return &entity.PassReport{}, nil
}

func TestSchedulerRunOnStart(t *testing.T) {
	rq := require.New(t)

	runner := &countingRunner{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- worker.NewScheduler(runner, "@every 1h").WithRunOnStart(true).Run(ctx)
	}()

	rq.Eventually(func() bool { return runner.runs.Load() == 1 }, time.Second, time.Millisecond)

	cancel()
	rq.NoError(<-done)
	rq.Equal(int32(1), runner.runs.Load())
}

func TestSchedulerInvalidSpec(t *testing.T) {
	rq := require.New(t)

	err := worker.NewScheduler(&countingRunner{}, "every hour").Run(context.Background())
	rq.Error(err)
}

func TestSchedulerLogsBusySkip(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		err     error
		skipped bool
	}{
		{
			name:    "Scanner busy",
			err:     domain.NewError(errcodes.RefreshInProgress, "a scoring pass is already running"),
			skipped: true,
		},
		{
			name: "Pass failed",
			err:  errors.New("crawler down"),
		},
		{
			name: "Pass ok",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var buf bytes.Buffer

			ctx, cancel := context.WithCancel(contextx.WithLogger(
				context.Background(),
				slog.New(slog.NewTextHandler(&buf, nil)),
			))

			runner := &countingRunner{err: tc.err}
			done := make(chan error, 1)

			go func() {
				done <- worker.NewScheduler(runner, "@every 1h").WithRunOnStart(true).Run(ctx)
			}()

			rq.Eventually(func() bool { return runner.runs.Load() == 1 }, time.Second, time.Millisecond)

			cancel()
			rq.NoError(<-done)

			if tc.skipped {
				rq.Contains(buf.String(), "scheduled pass skipped, scanner busy")
				rq.Contains(buf.String(), "spec=\"@every 1h\"")

				return
			}

			rq.NotContains(buf.String(), "scheduled pass skipped")
		})
	}
}
