//go:build unit

package worker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/metrics"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/worker"
	commandsmock "rental-escrow/tests/mock/commands"
	sharedmock "rental-escrow/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type sweeperDeps struct {
	sweep   *commandsmock.MockSweepCommands
	payouts *commandsmock.MockPayoutCommands
	locker  *sharedmock.MockLocker
	clock   *clock.MockClock
	metrics *metrics.Registry
}

func newSweeper(t *testing.T, payoutsDaily bool) (*worker.Sweeper, sweeperDeps) {
	ctrl := gomock.NewController(t)
	d := sweeperDeps{
		sweep:   commandsmock.NewMockSweepCommands(ctrl),
		payouts: commandsmock.NewMockPayoutCommands(ctrl),
		locker:  sharedmock.NewMockLocker(ctrl),
		clock:   clock.NewMockClock(time.Date(2026, 3, 14, 0, 5, 0, 0, time.UTC)),
		metrics: metrics.NewRegistry(),
	}
	cfg := config.WorkerConfig{Enabled: true, Interval: time.Minute, BatchSize: 100, LeaseTTL: 50 * time.Second, PayoutsDaily: payoutsDaily}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return worker.NewSweeper(d.sweep, d.payouts, d.locker, d.metrics, cfg, d.clock, logger), d
}

func (d sweeperDeps) lease(t *testing.T) *bool {
	released := false
	d.locker.EXPECT().
		TryAcquire(gomock.Any(), "sweeper", 50*time.Second).
		Return(func(context.Context) { released = true }, true, nil)
	return &released
}

func sweepRuns(reg *metrics.Registry, job, result string) float64 {
	families, err := reg.Gatherer().Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() != "rental_escrow_sweeper_runs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["job"] == job && labels["result"] == result {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestSweeper_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("runs every job in order under the lease", func(t *testing.T) {
		s, d := newSweeper(t, false)
		released := d.lease(t)
		gomock.InOrder(
			d.sweep.EXPECT().ExpireOverdue(gomock.Any()).Return(2, nil),
			d.sweep.EXPECT().ExpireUnaccepted(gomock.Any()).Return(1, nil),
			d.sweep.EXPECT().ActivateDue(gomock.Any()).Return(0, nil),
			d.sweep.EXPECT().CompleteDue(gomock.Any()).Return(1, nil),
			d.sweep.EXPECT().ReleaseDue(gomock.Any()).Return(1, nil),
		)

		assert.True(t, s.RunOnce(ctx))
		assert.True(t, *released)
		assert.Equal(t, float64(1), sweepRuns(d.metrics, "expire", "ok"))
		assert.Equal(t, float64(1), sweepRuns(d.metrics, "expire_unaccepted", "ok"))
		assert.Equal(t, float64(1), sweepRuns(d.metrics, "release", "ok"))
	})

	t.Run("failed job does not stop the pass", func(t *testing.T) {
		s, d := newSweeper(t, false)
		d.lease(t)
		d.sweep.EXPECT().ExpireOverdue(gomock.Any()).Return(0, errs.New("connection refused"))
		d.sweep.EXPECT().ExpireUnaccepted(gomock.Any()).Return(0, nil)
		d.sweep.EXPECT().ActivateDue(gomock.Any()).Return(0, nil)
		d.sweep.EXPECT().CompleteDue(gomock.Any()).Return(0, nil)
		d.sweep.EXPECT().ReleaseDue(gomock.Any()).Return(0, nil)

		assert.True(t, s.RunOnce(ctx))
		assert.Equal(t, float64(1), sweepRuns(d.metrics, "expire", "error"))
		assert.Equal(t, float64(1), sweepRuns(d.metrics, "activate", "ok"))
	})

	t.Run("lease held elsewhere skips the tick", func(t *testing.T) {
		s, d := newSweeper(t, true)
		d.locker.EXPECT().TryAcquire(gomock.Any(), "sweeper", gomock.Any()).Return(nil, false, nil)

		assert.False(t, s.RunOnce(ctx))
	})

	t.Run("lease error skips the tick", func(t *testing.T) {
		s, d := newSweeper(t, true)
		d.locker.EXPECT().TryAcquire(gomock.Any(), "sweeper", gomock.Any()).Return(nil, false, errs.New("redis: i/o timeout"))

		assert.False(t, s.RunOnce(ctx))
	})

	t.Run("payouts are scheduled once per day", func(t *testing.T) {
		s, d := newSweeper(t, true)
		expectJobs := func() {
			d.lease(t)
			d.sweep.EXPECT().ExpireOverdue(gomock.Any()).Return(0, nil)
			d.sweep.EXPECT().ExpireUnaccepted(gomock.Any()).Return(0, nil)
			d.sweep.EXPECT().ActivateDue(gomock.Any()).Return(0, nil)
			d.sweep.EXPECT().CompleteDue(gomock.Any()).Return(0, nil)
			d.sweep.EXPECT().ReleaseDue(gomock.Any()).Return(0, nil)
		}

		expectJobs()
		d.payouts.EXPECT().ScheduleDue(gomock.Any()).Return(&commands.ScheduleResult{}, nil)
		assert.True(t, s.RunOnce(ctx))

		expectJobs()
		d.clock.Set(time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC))
		assert.True(t, s.RunOnce(ctx))

		expectJobs()
		d.clock.Set(time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC))
		d.payouts.EXPECT().ScheduleDue(gomock.Any()).Return(&commands.ScheduleResult{}, nil)
		assert.True(t, s.RunOnce(ctx))
	})

	t.Run("failed payout run is retried on the next tick", func(t *testing.T) {
		s, d := newSweeper(t, true)
		for range 2 {
			d.lease(t)
			d.sweep.EXPECT().ExpireOverdue(gomock.Any()).Return(0, nil)
			d.sweep.EXPECT().ExpireUnaccepted(gomock.Any()).Return(0, nil)
			d.sweep.EXPECT().ActivateDue(gomock.Any()).Return(0, nil)
			d.sweep.EXPECT().CompleteDue(gomock.Any()).Return(0, nil)
			d.sweep.EXPECT().ReleaseDue(gomock.Any()).Return(0, nil)
		}
		gomock.InOrder(
			d.payouts.EXPECT().ScheduleDue(gomock.Any()).Return(nil, errs.New("deadlock detected")),
			d.payouts.EXPECT().ScheduleDue(gomock.Any()).Return(&commands.ScheduleResult{}, nil),
		)

		assert.True(t, s.RunOnce(ctx))
		assert.True(t, s.RunOnce(ctx))
		assert.Equal(t, float64(1), sweepRuns(d.metrics, "payout", "error"))
	})
}

func TestSweeper_StartStop(t *testing.T) {
	s, _ := newSweeper(t, false)
	ctx := context.Background()

	assert.NoError(t, s.Start(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(stopCtx))
}
