// Package worker runs the time-driven booking and escrow transitions in the background.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/metrics"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"
)

const leaseName = "sweeper"

type job struct {
	name string
	run  func(ctx context.Context) (int, error)
}

// Sweeper ticks at the configured interval and runs every job while holding the sweeper lease.
// Instances that miss the lease skip the tick.
type Sweeper struct {
	jobs    []job
	payouts commands.PayoutCommands
	locker  shared.Locker
	metrics *metrics.Registry
	cfg     config.WorkerConfig
	clock   clock.Clock
	logger  *slog.Logger

	lastPayoutDay string
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewSweeper(
	sweep commands.SweepCommands,
	payouts commands.PayoutCommands,
	locker shared.Locker,
	reg *metrics.Registry,
	cfg config.WorkerConfig,
	clk clock.Clock,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		jobs: []job{
			{name: "expire", run: sweep.ExpireOverdue},
			{name: "expire_unaccepted", run: sweep.ExpireUnaccepted},
			{name: "activate", run: sweep.ActivateDue},
			{name: "complete", run: sweep.CompleteDue},
			{name: "release", run: sweep.ReleaseDue},
		},
		payouts: payouts,
		locker:  locker,
		metrics: reg,
		cfg:     cfg,
		clock:   clk,
		logger:  logger,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("sweeper started",
		"interval", s.cfg.Interval,
		"batch_size", s.cfg.BatchSize,
	)
	return nil
}

func (s *Sweeper) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep. It reports false when another instance holds the lease.
func (s *Sweeper) RunOnce(ctx context.Context) bool {
	release, ok, err := s.locker.TryAcquire(ctx, leaseName, s.cfg.LeaseTTL)
	if err != nil {
		s.logger.Warn("sweeper lease unavailable", "error", err)
		return false
	}
	if !ok {
		s.logger.Debug("sweeper lease held elsewhere")
		return false
	}
	defer release(context.WithoutCancel(ctx))

	started := time.Now()
	for _, j := range s.jobs {
		if ctx.Err() != nil {
			break
		}
		n, err := j.run(ctx)
		s.metrics.SweepRun(j.name, err)
		if err != nil {
			s.logger.Error("sweep job failed", "job", j.name, "error", err)
			continue
		}
		if n > 0 {
			s.logger.Info("sweep job applied", "job", j.name, "count", n)
		}
	}

	if s.cfg.PayoutsDaily {
		s.schedulePayouts(ctx)
	}
	s.metrics.ObserveSweep(time.Since(started).Seconds())
	return true
}

// schedulePayouts batches payouts on the first sweep of each UTC day.
func (s *Sweeper) schedulePayouts(ctx context.Context) {
	day := s.clock.Now().UTC().Format(time.DateOnly)
	if day == s.lastPayoutDay {
		return
	}
	result, err := s.payouts.ScheduleDue(ctx)
	s.metrics.SweepRun("payout", err)
	if err != nil {
		s.logger.Error("payout scheduling failed", "error", err)
		return
	}
	s.lastPayoutDay = day
	s.logger.Info("payouts scheduled",
		"requests", len(result.Requests),
		"skipped_hosts", len(result.SkippedHosts),
	)
}
