package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/payment"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

// SweepCommands are the time-driven transitions. Each item is handled in its own transaction, so a
// failing booking never blocks the rest of the batch.
type SweepCommands interface {
	ExpireOverdue(ctx context.Context) (int, error)
	ExpireUnaccepted(ctx context.Context) (int, error)
	ActivateDue(ctx context.Context) (int, error)
	CompleteDue(ctx context.Context) (int, error)
	ReleaseDue(ctx context.Context) (int, error)
}

type sweepUseCaseImpl struct {
	uow        shared.UnitOfWork
	adapters   payment.Adapters
	ledger     *ledger.Ledger
	dispatcher *Dispatcher
	grace      time.Duration
	batchSize  int
	clock      clock.Clock
	logger     *slog.Logger
}

func NewSweepUseCase(
	uow shared.UnitOfWork,
	adapters payment.Adapters,
	l *ledger.Ledger,
	dispatcher *Dispatcher,
	bookingCfg config.BookingConfig,
	workerCfg config.WorkerConfig,
	clk clock.Clock,
	logger *slog.Logger,
) SweepCommands {
	return &sweepUseCaseImpl{
		uow:        uow,
		adapters:   adapters,
		ledger:     l,
		dispatcher: dispatcher,
		grace:      bookingCfg.CompleteGrace,
		batchSize:  workerCfg.BatchSize,
		clock:      clk,
		logger:     logger,
	}
}

func (uc *sweepUseCaseImpl) ExpireOverdue(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	ids, err := uc.list(ctx, func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error) {
		return tx.Bookings().ListPaymentOverdue(ctx, now, uc.batchSize)
	})
	if err != nil {
		return 0, err
	}
	return uc.each(ctx, "expire", ids, func(ctx context.Context, tx shared.Tx, id uuid.UUID, fx *effects) (bool, error) {
		b, err := lockBooking(ctx, tx, id)
		if err != nil {
			return false, err
		}
		if b.Status() != booking.StatusPendingPayment {
			return false, nil
		}
		return expireIfOverdue(ctx, tx, uc.adapters, b, now, fx)
	})
}

// ExpireUnaccepted closes paid requests the host never answered once check-in arrives. The guest
// gets the whole amount back the same way a host rejection refunds it.
func (uc *sweepUseCaseImpl) ExpireUnaccepted(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	ids, err := uc.list(ctx, func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error) {
		return tx.Bookings().ListUnaccepted(ctx, now, uc.batchSize)
	})
	if err != nil {
		return 0, err
	}
	return uc.each(ctx, "expire_unaccepted", ids, func(ctx context.Context, tx shared.Tx, id uuid.UUID, fx *effects) (bool, error) {
		b, err := lockBooking(ctx, tx, id)
		if err != nil {
			return false, err
		}
		if b.Status() != booking.StatusPaid || now.Before(b.CheckInAt()) {
			return false, nil
		}
		if err := b.ExpireUnaccepted(now); err != nil {
			return false, err
		}
		held, err := uc.ledger.Get(ctx, tx, b.ID())
		if err != nil {
			return false, err
		}
		// recorded against the host, as a lapsed request settles like a rejection
		events, err := settle(ctx, tx, uc.ledger, b.ID(), "host did not accept before check-in", money.Zero(held.Held().Currency()), held.Held(), b.HostID(), now)
		if err != nil {
			return false, err
		}
		b.RecordRefund(held.Held(), now)
		if err := tx.Bookings().Update(ctx, b, booking.StatusPaid); err != nil {
			return false, err
		}
		for _, ev := range events {
			fx.escrow(ev)
		}
		fx.booking(b.Status())
		fx.notify(b.GuestID(), shared.NotifyBookingExpired, map[string]any{"booking_id": b.ID(), "reason": "not_accepted"})
		fx.notify(b.HostID(), shared.NotifyBookingExpired, map[string]any{"booking_id": b.ID(), "reason": "not_accepted"})
		return true, nil
	})
}

func (uc *sweepUseCaseImpl) ActivateDue(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	ids, err := uc.list(ctx, func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error) {
		return tx.Bookings().ListDueForActivation(ctx, now, uc.batchSize)
	})
	if err != nil {
		return 0, err
	}
	return uc.each(ctx, "activate", ids, func(ctx context.Context, tx shared.Tx, id uuid.UUID, fx *effects) (bool, error) {
		b, err := lockBooking(ctx, tx, id)
		if err != nil {
			return false, err
		}
		if b.Status() != booking.StatusConfirmed || now.Before(b.CheckInAt()) {
			return false, nil
		}
		// funds already split before the stay leave nothing to stay on
		if settled, err := uc.splitSettled(ctx, tx, b.ID()); err != nil || settled {
			return false, err
		}
		if err := b.Activate(now); err != nil {
			return false, err
		}
		if err := tx.Bookings().Update(ctx, b, booking.StatusConfirmed); err != nil {
			return false, err
		}
		fx.booking(b.Status())
		return true, nil
	})
}

func (uc *sweepUseCaseImpl) CompleteDue(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	ids, err := uc.list(ctx, func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error) {
		return tx.Bookings().ListDueForCompletion(ctx, now.Add(-uc.grace), uc.batchSize)
	})
	if err != nil {
		return 0, err
	}
	return uc.each(ctx, "complete", ids, func(ctx context.Context, tx shared.Tx, id uuid.UUID, fx *effects) (bool, error) {
		b, err := lockBooking(ctx, tx, id)
		if err != nil {
			return false, err
		}
		if !b.IsDueForCompletion(now, uc.grace) {
			return false, nil
		}
		if err := b.Complete(now); err != nil {
			return false, err
		}
		if err := tx.Bookings().Update(ctx, b, booking.StatusActive); err != nil {
			return false, err
		}
		fx.booking(b.Status())
		payload := map[string]any{"booking_id": b.ID()}
		fx.notify(b.GuestID(), shared.NotifyBookingCompleted, payload)
		fx.notify(b.HostID(), shared.NotifyBookingCompleted, payload)
		return true, nil
	})
}

// ReleaseDue releases eligible escrows of stays that took place. The ledger rechecks eligibility
// and open disputes under the row lock, so an entry frozen after listing is left alone.
func (uc *sweepUseCaseImpl) ReleaseDue(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	ids, err := uc.list(ctx, func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error) {
		return tx.Escrows().ListReleasable(ctx, now, uc.batchSize)
	})
	if err != nil {
		return 0, err
	}
	return uc.each(ctx, "release", ids, func(ctx context.Context, tx shared.Tx, id uuid.UUID, fx *effects) (bool, error) {
		b, err := lockBooking(ctx, tx, id)
		if err != nil {
			return false, err
		}
		if !b.HasStayed() {
			return false, nil
		}
		ev, released, err := uc.ledger.Release(ctx, tx, id, now)
		if err != nil || !released {
			return false, err
		}
		fx.escrow(ev)
		fx.notify(b.HostID(), shared.NotifyEscrowReleased, map[string]any{
			"booking_id": b.ID(),
			"amount":     b.Pricing().HostPayout.String(),
		})
		return true, nil
	})
}

func (uc *sweepUseCaseImpl) splitSettled(ctx context.Context, tx shared.Tx, bookingID uuid.UUID) (bool, error) {
	e, err := uc.ledger.Get(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, ledger.ErrEscrowNotFound) {
			return false, nil
		}
		return false, err
	}
	return e.Status() == escrow.StatusSplit, nil
}

func (uc *sweepUseCaseImpl) list(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) ([]uuid.UUID, error)) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		ids, err = fn(ctx, tx)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return ids, nil
}

func (uc *sweepUseCaseImpl) each(ctx context.Context, job string, ids []uuid.UUID, fn func(ctx context.Context, tx shared.Tx, id uuid.UUID, fx *effects) (bool, error)) (int, error) {
	done := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		var (
			fx      *effects
			changed bool
		)
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			fx = &effects{}
			var err error
			changed, err = fn(ctx, tx, id, fx)
			return err
		})
		if err != nil {
			uc.logger.Error("sweep item failed", "job", job, "id", id, "error", err)
			continue
		}
		if changed {
			done++
			uc.dispatcher.dispatch(ctx, fx)
		}
	}
	return done, nil
}
