package commands

import (
	"context"
	"strings"

	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

// EscrowCommands are the admin overrides on the ledger.
type EscrowCommands interface {
	ReleaseEscrow(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error
	FreezeEscrow(ctx context.Context, bookingID uuid.UUID, reason string, actor shared.Actor) error
	UnfreezeEscrow(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error
}

type escrowUseCaseImpl struct {
	uow        shared.UnitOfWork
	ledger     *ledger.Ledger
	dispatcher *Dispatcher
	clock      clock.Clock
}

func NewEscrowUseCase(uow shared.UnitOfWork, l *ledger.Ledger, dispatcher *Dispatcher, clk clock.Clock) EscrowCommands {
	return &escrowUseCaseImpl{uow: uow, ledger: l, dispatcher: dispatcher, clock: clk}
}

func (uc *escrowUseCaseImpl) ReleaseEscrow(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	now := uc.clock.Now()
	var fx *effects
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		ev, err := uc.ledger.ManualRelease(ctx, tx, bookingID, actor.ID, now)
		if err != nil {
			return err
		}
		fx.escrow(ev)
		fx.notify(b.HostID(), shared.NotifyEscrowReleased, map[string]any{"booking_id": b.ID(), "manual": true})
		return nil
	})
	if err != nil {
		return classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return nil
}

func (uc *escrowUseCaseImpl) FreezeEscrow(ctx context.Context, bookingID uuid.UUID, reason string, actor shared.Actor) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	now := uc.clock.Now()
	var fx *effects
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		if _, err := lockBooking(ctx, tx, bookingID); err != nil {
			return err
		}
		ev, err := uc.ledger.Freeze(ctx, tx, bookingID, strings.TrimSpace(reason), &actor.ID, now)
		if err != nil {
			return err
		}
		fx.escrow(ev)
		return nil
	})
	if err != nil {
		return classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return nil
}

// UnfreezeEscrow is refused while a dispute is open; closing the dispute unfreezes instead.
func (uc *escrowUseCaseImpl) UnfreezeEscrow(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	now := uc.clock.Now()
	var fx *effects
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		if _, err := lockBooking(ctx, tx, bookingID); err != nil {
			return err
		}
		open, err := tx.Disputes().HasOpenForBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if open {
			return ErrDisputeOpen
		}
		ev, err := uc.ledger.Unfreeze(ctx, tx, bookingID, &actor.ID, now)
		if err != nil {
			return err
		}
		fx.escrow(ev)
		return nil
	})
	if err != nil {
		return classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return nil
}
