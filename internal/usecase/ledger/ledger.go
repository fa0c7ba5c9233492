// Package ledger is the only writer of escrow rows. Every operation runs inside the caller's unit
// of work, locks the escrow row, applies the domain transition and appends the audit event, so the
// ledger change commits or rolls back together with the booking or dispute change that caused it.
package ledger

import (
	"context"
	"errors"
	"time"

	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEscrowNotFound = errs.New("escrow not found")
	ErrDuplicateHold  = errs.New("escrow already held for booking")
	// ErrEscrowConflict covers transitions the current escrow status does not allow, including a
	// status that moved on between the lock and the write.
	ErrEscrowConflict = errs.New("escrow state conflict")
	ErrIntegrity      = errs.New("escrow integrity violation")
	ErrInvalidInput   = errs.New("invalid escrow input")
)

type Ledger struct{}

func New() *Ledger {
	return &Ledger{}
}

// Hold opens the escrow entry for captured funds. A second hold for the same booking fails on the
// unique booking key.
func (l *Ledger) Hold(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, amount money.Money, releaseEligibleAt, now time.Time) (escrow.Event, error) {
	e, ev, err := escrow.Hold(bookingID, amount, releaseEligibleAt, now)
	if err != nil {
		return escrow.Event{}, classify(err)
	}
	if err := tx.Escrows().Create(ctx, e); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return escrow.Event{}, errs.Mark(err, ErrDuplicateHold)
		}
		return escrow.Event{}, errs.Wrap(err, "failed to hold escrow")
	}
	if err := tx.Escrows().AppendEvent(ctx, ev); err != nil {
		return escrow.Event{}, errs.Wrap(err, "failed to record escrow hold")
	}
	return ev, nil
}

// Release pays out a held entry once it is eligible. It is a no-op, not an error, while the
// entry is not held, before the eligibility time, or while a dispute is open on the booking.
func (l *Ledger) Release(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, now time.Time) (escrow.Event, bool, error) {
	e, err := l.lock(ctx, tx, bookingID)
	if err != nil {
		return escrow.Event{}, false, err
	}
	if !e.IsEligibleForRelease(now) {
		return escrow.Event{}, false, nil
	}
	open, err := tx.Disputes().HasOpenForBooking(ctx, bookingID)
	if err != nil {
		return escrow.Event{}, false, errs.Wrap(err, "failed to check open disputes")
	}
	if open {
		return escrow.Event{}, false, nil
	}

	from := e.Status()
	ev, err := e.Release(now)
	if err != nil {
		return escrow.Event{}, false, classify(err)
	}
	if err := l.persist(ctx, tx, e, from, ev); err != nil {
		return escrow.Event{}, false, err
	}
	return ev, true, nil
}

// ManualRelease is the admin override: no eligibility time check, but still refused under an open
// dispute.
func (l *Ledger) ManualRelease(ctx context.Context, tx shared.Tx, bookingID, admin uuid.UUID, now time.Time) (escrow.Event, error) {
	e, err := l.lock(ctx, tx, bookingID)
	if err != nil {
		return escrow.Event{}, err
	}
	open, err := tx.Disputes().HasOpenForBooking(ctx, bookingID)
	if err != nil {
		return escrow.Event{}, errs.Wrap(err, "failed to check open disputes")
	}
	if open {
		return escrow.Event{}, errs.Wrap(ErrEscrowConflict, "booking has an open dispute")
	}

	from := e.Status()
	ev, err := e.ManualRelease(admin, now)
	if err != nil {
		return escrow.Event{}, classify(err)
	}
	return ev, l.persist(ctx, tx, e, from, ev)
}

func (l *Ledger) Freeze(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, reason string, actor *uuid.UUID, now time.Time) (escrow.Event, error) {
	e, err := l.lock(ctx, tx, bookingID)
	if err != nil {
		return escrow.Event{}, err
	}
	from := e.Status()
	ev, err := e.Freeze(reason, actor, now)
	if err != nil {
		return escrow.Event{}, classify(err)
	}
	return ev, l.persist(ctx, tx, e, from, ev)
}

func (l *Ledger) Unfreeze(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, actor *uuid.UUID, now time.Time) (escrow.Event, error) {
	e, err := l.lock(ctx, tx, bookingID)
	if err != nil {
		return escrow.Event{}, err
	}
	from := e.Status()
	ev, err := e.Unfreeze(actor, now)
	if err != nil {
		return escrow.Event{}, classify(err)
	}
	return ev, l.persist(ctx, tx, e, from, ev)
}

// Split settles a frozen entry; the shares must add up to the held amount exactly.
func (l *Ledger) Split(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, hostShare, guestShare money.Money, resolver uuid.UUID, now time.Time) (escrow.Event, error) {
	e, err := l.lock(ctx, tx, bookingID)
	if err != nil {
		return escrow.Event{}, err
	}
	from := e.Status()
	ev, err := e.Split(hostShare, guestShare, resolver, now)
	if err != nil {
		return escrow.Event{}, classify(err)
	}
	return ev, l.persist(ctx, tx, e, from, ev)
}

// Get reads the entry without locking it.
func (l *Ledger) Get(ctx context.Context, tx shared.Tx, bookingID uuid.UUID) (*escrow.Escrow, error) {
	e, err := tx.Escrows().GetByBooking(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEscrowNotFound
		}
		return nil, errs.Wrap(err, "failed to get escrow")
	}
	return e, nil
}

func (l *Ledger) lock(ctx context.Context, tx shared.Tx, bookingID uuid.UUID) (*escrow.Escrow, error) {
	e, err := tx.Escrows().GetByBookingForUpdate(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEscrowNotFound
		}
		return nil, errs.Wrap(err, "failed to lock escrow")
	}
	return e, nil
}

func (l *Ledger) persist(ctx context.Context, tx shared.Tx, e *escrow.Escrow, from escrow.Status, ev escrow.Event) error {
	if err := tx.Escrows().Update(ctx, e, from); err != nil {
		if infra.IsKind(err, infra.KindStaleState) {
			return errs.Mark(err, ErrEscrowConflict)
		}
		return errs.Wrap(err, "failed to update escrow")
	}
	if err := tx.Escrows().AppendEvent(ctx, ev); err != nil {
		return errs.Wrap(err, "failed to record escrow event")
	}
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, escrow.ErrNotHeld),
		errors.Is(err, escrow.ErrNotFrozen),
		errors.Is(err, escrow.ErrAlreadyDisbursed),
		errors.Is(err, escrow.ErrNotEligible):
		return errs.Mark(err, ErrEscrowConflict)
	case errors.Is(err, escrow.ErrSplitMismatch),
		errors.Is(err, escrow.ErrNegativeShare),
		errors.Is(err, escrow.ErrCurrencyMismatch):
		return errs.Mark(err, ErrIntegrity)
	default:
		return errs.Mark(err, ErrInvalidInput)
	}
}
