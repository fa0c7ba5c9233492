package commands

import (
	"context"
	"log/slog"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/dispute"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OpenDisputeInput struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type AddNoteInput struct {
	Message  string     `json:"message"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type AddEvidenceInput struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type ResolveDisputeInput struct {
	Resolution     string          `json:"resolution"`
	HostShareRatio decimal.Decimal `json:"host_share_ratio"`
}

type DisputeCommands interface {
	Open(ctx context.Context, bookingID uuid.UUID, in OpenDisputeInput, actor shared.Actor) (*dispute.Dispute, error)
	AddNote(ctx context.Context, disputeID uuid.UUID, in AddNoteInput, actor shared.Actor) (*dispute.Note, error)
	AddEvidence(ctx context.Context, disputeID uuid.UUID, in AddEvidenceInput, actor shared.Actor) (*dispute.Evidence, error)
	MarkUnderReview(ctx context.Context, disputeID uuid.UUID, actor shared.Actor) (*dispute.Dispute, error)
	Resolve(ctx context.Context, disputeID uuid.UUID, in ResolveDisputeInput, actor shared.Actor) (*dispute.Dispute, error)
	Close(ctx context.Context, disputeID uuid.UUID, text string, actor shared.Actor) (*dispute.Dispute, error)
}

type disputeUseCaseImpl struct {
	uow        shared.UnitOfWork
	ledger     *ledger.Ledger
	dispatcher *Dispatcher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewDisputeUseCase(uow shared.UnitOfWork, l *ledger.Ledger, dispatcher *Dispatcher, clk clock.Clock, logger *slog.Logger) DisputeCommands {
	return &disputeUseCaseImpl{uow: uow, ledger: l, dispatcher: dispatcher, clock: clk, logger: logger}
}

// Open files a dispute and freezes the booking's escrow in the same transaction.
func (uc *disputeUseCaseImpl) Open(ctx context.Context, bookingID uuid.UUID, in OpenDisputeInput, actor shared.Actor) (*dispute.Dispute, error) {
	reason, err := dispute.NewReason(in.Reason)
	if err != nil {
		return nil, classify(err)
	}
	priority, err := dispute.NewPriority(in.Priority)
	if err != nil {
		return nil, classify(err)
	}

	now := uc.clock.Now()
	var (
		fx     *effects
		result *dispute.Dispute
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		role, err := reporterRole(b, actor)
		if err != nil {
			return err
		}
		if !b.CanOpenDispute() {
			return errs.Wrap(ErrInvalidTransition, "booking status does not allow a dispute")
		}
		open, err := tx.Disputes().HasOpenForBooking(ctx, b.ID())
		if err != nil {
			return err
		}
		if open {
			return ErrDisputeAlreadyOpen
		}

		d, err := dispute.NewDispute(b.ID(), actor.ID, role, reason, in.Description, priority, now)
		if err != nil {
			return err
		}
		if err := tx.Disputes().Create(ctx, d); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
				return ErrDisputeAlreadyOpen
			}
			return err
		}

		ev, err := uc.ledger.Freeze(ctx, tx, b.ID(), "dispute opened: "+string(reason), &actor.ID, now)
		if err != nil {
			return err
		}
		from := b.Status()
		if err := b.MarkDisputed(now); err != nil {
			return err
		}
		if b.Status() != from {
			if err := tx.Bookings().Update(ctx, b, from); err != nil {
				return err
			}
			fx.booking(b.Status())
		}

		fx.escrow(ev)
		payload := map[string]any{"booking_id": b.ID(), "dispute_id": d.ID(), "reason": string(reason)}
		for _, id := range otherParties(b, actor.ID) {
			fx.notify(id, shared.NotifyDisputeOpened, payload)
		}
		result = d
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return result, nil
}

func (uc *disputeUseCaseImpl) AddNote(ctx context.Context, disputeID uuid.UUID, in AddNoteInput, actor shared.Actor) (*dispute.Note, error) {
	now := uc.clock.Now()
	var (
		fx   *effects
		note dispute.Note
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		d, b, err := uc.lockDispute(ctx, tx, disputeID)
		if err != nil {
			return err
		}
		if _, err := reporterRole(b, actor); err != nil {
			return err
		}
		note, err = d.AddNote(actor.ID, in.Message, in.ParentID, now)
		if err != nil {
			return err
		}
		if err := tx.Disputes().AddNote(ctx, d.ID(), note); err != nil {
			return err
		}
		payload := map[string]any{"booking_id": b.ID(), "dispute_id": d.ID(), "note_id": note.ID}
		for _, id := range otherParties(b, actor.ID) {
			fx.notify(id, shared.NotifyDisputeNote, payload)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return &note, nil
}

func (uc *disputeUseCaseImpl) AddEvidence(ctx context.Context, disputeID uuid.UUID, in AddEvidenceInput, actor shared.Actor) (*dispute.Evidence, error) {
	typ, err := dispute.NewEvidenceType(in.Type)
	if err != nil {
		return nil, classify(err)
	}
	now := uc.clock.Now()
	var evidence dispute.Evidence
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, b, err := uc.lockDispute(ctx, tx, disputeID)
		if err != nil {
			return err
		}
		if _, err := reporterRole(b, actor); err != nil {
			return err
		}
		evidence, err = d.AddEvidence(actor.ID, in.URL, typ, now)
		if err != nil {
			return err
		}
		return tx.Disputes().AddEvidence(ctx, d.ID(), evidence)
	})
	if err != nil {
		return nil, classify(err)
	}
	return &evidence, nil
}

func (uc *disputeUseCaseImpl) MarkUnderReview(ctx context.Context, disputeID uuid.UUID, actor shared.Actor) (*dispute.Dispute, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	now := uc.clock.Now()
	var result *dispute.Dispute
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, _, err := uc.lockDispute(ctx, tx, disputeID)
		if err != nil {
			return err
		}
		from := d.Status()
		if err := d.MarkUnderReview(now); err != nil {
			return err
		}
		if err := tx.Disputes().Update(ctx, d, from); err != nil {
			return err
		}
		result = d
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

// Resolve splits the frozen escrow by the host's share ratio. The host share is rounded and the
// guest receives the remainder.
func (uc *disputeUseCaseImpl) Resolve(ctx context.Context, disputeID uuid.UUID, in ResolveDisputeInput, actor shared.Actor) (*dispute.Dispute, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	now := uc.clock.Now()
	var (
		fx     *effects
		result *dispute.Dispute
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		d, b, err := uc.lockDispute(ctx, tx, disputeID)
		if err != nil {
			return err
		}
		from := d.Status()
		if err := d.Resolve(actor.ID, in.Resolution, in.HostShareRatio, now); err != nil {
			return err
		}

		e, err := uc.ledger.Get(ctx, tx, b.ID())
		if err != nil {
			return err
		}
		hostShare, guestShare, err := escrow.SharesForRatio(e.Held(), in.HostShareRatio)
		if err != nil {
			return err
		}
		ev, err := uc.ledger.Split(ctx, tx, b.ID(), hostShare, guestShare, actor.ID, now)
		if err != nil {
			return err
		}
		if err := tx.Disputes().Update(ctx, d, from); err != nil {
			return err
		}

		bookingFrom := b.Status()
		if err := b.SettleDispute(actor.ID, in.Resolution, now); err != nil {
			return err
		}
		b.RecordRefund(guestShare, now)
		if err := tx.Bookings().Update(ctx, b, bookingFrom); err != nil {
			return err
		}

		fx.escrow(ev)
		if b.Status() != bookingFrom {
			fx.booking(b.Status())
		}
		payload := map[string]any{
			"booking_id":  b.ID(),
			"dispute_id":  d.ID(),
			"host_share":  hostShare.String(),
			"guest_share": guestShare.String(),
		}
		fx.notify(b.GuestID(), shared.NotifyDisputeResolved, payload)
		fx.notify(b.HostID(), shared.NotifyDisputeResolved, payload)
		if b.Status().IsCancelled() {
			fx.notify(b.GuestID(), shared.NotifyBookingCancelled, map[string]any{"booking_id": b.ID(), "status": b.Status().String(), "reason": in.Resolution})
		}
		result = d
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return result, nil
}

// Close ends the dispute without a fund decision: the escrow goes back to held and the booking
// to the status it had before.
func (uc *disputeUseCaseImpl) Close(ctx context.Context, disputeID uuid.UUID, text string, actor shared.Actor) (*dispute.Dispute, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	now := uc.clock.Now()
	var (
		fx     *effects
		result *dispute.Dispute
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		d, b, err := uc.lockDispute(ctx, tx, disputeID)
		if err != nil {
			return err
		}
		from := d.Status()
		if err := d.Close(actor.ID, text, now); err != nil {
			return err
		}
		ev, err := uc.ledger.Unfreeze(ctx, tx, b.ID(), &actor.ID, now)
		if err != nil {
			return err
		}
		if err := tx.Disputes().Update(ctx, d, from); err != nil {
			return err
		}
		bookingFrom := b.Status()
		if err := b.RestoreAfterDispute(now); err != nil {
			return err
		}
		if b.Status() != bookingFrom {
			if err := tx.Bookings().Update(ctx, b, bookingFrom); err != nil {
				return err
			}
			fx.booking(b.Status())
		}

		fx.escrow(ev)
		payload := map[string]any{"booking_id": b.ID(), "dispute_id": d.ID()}
		fx.notify(b.GuestID(), shared.NotifyDisputeClosed, payload)
		fx.notify(b.HostID(), shared.NotifyDisputeClosed, payload)
		result = d
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return result, nil
}

// lockDispute locks the booking before the dispute so every writer takes the same order.
func (uc *disputeUseCaseImpl) lockDispute(ctx context.Context, tx shared.Tx, disputeID uuid.UUID) (*dispute.Dispute, *booking.Booking, error) {
	found, err := tx.Disputes().Get(ctx, disputeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrDisputeNotFound
		}
		return nil, nil, err
	}
	b, err := lockBooking(ctx, tx, found.BookingID())
	if err != nil {
		return nil, nil, err
	}
	d, err := tx.Disputes().GetForUpdate(ctx, disputeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrDisputeNotFound
		}
		return nil, nil, err
	}
	return d, b, nil
}

func reporterRole(b *booking.Booking, actor shared.Actor) (dispute.ReporterRole, error) {
	switch {
	case actor.ID == b.GuestID():
		return dispute.ReporterGuest, nil
	case actor.ID == b.HostID():
		return dispute.ReporterHost, nil
	case actor.IsAdmin():
		return dispute.ReporterAdmin, nil
	default:
		return "", ErrNotParticipant
	}
}

func otherParties(b *booking.Booking, actorID uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	for _, id := range []uuid.UUID{b.GuestID(), b.HostID()} {
		if id != actorID {
			ids = append(ids, id)
		}
	}
	return ids
}
