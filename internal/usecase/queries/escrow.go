package queries

import (
	"context"

	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

type EscrowQueries interface {
	GetByBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) (*EscrowView, error)
}

type escrowQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewEscrowQueries(uow shared.UnitOfWork) EscrowQueries {
	return &escrowQueriesImpl{uow: uow}
}

func (q *escrowQueriesImpl) GetByBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) (*EscrowView, error) {
	var view *EscrowView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := findBooking(ctx, tx, bookingID, actor); err != nil {
			return err
		}
		e, err := tx.Escrows().GetByBooking(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return commands.ErrEscrowNotFound
			}
			return err
		}
		events, err := tx.Escrows().ListEvents(ctx, bookingID)
		if err != nil {
			return err
		}
		view = newEscrowView(e, events)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func newEscrowView(e *escrow.Escrow, events []escrow.Event) *EscrowView {
	v := &EscrowView{
		ID:                e.ID(),
		BookingID:         e.BookingID(),
		Status:            e.Status().String(),
		Held:              NewMoneyView(e.Held()),
		ReleaseEligibleAt: e.ReleaseEligibleAt(),
		ReleaseRef:        e.ReleaseRef(),
		ReleasedAt:        e.ReleasedAt(),
		FreezeReason:      e.FreezeReason(),
		FrozenAt:          e.FrozenAt(),
		Events:            make([]EscrowEventView, 0, len(events)),
	}
	if s := e.SplitResult(); s != nil {
		v.Split = &SplitView{
			HostShare:  NewMoneyView(s.HostShare),
			GuestShare: NewMoneyView(s.GuestShare),
			ResolvedBy: s.ResolvedBy,
			ResolvedAt: s.ResolvedAt,
		}
	}
	for _, ev := range events {
		item := EscrowEventView{
			ID:       ev.ID,
			Action:   string(ev.Action),
			ToStatus: ev.ToStatus.String(),
			Actor:    ev.Actor,
			Detail:   ev.Detail,
			At:       ev.At,
		}
		if ev.FromStatus != nil {
			from := ev.FromStatus.String()
			item.FromStatus = &from
		}
		v.Events = append(v.Events, item)
	}
	return v
}
