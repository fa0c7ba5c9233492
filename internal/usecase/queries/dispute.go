package queries

import (
	"context"

	"rental-escrow/internal/domain/dispute"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

type DisputeQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*DisputeView, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) ([]*DisputeView, error)
}

type disputeQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewDisputeQueries(uow shared.UnitOfWork) DisputeQueries {
	return &disputeQueriesImpl{uow: uow}
}

func (q *disputeQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*DisputeView, error) {
	var view *DisputeView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := tx.Disputes().Get(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return commands.ErrDisputeNotFound
			}
			return err
		}
		if _, err := findBooking(ctx, tx, d.BookingID(), actor); err != nil {
			return err
		}
		view = NewDisputeView(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *disputeQueriesImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) ([]*DisputeView, error) {
	var views []*DisputeView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := findBooking(ctx, tx, bookingID, actor); err != nil {
			return err
		}
		rows, err := tx.Disputes().ListByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		views = make([]*DisputeView, 0, len(rows))
		for _, d := range rows {
			views = append(views, NewDisputeView(d))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// NewDisputeView is shared with command responses so both render a dispute the same way.
func NewDisputeView(d *dispute.Dispute) *DisputeView {
	v := &DisputeView{
		ID:           d.ID(),
		BookingID:    d.BookingID(),
		ReporterID:   d.ReporterID(),
		ReporterRole: string(d.ReporterRole()),
		Reason:       string(d.Reason()),
		Description:  d.Description(),
		Priority:     string(d.Priority()),
		Status:       d.Status().String(),
		Notes:        make([]NoteView, 0, len(d.Notes())),
		Evidence:     make([]EvidenceView, 0, len(d.Evidence())),
		CreatedAt:    d.CreatedAt(),
		UpdatedAt:    d.UpdatedAt(),
	}
	for _, n := range d.Notes() {
		v.Notes = append(v.Notes, NewNoteView(n))
	}
	for _, e := range d.Evidence() {
		v.Evidence = append(v.Evidence, NewEvidenceView(e))
	}
	if r := d.Resolution(); r != nil {
		rv := &ResolutionView{Text: r.Text, ResolvedBy: r.ResolvedBy, ResolvedAt: r.ResolvedAt}
		if r.HostShareRatio != nil {
			ratio := r.HostShareRatio.String()
			rv.HostShareRatio = &ratio
		}
		v.Resolution = rv
	}
	return v
}

func NewNoteView(n dispute.Note) NoteView {
	return NoteView{ID: n.ID, ParentID: n.ParentID, AuthorID: n.AuthorID, Message: n.Message, CreatedAt: n.CreatedAt}
}

func NewEvidenceView(e dispute.Evidence) EvidenceView {
	return EvidenceView{ID: e.ID, URL: e.URL, Type: string(e.Type), UploadedBy: e.UploadedBy, UploadedAt: e.UploadedAt}
}
