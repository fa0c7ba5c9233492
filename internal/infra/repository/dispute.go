package repository

import (
	"context"

	"rental-escrow/internal/domain/dispute"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type DisputeQueries interface {
	CreateDispute(ctx context.Context, db pgq.DBTX, arg pgq.Disputes) error
	GetDispute(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Disputes, error)
	GetDisputeForUpdate(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Disputes, error)
	HasOpenDispute(ctx context.Context, db pgq.DBTX, bookingID uuid.UUID) (bool, error)
	ListDisputesByBooking(ctx context.Context, db pgq.DBTX, bookingID uuid.UUID) ([]pgq.Disputes, error)
	UpdateDisputeState(ctx context.Context, db pgq.DBTX, arg pgq.UpdateDisputeStateParams) (int64, error)
	InsertDisputeNote(ctx context.Context, db pgq.DBTX, arg pgq.DisputeNotes) error
	ListDisputeNotes(ctx context.Context, db pgq.DBTX, disputeID uuid.UUID) ([]pgq.DisputeNotes, error)
	InsertDisputeEvidence(ctx context.Context, db pgq.DBTX, arg pgq.DisputeEvidence) error
	ListDisputeEvidence(ctx context.Context, db pgq.DBTX, disputeID uuid.UUID) ([]pgq.DisputeEvidence, error)
}

type DisputeRepository struct {
	queries DisputeQueries
	db      pgq.DBTX
}

func NewDisputeRepository(queries DisputeQueries, db pgq.DBTX) *DisputeRepository {
	return &DisputeRepository{
		queries: queries,
		db:      db,
	}
}

func (r *DisputeRepository) Create(ctx context.Context, d *dispute.Dispute) error {
	if err := r.queries.CreateDispute(ctx, r.db, converter.DisputeToRow(d)); err != nil {
		return infra.ClassifyPgErr("failed to create dispute", err)
	}
	return nil
}

func (r *DisputeRepository) Get(ctx context.Context, id uuid.UUID) (*dispute.Dispute, error) {
	row, err := r.queries.GetDispute(ctx, r.db, id)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to get dispute", err)
	}
	return r.hydrate(ctx, row)
}

func (r *DisputeRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dispute.Dispute, error) {
	row, err := r.queries.GetDisputeForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to lock dispute", err)
	}
	return r.hydrate(ctx, row)
}

func (r *DisputeRepository) HasOpenForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	open, err := r.queries.HasOpenDispute(ctx, r.db, bookingID)
	if err != nil {
		return false, infra.ClassifyPgErr("failed to check open disputes", err)
	}
	return open, nil
}

func (r *DisputeRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*dispute.Dispute, error) {
	rows, err := r.queries.ListDisputesByBooking(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list disputes", err)
	}
	out := make([]*dispute.Dispute, 0, len(rows))
	for _, row := range rows {
		d, err := r.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *DisputeRepository) Update(ctx context.Context, d *dispute.Dispute, expected dispute.Status) error {
	n, err := r.queries.UpdateDisputeState(ctx, r.db, converter.DisputeToStateParams(d, expected))
	if err != nil {
		return infra.ClassifyPgErr("failed to update dispute", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(infra.KindStaleState, "dispute status changed concurrently", nil)
	}
	return nil
}

func (r *DisputeRepository) AddNote(ctx context.Context, disputeID uuid.UUID, n dispute.Note) error {
	if err := r.queries.InsertDisputeNote(ctx, r.db, converter.DisputeNoteToRow(disputeID, n)); err != nil {
		return infra.ClassifyPgErr("failed to add dispute note", err)
	}
	return nil
}

func (r *DisputeRepository) AddEvidence(ctx context.Context, disputeID uuid.UUID, e dispute.Evidence) error {
	if err := r.queries.InsertDisputeEvidence(ctx, r.db, converter.DisputeEvidenceToRow(disputeID, e)); err != nil {
		return infra.ClassifyPgErr("failed to add dispute evidence", err)
	}
	return nil
}

func (r *DisputeRepository) hydrate(ctx context.Context, row pgq.Disputes) (*dispute.Dispute, error) {
	evidence, err := r.queries.ListDisputeEvidence(ctx, r.db, row.ID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list dispute evidence", err)
	}
	notes, err := r.queries.ListDisputeNotes(ctx, r.db, row.ID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list dispute notes", err)
	}
	d, err := converter.DisputeFromRow(row, evidence, notes)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert dispute row", err)
	}
	return d, nil
}
