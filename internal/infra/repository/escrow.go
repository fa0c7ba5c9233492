package repository

import (
	"context"
	"time"

	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository/converter"
	"rental-escrow/internal/pkg/pgconv"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type EscrowQueries interface {
	CreateEscrow(ctx context.Context, db pgq.DBTX, arg pgq.Escrows) error
	GetEscrowByBooking(ctx context.Context, db pgq.DBTX, bookingID uuid.UUID) (pgq.Escrows, error)
	GetEscrowByBookingForUpdate(ctx context.Context, db pgq.DBTX, bookingID uuid.UUID) (pgq.Escrows, error)
	UpdateEscrowState(ctx context.Context, db pgq.DBTX, arg pgq.UpdateEscrowStateParams) (int64, error)
	InsertEscrowEvent(ctx context.Context, db pgq.DBTX, arg pgq.EscrowEvents) error
	ListEscrowEvents(ctx context.Context, db pgq.DBTX, bookingID uuid.UUID) ([]pgq.EscrowEvents, error)
	ListReleasableEscrows(ctx context.Context, db pgq.DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error)
	ListUnpaidSettledEscrows(ctx context.Context, db pgq.DBTX, limit int32) ([]pgq.ListUnpaidSettledEscrowsRow, error)
}

type EscrowRepository struct {
	queries EscrowQueries
	db      pgq.DBTX
}

func NewEscrowRepository(queries EscrowQueries, db pgq.DBTX) *EscrowRepository {
	return &EscrowRepository{
		queries: queries,
		db:      db,
	}
}

func (r *EscrowRepository) Create(ctx context.Context, e *escrow.Escrow) error {
	if err := r.queries.CreateEscrow(ctx, r.db, converter.EscrowToRow(e)); err != nil {
		return infra.ClassifyPgErr("failed to create escrow", err)
	}
	return nil
}

func (r *EscrowRepository) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*escrow.Escrow, error) {
	row, err := r.queries.GetEscrowByBooking(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to get escrow", err)
	}
	return toEscrow(row)
}

func (r *EscrowRepository) GetByBookingForUpdate(ctx context.Context, bookingID uuid.UUID) (*escrow.Escrow, error) {
	row, err := r.queries.GetEscrowByBookingForUpdate(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to lock escrow", err)
	}
	return toEscrow(row)
}

func (r *EscrowRepository) Update(ctx context.Context, e *escrow.Escrow, expected escrow.Status) error {
	n, err := r.queries.UpdateEscrowState(ctx, r.db, converter.EscrowToStateParams(e, expected))
	if err != nil {
		return infra.ClassifyPgErr("failed to update escrow", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(infra.KindStaleState, "escrow status changed concurrently", nil)
	}
	return nil
}

func (r *EscrowRepository) AppendEvent(ctx context.Context, ev escrow.Event) error {
	if err := r.queries.InsertEscrowEvent(ctx, r.db, converter.EscrowEventToRow(ev)); err != nil {
		return infra.ClassifyPgErr("failed to append escrow event", err)
	}
	return nil
}

func (r *EscrowRepository) ListEvents(ctx context.Context, bookingID uuid.UUID) ([]escrow.Event, error) {
	rows, err := r.queries.ListEscrowEvents(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list escrow events", err)
	}
	events := make([]escrow.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, converter.EscrowEventFromRow(row))
	}
	return events, nil
}

// ListReleasable returns held escrows past their eligibility whose stay is under way or over.
func (r *EscrowRepository) ListReleasable(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListReleasableEscrows(ctx, r.db, pgconv.TimeToPgtype(now), int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list releasable escrows", err)
	}
	return ids, nil
}

// ListUnpaidSettled returns released escrows and splits with a host share that no payout covers
// yet. Hosts with a default bank account come first, so hosts still missing one cannot fill the
// batch and hold back everyone else.
func (r *EscrowRepository) ListUnpaidSettled(ctx context.Context, limit int) ([]shared.SettledEscrow, error) {
	rows, err := r.queries.ListUnpaidSettledEscrows(ctx, r.db, int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list settled escrows", err)
	}
	out := make([]shared.SettledEscrow, 0, len(rows))
	for _, row := range rows {
		s, err := converter.SettledEscrowFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert settled escrow row", err)
		}
		if s.HostShare.IsZero() {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func toEscrow(row pgq.Escrows) (*escrow.Escrow, error) {
	e, err := converter.EscrowFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert escrow row", err)
	}
	return e, nil
}
