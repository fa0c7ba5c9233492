package repository

import (
	"context"

	"rental-escrow/internal/domain/payout"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository/converter"
	"rental-escrow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PayoutQueries interface {
	CreatePayoutRequest(ctx context.Context, db pgq.DBTX, arg pgq.PayoutRequests) error
	InsertPayoutItem(ctx context.Context, db pgq.DBTX, arg pgq.PayoutItems) error
	ListPayoutRequests(ctx context.Context, db pgq.DBTX, hostID pgtype.UUID, limit int32) ([]pgq.PayoutRequests, error)
	ListPayoutItems(ctx context.Context, db pgq.DBTX, payoutIDs []uuid.UUID) ([]pgq.PayoutItems, error)
}

type PayoutRepository struct {
	queries PayoutQueries
	db      pgq.DBTX
}

func NewPayoutRepository(queries PayoutQueries, db pgq.DBTX) *PayoutRepository {
	return &PayoutRepository{
		queries: queries,
		db:      db,
	}
}

// Create writes the request and its items; the unique booking_id on items rejects a booking
// that was already paid out.
func (r *PayoutRepository) Create(ctx context.Context, req *payout.Request) error {
	if err := r.queries.CreatePayoutRequest(ctx, r.db, converter.PayoutRequestToRow(req)); err != nil {
		return infra.ClassifyPgErr("failed to create payout request", err)
	}
	for _, item := range converter.PayoutItemsToRows(req) {
		if err := r.queries.InsertPayoutItem(ctx, r.db, item); err != nil {
			return infra.ClassifyPgErr("failed to insert payout item", err)
		}
	}
	return nil
}

func (r *PayoutRepository) List(ctx context.Context, hostID *uuid.UUID, limit int) ([]*payout.Request, error) {
	rows, err := r.queries.ListPayoutRequests(ctx, r.db, pgconv.UUIDPtrToPgtype(hostID), int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list payout requests", err)
	}
	if len(rows) == 0 {
		return []*payout.Request{}, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	items, err := r.queries.ListPayoutItems(ctx, r.db, ids)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list payout items", err)
	}
	byPayout := make(map[uuid.UUID][]pgq.PayoutItems, len(rows))
	for _, it := range items {
		byPayout[it.PayoutID] = append(byPayout[it.PayoutID], it)
	}
	out := make([]*payout.Request, 0, len(rows))
	for _, row := range rows {
		req, err := converter.PayoutRequestFromRow(row, byPayout[row.ID])
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert payout row", err)
		}
		out = append(out, req)
	}
	return out, nil
}
