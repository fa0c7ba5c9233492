package repository

import (
	"context"
	"time"

	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/pgconv"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentEventQueries interface {
	InsertPaymentEvent(ctx context.Context, db pgq.DBTX, arg pgq.InsertPaymentEventParams) (int64, error)
}

type PaymentEventRepository struct {
	queries PaymentEventQueries
	db      pgq.DBTX
}

func NewPaymentEventRepository(queries PaymentEventQueries, db pgq.DBTX) *PaymentEventRepository {
	return &PaymentEventRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentEventRepository) Record(ctx context.Context, provider, eventID, eventType string, bookingID *uuid.UUID, receivedAt time.Time) (bool, error) {
	n, err := r.queries.InsertPaymentEvent(ctx, r.db, pgq.InsertPaymentEventParams{
		Provider:   provider,
		EventID:    eventID,
		EventType:  eventType,
		BookingID:  pgconv.UUIDPtrToPgtype(bookingID),
		ReceivedAt: pgconv.TimeToPgtype(receivedAt),
	})
	if err != nil {
		return false, infra.ClassifyPgErr("failed to record payment event", err)
	}
	return n > 0, nil
}

type IdempotencyQueries interface {
	InsertIdempotencyKey(ctx context.Context, db pgq.DBTX, arg pgq.InsertIdempotencyKeyParams) (int64, error)
	GetIdempotencyKey(ctx context.Context, db pgq.DBTX, key, userID uuid.UUID) (pgq.IdempotencyKeys, error)
	CompleteIdempotencyKey(ctx context.Context, db pgq.DBTX, key, userID, bookingID uuid.UUID) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyQueries
	db      pgq.DBTX
	now     func() time.Time
}

func NewIdempotencyRepository(queries IdempotencyQueries, db pgq.DBTX, now func() time.Time) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
		now:     now,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	n, err := r.queries.InsertIdempotencyKey(ctx, r.db, pgq.InsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
		Now:         pgconv.TimeToPgtype(r.now()),
	})
	if err != nil {
		return false, infra.ClassifyPgErr("failed to insert idempotency key", err)
	}
	return n > 0, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, r.db, key, userID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to get idempotency key", err)
	}
	return &shared.IdempotencyRecord{
		Key:             row.Key,
		UserID:          row.UserID,
		Endpoint:        row.Endpoint,
		Status:          row.Status,
		RequestHash:     row.RequestHash,
		ResultBookingID: pgconv.UUIDPtrFromPgtype(row.ResultBookingID),
		ExpiresAt:       pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, userID, bookingID uuid.UUID) error {
	n, err := r.queries.CompleteIdempotencyKey(ctx, r.db, key, userID, bookingID)
	if err != nil {
		return infra.ClassifyPgErr("failed to complete idempotency key", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(infra.KindStaleState, "idempotency key is not processing", nil)
	}
	return nil
}
