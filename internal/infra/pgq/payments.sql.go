package pgq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertPaymentEvent = `-- name: InsertPaymentEvent :execrows
INSERT INTO payment_events (provider, event_id, event_type, booking_id, received_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (provider, event_id) DO NOTHING`

type InsertPaymentEventParams struct {
	Provider   string
	EventID    string
	EventType  string
	BookingID  pgtype.UUID
	ReceivedAt pgtype.Timestamptz
}

func (q *Queries) InsertPaymentEvent(ctx context.Context, db DBTX, arg InsertPaymentEventParams) (int64, error) {
	result, err := db.Exec(ctx, insertPaymentEvent,
		arg.Provider,
		arg.EventID,
		arg.EventType,
		arg.BookingID,
		arg.ReceivedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// An expired key is reclaimed in place so the caller can reuse it after the retention window.
const insertIdempotencyKey = `-- name: InsertIdempotencyKey :execrows
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO UPDATE
SET endpoint          = EXCLUDED.endpoint,
    request_hash      = EXCLUDED.request_hash,
    status            = 'processing',
    result_booking_id = NULL,
    expires_at        = EXCLUDED.expires_at,
    created_at        = now()
WHERE idempotency_keys.expires_at < $6`

type InsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
	Now         pgtype.Timestamptz
}

func (q *Queries) InsertIdempotencyKey(ctx context.Context, db DBTX, arg InsertIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, insertIdempotencyKey,
		arg.Key,
		arg.UserID,
		arg.Endpoint,
		arg.RequestHash,
		arg.ExpiresAt,
		arg.Now,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getIdempotencyKey = `-- name: GetIdempotencyKey :one
SELECT key, user_id, endpoint, request_hash, status, result_booking_id, expires_at
FROM idempotency_keys WHERE key = $1 AND user_id = $2`

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, key, userID uuid.UUID) (IdempotencyKeys, error) {
	var i IdempotencyKeys
	err := db.QueryRow(ctx, getIdempotencyKey, key, userID).Scan(
		&i.Key,
		&i.UserID,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResultBookingID,
		&i.ExpiresAt,
	)
	return i, err
}

const completeIdempotencyKey = `-- name: CompleteIdempotencyKey :execrows
UPDATE idempotency_keys
SET status = 'completed', result_booking_id = $3
WHERE key = $1 AND user_id = $2 AND status = 'processing'`

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db DBTX, key, userID, bookingID uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, completeIdempotencyKey, key, userID, bookingID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
