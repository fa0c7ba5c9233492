package pgq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createPayoutRequest = `-- name: CreatePayoutRequest :exec
INSERT INTO payout_requests (id, host_id, bank_account_id, amount, currency, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (q *Queries) CreatePayoutRequest(ctx context.Context, db DBTX, arg PayoutRequests) error {
	_, err := db.Exec(ctx, createPayoutRequest,
		arg.ID,
		arg.HostID,
		arg.BankAccountID,
		arg.Amount,
		arg.Currency,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const insertPayoutItem = `-- name: InsertPayoutItem :exec
INSERT INTO payout_items (payout_id, booking_id, amount, source)
VALUES ($1, $2, $3, $4)`

func (q *Queries) InsertPayoutItem(ctx context.Context, db DBTX, arg PayoutItems) error {
	_, err := db.Exec(ctx, insertPayoutItem, arg.PayoutID, arg.BookingID, arg.Amount, arg.Source)
	return err
}

const listPayoutRequests = `-- name: ListPayoutRequests :many
SELECT id, host_id, bank_account_id, amount, currency, status, created_at
FROM payout_requests
WHERE ($1::uuid IS NULL OR host_id = $1)
ORDER BY created_at DESC, id
LIMIT $2`

func (q *Queries) ListPayoutRequests(ctx context.Context, db DBTX, hostID pgtype.UUID, limit int32) ([]PayoutRequests, error) {
	rows, err := db.Query(ctx, listPayoutRequests, hostID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PayoutRequests
	for rows.Next() {
		var i PayoutRequests
		if err := rows.Scan(
			&i.ID,
			&i.HostID,
			&i.BankAccountID,
			&i.Amount,
			&i.Currency,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listPayoutItems = `-- name: ListPayoutItems :many
SELECT payout_id, booking_id, amount, source
FROM payout_items
WHERE payout_id = ANY($1::uuid[])
ORDER BY payout_id, booking_id`

func (q *Queries) ListPayoutItems(ctx context.Context, db DBTX, payoutIDs []uuid.UUID) ([]PayoutItems, error) {
	rows, err := db.Query(ctx, listPayoutItems, payoutIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PayoutItems
	for rows.Next() {
		var i PayoutItems
		if err := rows.Scan(&i.PayoutID, &i.BookingID, &i.Amount, &i.Source); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
