package pgq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const escrowColumns = `id, booking_id, held_amount, currency, status, release_eligible_at, release_ref, released_at,
    released_by, freeze_reason, frozen_at, frozen_by, host_share, guest_share, resolved_by, resolved_at,
    created_at, updated_at`

func scanEscrow(row pgx.Row) (Escrows, error) {
	var i Escrows
	err := row.Scan(
		&i.ID,
		&i.BookingID,
		&i.HeldAmount,
		&i.Currency,
		&i.Status,
		&i.ReleaseEligibleAt,
		&i.ReleaseRef,
		&i.ReleasedAt,
		&i.ReleasedBy,
		&i.FreezeReason,
		&i.FrozenAt,
		&i.FrozenBy,
		&i.HostShare,
		&i.GuestShare,
		&i.ResolvedBy,
		&i.ResolvedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createEscrow = `-- name: CreateEscrow :exec
INSERT INTO escrows (` + escrowColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

func (q *Queries) CreateEscrow(ctx context.Context, db DBTX, arg Escrows) error {
	_, err := db.Exec(ctx, createEscrow,
		arg.ID,
		arg.BookingID,
		arg.HeldAmount,
		arg.Currency,
		arg.Status,
		arg.ReleaseEligibleAt,
		arg.ReleaseRef,
		arg.ReleasedAt,
		arg.ReleasedBy,
		arg.FreezeReason,
		arg.FrozenAt,
		arg.FrozenBy,
		arg.HostShare,
		arg.GuestShare,
		arg.ResolvedBy,
		arg.ResolvedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getEscrowByBooking = `-- name: GetEscrowByBooking :one
SELECT ` + escrowColumns + ` FROM escrows WHERE booking_id = $1`

func (q *Queries) GetEscrowByBooking(ctx context.Context, db DBTX, bookingID uuid.UUID) (Escrows, error) {
	return scanEscrow(db.QueryRow(ctx, getEscrowByBooking, bookingID))
}

const getEscrowByBookingForUpdate = `-- name: GetEscrowByBookingForUpdate :one
SELECT ` + escrowColumns + ` FROM escrows WHERE booking_id = $1 FOR UPDATE`

func (q *Queries) GetEscrowByBookingForUpdate(ctx context.Context, db DBTX, bookingID uuid.UUID) (Escrows, error) {
	return scanEscrow(db.QueryRow(ctx, getEscrowByBookingForUpdate, bookingID))
}

const updateEscrowState = `-- name: UpdateEscrowState :execrows
UPDATE escrows
SET status        = $3,
    release_ref   = $4,
    released_at   = $5,
    released_by   = $6,
    freeze_reason = $7,
    frozen_at     = $8,
    frozen_by     = $9,
    host_share    = $10,
    guest_share   = $11,
    resolved_by   = $12,
    resolved_at   = $13,
    updated_at    = $14
WHERE id = $1 AND status = $2`

type UpdateEscrowStateParams struct {
	ID             uuid.UUID
	ExpectedStatus string
	Status         string
	ReleaseRef     pgtype.Text
	ReleasedAt     pgtype.Timestamptz
	ReleasedBy     pgtype.UUID
	FreezeReason   pgtype.Text
	FrozenAt       pgtype.Timestamptz
	FrozenBy       pgtype.UUID
	HostShare      pgtype.Numeric
	GuestShare     pgtype.Numeric
	ResolvedBy     pgtype.UUID
	ResolvedAt     pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

func (q *Queries) UpdateEscrowState(ctx context.Context, db DBTX, arg UpdateEscrowStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateEscrowState,
		arg.ID,
		arg.ExpectedStatus,
		arg.Status,
		arg.ReleaseRef,
		arg.ReleasedAt,
		arg.ReleasedBy,
		arg.FreezeReason,
		arg.FrozenAt,
		arg.FrozenBy,
		arg.HostShare,
		arg.GuestShare,
		arg.ResolvedBy,
		arg.ResolvedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const insertEscrowEvent = `-- name: InsertEscrowEvent :exec
INSERT INTO escrow_events (id, escrow_id, booking_id, action, from_status, to_status, actor_id, detail, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (q *Queries) InsertEscrowEvent(ctx context.Context, db DBTX, arg EscrowEvents) error {
	_, err := db.Exec(ctx, insertEscrowEvent,
		arg.ID,
		arg.EscrowID,
		arg.BookingID,
		arg.Action,
		arg.FromStatus,
		arg.ToStatus,
		arg.ActorID,
		arg.Detail,
		arg.CreatedAt,
	)
	return err
}

const listEscrowEvents = `-- name: ListEscrowEvents :many
SELECT id, escrow_id, booking_id, action, from_status, to_status, actor_id, detail, created_at
FROM escrow_events
WHERE booking_id = $1
ORDER BY created_at, id`

func (q *Queries) ListEscrowEvents(ctx context.Context, db DBTX, bookingID uuid.UUID) ([]EscrowEvents, error) {
	rows, err := db.Query(ctx, listEscrowEvents, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EscrowEvents
	for rows.Next() {
		var i EscrowEvents
		if err := rows.Scan(
			&i.ID,
			&i.EscrowID,
			&i.BookingID,
			&i.Action,
			&i.FromStatus,
			&i.ToStatus,
			&i.ActorID,
			&i.Detail,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listReleasableEscrows = `-- name: ListReleasableEscrows :many
SELECT e.booking_id FROM escrows e
JOIN bookings b ON b.id = e.booking_id
WHERE e.status = 'held' AND e.release_eligible_at <= $1
  AND b.status IN ('active', 'completed')
ORDER BY e.release_eligible_at
LIMIT $2`

func (q *Queries) ListReleasableEscrows(ctx context.Context, db DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	return collectIDs(db.Query(ctx, listReleasableEscrows, now, limit))
}

const listUnpaidSettledEscrows = `-- name: ListUnpaidSettledEscrows :many
SELECT e.booking_id, b.host_id, e.status, e.currency, b.host_payout, e.host_share
FROM escrows e
JOIN bookings b ON b.id = e.booking_id
LEFT JOIN payout_items pi ON pi.booking_id = e.booking_id
WHERE pi.booking_id IS NULL
  AND (e.status = 'released' OR (e.status = 'split' AND e.host_share > 0))
ORDER BY NOT EXISTS (
    SELECT 1 FROM host_bank_accounts a WHERE a.host_id = b.host_id AND a.is_default
), e.updated_at, e.booking_id
LIMIT $1`

type ListUnpaidSettledEscrowsRow struct {
	BookingID  uuid.UUID
	HostID     uuid.UUID
	Status     string
	Currency   string
	HostPayout pgtype.Numeric
	HostShare  pgtype.Numeric
}

func (q *Queries) ListUnpaidSettledEscrows(ctx context.Context, db DBTX, limit int32) ([]ListUnpaidSettledEscrowsRow, error) {
	rows, err := db.Query(ctx, listUnpaidSettledEscrows, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListUnpaidSettledEscrowsRow
	for rows.Next() {
		var i ListUnpaidSettledEscrowsRow
		if err := rows.Scan(
			&i.BookingID,
			&i.HostID,
			&i.Status,
			&i.Currency,
			&i.HostPayout,
			&i.HostShare,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
