package pgq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const disputeColumns = `id, booking_id, reporter_id, reporter_role, reason, description, priority, status,
    resolution, resolved_by, resolved_at, host_share_ratio, created_at, updated_at`

func scanDispute(row pgx.Row) (Disputes, error) {
	var i Disputes
	err := row.Scan(
		&i.ID,
		&i.BookingID,
		&i.ReporterID,
		&i.ReporterRole,
		&i.Reason,
		&i.Description,
		&i.Priority,
		&i.Status,
		&i.Resolution,
		&i.ResolvedBy,
		&i.ResolvedAt,
		&i.HostShareRatio,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createDispute = `-- name: CreateDispute :exec
INSERT INTO disputes (` + disputeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func (q *Queries) CreateDispute(ctx context.Context, db DBTX, arg Disputes) error {
	_, err := db.Exec(ctx, createDispute,
		arg.ID,
		arg.BookingID,
		arg.ReporterID,
		arg.ReporterRole,
		arg.Reason,
		arg.Description,
		arg.Priority,
		arg.Status,
		arg.Resolution,
		arg.ResolvedBy,
		arg.ResolvedAt,
		arg.HostShareRatio,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getDispute = `-- name: GetDispute :one
SELECT ` + disputeColumns + ` FROM disputes WHERE id = $1`

func (q *Queries) GetDispute(ctx context.Context, db DBTX, id uuid.UUID) (Disputes, error) {
	return scanDispute(db.QueryRow(ctx, getDispute, id))
}

const getDisputeForUpdate = `-- name: GetDisputeForUpdate :one
SELECT ` + disputeColumns + ` FROM disputes WHERE id = $1 FOR UPDATE`

func (q *Queries) GetDisputeForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Disputes, error) {
	return scanDispute(db.QueryRow(ctx, getDisputeForUpdate, id))
}

const hasOpenDispute = `-- name: HasOpenDispute :one
SELECT EXISTS (SELECT 1 FROM disputes WHERE booking_id = $1 AND status IN ('open', 'pending'))`

func (q *Queries) HasOpenDispute(ctx context.Context, db DBTX, bookingID uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, hasOpenDispute, bookingID).Scan(&exists)
	return exists, err
}

const listDisputesByBooking = `-- name: ListDisputesByBooking :many
SELECT ` + disputeColumns + ` FROM disputes WHERE booking_id = $1 ORDER BY created_at DESC, id`

func (q *Queries) ListDisputesByBooking(ctx context.Context, db DBTX, bookingID uuid.UUID) ([]Disputes, error) {
	rows, err := db.Query(ctx, listDisputesByBooking, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Disputes
	for rows.Next() {
		i, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateDisputeState = `-- name: UpdateDisputeState :execrows
UPDATE disputes
SET status           = $3,
    resolution       = $4,
    resolved_by      = $5,
    resolved_at      = $6,
    host_share_ratio = $7,
    updated_at       = $8
WHERE id = $1 AND status = $2`

type UpdateDisputeStateParams struct {
	ID             uuid.UUID
	ExpectedStatus string
	Status         string
	Resolution     pgtype.Text
	ResolvedBy     pgtype.UUID
	ResolvedAt     pgtype.Timestamptz
	HostShareRatio pgtype.Numeric
	UpdatedAt      pgtype.Timestamptz
}

func (q *Queries) UpdateDisputeState(ctx context.Context, db DBTX, arg UpdateDisputeStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateDisputeState,
		arg.ID,
		arg.ExpectedStatus,
		arg.Status,
		arg.Resolution,
		arg.ResolvedBy,
		arg.ResolvedAt,
		arg.HostShareRatio,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const insertDisputeNote = `-- name: InsertDisputeNote :exec
INSERT INTO dispute_notes (id, dispute_id, parent_id, author_id, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (q *Queries) InsertDisputeNote(ctx context.Context, db DBTX, arg DisputeNotes) error {
	_, err := db.Exec(ctx, insertDisputeNote,
		arg.ID,
		arg.DisputeID,
		arg.ParentID,
		arg.AuthorID,
		arg.Message,
		arg.CreatedAt,
	)
	return err
}

const listDisputeNotes = `-- name: ListDisputeNotes :many
SELECT id, dispute_id, parent_id, author_id, message, created_at
FROM dispute_notes WHERE dispute_id = $1 ORDER BY created_at, id`

func (q *Queries) ListDisputeNotes(ctx context.Context, db DBTX, disputeID uuid.UUID) ([]DisputeNotes, error) {
	rows, err := db.Query(ctx, listDisputeNotes, disputeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DisputeNotes
	for rows.Next() {
		var i DisputeNotes
		if err := rows.Scan(&i.ID, &i.DisputeID, &i.ParentID, &i.AuthorID, &i.Message, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertDisputeEvidence = `-- name: InsertDisputeEvidence :exec
INSERT INTO dispute_evidence (id, dispute_id, url, type, uploaded_by, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (q *Queries) InsertDisputeEvidence(ctx context.Context, db DBTX, arg DisputeEvidence) error {
	_, err := db.Exec(ctx, insertDisputeEvidence,
		arg.ID,
		arg.DisputeID,
		arg.Url,
		arg.Type,
		arg.UploadedBy,
		arg.UploadedAt,
	)
	return err
}

const listDisputeEvidence = `-- name: ListDisputeEvidence :many
SELECT id, dispute_id, url, type, uploaded_by, uploaded_at
FROM dispute_evidence WHERE dispute_id = $1 ORDER BY uploaded_at, id`

func (q *Queries) ListDisputeEvidence(ctx context.Context, db DBTX, disputeID uuid.UUID) ([]DisputeEvidence, error) {
	rows, err := db.Query(ctx, listDisputeEvidence, disputeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DisputeEvidence
	for rows.Next() {
		var i DisputeEvidence
		if err := rows.Scan(&i.ID, &i.DisputeID, &i.Url, &i.Type, &i.UploadedBy, &i.UploadedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
