package pgq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const voucherColumns = `id, booking_id, number, amount, currency, expires_at, status, instructions, agency_code,
    transaction_id, validated_by, validated_at, notes, created_at, updated_at`

func scanVoucher(row pgx.Row) (CashVouchers, error) {
	var i CashVouchers
	err := row.Scan(
		&i.ID,
		&i.BookingID,
		&i.Number,
		&i.Amount,
		&i.Currency,
		&i.ExpiresAt,
		&i.Status,
		&i.Instructions,
		&i.AgencyCode,
		&i.TransactionID,
		&i.ValidatedBy,
		&i.ValidatedAt,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createVoucher = `-- name: CreateVoucher :exec
INSERT INTO cash_vouchers (` + voucherColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

func (q *Queries) CreateVoucher(ctx context.Context, db DBTX, arg CashVouchers) error {
	_, err := db.Exec(ctx, createVoucher,
		arg.ID,
		arg.BookingID,
		arg.Number,
		arg.Amount,
		arg.Currency,
		arg.ExpiresAt,
		arg.Status,
		arg.Instructions,
		arg.AgencyCode,
		arg.TransactionID,
		arg.ValidatedBy,
		arg.ValidatedAt,
		arg.Notes,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getVoucher = `-- name: GetVoucher :one
SELECT ` + voucherColumns + ` FROM cash_vouchers WHERE id = $1`

func (q *Queries) GetVoucher(ctx context.Context, db DBTX, id uuid.UUID) (CashVouchers, error) {
	return scanVoucher(db.QueryRow(ctx, getVoucher, id))
}

const getVoucherForUpdate = `-- name: GetVoucherForUpdate :one
SELECT ` + voucherColumns + ` FROM cash_vouchers WHERE id = $1 FOR UPDATE`

func (q *Queries) GetVoucherForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (CashVouchers, error) {
	return scanVoucher(db.QueryRow(ctx, getVoucherForUpdate, id))
}

const getVoucherByBooking = `-- name: GetVoucherByBooking :one
SELECT ` + voucherColumns + ` FROM cash_vouchers WHERE booking_id = $1`

func (q *Queries) GetVoucherByBooking(ctx context.Context, db DBTX, bookingID uuid.UUID) (CashVouchers, error) {
	return scanVoucher(db.QueryRow(ctx, getVoucherByBooking, bookingID))
}

const updateVoucherState = `-- name: UpdateVoucherState :execrows
UPDATE cash_vouchers
SET status         = $3,
    agency_code    = $4,
    transaction_id = $5,
    validated_by   = $6,
    validated_at   = $7,
    notes          = $8,
    updated_at     = $9
WHERE id = $1 AND status = $2`

type UpdateVoucherStateParams struct {
	ID             uuid.UUID
	ExpectedStatus string
	Status         string
	AgencyCode     pgtype.Text
	TransactionID  pgtype.Text
	ValidatedBy    pgtype.UUID
	ValidatedAt    pgtype.Timestamptz
	Notes          pgtype.Text
	UpdatedAt      pgtype.Timestamptz
}

func (q *Queries) UpdateVoucherState(ctx context.Context, db DBTX, arg UpdateVoucherStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateVoucherState,
		arg.ID,
		arg.ExpectedStatus,
		arg.Status,
		arg.AgencyCode,
		arg.TransactionID,
		arg.ValidatedBy,
		arg.ValidatedAt,
		arg.Notes,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
