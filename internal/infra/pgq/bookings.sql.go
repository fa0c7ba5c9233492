package pgq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, listing_id, guest_id, host_id, check_in, check_out, nights, adults, children, infants,
    check_in_at, check_out_at, currency, base_price, subtotal, cleaning_fee, base_amount, guest_service_fee,
    host_commission, total_amount, host_payout, platform_revenue, security_deposit, guest_fee_rate,
    host_commission_rate, commission_category, commission_version, cancellation_policy, instant_book,
    payment_method, payment_status, payment_intent_id, payment_client_secret, voucher_id, payment_deadline,
    status, previous_status, cancelled_by, cancelled_role, cancel_reason, cancelled_at, confirmed_at,
    completed_at, created_at, updated_at`

func scanBooking(row pgx.Row) (Bookings, error) {
	var i Bookings
	err := row.Scan(
		&i.ID,
		&i.ListingID,
		&i.GuestID,
		&i.HostID,
		&i.CheckIn,
		&i.CheckOut,
		&i.Nights,
		&i.Adults,
		&i.Children,
		&i.Infants,
		&i.CheckInAt,
		&i.CheckOutAt,
		&i.Currency,
		&i.BasePrice,
		&i.Subtotal,
		&i.CleaningFee,
		&i.BaseAmount,
		&i.GuestServiceFee,
		&i.HostCommission,
		&i.TotalAmount,
		&i.HostPayout,
		&i.PlatformRevenue,
		&i.SecurityDeposit,
		&i.GuestFeeRate,
		&i.HostCommissionRate,
		&i.CommissionCategory,
		&i.CommissionVersion,
		&i.CancellationPolicy,
		&i.InstantBook,
		&i.PaymentMethod,
		&i.PaymentStatus,
		&i.PaymentIntentID,
		&i.PaymentClientSecret,
		&i.VoucherID,
		&i.PaymentDeadline,
		&i.Status,
		&i.PreviousStatus,
		&i.CancelledBy,
		&i.CancelledRole,
		&i.CancelReason,
		&i.CancelledAt,
		&i.ConfirmedAt,
		&i.CompletedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectBookings(rows pgx.Rows, err error) ([]Bookings, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Bookings
	for rows.Next() {
		i, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func collectIDs(rows pgx.Rows, err error) ([]uuid.UUID, error) {
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

const createBooking = `-- name: CreateBooking :exec
INSERT INTO bookings (` + bookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22,
        $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41, $42,
        $43, $44, $45)`

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg Bookings) error {
	_, err := db.Exec(ctx, createBooking,
		arg.ID,
		arg.ListingID,
		arg.GuestID,
		arg.HostID,
		arg.CheckIn,
		arg.CheckOut,
		arg.Nights,
		arg.Adults,
		arg.Children,
		arg.Infants,
		arg.CheckInAt,
		arg.CheckOutAt,
		arg.Currency,
		arg.BasePrice,
		arg.Subtotal,
		arg.CleaningFee,
		arg.BaseAmount,
		arg.GuestServiceFee,
		arg.HostCommission,
		arg.TotalAmount,
		arg.HostPayout,
		arg.PlatformRevenue,
		arg.SecurityDeposit,
		arg.GuestFeeRate,
		arg.HostCommissionRate,
		arg.CommissionCategory,
		arg.CommissionVersion,
		arg.CancellationPolicy,
		arg.InstantBook,
		arg.PaymentMethod,
		arg.PaymentStatus,
		arg.PaymentIntentID,
		arg.PaymentClientSecret,
		arg.VoucherID,
		arg.PaymentDeadline,
		arg.Status,
		arg.PreviousStatus,
		arg.CancelledBy,
		arg.CancelledRole,
		arg.CancelReason,
		arg.CancelledAt,
		arg.ConfirmedAt,
		arg.CompletedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getBooking = `-- name: GetBooking :one
SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

func (q *Queries) GetBooking(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	return scanBooking(db.QueryRow(ctx, getBooking, id))
}

const getBookingForUpdate = `-- name: GetBookingForUpdate :one
SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

func (q *Queries) GetBookingForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	return scanBooking(db.QueryRow(ctx, getBookingForUpdate, id))
}

const getBookingByPaymentIntent = `-- name: GetBookingByPaymentIntent :one
SELECT ` + bookingColumns + ` FROM bookings WHERE payment_intent_id = $1 FOR UPDATE`

func (q *Queries) GetBookingByPaymentIntent(ctx context.Context, db DBTX, paymentIntentID string) (Bookings, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByPaymentIntent, paymentIntentID))
}

const updateBookingState = `-- name: UpdateBookingState :execrows
UPDATE bookings
SET payment_status        = $3,
    payment_intent_id     = $4,
    payment_client_secret = $5,
    voucher_id            = $6,
    payment_deadline      = $7,
    status                = $8,
    previous_status       = $9,
    cancelled_by          = $10,
    cancelled_role        = $11,
    cancel_reason         = $12,
    cancelled_at          = $13,
    confirmed_at          = $14,
    completed_at          = $15,
    updated_at            = $16
WHERE id = $1 AND status = $2`

type UpdateBookingStateParams struct {
	ID                  uuid.UUID
	ExpectedStatus      string
	PaymentStatus       string
	PaymentIntentID     pgtype.Text
	PaymentClientSecret pgtype.Text
	VoucherID           pgtype.UUID
	PaymentDeadline     pgtype.Timestamptz
	Status              string
	PreviousStatus      pgtype.Text
	CancelledBy         pgtype.UUID
	CancelledRole       pgtype.Text
	CancelReason        pgtype.Text
	CancelledAt         pgtype.Timestamptz
	ConfirmedAt         pgtype.Timestamptz
	CompletedAt         pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}

func (q *Queries) UpdateBookingState(ctx context.Context, db DBTX, arg UpdateBookingStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateBookingState,
		arg.ID,
		arg.ExpectedStatus,
		arg.PaymentStatus,
		arg.PaymentIntentID,
		arg.PaymentClientSecret,
		arg.VoucherID,
		arg.PaymentDeadline,
		arg.Status,
		arg.PreviousStatus,
		arg.CancelledBy,
		arg.CancelledRole,
		arg.CancelReason,
		arg.CancelledAt,
		arg.ConfirmedAt,
		arg.CompletedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listBookingsByGuest = `-- name: ListBookingsByGuest :many
SELECT ` + bookingColumns + ` FROM bookings WHERE guest_id = $1 ORDER BY created_at DESC, id LIMIT $2`

func (q *Queries) ListBookingsByGuest(ctx context.Context, db DBTX, guestID uuid.UUID, limit int32) ([]Bookings, error) {
	return collectBookings(db.Query(ctx, listBookingsByGuest, guestID, limit))
}

const listBookingsByHost = `-- name: ListBookingsByHost :many
SELECT ` + bookingColumns + ` FROM bookings WHERE host_id = $1 ORDER BY created_at DESC, id LIMIT $2`

func (q *Queries) ListBookingsByHost(ctx context.Context, db DBTX, hostID uuid.UUID, limit int32) ([]Bookings, error) {
	return collectBookings(db.Query(ctx, listBookingsByHost, hostID, limit))
}

const listPaymentOverdueBookings = `-- name: ListPaymentOverdueBookings :many
SELECT id FROM bookings
WHERE status = 'pending_payment' AND payment_deadline < $1
ORDER BY payment_deadline
LIMIT $2`

func (q *Queries) ListPaymentOverdueBookings(ctx context.Context, db DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	return collectIDs(db.Query(ctx, listPaymentOverdueBookings, now, limit))
}

const listBookingsDueForActivation = `-- name: ListBookingsDueForActivation :many
SELECT b.id FROM bookings b
WHERE b.status = 'confirmed' AND b.check_in_at <= $1
  AND NOT EXISTS (SELECT 1 FROM escrows e WHERE e.booking_id = b.id AND e.status = 'split')
ORDER BY b.check_in_at
LIMIT $2`

func (q *Queries) ListBookingsDueForActivation(ctx context.Context, db DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	return collectIDs(db.Query(ctx, listBookingsDueForActivation, now, limit))
}

const listUnacceptedBookings = `-- name: ListUnacceptedBookings :many
SELECT id FROM bookings
WHERE status = 'paid' AND check_in_at <= $1
ORDER BY check_in_at
LIMIT $2`

func (q *Queries) ListUnacceptedBookings(ctx context.Context, db DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	return collectIDs(db.Query(ctx, listUnacceptedBookings, now, limit))
}

const listBookingsDueForCompletion = `-- name: ListBookingsDueForCompletion :many
SELECT id FROM bookings
WHERE status = 'active' AND check_out_at <= $1
ORDER BY check_out_at
LIMIT $2`

func (q *Queries) ListBookingsDueForCompletion(ctx context.Context, db DBTX, checkedOutBefore pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	return collectIDs(db.Query(ctx, listBookingsDueForCompletion, checkedOutBefore, limit))
}

const countOverlappingBookings = `-- name: CountOverlappingBookings :one
SELECT count(*) FROM bookings
WHERE listing_id = $1
  AND status IN ('pending_payment', 'confirmed', 'paid', 'active', 'disputed')
  AND daterange(check_in, check_out, '[)') && daterange($2::date, $3::date, '[)')`

func (q *Queries) CountOverlappingBookings(ctx context.Context, db DBTX, listingID uuid.UUID, checkIn, checkOut pgtype.Date) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countOverlappingBookings, listingID, checkIn, checkOut).Scan(&count)
	return count, err
}
