package pgq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getListing = `-- name: GetListing :one
SELECT id, host_id, title, status, category, currency, nightly_price, cleaning_fee, security_deposit,
       min_stay, max_stay, max_guests, check_in_time, check_out_time, time_zone, instant_book,
       cancellation_policy
FROM listings WHERE id = $1`

func (q *Queries) GetListing(ctx context.Context, db DBTX, id uuid.UUID) (Listings, error) {
	var i Listings
	err := db.QueryRow(ctx, getListing, id).Scan(
		&i.ID,
		&i.HostID,
		&i.Title,
		&i.Status,
		&i.Category,
		&i.Currency,
		&i.NightlyPrice,
		&i.CleaningFee,
		&i.SecurityDeposit,
		&i.MinStay,
		&i.MaxStay,
		&i.MaxGuests,
		&i.CheckInTime,
		&i.CheckOutTime,
		&i.TimeZone,
		&i.InstantBook,
		&i.CancellationPolicy,
	)
	return i, err
}

const getUser = `-- name: GetUser :one
SELECT id, email, full_name, phone, role FROM users WHERE id = $1`

func (q *Queries) GetUser(ctx context.Context, db DBTX, id uuid.UUID) (Users, error) {
	var i Users
	err := db.QueryRow(ctx, getUser, id).Scan(&i.ID, &i.Email, &i.FullName, &i.Phone, &i.Role)
	return i, err
}

const getDefaultBankAccount = `-- name: GetDefaultBankAccount :one
SELECT id, host_id, holder, last4, is_default
FROM host_bank_accounts WHERE host_id = $1 AND is_default`

func (q *Queries) GetDefaultBankAccount(ctx context.Context, db DBTX, hostID uuid.UUID) (HostBankAccounts, error) {
	var i HostBankAccounts
	err := db.QueryRow(ctx, getDefaultBankAccount, hostID).Scan(&i.ID, &i.HostID, &i.Holder, &i.Last4, &i.IsDefault)
	return i, err
}

const countBlockedRanges = `-- name: CountBlockedRanges :one
SELECT count(*) FROM listing_blocked_ranges
WHERE listing_id = $1
  AND daterange(start_date, end_date, '[)') && daterange($2::date, $3::date, '[)')`

func (q *Queries) CountBlockedRanges(ctx context.Context, db DBTX, listingID uuid.UUID, checkIn, checkOut pgtype.Date) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countBlockedRanges, listingID, checkIn, checkOut).Scan(&count)
	return count, err
}
