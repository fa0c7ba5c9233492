// Package readstore answers lookups against data owned by other services (listings, users, bank
// accounts) that this service only reads from its replica tables.
package readstore

import (
	"context"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository/converter"
	"rental-escrow/internal/pkg/pgconv"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DirectoryQueries interface {
	GetListing(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Listings, error)
	GetUser(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Users, error)
	GetDefaultBankAccount(ctx context.Context, db pgq.DBTX, hostID uuid.UUID) (pgq.HostBankAccounts, error)
	CountBlockedRanges(ctx context.Context, db pgq.DBTX, listingID uuid.UUID, checkIn, checkOut pgtype.Date) (int64, error)
	CountOverlappingBookings(ctx context.Context, db pgq.DBTX, listingID uuid.UUID, checkIn, checkOut pgtype.Date) (int64, error)
}

type DirectoryReadStore struct {
	queries DirectoryQueries
	db      pgq.DBTX
}

func NewDirectoryReadStore(queries DirectoryQueries, db pgq.DBTX) *DirectoryReadStore {
	return &DirectoryReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *DirectoryReadStore) ListingByID(ctx context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	row, err := r.queries.GetListing(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "listing not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find listing", err)
	}
	listing, err := converter.ListingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert listing row", err)
	}
	return listing, nil
}

func (r *DirectoryReadStore) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row, err := r.queries.GetUser(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find user", err)
	}
	u, err := converter.UserFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert user row", err)
	}
	return u, nil
}

func (r *DirectoryReadStore) DefaultBankAccount(ctx context.Context, hostID uuid.UUID) (*shared.BankAccountSnapshot, error) {
	row, err := r.queries.GetDefaultBankAccount(ctx, r.db, hostID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "default bank account not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find bank account", err)
	}
	return converter.BankAccountFromRow(row), nil
}

// IsAvailable checks host blocks and live bookings. The exclusion constraint on bookings still
// decides races between two concurrent requests.
func (r *DirectoryReadStore) IsAvailable(ctx context.Context, listingID uuid.UUID, stay booking.StayRange) (bool, error) {
	in, out := pgconv.DateToPgtype(stay.CheckIn()), pgconv.DateToPgtype(stay.CheckOut())
	blocked, err := r.queries.CountBlockedRanges(ctx, r.db, listingID, in, out)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to check blocked dates", err)
	}
	if blocked > 0 {
		return false, nil
	}
	overlapping, err := r.queries.CountOverlappingBookings(ctx, r.db, listingID, in, out)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to check overlapping bookings", err)
	}
	return overlapping == 0, nil
}
