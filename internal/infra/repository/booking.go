package repository

import (
	"context"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository/converter"
	"rental-escrow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingQueries interface {
	CreateBooking(ctx context.Context, db pgq.DBTX, arg pgq.Bookings) error
	GetBooking(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Bookings, error)
	GetBookingForUpdate(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Bookings, error)
	GetBookingByPaymentIntent(ctx context.Context, db pgq.DBTX, paymentIntentID string) (pgq.Bookings, error)
	UpdateBookingState(ctx context.Context, db pgq.DBTX, arg pgq.UpdateBookingStateParams) (int64, error)
	ListBookingsByGuest(ctx context.Context, db pgq.DBTX, guestID uuid.UUID, limit int32) ([]pgq.Bookings, error)
	ListBookingsByHost(ctx context.Context, db pgq.DBTX, hostID uuid.UUID, limit int32) ([]pgq.Bookings, error)
	ListPaymentOverdueBookings(ctx context.Context, db pgq.DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error)
	ListBookingsDueForActivation(ctx context.Context, db pgq.DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error)
	ListUnacceptedBookings(ctx context.Context, db pgq.DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error)
	ListBookingsDueForCompletion(ctx context.Context, db pgq.DBTX, checkedOutBefore pgtype.Timestamptz, limit int32) ([]uuid.UUID, error)
}

type BookingRepository struct {
	queries BookingQueries
	db      pgq.DBTX
}

func NewBookingRepository(queries BookingQueries, db pgq.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if err := r.queries.CreateBooking(ctx, r.db, converter.BookingToRow(b)); err != nil {
		return infra.ClassifyPgErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBooking(ctx, r.db, id)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to get booking", err)
	}
	return toBooking(row)
}

func (r *BookingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to lock booking", err)
	}
	return toBooking(row)
}

func (r *BookingRepository) GetByPaymentIntent(ctx context.Context, intentID string) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByPaymentIntent(ctx, r.db, intentID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to get booking by payment intent", err)
	}
	return toBooking(row)
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking, expected booking.Status) error {
	n, err := r.queries.UpdateBookingState(ctx, r.db, converter.BookingToStateParams(b, expected))
	if err != nil {
		return infra.ClassifyPgErr("failed to update booking", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(infra.KindStaleState, "booking status changed concurrently", nil)
	}
	return nil
}

func (r *BookingRepository) ListForGuest(ctx context.Context, guestID uuid.UUID, limit int) ([]*booking.Booking, error) {
	rows, err := r.queries.ListBookingsByGuest(ctx, r.db, guestID, int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list guest bookings", err)
	}
	return toBookings(rows)
}

func (r *BookingRepository) ListForHost(ctx context.Context, hostID uuid.UUID, limit int) ([]*booking.Booking, error) {
	rows, err := r.queries.ListBookingsByHost(ctx, r.db, hostID, int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list host bookings", err)
	}
	return toBookings(rows)
}

func (r *BookingRepository) ListPaymentOverdue(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListPaymentOverdueBookings(ctx, r.db, pgconv.TimeToPgtype(now), int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list overdue bookings", err)
	}
	return ids, nil
}

func (r *BookingRepository) ListDueForActivation(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListBookingsDueForActivation(ctx, r.db, pgconv.TimeToPgtype(now), int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list bookings due for activation", err)
	}
	return ids, nil
}

// ListUnaccepted returns paid requests whose check-in arrived before the host answered.
func (r *BookingRepository) ListUnaccepted(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListUnacceptedBookings(ctx, r.db, pgconv.TimeToPgtype(now), int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list unaccepted bookings", err)
	}
	return ids, nil
}

func (r *BookingRepository) ListDueForCompletion(ctx context.Context, checkedOutBefore time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListBookingsDueForCompletion(ctx, r.db, pgconv.TimeToPgtype(checkedOutBefore), int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list bookings due for completion", err)
	}
	return ids, nil
}

func toBooking(row pgq.Bookings) (*booking.Booking, error) {
	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert booking row", err)
	}
	return b, nil
}

func toBookings(rows []pgq.Bookings) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := toBooking(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
