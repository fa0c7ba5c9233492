package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// Errors carry the Postgres codes so infra.ClassifyPgErr maps them the same way.
var (
	errUniqueViolation    = &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	errForeignKey         = &pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"}
	errExclusionViolation = &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint \"bookings_no_overlap\""}
)

// txQueries answers pgq-shaped calls against one working copy of the tables. The db argument is
// ignored; the copy itself is the transaction.
type txQueries struct {
	t   *tables
	dir *directory
}

func before(a, b pgtype.Timestamptz) bool { return a.Time.Before(b.Time) }

func rangesOverlap(aIn, aOut, bIn, bOut pgtype.Date) bool {
	return aIn.Time.Before(bOut.Time) && bIn.Time.Before(aOut.Time)
}

func holdsDates(status string) bool {
	return booking.Status(status).HoldsDates()
}

func limitIDs(ids []uuid.UUID, limit int32) []uuid.UUID {
	if limit >= 0 && len(ids) > int(limit) {
		return ids[:limit]
	}
	return ids
}

// ---- bookings ----

func (q *txQueries) CreateBooking(_ context.Context, _ pgq.DBTX, arg pgq.Bookings) error {
	if _, ok := q.t.bookings[arg.ID]; ok {
		return errUniqueViolation
	}
	if holdsDates(arg.Status) {
		for _, b := range q.t.bookings {
			if b.ListingID == arg.ListingID && holdsDates(b.Status) && rangesOverlap(b.CheckIn, b.CheckOut, arg.CheckIn, arg.CheckOut) {
				return errExclusionViolation
			}
		}
	}
	q.t.bookings[arg.ID] = arg
	return nil
}

func (q *txQueries) GetBooking(_ context.Context, _ pgq.DBTX, id uuid.UUID) (pgq.Bookings, error) {
	b, ok := q.t.bookings[id]
	if !ok {
		return pgq.Bookings{}, pgx.ErrNoRows
	}
	return b, nil
}

func (q *txQueries) GetBookingForUpdate(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Bookings, error) {
	return q.GetBooking(ctx, db, id)
}

func (q *txQueries) GetBookingByPaymentIntent(_ context.Context, _ pgq.DBTX, paymentIntentID string) (pgq.Bookings, error) {
	for _, b := range q.t.bookings {
		if b.PaymentIntentID.Valid && b.PaymentIntentID.String == paymentIntentID {
			return b, nil
		}
	}
	return pgq.Bookings{}, pgx.ErrNoRows
}

func (q *txQueries) UpdateBookingState(_ context.Context, _ pgq.DBTX, arg pgq.UpdateBookingStateParams) (int64, error) {
	b, ok := q.t.bookings[arg.ID]
	if !ok || b.Status != arg.ExpectedStatus {
		return 0, nil
	}
	if arg.VoucherID.Valid {
		if _, ok := q.t.vouchers[arg.VoucherID.Bytes]; !ok {
			return 0, errForeignKey
		}
	}
	b.PaymentStatus = arg.PaymentStatus
	b.PaymentIntentID = arg.PaymentIntentID
	b.PaymentClientSecret = arg.PaymentClientSecret
	b.VoucherID = arg.VoucherID
	b.PaymentDeadline = arg.PaymentDeadline
	b.Status = arg.Status
	b.PreviousStatus = arg.PreviousStatus
	b.CancelledBy = arg.CancelledBy
	b.CancelledRole = arg.CancelledRole
	b.CancelReason = arg.CancelReason
	b.CancelledAt = arg.CancelledAt
	b.ConfirmedAt = arg.ConfirmedAt
	b.CompletedAt = arg.CompletedAt
	b.UpdatedAt = arg.UpdatedAt
	q.t.bookings[arg.ID] = b
	return 1, nil
}

func (q *txQueries) listBookings(match func(pgq.Bookings) bool, limit int32) []pgq.Bookings {
	var out []pgq.Bookings
	for _, b := range q.t.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b pgq.Bookings) int {
		if c := b.CreatedAt.Time.Compare(a.CreatedAt.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out
}

func (q *txQueries) ListBookingsByGuest(_ context.Context, _ pgq.DBTX, guestID uuid.UUID, limit int32) ([]pgq.Bookings, error) {
	return q.listBookings(func(b pgq.Bookings) bool { return b.GuestID == guestID }, limit), nil
}

func (q *txQueries) ListBookingsByHost(_ context.Context, _ pgq.DBTX, hostID uuid.UUID, limit int32) ([]pgq.Bookings, error) {
	return q.listBookings(func(b pgq.Bookings) bool { return b.HostID == hostID }, limit), nil
}

func (q *txQueries) bookingIDsBy(match func(pgq.Bookings) bool, key func(pgq.Bookings) time.Time, limit int32) []uuid.UUID {
	var rows []pgq.Bookings
	for _, b := range q.t.bookings {
		if match(b) {
			rows = append(rows, b)
		}
	}
	slices.SortFunc(rows, func(a, b pgq.Bookings) int { return key(a).Compare(key(b)) })
	ids := make([]uuid.UUID, 0, len(rows))
	for _, b := range rows {
		ids = append(ids, b.ID)
	}
	return limitIDs(ids, limit)
}

func (q *txQueries) ListPaymentOverdueBookings(_ context.Context, _ pgq.DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	return q.bookingIDsBy(
		func(b pgq.Bookings) bool {
			return b.Status == string(booking.StatusPendingPayment) && b.PaymentDeadline.Valid && before(b.PaymentDeadline, now)
		},
		func(b pgq.Bookings) time.Time { return b.PaymentDeadline.Time },
		limit,
	), nil
}

func (q *txQueries) ListBookingsDueForActivation(_ context.Context, _ pgq.DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	return q.bookingIDsBy(
		func(b pgq.Bookings) bool {
			if e, ok := q.t.escrows[b.ID]; ok && e.Status == escrow.StatusSplit.String() {
				return false
			}
			return b.Status == string(booking.StatusConfirmed) && !now.Time.Before(b.CheckInAt.Time)
		},
		func(b pgq.Bookings) time.Time { return b.CheckInAt.Time },
		limit,
	), nil
}

func (q *txQueries) ListUnacceptedBookings(_ context.Context, _ pgq.DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	return q.bookingIDsBy(
		func(b pgq.Bookings) bool {
			return b.Status == string(booking.StatusPaid) && !now.Time.Before(b.CheckInAt.Time)
		},
		func(b pgq.Bookings) time.Time { return b.CheckInAt.Time },
		limit,
	), nil
}

func (q *txQueries) ListBookingsDueForCompletion(_ context.Context, _ pgq.DBTX, checkedOutBefore pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	return q.bookingIDsBy(
		func(b pgq.Bookings) bool {
			return b.Status == string(booking.StatusActive) && !checkedOutBefore.Time.Before(b.CheckOutAt.Time)
		},
		func(b pgq.Bookings) time.Time { return b.CheckOutAt.Time },
		limit,
	), nil
}

func (q *txQueries) CountOverlappingBookings(_ context.Context, _ pgq.DBTX, listingID uuid.UUID, checkIn, checkOut pgtype.Date) (int64, error) {
	var n int64
	for _, b := range q.t.bookings {
		if b.ListingID == listingID && holdsDates(b.Status) && rangesOverlap(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			n++
		}
	}
	return n, nil
}

// ---- cash vouchers ----

func (q *txQueries) CreateVoucher(_ context.Context, _ pgq.DBTX, arg pgq.CashVouchers) error {
	if _, ok := q.t.bookings[arg.BookingID]; !ok {
		return errForeignKey
	}
	for _, v := range q.t.vouchers {
		if v.ID == arg.ID || v.BookingID == arg.BookingID || v.Number == arg.Number {
			return errUniqueViolation
		}
	}
	q.t.vouchers[arg.ID] = arg
	return nil
}

func (q *txQueries) GetVoucher(_ context.Context, _ pgq.DBTX, id uuid.UUID) (pgq.CashVouchers, error) {
	v, ok := q.t.vouchers[id]
	if !ok {
		return pgq.CashVouchers{}, pgx.ErrNoRows
	}
	return v, nil
}

func (q *txQueries) GetVoucherForUpdate(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.CashVouchers, error) {
	return q.GetVoucher(ctx, db, id)
}

func (q *txQueries) GetVoucherByBooking(_ context.Context, _ pgq.DBTX, bookingID uuid.UUID) (pgq.CashVouchers, error) {
	for _, v := range q.t.vouchers {
		if v.BookingID == bookingID {
			return v, nil
		}
	}
	return pgq.CashVouchers{}, pgx.ErrNoRows
}

func (q *txQueries) UpdateVoucherState(_ context.Context, _ pgq.DBTX, arg pgq.UpdateVoucherStateParams) (int64, error) {
	v, ok := q.t.vouchers[arg.ID]
	if !ok || v.Status != arg.ExpectedStatus {
		return 0, nil
	}
	v.Status = arg.Status
	v.AgencyCode = arg.AgencyCode
	v.TransactionID = arg.TransactionID
	v.ValidatedBy = arg.ValidatedBy
	v.ValidatedAt = arg.ValidatedAt
	v.Notes = arg.Notes
	v.UpdatedAt = arg.UpdatedAt
	q.t.vouchers[arg.ID] = v
	return 1, nil
}

// ---- escrows ----

func (q *txQueries) CreateEscrow(_ context.Context, _ pgq.DBTX, arg pgq.Escrows) error {
	if _, ok := q.t.bookings[arg.BookingID]; !ok {
		return errForeignKey
	}
	if _, ok := q.t.escrows[arg.BookingID]; ok {
		return errUniqueViolation
	}
	q.t.escrows[arg.BookingID] = arg
	return nil
}

func (q *txQueries) GetEscrowByBooking(_ context.Context, _ pgq.DBTX, bookingID uuid.UUID) (pgq.Escrows, error) {
	e, ok := q.t.escrows[bookingID]
	if !ok {
		return pgq.Escrows{}, pgx.ErrNoRows
	}
	return e, nil
}

func (q *txQueries) GetEscrowByBookingForUpdate(ctx context.Context, db pgq.DBTX, bookingID uuid.UUID) (pgq.Escrows, error) {
	return q.GetEscrowByBooking(ctx, db, bookingID)
}

func (q *txQueries) UpdateEscrowState(_ context.Context, _ pgq.DBTX, arg pgq.UpdateEscrowStateParams) (int64, error) {
	for bookingID, e := range q.t.escrows {
		if e.ID != arg.ID {
			continue
		}
		if e.Status != arg.ExpectedStatus {
			return 0, nil
		}
		e.Status = arg.Status
		e.ReleaseRef = arg.ReleaseRef
		e.ReleasedAt = arg.ReleasedAt
		e.ReleasedBy = arg.ReleasedBy
		e.FreezeReason = arg.FreezeReason
		e.FrozenAt = arg.FrozenAt
		e.FrozenBy = arg.FrozenBy
		e.HostShare = arg.HostShare
		e.GuestShare = arg.GuestShare
		e.ResolvedBy = arg.ResolvedBy
		e.ResolvedAt = arg.ResolvedAt
		e.UpdatedAt = arg.UpdatedAt
		q.t.escrows[bookingID] = e
		return 1, nil
	}
	return 0, nil
}

func (q *txQueries) InsertEscrowEvent(_ context.Context, _ pgq.DBTX, arg pgq.EscrowEvents) error {
	q.t.escrowEvents = append(q.t.escrowEvents, arg)
	return nil
}

func (q *txQueries) ListEscrowEvents(_ context.Context, _ pgq.DBTX, bookingID uuid.UUID) ([]pgq.EscrowEvents, error) {
	var out []pgq.EscrowEvents
	for _, ev := range q.t.escrowEvents {
		if ev.BookingID == bookingID {
			out = append(out, ev)
		}
	}
	slices.SortStableFunc(out, func(a, b pgq.EscrowEvents) int { return a.CreatedAt.Time.Compare(b.CreatedAt.Time) })
	return out, nil
}

func (q *txQueries) ListReleasableEscrows(_ context.Context, _ pgq.DBTX, now pgtype.Timestamptz, limit int32) ([]uuid.UUID, error) {
	var rows []pgq.Escrows
	for _, e := range q.t.escrows {
		if e.Status != escrow.StatusHeld.String() || now.Time.Before(e.ReleaseEligibleAt.Time) {
			continue
		}
		switch q.t.bookings[e.BookingID].Status {
		case string(booking.StatusActive), string(booking.StatusCompleted):
			rows = append(rows, e)
		}
	}
	slices.SortFunc(rows, func(a, b pgq.Escrows) int { return a.ReleaseEligibleAt.Time.Compare(b.ReleaseEligibleAt.Time) })
	ids := make([]uuid.UUID, 0, len(rows))
	for _, e := range rows {
		ids = append(ids, e.BookingID)
	}
	return limitIDs(ids, limit), nil
}

func (q *txQueries) ListUnpaidSettledEscrows(_ context.Context, _ pgq.DBTX, limit int32) ([]pgq.ListUnpaidSettledEscrowsRow, error) {
	var settled []pgq.Escrows
	for bookingID, e := range q.t.escrows {
		if _, paid := q.t.payoutItems[bookingID]; paid {
			continue
		}
		switch e.Status {
		case escrow.StatusReleased.String():
		case escrow.StatusSplit.String():
			share, err := pgconv.NumericToDecimal(e.HostShare)
			if err != nil {
				return nil, err
			}
			if !share.IsPositive() {
				continue
			}
		default:
			continue
		}
		settled = append(settled, e)
	}
	// hosts without a default account sort last
	payable := func(e pgq.Escrows) int {
		if q.dir.hasDefaultAccount(q.t.bookings[e.BookingID].HostID) {
			return 0
		}
		return 1
	}
	slices.SortFunc(settled, func(a, b pgq.Escrows) int {
		if c := cmp.Compare(payable(a), payable(b)); c != 0 {
			return c
		}
		if c := a.UpdatedAt.Time.Compare(b.UpdatedAt.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.BookingID.String(), b.BookingID.String())
	})
	out := make([]pgq.ListUnpaidSettledEscrowsRow, 0, len(settled))
	for _, e := range settled {
		if len(out) == int(limit) {
			break
		}
		b := q.t.bookings[e.BookingID]
		out = append(out, pgq.ListUnpaidSettledEscrowsRow{
			BookingID:  e.BookingID,
			HostID:     b.HostID,
			Status:     e.Status,
			Currency:   e.Currency,
			HostPayout: b.HostPayout,
			HostShare:  e.HostShare,
		})
	}
	return out, nil
}
