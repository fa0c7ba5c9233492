package shared

import (
	"context"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/domain/dispute"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/payout"
	"rental-escrow/internal/domain/voucher"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations, retried on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot across repositories, no writes
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Vouchers() VoucherRepository
	Escrows() EscrowRepository
	Disputes() DisputeRepository
	Commissions() CommissionRepository
	Payouts() PayoutRepository
	PaymentEvents() PaymentEventRepository
	Idempotency() IdempotencyRepository
}

// BookingRepository updates are compare-and-set on the stored status: Update only applies when
// the row still carries expected, otherwise it reports a stale-state error.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	GetByPaymentIntent(ctx context.Context, intentID string) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking, expected booking.Status) error
	ListForGuest(ctx context.Context, guestID uuid.UUID, limit int) ([]*booking.Booking, error)
	ListForHost(ctx context.Context, hostID uuid.UUID, limit int) ([]*booking.Booking, error)
	ListPaymentOverdue(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	ListDueForActivation(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	ListUnaccepted(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	ListDueForCompletion(ctx context.Context, checkedOutBefore time.Time, limit int) ([]uuid.UUID, error)
}

type VoucherRepository interface {
	Create(ctx context.Context, v *voucher.Voucher) error
	Get(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error)
	GetByBooking(ctx context.Context, bookingID uuid.UUID) (*voucher.Voucher, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error)
	Update(ctx context.Context, v *voucher.Voucher, expected voucher.Status) error
}

type EscrowRepository interface {
	Create(ctx context.Context, e *escrow.Escrow) error
	GetByBooking(ctx context.Context, bookingID uuid.UUID) (*escrow.Escrow, error)
	GetByBookingForUpdate(ctx context.Context, bookingID uuid.UUID) (*escrow.Escrow, error)
	Update(ctx context.Context, e *escrow.Escrow, expected escrow.Status) error
	AppendEvent(ctx context.Context, ev escrow.Event) error
	ListEvents(ctx context.Context, bookingID uuid.UUID) ([]escrow.Event, error)
	ListReleasable(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	ListUnpaidSettled(ctx context.Context, limit int) ([]SettledEscrow, error)
}

type DisputeRepository interface {
	Create(ctx context.Context, d *dispute.Dispute) error
	Get(ctx context.Context, id uuid.UUID) (*dispute.Dispute, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dispute.Dispute, error)
	HasOpenForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*dispute.Dispute, error)
	Update(ctx context.Context, d *dispute.Dispute, expected dispute.Status) error
	AddNote(ctx context.Context, disputeID uuid.UUID, n dispute.Note) error
	AddEvidence(ctx context.Context, disputeID uuid.UUID, e dispute.Evidence) error
}

type CommissionRepository interface {
	ListRates(ctx context.Context) ([]*commission.Rate, error)
	GetForUpdate(ctx context.Context, c commission.Category) (*commission.Rate, error)
	Update(ctx context.Context, r *commission.Rate, expectedVersion int64) error
	AppendHistory(ctx context.Context, e commission.HistoryEntry) error
	History(ctx context.Context, c commission.Category, limit int) ([]commission.HistoryEntry, error)
}

type PayoutRepository interface {
	Create(ctx context.Context, r *payout.Request) error
	List(ctx context.Context, hostID *uuid.UUID, limit int) ([]*payout.Request, error)
}

type PaymentEventRepository interface {
	// Record stores an external event id once; it reports false when the id was seen before.
	Record(ctx context.Context, provider, eventID, eventType string, bookingID *uuid.UUID, receivedAt time.Time) (bool, error)
}

type IdempotencyRepository interface {
	// TryInsert claims key for userID; it reports false when the key already exists.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key, userID, bookingID uuid.UUID) error
}
