package shared

import (
	"context"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/user"

	"github.com/google/uuid"
)

type ListingLookup interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*ListingSnapshot, error)
}

type UserLookup interface {
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// AvailabilityChecker answers whether the listing calendar is free for a stay. The booking table
// also enforces non-overlap, so a stale answer is caught at insert time.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, listingID uuid.UUID, stay booking.StayRange) (bool, error)
}

type BankAccountLookup interface {
	DefaultBankAccount(ctx context.Context, hostID uuid.UUID) (*BankAccountSnapshot, error)
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type Mailer interface {
	Send(ctx context.Context, e Email) error
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// CardGateway is the card processor. CreateIntent must be idempotent on idempotencyKey.
type CardGateway interface {
	CreateIntent(ctx context.Context, amount money.Money, bookingID uuid.UUID, idempotencyKey string) (*PaymentIntent, error)
	CancelIntent(ctx context.Context, intentID string) error
}

// ProcessedEventCache remembers external event ids that were fully applied so replays can be
// answered without opening a transaction. The database stays authoritative.
type ProcessedEventCache interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) error
}

// Locker hands out a best-effort lease; holders must still be safe to run concurrently.
type Locker interface {
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (release func(context.Context), ok bool, err error)
}
