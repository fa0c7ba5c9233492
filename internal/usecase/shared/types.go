package shared

import (
	"time"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/user"

	"github.com/google/uuid"
)

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

// Actor is the authenticated caller of a command or query.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// SettledEscrow is a released or split escrow whose host share has not been paid out yet.
type SettledEscrow struct {
	BookingID uuid.UUID
	HostID    uuid.UUID
	Status    string
	HostShare money.Money
}

type ListingSnapshot struct {
	ID                 uuid.UUID
	HostID             uuid.UUID
	Title              string
	Status             string
	Category           string
	NightlyPrice       money.Money
	CleaningFee        money.Money
	SecurityDeposit    money.Money
	MinStay            int
	MaxStay            int
	MaxGuests          int
	CheckInTime        string
	CheckOutTime       string
	TimeZone           string
	InstantBook        bool
	CancellationPolicy string
}

func (l ListingSnapshot) IsActive() bool {
	return l.Status == "active"
}

type BankAccountSnapshot struct {
	ID        uuid.UUID
	HostID    uuid.UUID
	Holder    string
	Last4     string
	IsDefault bool
}

// Notification is one fire-and-forget message to a participant.
type Notification struct {
	Recipient uuid.UUID
	Type      string
	Payload   map[string]any
}

type Email struct {
	Template  string
	Recipient string
	Payload   map[string]any
}

const (
	NotifyBookingRequested = "booking.requested"
	NotifyBookingConfirmed = "booking.confirmed"
	NotifyBookingPaid      = "booking.paid"
	NotifyBookingCancelled = "booking.cancelled"
	NotifyBookingExpired   = "booking.expired"
	NotifyBookingCompleted = "booking.completed"
	NotifyEscrowReleased   = "escrow.released"
	NotifyDisputeOpened    = "dispute.opened"
	NotifyDisputeNote      = "dispute.note_added"
	NotifyDisputeResolved  = "dispute.resolved"
	NotifyDisputeClosed    = "dispute.closed"
	NotifyPayoutRequested  = "payout.requested"
)
