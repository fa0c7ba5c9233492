package booking

import (
	"time"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/pricing"
	"rental-escrow/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus        = errs.New("invalid booking status")
	ErrInvalidPaymentMethod = errs.New("invalid payment method")
	ErrInvalidPolicy        = errs.New("invalid cancellation policy")
	ErrInvalidDateRange     = errs.New("check-out must be after check-in")
	ErrCheckInInPast        = errs.New("check-in date is in the past")
	ErrInvalidGuests        = errs.New("invalid guest counts")
	ErrTooManyGuests        = errs.New("guest count exceeds listing capacity")
	ErrInvalidClockTime     = errs.New("invalid clock time")
	ErrListingInactive      = errs.New("listing is not active")
	ErrSelfBooking          = errs.New("hosts cannot book their own listing")
	ErrStayTooShort         = errs.New("stay is shorter than the listing minimum")
	ErrStayTooLong          = errs.New("stay is longer than the listing maximum")
	ErrInvalidTransition    = errs.New("booking status does not allow this transition")
	ErrPaymentMismatch      = errs.New("payment does not match booking method")
	ErrPaymentAttached      = errs.New("payment is already attached")
	ErrNotParticipant       = errs.New("actor is not a participant of this booking")
)

// ListingSpec is the part of a listing a booking depends on, read once at request time.
type ListingSpec struct {
	ID              uuid.UUID
	HostID          uuid.UUID
	Active          bool
	Category        string
	MinStay         int
	MaxStay         int
	MaxGuests       int
	CheckInTime     ClockTime
	CheckOutTime    ClockTime
	Location        *time.Location
	InstantBook     bool
	Policy          CancellationPolicy
	SecurityDeposit money.Money
}

type Request struct {
	Listing    ListingSpec
	GuestID    uuid.UUID
	Stay       StayRange
	Guests     Guests
	Method     PaymentMethod
	Pricing    pricing.Breakdown
	Commission CommissionSnapshot
}

type Booking struct {
	id              uuid.UUID
	listingID       uuid.UUID
	guestID         uuid.UUID
	hostID          uuid.UUID
	stay            StayRange
	guests          Guests
	checkInAt       time.Time
	checkOutAt      time.Time
	pricing         pricing.Breakdown
	securityDeposit money.Money
	commission      CommissionSnapshot
	policy          CancellationPolicy
	instantBook     bool
	method          PaymentMethod
	payment         Payment
	paymentStatus   PaymentStatus
	paymentDeadline time.Time
	status          Status
	previousStatus  *Status
	cancellation    *Cancellation
	confirmedAt     *time.Time
	completedAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// ValidateStay checks listing, requester and stay constraints. It has no side effects, so the
// caller can run it before asking the availability collaborator.
func ValidateStay(l ListingSpec, guestID uuid.UUID, stay StayRange, guests Guests, now time.Time) error {
	if !l.Active {
		return ErrListingInactive
	}
	if guestID == l.HostID {
		return ErrSelfBooking
	}
	if stay.CheckIn().Before(truncateDate(now.In(locationOf(l)))) {
		return ErrCheckInInPast
	}
	nights := stay.Nights()
	if l.MinStay > 0 && nights < l.MinStay {
		return ErrStayTooShort
	}
	if l.MaxStay > 0 && nights > l.MaxStay {
		return ErrStayTooLong
	}
	if l.MaxGuests > 0 && guests.Total() > l.MaxGuests {
		return ErrTooManyGuests
	}
	return nil
}

func NewBooking(req Request, now time.Time) (*Booking, error) {
	if err := ValidateStay(req.Listing, req.GuestID, req.Stay, req.Guests, now); err != nil {
		return nil, err
	}
	if !req.Method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	if req.Pricing.Nights != req.Stay.Nights() {
		return nil, errs.Wrap(pricing.ErrUnbalanced, "nights differ from stay")
	}
	if err := req.Pricing.Validate(); err != nil {
		return nil, err
	}
	policy := req.Listing.Policy
	if !policy.IsValid() {
		policy = PolicyModerate
	}
	deposit := req.Listing.SecurityDeposit
	if deposit.Currency() == "" {
		deposit = money.Zero(req.Pricing.Currency())
	}

	loc := locationOf(req.Listing)
	return &Booking{
		id:              uuid.New(),
		listingID:       req.Listing.ID,
		guestID:         req.GuestID,
		hostID:          req.Listing.HostID,
		stay:            req.Stay,
		guests:          req.Guests,
		checkInAt:       req.Listing.CheckInTime.On(req.Stay.CheckIn(), loc).UTC(),
		checkOutAt:      req.Listing.CheckOutTime.On(req.Stay.CheckOut(), loc).UTC(),
		pricing:         req.Pricing,
		securityDeposit: deposit,
		commission:      req.Commission,
		policy:          policy,
		instantBook:     req.Listing.InstantBook,
		method:          req.Method,
		paymentStatus:   PaymentPending,
		status:          StatusPendingPayment,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

type Snapshot struct {
	ID              uuid.UUID
	ListingID       uuid.UUID
	GuestID         uuid.UUID
	HostID          uuid.UUID
	Stay            StayRange
	Guests          Guests
	CheckInAt       time.Time
	CheckOutAt      time.Time
	Pricing         pricing.Breakdown
	SecurityDeposit money.Money
	Commission      CommissionSnapshot
	Policy          CancellationPolicy
	InstantBook     bool
	Method          PaymentMethod
	Payment         Payment
	PaymentStatus   PaymentStatus
	PaymentDeadline time.Time
	Status          Status
	PreviousStatus  *Status
	Cancellation    *Cancellation
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func ReconstructBooking(s Snapshot) *Booking {
	return &Booking{
		id:              s.ID,
		listingID:       s.ListingID,
		guestID:         s.GuestID,
		hostID:          s.HostID,
		stay:            s.Stay,
		guests:          s.Guests,
		checkInAt:       s.CheckInAt,
		checkOutAt:      s.CheckOutAt,
		pricing:         s.Pricing,
		securityDeposit: s.SecurityDeposit,
		commission:      s.Commission,
		policy:          s.Policy,
		instantBook:     s.InstantBook,
		method:          s.Method,
		payment:         s.Payment,
		paymentStatus:   s.PaymentStatus,
		paymentDeadline: s.PaymentDeadline,
		status:          s.Status,
		previousStatus:  s.PreviousStatus,
		cancellation:    s.Cancellation,
		confirmedAt:     s.ConfirmedAt,
		completedAt:     s.CompletedAt,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:              b.id,
		ListingID:       b.listingID,
		GuestID:         b.guestID,
		HostID:          b.hostID,
		Stay:            b.stay,
		Guests:          b.guests,
		CheckInAt:       b.checkInAt,
		CheckOutAt:      b.checkOutAt,
		Pricing:         b.pricing,
		SecurityDeposit: b.securityDeposit,
		Commission:      b.commission,
		Policy:          b.policy,
		InstantBook:     b.instantBook,
		Method:          b.method,
		Payment:         b.payment,
		PaymentStatus:   b.paymentStatus,
		PaymentDeadline: b.paymentDeadline,
		Status:          b.status,
		PreviousStatus:  b.previousStatus,
		Cancellation:    b.cancellation,
		ConfirmedAt:     b.confirmedAt,
		CompletedAt:     b.completedAt,
		CreatedAt:       b.createdAt,
		UpdatedAt:       b.updatedAt,
	}
}

// AttachPayment records the payment vehicle created for a pending booking and the moment it stops
// being payable.
func (b *Booking) AttachPayment(p Payment, deadline time.Time) error {
	if b.status != StatusPendingPayment {
		return ErrInvalidTransition
	}
	if b.payment != nil {
		return ErrPaymentAttached
	}
	if p == nil || p.Method() != b.method {
		return ErrPaymentMismatch
	}
	b.payment = p
	b.paymentDeadline = deadline
	return nil
}

// IsPaymentOverdue is the lazy expiry check: only pending bookings can run out of time.
func (b *Booking) IsPaymentOverdue(now time.Time) bool {
	return b.status == StatusPendingPayment && !b.paymentDeadline.IsZero() && now.After(b.paymentDeadline)
}

// ConfirmPayment moves a pending booking forward after capture. Instant-book listings confirm
// directly; the rest wait in paid for the host.
func (b *Booking) ConfirmPayment(now time.Time) error {
	if b.status != StatusPendingPayment {
		return ErrInvalidTransition
	}
	b.paymentStatus = PaymentSucceeded
	if b.instantBook {
		b.status = StatusConfirmed
		b.confirmedAt = &now
	} else {
		b.status = StatusPaid
	}
	b.updatedAt = now
	return nil
}

func (b *Booking) Accept(hostID uuid.UUID, now time.Time) error {
	if hostID != b.hostID {
		return ErrNotParticipant
	}
	if b.status != StatusPaid {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	b.confirmedAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) Reject(hostID uuid.UUID, reason string, now time.Time) error {
	if hostID != b.hostID {
		return ErrNotParticipant
	}
	if b.status != StatusPaid {
		return ErrInvalidTransition
	}
	b.status = StatusCancelledByHost
	b.cancellation = &Cancellation{By: hostID, Role: ActorHost, Reason: reason, At: now}
	b.updatedAt = now
	return nil
}

// ExpireUnaccepted closes a paid request the host left unanswered until check-in.
func (b *Booking) ExpireUnaccepted(now time.Time) error {
	if b.status != StatusPaid || now.Before(b.checkInAt) {
		return ErrInvalidTransition
	}
	b.status = StatusExpired
	b.updatedAt = now
	return nil
}

func (b *Booking) Activate(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	if now.Before(b.checkInAt) {
		return ErrInvalidTransition
	}
	b.status = StatusActive
	b.updatedAt = now
	return nil
}

// IsDueForCompletion reports whether an active stay has passed checkout plus grace.
func (b *Booking) IsDueForCompletion(now time.Time, grace time.Duration) bool {
	return b.status == StatusActive && !now.Before(b.checkOutAt.Add(grace))
}

// Complete ends an active stay. A host may do it early; automatic completion waits for the grace.
func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusActive {
		return ErrInvalidTransition
	}
	b.status = StatusCompleted
	b.completedAt = &now
	b.updatedAt = now
	return nil
}

// Cancel applies a manual cancellation from any pre-active state; the resulting status records
// who cancelled.
func (b *Booking) Cancel(actor uuid.UUID, role ActorRole, reason string, now time.Time) error {
	if !b.status.IsPreActive() {
		return ErrInvalidTransition
	}
	var next Status
	switch role {
	case ActorGuest:
		if actor != b.guestID {
			return ErrNotParticipant
		}
		next = StatusCancelledByGuest
	case ActorHost:
		if actor != b.hostID {
			return ErrNotParticipant
		}
		next = StatusCancelledByHost
	case ActorAdmin:
		next = StatusCancelledByAdmin
	default:
		return ErrNotParticipant
	}
	if b.paymentStatus == PaymentPending {
		b.paymentStatus = PaymentCancelled
	}
	b.status = next
	b.cancellation = &Cancellation{By: actor, Role: role, Reason: reason, At: now}
	b.updatedAt = now
	return nil
}

func (b *Booking) Expire(now time.Time) error {
	if b.status != StatusPendingPayment {
		return ErrInvalidTransition
	}
	b.status = StatusExpired
	b.paymentStatus = PaymentExpired
	b.updatedAt = now
	return nil
}

// MarkDisputed records the status to return to. Completed bookings keep their status.
func (b *Booking) MarkDisputed(now time.Time) error {
	switch b.status {
	case StatusConfirmed, StatusActive:
		prev := b.status
		b.previousStatus = &prev
		b.status = StatusDisputed
		b.updatedAt = now
		return nil
	case StatusCompleted:
		return nil
	default:
		return ErrInvalidTransition
	}
}

func (b *Booking) RestoreAfterDispute(now time.Time) error {
	if b.status != StatusDisputed {
		return nil
	}
	if b.previousStatus == nil {
		return ErrInvalidTransition
	}
	b.status = *b.previousStatus
	b.previousStatus = nil
	b.updatedAt = now
	return nil
}

// SettleDispute ends the disputed state once funds are split. A booking disputed before its stay
// began is cancelled, since nothing is left in escrow for it; a started stay resumes.
func (b *Booking) SettleDispute(admin uuid.UUID, resolution string, now time.Time) error {
	if b.status != StatusDisputed {
		return nil
	}
	if b.previousStatus == nil {
		return ErrInvalidTransition
	}
	if !b.previousStatus.IsPreActive() {
		return b.RestoreAfterDispute(now)
	}
	b.status = StatusCancelledByAdmin
	b.previousStatus = nil
	b.cancellation = &Cancellation{By: admin, Role: ActorAdmin, Reason: resolution, At: now}
	b.updatedAt = now
	return nil
}

// RecordRefund sets the payment status after funds went back to the guest.
func (b *Booking) RecordRefund(guestShare money.Money, now time.Time) {
	if guestShare.IsZero() {
		return
	}
	if guestShare.Equal(b.pricing.TotalAmount) {
		b.paymentStatus = PaymentRefunded
	} else {
		b.paymentStatus = PaymentPartiallyRefunded
	}
	b.updatedAt = now
}

func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return userID == b.guestID || userID == b.hostID
}

// CanOpenDispute reports whether the booking is in a state a dispute may be filed from.
func (b *Booking) CanOpenDispute() bool {
	return b.status == StatusConfirmed || b.status == StatusActive || b.status == StatusCompleted
}

// HasStayed reports whether the stay began, which automatic escrow release requires.
func (b *Booking) HasStayed() bool {
	return b.status == StatusActive || b.status == StatusCompleted
}

func (b *Booking) IsCaptured() bool {
	return b.paymentStatus == PaymentSucceeded || b.paymentStatus == PaymentPartiallyRefunded
}

func (b *Booking) ID() uuid.UUID                  { return b.id }
func (b *Booking) ListingID() uuid.UUID           { return b.listingID }
func (b *Booking) GuestID() uuid.UUID             { return b.guestID }
func (b *Booking) HostID() uuid.UUID              { return b.hostID }
func (b *Booking) Stay() StayRange                { return b.stay }
func (b *Booking) Guests() Guests                 { return b.guests }
func (b *Booking) CheckInAt() time.Time           { return b.checkInAt }
func (b *Booking) CheckOutAt() time.Time          { return b.checkOutAt }
func (b *Booking) Pricing() pricing.Breakdown     { return b.pricing }
func (b *Booking) SecurityDeposit() money.Money   { return b.securityDeposit }
func (b *Booking) Commission() CommissionSnapshot { return b.commission }
func (b *Booking) Policy() CancellationPolicy     { return b.policy }
func (b *Booking) InstantBook() bool              { return b.instantBook }
func (b *Booking) Method() PaymentMethod          { return b.method }
func (b *Booking) Payment() Payment               { return b.payment }
func (b *Booking) PaymentStatus() PaymentStatus   { return b.paymentStatus }
func (b *Booking) PaymentDeadline() time.Time     { return b.paymentDeadline }
func (b *Booking) Status() Status                 { return b.status }
func (b *Booking) PreviousStatus() *Status        { return b.previousStatus }
func (b *Booking) Cancellation() *Cancellation    { return b.cancellation }
func (b *Booking) ConfirmedAt() *time.Time        { return b.confirmedAt }
func (b *Booking) CompletedAt() *time.Time        { return b.completedAt }
func (b *Booking) CreatedAt() time.Time           { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time           { return b.updatedAt }

func locationOf(l ListingSpec) *time.Location {
	if l.Location == nil {
		return time.UTC
	}
	return l.Location
}
