// Package payment captures guest funds for a booking. Each payment method has an Adapter; the
// booking commands never branch on the method themselves.
package payment

import (
	"context"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedMethod = errs.New("unsupported payment method")
	ErrProvider          = errs.New("payment provider failure")
	ErrAmountMismatch    = errs.New("captured amount does not match booking total")
	ErrVoucherNotFound   = errs.New("voucher not found")
	ErrVoucherRejected   = errs.New("voucher cannot be validated")
	ErrValidationMissing = errs.New("voucher validation details are required")
)

// Handle is what the guest needs to complete payment: a client secret for cards, a voucher
// number and instructions for cash.
type Handle struct {
	Method       booking.PaymentMethod
	Reference    string
	ClientSecret string
	Voucher      *VoucherDetails
	Deadline     time.Time
}

type VoucherDetails struct {
	ID           uuid.UUID
	Number       string
	Amount       money.Money
	ExpiresAt    time.Time
	Instructions string
}

// VoucherValidation is the agency confirmation entered by an admin.
type VoucherValidation struct {
	AgencyCode    string
	TransactionID string
	Admin         uuid.UUID
	Notes         string
}

// ExternalEvent is a capture signal: a processor webhook or an admin voucher validation.
type ExternalEvent struct {
	Provider   string
	EventID    string
	Reference  string
	Amount     *money.Money
	Validation *VoucherValidation
	At         time.Time
}

type CaptureResult struct {
	Captured bool
	// AlreadyApplied means the booking had moved past pending_payment before this event.
	AlreadyApplied bool
	// Expired means the payment window closed and the booking was expired instead.
	Expired bool
	Escrow  escrow.Event
}

type VoidReason string

const (
	VoidCancelled VoidReason = "cancelled"
	VoidExpired   VoidReason = "expired"
)

type Adapter interface {
	Method() booking.PaymentMethod
	// Initiate runs inside the booking-creation transaction after the booking row exists and
	// attaches the payment vehicle to b. The caller persists b.
	Initiate(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) (*Handle, error)
	// Confirm runs with b locked. On capture it persists b and holds the funds in escrow.
	Confirm(ctx context.Context, tx shared.Tx, b *booking.Booking, ev ExternalEvent) (CaptureResult, error)
	IsExpired(b *booking.Booking, now time.Time) bool
	// Void gives up on an uncaptured payment after b was cancelled or expired.
	Void(ctx context.Context, tx shared.Tx, b *booking.Booking, reason VoidReason, now time.Time) error
	// Compensate undoes external side effects of Initiate when the transaction did not commit.
	Compensate(ctx context.Context, h *Handle)
}

// Adapters resolves the adapter for a booking's method.
type Adapters map[booking.PaymentMethod]Adapter

func NewAdapters(adapters ...Adapter) Adapters {
	out := make(Adapters, len(adapters))
	for _, a := range adapters {
		out[a.Method()] = a
	}
	return out
}

func (a Adapters) For(m booking.PaymentMethod) (Adapter, error) {
	ad, ok := a[m]
	if !ok {
		return nil, errs.Wrap(ErrUnsupportedMethod, m.String())
	}
	return ad, nil
}

// capture moves b out of pending_payment and holds its total until checkout plus grace.
func capture(ctx context.Context, tx shared.Tx, l *ledger.Ledger, b *booking.Booking, releaseGrace time.Duration, now time.Time) (escrow.Event, error) {
	if err := b.ConfirmPayment(now); err != nil {
		return escrow.Event{}, err
	}
	if err := tx.Bookings().Update(ctx, b, booking.StatusPendingPayment); err != nil {
		return escrow.Event{}, err
	}
	return l.Hold(ctx, tx, b.ID(), b.Pricing().TotalAmount, b.CheckOutAt().Add(releaseGrace), now)
}
