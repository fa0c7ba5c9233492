package payment

import (
	"context"
	"log/slog"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/shared"
)

type CardAdapter struct {
	gateway      shared.CardGateway
	ledger       *ledger.Ledger
	timeout      time.Duration
	releaseGrace time.Duration
	logger       *slog.Logger
}

func NewCardAdapter(gateway shared.CardGateway, l *ledger.Ledger, timeout, releaseGrace time.Duration, logger *slog.Logger) *CardAdapter {
	return &CardAdapter{gateway: gateway, ledger: l, timeout: timeout, releaseGrace: releaseGrace, logger: logger}
}

func (a *CardAdapter) Method() booking.PaymentMethod {
	return booking.MethodCard
}

// Initiate creates the processor intent keyed by the booking id, so a retried creation reuses
// the same intent.
func (a *CardAdapter) Initiate(ctx context.Context, _ shared.Tx, b *booking.Booking, now time.Time) (*Handle, error) {
	intent, err := a.gateway.CreateIntent(ctx, b.Pricing().TotalAmount, b.ID(), b.ID().String())
	if err != nil {
		return nil, errs.Mark(err, ErrProvider)
	}
	deadline := now.Add(a.timeout)
	if err := b.AttachPayment(booking.CardPayment{IntentID: intent.ID, ClientSecret: intent.ClientSecret}, deadline); err != nil {
		return nil, err
	}
	return &Handle{
		Method:       booking.MethodCard,
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
		Deadline:     deadline,
	}, nil
}

// Confirm applies a succeeded intent. A capture that arrives after the deadline is still
// accepted while the booking is pending: the guest has been charged.
func (a *CardAdapter) Confirm(ctx context.Context, tx shared.Tx, b *booking.Booking, ev ExternalEvent) (CaptureResult, error) {
	if b.Status() != booking.StatusPendingPayment {
		return CaptureResult{AlreadyApplied: true}, nil
	}
	if ev.Amount != nil && !ev.Amount.Equal(b.Pricing().TotalAmount) {
		a.logger.Error("card capture amount mismatch",
			"booking_id", b.ID(),
			"event_id", ev.EventID,
			"expected", b.Pricing().TotalAmount.String(),
			"received", ev.Amount.String())
		return CaptureResult{}, ErrAmountMismatch
	}
	hold, err := capture(ctx, tx, a.ledger, b, a.releaseGrace, ev.At)
	if err != nil {
		return CaptureResult{}, err
	}
	return CaptureResult{Captured: true, Escrow: hold}, nil
}

func (a *CardAdapter) IsExpired(b *booking.Booking, now time.Time) bool {
	return b.IsPaymentOverdue(now)
}

// Void cancels the intent so a late capture cannot happen. The processor also expires stale
// intents, so a failure here is only logged.
func (a *CardAdapter) Void(ctx context.Context, _ shared.Tx, b *booking.Booking, reason VoidReason, _ time.Time) error {
	card, ok := b.Payment().(booking.CardPayment)
	if !ok || card.IntentID == "" {
		return nil
	}
	// a captured intent can no longer be cancelled; its funds move through the escrow
	if b.IsCaptured() || b.PaymentStatus() == booking.PaymentRefunded {
		return nil
	}
	if err := a.gateway.CancelIntent(ctx, card.IntentID); err != nil {
		a.logger.Warn("failed to cancel payment intent",
			"booking_id", b.ID(), "intent_id", card.IntentID, "reason", string(reason), "error", err)
	}
	return nil
}

func (a *CardAdapter) Compensate(ctx context.Context, h *Handle) {
	if h == nil || h.Reference == "" {
		return
	}
	if err := a.gateway.CancelIntent(ctx, h.Reference); err != nil {
		a.logger.Warn("failed to cancel orphaned payment intent", "intent_id", h.Reference, "error", err)
	}
}
