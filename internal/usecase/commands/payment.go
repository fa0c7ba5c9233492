package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/metrics"
	"rental-escrow/internal/usecase/payment"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

// CardPaymentEvent is a verified processor notification that an intent succeeded.
type CardPaymentEvent struct {
	Provider  string
	EventID   string
	EventType string
	IntentID  string
	BookingID *uuid.UUID
	Amount    *money.Money
}

type ValidateVoucherInput struct {
	VoucherID     *uuid.UUID
	BookingID     *uuid.UUID
	AgencyCode    string
	TransactionID string
	Notes         string
}

type ValidateVoucherResult struct {
	BookingID uuid.UUID
	Status    booking.Status
}

type PaymentCommands interface {
	// ConfirmCardPayment is safe to call any number of times with the same event; it returns the
	// webhook outcome recorded in metrics.
	ConfirmCardPayment(ctx context.Context, ev CardPaymentEvent) (string, error)
	ValidateVoucher(ctx context.Context, in ValidateVoucherInput, actor shared.Actor) (*ValidateVoucherResult, error)
}

type paymentUseCaseImpl struct {
	uow          shared.UnitOfWork
	adapters     payment.Adapters
	cache        shared.ProcessedEventCache
	processedTTL time.Duration
	dispatcher   *Dispatcher
	metrics      *metrics.Registry
	clock        clock.Clock
	logger       *slog.Logger
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	adapters payment.Adapters,
	cache shared.ProcessedEventCache,
	processedTTL time.Duration,
	dispatcher *Dispatcher,
	reg *metrics.Registry,
	clk clock.Clock,
	logger *slog.Logger,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:          uow,
		adapters:     adapters,
		cache:        cache,
		processedTTL: processedTTL,
		dispatcher:   dispatcher,
		metrics:      reg,
		clock:        clk,
		logger:       logger,
	}
}

func (uc *paymentUseCaseImpl) ConfirmCardPayment(ctx context.Context, ev CardPaymentEvent) (string, error) {
	seen, err := uc.cache.Seen(ctx, ev.EventID)
	if err != nil {
		uc.logger.Warn("processed event cache unavailable", "event_id", ev.EventID, "error", err)
	}
	if seen {
		uc.metrics.WebhookEvent(metrics.WebhookDuplicate)
		return metrics.WebhookDuplicate, nil
	}

	adapter, err := uc.adapters.For(booking.MethodCard)
	if err != nil {
		return "", classify(err)
	}

	now := uc.clock.Now()
	var (
		fx      *effects
		outcome string
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx, outcome = &effects{}, metrics.WebhookProcessed

		first, err := tx.PaymentEvents().Record(ctx, ev.Provider, ev.EventID, ev.EventType, ev.BookingID, now)
		if err != nil {
			return err
		}
		if !first {
			outcome = metrics.WebhookDuplicate
			return nil
		}

		b, err := uc.findCardBooking(ctx, tx, ev)
		if err != nil {
			if errors.Is(err, ErrBookingNotFound) {
				uc.logger.Info("card payment for unknown booking", "event_id", ev.EventID, "intent_id", ev.IntentID)
				outcome = metrics.WebhookIgnored
				return nil
			}
			return err
		}

		res, err := adapter.Confirm(ctx, tx, b, payment.ExternalEvent{
			Provider:  ev.Provider,
			EventID:   ev.EventID,
			Reference: ev.IntentID,
			Amount:    ev.Amount,
			At:        now,
		})
		if err != nil {
			if errors.Is(err, payment.ErrAmountMismatch) {
				outcome = metrics.WebhookRejected
				return nil
			}
			return err
		}
		if !res.Captured {
			outcome = metrics.WebhookIgnored
			return nil
		}

		fx.booking(b.Status())
		fx.escrow(res.Escrow)
		fx.notify(b.GuestID(), shared.NotifyBookingPaid, map[string]any{"booking_id": b.ID(), "status": b.Status().String()})
		fx.notify(b.HostID(), shared.NotifyBookingPaid, map[string]any{"booking_id": b.ID(), "status": b.Status().String()})
		if b.Status() == booking.StatusConfirmed {
			fx.email(b.GuestID(), "booking_confirmed", map[string]any{"booking_id": b.ID()})
		}
		return nil
	})
	if err != nil {
		return "", classify(err)
	}

	if err := uc.cache.MarkProcessed(ctx, ev.EventID, uc.processedTTL); err != nil {
		uc.logger.Warn("failed to cache processed event", "event_id", ev.EventID, "error", err)
	}
	uc.metrics.WebhookEvent(outcome)
	uc.dispatcher.dispatch(ctx, fx)
	return outcome, nil
}

func (uc *paymentUseCaseImpl) findCardBooking(ctx context.Context, tx shared.Tx, ev CardPaymentEvent) (*booking.Booking, error) {
	if ev.BookingID != nil {
		return lockBooking(ctx, tx, *ev.BookingID)
	}
	found, err := tx.Bookings().GetByPaymentIntent(ctx, ev.IntentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return lockBooking(ctx, tx, found.ID())
}

// ValidateVoucher records an agency's cash confirmation. An expired voucher is stored as expired
// with its booking and the call fails afterwards.
func (uc *paymentUseCaseImpl) ValidateVoucher(ctx context.Context, in ValidateVoucherInput, actor shared.Actor) (*ValidateVoucherResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if in.VoucherID == nil && in.BookingID == nil {
		return nil, ErrVoucherRefRequired
	}
	adapter, err := uc.adapters.For(booking.MethodCashVoucher)
	if err != nil {
		return nil, classify(err)
	}

	now := uc.clock.Now()
	var (
		fx      *effects
		result  *ValidateVoucherResult
		outcome error
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx, outcome = &effects{}, nil

		bookingID, err := uc.voucherBookingID(ctx, tx, in)
		if err != nil {
			return err
		}
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Method() != booking.MethodCashVoucher {
			return errs.Wrap(ErrVoucherNotFound, "booking is not paid by cash voucher")
		}

		res, err := adapter.Confirm(ctx, tx, b, payment.ExternalEvent{
			Provider:  "agency",
			EventID:   in.TransactionID,
			Reference: in.AgencyCode,
			Validation: &payment.VoucherValidation{
				AgencyCode:    in.AgencyCode,
				TransactionID: in.TransactionID,
				Admin:         actor.ID,
				Notes:         in.Notes,
			},
			At: now,
		})
		if err != nil {
			return err
		}
		result = &ValidateVoucherResult{BookingID: b.ID(), Status: b.Status()}

		switch {
		case res.Expired:
			outcome = ErrVoucherExpired
			fx.booking(booking.StatusExpired)
			fx.notify(b.GuestID(), shared.NotifyBookingExpired, map[string]any{"booking_id": b.ID()})
		case res.AlreadyApplied:
			outcome = ErrVoucherAlreadyUsed
		case res.Captured:
			fx.booking(b.Status())
			fx.escrow(res.Escrow)
			fx.notify(b.GuestID(), shared.NotifyBookingPaid, map[string]any{"booking_id": b.ID(), "status": b.Status().String()})
			fx.notify(b.HostID(), shared.NotifyBookingPaid, map[string]any{"booking_id": b.ID(), "status": b.Status().String()})
			fx.email(b.GuestID(), "cash_payment_received", map[string]any{"booking_id": b.ID()})
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	if outcome != nil {
		return nil, outcome
	}
	return result, nil
}

func (uc *paymentUseCaseImpl) voucherBookingID(ctx context.Context, tx shared.Tx, in ValidateVoucherInput) (uuid.UUID, error) {
	if in.BookingID != nil {
		return *in.BookingID, nil
	}
	v, err := tx.Vouchers().Get(ctx, *in.VoucherID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrVoucherNotFound
		}
		return uuid.Nil, err
	}
	return v.BookingID(), nil
}
