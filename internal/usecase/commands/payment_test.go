//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/voucher"
	"rental-escrow/internal/infra/cache"
	"rental-escrow/internal/pkg/metrics"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmCardPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("captures and holds the total", func(t *testing.T) {
		h := newHarness(t)
		result := h.create(t, h.input(booking.MethodCard))
		h.recorder.reset()

		outcome, err := h.payments.ConfirmCardPayment(ctx, h.cardEvent(result))

		require.NoError(t, err)
		assert.Equal(t, metrics.WebhookProcessed, outcome)

		b := h.booking(t, result.BookingID)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, booking.PaymentSucceeded, b.PaymentStatus())

		e := h.escrow(t, result.BookingID)
		assert.Equal(t, escrow.StatusHeld, e.Status())
		assert.True(t, e.Held().Equal(dzd("16740")), "held %s", e.Held())
		assert.Equal(t, time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC), e.ReleaseEligibleAt())

		assert.Equal(t, []string{shared.NotifyBookingPaid}, h.recorder.typesFor(h.guest.ID))
		assert.Equal(t, []string{shared.NotifyBookingPaid}, h.recorder.typesFor(h.host.ID))
		assert.Equal(t, []string{"booking_confirmed"}, h.recorder.templates())
		assert.Equal(t, float64(1), metricValue(h, "rental_escrow_payment_webhook_events_total", metrics.WebhookProcessed))
		assert.Equal(t, float64(1), metricValue(h, "rental_escrow_escrow_transitions_total", string(escrow.ActionHold)))
	})

	t.Run("redelivery is a no-op", func(t *testing.T) {
		h := newHarness(t)
		result := h.confirmedBooking(t)
		h.recorder.reset()

		outcome, err := h.payments.ConfirmCardPayment(ctx, h.cardEvent(result))

		require.NoError(t, err)
		assert.Equal(t, metrics.WebhookDuplicate, outcome)
		assert.Equal(t, []escrow.Action{escrow.ActionHold}, h.escrowActions(t, result.BookingID))
		assert.Empty(t, h.recorder.typesFor(h.guest.ID))
		assert.Equal(t, float64(1), metricValue(h, "rental_escrow_payment_webhook_events_total", metrics.WebhookDuplicate))
	})

	t.Run("redelivery after the cache lost the event", func(t *testing.T) {
		h := newHarness(t)
		result := h.confirmedBooking(t)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		dispatcher := commands.NewDispatcher(h.recorder, h.recorder, h.store.Directory(), h.metrics, logger)
		fresh := commands.NewPaymentUseCase(h.uow, h.adapters, cache.NewMemoryEventCache(h.clock), time.Hour, dispatcher, h.metrics, h.clock, logger)

		outcome, err := fresh.ConfirmCardPayment(ctx, h.cardEvent(result))

		require.NoError(t, err)
		assert.Equal(t, metrics.WebhookDuplicate, outcome)
		assert.Equal(t, []escrow.Action{escrow.ActionHold}, h.escrowActions(t, result.BookingID))
	})

	t.Run("a second event for a captured booking changes nothing", func(t *testing.T) {
		h := newHarness(t)
		result := h.confirmedBooking(t)
		ev := h.cardEvent(result)
		ev.EventID = "evt_retry"

		outcome, err := h.payments.ConfirmCardPayment(ctx, ev)

		require.NoError(t, err)
		assert.Equal(t, metrics.WebhookIgnored, outcome)
		assert.Equal(t, []escrow.Action{escrow.ActionHold}, h.escrowActions(t, result.BookingID))
	})

	t.Run("booking found by intent id", func(t *testing.T) {
		h := newHarness(t)
		result := h.create(t, h.input(booking.MethodCard))
		ev := h.cardEvent(result)
		ev.BookingID = nil

		outcome, err := h.payments.ConfirmCardPayment(ctx, ev)

		require.NoError(t, err)
		assert.Equal(t, metrics.WebhookProcessed, outcome)
		assert.Equal(t, booking.StatusConfirmed, h.booking(t, result.BookingID).Status())
	})

	t.Run("unknown intent is acknowledged and ignored", func(t *testing.T) {
		h := newHarness(t)

		outcome, err := h.payments.ConfirmCardPayment(ctx, commands.CardPaymentEvent{
			Provider:  "stripe",
			EventID:   "evt_orphan",
			EventType: "payment_intent.succeeded",
			IntentID:  "pi_unknown",
		})

		require.NoError(t, err)
		assert.Equal(t, metrics.WebhookIgnored, outcome)
	})

	t.Run("amount mismatch is rejected without capture", func(t *testing.T) {
		h := newHarness(t)
		result := h.create(t, h.input(booking.MethodCard))
		ev := h.cardEvent(result)
		wrong := dzd("100")
		ev.Amount = &wrong

		outcome, err := h.payments.ConfirmCardPayment(ctx, ev)

		require.NoError(t, err)
		assert.Equal(t, metrics.WebhookRejected, outcome)
		assert.Equal(t, booking.StatusPendingPayment, h.booking(t, result.BookingID).Status())
		assert.False(t, h.hasEscrow(t, result.BookingID))
	})

	t.Run("late capture of a still pending booking is accepted", func(t *testing.T) {
		h := newHarness(t)
		result := h.create(t, h.input(booking.MethodCard))
		h.clock.Add(45 * time.Minute)

		outcome, err := h.payments.ConfirmCardPayment(ctx, h.cardEvent(result))

		require.NoError(t, err)
		assert.Equal(t, metrics.WebhookProcessed, outcome)
		assert.Equal(t, booking.StatusConfirmed, h.booking(t, result.BookingID).Status())
	})

	t.Run("capture after the sweeper expired the booking", func(t *testing.T) {
		h := newHarness(t)
		result := h.create(t, h.input(booking.MethodCard))
		h.clock.Add(31 * time.Minute)
		n, err := h.sweeps.ExpireOverdue(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		outcome, err := h.payments.ConfirmCardPayment(ctx, h.cardEvent(result))

		require.NoError(t, err)
		assert.Equal(t, metrics.WebhookIgnored, outcome)
		assert.Equal(t, booking.StatusExpired, h.booking(t, result.BookingID).Status())
		assert.False(t, h.hasEscrow(t, result.BookingID))
	})
}

func TestValidateVoucher(t *testing.T) {
	ctx := context.Background()

	validation := func(bookingID uuid.UUID) commands.ValidateVoucherInput {
		return commands.ValidateVoucherInput{
			BookingID:     &bookingID,
			AgencyCode:    "AG-ALG-01",
			TransactionID: "TX-7781",
			Notes:         "paid at counter",
		}
	}

	t.Run("captures a pending voucher", func(t *testing.T) {
		h := newHarness(t)
		created := h.create(t, h.input(booking.MethodCashVoucher))
		h.clock.Add(48 * time.Hour)

		result, err := h.payments.ValidateVoucher(ctx, validation(created.BookingID), h.admin)

		require.NoError(t, err)
		assert.Equal(t, created.BookingID, result.BookingID)
		assert.Equal(t, booking.StatusConfirmed, result.Status)
		assert.Equal(t, voucher.StatusValidated, h.voucherFor(t, created.BookingID).Status())
		e := h.escrow(t, created.BookingID)
		assert.Equal(t, escrow.StatusHeld, e.Status())
		assert.True(t, e.Held().Equal(dzd("16740")))
		assert.Contains(t, h.recorder.templates(), "cash_payment_received")
	})

	t.Run("by voucher id", func(t *testing.T) {
		h := newHarness(t)
		created := h.create(t, h.input(booking.MethodCashVoucher))
		in := validation(created.BookingID)
		in.BookingID = nil
		in.VoucherID = &created.Payment.Voucher.ID

		result, err := h.payments.ValidateVoucher(ctx, in, h.admin)

		require.NoError(t, err)
		assert.Equal(t, created.BookingID, result.BookingID)
	})

	t.Run("second validation is refused", func(t *testing.T) {
		h := newHarness(t)
		created := h.create(t, h.input(booking.MethodCashVoucher))
		_, err := h.payments.ValidateVoucher(ctx, validation(created.BookingID), h.admin)
		require.NoError(t, err)

		_, err = h.payments.ValidateVoucher(ctx, validation(created.BookingID), h.admin)

		assert.ErrorIs(t, err, commands.ErrVoucherAlreadyUsed)
		assert.Equal(t, []escrow.Action{escrow.ActionHold}, h.escrowActions(t, created.BookingID))
	})

	t.Run("expired voucher expires the booking", func(t *testing.T) {
		h := newHarness(t)
		created := h.create(t, h.input(booking.MethodCashVoucher))
		h.clock.Add(73 * time.Hour)

		_, err := h.payments.ValidateVoucher(ctx, validation(created.BookingID), h.admin)

		assert.ErrorIs(t, err, commands.ErrVoucherExpired)
		assert.Equal(t, booking.StatusExpired, h.booking(t, created.BookingID).Status())
		assert.Equal(t, voucher.StatusExpired, h.voucherFor(t, created.BookingID).Status())
		assert.False(t, h.hasEscrow(t, created.BookingID))
		assert.Contains(t, h.recorder.typesFor(h.guest.ID), shared.NotifyBookingExpired)
	})

	t.Run("refusals", func(t *testing.T) {
		h := newHarness(t)
		cash := h.create(t, h.input(booking.MethodCashVoucher))
		unknown := uuid.New()

		_, err := h.payments.ValidateVoucher(ctx, validation(cash.BookingID), h.guest)
		assert.ErrorIs(t, err, commands.ErrAdminOnly)

		_, err = h.payments.ValidateVoucher(ctx, commands.ValidateVoucherInput{AgencyCode: "AG", TransactionID: "TX"}, h.admin)
		assert.ErrorIs(t, err, commands.ErrVoucherRefRequired)

		_, err = h.payments.ValidateVoucher(ctx, commands.ValidateVoucherInput{VoucherID: &unknown, AgencyCode: "AG", TransactionID: "TX"}, h.admin)
		assert.ErrorIs(t, err, commands.ErrVoucherNotFound)

		_, err = h.payments.ValidateVoucher(ctx, validation(unknown), h.admin)
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("card booking has no voucher", func(t *testing.T) {
		h := newHarness(t)
		card := h.create(t, h.input(booking.MethodCard))

		_, err := h.payments.ValidateVoucher(ctx, validation(card.BookingID), h.admin)

		assert.ErrorIs(t, err, commands.ErrVoucherNotFound)
		assert.Equal(t, booking.StatusPendingPayment, h.booking(t, card.BookingID).Status())
	})
}
