//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/domain/voucher"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func dzd(amount string) money.Money {
	return money.MustNew(amount, "DZD")
}

type BookingCommandsTestSuite struct {
	suite.Suite
	h   *harness
	ctx context.Context
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.h = newHarness(s.T())
	s.ctx = context.Background()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) assertMoney(want string, got money.Money) {
	s.T().Helper()
	s.True(got.Equal(dzd(want)), "want %s DZD, got %s", want, got)
}

func (s *BookingCommandsTestSuite) TestCreateBooking_Card() {
	result := s.h.create(s.T(), s.h.input(booking.MethodCard))

	s.Equal(booking.StatusPendingPayment, result.Status)
	s.False(result.IsReplayed)

	p := result.Pricing
	s.Equal(3, p.Nights)
	s.assertMoney("15000", p.Subtotal)
	s.assertMoney("15500", p.BaseAmount)
	s.assertMoney("1240", p.GuestServiceFee)
	s.assertMoney("465", p.HostCommission)
	s.assertMoney("16740", p.TotalAmount)
	s.assertMoney("15035", p.HostPayout)
	s.assertMoney("1705", p.PlatformRevenue)

	s.Require().NotNil(result.Payment)
	s.Equal(booking.MethodCard, result.Payment.Method)
	s.Equal("pi_fake_000001", result.Payment.Reference)
	s.Equal("pi_fake_000001_secret", result.Payment.ClientSecret)
	s.Equal(s.h.bb.Now.Add(30*time.Minute), result.Payment.Deadline)
	s.Nil(result.Payment.Voucher)

	stored := s.h.booking(s.T(), result.BookingID)
	s.Equal(s.h.host.ID, stored.HostID())
	s.Equal(booking.PaymentPending, stored.PaymentStatus())
	s.Equal("stay", stored.Commission().Category)
	s.False(s.h.hasEscrow(s.T(), result.BookingID), "nothing is held before capture")

	s.Equal([]string{shared.NotifyBookingRequested}, s.h.recorder.typesFor(s.h.host.ID))
	s.Equal(float64(1), metricValue(s.h, "rental_escrow_booking_transitions_total", "pending_payment"))
}

func (s *BookingCommandsTestSuite) TestCreateBooking_CashVoucher() {
	result := s.h.create(s.T(), s.h.input(booking.MethodCashVoucher))

	s.Equal(booking.StatusPendingPayment, result.Status)
	s.Require().NotNil(result.Payment.Voucher)
	v := result.Payment.Voucher
	s.assertMoney("16740", v.Amount)
	s.Equal(s.h.bb.Now.Add(72*time.Hour), v.ExpiresAt)
	s.Equal(testBookingConfig.VoucherInstructions, v.Instructions)
	s.NotEmpty(v.Number)

	stored := s.h.voucherFor(s.T(), result.BookingID)
	s.Equal(v.ID, stored.ID())
	s.Equal(v.Number, stored.Number())
	s.Equal([]string{"cash_voucher_issued"}, s.h.recorder.templates())
}

func (s *BookingCommandsTestSuite) TestCreateBooking_VoucherFailureLeavesNoBooking() {
	h := newHarness(s.T(), withUnitOfWork(func(u shared.UnitOfWork) shared.UnitOfWork {
		return failingVouchers{u}
	}))

	_, err := h.bookings.CreateBooking(s.ctx, h.input(booking.MethodCashVoucher), h.guest, uuid.New())

	s.ErrorIs(err, errVoucherInsert)
	s.Empty(h.guestBookings(s.T()))
	s.Empty(h.recorder.typesFor(h.host.ID))

	_, err = h.bookings.CreateBooking(s.ctx, h.input(booking.MethodCard), h.guest, uuid.New())
	s.NoError(err, "the dates stay free after the rollback")
}

func (s *BookingCommandsTestSuite) TestCreateBooking_ProviderFailure() {
	s.h.gateway.FailCreate = true

	_, err := s.h.bookings.CreateBooking(s.ctx, s.h.input(booking.MethodCard), s.h.guest, uuid.New())

	s.ErrorIs(err, commands.ErrPaymentProvider)
	s.Empty(s.h.guestBookings(s.T()))
}

func (s *BookingCommandsTestSuite) TestCreateBooking_Idempotency() {
	key := uuid.New()
	in := s.h.input(booking.MethodCard)

	first, err := s.h.bookings.CreateBooking(s.ctx, in, s.h.guest, key)
	s.Require().NoError(err)

	s.Run("same request replays the original booking", func() {
		again, err := s.h.bookings.CreateBooking(s.ctx, in, s.h.guest, key)
		s.Require().NoError(err)
		s.True(again.IsReplayed)
		s.Equal(first.BookingID, again.BookingID)
		s.Equal(first.Payment.Reference, again.Payment.Reference)
		s.Len(s.h.guestBookings(s.T()), 1)
	})

	s.Run("different request with the same key is refused", func() {
		other := in
		other.Adults = 3
		_, err := s.h.bookings.CreateBooking(s.ctx, other, s.h.guest, key)
		s.ErrorIs(err, commands.ErrIdempotencyKeyReused)
	})

	s.Run("missing key", func() {
		_, err := s.h.bookings.CreateBooking(s.ctx, in, s.h.guest, uuid.Nil)
		s.ErrorIs(err, commands.ErrIdempotencyKeyRequired)
	})
}

func (s *BookingCommandsTestSuite) TestCreateBooking_Rejections() {
	otherListing := uuid.New()

	tests := []struct {
		name    string
		setup   func()
		actor   func() shared.Actor
		mutate  func(*commands.CreateBookingInput)
		wantErr error
	}{
		{
			name:    "unknown listing",
			mutate:  func(in *commands.CreateBookingInput) { in.ListingID = uuid.New() },
			wantErr: commands.ErrListingNotFound,
		},
		{
			name: "host books own listing",
			actor: func() shared.Actor {
				return s.h.host
			},
			wantErr: commands.ErrValidation,
		},
		{
			name:    "check-out before check-in",
			mutate:  func(in *commands.CreateBookingInput) { in.CheckIn, in.CheckOut = in.CheckOut, in.CheckIn },
			wantErr: commands.ErrValidation,
		},
		{
			name:    "too many guests",
			mutate:  func(in *commands.CreateBookingInput) { in.Adults = 5 },
			wantErr: commands.ErrValidation,
		},
		{
			name:    "unknown payment method",
			mutate:  func(in *commands.CreateBookingInput) { in.PaymentMethod = "bitcoin" },
			wantErr: commands.ErrValidation,
		},
		{
			name: "inactive listing",
			setup: func() {
				s.h.seedListing(func(l *shared.ListingSnapshot) { l.ID = otherListing; l.Status = "paused" })
			},
			mutate:  func(in *commands.CreateBookingInput) { in.ListingID = otherListing },
			wantErr: commands.ErrValidation,
		},
		{
			name:    "blocked on the host calendar",
			setup:   func() { s.h.store.BlockDates(s.h.bb.Listing.ID, s.h.bb.CheckIn.AddDate(0, 0, 1), s.h.bb.CheckOut) },
			wantErr: commands.ErrUnavailable,
		},
		{
			name: "cash guest unknown to the directory",
			actor: func() shared.Actor {
				return shared.Actor{ID: uuid.New(), Role: user.RoleGuest}
			},
			mutate:  func(in *commands.CreateBookingInput) { in.PaymentMethod = booking.MethodCashVoucher.String() },
			wantErr: commands.ErrGuestContactMissing,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setup != nil {
				tt.setup()
			}
			actor := s.h.guest
			if tt.actor != nil {
				actor = tt.actor()
			}
			in := s.h.input(booking.MethodCard)
			if tt.mutate != nil {
				tt.mutate(&in)
			}

			_, err := s.h.bookings.CreateBooking(s.ctx, in, actor, uuid.New())

			s.ErrorIs(err, tt.wantErr)
		})
	}
}

func (s *BookingCommandsTestSuite) TestCreateBooking_OverlapIsUnavailable() {
	s.h.create(s.T(), s.h.input(booking.MethodCard))

	in := s.h.input(booking.MethodCard)
	in.CheckIn = s.h.bb.CheckIn.AddDate(0, 0, 2).Format(time.DateOnly)
	in.CheckOut = s.h.bb.CheckOut.AddDate(0, 0, 2).Format(time.DateOnly)
	_, err := s.h.bookings.CreateBooking(s.ctx, in, s.h.guest, uuid.New())

	s.ErrorIs(err, commands.ErrUnavailable)
	s.ErrorIs(err, commands.ErrConflict)
}

func (s *BookingCommandsTestSuite) TestCancel_PendingCard() {
	result := s.h.create(s.T(), s.h.input(booking.MethodCard))

	err := s.h.bookings.CancelBooking(s.ctx, result.BookingID, s.h.guest, "change of plans")

	s.Require().NoError(err)
	b := s.h.booking(s.T(), result.BookingID)
	s.Equal(booking.StatusCancelledByGuest, b.Status())
	s.Equal(booking.PaymentCancelled, b.PaymentStatus())
	s.Require().NotNil(b.Cancellation())
	s.Equal("change of plans", b.Cancellation().Reason)
	s.True(s.h.gateway.IsCancelled(result.Payment.Reference))
	s.False(s.h.hasEscrow(s.T(), result.BookingID))
	s.Contains(s.h.recorder.typesFor(s.h.host.ID), shared.NotifyBookingCancelled)
}

func (s *BookingCommandsTestSuite) TestCancel_PendingVoucher() {
	result := s.h.create(s.T(), s.h.input(booking.MethodCashVoucher))

	s.Require().NoError(s.h.bookings.CancelBooking(s.ctx, result.BookingID, s.h.host, ""))

	s.Equal(booking.StatusCancelledByHost, s.h.booking(s.T(), result.BookingID).Status())
	s.Equal(voucher.StatusCancelled, s.h.voucherFor(s.T(), result.BookingID).Status())
}

func (s *BookingCommandsTestSuite) TestCancel_CapturedByGuest() {
	tests := []struct {
		name        string
		at          time.Time
		hostShare   string
		guestShare  string
		wantPayment booking.PaymentStatus
	}{
		{
			name:        "before the free cancellation window closes",
			at:          time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			hostShare:   "0",
			guestShare:  "16740",
			wantPayment: booking.PaymentRefunded,
		},
		{
			name:        "inside the moderate penalty window",
			at:          time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC),
			hostShare:   "8370",
			guestShare:  "8370",
			wantPayment: booking.PaymentPartiallyRefunded,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			result := s.h.confirmedBooking(s.T())
			s.h.clock.Set(tt.at)

			s.Require().NoError(s.h.bookings.CancelBooking(s.ctx, result.BookingID, s.h.guest, ""))

			b := s.h.booking(s.T(), result.BookingID)
			s.Equal(booking.StatusCancelledByGuest, b.Status())
			s.Equal(tt.wantPayment, b.PaymentStatus())

			e := s.h.escrow(s.T(), result.BookingID)
			s.Equal(escrow.StatusSplit, e.Status())
			s.Require().NotNil(e.SplitResult())
			s.assertMoney(tt.hostShare, e.SplitResult().HostShare)
			s.assertMoney(tt.guestShare, e.SplitResult().GuestShare)
			s.Equal([]escrow.Action{escrow.ActionHold, escrow.ActionFreeze, escrow.ActionSplit}, s.h.escrowActions(s.T(), result.BookingID))
		})
	}
}

func (s *BookingCommandsTestSuite) TestCancel_CapturedByHostRefundsEverything() {
	result := s.h.confirmedBooking(s.T())
	s.h.clock.Set(time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC))

	s.Require().NoError(s.h.bookings.CancelBooking(s.ctx, result.BookingID, s.h.host, "double booked"))

	e := s.h.escrow(s.T(), result.BookingID)
	s.assertMoney("0", e.SplitResult().HostShare)
	s.assertMoney("16740", e.SplitResult().GuestShare)
	s.Equal(booking.PaymentRefunded, s.h.booking(s.T(), result.BookingID).PaymentStatus())
}

func (s *BookingCommandsTestSuite) TestCancel_AfterPaymentWindowExpires() {
	result := s.h.create(s.T(), s.h.input(booking.MethodCard))
	s.h.clock.Add(31 * time.Minute)

	err := s.h.bookings.CancelBooking(s.ctx, result.BookingID, s.h.guest, "")

	s.ErrorIs(err, commands.ErrPaymentExpired)
	b := s.h.booking(s.T(), result.BookingID)
	s.Equal(booking.StatusExpired, b.Status(), "the lazy expiry is persisted even though the call fails")
	s.Equal(booking.PaymentExpired, b.PaymentStatus())
	s.True(s.h.gateway.IsCancelled(result.Payment.Reference))
}

func (s *BookingCommandsTestSuite) TestCancel_Refusals() {
	result := s.h.confirmedBooking(s.T())

	err := s.h.bookings.CancelBooking(s.ctx, result.BookingID, shared.Actor{ID: uuid.New(), Role: user.RoleGuest}, "")
	s.ErrorIs(err, commands.ErrForbidden)

	err = s.h.bookings.CancelBooking(s.ctx, uuid.New(), s.h.guest, "")
	s.ErrorIs(err, commands.ErrBookingNotFound)

	s.h.clock.Set(time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC))
	_, err = s.h.sweeps.ActivateDue(s.ctx)
	s.Require().NoError(err)
	err = s.h.bookings.CancelBooking(s.ctx, result.BookingID, s.h.guest, "")
	s.ErrorIs(err, commands.ErrConflict, "an active stay can no longer be cancelled")
}

func (s *BookingCommandsTestSuite) TestAcceptAndReject() {
	s.h.seedListing(func(l *shared.ListingSnapshot) { l.InstantBook = false })

	s.Run("paid request waits for the host", func() {
		result := s.h.create(s.T(), s.h.input(booking.MethodCard))
		_, err := s.h.payments.ConfirmCardPayment(s.ctx, s.h.cardEvent(result))
		s.Require().NoError(err)
		s.Equal(booking.StatusPaid, s.h.booking(s.T(), result.BookingID).Status())

		err = s.h.bookings.AcceptBooking(s.ctx, result.BookingID, s.h.guest)
		s.ErrorIs(err, commands.ErrHostOnly)

		s.Require().NoError(s.h.bookings.AcceptBooking(s.ctx, result.BookingID, s.h.host))
		b := s.h.booking(s.T(), result.BookingID)
		s.Equal(booking.StatusConfirmed, b.Status())
		s.NotNil(b.ConfirmedAt())
		s.Contains(s.h.recorder.templates(), "booking_confirmed")

		err = s.h.bookings.AcceptBooking(s.ctx, result.BookingID, s.h.host)
		s.ErrorIs(err, commands.ErrConflict)

		s.Require().NoError(s.h.bookings.CancelBooking(s.ctx, result.BookingID, s.h.admin, "cleanup"))
	})

	s.Run("rejection refunds the guest", func() {
		result := s.h.create(s.T(), s.h.input(booking.MethodCard))
		_, err := s.h.payments.ConfirmCardPayment(s.ctx, s.h.cardEvent(result))
		s.Require().NoError(err)

		s.Require().NoError(s.h.bookings.RejectBooking(s.ctx, result.BookingID, s.h.host, "maintenance"))

		b := s.h.booking(s.T(), result.BookingID)
		s.Equal(booking.StatusCancelledByHost, b.Status())
		s.Equal(booking.PaymentRefunded, b.PaymentStatus())
		e := s.h.escrow(s.T(), result.BookingID)
		s.Equal(escrow.StatusSplit, e.Status())
		s.assertMoney("16740", e.SplitResult().GuestShare)
	})
}

func (s *BookingCommandsTestSuite) TestCompleteBooking() {
	result := s.h.confirmedBooking(s.T())

	err := s.h.bookings.CompleteBooking(s.ctx, result.BookingID, s.h.host)
	s.ErrorIs(err, commands.ErrConflict, "a confirmed stay that has not started cannot complete")

	s.h.clock.Set(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))
	n, err := s.h.sweeps.ActivateDue(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	err = s.h.bookings.CompleteBooking(s.ctx, result.BookingID, s.h.guest)
	s.ErrorIs(err, commands.ErrHostOnly)

	s.Require().NoError(s.h.bookings.CompleteBooking(s.ctx, result.BookingID, s.h.host))
	b := s.h.booking(s.T(), result.BookingID)
	s.Equal(booking.StatusCompleted, b.Status())
	s.NotNil(b.CompletedAt())
	s.Contains(s.h.recorder.typesFor(s.h.guest.ID), shared.NotifyBookingCompleted)
	s.Equal(escrow.StatusHeld, s.h.escrow(s.T(), result.BookingID).Status(), "completion does not release funds")
}

// metricValue reads a labelled counter back through the gatherer; the registry keeps its vectors
// private.
func metricValue(h *harness, name, label string) float64 {
	families, err := h.metrics.Gatherer().Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
