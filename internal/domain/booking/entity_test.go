//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/money"
	"rental-escrow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPendingPayment, actual.Status())
		assert.Equal(t, booking.PaymentPending, actual.PaymentStatus())
		assert.Equal(t, 3, actual.Stay().Nights())
		assert.Equal(t, b.Listing.HostID, actual.HostID())
		assert.Equal(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), actual.CheckInAt())
		assert.Equal(t, time.Date(2026, 3, 13, 11, 0, 0, 0, time.UTC), actual.CheckOutAt())
		assert.True(t, actual.Pricing().TotalAmount.Equal(money.MustNew("16240", "DZD")))
	})

	t.Run("request validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "inactive listing",
				mutate: func(b *builder.BookingBuilder) { b.Listing.Active = false },
				errIs:  booking.ErrListingInactive,
			},
			{
				name:   "host books own listing",
				mutate: func(b *builder.BookingBuilder) { b.GuestID = b.Listing.HostID },
				errIs:  booking.ErrSelfBooking,
			},
			{
				name:   "check-in in the past",
				mutate: func(b *builder.BookingBuilder) { b.CheckIn = b.Now.AddDate(0, 0, -1) },
				errIs:  booking.ErrCheckInInPast,
			},
			{
				name:   "check-in today",
				mutate: func(b *builder.BookingBuilder) { b.CheckIn = b.Now },
			},
			{
				name:   "stay below minimum",
				mutate: func(b *builder.BookingBuilder) { b.Listing.MinStay = 4 },
				errIs:  booking.ErrStayTooShort,
			},
			{
				name:   "stay at minimum",
				mutate: func(b *builder.BookingBuilder) { b.Listing.MinStay = 3 },
			},
			{
				name:   "stay above maximum",
				mutate: func(b *builder.BookingBuilder) { b.Listing.MaxStay = 2 },
				errIs:  booking.ErrStayTooLong,
			},
			{
				name:   "too many guests",
				mutate: func(b *builder.BookingBuilder) { b.Adults = 3; b.Children = 2 },
				errIs:  booking.ErrTooManyGuests,
			},
			{
				name:   "infants do not count against capacity",
				mutate: func(b *builder.BookingBuilder) { b.Adults = 4; b.Infants = 2 },
			},
			{
				name:   "no adults",
				mutate: func(b *builder.BookingBuilder) { b.Adults = 0 },
				errIs:  booking.ErrInvalidGuests,
			},
			{
				name:   "check-out before check-in",
				mutate: func(b *builder.BookingBuilder) { b.CheckOut = b.CheckIn },
				errIs:  booking.ErrInvalidDateRange,
			},
			{
				name:   "unknown payment method",
				mutate: func(b *builder.BookingBuilder) { b.Method = "wire" },
				errIs:  booking.ErrInvalidPaymentMethod,
			},
		})
	})
}

func TestBookingTransitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("instant book confirms on capture", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, booking.PaymentSucceeded, b.PaymentStatus())
		require.NotNil(t, b.ConfirmedAt())
	})

	t.Run("request-to-book waits for host", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Listing.InstantBook = false
		}).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.AttachPayment(booking.CardPayment{IntentID: "pi_1"}, now.Add(time.Hour)))
		require.NoError(t, b.ConfirmPayment(now))
		assert.Equal(t, booking.StatusPaid, b.Status())

		require.ErrorIs(t, b.Accept(b.GuestID(), now), booking.ErrNotParticipant)
		require.NoError(t, b.Accept(b.HostID(), now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.ErrorIs(t, b.ConfirmPayment(now), booking.ErrInvalidTransition)
	})

	t.Run("host rejection cancels", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Listing.InstantBook = false
		}).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.ConfirmPayment(now))
		require.NoError(t, b.Reject(b.HostID(), "dates no longer work", now))
		assert.Equal(t, booking.StatusCancelledByHost, b.Status())
		require.NotNil(t, b.Cancellation())
		assert.Equal(t, booking.ActorHost, b.Cancellation().Role)
	})

	t.Run("payment must match method", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.ErrorIs(t, b.AttachPayment(booking.VoucherPayment{VoucherID: uuid.New()}, now), booking.ErrPaymentMismatch)
		require.NoError(t, b.AttachPayment(booking.CardPayment{IntentID: "pi_1"}, now))
		require.ErrorIs(t, b.AttachPayment(booking.CardPayment{IntentID: "pi_2"}, now), booking.ErrPaymentAttached)
	})

	t.Run("activation waits for check-in time", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		require.ErrorIs(t, b.Activate(b.CheckInAt().Add(-time.Minute)), booking.ErrInvalidTransition)
		require.NoError(t, b.Activate(b.CheckInAt()))
		assert.Equal(t, booking.StatusActive, b.Status())
	})

	t.Run("completion after grace or on demand", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		require.NoError(t, b.Activate(b.CheckInAt()))

		grace := 2 * time.Hour
		assert.False(t, b.IsDueForCompletion(b.CheckOutAt().Add(time.Hour), grace))
		assert.True(t, b.IsDueForCompletion(b.CheckOutAt().Add(grace), grace))
		require.NoError(t, b.Complete(b.CheckOutAt()))
		assert.Equal(t, booking.StatusCompleted, b.Status())
		require.NotNil(t, b.CompletedAt())
	})

	t.Run("cancellation", func(t *testing.T) {
		cases := []struct {
			name  string
			role  booking.ActorRole
			actor func(*booking.Booking) uuid.UUID
			want  booking.Status
			errIs error
		}{
			{name: "guest", role: booking.ActorGuest, actor: (*booking.Booking).GuestID, want: booking.StatusCancelledByGuest},
			{name: "host", role: booking.ActorHost, actor: (*booking.Booking).HostID, want: booking.StatusCancelledByHost},
			{name: "admin", role: booking.ActorAdmin, actor: func(*booking.Booking) uuid.UUID { return uuid.New() }, want: booking.StatusCancelledByAdmin},
			{name: "stranger as guest", role: booking.ActorGuest, actor: func(*booking.Booking) uuid.UUID { return uuid.New() }, errIs: booking.ErrNotParticipant},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				b, err := builder.NewBookingBuilder().BuildConfirmed()
				require.NoError(t, err)
				err = b.Cancel(c.actor(b), c.role, "change of plans", now)
				if c.errIs != nil {
					require.ErrorIs(t, err, c.errIs)
					assert.Equal(t, booking.StatusConfirmed, b.Status())
					return
				}
				require.NoError(t, err)
				assert.Equal(t, c.want, b.Status())
			})
		}
	})

	t.Run("cancellation rejected once active or completed", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		require.NoError(t, b.Activate(b.CheckInAt()))
		require.ErrorIs(t, b.Cancel(b.GuestID(), booking.ActorGuest, "", now), booking.ErrInvalidTransition)
		require.NoError(t, b.Complete(b.CheckOutAt()))
		require.ErrorIs(t, b.Cancel(uuid.New(), booking.ActorAdmin, "", now), booking.ErrInvalidTransition)
	})

	t.Run("expiry only from pending payment", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		deadline := now.Add(30 * time.Minute)
		require.NoError(t, b.AttachPayment(booking.CardPayment{IntentID: "pi_1"}, deadline))

		assert.False(t, b.IsPaymentOverdue(deadline))
		assert.True(t, b.IsPaymentOverdue(deadline.Add(time.Second)))
		require.NoError(t, b.Expire(deadline.Add(time.Second)))
		assert.Equal(t, booking.StatusExpired, b.Status())
		assert.Equal(t, booking.PaymentExpired, b.PaymentStatus())

		confirmed, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		assert.False(t, confirmed.IsPaymentOverdue(now.Add(24*time.Hour)))
		require.ErrorIs(t, confirmed.Expire(now), booking.ErrInvalidTransition)
	})

	t.Run("dispute round trip restores prior status", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		require.NoError(t, b.Activate(b.CheckInAt()))
		require.NoError(t, b.MarkDisputed(now))
		assert.Equal(t, booking.StatusDisputed, b.Status())
		require.NoError(t, b.RestoreAfterDispute(now))
		assert.Equal(t, booking.StatusActive, b.Status())
		assert.Nil(t, b.PreviousStatus())
	})

	t.Run("settling a dispute before the stay cancels the booking", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		admin := uuid.New()
		require.NoError(t, b.MarkDisputed(now))
		require.NoError(t, b.SettleDispute(admin, "Host no-show.", now))
		assert.Equal(t, booking.StatusCancelledByAdmin, b.Status())
		require.NotNil(t, b.Cancellation())
		assert.Equal(t, admin, b.Cancellation().By)
		assert.Nil(t, b.PreviousStatus())
		assert.False(t, b.HasStayed())
	})

	t.Run("settling a dispute during the stay resumes it", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		require.NoError(t, b.Activate(b.CheckInAt()))
		require.NoError(t, b.MarkDisputed(now))
		require.NoError(t, b.SettleDispute(uuid.New(), "Partial refund.", now))
		assert.Equal(t, booking.StatusActive, b.Status())
		assert.Nil(t, b.Cancellation())
		assert.True(t, b.HasStayed())
	})

	t.Run("unaccepted request expires at check-in", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Listing.InstantBook = false
		}).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.AttachPayment(booking.CardPayment{IntentID: "pi_1"}, now.Add(time.Hour)))
		require.NoError(t, b.ConfirmPayment(now))

		require.ErrorIs(t, b.ExpireUnaccepted(b.CheckInAt().Add(-time.Minute)), booking.ErrInvalidTransition)
		require.NoError(t, b.ExpireUnaccepted(b.CheckInAt()))
		assert.Equal(t, booking.StatusExpired, b.Status())
		assert.Equal(t, booking.PaymentSucceeded, b.PaymentStatus())
		require.ErrorIs(t, b.Accept(b.HostID(), now), booking.ErrInvalidTransition)
	})

	t.Run("completed booking keeps its status when disputed", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		require.NoError(t, b.Activate(b.CheckInAt()))
		require.NoError(t, b.Complete(b.CheckOutAt()))
		assert.True(t, b.CanOpenDispute())
		require.NoError(t, b.MarkDisputed(now))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("refund bookkeeping", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildConfirmed()
		require.NoError(t, err)
		b.RecordRefund(money.MustNew("4872", "DZD"), now)
		assert.Equal(t, booking.PaymentPartiallyRefunded, b.PaymentStatus())
		b.RecordRefund(b.Pricing().TotalAmount, now)
		assert.Equal(t, booking.PaymentRefunded, b.PaymentStatus())
	})
}

func TestGuestCancellationSplit(t *testing.T) {
	held := money.MustNew("16240", "DZD")
	checkIn := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		policy    booking.CancellationPolicy
		cancelAt  time.Time
		wantHost  string
		wantGuest string
	}{
		{name: "flexible early", policy: booking.PolicyFlexible, cancelAt: checkIn.Add(-48 * time.Hour), wantHost: "0", wantGuest: "16240"},
		{name: "flexible late", policy: booking.PolicyFlexible, cancelAt: checkIn.Add(-time.Hour), wantHost: "8120", wantGuest: "8120"},
		{name: "moderate within window", policy: booking.PolicyModerate, cancelAt: checkIn.Add(-72 * time.Hour), wantHost: "8120", wantGuest: "8120"},
		{name: "strict late", policy: booking.PolicyStrict, cancelAt: checkIn.Add(-7 * 24 * time.Hour), wantHost: "16240", wantGuest: "0"},
		{name: "strict early", policy: booking.PolicyStrict, cancelAt: checkIn.Add(-15 * 24 * time.Hour), wantHost: "0", wantGuest: "16240"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			host, guest := c.policy.GuestCancellationSplit(held, c.cancelAt, checkIn)
			assert.True(t, host.Equal(money.MustNew(c.wantHost, "DZD")), "host share %s", host)
			assert.True(t, guest.Equal(money.MustNew(c.wantGuest, "DZD")), "guest share %s", guest)
			sum, err := host.Add(guest)
			require.NoError(t, err)
			assert.True(t, sum.Equal(held))
		})
	}
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
