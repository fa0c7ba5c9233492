//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/payout"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"
	"rental-escrow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// secondHost seeds another host with their own listing and books it for the harness guest.
func (h *harness) secondHost(t *testing.T) (uuid.UUID, *commands.CreateBookingResult) {
	t.Helper()
	hostID := uuid.New()
	h.seedUser(t, builder.NewUserBuilder().AsHost().With(func(u *builder.UserBuilder) { u.ID = hostID }))
	listingID := h.seedListing(func(l *shared.ListingSnapshot) {
		l.ID = uuid.New()
		l.HostID = hostID
		l.Title = "Oran studio"
	})
	in := h.input(booking.MethodCard)
	in.ListingID = listingID
	result := h.create(t, in)
	_, err := h.payments.ConfirmCardPayment(context.Background(), h.cardEvent(result))
	require.NoError(t, err)
	return hostID, result
}

// releasedStay books and captures a stay shifted by whole weeks, then releases its escrow.
func (h *harness) releasedStay(t *testing.T, weeks int) uuid.UUID {
	t.Helper()
	in := h.input(booking.MethodCard)
	in.CheckIn = h.bb.CheckIn.AddDate(0, 0, 7*weeks).Format(time.DateOnly)
	in.CheckOut = h.bb.CheckOut.AddDate(0, 0, 7*weeks).Format(time.DateOnly)
	result := h.create(t, in)
	_, err := h.payments.ConfirmCardPayment(context.Background(), h.cardEvent(result))
	require.NoError(t, err)
	require.NoError(t, h.escrows.ReleaseEscrow(context.Background(), result.BookingID, h.admin))
	return result.BookingID
}

func TestScheduleBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("released escrow pays the host payout once", func(t *testing.T) {
		h := newHarness(t)
		id := h.confirmedBooking(t).BookingID
		require.NoError(t, h.escrows.ReleaseEscrow(ctx, id, h.admin))
		h.recorder.reset()

		result, err := h.payouts.ScheduleBatch(ctx, h.admin)

		require.NoError(t, err)
		require.Len(t, result.Requests, 1)
		req := result.Requests[0]
		assert.Equal(t, h.host.ID, req.HostID())
		assert.Equal(t, payout.StatusRequested, req.Status())
		assert.True(t, req.Amount().Equal(dzd("15035")), "got %s", req.Amount())
		require.Len(t, req.Items(), 1)
		assert.Equal(t, id, req.Items()[0].BookingID)
		assert.Equal(t, payout.SourceReleased, req.Items()[0].Source)
		assert.Empty(t, result.SkippedHosts)
		assert.Equal(t, []string{shared.NotifyPayoutRequested}, h.recorder.typesFor(h.host.ID))

		again, err := h.payouts.ScheduleBatch(ctx, h.admin)
		require.NoError(t, err)
		assert.Empty(t, again.Requests)
	})

	t.Run("split pays the resolved host share", func(t *testing.T) {
		h := newHarness(t)
		id := h.confirmedBooking(t).BookingID
		d, err := h.disputes.Open(ctx, id, commands.OpenDisputeInput{Reason: "damage", Description: "Stained sofa."}, h.host)
		require.NoError(t, err)
		_, err = h.disputes.Resolve(ctx, d.ID(), commands.ResolveDisputeInput{
			Resolution:     "Shared responsibility.",
			HostShareRatio: decimal.RequireFromString("0.7"),
		}, h.admin)
		require.NoError(t, err)

		result, err := h.payouts.ScheduleBatch(ctx, h.admin)

		require.NoError(t, err)
		require.Len(t, result.Requests, 1)
		assert.True(t, result.Requests[0].Amount().Equal(dzd("11718")), "got %s", result.Requests[0].Amount())
		assert.Equal(t, payout.SourceSplit, result.Requests[0].Items()[0].Source)
	})

	t.Run("full refund leaves nothing to pay", func(t *testing.T) {
		h := newHarness(t)
		id := h.confirmedBooking(t).BookingID
		require.NoError(t, h.bookings.CancelBooking(ctx, id, h.host, "double booked"))

		result, err := h.payouts.ScheduleBatch(ctx, h.admin)

		require.NoError(t, err)
		assert.Empty(t, result.Requests)
	})

	t.Run("host without bank account is deferred", func(t *testing.T) {
		h := newHarness(t)
		first := h.confirmedBooking(t).BookingID
		otherHost, other := h.secondHost(t)
		require.NoError(t, h.escrows.ReleaseEscrow(ctx, first, h.admin))
		require.NoError(t, h.escrows.ReleaseEscrow(ctx, other.BookingID, h.admin))

		result, err := h.payouts.ScheduleBatch(ctx, h.admin)

		require.NoError(t, err)
		require.Len(t, result.Requests, 1)
		assert.Equal(t, h.host.ID, result.Requests[0].HostID())
		assert.Equal(t, []uuid.UUID{otherHost}, result.SkippedHosts)

		h.store.SeedBankAccount(shared.BankAccountSnapshot{ID: uuid.New(), HostID: otherHost, Holder: "Amel Host", Last4: "1107", IsDefault: true})
		later, err := h.payouts.ScheduleBatch(ctx, h.admin)

		require.NoError(t, err)
		require.Len(t, later.Requests, 1)
		assert.Equal(t, otherHost, later.Requests[0].HostID())
		assert.Equal(t, other.BookingID, later.Requests[0].Items()[0].BookingID)
	})

	t.Run("full refunds ahead in the backlog do not block later releases", func(t *testing.T) {
		h := newHarness(t, withBatchSize(1))
		refunded := h.confirmedBooking(t).BookingID
		require.NoError(t, h.bookings.CancelBooking(ctx, refunded, h.host, "double booked"))
		assert.Equal(t, escrow.StatusSplit, h.escrow(t, refunded).Status())
		h.clock.Add(time.Minute)
		released := h.confirmedBooking(t).BookingID
		require.NoError(t, h.escrows.ReleaseEscrow(ctx, released, h.admin))

		var scheduled []uuid.UUID
		for range 3 {
			result, err := h.payouts.ScheduleDue(ctx)
			require.NoError(t, err)
			for _, req := range result.Requests {
				for _, item := range req.Items() {
					scheduled = append(scheduled, item.BookingID)
				}
			}
		}

		assert.Equal(t, []uuid.UUID{released}, scheduled)
	})

	t.Run("hosts without bank account do not fill the batch", func(t *testing.T) {
		h := newHarness(t, withBatchSize(1))
		otherHost, other := h.secondHost(t)
		require.NoError(t, h.escrows.ReleaseEscrow(ctx, other.BookingID, h.admin))
		h.clock.Add(time.Minute)
		payable := h.confirmedBooking(t).BookingID
		require.NoError(t, h.escrows.ReleaseEscrow(ctx, payable, h.admin))

		first, err := h.payouts.ScheduleDue(ctx)

		require.NoError(t, err)
		require.Len(t, first.Requests, 1)
		assert.Equal(t, payable, first.Requests[0].Items()[0].BookingID)
		assert.Empty(t, first.SkippedHosts)

		second, err := h.payouts.ScheduleDue(ctx)

		require.NoError(t, err)
		assert.Empty(t, second.Requests)
		assert.Equal(t, []uuid.UUID{otherHost}, second.SkippedHosts)
	})

	t.Run("backlog larger than the batch drains over several runs", func(t *testing.T) {
		h := newHarness(t, withBatchSize(2))
		var want []uuid.UUID
		for i := 0; i < 5; i++ {
			h.clock.Add(time.Minute)
			want = append(want, h.releasedStay(t, i))
		}

		var got []uuid.UUID
		for range 3 {
			result, err := h.payouts.ScheduleDue(ctx)
			require.NoError(t, err)
			require.Len(t, result.Requests, 1)
			for _, item := range result.Requests[0].Items() {
				got = append(got, item.BookingID)
			}
		}

		assert.ElementsMatch(t, want, got)
		last, err := h.payouts.ScheduleDue(ctx)
		require.NoError(t, err)
		assert.Empty(t, last.Requests)
	})

	t.Run("admin only", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.payouts.ScheduleBatch(ctx, h.host)

		assert.ErrorIs(t, err, commands.ErrAdminOnly)
	})
}
