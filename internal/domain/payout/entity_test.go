//go:build unit

package payout_test

import (
	"testing"
	"time"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/payout"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	b1, b2 := uuid.New(), uuid.New()

	t.Run("sums items", func(t *testing.T) {
		r, err := payout.NewRequest(uuid.New(), uuid.New(), []payout.Item{
			{BookingID: b1, Amount: money.MustNew("15035", "DZD"), Source: payout.SourceReleased},
			{BookingID: b2, Amount: money.MustNew("11368", "DZD"), Source: payout.SourceSplit},
		}, now)
		require.NoError(t, err)
		assert.True(t, r.Amount().Equal(money.MustNew("26403", "DZD")))
		assert.Equal(t, payout.StatusRequested, r.Status())
	})

	cases := []struct {
		name  string
		items []payout.Item
		errIs error
	}{
		{name: "empty", errIs: payout.ErrNoItems},
		{
			name: "duplicate booking",
			items: []payout.Item{
				{BookingID: b1, Amount: money.MustNew("1", "EUR")},
				{BookingID: b1, Amount: money.MustNew("2", "EUR")},
			},
			errIs: payout.ErrDuplicateBooking,
		},
		{
			name: "mixed currency",
			items: []payout.Item{
				{BookingID: b1, Amount: money.MustNew("1", "EUR")},
				{BookingID: b2, Amount: money.MustNew("2", "USD")},
			},
			errIs: payout.ErrCurrencyMixed,
		},
		{
			name:  "zero amount",
			items: []payout.Item{{BookingID: b1, Amount: money.MustNew("0", "EUR")}},
			errIs: payout.ErrZeroAmount,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := payout.NewRequest(uuid.New(), uuid.New(), c.items, now)
			require.ErrorIs(t, err, c.errIs)
		})
	}
}
