//go:build unit

package escrow_test

import (
	"testing"
	"time"

	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	eligible = now.Add(24 * time.Hour)
	held     = money.MustNew("16240", "DZD")
)

func newHeld(t *testing.T) *escrow.Escrow {
	t.Helper()
	e, ev, err := escrow.Hold(uuid.New(), held, eligible, now)
	require.NoError(t, err)
	assert.Equal(t, escrow.ActionHold, ev.Action)
	assert.Equal(t, escrow.StatusHeld, ev.ToStatus)
	return e
}

func TestHold(t *testing.T) {
	e := newHeld(t)
	assert.Equal(t, escrow.StatusHeld, e.Status())
	assert.True(t, e.Held().Equal(held))

	_, _, err := escrow.Hold(uuid.New(), money.Zero("DZD"), eligible, now)
	require.ErrorIs(t, err, escrow.ErrInvalidAmount)
}

func TestRelease(t *testing.T) {
	t.Run("before eligibility", func(t *testing.T) {
		e := newHeld(t)
		_, err := e.Release(eligible.Add(-time.Second))
		require.ErrorIs(t, err, escrow.ErrNotEligible)
		assert.Equal(t, escrow.StatusHeld, e.Status())
	})

	t.Run("at eligibility", func(t *testing.T) {
		e := newHeld(t)
		ev, err := e.Release(eligible)
		require.NoError(t, err)
		assert.Equal(t, escrow.StatusReleased, e.Status())
		assert.Equal(t, escrow.ActionRelease, ev.Action)
		require.NotNil(t, e.ReleaseRef())
		assert.Nil(t, e.ReleasedBy())

		_, err = e.Release(eligible)
		require.ErrorIs(t, err, escrow.ErrNotHeld)
	})

	t.Run("manual release ignores eligibility and records admin", func(t *testing.T) {
		e := newHeld(t)
		admin := uuid.New()
		ev, err := e.ManualRelease(admin, now)
		require.NoError(t, err)
		assert.Equal(t, escrow.ActionManualRelease, ev.Action)
		require.NotNil(t, e.ReleasedBy())
		assert.Equal(t, admin, *e.ReleasedBy())
	})
}

func TestFreezeAndSplit(t *testing.T) {
	t.Run("dispute split 70/30", func(t *testing.T) {
		e := newHeld(t)
		_, err := e.Freeze("dispute opened", nil, now)
		require.NoError(t, err)
		assert.Equal(t, escrow.StatusFrozen, e.Status())

		host, guest, err := escrow.SharesForRatio(e.Held(), decimal.RequireFromString("0.7"))
		require.NoError(t, err)
		assert.True(t, host.Equal(money.MustNew("11368", "DZD")))
		assert.True(t, guest.Equal(money.MustNew("4872", "DZD")))

		resolver := uuid.New()
		ev, err := e.Split(host, guest, resolver, now)
		require.NoError(t, err)
		assert.Equal(t, escrow.StatusSplit, e.Status())
		assert.Equal(t, escrow.ActionSplit, ev.Action)
		require.NotNil(t, e.SplitResult())
		assert.Equal(t, resolver, e.SplitResult().ResolvedBy)
	})

	t.Run("split requires frozen", func(t *testing.T) {
		e := newHeld(t)
		_, err := e.Split(held, money.Zero("DZD"), uuid.New(), now)
		require.ErrorIs(t, err, escrow.ErrNotFrozen)
	})

	t.Run("split must add up", func(t *testing.T) {
		cases := []struct {
			name  string
			host  money.Money
			guest money.Money
			errIs error
		}{
			{name: "short by one", host: money.MustNew("11368", "DZD"), guest: money.MustNew("4871", "DZD"), errIs: escrow.ErrSplitMismatch},
			{name: "over by one", host: money.MustNew("11369", "DZD"), guest: money.MustNew("4872", "DZD"), errIs: escrow.ErrSplitMismatch},
			{name: "other currency", host: money.MustNew("11368", "EUR"), guest: money.MustNew("4872", "DZD"), errIs: escrow.ErrCurrencyMismatch},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				e := newHeld(t)
				_, err := e.Freeze("dispute", nil, now)
				require.NoError(t, err)
				_, err = e.Split(c.host, c.guest, uuid.New(), now)
				require.ErrorIs(t, err, c.errIs)
				assert.Equal(t, escrow.StatusFrozen, e.Status())
				assert.Nil(t, e.SplitResult())
			})
		}
	})

	t.Run("disbursed funds cannot be frozen", func(t *testing.T) {
		e := newHeld(t)
		_, err := e.Release(eligible)
		require.NoError(t, err)
		_, err = e.Freeze("late dispute", nil, now)
		require.ErrorIs(t, err, escrow.ErrAlreadyDisbursed)
	})

	t.Run("unfreeze re-arms release", func(t *testing.T) {
		e := newHeld(t)
		_, err := e.Freeze("dispute", nil, now)
		require.NoError(t, err)
		_, err = e.Release(eligible)
		require.ErrorIs(t, err, escrow.ErrNotHeld)

		_, err = e.Unfreeze(nil, now)
		require.NoError(t, err)
		assert.Nil(t, e.FreezeReason())
		assert.True(t, e.IsEligibleForRelease(eligible))
	})

	t.Run("legacy disputed rows behave as frozen", func(t *testing.T) {
		st, err := escrow.NewStatus("disputed")
		require.NoError(t, err)
		e := escrow.Reconstruct(escrow.Snapshot{ID: uuid.New(), BookingID: uuid.New(), Held: held, Status: st})
		_, err = e.Split(money.MustNew("16240", "DZD"), money.Zero("DZD"), uuid.New(), now)
		require.NoError(t, err)
	})
}

func TestSharesForRatio(t *testing.T) {
	cases := []struct {
		ratio string
		held  money.Money
		host  string
	}{
		{ratio: "0", held: held, host: "0"},
		{ratio: "1", held: held, host: "16240"},
		{ratio: "0.333", held: money.MustNew("100.01", "EUR"), host: "33.30"},
		{ratio: "0.5", held: money.MustNew("0.01", "EUR"), host: "0.01"},
	}
	for _, c := range cases {
		t.Run(c.ratio, func(t *testing.T) {
			host, guest, err := escrow.SharesForRatio(c.held, decimal.RequireFromString(c.ratio))
			require.NoError(t, err)
			assert.True(t, host.Amount().Equal(decimal.RequireFromString(c.host)), "host %s", host)
			sum, err := host.Add(guest)
			require.NoError(t, err)
			assert.True(t, sum.Equal(c.held))
		})
	}

	_, _, err := escrow.SharesForRatio(held, decimal.RequireFromString("1.01"))
	require.ErrorIs(t, err, escrow.ErrInvalidRatio)
}
