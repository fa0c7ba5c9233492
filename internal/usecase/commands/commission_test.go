//go:build unit

package commands_test

import (
	"context"
	"testing"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateHistory(t *testing.T, h *harness, c commission.Category) []commission.HistoryEntry {
	t.Helper()
	var out []commission.HistoryEntry
	err := h.uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Commissions().History(ctx, c, 50)
		return err
	})
	require.NoError(t, err)
	return out
}

func TestUpdateRates(t *testing.T) {
	ctx := context.Background()

	t.Run("records history for changed values only", func(t *testing.T) {
		h := newHarness(t)

		result, err := h.commissions.UpdateRates(ctx, commands.UpdateRatesInput{
			Changes: []commands.RateChange{
				{Category: "vehicle", Value: decimal.RequireFromString("0.05")},
				{Category: "stay", Value: decimal.RequireFromString("0.04")},
			},
			Reason: "summer season",
		}, h.admin)

		require.NoError(t, err)
		require.Len(t, result.Rates, 2)
		assert.Equal(t, commission.CategoryStay, result.Rates[0].Category())
		assert.Equal(t, commission.CategoryVehicle, result.Rates[1].Category())
		require.Len(t, result.History, 1)
		entry := result.History[0]
		assert.Equal(t, commission.CategoryStay, entry.Category)
		assert.True(t, entry.PreviousValue.Equal(decimal.RequireFromString("0.03")))
		assert.True(t, entry.NewValue.Equal(decimal.RequireFromString("0.04")))
		assert.Equal(t, h.admin.ID, entry.ChangedBy)
		assert.Equal(t, "summer season", entry.Reason)

		assert.Len(t, rateHistory(t, h, commission.CategoryStay), 1)
		assert.Empty(t, rateHistory(t, h, commission.CategoryVehicle))
	})

	t.Run("new bookings use the updated rate", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.commissions.UpdateRates(ctx, commands.UpdateRatesInput{
			Changes: []commands.RateChange{{Category: "stay", Value: decimal.RequireFromString("0.05")}},
		}, h.admin)
		require.NoError(t, err)

		result := h.create(t, h.input(booking.MethodCard))

		assert.True(t, result.Pricing.HostCommission.Equal(dzd("775")), "got %s", result.Pricing.HostCommission)
		assert.True(t, result.Pricing.HostPayout.Equal(dzd("14725")), "got %s", result.Pricing.HostPayout)
	})

	t.Run("out of bounds rolls back every change", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.commissions.UpdateRates(ctx, commands.UpdateRatesInput{
			Changes: []commands.RateChange{
				{Category: "stay", Value: decimal.RequireFromString("0.04")},
				{Category: "guest_service", Value: decimal.RequireFromString("0.30")},
			},
		}, h.admin)

		assert.ErrorIs(t, err, commands.ErrIntegrity)
		assert.ErrorIs(t, err, commission.ErrRateOutOfBounds)
		assert.Empty(t, rateHistory(t, h, commission.CategoryStay))
	})

	t.Run("refusals", func(t *testing.T) {
		h := newHarness(t)
		one := []commands.RateChange{{Category: "stay", Value: decimal.RequireFromString("0.04")}}

		_, err := h.commissions.UpdateRates(ctx, commands.UpdateRatesInput{Changes: one}, h.host)
		assert.ErrorIs(t, err, commands.ErrAdminOnly)

		_, err = h.commissions.UpdateRates(ctx, commands.UpdateRatesInput{}, h.admin)
		assert.ErrorIs(t, err, commands.ErrNoChanges)

		_, err = h.commissions.UpdateRates(ctx, commands.UpdateRatesInput{Changes: append(one, one...)}, h.admin)
		assert.ErrorIs(t, err, commands.ErrDuplicateCategory)

		_, err = h.commissions.UpdateRates(ctx, commands.UpdateRatesInput{
			Changes: []commands.RateChange{{Category: "boats", Value: decimal.RequireFromString("0.04")}},
		}, h.admin)
		assert.ErrorIs(t, err, commands.ErrValidation)
	})
}
