//go:build unit

package pricing_test

import (
	"testing"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute(t *testing.T) {
	t.Run("reference scenario in DZD", func(t *testing.T) {
		b, err := pricing.Compute(pricing.Input{
			BasePrice:          money.MustNew("5000", "DZD"),
			Nights:             3,
			CleaningFee:        money.MustNew("500", "DZD"),
			GuestFeeRate:       dec("0.08"),
			HostCommissionRate: dec("0.03"),
		})
		require.NoError(t, err)

		want := map[string]string{
			"subtotal":        "15000",
			"baseAmount":      "15500",
			"guestServiceFee": "1240",
			"hostCommission":  "465",
			"total":           "16240",
			"hostPayout":      "15035",
			"platformRevenue": "1705",
		}
		got := map[string]decimal.Decimal{
			"subtotal":        b.Subtotal.Amount(),
			"baseAmount":      b.BaseAmount.Amount(),
			"guestServiceFee": b.GuestServiceFee.Amount(),
			"hostCommission":  b.HostCommission.Amount(),
			"total":           b.TotalAmount.Amount(),
			"hostPayout":      b.HostPayout.Amount(),
			"platformRevenue": b.PlatformRevenue.Amount(),
		}
		for k, v := range want {
			assert.True(t, got[k].Equal(dec(v)), "%s: want %s got %s", k, v, got[k])
		}
		assert.True(t, b.ServiceFee().Equal(b.GuestServiceFee))
		assert.Equal(t, "DZD", b.Currency())
	})

	t.Run("independent rounding still balances", func(t *testing.T) {
		cases := []struct {
			name      string
			base      string
			cleaning  string
			nights    int
			guestRate string
			hostRate  string
			currency  string
		}{
			{name: "half-cent fees", base: "33.33", cleaning: "7.05", nights: 3, guestRate: "0.145", hostRate: "0.035", currency: "EUR"},
			{name: "zero-decimal currency", base: "12345", cleaning: "999", nights: 7, guestRate: "0.0725", hostRate: "0.0333", currency: "JPY"},
			{name: "three-decimal currency", base: "101.101", cleaning: "0.999", nights: 2, guestRate: "0.0777", hostRate: "0.1111", currency: "TND"},
			{name: "zero rates", base: "80", cleaning: "0", nights: 1, guestRate: "0", hostRate: "0", currency: "USD"},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				b, err := pricing.Compute(pricing.Input{
					BasePrice:          money.MustNew(c.base, c.currency),
					Nights:             c.nights,
					CleaningFee:        money.MustNew(c.cleaning, c.currency),
					GuestFeeRate:       dec(c.guestRate),
					HostCommissionRate: dec(c.hostRate),
				})
				require.NoError(t, err)

				sum := b.HostPayout.Amount().Add(b.PlatformRevenue.Amount())
				assert.True(t, sum.Equal(b.TotalAmount.Amount()))
				exp := money.MinorUnits(c.currency)
				assert.True(t, b.GuestServiceFee.Amount().Equal(b.GuestServiceFee.Amount().Round(exp)))
				assert.True(t, b.HostCommission.Amount().Equal(b.HostCommission.Amount().Round(exp)))
			})
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		base := pricing.Input{
			BasePrice:          money.MustNew("100", "EUR"),
			Nights:             2,
			CleaningFee:        money.MustNew("10", "EUR"),
			GuestFeeRate:       dec("0.1"),
			HostCommissionRate: dec("0.1"),
		}
		cases := []struct {
			name   string
			mutate func(*pricing.Input)
			errIs  error
		}{
			{name: "zero nights", mutate: func(in *pricing.Input) { in.Nights = 0 }, errIs: pricing.ErrInvalidNights},
			{name: "negative guest rate", mutate: func(in *pricing.Input) { in.GuestFeeRate = dec("-0.01") }, errIs: pricing.ErrInvalidRate},
			{name: "host rate above one", mutate: func(in *pricing.Input) { in.HostCommissionRate = dec("1.01") }, errIs: pricing.ErrInvalidRate},
			{name: "currency mismatch", mutate: func(in *pricing.Input) { in.CleaningFee = money.MustNew("10", "USD") }, errIs: pricing.ErrCurrencyMismatch},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				in := base
				c.mutate(&in)
				_, err := pricing.Compute(in)
				require.ErrorIs(t, err, c.errIs)
			})
		}
	})
}
