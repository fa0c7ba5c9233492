package commission

import (
	"sort"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrDefaultRateMissing  = errs.New("default commission rate is not configured")
	ErrMissingExchangeRate = errs.New("no exchange rate configured for currency")
)

// Settings is an immutable snapshot of all configured rates. Its version grows with every
// recorded change, so a booking can state exactly which configuration priced it.
type Settings struct {
	rates map[Category]*Rate
}

func NewSettings(rates []*Rate) *Settings {
	m := make(map[Category]*Rate, len(rates))
	for _, r := range rates {
		m[r.Category()] = r
	}
	return &Settings{rates: m}
}

func (s *Settings) Version() int64 {
	var v int64
	for _, r := range s.rates {
		v += r.Version()
	}
	return v
}

func (s *Settings) Rate(c Category) (*Rate, bool) {
	r, ok := s.rates[c]
	return r, ok
}

// Rates returns the configured rates ordered by category.
func (s *Settings) Rates() []*Rate {
	out := make([]*Rate, 0, len(s.rates))
	for _, r := range s.rates {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category() < out[j].Category() })
	return out
}

type Resolution struct {
	Category           Category
	HostCommissionRate decimal.Decimal
	GuestFeeRate       decimal.Decimal
	SettingsVersion    int64
}

// Resolver picks the commission rate that applies to a listing price.
type Resolver struct {
	luxuryThreshold   decimal.Decimal
	referenceCurrency string
	fxRates           map[string]decimal.Decimal
}

// NewResolver builds a resolver. fxRates maps a currency to the value of one unit of it in the
// reference currency. A zero threshold disables the luxury override.
func NewResolver(luxuryThreshold decimal.Decimal, referenceCurrency string, fxRates map[string]decimal.Decimal) *Resolver {
	return &Resolver{
		luxuryThreshold:   luxuryThreshold,
		referenceCurrency: referenceCurrency,
		fxRates:           fxRates,
	}
}

func (r *Resolver) ResolveRate(s *Settings, category Category, nightlyPrice money.Money) (Resolution, error) {
	chosen, err := r.selectRate(s, category, nightlyPrice)
	if err != nil {
		return Resolution{}, err
	}

	guestFee := decimal.Zero
	if g, ok := s.Rate(CategoryGuestService); ok {
		guestFee = g.Value()
	}

	return Resolution{
		Category:           chosen.Category(),
		HostCommissionRate: chosen.Value(),
		GuestFeeRate:       guestFee,
		SettingsVersion:    s.Version(),
	}, nil
}

func (r *Resolver) selectRate(s *Settings, category Category, nightlyPrice money.Money) (*Rate, error) {
	if luxury, ok := s.Rate(CategoryLuxury); ok && r.luxuryThreshold.IsPositive() {
		above, err := r.exceedsLuxuryThreshold(nightlyPrice)
		if err != nil {
			return nil, err
		}
		if above {
			return luxury, nil
		}
	}
	if category.IsListingCategory() {
		if rate, ok := s.Rate(category); ok {
			return rate, nil
		}
	}
	if def, ok := s.Rate(CategoryDefault); ok {
		return def, nil
	}
	return nil, ErrDefaultRateMissing
}

func (r *Resolver) exceedsLuxuryThreshold(price money.Money) (bool, error) {
	amount := price.Amount()
	if price.Currency() != r.referenceCurrency {
		fx, ok := r.fxRates[price.Currency()]
		if !ok {
			return false, errs.Wrap(ErrMissingExchangeRate, price.Currency())
		}
		amount = amount.Mul(fx)
	}
	return amount.GreaterThan(r.luxuryThreshold), nil
}
