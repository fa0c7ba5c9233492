package money

import (
	"regexp"
	"strings"

	"rental-escrow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency  = errs.New("invalid currency code")
	ErrCurrencyMismatch = errs.New("currency mismatch")
	ErrNegativeAmount   = errs.New("amount cannot be negative")
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ISO 4217 minor units for currencies that differ from the usual two decimals.
var minorUnitOverrides = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
	"CLP": 0,
	"XOF": 0,
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
	"JOD": 3,
	"LYD": 3,
}

func MinorUnits(currency string) int32 {
	if exp, ok := minorUnitOverrides[currency]; ok {
		return exp
	}
	return 2
}

func NormalizeCurrency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !currencyRegex.MatchString(c) {
		return "", ErrInvalidCurrency
	}
	return c, nil
}

// Money is an amount in a single currency, always kept at the currency's minor unit.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func New(amount decimal.Decimal, currency string) (Money, error) {
	c, err := NormalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: Round(amount, c), currency: c}, nil
}

func MustNew(amount string, currency string) Money {
	m, err := New(decimal.RequireFromString(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

func Zero(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Round rounds half away from zero, which is half-up for the non-negative amounts handled here.
func Round(d decimal.Decimal, currency string) decimal.Decimal {
	return d.Round(MinorUnits(currency))
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

func (m Money) Add(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(o.amount), currency: m.currency}, nil
}

func (m Money) Sub(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Sub(o.amount), currency: m.currency}, nil
}

func (m Money) MulInt(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n)), currency: m.currency}
}

// MulRate multiplies by a fraction and rounds to the minor unit.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: Round(m.amount.Mul(rate), m.currency), currency: m.currency}
}

func (m Money) Equal(o Money) bool {
	return m.currency == o.currency && m.amount.Equal(o.amount)
}

func (m Money) GreaterThan(o Money) bool {
	return m.currency == o.currency && m.amount.GreaterThan(o.amount)
}

// MinorAmount returns the amount as an integer count of minor units (cents, centimes).
func (m Money) MinorAmount() int64 {
	return m.amount.Shift(MinorUnits(m.currency)).IntPart()
}

func FromMinor(units int64, currency string) (Money, error) {
	c, err := NormalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return New(decimal.New(units, -MinorUnits(c)), c)
}

func (m Money) String() string {
	return m.amount.StringFixed(MinorUnits(m.currency)) + " " + m.currency
}
