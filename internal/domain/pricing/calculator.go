package pricing

import (
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidNights    = errs.New("nights must be positive")
	ErrInvalidRate      = errs.New("rate must be within [0,1]")
	ErrCurrencyMismatch = errs.New("pricing inputs use different currencies")
	ErrUnbalanced       = errs.New("price breakdown does not balance")
)

type Input struct {
	BasePrice          money.Money
	Nights             int
	CleaningFee        money.Money
	GuestFeeRate       decimal.Decimal
	HostCommissionRate decimal.Decimal
}

// Breakdown is stored verbatim on the booking; it is never recomputed from live rates.
type Breakdown struct {
	BasePrice          money.Money
	Nights             int
	Subtotal           money.Money
	CleaningFee        money.Money
	BaseAmount         money.Money
	GuestServiceFee    money.Money
	HostCommission     money.Money
	TotalAmount        money.Money
	HostPayout         money.Money
	PlatformRevenue    money.Money
	GuestFeeRate       decimal.Decimal
	HostCommissionRate decimal.Decimal
}

// Compute is pure: every derived value is rounded on its own, half-up, to the currency minor unit.
func Compute(in Input) (Breakdown, error) {
	if in.Nights <= 0 {
		return Breakdown{}, ErrInvalidNights
	}
	if !validRate(in.GuestFeeRate) || !validRate(in.HostCommissionRate) {
		return Breakdown{}, ErrInvalidRate
	}
	if in.BasePrice.Currency() != in.CleaningFee.Currency() {
		return Breakdown{}, ErrCurrencyMismatch
	}

	subtotal := in.BasePrice.MulInt(int64(in.Nights))
	baseAmount, err := subtotal.Add(in.CleaningFee)
	if err != nil {
		return Breakdown{}, err
	}
	guestServiceFee := baseAmount.MulRate(in.GuestFeeRate)
	hostCommission := baseAmount.MulRate(in.HostCommissionRate)

	total, err := baseAmount.Add(guestServiceFee)
	if err != nil {
		return Breakdown{}, err
	}
	hostPayout, err := baseAmount.Sub(hostCommission)
	if err != nil {
		return Breakdown{}, err
	}
	platformRevenue, err := guestServiceFee.Add(hostCommission)
	if err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{
		BasePrice:          in.BasePrice,
		Nights:             in.Nights,
		Subtotal:           subtotal,
		CleaningFee:        in.CleaningFee,
		BaseAmount:         baseAmount,
		GuestServiceFee:    guestServiceFee,
		HostCommission:     hostCommission,
		TotalAmount:        total,
		HostPayout:         hostPayout,
		PlatformRevenue:    platformRevenue,
		GuestFeeRate:       in.GuestFeeRate,
		HostCommissionRate: in.HostCommissionRate,
	}
	return b, b.Validate()
}

func (b Breakdown) Currency() string {
	return b.TotalAmount.Currency()
}

// ServiceFee is the legacy name for the guest service fee.
func (b Breakdown) ServiceFee() money.Money {
	return b.GuestServiceFee
}

// Validate checks the balance equations; it is also used when a stored breakdown is loaded.
func (b Breakdown) Validate() error {
	sum := b.Subtotal.Amount().Add(b.CleaningFee.Amount())
	if !b.TotalAmount.Amount().Equal(sum.Add(b.GuestServiceFee.Amount())) {
		return errs.Wrap(ErrUnbalanced, "total")
	}
	if !b.HostPayout.Amount().Equal(sum.Sub(b.HostCommission.Amount())) {
		return errs.Wrap(ErrUnbalanced, "host payout")
	}
	if !b.PlatformRevenue.Amount().Equal(b.GuestServiceFee.Amount().Add(b.HostCommission.Amount())) {
		return errs.Wrap(ErrUnbalanced, "platform revenue")
	}
	if !b.HostPayout.Amount().Add(b.PlatformRevenue.Amount()).Equal(b.TotalAmount.Amount()) {
		return errs.Wrap(ErrUnbalanced, "payout plus revenue")
	}
	return nil
}

func validRate(r decimal.Decimal) bool {
	return !r.IsNegative() && !r.GreaterThan(decimal.NewFromInt(1))
}
