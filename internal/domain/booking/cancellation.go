package booking

import (
	"time"

	"rental-escrow/internal/domain/money"

	"github.com/shopspring/decimal"
)

type CancellationPolicy string

const (
	PolicyFlexible CancellationPolicy = "flexible"
	PolicyModerate CancellationPolicy = "moderate"
	PolicyStrict   CancellationPolicy = "strict"
)

type policyTerms struct {
	freeUntilBefore time.Duration
	penaltyPercent  int64
}

var policies = map[CancellationPolicy]policyTerms{
	PolicyFlexible: {freeUntilBefore: 24 * time.Hour, penaltyPercent: 50},
	PolicyModerate: {freeUntilBefore: 5 * 24 * time.Hour, penaltyPercent: 50},
	PolicyStrict:   {freeUntilBefore: 14 * 24 * time.Hour, penaltyPercent: 100},
}

func (p CancellationPolicy) IsValid() bool {
	_, ok := policies[p]
	return ok
}

func NewCancellationPolicy(s string) (CancellationPolicy, error) {
	p := CancellationPolicy(s)
	if !p.IsValid() {
		return "", ErrInvalidPolicy
	}
	return p, nil
}

// GuestCancellationSplit divides held funds when the guest cancels: the penalty goes to the host,
// the rest back to the guest. The two shares always add up to held.
func (p CancellationPolicy) GuestCancellationSplit(held money.Money, cancelAt, checkInAt time.Time) (hostShare, guestShare money.Money) {
	terms, ok := policies[p]
	if !ok {
		terms = policies[PolicyStrict]
	}
	percent := terms.penaltyPercent
	if cancelAt.Before(checkInAt.Add(-terms.freeUntilBefore)) {
		percent = 0
	}
	hostShare = held.MulRate(decimal.New(percent, -2))
	guestShare, _ = held.Sub(hostShare)
	return hostShare, guestShare
}
