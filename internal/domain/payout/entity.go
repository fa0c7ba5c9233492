package payout

import (
	"time"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNoItems          = errs.New("payout request has no items")
	ErrDuplicateBooking = errs.New("booking appears twice in a payout request")
	ErrCurrencyMixed    = errs.New("payout items use different currencies")
	ErrZeroAmount       = errs.New("payout item amount must be positive")
)

type Status string

const StatusRequested Status = "requested"

// Source names the escrow outcome that settled the funds.
type Source string

const (
	SourceReleased Source = "released"
	SourceSplit    Source = "split"
)

type Item struct {
	BookingID uuid.UUID
	Amount    money.Money
	Source    Source
}

type Request struct {
	id            uuid.UUID
	hostID        uuid.UUID
	bankAccountID uuid.UUID
	amount        money.Money
	status        Status
	items         []Item
	createdAt     time.Time
}

func NewRequest(hostID, bankAccountID uuid.UUID, items []Item, now time.Time) (*Request, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	total := money.Zero(items[0].Amount.Currency())
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.BookingID]; dup {
			return nil, ErrDuplicateBooking
		}
		seen[it.BookingID] = struct{}{}
		if !it.Amount.Amount().IsPositive() {
			return nil, ErrZeroAmount
		}
		var err error
		if total, err = total.Add(it.Amount); err != nil {
			return nil, ErrCurrencyMixed
		}
	}
	return &Request{
		id:            uuid.New(),
		hostID:        hostID,
		bankAccountID: bankAccountID,
		amount:        total,
		status:        StatusRequested,
		items:         items,
		createdAt:     now,
	}, nil
}

func ReconstructRequest(id, hostID, bankAccountID uuid.UUID, amount money.Money, status Status, items []Item, createdAt time.Time) *Request {
	return &Request{
		id:            id,
		hostID:        hostID,
		bankAccountID: bankAccountID,
		amount:        amount,
		status:        status,
		items:         items,
		createdAt:     createdAt,
	}
}

func (r *Request) ID() uuid.UUID            { return r.id }
func (r *Request) HostID() uuid.UUID        { return r.hostID }
func (r *Request) BankAccountID() uuid.UUID { return r.bankAccountID }
func (r *Request) Amount() money.Money      { return r.amount }
func (r *Request) Status() Status           { return r.status }
func (r *Request) Items() []Item            { return r.items }
func (r *Request) CreatedAt() time.Time     { return r.createdAt }
