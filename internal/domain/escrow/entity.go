package escrow

import (
	"fmt"
	"time"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus    = errs.New("invalid escrow status")
	ErrInvalidAmount    = errs.New("held amount must be positive")
	ErrNotHeld          = errs.New("escrow is not held")
	ErrNotFrozen        = errs.New("escrow is not frozen")
	ErrAlreadyDisbursed = errs.New("escrow funds were already disbursed")
	ErrNotEligible      = errs.New("escrow is not yet eligible for release")
	ErrSplitMismatch    = errs.New("split shares must add up to the held amount")
	ErrNegativeShare    = errs.New("split shares cannot be negative")
	ErrInvalidRatio     = errs.New("host share ratio must be within [0,1]")
	ErrReasonRequired   = errs.New("freeze reason is required")
	ErrResolverRequired = errs.New("resolver identity is required")
	ErrCurrencyMismatch = errs.New("split currency differs from held currency")
)

type Status string

const (
	StatusHeld     Status = "held"
	StatusReleased Status = "released"
	StatusFrozen   Status = "frozen"
	// StatusDisputed appears on older rows and behaves like frozen.
	StatusDisputed Status = "disputed"
	StatusSplit    Status = "split"
)

func (s Status) String() string { return string(s) }

func NewStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusHeld, StatusReleased, StatusFrozen, StatusDisputed, StatusSplit:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) IsFrozen() bool {
	return s == StatusFrozen || s == StatusDisputed
}

func (s Status) IsTerminal() bool {
	return s == StatusReleased || s == StatusSplit
}

type Action string

const (
	ActionHold          Action = "hold"
	ActionRelease       Action = "release"
	ActionManualRelease Action = "manual_release"
	ActionFreeze        Action = "freeze"
	ActionUnfreeze      Action = "unfreeze"
	ActionSplit         Action = "split"
)

// Event is one line of the escrow audit trail.
type Event struct {
	ID         uuid.UUID
	EscrowID   uuid.UUID
	BookingID  uuid.UUID
	Action     Action
	FromStatus *Status
	ToStatus   Status
	Actor      *uuid.UUID
	Detail     string
	At         time.Time
}

type Split struct {
	HostShare  money.Money
	GuestShare money.Money
	ResolvedBy uuid.UUID
	ResolvedAt time.Time
}

type Escrow struct {
	id                uuid.UUID
	bookingID         uuid.UUID
	held              money.Money
	status            Status
	releaseEligibleAt time.Time
	releaseRef        *string
	releasedAt        *time.Time
	releasedBy        *uuid.UUID
	freezeReason      *string
	frozenAt          *time.Time
	frozenBy          *uuid.UUID
	split             *Split
	createdAt         time.Time
	updatedAt         time.Time
}

// Hold opens a held entry for captured funds.
func Hold(bookingID uuid.UUID, amount money.Money, releaseEligibleAt, now time.Time) (*Escrow, Event, error) {
	if !amount.Amount().IsPositive() {
		return nil, Event{}, ErrInvalidAmount
	}
	e := &Escrow{
		id:                uuid.New(),
		bookingID:         bookingID,
		held:              amount,
		status:            StatusHeld,
		releaseEligibleAt: releaseEligibleAt,
		createdAt:         now,
		updatedAt:         now,
	}
	return e, e.event(ActionHold, nil, nil, amount.String(), now), nil
}

type Snapshot struct {
	ID                uuid.UUID
	BookingID         uuid.UUID
	Held              money.Money
	Status            Status
	ReleaseEligibleAt time.Time
	ReleaseRef        *string
	ReleasedAt        *time.Time
	ReleasedBy        *uuid.UUID
	FreezeReason      *string
	FrozenAt          *time.Time
	FrozenBy          *uuid.UUID
	Split             *Split
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func Reconstruct(s Snapshot) *Escrow {
	return &Escrow{
		id:                s.ID,
		bookingID:         s.BookingID,
		held:              s.Held,
		status:            s.Status,
		releaseEligibleAt: s.ReleaseEligibleAt,
		releaseRef:        s.ReleaseRef,
		releasedAt:        s.ReleasedAt,
		releasedBy:        s.ReleasedBy,
		freezeReason:      s.FreezeReason,
		frozenAt:          s.FrozenAt,
		frozenBy:          s.FrozenBy,
		split:             s.Split,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
	}
}

func (e *Escrow) Snapshot() Snapshot {
	return Snapshot{
		ID:                e.id,
		BookingID:         e.bookingID,
		Held:              e.held,
		Status:            e.status,
		ReleaseEligibleAt: e.releaseEligibleAt,
		ReleaseRef:        e.releaseRef,
		ReleasedAt:        e.releasedAt,
		ReleasedBy:        e.releasedBy,
		FreezeReason:      e.freezeReason,
		FrozenAt:          e.frozenAt,
		FrozenBy:          e.frozenBy,
		Split:             e.split,
		CreatedAt:         e.createdAt,
		UpdatedAt:         e.updatedAt,
	}
}

func (e *Escrow) IsEligibleForRelease(now time.Time) bool {
	return e.status == StatusHeld && !now.Before(e.releaseEligibleAt)
}

// Release moves held funds to released once the eligibility time has passed.
func (e *Escrow) Release(now time.Time) (Event, error) {
	if e.status != StatusHeld {
		return Event{}, ErrNotHeld
	}
	if now.Before(e.releaseEligibleAt) {
		return Event{}, ErrNotEligible
	}
	return e.release(ActionRelease, nil, now), nil
}

// ManualRelease skips the eligibility time; the admin is recorded on the entry.
func (e *Escrow) ManualRelease(admin uuid.UUID, now time.Time) (Event, error) {
	if e.status != StatusHeld {
		return Event{}, ErrNotHeld
	}
	return e.release(ActionManualRelease, &admin, now), nil
}

func (e *Escrow) release(action Action, admin *uuid.UUID, now time.Time) Event {
	from := e.status
	ref := fmt.Sprintf("rel_%s", e.id.String()[:8])
	e.status = StatusReleased
	e.releaseRef = &ref
	e.releasedAt = &now
	e.releasedBy = admin
	e.updatedAt = now
	return e.event(action, &from, admin, ref, now)
}

func (e *Escrow) Freeze(reason string, actor *uuid.UUID, now time.Time) (Event, error) {
	if reason == "" {
		return Event{}, ErrReasonRequired
	}
	if e.status.IsTerminal() {
		return Event{}, ErrAlreadyDisbursed
	}
	if e.status != StatusHeld {
		return Event{}, ErrNotHeld
	}
	from := e.status
	e.status = StatusFrozen
	e.freezeReason = &reason
	e.frozenAt = &now
	e.frozenBy = actor
	e.updatedAt = now
	return e.event(ActionFreeze, &from, actor, reason, now), nil
}

// Unfreeze returns a frozen entry to held, re-arming the normal eligibility check.
func (e *Escrow) Unfreeze(actor *uuid.UUID, now time.Time) (Event, error) {
	if !e.status.IsFrozen() {
		return Event{}, ErrNotFrozen
	}
	from := e.status
	e.status = StatusHeld
	e.freezeReason = nil
	e.frozenAt = nil
	e.frozenBy = nil
	e.updatedAt = now
	return e.event(ActionUnfreeze, &from, actor, "", now), nil
}

func (e *Escrow) Split(hostShare, guestShare money.Money, resolver uuid.UUID, now time.Time) (Event, error) {
	if !e.status.IsFrozen() {
		return Event{}, ErrNotFrozen
	}
	if resolver == uuid.Nil {
		return Event{}, ErrResolverRequired
	}
	if hostShare.Currency() != e.held.Currency() || guestShare.Currency() != e.held.Currency() {
		return Event{}, ErrCurrencyMismatch
	}
	if hostShare.Amount().IsNegative() || guestShare.Amount().IsNegative() {
		return Event{}, ErrNegativeShare
	}
	sum, err := hostShare.Add(guestShare)
	if err != nil {
		return Event{}, err
	}
	if !sum.Equal(e.held) {
		return Event{}, ErrSplitMismatch
	}
	from := e.status
	e.status = StatusSplit
	e.split = &Split{HostShare: hostShare, GuestShare: guestShare, ResolvedBy: resolver, ResolvedAt: now}
	e.updatedAt = now
	detail := fmt.Sprintf("host=%s guest=%s", hostShare, guestShare)
	return e.event(ActionSplit, &from, &resolver, detail, now), nil
}

// SharesForRatio computes hostShare = round(held*ratio) and gives the remainder to the guest,
// so the two always add up to the held amount.
func SharesForRatio(held money.Money, ratio decimal.Decimal) (hostShare, guestShare money.Money, err error) {
	if ratio.IsNegative() || ratio.GreaterThan(decimal.NewFromInt(1)) {
		return money.Money{}, money.Money{}, ErrInvalidRatio
	}
	hostShare = held.MulRate(ratio)
	guestShare, err = held.Sub(hostShare)
	if err != nil {
		return money.Money{}, money.Money{}, err
	}
	return hostShare, guestShare, nil
}

func (e *Escrow) event(action Action, from *Status, actor *uuid.UUID, detail string, now time.Time) Event {
	return Event{
		ID:         uuid.New(),
		EscrowID:   e.id,
		BookingID:  e.bookingID,
		Action:     action,
		FromStatus: from,
		ToStatus:   e.status,
		Actor:      actor,
		Detail:     detail,
		At:         now,
	}
}

func (e *Escrow) ID() uuid.UUID                { return e.id }
func (e *Escrow) BookingID() uuid.UUID         { return e.bookingID }
func (e *Escrow) Held() money.Money            { return e.held }
func (e *Escrow) Status() Status               { return e.status }
func (e *Escrow) ReleaseEligibleAt() time.Time { return e.releaseEligibleAt }
func (e *Escrow) ReleaseRef() *string          { return e.releaseRef }
func (e *Escrow) ReleasedAt() *time.Time       { return e.releasedAt }
func (e *Escrow) ReleasedBy() *uuid.UUID       { return e.releasedBy }
func (e *Escrow) FreezeReason() *string        { return e.freezeReason }
func (e *Escrow) FrozenAt() *time.Time         { return e.frozenAt }
func (e *Escrow) FrozenBy() *uuid.UUID         { return e.frozenBy }
func (e *Escrow) SplitResult() *Split          { return e.split }
func (e *Escrow) CreatedAt() time.Time         { return e.createdAt }
func (e *Escrow) UpdatedAt() time.Time         { return e.updatedAt }
