package voucher

import (
	"crypto/rand"
	"strings"
	"time"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errs.New("invalid voucher status")
	ErrNotPending         = errs.New("voucher is not pending")
	ErrExpired            = errs.New("voucher has expired")
	ErrAgencyCodeRequired = errs.New("agency code is required")
	ErrTransactionIDEmpty = errs.New("transaction id is required")
	ErrInvalidValidity    = errs.New("voucher validity must be positive")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusValidated Status = "validated"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string { return string(s) }

func NewStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusValidated, StatusExpired, StatusCancelled:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Validation struct {
	AgencyCode    string
	TransactionID string
	ValidatedBy   uuid.UUID
	ValidatedAt   time.Time
	Notes         string
}

type Voucher struct {
	id           uuid.UUID
	bookingID    uuid.UUID
	number       string
	amount       money.Money
	expiresAt    time.Time
	status       Status
	instructions string
	validation   *Validation
	createdAt    time.Time
	updatedAt    time.Time
}

func NewVoucher(bookingID uuid.UUID, number string, amount money.Money, issuedAt time.Time, validity time.Duration, instructions string) (*Voucher, error) {
	if validity <= 0 {
		return nil, ErrInvalidValidity
	}
	return &Voucher{
		id:           uuid.New(),
		bookingID:    bookingID,
		number:       number,
		amount:       amount,
		expiresAt:    issuedAt.Add(validity),
		status:       StatusPending,
		instructions: instructions,
		createdAt:    issuedAt,
		updatedAt:    issuedAt,
	}, nil
}

func ReconstructVoucher(
	id, bookingID uuid.UUID,
	number string,
	amount money.Money,
	expiresAt time.Time,
	status Status,
	instructions string,
	validation *Validation,
	createdAt, updatedAt time.Time,
) *Voucher {
	return &Voucher{
		id:           id,
		bookingID:    bookingID,
		number:       number,
		amount:       amount,
		expiresAt:    expiresAt,
		status:       status,
		instructions: instructions,
		validation:   validation,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// IsExpired is evaluated lazily; a pending voucher past its expiry counts as expired even
// before the sweeper stores it.
func (v *Voucher) IsExpired(now time.Time) bool {
	if v.status == StatusExpired {
		return true
	}
	return v.status == StatusPending && now.After(v.expiresAt)
}

// Validate records the agency's confirmation that the guest paid in cash.
func (v *Voucher) Validate(agencyCode, transactionID string, admin uuid.UUID, notes string, now time.Time) error {
	agencyCode = strings.TrimSpace(agencyCode)
	transactionID = strings.TrimSpace(transactionID)
	if agencyCode == "" {
		return ErrAgencyCodeRequired
	}
	if transactionID == "" {
		return ErrTransactionIDEmpty
	}
	if v.IsExpired(now) {
		return ErrExpired
	}
	if v.status != StatusPending {
		return ErrNotPending
	}
	v.status = StatusValidated
	v.validation = &Validation{
		AgencyCode:    agencyCode,
		TransactionID: transactionID,
		ValidatedBy:   admin,
		ValidatedAt:   now,
		Notes:         strings.TrimSpace(notes),
	}
	v.updatedAt = now
	return nil
}

func (v *Voucher) Expire(now time.Time) error {
	if v.status != StatusPending {
		return ErrNotPending
	}
	v.status = StatusExpired
	v.updatedAt = now
	return nil
}

func (v *Voucher) Cancel(now time.Time) error {
	if v.status != StatusPending {
		return ErrNotPending
	}
	v.status = StatusCancelled
	v.updatedAt = now
	return nil
}

func (v *Voucher) ID() uuid.UUID           { return v.id }
func (v *Voucher) BookingID() uuid.UUID    { return v.bookingID }
func (v *Voucher) Number() string          { return v.number }
func (v *Voucher) Amount() money.Money     { return v.amount }
func (v *Voucher) ExpiresAt() time.Time    { return v.expiresAt }
func (v *Voucher) Status() Status          { return v.status }
func (v *Voucher) Instructions() string    { return v.instructions }
func (v *Voucher) Validation() *Validation { return v.validation }
func (v *Voucher) CreatedAt() time.Time    { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time    { return v.updatedAt }

const numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateNumber returns a human-readable voucher number such as CV-7KQ2-M9XD-4TPA.
func GenerateNumber() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(err, "voucher number entropy")
	}
	var sb strings.Builder
	sb.WriteString("CV")
	for i, b := range buf {
		if i%4 == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(numberAlphabet[int(b)%len(numberAlphabet)])
	}
	return sb.String(), nil
}
