package commission

import (
	"strings"
	"time"

	"rental-escrow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxReasonLength = 500

var (
	ErrInvalidCategory = errs.New("invalid commission category")
	ErrInvalidBounds   = errs.New("invalid commission rate bounds")
	ErrRateOutOfBounds = errs.New("commission rate outside configured bounds")
	ErrReasonTooLong   = errs.New("reason exceeds maximum length")
	ErrActorRequired   = errs.New("actor is required")
)

type HistoryEntry struct {
	Category      Category
	PreviousValue decimal.Decimal
	NewValue      decimal.Decimal
	ChangedBy     uuid.UUID
	ChangedAt     time.Time
	Reason        string
}

type Rate struct {
	category  Category
	value     decimal.Decimal
	minValue  decimal.Decimal
	maxValue  decimal.Decimal
	version   int64
	updatedBy *uuid.UUID
	updatedAt time.Time
}

func NewRate(category Category, value, minValue, maxValue decimal.Decimal, now time.Time) (*Rate, error) {
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if minValue.IsNegative() || maxValue.GreaterThan(decimal.NewFromInt(1)) || minValue.GreaterThan(maxValue) {
		return nil, ErrInvalidBounds
	}
	if value.LessThan(minValue) || value.GreaterThan(maxValue) {
		return nil, ErrRateOutOfBounds
	}
	return &Rate{
		category:  category,
		value:     value,
		minValue:  minValue,
		maxValue:  maxValue,
		version:   1,
		updatedAt: now,
	}, nil
}

func ReconstructRate(
	category Category,
	value, minValue, maxValue decimal.Decimal,
	version int64,
	updatedBy *uuid.UUID,
	updatedAt time.Time,
) *Rate {
	return &Rate{
		category:  category,
		value:     value,
		minValue:  minValue,
		maxValue:  maxValue,
		version:   version,
		updatedBy: updatedBy,
		updatedAt: updatedAt,
	}
}

// Change moves the rate to newValue and returns the history entry to append.
// A nil entry means the value did not change and nothing must be recorded.
func (r *Rate) Change(newValue decimal.Decimal, actor uuid.UUID, reason string, now time.Time) (*HistoryEntry, error) {
	if actor == uuid.Nil {
		return nil, ErrActorRequired
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxReasonLength {
		return nil, ErrReasonTooLong
	}
	if newValue.LessThan(r.minValue) || newValue.GreaterThan(r.maxValue) {
		return nil, errs.Wrap(ErrRateOutOfBounds, string(r.category))
	}
	if newValue.Equal(r.value) {
		return nil, nil
	}

	entry := &HistoryEntry{
		Category:      r.category,
		PreviousValue: r.value,
		NewValue:      newValue,
		ChangedBy:     actor,
		ChangedAt:     now,
		Reason:        reason,
	}
	r.value = newValue
	r.version++
	r.updatedBy = &actor
	r.updatedAt = now
	return entry, nil
}

func (r *Rate) Category() Category        { return r.category }
func (r *Rate) Value() decimal.Decimal    { return r.value }
func (r *Rate) MinValue() decimal.Decimal { return r.minValue }
func (r *Rate) MaxValue() decimal.Decimal { return r.maxValue }
func (r *Rate) Version() int64            { return r.version }
func (r *Rate) UpdatedBy() *uuid.UUID     { return r.updatedBy }
func (r *Rate) UpdatedAt() time.Time      { return r.updatedAt }
