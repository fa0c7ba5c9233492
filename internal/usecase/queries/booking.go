package queries

import (
	"context"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/pricing"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

const (
	ListAsGuest = "guest"
	ListAsHost  = "host"
)

var ErrInvalidListRole = errs.Mark(errs.New("as must be guest or host"), commands.ErrValidation)

type BookingQueries interface {
	// GetByID reports a pending booking whose payment window closed as expired, even before the
	// sweeper has stored it.
	GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*BookingView, error)
	List(ctx context.Context, actor shared.Actor, as string, limit int) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingQueries(uow shared.UnitOfWork, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{uow: uow, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*BookingView, error) {
	now := q.clock.Now()
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBooking(ctx, tx, id, actor)
		if err != nil {
			return err
		}
		view = newBookingView(b, now, actor)
		if p, ok := b.Payment().(booking.VoucherPayment); ok {
			v, err := tx.Vouchers().Get(ctx, p.VoucherID)
			if err != nil {
				return err
			}
			vv := &VoucherView{
				ID:           v.ID(),
				Number:       v.Number(),
				Amount:       NewMoneyView(v.Amount()),
				Status:       v.Status().String(),
				ExpiresAt:    v.ExpiresAt(),
				Instructions: v.Instructions(),
			}
			if v.IsExpired(now) {
				vv.Status = "expired"
			}
			if val := v.Validation(); val != nil {
				at := val.ValidatedAt
				vv.ValidatedAt = &at
			}
			view.Voucher = vv
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor shared.Actor, as string, limit int) ([]*BookingListItem, error) {
	limit = ValidateLimit(limit)
	now := q.clock.Now()
	var items []*BookingListItem
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var (
			rows []*booking.Booking
			err  error
		)
		switch as {
		case ListAsHost:
			rows, err = tx.Bookings().ListForHost(ctx, actor.ID, limit)
		case ListAsGuest, "":
			rows, err = tx.Bookings().ListForGuest(ctx, actor.ID, limit)
		default:
			return ErrInvalidListRole
		}
		if err != nil {
			return err
		}
		items = make([]*BookingListItem, 0, len(rows))
		for _, b := range rows {
			items = append(items, &BookingListItem{
				ID:            b.ID(),
				ListingID:     b.ListingID(),
				CheckIn:       b.Stay().CheckIn().Format(dateLayout),
				CheckOut:      b.Stay().CheckOut().Format(dateLayout),
				Status:        effectiveStatus(b, now).String(),
				PaymentMethod: b.Method().String(),
				TotalAmount:   NewMoneyView(b.Pricing().TotalAmount),
				CreatedAt:     b.CreatedAt(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// findBooking loads a booking the actor may see.
func findBooking(ctx context.Context, tx shared.Tx, id uuid.UUID, actor shared.Actor) (*booking.Booking, error) {
	b, err := tx.Bookings().Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, commands.ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsParticipant(actor.ID) {
		return nil, commands.ErrNotParticipant
	}
	return b, nil
}

func effectiveStatus(b *booking.Booking, now time.Time) booking.Status {
	if b.IsPaymentOverdue(now) {
		return booking.StatusExpired
	}
	return b.Status()
}

func newBookingView(b *booking.Booking, now time.Time, actor shared.Actor) *BookingView {
	paymentStatus := b.PaymentStatus()
	if b.IsPaymentOverdue(now) {
		paymentStatus = booking.PaymentExpired
	}
	v := &BookingView{
		ID:         b.ID(),
		ListingID:  b.ListingID(),
		GuestID:    b.GuestID(),
		HostID:     b.HostID(),
		CheckIn:    b.Stay().CheckIn().Format(dateLayout),
		CheckOut:   b.Stay().CheckOut().Format(dateLayout),
		CheckInAt:  b.CheckInAt(),
		CheckOutAt: b.CheckOutAt(),
		Guests: GuestsView{
			Adults:   b.Guests().Adults(),
			Children: b.Guests().Children(),
			Infants:  b.Guests().Infants(),
		},
		Status:             effectiveStatus(b, now).String(),
		PaymentMethod:      b.Method().String(),
		PaymentStatus:      paymentStatus.String(),
		PaymentDeadline:    b.PaymentDeadline(),
		Pricing:            NewPricingView(b.Pricing()),
		SecurityDeposit:    NewMoneyView(b.SecurityDeposit()),
		CommissionCategory: b.Commission().Category,
		SettingsVersion:    b.Commission().SettingsVersion,
		CancellationPolicy: string(b.Policy()),
		InstantBook:        b.InstantBook(),
		ConfirmedAt:        b.ConfirmedAt(),
		CompletedAt:        b.CompletedAt(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
	if p, ok := b.Payment().(booking.CardPayment); ok {
		v.Card = &CardView{IntentID: p.IntentID}
		if actor.ID == b.GuestID() && b.Status() == booking.StatusPendingPayment {
			v.Card.ClientSecret = p.ClientSecret
		}
	}
	if c := b.Cancellation(); c != nil {
		v.Cancellation = &CancellationView{By: c.By, Role: string(c.Role), Reason: c.Reason, At: c.At}
	}
	return v
}

func NewPricingView(p pricing.Breakdown) PricingView {
	return PricingView{
		BasePrice:          NewMoneyView(p.BasePrice),
		Nights:             p.Nights,
		Subtotal:           NewMoneyView(p.Subtotal),
		CleaningFee:        NewMoneyView(p.CleaningFee),
		BaseAmount:         NewMoneyView(p.BaseAmount),
		GuestServiceFee:    NewMoneyView(p.GuestServiceFee),
		HostCommission:     NewMoneyView(p.HostCommission),
		TotalAmount:        NewMoneyView(p.TotalAmount),
		HostPayout:         NewMoneyView(p.HostPayout),
		PlatformRevenue:    NewMoneyView(p.PlatformRevenue),
		GuestFeeRate:       p.GuestFeeRate.String(),
		HostCommissionRate: p.HostCommissionRate.String(),
	}
}
