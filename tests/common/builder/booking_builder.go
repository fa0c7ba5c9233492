//go:build unit || e2e

package builder

import (
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/pricing"
	reqdto "rental-escrow/internal/handler/dto/request"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	Listing     booking.ListingSpec
	GuestID     uuid.UUID
	CheckIn     time.Time
	CheckOut    time.Time
	Adults      int
	Children    int
	Infants     int
	Method      booking.PaymentMethod
	NightlyRate string
	Cleaning    string
	Currency    string
	GuestRate   string
	HostRate    string
	Now         time.Time
}

// NewBookingBuilder describes the 5000 DZD x 3 nights stay used across the suite.
func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	checkInTime, _ := booking.ParseClockTime("15:00")
	checkOutTime, _ := booking.ParseClockTime("11:00")
	return &BookingBuilder{
		Listing: booking.ListingSpec{
			ID:              uuid.New(),
			HostID:          uuid.New(),
			Active:          true,
			Category:        "stay",
			MinStay:         1,
			MaxStay:         30,
			MaxGuests:       4,
			CheckInTime:     checkInTime,
			CheckOutTime:    checkOutTime,
			Location:        time.UTC,
			InstantBook:     true,
			Policy:          booking.PolicyModerate,
			SecurityDeposit: money.MustNew("0", "DZD"),
		},
		GuestID:     uuid.New(),
		CheckIn:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		Adults:      2,
		Method:      booking.MethodCard,
		NightlyRate: "5000",
		Cleaning:    "500",
		Currency:    "DZD",
		GuestRate:   "0.08",
		HostRate:    "0.03",
		Now:         now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildRequest() (booking.Request, error) {
	stay, err := booking.NewStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return booking.Request{}, err
	}
	guests, err := booking.NewGuests(b.Adults, b.Children, b.Infants)
	if err != nil {
		return booking.Request{}, err
	}
	breakdown, err := b.BuildPricing(stay.Nights())
	if err != nil {
		return booking.Request{}, err
	}
	return booking.Request{
		Listing:    b.Listing,
		GuestID:    b.GuestID,
		Stay:       stay,
		Guests:     guests,
		Method:     b.Method,
		Pricing:    breakdown,
		Commission: booking.CommissionSnapshot{Category: b.Listing.Category, SettingsVersion: 1},
	}, nil
}

func (b *BookingBuilder) BuildPricing(nights int) (pricing.Breakdown, error) {
	base, err := money.New(decimal.RequireFromString(b.NightlyRate), b.Currency)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	cleaning, err := money.New(decimal.RequireFromString(b.Cleaning), b.Currency)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	return pricing.Compute(pricing.Input{
		BasePrice:          base,
		Nights:             nights,
		CleaningFee:        cleaning,
		GuestFeeRate:       decimal.RequireFromString(b.GuestRate),
		HostCommissionRate: decimal.RequireFromString(b.HostRate),
	})
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	req, err := b.BuildRequest()
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(req, b.Now)
}

// BuildConfirmed returns a captured, confirmed booking.
func (b *BookingBuilder) BuildConfirmed() (*booking.Booking, error) {
	bk, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	if err := bk.AttachPayment(b.payment(), b.Now.Add(30*time.Minute)); err != nil {
		return nil, err
	}
	if err := bk.ConfirmPayment(b.Now); err != nil {
		return nil, err
	}
	if bk.Status() == booking.StatusPaid {
		if err := bk.Accept(bk.HostID(), b.Now); err != nil {
			return nil, err
		}
	}
	return bk, nil
}

func (b *BookingBuilder) payment() booking.Payment {
	if b.Method == booking.MethodCashVoucher {
		return booking.VoucherPayment{VoucherID: uuid.New()}
	}
	return booking.CardPayment{IntentID: "pi_" + uuid.NewString(), ClientSecret: "secret"}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ListingID:     b.Listing.ID,
		CheckIn:       b.CheckIn.Format(time.DateOnly),
		CheckOut:      b.CheckOut.Format(time.DateOnly),
		Adults:        b.Adults,
		Children:      b.Children,
		Infants:       b.Infants,
		PaymentMethod: b.Method.String(),
	}
}

// BuildCreateResult is what CreateBooking returns for a fresh card booking.
func (b *BookingBuilder) BuildCreateResult() (*commands.CreateBookingResult, error) {
	bk, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	return &commands.CreateBookingResult{
		BookingID: bk.ID(),
		Status:    bk.Status(),
		Pricing:   bk.Pricing(),
		Payment: &payment.Handle{
			Method:       booking.MethodCard,
			Reference:    "pi_fake_000001",
			ClientSecret: "pi_fake_000001_secret",
			Deadline:     b.Now.Add(30 * time.Minute),
		},
	}, nil
}
