package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// StayRange is a half-open range of calendar nights [checkIn, checkOut).
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in := truncateDate(checkIn)
	out := truncateDate(checkOut)
	if !out.After(in) {
		return StayRange{}, ErrInvalidDateRange
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

func ParseStayRange(checkIn, checkOut string) (StayRange, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return StayRange{}, ErrInvalidDateRange
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return StayRange{}, ErrInvalidDateRange
	}
	return NewStayRange(in, out)
}

func (s StayRange) CheckIn() time.Time  { return s.checkIn }
func (s StayRange) CheckOut() time.Time { return s.checkOut }

func (s StayRange) Nights() int {
	return int(s.checkOut.Sub(s.checkIn).Hours() / 24)
}

func (s StayRange) Overlaps(o StayRange) bool {
	return s.checkIn.Before(o.checkOut) && o.checkIn.Before(s.checkOut)
}

func (s StayRange) String() string {
	return fmt.Sprintf("%s/%s", s.checkIn.Format(dateLayout), s.checkOut.Format(dateLayout))
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Guests struct {
	adults   int
	children int
	infants  int
}

func NewGuests(adults, children, infants int) (Guests, error) {
	if adults < 1 || children < 0 || infants < 0 {
		return Guests{}, ErrInvalidGuests
	}
	return Guests{adults: adults, children: children, infants: infants}, nil
}

func (g Guests) Adults() int   { return g.adults }
func (g Guests) Children() int { return g.children }
func (g Guests) Infants() int  { return g.infants }

// Total counts the guests occupying capacity; infants do not.
func (g Guests) Total() int {
	return g.adults + g.children
}

// ClockTime is a local wall-clock time such as a listing's check-in hour.
type ClockTime struct {
	hour   int
	minute int
}

func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{hour: t.Hour(), minute: t.Minute()}, nil
}

func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, c.hour, c.minute, 0, 0, loc)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// Payment is the method-specific payment vehicle attached to a booking.
type Payment interface {
	Method() PaymentMethod
	Reference() string
	isPayment()
}

type CardPayment struct {
	IntentID     string
	ClientSecret string
}

func (CardPayment) Method() PaymentMethod { return MethodCard }
func (p CardPayment) Reference() string   { return p.IntentID }
func (CardPayment) isPayment()            {}

type VoucherPayment struct {
	VoucherID uuid.UUID
}

func (VoucherPayment) Method() PaymentMethod { return MethodCashVoucher }
func (p VoucherPayment) Reference() string   { return p.VoucherID.String() }
func (VoucherPayment) isPayment()            {}

type Cancellation struct {
	By     uuid.UUID
	Role   ActorRole
	Reason string
	At     time.Time
}

type CommissionSnapshot struct {
	Category        string
	SettingsVersion int64
}
