package converter

import (
	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/pricing"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrCorruptRow = errs.New("stored row cannot be converted to a domain value")

func BookingToRow(b *booking.Booking) pgq.Bookings {
	p := b.Pricing()
	row := pgq.Bookings{
		ID:                 b.ID(),
		ListingID:          b.ListingID(),
		GuestID:            b.GuestID(),
		HostID:             b.HostID(),
		CheckIn:            pgconv.DateToPgtype(b.Stay().CheckIn()),
		CheckOut:           pgconv.DateToPgtype(b.Stay().CheckOut()),
		Nights:             int32(p.Nights),
		Adults:             int32(b.Guests().Adults()),
		Children:           int32(b.Guests().Children()),
		Infants:            int32(b.Guests().Infants()),
		CheckInAt:          pgconv.TimeToPgtype(b.CheckInAt()),
		CheckOutAt:         pgconv.TimeToPgtype(b.CheckOutAt()),
		Currency:           p.Currency(),
		BasePrice:          pgconv.DecimalToNumeric(p.BasePrice.Amount()),
		Subtotal:           pgconv.DecimalToNumeric(p.Subtotal.Amount()),
		CleaningFee:        pgconv.DecimalToNumeric(p.CleaningFee.Amount()),
		BaseAmount:         pgconv.DecimalToNumeric(p.BaseAmount.Amount()),
		GuestServiceFee:    pgconv.DecimalToNumeric(p.GuestServiceFee.Amount()),
		HostCommission:     pgconv.DecimalToNumeric(p.HostCommission.Amount()),
		TotalAmount:        pgconv.DecimalToNumeric(p.TotalAmount.Amount()),
		HostPayout:         pgconv.DecimalToNumeric(p.HostPayout.Amount()),
		PlatformRevenue:    pgconv.DecimalToNumeric(p.PlatformRevenue.Amount()),
		SecurityDeposit:    pgconv.DecimalToNumeric(b.SecurityDeposit().Amount()),
		GuestFeeRate:       pgconv.DecimalToNumeric(p.GuestFeeRate),
		HostCommissionRate: pgconv.DecimalToNumeric(p.HostCommissionRate),
		CommissionCategory: b.Commission().Category,
		CommissionVersion:  b.Commission().SettingsVersion,
		CancellationPolicy: string(b.Policy()),
		InstantBook:        b.InstantBook(),
		PaymentMethod:      b.Method().String(),
		CreatedAt:          pgconv.TimeToPgtype(b.CreatedAt()),
	}
	state := BookingToStateParams(b, "")
	row.PaymentStatus = state.PaymentStatus
	row.PaymentIntentID = state.PaymentIntentID
	row.PaymentClientSecret = state.PaymentClientSecret
	row.VoucherID = state.VoucherID
	row.PaymentDeadline = state.PaymentDeadline
	row.Status = state.Status
	row.PreviousStatus = state.PreviousStatus
	row.CancelledBy = state.CancelledBy
	row.CancelledRole = state.CancelledRole
	row.CancelReason = state.CancelReason
	row.CancelledAt = state.CancelledAt
	row.ConfirmedAt = state.ConfirmedAt
	row.CompletedAt = state.CompletedAt
	row.UpdatedAt = state.UpdatedAt
	return row
}

// BookingToStateParams carries the mutable columns; the pricing snapshot is never rewritten.
func BookingToStateParams(b *booking.Booking, expected booking.Status) pgq.UpdateBookingStateParams {
	params := pgq.UpdateBookingStateParams{
		ID:             b.ID(),
		ExpectedStatus: expected.String(),
		PaymentStatus:  b.PaymentStatus().String(),
		Status:         b.Status().String(),
		ConfirmedAt:    pgconv.TimePtrToPgtype(b.ConfirmedAt()),
		CompletedAt:    pgconv.TimePtrToPgtype(b.CompletedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(b.UpdatedAt()),
	}
	if !b.PaymentDeadline().IsZero() {
		params.PaymentDeadline = pgconv.TimeToPgtype(b.PaymentDeadline())
	}
	switch p := b.Payment().(type) {
	case booking.CardPayment:
		params.PaymentIntentID = pgconv.StringToPgtype(p.IntentID)
		params.PaymentClientSecret = pgconv.OptionalStringToPgtype(p.ClientSecret)
	case booking.VoucherPayment:
		params.VoucherID = pgconv.UUIDToPgtype(p.VoucherID)
	}
	if prev := b.PreviousStatus(); prev != nil {
		params.PreviousStatus = pgconv.StringToPgtype(prev.String())
	}
	if c := b.Cancellation(); c != nil {
		params.CancelledBy = pgconv.UUIDToPgtype(c.By)
		params.CancelledRole = pgconv.StringToPgtype(string(c.Role))
		params.CancelReason = pgconv.StringToPgtype(c.Reason)
		params.CancelledAt = pgconv.TimeToPgtype(c.At)
	}
	return params
}

func BookingFromRow(row pgq.Bookings) (*booking.Booking, error) {
	stay, err := booking.NewStayRange(pgconv.DateFromPgtype(row.CheckIn), pgconv.DateFromPgtype(row.CheckOut))
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	guests, err := booking.NewGuests(int(row.Adults), int(row.Children), int(row.Infants))
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	method, err := booking.NewPaymentMethod(row.PaymentMethod)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	breakdown, err := breakdownFromRow(row)
	if err != nil {
		return nil, err
	}
	deposit, err := MoneyFromNumeric(row.SecurityDeposit, row.Currency)
	if err != nil {
		return nil, err
	}

	snap := booking.Snapshot{
		ID:              row.ID,
		ListingID:       row.ListingID,
		GuestID:         row.GuestID,
		HostID:          row.HostID,
		Stay:            stay,
		Guests:          guests,
		CheckInAt:       pgconv.TimeFromPgtype(row.CheckInAt),
		CheckOutAt:      pgconv.TimeFromPgtype(row.CheckOutAt),
		Pricing:         breakdown,
		SecurityDeposit: deposit,
		Commission: booking.CommissionSnapshot{
			Category:        row.CommissionCategory,
			SettingsVersion: row.CommissionVersion,
		},
		Policy:          booking.CancellationPolicy(row.CancellationPolicy),
		InstantBook:     row.InstantBook,
		Method:          method,
		Payment:         paymentFromRow(method, row.PaymentIntentID, row.PaymentClientSecret, row.VoucherID),
		PaymentStatus:   booking.PaymentStatus(row.PaymentStatus),
		PaymentDeadline: pgconv.TimeFromPgtype(row.PaymentDeadline),
		Status:          status,
		ConfirmedAt:     pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		CompletedAt:     pgconv.TimePtrFromPgtype(row.CompletedAt),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}
	if row.PreviousStatus.Valid {
		prev := booking.Status(row.PreviousStatus.String)
		snap.PreviousStatus = &prev
	}
	if row.CancelledAt.Valid {
		snap.Cancellation = &booking.Cancellation{
			By:     uuidOrNil(row.CancelledBy),
			Role:   booking.ActorRole(pgconv.StringFromPgtype(row.CancelledRole)),
			Reason: pgconv.StringFromPgtype(row.CancelReason),
			At:     row.CancelledAt.Time,
		}
	}
	return booking.ReconstructBooking(snap), nil
}

func breakdownFromRow(row pgq.Bookings) (pricing.Breakdown, error) {
	amounts := []pgtype.Numeric{
		row.BasePrice, row.Subtotal, row.CleaningFee, row.BaseAmount, row.GuestServiceFee,
		row.HostCommission, row.TotalAmount, row.HostPayout, row.PlatformRevenue,
	}
	values := make([]money.Money, len(amounts))
	for i, n := range amounts {
		m, err := MoneyFromNumeric(n, row.Currency)
		if err != nil {
			return pricing.Breakdown{}, err
		}
		values[i] = m
	}
	guestRate, err := pgconv.NumericToDecimal(row.GuestFeeRate)
	if err != nil {
		return pricing.Breakdown{}, errs.Mark(err, ErrCorruptRow)
	}
	hostRate, err := pgconv.NumericToDecimal(row.HostCommissionRate)
	if err != nil {
		return pricing.Breakdown{}, errs.Mark(err, ErrCorruptRow)
	}
	b := pricing.Breakdown{
		BasePrice:          values[0],
		Nights:             int(row.Nights),
		Subtotal:           values[1],
		CleaningFee:        values[2],
		BaseAmount:         values[3],
		GuestServiceFee:    values[4],
		HostCommission:     values[5],
		TotalAmount:        values[6],
		HostPayout:         values[7],
		PlatformRevenue:    values[8],
		GuestFeeRate:       guestRate,
		HostCommissionRate: hostRate,
	}
	if err := b.Validate(); err != nil {
		return pricing.Breakdown{}, errs.Mark(err, ErrCorruptRow)
	}
	return b, nil
}

func paymentFromRow(method booking.PaymentMethod, intentID, clientSecret pgtype.Text, voucherID pgtype.UUID) booking.Payment {
	switch method {
	case booking.MethodCard:
		if intentID.Valid {
			return booking.CardPayment{IntentID: intentID.String, ClientSecret: pgconv.StringFromPgtype(clientSecret)}
		}
	case booking.MethodCashVoucher:
		if voucherID.Valid {
			return booking.VoucherPayment{VoucherID: voucherID.Bytes}
		}
	}
	return nil
}

func MoneyFromNumeric(n pgtype.Numeric, currency string) (money.Money, error) {
	d, err := pgconv.NumericToDecimal(n)
	if err != nil {
		return money.Money{}, errs.Mark(err, ErrCorruptRow)
	}
	m, err := money.New(d, currency)
	if err != nil {
		return money.Money{}, errs.Mark(err, ErrCorruptRow)
	}
	return m, nil
}

func uuidOrNil(id pgtype.UUID) uuid.UUID {
	if !id.Valid {
		return uuid.Nil
	}
	return id.Bytes
}
