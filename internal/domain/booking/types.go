package booking

type Status string

const (
	StatusPendingPayment   Status = "pending_payment"
	StatusConfirmed        Status = "confirmed"
	StatusPaid             Status = "paid"
	StatusActive           Status = "active"
	StatusCompleted        Status = "completed"
	StatusCancelledByGuest Status = "cancelled_by_guest"
	StatusCancelledByHost  Status = "cancelled_by_host"
	StatusCancelledByAdmin Status = "cancelled_by_admin"
	StatusExpired          Status = "expired"
	StatusDisputed         Status = "disputed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusPaid, StatusActive, StatusCompleted,
		StatusCancelledByGuest, StatusCancelledByHost, StatusCancelledByAdmin,
		StatusExpired, StatusDisputed:
		return true
	default:
		return false
	}
}

func (s Status) IsCancelled() bool {
	return s == StatusCancelledByGuest || s == StatusCancelledByHost || s == StatusCancelledByAdmin
}

func (s Status) IsTerminal() bool {
	return s.IsCancelled() || s == StatusExpired || s == StatusCompleted
}

// IsPreActive covers the states a booking can still be cancelled from.
func (s Status) IsPreActive() bool {
	return s == StatusPendingPayment || s == StatusPaid || s == StatusConfirmed
}

// HoldsDates reports whether the booking blocks its listing's calendar.
func (s Status) HoldsDates() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusPaid, StatusActive, StatusDisputed:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentSucceeded         PaymentStatus = "succeeded"
	PaymentExpired           PaymentStatus = "expired"
	PaymentCancelled         PaymentStatus = "cancelled"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentSucceeded, PaymentExpired, PaymentCancelled,
		PaymentRefunded, PaymentPartiallyRefunded:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	MethodCard        PaymentMethod = "card"
	MethodCashVoucher PaymentMethod = "cash_voucher"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	return m == MethodCard || m == MethodCashVoucher
}

func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

// ActorRole is the capacity in which someone acts on a booking.
type ActorRole string

const (
	ActorGuest ActorRole = "guest"
	ActorHost  ActorRole = "host"
	ActorAdmin ActorRole = "admin"
)
