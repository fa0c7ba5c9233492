package pgq

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Bookings struct {
	ID                  uuid.UUID
	ListingID           uuid.UUID
	GuestID             uuid.UUID
	HostID              uuid.UUID
	CheckIn             pgtype.Date
	CheckOut            pgtype.Date
	Nights              int32
	Adults              int32
	Children            int32
	Infants             int32
	CheckInAt           pgtype.Timestamptz
	CheckOutAt          pgtype.Timestamptz
	Currency            string
	BasePrice           pgtype.Numeric
	Subtotal            pgtype.Numeric
	CleaningFee         pgtype.Numeric
	BaseAmount          pgtype.Numeric
	GuestServiceFee     pgtype.Numeric
	HostCommission      pgtype.Numeric
	TotalAmount         pgtype.Numeric
	HostPayout          pgtype.Numeric
	PlatformRevenue     pgtype.Numeric
	SecurityDeposit     pgtype.Numeric
	GuestFeeRate        pgtype.Numeric
	HostCommissionRate  pgtype.Numeric
	CommissionCategory  string
	CommissionVersion   int64
	CancellationPolicy  string
	InstantBook         bool
	PaymentMethod       string
	PaymentStatus       string
	PaymentIntentID     pgtype.Text
	PaymentClientSecret pgtype.Text
	VoucherID           pgtype.UUID
	PaymentDeadline     pgtype.Timestamptz
	Status              string
	PreviousStatus      pgtype.Text
	CancelledBy         pgtype.UUID
	CancelledRole       pgtype.Text
	CancelReason        pgtype.Text
	CancelledAt         pgtype.Timestamptz
	ConfirmedAt         pgtype.Timestamptz
	CompletedAt         pgtype.Timestamptz
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}

type CashVouchers struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Number        string
	Amount        pgtype.Numeric
	Currency      string
	ExpiresAt     pgtype.Timestamptz
	Status        string
	Instructions  string
	AgencyCode    pgtype.Text
	TransactionID pgtype.Text
	ValidatedBy   pgtype.UUID
	ValidatedAt   pgtype.Timestamptz
	Notes         pgtype.Text
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type Escrows struct {
	ID                uuid.UUID
	BookingID         uuid.UUID
	HeldAmount        pgtype.Numeric
	Currency          string
	Status            string
	ReleaseEligibleAt pgtype.Timestamptz
	ReleaseRef        pgtype.Text
	ReleasedAt        pgtype.Timestamptz
	ReleasedBy        pgtype.UUID
	FreezeReason      pgtype.Text
	FrozenAt          pgtype.Timestamptz
	FrozenBy          pgtype.UUID
	HostShare         pgtype.Numeric
	GuestShare        pgtype.Numeric
	ResolvedBy        pgtype.UUID
	ResolvedAt        pgtype.Timestamptz
	CreatedAt         pgtype.Timestamptz
	UpdatedAt         pgtype.Timestamptz
}

type EscrowEvents struct {
	ID         uuid.UUID
	EscrowID   uuid.UUID
	BookingID  uuid.UUID
	Action     string
	FromStatus pgtype.Text
	ToStatus   string
	ActorID    pgtype.UUID
	Detail     string
	CreatedAt  pgtype.Timestamptz
}

type Disputes struct {
	ID             uuid.UUID
	BookingID      uuid.UUID
	ReporterID     uuid.UUID
	ReporterRole   string
	Reason         string
	Description    string
	Priority       string
	Status         string
	Resolution     pgtype.Text
	ResolvedBy     pgtype.UUID
	ResolvedAt     pgtype.Timestamptz
	HostShareRatio pgtype.Numeric
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type DisputeEvidence struct {
	ID         uuid.UUID
	DisputeID  uuid.UUID
	Url        string
	Type       string
	UploadedBy uuid.UUID
	UploadedAt pgtype.Timestamptz
}

type DisputeNotes struct {
	ID        uuid.UUID
	DisputeID uuid.UUID
	ParentID  pgtype.UUID
	AuthorID  uuid.UUID
	Message   string
	CreatedAt pgtype.Timestamptz
}

type CommissionRates struct {
	Category  string
	Value     pgtype.Numeric
	MinValue  pgtype.Numeric
	MaxValue  pgtype.Numeric
	Version   int64
	UpdatedBy pgtype.UUID
	UpdatedAt pgtype.Timestamptz
}

type CommissionRateHistory struct {
	ID            int64
	Category      string
	PreviousValue pgtype.Numeric
	NewValue      pgtype.Numeric
	ChangedBy     uuid.UUID
	ChangedAt     pgtype.Timestamptz
	Reason        string
}

type IdempotencyKeys struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultBookingID pgtype.UUID
	ExpiresAt       pgtype.Timestamptz
}

type PayoutRequests struct {
	ID            uuid.UUID
	HostID        uuid.UUID
	BankAccountID uuid.UUID
	Amount        pgtype.Numeric
	Currency      string
	Status        string
	CreatedAt     pgtype.Timestamptz
}

type PayoutItems struct {
	PayoutID  uuid.UUID
	BookingID uuid.UUID
	Amount    pgtype.Numeric
	Source    string
}

type Listings struct {
	ID                 uuid.UUID
	HostID             uuid.UUID
	Title              string
	Status             string
	Category           string
	Currency           string
	NightlyPrice       pgtype.Numeric
	CleaningFee        pgtype.Numeric
	SecurityDeposit    pgtype.Numeric
	MinStay            int32
	MaxStay            int32
	MaxGuests          int32
	CheckInTime        string
	CheckOutTime       string
	TimeZone           string
	InstantBook        bool
	CancellationPolicy string
}

type Users struct {
	ID       uuid.UUID
	Email    string
	FullName string
	Phone    pgtype.Text
	Role     string
}

type HostBankAccounts struct {
	ID        uuid.UUID
	HostID    uuid.UUID
	Holder    string
	Last4     string
	IsDefault bool
}
