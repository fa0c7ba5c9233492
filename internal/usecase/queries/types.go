package queries

import (
	"time"

	"rental-escrow/internal/domain/money"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// MoneyView renders an amount at its currency's minor unit.
type MoneyView struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoneyView(m money.Money) MoneyView {
	return MoneyView{Amount: m.Amount().StringFixed(money.MinorUnits(m.Currency())), Currency: m.Currency()}
}

type PricingView struct {
	BasePrice          MoneyView `json:"base_price"`
	Nights             int       `json:"nights"`
	Subtotal           MoneyView `json:"subtotal"`
	CleaningFee        MoneyView `json:"cleaning_fee"`
	BaseAmount         MoneyView `json:"base_amount"`
	GuestServiceFee    MoneyView `json:"guest_service_fee"`
	HostCommission     MoneyView `json:"host_commission"`
	TotalAmount        MoneyView `json:"total_amount"`
	HostPayout         MoneyView `json:"host_payout"`
	PlatformRevenue    MoneyView `json:"platform_revenue"`
	GuestFeeRate       string    `json:"guest_fee_rate"`
	HostCommissionRate string    `json:"host_commission_rate"`
}

type GuestsView struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

type CancellationView struct {
	By     uuid.UUID `json:"by"`
	Role   string    `json:"role"`
	Reason string    `json:"reason,omitempty"`
	At     time.Time `json:"at"`
}

type VoucherView struct {
	ID           uuid.UUID  `json:"id"`
	Number       string     `json:"number"`
	Amount       MoneyView  `json:"amount"`
	Status       string     `json:"status"`
	ExpiresAt    time.Time  `json:"expires_at"`
	Instructions string     `json:"instructions"`
	ValidatedAt  *time.Time `json:"validated_at,omitempty"`
}

type CardView struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret,omitempty"`
}

type BookingView struct {
	ID                 uuid.UUID         `json:"id"`
	ListingID          uuid.UUID         `json:"listing_id"`
	GuestID            uuid.UUID         `json:"guest_id"`
	HostID             uuid.UUID         `json:"host_id"`
	CheckIn            string            `json:"check_in"`
	CheckOut           string            `json:"check_out"`
	CheckInAt          time.Time         `json:"check_in_at"`
	CheckOutAt         time.Time         `json:"check_out_at"`
	Guests             GuestsView        `json:"guests"`
	Status             string            `json:"status"`
	PaymentMethod      string            `json:"payment_method"`
	PaymentStatus      string            `json:"payment_status"`
	PaymentDeadline    time.Time         `json:"payment_deadline"`
	Pricing            PricingView       `json:"pricing"`
	SecurityDeposit    MoneyView         `json:"security_deposit"`
	CommissionCategory string            `json:"commission_category"`
	SettingsVersion    int64             `json:"settings_version"`
	CancellationPolicy string            `json:"cancellation_policy"`
	InstantBook        bool              `json:"instant_book"`
	Card               *CardView         `json:"card,omitempty"`
	Voucher            *VoucherView      `json:"voucher,omitempty"`
	Cancellation       *CancellationView `json:"cancellation,omitempty"`
	ConfirmedAt        *time.Time        `json:"confirmed_at,omitempty"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	ListingID     uuid.UUID `json:"listing_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	TotalAmount   MoneyView `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

type EscrowEventView struct {
	ID         uuid.UUID  `json:"id"`
	Action     string     `json:"action"`
	FromStatus *string    `json:"from_status,omitempty"`
	ToStatus   string     `json:"to_status"`
	Actor      *uuid.UUID `json:"actor,omitempty"`
	Detail     string     `json:"detail,omitempty"`
	At         time.Time  `json:"at"`
}

type SplitView struct {
	HostShare  MoneyView `json:"host_share"`
	GuestShare MoneyView `json:"guest_share"`
	ResolvedBy uuid.UUID `json:"resolved_by"`
	ResolvedAt time.Time `json:"resolved_at"`
}

type EscrowView struct {
	ID                uuid.UUID         `json:"id"`
	BookingID         uuid.UUID         `json:"booking_id"`
	Status            string            `json:"status"`
	Held              MoneyView         `json:"held"`
	ReleaseEligibleAt time.Time         `json:"release_eligible_at"`
	ReleaseRef        *string           `json:"release_ref,omitempty"`
	ReleasedAt        *time.Time        `json:"released_at,omitempty"`
	FreezeReason      *string           `json:"freeze_reason,omitempty"`
	FrozenAt          *time.Time        `json:"frozen_at,omitempty"`
	Split             *SplitView        `json:"split,omitempty"`
	Events            []EscrowEventView `json:"events"`
}

type NoteView struct {
	ID        uuid.UUID  `json:"id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

type EvidenceView struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ResolutionView struct {
	Text           string    `json:"text"`
	ResolvedBy     uuid.UUID `json:"resolved_by"`
	ResolvedAt     time.Time `json:"resolved_at"`
	HostShareRatio *string   `json:"host_share_ratio,omitempty"`
}

type DisputeView struct {
	ID           uuid.UUID       `json:"id"`
	BookingID    uuid.UUID       `json:"booking_id"`
	ReporterID   uuid.UUID       `json:"reporter_id"`
	ReporterRole string          `json:"reporter_role"`
	Reason       string          `json:"reason"`
	Description  string          `json:"description"`
	Priority     string          `json:"priority"`
	Status       string          `json:"status"`
	Notes        []NoteView      `json:"notes"`
	Evidence     []EvidenceView  `json:"evidence"`
	Resolution   *ResolutionView `json:"resolution,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CommissionRateView struct {
	Category  string     `json:"category"`
	Value     string     `json:"value"`
	MinValue  string     `json:"min_value"`
	MaxValue  string     `json:"max_value"`
	Version   int64      `json:"version"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CommissionHistoryView struct {
	Category      string    `json:"category"`
	PreviousValue string    `json:"previous_value"`
	NewValue      string    `json:"new_value"`
	ChangedBy     uuid.UUID `json:"changed_by"`
	ChangedAt     time.Time `json:"changed_at"`
	Reason        string    `json:"reason,omitempty"`
}

type PayoutItemView struct {
	BookingID uuid.UUID `json:"booking_id"`
	Amount    MoneyView `json:"amount"`
	Source    string    `json:"source"`
}

type PayoutView struct {
	ID            uuid.UUID        `json:"id"`
	HostID        uuid.UUID        `json:"host_id"`
	BankAccountID uuid.UUID        `json:"bank_account_id"`
	Amount        MoneyView        `json:"amount"`
	Status        string           `json:"status"`
	Items         []PayoutItemView `json:"items"`
	CreatedAt     time.Time        `json:"created_at"`
}

type CurrentUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}
