package request

import (
	"strings"

	"rental-escrow/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CreateBookingRequest struct {
	ListingID     uuid.UUID `json:"listing_id" binding:"required"`
	CheckIn       string    `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut      string    `json:"check_out" binding:"required,datetime=2006-01-02"`
	Adults        int       `json:"adults" binding:"required,min=1"`
	Children      int       `json:"children" binding:"min=0"`
	Infants       int       `json:"infants" binding:"min=0"`
	PaymentMethod string    `json:"payment_method" binding:"required,oneof=card cash_voucher"`
}

func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	var in commands.CreateBookingInput
	if err := copier.Copy(&in, &r); err != nil {
		return commands.CreateBookingInput{}, err
	}
	return in, nil
}

// ReasonRequest carries the optional free-text reason of cancel and reject.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

func (r ReasonRequest) Trimmed() string {
	return strings.TrimSpace(r.Reason)
}
