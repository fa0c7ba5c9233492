package request

import (
	"rental-escrow/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// ValidateVoucherRequest identifies the voucher by id or by its booking.
type ValidateVoucherRequest struct {
	VoucherID     *uuid.UUID `json:"voucher_id"`
	BookingID     *uuid.UUID `json:"booking_id"`
	AgencyCode    string     `json:"agency_code" binding:"required,max=64"`
	TransactionID string     `json:"transaction_id" binding:"required,max=128"`
	Notes         string     `json:"notes" binding:"max=1000"`
}

func (r ValidateVoucherRequest) ToInput() (commands.ValidateVoucherInput, error) {
	var in commands.ValidateVoucherInput
	if err := copier.Copy(&in, &r); err != nil {
		return commands.ValidateVoucherInput{}, err
	}
	return in, nil
}

type FreezeEscrowRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
