package response

import (
	"time"

	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/queries"

	"github.com/google/uuid"
)

type VoucherResponse struct {
	ID           uuid.UUID         `json:"id"`
	Number       string            `json:"number"`
	Amount       queries.MoneyView `json:"amount"`
	ExpiresAt    time.Time         `json:"expires_at"`
	Instructions string            `json:"instructions"`
}

type PaymentResponse struct {
	Method       string           `json:"method"`
	Reference    string           `json:"reference"`
	ClientSecret string           `json:"client_secret,omitempty"`
	Deadline     time.Time        `json:"deadline"`
	Voucher      *VoucherResponse `json:"voucher,omitempty"`
}

type CreateBookingResponse struct {
	ID      uuid.UUID           `json:"id"`
	Status  string              `json:"status"`
	Pricing queries.PricingView `json:"pricing"`
	Payment *PaymentResponse    `json:"payment,omitempty"`
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *CreateBookingResponse {
	res := &CreateBookingResponse{
		ID:      r.BookingID,
		Status:  r.Status.String(),
		Pricing: queries.NewPricingView(r.Pricing),
	}
	if h := r.Payment; h != nil {
		res.Payment = &PaymentResponse{
			Method:       h.Method.String(),
			Reference:    h.Reference,
			ClientSecret: h.ClientSecret,
			Deadline:     h.Deadline,
		}
		if v := h.Voucher; v != nil {
			res.Payment.Voucher = &VoucherResponse{
				ID:           v.ID,
				Number:       v.Number,
				Amount:       queries.NewMoneyView(v.Amount),
				ExpiresAt:    v.ExpiresAt,
				Instructions: v.Instructions,
			}
		}
	}
	return res
}

type VoucherValidationResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
	Status    string    `json:"status"`
}

func FromValidateVoucherResult(r *commands.ValidateVoucherResult) *VoucherValidationResponse {
	return &VoucherValidationResponse{BookingID: r.BookingID, Status: r.Status.String()}
}
