package api

import (
	"errors"
	"io"
	"net/http"

	reqdto "rental-escrow/internal/handler/dto/request"
	resdto "rental-escrow/internal/handler/dto/response"
	"rental-escrow/internal/handler/httperr"
	"rental-escrow/internal/infra/gateway"
	"rental-escrow/internal/pkg/metrics"
	"rental-escrow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody matches the limit Stripe documents for event payloads.
const maxWebhookBody = 65536

// WebhookParser verifies and decodes a processor webhook body.
type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (*gateway.WebhookEvent, error)
}

type PaymentHandler struct {
	cmds    commands.PaymentCommands
	parser  WebhookParser
	metrics *metrics.Registry
}

func NewPaymentHandler(cmds commands.PaymentCommands, parser WebhookParser, reg *metrics.Registry) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, parser: parser, metrics: reg}
}

// @Summary Stripe webhook
// @Description Applies payment_intent.succeeded events. Redeliveries are acknowledged without side effects.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Router /webhooks/stripe [post]
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.metrics.WebhookEvent(metrics.WebhookRejected)
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Payload too large", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	ev, err := h.parser.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.metrics.WebhookEvent(metrics.WebhookRejected)
		msg := "Malformed event"
		if errors.Is(err, gateway.ErrInvalidSignature) {
			msg = "Invalid signature"
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
		return
	}

	if ev.Type != gateway.EventIntentSucceeded {
		h.metrics.WebhookEvent(metrics.WebhookIgnored)
		c.JSON(http.StatusOK, gin.H{"received": true, "outcome": metrics.WebhookIgnored})
		return
	}

	outcome, err := h.cmds.ConfirmCardPayment(c.Request.Context(), commands.CardPaymentEvent{
		Provider:  ev.Provider,
		EventID:   ev.EventID,
		EventType: ev.Type,
		IntentID:  ev.IntentID,
		BookingID: ev.BookingID,
		Amount:    ev.Amount,
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "outcome": outcome})
}

// @Summary Validate cash voucher
// @Description Admin records the agency confirmation for a cash voucher and captures the booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateVoucherRequest true "Agency confirmation"
// @Success 200 {object} resdto.VoucherValidationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/vouchers/validate [post]
func (h *PaymentHandler) ValidateVoucher(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.ValidateVoucherRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.ValidateVoucher(c.Request.Context(), in, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidateVoucherResult(result))
}
