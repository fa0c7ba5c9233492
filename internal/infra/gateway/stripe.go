// Package gateway talks to the card processor.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

const (
	ProviderStripe       = "stripe"
	EventIntentSucceeded = "payment_intent.succeeded"
	metadataBookingID    = "booking_id"
)

var (
	ErrInvalidSignature = errs.New("invalid webhook signature")
	ErrMalformedEvent   = errs.New("malformed webhook event")
)

// WebhookEvent is the part of a verified processor event the booking flow needs. Amount and
// BookingID are nil when the event does not carry them.
type WebhookEvent struct {
	Provider  string
	EventID   string
	Type      string
	IntentID  string
	BookingID *uuid.UUID
	Amount    *money.Money
}

type StripeGateway struct {
	intents       *paymentintent.Client
	webhookSecret string
	logger        *slog.Logger
}

var _ shared.CardGateway = (*StripeGateway)(nil)

// NewStripeGateway uses backend when given, otherwise the default Stripe API backend.
func NewStripeGateway(cfg config.StripeConfig, backend stripe.Backend, logger *slog.Logger) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeGateway{
		intents:       &paymentintent.Client{B: backend, Key: cfg.SecretKey},
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount money.Money, bookingID uuid.UUID, idempotencyKey string) (*shared.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount.MinorAmount()),
		Currency: stripe.String(strings.ToLower(amount.Currency())),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataBookingID, bookingID.String())
	params.SetIdempotencyKey(idempotencyKey)

	pi, err := g.intents.New(params)
	if err != nil {
		g.logger.Error("Failed to create payment intent", "booking_id", bookingID, "error", err)
		return nil, errs.Wrap(err, "stripe: failed to create payment intent")
	}
	return &shared.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

// CancelIntent treats an intent that is already canceled as success.
func (g *StripeGateway) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := g.intents.Cancel(intentID, params); err != nil {
		var serr *stripe.Error
		if errs.As(err, &serr) && serr.Code == stripe.ErrorCodePaymentIntentUnexpectedState {
			return nil
		}
		return errs.Wrap(err, "stripe: failed to cancel payment intent")
	}
	return nil
}

// ParseWebhook verifies the signature and extracts the payment intent. Event types other than a
// succeeded intent come back with only the envelope filled in.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSignature)
	}
	out := &WebhookEvent{Provider: ProviderStripe, EventID: event.ID, Type: string(event.Type)}
	if out.Type != EventIntentSucceeded || event.Data == nil {
		return out, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, errs.Mark(err, ErrMalformedEvent)
	}
	return intentEvent(out, pi.ID, pi.AmountReceived, pi.Amount, string(pi.Currency), pi.Metadata)
}

func intentEvent(out *WebhookEvent, intentID string, received, amount int64, currency string, metadata map[string]string) (*WebhookEvent, error) {
	out.IntentID = intentID
	if raw, ok := metadata[metadataBookingID]; ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "booking_id metadata"), ErrMalformedEvent)
		}
		out.BookingID = &id
	}
	if received == 0 {
		received = amount
	}
	if currency != "" {
		m, err := money.FromMinor(received, strings.ToUpper(currency))
		if err != nil {
			return nil, errs.Mark(err, ErrMalformedEvent)
		}
		out.Amount = &m
	}
	return out, nil
}
