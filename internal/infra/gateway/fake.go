package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
)

// FakeGateway stands in for Stripe when no secret key is configured. Webhooks are accepted
// unsigned, so it must never face the internet.
type FakeGateway struct {
	mu        sync.Mutex
	byKey     map[string]*shared.PaymentIntent
	cancelled map[string]bool
	seq       int
	// FailCreate makes CreateIntent fail, for exercising the provider-down path.
	FailCreate bool
}

var _ shared.CardGateway = (*FakeGateway)(nil)

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		byKey:     map[string]*shared.PaymentIntent{},
		cancelled: map[string]bool{},
	}
}

func (g *FakeGateway) CreateIntent(_ context.Context, _ money.Money, _ uuid.UUID, idempotencyKey string) (*shared.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailCreate {
		return nil, errs.New("fake gateway: create intent failed")
	}
	if pi, ok := g.byKey[idempotencyKey]; ok {
		return pi, nil
	}
	g.seq++
	id := fmt.Sprintf("pi_fake_%06d", g.seq)
	pi := &shared.PaymentIntent{ID: id, ClientSecret: id + "_secret", Status: "requires_payment_method"}
	g.byKey[idempotencyKey] = pi
	return pi, nil
}

func (g *FakeGateway) CancelIntent(_ context.Context, intentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelled[intentID] = true
	return nil
}

func (g *FakeGateway) IsCancelled(intentID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cancelled[intentID]
}

// ParseWebhook reads a Stripe event body without checking the signature.
func (g *FakeGateway) ParseWebhook(payload []byte, _ string) (*WebhookEvent, error) {
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errs.Mark(err, ErrMalformedEvent)
	}
	if event.ID == "" {
		return nil, errs.Mark(errs.New("event id missing"), ErrMalformedEvent)
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
