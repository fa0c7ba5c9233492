package bootstrap

import (
	"log/slog"

	"rental-escrow/internal/handler/api"
	"rental-escrow/internal/infra/gateway"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/usecase/shared"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewCardGateway,
	),
)

type CardGateway struct {
	fx.Out

	Gateway shared.CardGateway
	Parser  api.WebhookParser
}

// NewCardGateway talks to Stripe when STRIPE_SECRET_KEY is set. Without it a local fake creates
// intents and accepts unsigned webhooks, which must never face the internet.
func NewCardGateway(cfg config.Config, logger *slog.Logger) CardGateway {
	if cfg.Stripe.SecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, using the fake card gateway")
		g := gateway.NewFakeGateway()
		return CardGateway{Gateway: g, Parser: g}
	}
	g := gateway.NewStripeGateway(cfg.Stripe, nil, logger)
	return CardGateway{Gateway: g, Parser: g}
}
