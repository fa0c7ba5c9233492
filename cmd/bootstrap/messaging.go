package bootstrap

import (
	"context"
	"log/slog"

	"rental-escrow/internal/infra/messaging"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewPublishers,
	),
)

type Publishers struct {
	fx.Out

	Notifier shared.Notifier
	Mailer   shared.Mailer
}

func NewPublishers(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Publishers, error) {
	if cfg.AMQP.URL == "" {
		logger.Warn("AMQP_URL not set, notifications and emails are only logged")
		p := messaging.NewLogPublisher(logger)
		return Publishers{Notifier: p, Mailer: p}, nil
	}

	p, err := messaging.NewAMQPPublisher(cfg.AMQP, logger)
	if err != nil {
		return Publishers{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return Publishers{Notifier: p, Mailer: p}, nil
}
