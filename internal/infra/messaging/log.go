package messaging

import (
	"context"
	"log/slog"

	"rental-escrow/internal/usecase/shared"
)

// LogPublisher records notifications and emails in the application log when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

var (
	_ shared.Notifier = (*LogPublisher)(nil)
	_ shared.Mailer   = (*LogPublisher)(nil)
)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "messaging")}
}

func (p *LogPublisher) Notify(ctx context.Context, n shared.Notification) error {
	p.logger.InfoContext(ctx, "Notification", "type", n.Type, "recipient_id", n.Recipient, "payload", n.Payload)
	return nil
}

func (p *LogPublisher) Send(ctx context.Context, e shared.Email) error {
	p.logger.InfoContext(ctx, "Email", "template", e.Template, "recipient", e.Recipient)
	return nil
}
