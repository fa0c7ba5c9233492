// Package messaging delivers participant notifications and emails off the request path.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the slice of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type notificationMessage struct {
	ID        uuid.UUID      `json:"id"`
	Recipient uuid.UUID      `json:"recipient_id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type emailMessage struct {
	ID        uuid.UUID      `json:"id"`
	Template  string         `json:"template"`
	Recipient string         `json:"recipient"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AMQPPublisher writes persistent JSON messages to durable queues on the default exchange.
type AMQPPublisher struct {
	mu                sync.Mutex
	conn              *amqp.Connection
	ch                channel
	notificationQueue string
	emailQueue        string
	now               func() time.Time
	logger            *slog.Logger
}

var (
	_ shared.Notifier = (*AMQPPublisher)(nil)
	_ shared.Mailer   = (*AMQPPublisher)(nil)
)

func NewAMQPPublisher(cfg config.AMQPConfig, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "rabbitmq: dial failed")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "rabbitmq: channel open failed")
	}
	for _, q := range []string{cfg.NotificationQueue, cfg.EmailQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, errs.Wrap(err, "rabbitmq: queue declare failed")
		}
	}
	p := newPublisher(ch, cfg, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, cfg config.AMQPConfig, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		ch:                ch,
		notificationQueue: cfg.NotificationQueue,
		emailQueue:        cfg.EmailQueue,
		now:               func() time.Time { return time.Now().UTC() },
		logger:            logger,
	}
}

func (p *AMQPPublisher) Notify(ctx context.Context, n shared.Notification) error {
	return p.publish(ctx, p.notificationQueue, notificationMessage{
		ID:        uuid.New(),
		Recipient: n.Recipient,
		Type:      n.Type,
		Payload:   n.Payload,
		CreatedAt: p.now(),
	})
}

func (p *AMQPPublisher) Send(ctx context.Context, e shared.Email) error {
	return p.publish(ctx, p.emailQueue, emailMessage{
		ID:        uuid.New(),
		Template:  e.Template,
		Recipient: e.Recipient,
		Payload:   e.Payload,
		CreatedAt: p.now(),
	})
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return errs.Wrap(err, "rabbitmq: marshal message failed")
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		p.logger.Error("rabbitmq: publish failed", "queue", queue, "error", err)
		return errs.Wrap(err, "rabbitmq: publish failed")
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
