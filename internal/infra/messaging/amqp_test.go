//go:build unit

package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	key string
	msg amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

var testAMQPConfig = config.AMQPConfig{NotificationQueue: "notifications", EmailQueue: "emails"}

func newTestPublisher(ch *fakeChannel) *AMQPPublisher {
	p := newPublisher(ch, testAMQPConfig, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	p.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestAMQPPublisher_Notify(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)
	recipient := uuid.New()

	err := p.Notify(context.Background(), shared.Notification{
		Recipient: recipient,
		Type:      shared.NotifyBookingPaid,
		Payload:   map[string]any{"booking_id": "b-1"},
	})

	require.NoError(t, err)
	require.Len(t, ch.sent, 1)
	assert.Equal(t, "notifications", ch.sent[0].key)
	assert.Equal(t, "application/json", ch.sent[0].msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.sent[0].msg.DeliveryMode)

	var body notificationMessage
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &body))
	assert.Equal(t, recipient, body.Recipient)
	assert.Equal(t, shared.NotifyBookingPaid, body.Type)
	assert.Equal(t, "b-1", body.Payload["booking_id"])
	assert.NotEqual(t, uuid.Nil, body.ID)
}

func TestAMQPPublisher_Send(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	err := p.Send(context.Background(), shared.Email{Template: "voucher_issued", Recipient: "guest@example.com"})

	require.NoError(t, err)
	require.Len(t, ch.sent, 1)
	assert.Equal(t, "emails", ch.sent[0].key)
	var body emailMessage
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &body))
	assert.Equal(t, "voucher_issued", body.Template)
	assert.Equal(t, "guest@example.com", body.Recipient)
}

func TestAMQPPublisher_PublishFailure(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newTestPublisher(ch)

	err := p.Notify(context.Background(), shared.Notification{Recipient: uuid.New(), Type: shared.NotifyBookingExpired})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestAMQPPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, p.Notify(context.Background(), shared.Notification{Recipient: uuid.New(), Type: shared.NotifyDisputeOpened}))
	require.NoError(t, p.Send(context.Background(), shared.Email{Template: "booking_confirmed", Recipient: "a@b.c"}))

	assert.Contains(t, buf.String(), shared.NotifyDisputeOpened)
	assert.Contains(t, buf.String(), "booking_confirmed")
}
