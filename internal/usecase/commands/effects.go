package commands

import (
	"context"
	"log/slog"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/pkg/metrics"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

type emailIntent struct {
	userID   uuid.UUID
	template string
	payload  map[string]any
}

// effects collects what a command announces once its transaction has committed. A retried
// transaction starts from a fresh value.
type effects struct {
	notifications []shared.Notification
	emails        []emailIntent
	bookings      []booking.Status
	escrows       []escrow.Action
}

func (e *effects) notify(recipient uuid.UUID, typ string, payload map[string]any) {
	e.notifications = append(e.notifications, shared.Notification{Recipient: recipient, Type: typ, Payload: payload})
}

func (e *effects) email(userID uuid.UUID, template string, payload map[string]any) {
	e.emails = append(e.emails, emailIntent{userID: userID, template: template, payload: payload})
}

func (e *effects) booking(s booking.Status) {
	e.bookings = append(e.bookings, s)
}

func (e *effects) escrow(ev escrow.Event) {
	if ev.Action != "" {
		e.escrows = append(e.escrows, ev.Action)
	}
}

// Dispatcher delivers effects after commit. Delivery failures are logged and never reach the
// caller.
type Dispatcher struct {
	notifier shared.Notifier
	mailer   shared.Mailer
	users    shared.UserLookup
	metrics  *metrics.Registry
	logger   *slog.Logger
}

func NewDispatcher(notifier shared.Notifier, mailer shared.Mailer, users shared.UserLookup, reg *metrics.Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{notifier: notifier, mailer: mailer, users: users, metrics: reg, logger: logger}
}

func (d *Dispatcher) dispatch(ctx context.Context, fx *effects) {
	if fx == nil {
		return
	}
	for _, s := range fx.bookings {
		d.metrics.BookingTransition(s.String())
	}
	for _, a := range fx.escrows {
		d.metrics.EscrowTransition(string(a))
	}
	for _, n := range fx.notifications {
		if err := d.notifier.Notify(ctx, n); err != nil {
			d.logger.Warn("notification delivery failed", "type", n.Type, "recipient", n.Recipient, "error", err)
		}
	}
	for _, m := range fx.emails {
		u, err := d.users.UserByID(ctx, m.userID)
		if err != nil {
			d.logger.Warn("email recipient lookup failed", "template", m.template, "user_id", m.userID, "error", err)
			continue
		}
		email := shared.Email{Template: m.template, Recipient: u.Email().Value(), Payload: m.payload}
		if err := d.mailer.Send(ctx, email); err != nil {
			d.logger.Warn("email delivery failed", "template", m.template, "user_id", m.userID, "error", err)
		}
	}
}
