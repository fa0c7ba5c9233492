//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/domain/voucher"
	"rental-escrow/internal/infra/cache"
	"rental-escrow/internal/infra/gateway"
	"rental-escrow/internal/infra/memstore"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/metrics"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/payment"
	"rental-escrow/internal/usecase/shared"
	"rental-escrow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testBookingConfig = config.BookingConfig{
	CardPaymentTimeout:  30 * time.Minute,
	VoucherValidity:     72 * time.Hour,
	VoucherInstructions: "Pay the exact amount at any partner agency.",
	CompleteGrace:       2 * time.Hour,
	EscrowReleaseGrace:  24 * time.Hour,
	IdempotencyTTL:      24 * time.Hour,
}

var testWorkerConfig = config.WorkerConfig{
	Enabled:   true,
	Interval:  time.Minute,
	BatchSize: 50,
	LeaseTTL:  50 * time.Second,
}

// recorder captures what the dispatcher delivers after commit.
type recorder struct {
	mu            sync.Mutex
	notifications []shared.Notification
	emails        []shared.Email
}

func (r *recorder) Notify(_ context.Context, n shared.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *recorder) Send(_ context.Context, e shared.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, e)
	return nil
}

func (r *recorder) typesFor(recipient uuid.UUID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.notifications {
		if n.Recipient == recipient {
			out = append(out, n.Type)
		}
	}
	return out
}

func (r *recorder) templates() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.emails))
	for _, e := range r.emails {
		out = append(out, e.Template)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications, r.emails = nil, nil
}

type harness struct {
	store    *memstore.Store
	uow      shared.UnitOfWork
	clock    *clock.MockClock
	gateway  *gateway.FakeGateway
	events   *cache.MemoryEventCache
	recorder *recorder
	metrics  *metrics.Registry
	ledger   *ledger.Ledger
	adapters payment.Adapters
	bb       *builder.BookingBuilder
	batch    int

	guest shared.Actor
	host  shared.Actor
	admin shared.Actor

	bookings    commands.BookingCommands
	payments    commands.PaymentCommands
	disputes    commands.DisputeCommands
	escrows     commands.EscrowCommands
	commissions commands.CommissionCommands
	payouts     commands.PayoutCommands
	sweeps      commands.SweepCommands
}

type harnessOption func(*harness)

// withUnitOfWork lets a test intercept transactions, e.g. to fail one repository call.
func withUnitOfWork(wrap func(shared.UnitOfWork) shared.UnitOfWork) harnessOption {
	return func(h *harness) { h.uow = wrap(h.uow) }
}

// withBatchSize caps how many settled escrows one payout run reads.
func withBatchSize(n int) harnessOption {
	return func(h *harness) { h.batch = n }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	bb := builder.NewBookingBuilder()
	clk := clock.NewMockClock(bb.Now)
	store := memstore.New(clk)

	h := &harness{
		store:    store,
		uow:      store,
		clock:    clk,
		gateway:  gateway.NewFakeGateway(),
		events:   cache.NewMemoryEventCache(clk),
		recorder: &recorder{},
		metrics:  metrics.NewRegistry(),
		ledger:   ledger.New(),
		bb:       bb,
		batch:    testWorkerConfig.BatchSize,
		guest:    shared.Actor{ID: bb.GuestID, Role: user.RoleGuest},
		host:     shared.Actor{ID: bb.Listing.HostID, Role: user.RoleHost},
		admin:    shared.Actor{ID: uuid.New(), Role: user.RoleAdmin},
	}
	for _, opt := range opts {
		opt(h)
	}

	h.seedListing(nil)
	h.seedUser(t, builder.NewUserBuilder().With(func(u *builder.UserBuilder) { u.ID = h.guest.ID }))
	h.seedUser(t, builder.NewUserBuilder().AsHost().With(func(u *builder.UserBuilder) { u.ID = h.host.ID }))
	h.seedUser(t, builder.NewUserBuilder().AsAdmin().With(func(u *builder.UserBuilder) { u.ID = h.admin.ID }))
	store.SeedBankAccount(shared.BankAccountSnapshot{ID: uuid.New(), HostID: h.host.ID, Holder: "Karim Host", Last4: "4821", IsDefault: true})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := store.Directory()
	resolver := commission.NewResolver(decimal.NewFromInt(500), "EUR", map[string]decimal.Decimal{
		"EUR": decimal.NewFromInt(1),
		"DZD": decimal.RequireFromString("0.0068"),
	})
	h.adapters = payment.NewAdapters(
		payment.NewCardAdapter(h.gateway, h.ledger, testBookingConfig.CardPaymentTimeout, testBookingConfig.EscrowReleaseGrace, logger),
		payment.NewVoucherAdapter(h.ledger, testBookingConfig.VoucherValidity, testBookingConfig.VoucherInstructions, testBookingConfig.EscrowReleaseGrace),
	)
	dispatcher := commands.NewDispatcher(h.recorder, h.recorder, dir, h.metrics, logger)

	h.bookings = commands.NewBookingUseCase(h.uow, dir, dir, dir, resolver, h.adapters, h.ledger, dispatcher, testBookingConfig, clk, logger)
	h.payments = commands.NewPaymentUseCase(h.uow, h.adapters, h.events, time.Hour, dispatcher, h.metrics, clk, logger)
	h.disputes = commands.NewDisputeUseCase(h.uow, h.ledger, dispatcher, clk, logger)
	h.escrows = commands.NewEscrowUseCase(h.uow, h.ledger, dispatcher, clk)
	h.commissions = commands.NewCommissionUseCase(h.uow, clk)
	h.payouts = commands.NewPayoutUseCase(h.uow, dir, dispatcher, h.metrics, h.batch, clk, logger)
	h.sweeps = commands.NewSweepUseCase(h.uow, h.adapters, h.ledger, dispatcher, testBookingConfig, testWorkerConfig, clk, logger)
	return h
}

// seedListing registers a listing owned by the harness host; the default one matches the booking
// builder.
func (h *harness) seedListing(mutate func(*shared.ListingSnapshot)) uuid.UUID {
	l := shared.ListingSnapshot{
		ID:                 h.bb.Listing.ID,
		HostID:             h.host.ID,
		Title:              "Casbah loft",
		Status:             "active",
		Category:           "stay",
		NightlyPrice:       money.MustNew("5000", "DZD"),
		CleaningFee:        money.MustNew("500", "DZD"),
		SecurityDeposit:    money.MustNew("0", "DZD"),
		MinStay:            1,
		MaxStay:            30,
		MaxGuests:          4,
		CheckInTime:        "15:00",
		CheckOutTime:       "11:00",
		TimeZone:           "UTC",
		InstantBook:        true,
		CancellationPolicy: "moderate",
	}
	if mutate != nil {
		mutate(&l)
	}
	h.store.SeedListing(l)
	return l.ID
}

func (h *harness) seedUser(t *testing.T, ub *builder.UserBuilder) {
	t.Helper()
	u, err := ub.BuildDomain()
	require.NoError(t, err)
	h.store.SeedUser(u)
}

func (h *harness) input(method booking.PaymentMethod) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ListingID:     h.bb.Listing.ID,
		CheckIn:       h.bb.CheckIn.Format(time.DateOnly),
		CheckOut:      h.bb.CheckOut.Format(time.DateOnly),
		Adults:        2,
		PaymentMethod: method.String(),
	}
}

func (h *harness) create(t *testing.T, in commands.CreateBookingInput) *commands.CreateBookingResult {
	t.Helper()
	result, err := h.bookings.CreateBooking(context.Background(), in, h.guest, uuid.New())
	require.NoError(t, err)
	return result
}

// cardEvent is the succeeded-intent webhook for a created card booking.
func (h *harness) cardEvent(result *commands.CreateBookingResult) commands.CardPaymentEvent {
	id := result.BookingID
	amount := result.Pricing.TotalAmount
	return commands.CardPaymentEvent{
		Provider:  "stripe",
		EventID:   "evt_" + result.Payment.Reference,
		EventType: gateway.EventIntentSucceeded,
		IntentID:  result.Payment.Reference,
		BookingID: &id,
		Amount:    &amount,
	}
}

// confirmedBooking creates and captures an instant-book card booking.
func (h *harness) confirmedBooking(t *testing.T) *commands.CreateBookingResult {
	t.Helper()
	result := h.create(t, h.input(booking.MethodCard))
	outcome, err := h.payments.ConfirmCardPayment(context.Background(), h.cardEvent(result))
	require.NoError(t, err)
	require.Equal(t, metrics.WebhookProcessed, outcome)
	return result
}

func (h *harness) booking(t *testing.T, id uuid.UUID) *booking.Booking {
	t.Helper()
	var b *booking.Booking
	err := h.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		b, err = tx.Bookings().Get(ctx, id)
		return err
	})
	require.NoError(t, err)
	return b
}

func (h *harness) escrow(t *testing.T, bookingID uuid.UUID) *escrow.Escrow {
	t.Helper()
	var e *escrow.Escrow
	err := h.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		e, err = tx.Escrows().GetByBooking(ctx, bookingID)
		return err
	})
	require.NoError(t, err)
	return e
}

func (h *harness) escrowActions(t *testing.T, bookingID uuid.UUID) []escrow.Action {
	t.Helper()
	var actions []escrow.Action
	err := h.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		events, err := tx.Escrows().ListEvents(ctx, bookingID)
		for _, ev := range events {
			actions = append(actions, ev.Action)
		}
		return err
	})
	require.NoError(t, err)
	return actions
}

func (h *harness) hasEscrow(t *testing.T, bookingID uuid.UUID) bool {
	t.Helper()
	var found bool
	err := h.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Escrows().GetByBooking(ctx, bookingID)
		found = err == nil
		return nil
	})
	require.NoError(t, err)
	return found
}

func (h *harness) voucherFor(t *testing.T, bookingID uuid.UUID) *voucher.Voucher {
	t.Helper()
	var v *voucher.Voucher
	err := h.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		v, err = tx.Vouchers().GetByBooking(ctx, bookingID)
		return err
	})
	require.NoError(t, err)
	return v
}

func (h *harness) guestBookings(t *testing.T) []*booking.Booking {
	t.Helper()
	var out []*booking.Booking
	err := h.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Bookings().ListForGuest(ctx, h.guest.ID, 100)
		return err
	})
	require.NoError(t, err)
	return out
}

var errVoucherInsert = errs.New("voucher insert failed")

// failingVouchers makes every voucher insert fail inside write transactions.
type failingVouchers struct {
	shared.UnitOfWork
}

func (u failingVouchers) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.UnitOfWork.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, failingVoucherTx{tx})
	})
}

type failingVoucherTx struct {
	shared.Tx
}

func (t failingVoucherTx) Vouchers() shared.VoucherRepository {
	return failingVoucherRepo{t.Tx.Vouchers()}
}

type failingVoucherRepo struct {
	shared.VoucherRepository
}

func (failingVoucherRepo) Create(context.Context, *voucher.Voucher) error {
	return errVoucherInsert
}
