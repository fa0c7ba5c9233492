package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/pricing"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/payment"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
)

const createBookingEndpoint = "POST /bookings"

type CreateBookingInput struct {
	ListingID     uuid.UUID `json:"listing_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Adults        int       `json:"adults"`
	Children      int       `json:"children"`
	Infants       int       `json:"infants"`
	PaymentMethod string    `json:"payment_method"`
}

type CreateBookingResult struct {
	BookingID  uuid.UUID
	Status     booking.Status
	Pricing    pricing.Breakdown
	Payment    *payment.Handle
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput, actor shared.Actor, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor, reason string) error
	AcceptBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error
	RejectBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor, reason string) error
	CompleteBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error
}

type bookingUseCaseImpl struct {
	uow          shared.UnitOfWork
	listings     shared.ListingLookup
	users        shared.UserLookup
	availability shared.AvailabilityChecker
	resolver     *commission.Resolver
	adapters     payment.Adapters
	ledger       *ledger.Ledger
	dispatcher   *Dispatcher
	cfg          config.BookingConfig
	clock        clock.Clock
	logger       *slog.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	listings shared.ListingLookup,
	users shared.UserLookup,
	availability shared.AvailabilityChecker,
	resolver *commission.Resolver,
	adapters payment.Adapters,
	l *ledger.Ledger,
	dispatcher *Dispatcher,
	cfg config.BookingConfig,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:          uow,
		listings:     listings,
		users:        users,
		availability: availability,
		resolver:     resolver,
		adapters:     adapters,
		ledger:       l,
		dispatcher:   dispatcher,
		cfg:          cfg,
		clock:        clk,
		logger:       logger,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	in CreateBookingInput,
	actor shared.Actor,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	if idempotencyKey == uuid.Nil {
		return nil, ErrIdempotencyKeyRequired
	}
	now := uc.clock.Now()
	requestHash := calculateRequestHash(in)

	replay, err := uc.findReplay(ctx, idempotencyKey, actor.ID, requestHash)
	if err != nil {
		return nil, classify(err)
	}
	if replay != nil {
		uc.logger.Info("idempotent replay", "booking_id", replay.BookingID, "idempotency_key", idempotencyKey)
		return replay, nil
	}

	draft, err := uc.prepare(ctx, in, actor, now)
	if err != nil {
		return nil, classify(err)
	}
	adapter, err := uc.adapters.For(draft.method)
	if err != nil {
		return nil, classify(err)
	}

	var (
		result  *CreateBookingResult
		fx      *effects
		handles []*payment.Handle
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		result = nil

		replay, err := uc.handleIdempotency(ctx, tx, idempotencyKey, actor.ID, requestHash, now)
		if err != nil || replay != nil {
			result = replay
			return err
		}

		b, err := uc.newBooking(ctx, tx, draft, actor.ID, now)
		if err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrUnavailable)
			}
			return err
		}

		handle, err := adapter.Initiate(ctx, tx, b, now)
		if err != nil {
			return err
		}
		handles = append(handles, handle)

		if err := tx.Bookings().Update(ctx, b, booking.StatusPendingPayment); err != nil {
			return err
		}
		if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, actor.ID, b.ID()); err != nil {
			return err
		}

		fx.booking(booking.StatusPendingPayment)
		fx.notify(b.HostID(), shared.NotifyBookingRequested, map[string]any{
			"booking_id": b.ID(),
			"check_in":   b.Stay().CheckIn().Format(time.DateOnly),
			"check_out":  b.Stay().CheckOut().Format(time.DateOnly),
		})
		if handle.Voucher != nil {
			fx.email(b.GuestID(), "cash_voucher_issued", map[string]any{
				"booking_id":     b.ID(),
				"voucher_number": handle.Voucher.Number,
				"amount":         handle.Voucher.Amount.String(),
				"expires_at":     handle.Voucher.ExpiresAt,
				"instructions":   handle.Voucher.Instructions,
			})
		}

		result = &CreateBookingResult{
			BookingID: b.ID(),
			Status:    b.Status(),
			Pricing:   b.Pricing(),
			Payment:   handle,
		}
		return nil
	})

	// Intents created by attempts that did not commit are cancelled at the processor.
	committed := len(handles)
	if err == nil && result != nil && !result.IsReplayed {
		committed--
	}
	for _, h := range handles[:max(committed, 0)] {
		adapter.Compensate(ctx, h)
	}
	if err != nil {
		return nil, classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return result, nil
}

// handleIdempotency claims the key in the creating transaction, so a failed attempt releases it
// with the rollback. A non-nil result means the request was already served.
func (uc *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
	now time.Time,
) (*CreateBookingResult, error) {
	inserted, err := tx.Idempotency().TryInsert(ctx, key, userID, createBookingEndpoint, requestHash, now.Add(uc.cfg.IdempotencyTTL))
	if err != nil {
		return nil, errs.Wrap(err, "failed to claim idempotency key")
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Idempotency().Get(ctx, key, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read idempotency key")
	}
	return replayFromRecord(ctx, tx, existing, requestHash)
}

// findReplay answers a repeated request before any listing or availability check runs; the
// booking it created holds those dates by now.
func (uc *bookingUseCaseImpl) findReplay(ctx context.Context, key, userID uuid.UUID, requestHash string) (*CreateBookingResult, error) {
	var result *CreateBookingResult
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Idempotency().Get(ctx, key, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return errs.Wrap(err, "failed to read idempotency key")
		}
		if existing.ExpiresAt.Before(uc.clock.Now()) {
			return nil
		}
		result, err = replayFromRecord(ctx, tx, existing, requestHash)
		return err
	})
	return result, err
}

func replayFromRecord(ctx context.Context, tx shared.Tx, existing *shared.IdempotencyRecord, requestHash string) (*CreateBookingResult, error) {
	if existing.RequestHash != requestHash || existing.Endpoint != createBookingEndpoint {
		return nil, ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed request missing result booking ID")
		}
		b, err := tx.Bookings().Get(ctx, *existing.ResultBookingID)
		if err != nil {
			return nil, err
		}
		handle, err := paymentHandle(ctx, tx, b)
		if err != nil {
			return nil, err
		}
		return &CreateBookingResult{
			BookingID:  b.ID(),
			Status:     b.Status(),
			Pricing:    b.Pricing(),
			Payment:    handle,
			IsReplayed: true,
		}, nil
	case shared.IdempotencyProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

type bookingDraft struct {
	listing  booking.ListingSpec
	category commission.Category
	nightly  money.Money
	cleaning money.Money
	stay     booking.StayRange
	guests   booking.Guests
	method   booking.PaymentMethod
}

// prepare runs every check that needs no transaction: input parsing, listing rules, guest
// contact for cash, and the availability collaborator.
func (uc *bookingUseCaseImpl) prepare(ctx context.Context, in CreateBookingInput, actor shared.Actor, now time.Time) (*bookingDraft, error) {
	stay, err := booking.ParseStayRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	guests, err := booking.NewGuests(in.Adults, in.Children, in.Infants)
	if err != nil {
		return nil, err
	}
	method, err := booking.NewPaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	snap, err := uc.listings.ListingByID(ctx, in.ListingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, errs.Wrap(err, "failed to load listing")
	}
	spec, err := listingSpec(snap)
	if err != nil {
		return nil, err
	}
	if err := booking.ValidateStay(spec, actor.ID, stay, guests, now); err != nil {
		return nil, err
	}

	if method == booking.MethodCashVoucher {
		guest, err := uc.users.UserByID(ctx, actor.ID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrGuestContactMissing
			}
			return nil, errs.Wrap(err, "failed to load guest")
		}
		if !guest.HasCashContact() {
			return nil, ErrGuestContactMissing
		}
	}

	ok, err := uc.availability.IsAvailable(ctx, spec.ID, stay)
	if err != nil {
		return nil, errs.Wrap(err, "failed to check availability")
	}
	if !ok {
		return nil, ErrUnavailable
	}

	return &bookingDraft{
		listing:  spec,
		category: commission.Category(snap.Category),
		nightly:  snap.NightlyPrice,
		cleaning: snap.CleaningFee,
		stay:     stay,
		guests:   guests,
		method:   method,
	}, nil
}

// newBooking prices the stay against the commission settings read in this transaction.
func (uc *bookingUseCaseImpl) newBooking(ctx context.Context, tx shared.Tx, d *bookingDraft, guestID uuid.UUID, now time.Time) (*booking.Booking, error) {
	rates, err := tx.Commissions().ListRates(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load commission rates")
	}
	settings := commission.NewSettings(rates)
	res, err := uc.resolver.ResolveRate(settings, d.category, d.nightly)
	if err != nil {
		return nil, err
	}

	breakdown, err := pricing.Compute(pricing.Input{
		BasePrice:          d.nightly,
		Nights:             d.stay.Nights(),
		CleaningFee:        d.cleaning,
		GuestFeeRate:       res.GuestFeeRate,
		HostCommissionRate: res.HostCommissionRate,
	})
	if err != nil {
		return nil, err
	}

	return booking.NewBooking(booking.Request{
		Listing:    d.listing,
		GuestID:    guestID,
		Stay:       d.stay,
		Guests:     d.guests,
		Method:     d.method,
		Pricing:    breakdown,
		Commission: booking.CommissionSnapshot{Category: res.Category.String(), SettingsVersion: res.SettingsVersion},
	}, now)
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor, reason string) error {
	now := uc.clock.Now()
	var (
		fx      *effects
		outcome error
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx, outcome = &effects{}, nil

		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		role, err := actorRole(b, actor)
		if err != nil {
			return err
		}
		expired, err := expireIfOverdue(ctx, tx, uc.adapters, b, now, fx)
		if err != nil {
			return err
		}
		if expired {
			outcome = ErrPaymentExpired
			return nil
		}

		from := b.Status()
		captured := b.IsCaptured()
		if err := b.Cancel(actor.ID, role, reason, now); err != nil {
			return err
		}

		if captured {
			held, err := uc.ledger.Get(ctx, tx, b.ID())
			if err != nil {
				return err
			}
			hostShare, guestShare := money.Zero(held.Held().Currency()), held.Held()
			if role == booking.ActorGuest {
				hostShare, guestShare = b.Policy().GuestCancellationSplit(held.Held(), now, b.CheckInAt())
			}
			events, err := settle(ctx, tx, uc.ledger, b.ID(), "booking cancelled", hostShare, guestShare, actor.ID, now)
			if err != nil {
				return err
			}
			for _, ev := range events {
				fx.escrow(ev)
			}
			b.RecordRefund(guestShare, now)
		} else {
			adapter, err := uc.adapters.For(b.Method())
			if err != nil {
				return err
			}
			if err := adapter.Void(ctx, tx, b, payment.VoidCancelled, now); err != nil {
				return err
			}
		}

		if err := tx.Bookings().Update(ctx, b, from); err != nil {
			return err
		}

		fx.booking(b.Status())
		payload := map[string]any{"booking_id": b.ID(), "status": b.Status().String(), "reason": reason}
		for _, recipient := range []uuid.UUID{b.GuestID(), b.HostID()} {
			if recipient != actor.ID {
				fx.notify(recipient, shared.NotifyBookingCancelled, payload)
			}
		}
		return nil
	})
	if err != nil {
		return classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return outcome
}

func (uc *bookingUseCaseImpl) AcceptBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error {
	now := uc.clock.Now()
	var fx *effects
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.HostID() != actor.ID {
			return ErrHostOnly
		}
		if err := b.Accept(actor.ID, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b, booking.StatusPaid); err != nil {
			return err
		}
		fx.booking(b.Status())
		fx.notify(b.GuestID(), shared.NotifyBookingConfirmed, map[string]any{"booking_id": b.ID()})
		fx.email(b.GuestID(), "booking_confirmed", map[string]any{"booking_id": b.ID()})
		return nil
	})
	if err != nil {
		return classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return nil
}

// RejectBooking declines a paid request; the guest gets everything back.
func (uc *bookingUseCaseImpl) RejectBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor, reason string) error {
	now := uc.clock.Now()
	var fx *effects
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.HostID() != actor.ID {
			return ErrHostOnly
		}
		if err := b.Reject(actor.ID, reason, now); err != nil {
			return err
		}
		held, err := uc.ledger.Get(ctx, tx, b.ID())
		if err != nil {
			return err
		}
		events, err := settle(ctx, tx, uc.ledger, b.ID(), "booking rejected by host", money.Zero(held.Held().Currency()), held.Held(), actor.ID, now)
		if err != nil {
			return err
		}
		b.RecordRefund(held.Held(), now)
		if err := tx.Bookings().Update(ctx, b, booking.StatusPaid); err != nil {
			return err
		}

		for _, ev := range events {
			fx.escrow(ev)
		}
		fx.booking(b.Status())
		fx.notify(b.GuestID(), shared.NotifyBookingCancelled, map[string]any{"booking_id": b.ID(), "status": b.Status().String(), "reason": reason})
		return nil
	})
	if err != nil {
		return classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return nil
}

// CompleteBooking lets the host end an active stay before the automatic completion.
func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error {
	now := uc.clock.Now()
	var fx *effects
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx = &effects{}
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.HostID() != actor.ID && !actor.IsAdmin() {
			return ErrHostOnly
		}
		if err := b.Complete(now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b, booking.StatusActive); err != nil {
			return err
		}
		fx.booking(b.Status())
		fx.notify(b.GuestID(), shared.NotifyBookingCompleted, map[string]any{"booking_id": b.ID()})
		return nil
	})
	if err != nil {
		return classify(err)
	}
	uc.dispatcher.dispatch(ctx, fx)
	return nil
}

func lockBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().GetForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to lock booking")
	}
	return b, nil
}

func actorRole(b *booking.Booking, actor shared.Actor) (booking.ActorRole, error) {
	switch {
	case actor.IsAdmin():
		return booking.ActorAdmin, nil
	case actor.ID == b.GuestID():
		return booking.ActorGuest, nil
	case actor.ID == b.HostID():
		return booking.ActorHost, nil
	default:
		return "", ErrNotParticipant
	}
}

// expireIfOverdue persists the lazy expiry of a pending booking whose payment window closed.
func expireIfOverdue(ctx context.Context, tx shared.Tx, adapters payment.Adapters, b *booking.Booking, now time.Time, fx *effects) (bool, error) {
	adapter, err := adapters.For(b.Method())
	if err != nil {
		return false, err
	}
	if !adapter.IsExpired(b, now) {
		return false, nil
	}
	if err := b.Expire(now); err != nil {
		return false, err
	}
	if err := adapter.Void(ctx, tx, b, payment.VoidExpired, now); err != nil {
		return false, err
	}
	if err := tx.Bookings().Update(ctx, b, booking.StatusPendingPayment); err != nil {
		return false, err
	}
	fx.booking(booking.StatusExpired)
	fx.notify(b.GuestID(), shared.NotifyBookingExpired, map[string]any{"booking_id": b.ID()})
	return true, nil
}

// settle freezes held funds and splits them at once.
func settle(ctx context.Context, tx shared.Tx, l *ledger.Ledger, bookingID uuid.UUID, reason string, hostShare, guestShare money.Money, actor uuid.UUID, now time.Time) ([]escrow.Event, error) {
	frozen, err := l.Freeze(ctx, tx, bookingID, reason, &actor, now)
	if err != nil {
		return nil, err
	}
	split, err := l.Split(ctx, tx, bookingID, hostShare, guestShare, actor, now)
	if err != nil {
		return nil, err
	}
	return []escrow.Event{frozen, split}, nil
}

// paymentHandle rebuilds what the guest needs to pay from the stored booking.
func paymentHandle(ctx context.Context, tx shared.Tx, b *booking.Booking) (*payment.Handle, error) {
	switch p := b.Payment().(type) {
	case booking.CardPayment:
		return &payment.Handle{
			Method:       booking.MethodCard,
			Reference:    p.IntentID,
			ClientSecret: p.ClientSecret,
			Deadline:     b.PaymentDeadline(),
		}, nil
	case booking.VoucherPayment:
		v, err := tx.Vouchers().Get(ctx, p.VoucherID)
		if err != nil {
			return nil, err
		}
		return &payment.Handle{
			Method:    booking.MethodCashVoucher,
			Reference: v.ID().String(),
			Voucher: &payment.VoucherDetails{
				ID:           v.ID(),
				Number:       v.Number(),
				Amount:       v.Amount(),
				ExpiresAt:    v.ExpiresAt(),
				Instructions: v.Instructions(),
			},
			Deadline: v.ExpiresAt(),
		}, nil
	default:
		return nil, nil
	}
}

func listingSpec(l *shared.ListingSnapshot) (booking.ListingSpec, error) {
	checkIn, err := booking.ParseClockTime(l.CheckInTime)
	if err != nil {
		return booking.ListingSpec{}, err
	}
	checkOut, err := booking.ParseClockTime(l.CheckOutTime)
	if err != nil {
		return booking.ListingSpec{}, err
	}
	loc := time.UTC
	if l.TimeZone != "" {
		if loc, err = time.LoadLocation(l.TimeZone); err != nil {
			return booking.ListingSpec{}, errs.Wrap(err, "invalid listing time zone")
		}
	}
	policy, err := booking.NewCancellationPolicy(l.CancellationPolicy)
	if err != nil {
		policy = booking.PolicyModerate
	}
	return booking.ListingSpec{
		ID:              l.ID,
		HostID:          l.HostID,
		Active:          l.IsActive(),
		Category:        l.Category,
		MinStay:         l.MinStay,
		MaxStay:         l.MaxStay,
		MaxGuests:       l.MaxGuests,
		CheckInTime:     checkIn,
		CheckOutTime:    checkOut,
		Location:        loc,
		InstantBook:     l.InstantBook,
		Policy:          policy,
		SecurityDeposit: l.SecurityDeposit,
	}, nil
}

func calculateRequestHash(in CreateBookingInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
