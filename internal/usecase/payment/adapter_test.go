//go:build unit

package payment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/domain/money"
	"rental-escrow/internal/domain/voucher"
	"rental-escrow/internal/infra/memstore"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/payment"
	"rental-escrow/internal/usecase/shared"
	"rental-escrow/tests/common/builder"
	sharedmock "rental-escrow/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	cardTimeout  = 30 * time.Minute
	releaseGrace = 24 * time.Hour
	validity     = 72 * time.Hour
)

type AdapterTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	gateway *sharedmock.MockCardGateway
	store   *memstore.Store
	bb      *builder.BookingBuilder
	card    *payment.CardAdapter
	voucher *payment.VoucherAdapter
}

func (s *AdapterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.gateway = sharedmock.NewMockCardGateway(s.ctrl)
	s.bb = builder.NewBookingBuilder()
	s.store = memstore.New(clock.NewMockClock(s.bb.Now))
	l := ledger.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.card = payment.NewCardAdapter(s.gateway, l, cardTimeout, releaseGrace, logger)
	s.voucher = payment.NewVoucherAdapter(l, validity, "Pay at any partner agency.", releaseGrace)
}

// pending stores a new booking and attaches a payment through adapter in one transaction.
func (s *AdapterTestSuite) pending(adapter payment.Adapter) (*booking.Booking, *payment.Handle) {
	b, err := s.bb.With(func(bb *builder.BookingBuilder) { bb.Method = adapter.Method() }).BuildDomain()
	s.Require().NoError(err)
	var h *payment.Handle
	s.Require().NoError(s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}
		var err error
		if h, err = adapter.Initiate(ctx, tx, b, s.bb.Now); err != nil {
			return err
		}
		return tx.Bookings().Update(ctx, b, booking.StatusPendingPayment)
	}))
	return b, h
}

func (s *AdapterTestSuite) confirm(adapter payment.Adapter, b *booking.Booking, ev payment.ExternalEvent) (payment.CaptureResult, error) {
	var res payment.CaptureResult
	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Bookings().GetForUpdate(ctx, b.ID())
		if err != nil {
			return err
		}
		res, err = adapter.Confirm(ctx, tx, locked, ev)
		return err
	})
	return res, err
}

func (s *AdapterTestSuite) expectIntent() {
	s.gateway.EXPECT().
		CreateIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, amount money.Money, bookingID uuid.UUID, key string) (*shared.PaymentIntent, error) {
			s.True(amount.Equal(money.MustNew("16740", "DZD")), "intent amount %s", amount)
			s.Equal(bookingID.String(), key)
			return &shared.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret", Status: "requires_payment_method"}, nil
		})
}

func (s *AdapterTestSuite) TestCardInitiate() {
	s.expectIntent()

	b, h := s.pending(s.card)

	s.Equal(booking.MethodCard, h.Method)
	s.Equal("pi_123", h.Reference)
	s.Equal("pi_123_secret", h.ClientSecret)
	s.Equal(s.bb.Now.Add(cardTimeout), h.Deadline)
	s.Equal(h.Deadline, b.PaymentDeadline())
	card, ok := b.Payment().(booking.CardPayment)
	s.Require().True(ok)
	s.Equal("pi_123", card.IntentID)
}

func (s *AdapterTestSuite) TestCardInitiate_ProviderFailure() {
	b, err := s.bb.BuildDomain()
	s.Require().NoError(err)
	s.gateway.EXPECT().
		CreateIntent(gomock.Any(), gomock.Any(), b.ID(), b.ID().String()).
		Return(nil, errs.New("stripe: connection reset"))

	_, err = s.card.Initiate(s.ctx, nil, b, s.bb.Now)

	s.ErrorIs(err, payment.ErrProvider)
	s.Nil(b.Payment())
}

func (s *AdapterTestSuite) TestCardConfirm() {
	s.expectIntent()
	b, _ := s.pending(s.card)
	total := b.Pricing().TotalAmount

	s.Run("wrong amount", func() {
		wrong := money.MustNew("16000", "DZD")
		_, err := s.confirm(s.card, b, payment.ExternalEvent{EventID: "evt_1", Reference: "pi_123", Amount: &wrong, At: s.bb.Now})
		s.ErrorIs(err, payment.ErrAmountMismatch)
	})

	s.Run("capture holds the total", func() {
		res, err := s.confirm(s.card, b, payment.ExternalEvent{EventID: "evt_2", Reference: "pi_123", Amount: &total, At: s.bb.Now.Add(5 * time.Minute)})
		s.Require().NoError(err)
		s.True(res.Captured)
		s.Equal(escrow.ActionHold, res.Escrow.Action)
		s.Equal(escrow.StatusHeld, res.Escrow.ToStatus)
	})

	s.Run("second capture is already applied", func() {
		res, err := s.confirm(s.card, b, payment.ExternalEvent{EventID: "evt_3", Reference: "pi_123", Amount: &total, At: s.bb.Now.Add(6 * time.Minute)})
		s.Require().NoError(err)
		s.False(res.Captured)
		s.True(res.AlreadyApplied)
	})
}

func (s *AdapterTestSuite) TestCardVoidAndCompensate() {
	s.expectIntent()
	b, h := s.pending(s.card)

	s.gateway.EXPECT().CancelIntent(gomock.Any(), "pi_123").Return(errs.New("already cancelled"))
	s.NoError(s.card.Void(s.ctx, nil, b, payment.VoidExpired, s.bb.Now))

	s.gateway.EXPECT().CancelIntent(gomock.Any(), "pi_123").Return(nil)
	s.card.Compensate(s.ctx, h)

	s.card.Compensate(s.ctx, nil)
}

func (s *AdapterTestSuite) TestCardVoid_CapturedIntentIsLeftAlone() {
	b, err := builder.NewBookingBuilder().BuildConfirmed()
	s.Require().NoError(err)
	s.Require().True(b.IsCaptured())

	// the mock fails the test on any CancelIntent call
	s.NoError(s.card.Void(s.ctx, nil, b, payment.VoidCancelled, s.bb.Now))

	b.RecordRefund(b.Pricing().TotalAmount, s.bb.Now)
	s.Require().Equal(booking.PaymentRefunded, b.PaymentStatus())
	s.NoError(s.card.Void(s.ctx, nil, b, payment.VoidCancelled, s.bb.Now))
}

func (s *AdapterTestSuite) TestCardExpiry() {
	s.expectIntent()
	b, _ := s.pending(s.card)

	s.False(s.card.IsExpired(b, s.bb.Now.Add(cardTimeout)))
	s.True(s.card.IsExpired(b, s.bb.Now.Add(cardTimeout+time.Second)))
}

func (s *AdapterTestSuite) TestVoucherInitiate() {
	b, h := s.pending(s.voucher)

	s.Equal(booking.MethodCashVoucher, h.Method)
	s.Require().NotNil(h.Voucher)
	s.Equal(h.Voucher.ID.String(), h.Reference)
	s.True(h.Voucher.Amount.Equal(b.Pricing().TotalAmount))
	s.Equal(s.bb.Now.Add(validity), h.Voucher.ExpiresAt)
	s.Equal("Pay at any partner agency.", h.Voucher.Instructions)
	s.NotEmpty(h.Voucher.Number)

	var v *voucher.Voucher
	s.Require().NoError(s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		v, err = tx.Vouchers().GetByBooking(ctx, b.ID())
		return err
	}))
	s.Equal(voucher.StatusPending, v.Status())
	s.Equal(h.Voucher.Number, v.Number())
}

func (s *AdapterTestSuite) TestVoucherConfirm() {
	b, _ := s.pending(s.voucher)
	validation := &payment.VoucherValidation{AgencyCode: "AG-ORAN-02", TransactionID: "TX-1", Admin: s.bb.GuestID}

	_, err := s.confirm(s.voucher, b, payment.ExternalEvent{At: s.bb.Now})
	s.ErrorIs(err, payment.ErrValidationMissing)

	_, err = s.confirm(s.voucher, b, payment.ExternalEvent{
		Validation: &payment.VoucherValidation{TransactionID: "TX-1", Admin: s.bb.GuestID},
		At:         s.bb.Now,
	})
	s.ErrorIs(err, payment.ErrVoucherRejected)

	res, err := s.confirm(s.voucher, b, payment.ExternalEvent{Validation: validation, At: s.bb.Now.Add(time.Hour)})
	s.Require().NoError(err)
	s.True(res.Captured)

	res, err = s.confirm(s.voucher, b, payment.ExternalEvent{Validation: validation, At: s.bb.Now.Add(2 * time.Hour)})
	s.Require().NoError(err)
	s.True(res.AlreadyApplied)
}

func (s *AdapterTestSuite) TestVoucherConfirm_Expired() {
	b, _ := s.pending(s.voucher)

	res, err := s.confirm(s.voucher, b, payment.ExternalEvent{
		Validation: &payment.VoucherValidation{AgencyCode: "AG", TransactionID: "TX", Admin: s.bb.GuestID},
		At:         s.bb.Now.Add(validity + time.Minute),
	})

	s.Require().NoError(err)
	s.True(res.Expired)
	s.False(res.Captured)
	var stored *booking.Booking
	s.Require().NoError(s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		stored, err = tx.Bookings().Get(ctx, b.ID())
		return err
	}))
	s.Equal(booking.StatusExpired, stored.Status())
}

func (s *AdapterTestSuite) TestVoucherVoid() {
	b, _ := s.pending(s.voucher)

	s.Require().NoError(s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return s.voucher.Void(ctx, tx, b, payment.VoidCancelled, s.bb.Now)
	}))

	var v *voucher.Voucher
	s.Require().NoError(s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		v, err = tx.Vouchers().GetByBooking(ctx, b.ID())
		return err
	}))
	s.Equal(voucher.StatusCancelled, v.Status())
}

func (s *AdapterTestSuite) TestAdaptersFor() {
	adapters := payment.NewAdapters(s.card, s.voucher)

	got, err := adapters.For(booking.MethodCashVoucher)
	s.Require().NoError(err)
	s.Equal(booking.MethodCashVoucher, got.Method())

	_, err = payment.NewAdapters(s.card).For(booking.MethodCashVoucher)
	s.ErrorIs(err, payment.ErrUnsupportedMethod)
}

func TestAdapterTestSuite(t *testing.T) {
	suite.Run(t, new(AdapterTestSuite))
}
