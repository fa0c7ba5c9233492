package payment

import (
	"context"
	"errors"
	"time"

	"rental-escrow/internal/domain/booking"
	"rental-escrow/internal/domain/voucher"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/shared"
)

type VoucherAdapter struct {
	ledger       *ledger.Ledger
	validity     time.Duration
	instructions string
	releaseGrace time.Duration
	numbers      func() (string, error)
}

func NewVoucherAdapter(l *ledger.Ledger, validity time.Duration, instructions string, releaseGrace time.Duration) *VoucherAdapter {
	return &VoucherAdapter{
		ledger:       l,
		validity:     validity,
		instructions: instructions,
		releaseGrace: releaseGrace,
		numbers:      voucher.GenerateNumber,
	}
}

func (a *VoucherAdapter) Method() booking.PaymentMethod {
	return booking.MethodCashVoucher
}

// Initiate issues the voucher in the booking's transaction; if the insert fails the booking is
// rolled back with it.
func (a *VoucherAdapter) Initiate(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) (*Handle, error) {
	number, err := a.numbers()
	if err != nil {
		return nil, err
	}
	v, err := voucher.NewVoucher(b.ID(), number, b.Pricing().TotalAmount, now, a.validity, a.instructions)
	if err != nil {
		return nil, err
	}
	if err := tx.Vouchers().Create(ctx, v); err != nil {
		return nil, errs.Wrap(err, "failed to issue voucher")
	}
	if err := b.AttachPayment(booking.VoucherPayment{VoucherID: v.ID()}, v.ExpiresAt()); err != nil {
		return nil, err
	}
	return &Handle{
		Method:    booking.MethodCashVoucher,
		Reference: v.ID().String(),
		Voucher: &VoucherDetails{
			ID:           v.ID(),
			Number:       v.Number(),
			Amount:       v.Amount(),
			ExpiresAt:    v.ExpiresAt(),
			Instructions: v.Instructions(),
		},
		Deadline: v.ExpiresAt(),
	}, nil
}

// Confirm validates the voucher. An expired voucher expires the booking too and reports
// Expired without an error, so the caller commits that outcome.
func (a *VoucherAdapter) Confirm(ctx context.Context, tx shared.Tx, b *booking.Booking, ev ExternalEvent) (CaptureResult, error) {
	if ev.Validation == nil {
		return CaptureResult{}, ErrValidationMissing
	}
	v, err := a.lockVoucher(ctx, tx, b)
	if err != nil {
		return CaptureResult{}, err
	}
	now := ev.At

	if v.Status() == voucher.StatusValidated && b.Status() != booking.StatusPendingPayment {
		return CaptureResult{AlreadyApplied: true}, nil
	}
	if v.IsExpired(now) || b.IsPaymentOverdue(now) {
		if err := a.expire(ctx, tx, b, v, now); err != nil {
			return CaptureResult{}, err
		}
		return CaptureResult{Expired: true}, nil
	}
	if b.Status() != booking.StatusPendingPayment {
		return CaptureResult{}, errs.Wrap(ErrVoucherRejected, "booking is no longer awaiting payment")
	}

	err = v.Validate(ev.Validation.AgencyCode, ev.Validation.TransactionID, ev.Validation.Admin, ev.Validation.Notes, now)
	if err != nil {
		return CaptureResult{}, errs.Mark(err, ErrVoucherRejected)
	}
	if err := tx.Vouchers().Update(ctx, v, voucher.StatusPending); err != nil {
		return CaptureResult{}, err
	}

	hold, err := capture(ctx, tx, a.ledger, b, a.releaseGrace, now)
	if err != nil {
		return CaptureResult{}, err
	}
	return CaptureResult{Captured: true, Escrow: hold}, nil
}

func (a *VoucherAdapter) IsExpired(b *booking.Booking, now time.Time) bool {
	return b.IsPaymentOverdue(now)
}

func (a *VoucherAdapter) Void(ctx context.Context, tx shared.Tx, b *booking.Booking, reason VoidReason, now time.Time) error {
	v, err := a.lockVoucher(ctx, tx, b)
	if err != nil {
		if errors.Is(err, ErrVoucherNotFound) {
			return nil
		}
		return err
	}
	if v.Status() != voucher.StatusPending {
		return nil
	}
	if reason == VoidExpired {
		err = v.Expire(now)
	} else {
		err = v.Cancel(now)
	}
	if err != nil {
		return err
	}
	return tx.Vouchers().Update(ctx, v, voucher.StatusPending)
}

// Compensate has nothing to undo: the voucher row rolls back with the transaction.
func (a *VoucherAdapter) Compensate(context.Context, *Handle) {}

func (a *VoucherAdapter) lockVoucher(ctx context.Context, tx shared.Tx, b *booking.Booking) (*voucher.Voucher, error) {
	found, err := tx.Vouchers().GetByBooking(ctx, b.ID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	v, err := tx.Vouchers().GetForUpdate(ctx, found.ID())
	if err != nil {
		return nil, errs.Wrap(err, "failed to lock voucher")
	}
	return v, nil
}

func (a *VoucherAdapter) expire(ctx context.Context, tx shared.Tx, b *booking.Booking, v *voucher.Voucher, now time.Time) error {
	if v.Status() == voucher.StatusPending {
		if err := v.Expire(now); err != nil {
			return err
		}
		if err := tx.Vouchers().Update(ctx, v, voucher.StatusPending); err != nil {
			return err
		}
	}
	if b.Status() != booking.StatusPendingPayment {
		return nil
	}
	if err := b.Expire(now); err != nil {
		return err
	}
	return tx.Bookings().Update(ctx, b, booking.StatusPendingPayment)
}
