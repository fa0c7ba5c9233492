package repository

import (
	"context"

	"rental-escrow/internal/domain/voucher"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type VoucherQueries interface {
	CreateVoucher(ctx context.Context, db pgq.DBTX, arg pgq.CashVouchers) error
	GetVoucher(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.CashVouchers, error)
	GetVoucherForUpdate(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.CashVouchers, error)
	GetVoucherByBooking(ctx context.Context, db pgq.DBTX, bookingID uuid.UUID) (pgq.CashVouchers, error)
	UpdateVoucherState(ctx context.Context, db pgq.DBTX, arg pgq.UpdateVoucherStateParams) (int64, error)
}

type VoucherRepository struct {
	queries VoucherQueries
	db      pgq.DBTX
}

func NewVoucherRepository(queries VoucherQueries, db pgq.DBTX) *VoucherRepository {
	return &VoucherRepository{
		queries: queries,
		db:      db,
	}
}

func (r *VoucherRepository) Create(ctx context.Context, v *voucher.Voucher) error {
	if err := r.queries.CreateVoucher(ctx, r.db, converter.VoucherToRow(v)); err != nil {
		return infra.ClassifyPgErr("failed to create voucher", err)
	}
	return nil
}

func (r *VoucherRepository) Get(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	row, err := r.queries.GetVoucher(ctx, r.db, id)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to get voucher", err)
	}
	return toVoucher(row)
}

func (r *VoucherRepository) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*voucher.Voucher, error) {
	row, err := r.queries.GetVoucherByBooking(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to get voucher by booking", err)
	}
	return toVoucher(row)
}

func (r *VoucherRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	row, err := r.queries.GetVoucherForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to lock voucher", err)
	}
	return toVoucher(row)
}

func (r *VoucherRepository) Update(ctx context.Context, v *voucher.Voucher, expected voucher.Status) error {
	n, err := r.queries.UpdateVoucherState(ctx, r.db, converter.VoucherToStateParams(v, expected))
	if err != nil {
		return infra.ClassifyPgErr("failed to update voucher", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(infra.KindStaleState, "voucher status changed concurrently", nil)
	}
	return nil
}

func toVoucher(row pgq.CashVouchers) (*voucher.Voucher, error) {
	v, err := converter.VoucherFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert voucher row", err)
	}
	return v, nil
}
