package repository

import (
	"context"

	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/infra"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository/converter"
)

type CommissionQueries interface {
	ListCommissionRates(ctx context.Context, db pgq.DBTX) ([]pgq.CommissionRates, error)
	GetCommissionRateForUpdate(ctx context.Context, db pgq.DBTX, category string) (pgq.CommissionRates, error)
	UpdateCommissionRate(ctx context.Context, db pgq.DBTX, arg pgq.UpdateCommissionRateParams) (int64, error)
	InsertCommissionHistory(ctx context.Context, db pgq.DBTX, arg pgq.InsertCommissionHistoryParams) error
	ListCommissionHistory(ctx context.Context, db pgq.DBTX, category string, limit int32) ([]pgq.CommissionRateHistory, error)
}

type CommissionRepository struct {
	queries CommissionQueries
	db      pgq.DBTX
}

func NewCommissionRepository(queries CommissionQueries, db pgq.DBTX) *CommissionRepository {
	return &CommissionRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CommissionRepository) ListRates(ctx context.Context) ([]*commission.Rate, error) {
	rows, err := r.queries.ListCommissionRates(ctx, r.db)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list commission rates", err)
	}
	rates := make([]*commission.Rate, 0, len(rows))
	for _, row := range rows {
		rate, err := converter.CommissionRateFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert commission rate row", err)
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

func (r *CommissionRepository) GetForUpdate(ctx context.Context, c commission.Category) (*commission.Rate, error) {
	row, err := r.queries.GetCommissionRateForUpdate(ctx, r.db, c.String())
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to lock commission rate", err)
	}
	rate, err := converter.CommissionRateFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert commission rate row", err)
	}
	return rate, nil
}

func (r *CommissionRepository) Update(ctx context.Context, rate *commission.Rate, expectedVersion int64) error {
	n, err := r.queries.UpdateCommissionRate(ctx, r.db, converter.CommissionRateToUpdateParams(rate, expectedVersion))
	if err != nil {
		return infra.ClassifyPgErr("failed to update commission rate", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(infra.KindStaleState, "commission rate changed concurrently", nil)
	}
	return nil
}

func (r *CommissionRepository) AppendHistory(ctx context.Context, e commission.HistoryEntry) error {
	if err := r.queries.InsertCommissionHistory(ctx, r.db, converter.CommissionHistoryToParams(e)); err != nil {
		return infra.ClassifyPgErr("failed to append commission history", err)
	}
	return nil
}

func (r *CommissionRepository) History(ctx context.Context, c commission.Category, limit int) ([]commission.HistoryEntry, error) {
	rows, err := r.queries.ListCommissionHistory(ctx, r.db, c.String(), int32(limit))
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list commission history", err)
	}
	entries := make([]commission.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		e, err := converter.CommissionHistoryFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to convert commission history row", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
