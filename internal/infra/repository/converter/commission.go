package converter

import (
	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/pgconv"
)

func CommissionRateFromRow(row pgq.CommissionRates) (*commission.Rate, error) {
	category, err := commission.NewCategory(row.Category)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	value, err := pgconv.NumericToDecimal(row.Value)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	lo, err := pgconv.NumericToDecimal(row.MinValue)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	hi, err := pgconv.NumericToDecimal(row.MaxValue)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	return commission.ReconstructRate(
		category,
		value,
		lo,
		hi,
		row.Version,
		pgconv.UUIDPtrFromPgtype(row.UpdatedBy),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func CommissionRateToUpdateParams(r *commission.Rate, expectedVersion int64) pgq.UpdateCommissionRateParams {
	return pgq.UpdateCommissionRateParams{
		Category:        r.Category().String(),
		ExpectedVersion: expectedVersion,
		Value:           pgconv.DecimalToNumeric(r.Value()),
		Version:         r.Version(),
		UpdatedBy:       pgconv.UUIDPtrToPgtype(r.UpdatedBy()),
		UpdatedAt:       pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func CommissionHistoryToParams(e commission.HistoryEntry) pgq.InsertCommissionHistoryParams {
	return pgq.InsertCommissionHistoryParams{
		Category:      e.Category.String(),
		PreviousValue: pgconv.DecimalToNumeric(e.PreviousValue),
		NewValue:      pgconv.DecimalToNumeric(e.NewValue),
		ChangedBy:     e.ChangedBy,
		ChangedAt:     pgconv.TimeToPgtype(e.ChangedAt),
		Reason:        e.Reason,
	}
}

func CommissionHistoryFromRow(row pgq.CommissionRateHistory) (commission.HistoryEntry, error) {
	prev, err := pgconv.NumericToDecimal(row.PreviousValue)
	if err != nil {
		return commission.HistoryEntry{}, errs.Mark(err, ErrCorruptRow)
	}
	next, err := pgconv.NumericToDecimal(row.NewValue)
	if err != nil {
		return commission.HistoryEntry{}, errs.Mark(err, ErrCorruptRow)
	}
	return commission.HistoryEntry{
		Category:      commission.Category(row.Category),
		PreviousValue: prev,
		NewValue:      next,
		ChangedBy:     row.ChangedBy,
		ChangedAt:     pgconv.TimeFromPgtype(row.ChangedAt),
		Reason:        row.Reason,
	}, nil
}
