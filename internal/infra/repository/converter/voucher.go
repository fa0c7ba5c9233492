package converter

import (
	"rental-escrow/internal/domain/voucher"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/pgconv"
)

func VoucherToRow(v *voucher.Voucher) pgq.CashVouchers {
	row := pgq.CashVouchers{
		ID:           v.ID(),
		BookingID:    v.BookingID(),
		Number:       v.Number(),
		Amount:       pgconv.DecimalToNumeric(v.Amount().Amount()),
		Currency:     v.Amount().Currency(),
		ExpiresAt:    pgconv.TimeToPgtype(v.ExpiresAt()),
		Status:       v.Status().String(),
		Instructions: v.Instructions(),
		CreatedAt:    pgconv.TimeToPgtype(v.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(v.UpdatedAt()),
	}
	if val := v.Validation(); val != nil {
		row.AgencyCode = pgconv.StringToPgtype(val.AgencyCode)
		row.TransactionID = pgconv.StringToPgtype(val.TransactionID)
		row.ValidatedBy = pgconv.UUIDToPgtype(val.ValidatedBy)
		row.ValidatedAt = pgconv.TimeToPgtype(val.ValidatedAt)
		row.Notes = pgconv.OptionalStringToPgtype(val.Notes)
	}
	return row
}

func VoucherToStateParams(v *voucher.Voucher, expected voucher.Status) pgq.UpdateVoucherStateParams {
	row := VoucherToRow(v)
	return pgq.UpdateVoucherStateParams{
		ID:             row.ID,
		ExpectedStatus: expected.String(),
		Status:         row.Status,
		AgencyCode:     row.AgencyCode,
		TransactionID:  row.TransactionID,
		ValidatedBy:    row.ValidatedBy,
		ValidatedAt:    row.ValidatedAt,
		Notes:          row.Notes,
		UpdatedAt:      row.UpdatedAt,
	}
}

func VoucherFromRow(row pgq.CashVouchers) (*voucher.Voucher, error) {
	amount, err := MoneyFromNumeric(row.Amount, row.Currency)
	if err != nil {
		return nil, err
	}
	status, err := voucher.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	var validation *voucher.Validation
	if row.ValidatedAt.Valid {
		validation = &voucher.Validation{
			AgencyCode:    pgconv.StringFromPgtype(row.AgencyCode),
			TransactionID: pgconv.StringFromPgtype(row.TransactionID),
			ValidatedBy:   uuidOrNil(row.ValidatedBy),
			ValidatedAt:   row.ValidatedAt.Time,
			Notes:         pgconv.StringFromPgtype(row.Notes),
		}
	}
	return voucher.ReconstructVoucher(
		row.ID,
		row.BookingID,
		row.Number,
		amount,
		pgconv.TimeFromPgtype(row.ExpiresAt),
		status,
		row.Instructions,
		validation,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
