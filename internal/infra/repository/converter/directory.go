package converter

import (
	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/pgconv"
	"rental-escrow/internal/usecase/shared"
)

func ListingFromRow(row pgq.Listings) (*shared.ListingSnapshot, error) {
	nightly, err := MoneyFromNumeric(row.NightlyPrice, row.Currency)
	if err != nil {
		return nil, err
	}
	cleaning, err := MoneyFromNumeric(row.CleaningFee, row.Currency)
	if err != nil {
		return nil, err
	}
	deposit, err := MoneyFromNumeric(row.SecurityDeposit, row.Currency)
	if err != nil {
		return nil, err
	}
	return &shared.ListingSnapshot{
		ID:                 row.ID,
		HostID:             row.HostID,
		Title:              row.Title,
		Status:             row.Status,
		Category:           row.Category,
		NightlyPrice:       nightly,
		CleaningFee:        cleaning,
		SecurityDeposit:    deposit,
		MinStay:            int(row.MinStay),
		MaxStay:            int(row.MaxStay),
		MaxGuests:          int(row.MaxGuests),
		CheckInTime:        row.CheckInTime,
		CheckOutTime:       row.CheckOutTime,
		TimeZone:           row.TimeZone,
		InstantBook:        row.InstantBook,
		CancellationPolicy: row.CancellationPolicy,
	}, nil
}

func UserFromRow(row pgq.Users) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	phone, err := user.NewPhone(pgconv.StringFromPgtype(row.Phone))
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	return user.NewUser(row.ID, email, row.FullName, phone, role), nil
}

func BankAccountFromRow(row pgq.HostBankAccounts) *shared.BankAccountSnapshot {
	return &shared.BankAccountSnapshot{
		ID:        row.ID,
		HostID:    row.HostID,
		Holder:    row.Holder,
		Last4:     row.Last4,
		IsDefault: row.IsDefault,
	}
}
