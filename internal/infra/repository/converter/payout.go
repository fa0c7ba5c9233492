package converter

import (
	"rental-escrow/internal/domain/payout"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/pgconv"
)

func PayoutRequestToRow(r *payout.Request) pgq.PayoutRequests {
	return pgq.PayoutRequests{
		ID:            r.ID(),
		HostID:        r.HostID(),
		BankAccountID: r.BankAccountID(),
		Amount:        pgconv.DecimalToNumeric(r.Amount().Amount()),
		Currency:      r.Amount().Currency(),
		Status:        string(r.Status()),
		CreatedAt:     pgconv.TimeToPgtype(r.CreatedAt()),
	}
}

func PayoutItemsToRows(r *payout.Request) []pgq.PayoutItems {
	rows := make([]pgq.PayoutItems, 0, len(r.Items()))
	for _, it := range r.Items() {
		rows = append(rows, pgq.PayoutItems{
			PayoutID:  r.ID(),
			BookingID: it.BookingID,
			Amount:    pgconv.DecimalToNumeric(it.Amount.Amount()),
			Source:    string(it.Source),
		})
	}
	return rows
}

// PayoutRequestFromRow expects items already filtered to this request; they share its currency.
func PayoutRequestFromRow(row pgq.PayoutRequests, items []pgq.PayoutItems) (*payout.Request, error) {
	amount, err := MoneyFromNumeric(row.Amount, row.Currency)
	if err != nil {
		return nil, err
	}
	out := make([]payout.Item, 0, len(items))
	for _, it := range items {
		m, err := MoneyFromNumeric(it.Amount, row.Currency)
		if err != nil {
			return nil, err
		}
		out = append(out, payout.Item{BookingID: it.BookingID, Amount: m, Source: payout.Source(it.Source)})
	}
	return payout.ReconstructRequest(
		row.ID,
		row.HostID,
		row.BankAccountID,
		amount,
		payout.Status(row.Status),
		out,
		pgconv.TimeFromPgtype(row.CreatedAt),
	), nil
}
