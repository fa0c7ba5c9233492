package converter

import (
	"rental-escrow/internal/domain/escrow"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/pkg/pgconv"
	"rental-escrow/internal/usecase/shared"
)

func EscrowToRow(e *escrow.Escrow) pgq.Escrows {
	s := e.Snapshot()
	row := pgq.Escrows{
		ID:                s.ID,
		BookingID:         s.BookingID,
		HeldAmount:        pgconv.DecimalToNumeric(s.Held.Amount()),
		Currency:          s.Held.Currency(),
		Status:            s.Status.String(),
		ReleaseEligibleAt: pgconv.TimeToPgtype(s.ReleaseEligibleAt),
		ReleaseRef:        pgconv.StringPtrToPgtype(s.ReleaseRef),
		ReleasedAt:        pgconv.TimePtrToPgtype(s.ReleasedAt),
		ReleasedBy:        pgconv.UUIDPtrToPgtype(s.ReleasedBy),
		FreezeReason:      pgconv.StringPtrToPgtype(s.FreezeReason),
		FrozenAt:          pgconv.TimePtrToPgtype(s.FrozenAt),
		FrozenBy:          pgconv.UUIDPtrToPgtype(s.FrozenBy),
		CreatedAt:         pgconv.TimeToPgtype(s.CreatedAt),
		UpdatedAt:         pgconv.TimeToPgtype(s.UpdatedAt),
	}
	if sp := s.Split; sp != nil {
		row.HostShare = pgconv.DecimalToNumeric(sp.HostShare.Amount())
		row.GuestShare = pgconv.DecimalToNumeric(sp.GuestShare.Amount())
		row.ResolvedBy = pgconv.UUIDToPgtype(sp.ResolvedBy)
		row.ResolvedAt = pgconv.TimeToPgtype(sp.ResolvedAt)
	}
	return row
}

func EscrowToStateParams(e *escrow.Escrow, expected escrow.Status) pgq.UpdateEscrowStateParams {
	row := EscrowToRow(e)
	return pgq.UpdateEscrowStateParams{
		ID:             row.ID,
		ExpectedStatus: expected.String(),
		Status:         row.Status,
		ReleaseRef:     row.ReleaseRef,
		ReleasedAt:     row.ReleasedAt,
		ReleasedBy:     row.ReleasedBy,
		FreezeReason:   row.FreezeReason,
		FrozenAt:       row.FrozenAt,
		FrozenBy:       row.FrozenBy,
		HostShare:      row.HostShare,
		GuestShare:     row.GuestShare,
		ResolvedBy:     row.ResolvedBy,
		ResolvedAt:     row.ResolvedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func EscrowFromRow(row pgq.Escrows) (*escrow.Escrow, error) {
	held, err := MoneyFromNumeric(row.HeldAmount, row.Currency)
	if err != nil {
		return nil, err
	}
	status, err := escrow.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrCorruptRow)
	}
	snap := escrow.Snapshot{
		ID:                row.ID,
		BookingID:         row.BookingID,
		Held:              held,
		Status:            status,
		ReleaseEligibleAt: pgconv.TimeFromPgtype(row.ReleaseEligibleAt),
		ReleaseRef:        pgconv.StringPtrFromPgtype(row.ReleaseRef),
		ReleasedAt:        pgconv.TimePtrFromPgtype(row.ReleasedAt),
		ReleasedBy:        pgconv.UUIDPtrFromPgtype(row.ReleasedBy),
		FreezeReason:      pgconv.StringPtrFromPgtype(row.FreezeReason),
		FrozenAt:          pgconv.TimePtrFromPgtype(row.FrozenAt),
		FrozenBy:          pgconv.UUIDPtrFromPgtype(row.FrozenBy),
		CreatedAt:         pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:         pgconv.TimeFromPgtype(row.UpdatedAt),
	}
	if row.ResolvedAt.Valid {
		host, err := MoneyFromNumeric(row.HostShare, row.Currency)
		if err != nil {
			return nil, err
		}
		guest, err := MoneyFromNumeric(row.GuestShare, row.Currency)
		if err != nil {
			return nil, err
		}
		snap.Split = &escrow.Split{
			HostShare:  host,
			GuestShare: guest,
			ResolvedBy: uuidOrNil(row.ResolvedBy),
			ResolvedAt: row.ResolvedAt.Time,
		}
	}
	return escrow.Reconstruct(snap), nil
}

func EscrowEventToRow(ev escrow.Event) pgq.EscrowEvents {
	row := pgq.EscrowEvents{
		ID:        ev.ID,
		EscrowID:  ev.EscrowID,
		BookingID: ev.BookingID,
		Action:    string(ev.Action),
		ToStatus:  ev.ToStatus.String(),
		ActorID:   pgconv.UUIDPtrToPgtype(ev.Actor),
		Detail:    ev.Detail,
		CreatedAt: pgconv.TimeToPgtype(ev.At),
	}
	if ev.FromStatus != nil {
		row.FromStatus = pgconv.StringToPgtype(ev.FromStatus.String())
	}
	return row
}

func EscrowEventFromRow(row pgq.EscrowEvents) escrow.Event {
	ev := escrow.Event{
		ID:        row.ID,
		EscrowID:  row.EscrowID,
		BookingID: row.BookingID,
		Action:    escrow.Action(row.Action),
		ToStatus:  escrow.Status(row.ToStatus),
		Actor:     pgconv.UUIDPtrFromPgtype(row.ActorID),
		Detail:    row.Detail,
		At:        pgconv.TimeFromPgtype(row.CreatedAt),
	}
	if row.FromStatus.Valid {
		from := escrow.Status(row.FromStatus.String)
		ev.FromStatus = &from
	}
	return ev
}

// SettledEscrowFromRow picks the host amount for the settlement outcome: the full payout for a
// release, the resolved host share for a split.
func SettledEscrowFromRow(row pgq.ListUnpaidSettledEscrowsRow) (shared.SettledEscrow, error) {
	source := row.HostPayout
	if row.Status == escrow.StatusSplit.String() {
		source = row.HostShare
	}
	amount, err := MoneyFromNumeric(source, row.Currency)
	if err != nil {
		return shared.SettledEscrow{}, err
	}
	return shared.SettledEscrow{
		BookingID: row.BookingID,
		HostID:    row.HostID,
		Status:    row.Status,
		HostShare: amount,
	}, nil
}
