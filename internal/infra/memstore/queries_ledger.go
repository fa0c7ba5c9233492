package memstore

import (
	"cmp"
	"context"
	"slices"

	"rental-escrow/internal/domain/dispute"
	"rental-escrow/internal/infra/pgq"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ---- disputes ----

func (q *txQueries) CreateDispute(_ context.Context, _ pgq.DBTX, arg pgq.Disputes) error {
	if _, ok := q.t.bookings[arg.BookingID]; !ok {
		return errForeignKey
	}
	if _, ok := q.t.disputes[arg.ID]; ok {
		return errUniqueViolation
	}
	if dispute.Status(arg.Status).IsOpen() {
		for _, d := range q.t.disputes {
			if d.BookingID == arg.BookingID && dispute.Status(d.Status).IsOpen() {
				return errUniqueViolation
			}
		}
	}
	q.t.disputes[arg.ID] = arg
	return nil
}

func (q *txQueries) GetDispute(_ context.Context, _ pgq.DBTX, id uuid.UUID) (pgq.Disputes, error) {
	d, ok := q.t.disputes[id]
	if !ok {
		return pgq.Disputes{}, pgx.ErrNoRows
	}
	return d, nil
}

func (q *txQueries) GetDisputeForUpdate(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Disputes, error) {
	return q.GetDispute(ctx, db, id)
}

func (q *txQueries) HasOpenDispute(_ context.Context, _ pgq.DBTX, bookingID uuid.UUID) (bool, error) {
	for _, d := range q.t.disputes {
		if d.BookingID == bookingID && dispute.Status(d.Status).IsOpen() {
			return true, nil
		}
	}
	return false, nil
}

func (q *txQueries) ListDisputesByBooking(_ context.Context, _ pgq.DBTX, bookingID uuid.UUID) ([]pgq.Disputes, error) {
	var out []pgq.Disputes
	for _, d := range q.t.disputes {
		if d.BookingID == bookingID {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b pgq.Disputes) int { return b.CreatedAt.Time.Compare(a.CreatedAt.Time) })
	return out, nil
}

func (q *txQueries) UpdateDisputeState(_ context.Context, _ pgq.DBTX, arg pgq.UpdateDisputeStateParams) (int64, error) {
	d, ok := q.t.disputes[arg.ID]
	if !ok || d.Status != arg.ExpectedStatus {
		return 0, nil
	}
	d.Status = arg.Status
	d.Resolution = arg.Resolution
	d.ResolvedBy = arg.ResolvedBy
	d.ResolvedAt = arg.ResolvedAt
	d.HostShareRatio = arg.HostShareRatio
	d.UpdatedAt = arg.UpdatedAt
	q.t.disputes[arg.ID] = d
	return 1, nil
}

func (q *txQueries) InsertDisputeNote(_ context.Context, _ pgq.DBTX, arg pgq.DisputeNotes) error {
	if _, ok := q.t.disputes[arg.DisputeID]; !ok {
		return errForeignKey
	}
	q.t.disputeNotes[arg.DisputeID] = append(q.t.disputeNotes[arg.DisputeID], arg)
	return nil
}

func (q *txQueries) ListDisputeNotes(_ context.Context, _ pgq.DBTX, disputeID uuid.UUID) ([]pgq.DisputeNotes, error) {
	return slices.Clone(q.t.disputeNotes[disputeID]), nil
}

func (q *txQueries) InsertDisputeEvidence(_ context.Context, _ pgq.DBTX, arg pgq.DisputeEvidence) error {
	if _, ok := q.t.disputes[arg.DisputeID]; !ok {
		return errForeignKey
	}
	q.t.evidence[arg.DisputeID] = append(q.t.evidence[arg.DisputeID], arg)
	return nil
}

func (q *txQueries) ListDisputeEvidence(_ context.Context, _ pgq.DBTX, disputeID uuid.UUID) ([]pgq.DisputeEvidence, error) {
	return slices.Clone(q.t.evidence[disputeID]), nil
}

// ---- commission ----

func (q *txQueries) ListCommissionRates(_ context.Context, _ pgq.DBTX) ([]pgq.CommissionRates, error) {
	out := make([]pgq.CommissionRates, 0, len(q.t.rates))
	for _, r := range q.t.rates {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b pgq.CommissionRates) int { return cmp.Compare(a.Category, b.Category) })
	return out, nil
}

func (q *txQueries) GetCommissionRateForUpdate(_ context.Context, _ pgq.DBTX, category string) (pgq.CommissionRates, error) {
	r, ok := q.t.rates[category]
	if !ok {
		return pgq.CommissionRates{}, pgx.ErrNoRows
	}
	return r, nil
}

func (q *txQueries) UpdateCommissionRate(_ context.Context, _ pgq.DBTX, arg pgq.UpdateCommissionRateParams) (int64, error) {
	r, ok := q.t.rates[arg.Category]
	if !ok || r.Version != arg.ExpectedVersion {
		return 0, nil
	}
	r.Value = arg.Value
	r.Version = arg.Version
	r.UpdatedBy = arg.UpdatedBy
	r.UpdatedAt = arg.UpdatedAt
	q.t.rates[arg.Category] = r
	return 1, nil
}

func (q *txQueries) InsertCommissionHistory(_ context.Context, _ pgq.DBTX, arg pgq.InsertCommissionHistoryParams) error {
	q.t.rateHistory = append(q.t.rateHistory, pgq.CommissionRateHistory{
		ID:            int64(len(q.t.rateHistory) + 1),
		Category:      arg.Category,
		PreviousValue: arg.PreviousValue,
		NewValue:      arg.NewValue,
		ChangedBy:     arg.ChangedBy,
		ChangedAt:     arg.ChangedAt,
		Reason:        arg.Reason,
	})
	return nil
}

func (q *txQueries) ListCommissionHistory(_ context.Context, _ pgq.DBTX, category string, limit int32) ([]pgq.CommissionRateHistory, error) {
	var out []pgq.CommissionRateHistory
	for i := len(q.t.rateHistory) - 1; i >= 0 && len(out) < int(limit); i-- {
		if h := q.t.rateHistory[i]; h.Category == category {
			out = append(out, h)
		}
	}
	return out, nil
}

// ---- payment events and idempotency ----

func (q *txQueries) InsertPaymentEvent(_ context.Context, _ pgq.DBTX, arg pgq.InsertPaymentEventParams) (int64, error) {
	key := paymentEventKey{provider: arg.Provider, eventID: arg.EventID}
	if _, ok := q.t.paymentEvents[key]; ok {
		return 0, nil
	}
	q.t.paymentEvents[key] = arg
	return 1, nil
}

func (q *txQueries) InsertIdempotencyKey(_ context.Context, _ pgq.DBTX, arg pgq.InsertIdempotencyKeyParams) (int64, error) {
	key := idempotencyKey{key: arg.Key, userID: arg.UserID}
	if existing, ok := q.t.idempotency[key]; ok && !before(existing.ExpiresAt, arg.Now) {
		return 0, nil
	}
	q.t.idempotency[key] = pgq.IdempotencyKeys{
		Key:         arg.Key,
		UserID:      arg.UserID,
		Endpoint:    arg.Endpoint,
		RequestHash: arg.RequestHash,
		Status:      "processing",
		ExpiresAt:   arg.ExpiresAt,
	}
	return 1, nil
}

func (q *txQueries) GetIdempotencyKey(_ context.Context, _ pgq.DBTX, key, userID uuid.UUID) (pgq.IdempotencyKeys, error) {
	row, ok := q.t.idempotency[idempotencyKey{key: key, userID: userID}]
	if !ok {
		return pgq.IdempotencyKeys{}, pgx.ErrNoRows
	}
	return row, nil
}

func (q *txQueries) CompleteIdempotencyKey(_ context.Context, _ pgq.DBTX, key, userID, bookingID uuid.UUID) (int64, error) {
	k := idempotencyKey{key: key, userID: userID}
	row, ok := q.t.idempotency[k]
	if !ok || row.Status != "processing" {
		return 0, nil
	}
	row.Status = "completed"
	row.ResultBookingID = pgtype.UUID{Bytes: bookingID, Valid: true}
	q.t.idempotency[k] = row
	return 1, nil
}

// ---- payouts ----

func (q *txQueries) CreatePayoutRequest(_ context.Context, _ pgq.DBTX, arg pgq.PayoutRequests) error {
	if _, ok := q.t.payouts[arg.ID]; ok {
		return errUniqueViolation
	}
	q.t.payouts[arg.ID] = arg
	return nil
}

func (q *txQueries) InsertPayoutItem(_ context.Context, _ pgq.DBTX, arg pgq.PayoutItems) error {
	if _, ok := q.t.payouts[arg.PayoutID]; !ok {
		return errForeignKey
	}
	if _, ok := q.t.payoutItems[arg.BookingID]; ok {
		return errUniqueViolation
	}
	q.t.payoutItems[arg.BookingID] = arg
	return nil
}

func (q *txQueries) ListPayoutRequests(_ context.Context, _ pgq.DBTX, hostID pgtype.UUID, limit int32) ([]pgq.PayoutRequests, error) {
	var out []pgq.PayoutRequests
	for _, p := range q.t.payouts {
		if !hostID.Valid || p.HostID == hostID.Bytes {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b pgq.PayoutRequests) int { return b.CreatedAt.Time.Compare(a.CreatedAt.Time) })
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

func (q *txQueries) ListPayoutItems(_ context.Context, _ pgq.DBTX, payoutIDs []uuid.UUID) ([]pgq.PayoutItems, error) {
	var out []pgq.PayoutItems
	for _, it := range q.t.payoutItems {
		if slices.Contains(payoutIDs, it.PayoutID) {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b pgq.PayoutItems) int {
		if c := compareUUID(a.PayoutID, b.PayoutID); c != 0 {
			return c
		}
		return compareUUID(a.BookingID, b.BookingID)
	})
	return out, nil
}

func compareUUID(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}
