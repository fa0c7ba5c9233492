// Package memstore is an in-process stand-in for Postgres. It serves the same query interfaces
// as pgq, so the repositories, converters and read stores run unchanged on top of it; a unit of
// work operates on a private copy of the tables and publishes it on commit.
package memstore

import (
	"maps"
	"slices"

	"rental-escrow/internal/infra/pgq"

	"github.com/google/uuid"
)

type idempotencyKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type paymentEventKey struct {
	provider string
	eventID  string
}

type tables struct {
	bookings      map[uuid.UUID]pgq.Bookings
	vouchers      map[uuid.UUID]pgq.CashVouchers
	escrows       map[uuid.UUID]pgq.Escrows // keyed by booking id
	escrowEvents  []pgq.EscrowEvents
	disputes      map[uuid.UUID]pgq.Disputes
	disputeNotes  map[uuid.UUID][]pgq.DisputeNotes
	evidence      map[uuid.UUID][]pgq.DisputeEvidence
	rates         map[string]pgq.CommissionRates
	rateHistory   []pgq.CommissionRateHistory
	payouts       map[uuid.UUID]pgq.PayoutRequests
	payoutItems   map[uuid.UUID]pgq.PayoutItems // keyed by booking id
	paymentEvents map[paymentEventKey]pgq.InsertPaymentEventParams
	idempotency   map[idempotencyKey]pgq.IdempotencyKeys
}

func newTables() *tables {
	return &tables{
		bookings:      map[uuid.UUID]pgq.Bookings{},
		vouchers:      map[uuid.UUID]pgq.CashVouchers{},
		escrows:       map[uuid.UUID]pgq.Escrows{},
		disputes:      map[uuid.UUID]pgq.Disputes{},
		disputeNotes:  map[uuid.UUID][]pgq.DisputeNotes{},
		evidence:      map[uuid.UUID][]pgq.DisputeEvidence{},
		rates:         map[string]pgq.CommissionRates{},
		payouts:       map[uuid.UUID]pgq.PayoutRequests{},
		payoutItems:   map[uuid.UUID]pgq.PayoutItems{},
		paymentEvents: map[paymentEventKey]pgq.InsertPaymentEventParams{},
		idempotency:   map[idempotencyKey]pgq.IdempotencyKeys{},
	}
}

// clone copies every table. Rows are plain values, so copying the maps and slices is enough.
func (t *tables) clone() *tables {
	c := &tables{
		bookings:      maps.Clone(t.bookings),
		vouchers:      maps.Clone(t.vouchers),
		escrows:       maps.Clone(t.escrows),
		escrowEvents:  slices.Clone(t.escrowEvents),
		disputes:      maps.Clone(t.disputes),
		disputeNotes:  make(map[uuid.UUID][]pgq.DisputeNotes, len(t.disputeNotes)),
		evidence:      make(map[uuid.UUID][]pgq.DisputeEvidence, len(t.evidence)),
		rates:         maps.Clone(t.rates),
		rateHistory:   slices.Clone(t.rateHistory),
		payouts:       maps.Clone(t.payouts),
		payoutItems:   maps.Clone(t.payoutItems),
		paymentEvents: maps.Clone(t.paymentEvents),
		idempotency:   maps.Clone(t.idempotency),
	}
	for id, notes := range t.disputeNotes {
		c.disputeNotes[id] = slices.Clone(notes)
	}
	for id, ev := range t.evidence {
		c.evidence[id] = slices.Clone(ev)
	}
	return c
}
