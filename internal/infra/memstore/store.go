package memstore

import (
	"context"
	"sync"
	"time"

	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/repository"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/pgconv"
	"rental-escrow/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Store serializes write transactions. Each one works on a clone of the committed tables, which
// replaces the committed set only when fn returns nil.
type Store struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	committed *tables
	dir       *directory
	clock     clock.Clock
}

func New(clk clock.Clock) *Store {
	s := &Store{
		committed: newTables(),
		dir:       newDirectory(),
		clock:     clk,
	}
	s.seedRates()
	return s
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	work := s.snapshot()
	if err := fn(ctx, s.newTx(work)); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	return nil
}

// WithinReadOnly runs fn on a private snapshot; anything it writes is dropped.
func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, s.newTx(s.snapshot()))
}

func (s *Store) snapshot() *tables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed.clone()
}

func (s *Store) newTx(t *tables) *memTx {
	return &memTx{q: &txQueries{t: t, dir: s.dir}, now: s.clock.Now}
}

func (s *Store) seedRates() {
	now := pgconv.TimeToPgtype(s.clock.Now())
	seed := []struct {
		category      string
		value, lo, hi string
	}{
		{"default", "0.03", "0", "0.25"},
		{"stay", "0.03", "0", "0.25"},
		{"vehicle", "0.05", "0", "0.25"},
		{"luxury", "0.02", "0", "0.25"},
		{"guest_service", "0.08", "0", "0.20"},
	}
	for _, r := range seed {
		s.committed.rates[r.category] = rateRow(r.category, r.value, r.lo, r.hi, now)
	}
}

func rateRow(category, value, lo, hi string, at pgtype.Timestamptz) pgq.CommissionRates {
	return pgq.CommissionRates{
		Category:  category,
		Value:     pgconv.DecimalToNumeric(decimal.RequireFromString(value)),
		MinValue:  pgconv.DecimalToNumeric(decimal.RequireFromString(lo)),
		MaxValue:  pgconv.DecimalToNumeric(decimal.RequireFromString(hi)),
		Version:   1,
		UpdatedAt: at,
	}
}

type memTx struct {
	q   *txQueries
	now func() time.Time
}

func (t *memTx) Bookings() shared.BookingRepository {
	return repository.NewBookingRepository(t.q, nil)
}

func (t *memTx) Vouchers() shared.VoucherRepository {
	return repository.NewVoucherRepository(t.q, nil)
}

func (t *memTx) Escrows() shared.EscrowRepository {
	return repository.NewEscrowRepository(t.q, nil)
}

func (t *memTx) Disputes() shared.DisputeRepository {
	return repository.NewDisputeRepository(t.q, nil)
}

func (t *memTx) Commissions() shared.CommissionRepository {
	return repository.NewCommissionRepository(t.q, nil)
}

func (t *memTx) Payouts() shared.PayoutRepository {
	return repository.NewPayoutRepository(t.q, nil)
}

func (t *memTx) PaymentEvents() shared.PaymentEventRepository {
	return repository.NewPaymentEventRepository(t.q, nil)
}

func (t *memTx) Idempotency() shared.IdempotencyRepository {
	return repository.NewIdempotencyRepository(t.q, nil, t.now)
}
