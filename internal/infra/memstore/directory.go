package memstore

import (
	"context"
	"sync"
	"time"

	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/readstore"
	"rental-escrow/internal/pkg/pgconv"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type blockedRange struct {
	listingID uuid.UUID
	start     pgtype.Date
	end       pgtype.Date
}

// directory holds the replica tables that other services own.
type directory struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]pgq.Listings
	users    map[uuid.UUID]pgq.Users
	accounts map[uuid.UUID]pgq.HostBankAccounts // keyed by host id, default account only
	blocked  []blockedRange
}

func newDirectory() *directory {
	return &directory{
		listings: map[uuid.UUID]pgq.Listings{},
		users:    map[uuid.UUID]pgq.Users{},
		accounts: map[uuid.UUID]pgq.HostBankAccounts{},
	}
}

// Directory returns the lookups for listings, users, bank accounts and calendar availability.
func (s *Store) Directory() *readstore.DirectoryReadStore {
	return readstore.NewDirectoryReadStore(&dirQueries{s: s}, nil)
}

func (s *Store) SeedListing(l shared.ListingSnapshot) {
	s.dir.mu.Lock()
	defer s.dir.mu.Unlock()
	s.dir.listings[l.ID] = pgq.Listings{
		ID:                 l.ID,
		HostID:             l.HostID,
		Title:              l.Title,
		Status:             l.Status,
		Category:           l.Category,
		Currency:           l.NightlyPrice.Currency(),
		NightlyPrice:       pgconv.DecimalToNumeric(l.NightlyPrice.Amount()),
		CleaningFee:        pgconv.DecimalToNumeric(l.CleaningFee.Amount()),
		SecurityDeposit:    pgconv.DecimalToNumeric(l.SecurityDeposit.Amount()),
		MinStay:            int32(l.MinStay),
		MaxStay:            int32(l.MaxStay),
		MaxGuests:          int32(l.MaxGuests),
		CheckInTime:        l.CheckInTime,
		CheckOutTime:       l.CheckOutTime,
		TimeZone:           l.TimeZone,
		InstantBook:        l.InstantBook,
		CancellationPolicy: l.CancellationPolicy,
	}
}

func (s *Store) SeedUser(u *user.User) {
	s.dir.mu.Lock()
	defer s.dir.mu.Unlock()
	s.dir.users[u.ID()] = pgq.Users{
		ID:       u.ID(),
		Email:    u.Email().Value(),
		FullName: u.FullName(),
		Phone:    pgconv.OptionalStringToPgtype(u.Phone().Value()),
		Role:     u.Role().String(),
	}
}

func (s *Store) SeedBankAccount(a shared.BankAccountSnapshot) {
	s.dir.mu.Lock()
	defer s.dir.mu.Unlock()
	s.dir.accounts[a.HostID] = pgq.HostBankAccounts{
		ID:        a.ID,
		HostID:    a.HostID,
		Holder:    a.Holder,
		Last4:     a.Last4,
		IsDefault: true,
	}
}

// BlockDates marks [from, to) unavailable on the host calendar.
func (s *Store) BlockDates(listingID uuid.UUID, from, to time.Time) {
	s.dir.mu.Lock()
	defer s.dir.mu.Unlock()
	s.dir.blocked = append(s.dir.blocked, blockedRange{
		listingID: listingID,
		start:     pgconv.DateToPgtype(from),
		end:       pgconv.DateToPgtype(to),
	})
}

func (d *directory) hasDefaultAccount(hostID uuid.UUID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.accounts[hostID]
	return ok
}

type dirQueries struct {
	s *Store
}

func (q *dirQueries) GetListing(_ context.Context, _ pgq.DBTX, id uuid.UUID) (pgq.Listings, error) {
	q.s.dir.mu.RLock()
	defer q.s.dir.mu.RUnlock()
	l, ok := q.s.dir.listings[id]
	if !ok {
		return pgq.Listings{}, pgx.ErrNoRows
	}
	return l, nil
}

func (q *dirQueries) GetUser(_ context.Context, _ pgq.DBTX, id uuid.UUID) (pgq.Users, error) {
	q.s.dir.mu.RLock()
	defer q.s.dir.mu.RUnlock()
	u, ok := q.s.dir.users[id]
	if !ok {
		return pgq.Users{}, pgx.ErrNoRows
	}
	return u, nil
}

func (q *dirQueries) GetDefaultBankAccount(_ context.Context, _ pgq.DBTX, hostID uuid.UUID) (pgq.HostBankAccounts, error) {
	q.s.dir.mu.RLock()
	defer q.s.dir.mu.RUnlock()
	a, ok := q.s.dir.accounts[hostID]
	if !ok {
		return pgq.HostBankAccounts{}, pgx.ErrNoRows
	}
	return a, nil
}

func (q *dirQueries) CountBlockedRanges(_ context.Context, _ pgq.DBTX, listingID uuid.UUID, checkIn, checkOut pgtype.Date) (int64, error) {
	q.s.dir.mu.RLock()
	defer q.s.dir.mu.RUnlock()
	var n int64
	for _, b := range q.s.dir.blocked {
		if b.listingID == listingID && rangesOverlap(b.start, b.end, checkIn, checkOut) {
			n++
		}
	}
	return n, nil
}

// CountOverlappingBookings sees committed bookings only, like a query on the pool would.
func (q *dirQueries) CountOverlappingBookings(ctx context.Context, db pgq.DBTX, listingID uuid.UUID, checkIn, checkOut pgtype.Date) (int64, error) {
	committed := &txQueries{t: q.s.snapshot()}
	return committed.CountOverlappingBookings(ctx, db, listingID, checkIn, checkOut)
}
