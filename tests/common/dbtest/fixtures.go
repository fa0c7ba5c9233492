//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts a directory user and returns its id; an existing email is reused.
func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, full_name, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, strings.Split(email, "@")[0], role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID))
	}
	return userID
}

// ListingFixture is a stay listing priced in DZD.
type ListingFixture struct {
	HostID          uuid.UUID
	Title           string
	Category        string
	Currency        string
	NightlyPrice    string
	CleaningFee     string
	MaxGuests       int
	InstantBook     bool
	Policy          string
	CheckInTime     string
	CheckOutTime    string
	TimeZone        string
	MinStay         int
	MaxStay         int
	SecurityDeposit string
}

func DefaultListing(hostID uuid.UUID) ListingFixture {
	return ListingFixture{
		HostID:          hostID,
		Title:           "Algiers seaside flat",
		Category:        "stay",
		Currency:        "DZD",
		NightlyPrice:    "5000",
		CleaningFee:     "500",
		MaxGuests:       4,
		InstantBook:     true,
		Policy:          "moderate",
		CheckInTime:     "15:00",
		CheckOutTime:    "11:00",
		TimeZone:        "UTC",
		MinStay:         1,
		MaxStay:         30,
		SecurityDeposit: "0",
	}
}

func CreateTestListing(t *testing.T, db DBLike, l ListingFixture) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO listings (id, host_id, title, category, currency, nightly_price, cleaning_fee,
		    security_deposit, min_stay, max_stay, max_guests, check_in_time, check_out_time, time_zone,
		    instant_book, cancellation_policy)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8::numeric, $9, $10, $11, $12, $13, $14, $15, $16)`,
		id, l.HostID, l.Title, l.Category, l.Currency, l.NightlyPrice, l.CleaningFee, l.SecurityDeposit,
		l.MinStay, l.MaxStay, l.MaxGuests, l.CheckInTime, l.CheckOutTime, l.TimeZone, l.InstantBook, l.Policy)
	require.NoError(t, err)
	return id
}

func CreateTestBankAccount(t *testing.T, db DBLike, hostID uuid.UUID, last4 string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO host_bank_accounts (id, host_id, holder, last4, is_default) VALUES ($1, $2, $3, $4, true)",
		id, hostID, "Test Host", last4)
	require.NoError(t, err)
	return id
}

// SeedReferenceData restores the commission rates the migration ships with.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO commission_rates (category, value, min_value, max_value) VALUES
		    ('default', 0.03, 0, 0.25),
		    ('stay', 0.03, 0, 0.25),
		    ('vehicle', 0.05, 0, 0.25),
		    ('luxury', 0.02, 0, 0.25),
		    ('guest_service', 0.08, 0, 0.20)
		ON CONFLICT (category) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
