//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"rental-escrow/cmd/bootstrap"
	"rental-escrow/cmd/bootstrap/components"
	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/infra/db"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/tests/common/authtest"
	"rental-escrow/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "escrow"
	pgPassword = "escrow-e2e"
	pgPort     = "5432/tcp"
)

var migrations = []string{
	"migrations/001_initial_schema.sql",
}

var (
	ledgerDBOnce      sync.Once
	ledgerDBContainer testcontainers.Container
)

type endpoint struct {
	host string
	port nat.Port
}

func (e endpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.host, e.port.Port(), database)
}

// startLedgerDB runs one Postgres for the whole test binary. Each suite gets its own database on it.
func startLedgerDB(t *testing.T) endpoint {
	t.Helper()
	ledgerDBOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{pgPort},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				// durability is irrelevant for a throwaway ledger
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return endpoint{host: host, port: port}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Name:   "rental-escrow-e2e-postgres",
				Labels: map[string]string{"app": "rental-escrow", "purpose": "e2e"},
			},
			Started: true,
		})
		require.NoError(t, err, "failed to start the ledger database container")
		ledgerDBContainer = c
	})
	require.NotNil(t, ledgerDBContainer, "ledger database container is not running")

	ctx := context.Background()
	port, err := ledgerDBContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err, "failed to resolve the ledger database port")
	host, err := ledgerDBContainer.Host(ctx)
	require.NoError(t, err, "failed to resolve the ledger database host")
	return endpoint{host: host, port: port}
}

// createLedgerDB creates a fresh database for one suite, applies the schema and restores the
// shipped commission rates. The database is dropped when the suite ends.
func createLedgerDB(t *testing.T, ep endpoint) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()
	name := "escrow_e2e_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
	require.NoError(t, err, "failed to connect as the database owner")
	defer admin.Close()

	// the container can accept connections a moment before it accepts DDL
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		if _, err = admin.Exec(ctx, "CREATE DATABASE "+name); err == nil {
			break
		}
		slog.Warn("retrying ledger database creation", "database", name, "attempt", attempt+1, "error", err)
	}
	require.NoError(t, err, "failed to create the ledger database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		owner, err := pgxpool.New(ctx, ep.dsn("postgres"))
		if err != nil {
			slog.Warn("failed to reconnect for ledger database cleanup", "database", name, "error", err)
			return
		}
		defer owner.Close()
		if _, err := owner.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop ledger database", "database", name, "error", err)
		}
	})

	cfg := config.DBConfig{
		Host:     ep.host,
		Port:     ep.port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}
	pool, _, err := db.Connect(context.Background(), cfg)
	require.NoError(t, err, "failed to connect to the ledger database")
	t.Cleanup(pool.Close)

	require.NoError(t, applySchema(ctx, pool), "failed to apply the booking and escrow schema")
	require.NoError(t, dbtest.SeedReferenceData(pool), "failed to seed commission rates")
	return pool, cfg
}

// applySchema runs the migrations in order. go test runs from the package directory, so the
// files are looked up from there towards the module root.
func applySchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, file := range migrations {
		var (
			sql []byte
			err error
		)
		for _, dir := range []string{".", "..", filepath.Join("..", ".."), filepath.Join("..", "..", "..")} {
			if sql, err = os.ReadFile(filepath.Join(dir, file)); err == nil {
				break
			}
		}
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}

// startMarketplace boots the HTTP stack on the Postgres store. Redis, AMQP and Stripe stay unset,
// so the in-process idempotency cache, log publisher and fake card gateway are wired in. The
// sweeper is off; suites drive time-based transitions themselves.
func startMarketplace(t *testing.T, dbCfg config.DBConfig) (*gin.Engine, config.Config) {
	t.Helper()
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Store.Driver = components.DriverPostgres
	cfg.Worker.Enabled = false

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.RedisModule,
		bootstrap.MessagingModule,
		bootstrap.PaymentModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start the marketplace app")
	require.NotNil(t, router, "marketplace app did not provide a router")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop the marketplace app", "error", err)
		}
	})
	return router, cfg
}

// Marketplace is the cast every scenario starts from: a guest, a host with a bookable listing and
// a payout account, and an admin, each with a bearer token.
type Marketplace struct {
	GuestID    uuid.UUID
	HostID     uuid.UUID
	AdminID    uuid.UUID
	ListingID  uuid.UUID
	GuestToken string
	HostToken  string
	AdminToken string
}

// SharedSuite gives each e2e suite its own ledger database and a running marketplace API.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
	Tokens *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)
	pool, dbCfg := createLedgerDB(t, startLedgerDB(t))
	s.DB = pool
	s.Router, s.Config = startMarketplace(t, dbCfg)
	s.Tokens = authtest.NewJWTHelper(s.Config.JWT)
}

// SetupSubTest empties every table so bookings, escrows and payouts never leak between scenarios.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset the ledger database")
}

// SeedMarketplace inserts the standard cast for one scenario.
func (s *SharedSuite) SeedMarketplace() Marketplace {
	t := s.T()
	m := Marketplace{
		GuestID: dbtest.CreateTestUser(t, s.DB, "guest@example.com", "guest"),
		HostID:  dbtest.CreateTestUser(t, s.DB, "host@example.com", "host"),
		AdminID: dbtest.CreateTestUser(t, s.DB, "admin@example.com", "admin"),
	}
	m.ListingID = dbtest.CreateTestListing(t, s.DB, dbtest.DefaultListing(m.HostID))
	dbtest.CreateTestBankAccount(t, s.DB, m.HostID, "4242")

	m.GuestToken = s.Tokens.GenerateToken(t, m.GuestID, user.RoleGuest)
	m.HostToken = s.Tokens.GenerateToken(t, m.HostID, user.RoleHost)
	m.AdminToken = s.Tokens.GenerateToken(t, m.AdminID, user.RoleAdmin)
	return m
}
