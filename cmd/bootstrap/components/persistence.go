package components

import (
	"context"
	"log/slog"

	"rental-escrow/internal/infra/db"
	"rental-escrow/internal/infra/memstore"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/infra/readstore"
	"rental-escrow/internal/infra/uow"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStore,
		// Directory lookups against the replica tables
		fx.Annotate(
			func(d *readstore.DirectoryReadStore) *readstore.DirectoryReadStore { return d },
			fx.As(new(shared.ListingLookup)),
			fx.As(new(shared.UserLookup)),
			fx.As(new(shared.AvailabilityChecker)),
			fx.As(new(shared.BankAccountLookup)),
		),
	),
)

type Store struct {
	fx.Out

	UoW       shared.UnitOfWork
	Directory *readstore.DirectoryReadStore
	Memory    *memstore.Store
}

// NewStore opens the backend named by STORE_DRIVER. The memory driver keeps everything in process
// and is meant for local runs and tests.
func NewStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (Store, error) {
	switch cfg.Store.Driver {
	case DriverMemory:
		logger.Warn("using the in-memory store, data is lost on restart")
		s := memstore.New(clk)
		return Store{UoW: s, Directory: s.Directory(), Memory: s}, nil
	case DriverPostgres, "":
		pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
		if err != nil {
			return Store{}, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		q := pgq.New()
		return Store{
			UoW:       uow.NewPostgresUoW(pool, q, clk),
			Directory: readstore.NewDirectoryReadStore(q, pool),
		}, nil
	default:
		return Store{}, errs.Newf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}
