package components

import (
	"log/slog"
	"time"

	"rental-escrow/internal/domain/commission"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/metrics"
	"rental-escrow/internal/usecase"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/ledger"
	"rental-escrow/internal/usecase/payment"
	"rental-escrow/internal/usecase/queries"
	"rental-escrow/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	ledger.New,
	NewCommissionResolver,
	NewPaymentAdapters,
	commands.NewDispatcher,
	func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		NewPaymentCommands,
		commands.NewDisputeUseCase,
		commands.NewEscrowUseCase,
		commands.NewCommissionUseCase,
		NewPayoutCommands,
		commands.NewSweepUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewDisputeQueries,
		queries.NewEscrowQueries,
		queries.NewCommissionQueries,
		queries.NewPayoutQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCommissionResolver(cfg config.Config) (*commission.Resolver, error) {
	threshold, err := cfg.Commission.Threshold()
	if err != nil {
		return nil, err
	}
	rates, err := cfg.Commission.ParseFXRates()
	if err != nil {
		return nil, err
	}
	return commission.NewResolver(threshold, cfg.Commission.ReferenceCurrency, rates), nil
}

func NewPaymentAdapters(cfg config.Config, gateway shared.CardGateway, l *ledger.Ledger, logger *slog.Logger) payment.Adapters {
	return payment.NewAdapters(
		payment.NewCardAdapter(gateway, l, cfg.Booking.CardPaymentTimeout, cfg.Booking.EscrowReleaseGrace, logger),
		payment.NewVoucherAdapter(l, cfg.Booking.VoucherValidity, cfg.Booking.VoucherInstructions, cfg.Booking.EscrowReleaseGrace),
	)
}

func NewPaymentCommands(
	cfg config.Config,
	uow shared.UnitOfWork,
	adapters payment.Adapters,
	cache shared.ProcessedEventCache,
	dispatcher *commands.Dispatcher,
	reg *metrics.Registry,
	clk clock.Clock,
	logger *slog.Logger,
) commands.PaymentCommands {
	ttl := cfg.Redis.ProcessedTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return commands.NewPaymentUseCase(uow, adapters, cache, ttl, dispatcher, reg, clk, logger)
}

func NewPayoutCommands(
	cfg config.Config,
	uow shared.UnitOfWork,
	banks shared.BankAccountLookup,
	dispatcher *commands.Dispatcher,
	reg *metrics.Registry,
	clk clock.Clock,
	logger *slog.Logger,
) commands.PayoutCommands {
	return commands.NewPayoutUseCase(uow, banks, dispatcher, reg, cfg.Worker.BatchSize, clk, logger)
}
