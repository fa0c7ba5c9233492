package bootstrap

import (
	"context"
	"log/slog"

	"rental-escrow/internal/infra/cache"
	"rental-escrow/internal/pkg/clock"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/usecase/shared"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewEventStores,
	),
)

type EventStores struct {
	fx.Out

	Cache  shared.ProcessedEventCache
	Locker shared.Locker
}

// NewEventStores uses Redis when REDIS_ADDR is set and falls back to in-process stores otherwise.
// The in-process lease only excludes sweeps within this instance.
func NewEventStores(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (EventStores, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, using in-memory event cache and sweeper lease")
		return EventStores{
			Cache:  cache.NewMemoryEventCache(clk),
			Locker: cache.NewMemoryLocker(clk),
		}, nil
	}

	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return EventStores{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	logger.Info("redis connected", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)

	return EventStores{
		Cache:  cache.NewRedisEventCache(client, cfg.Redis),
		Locker: cache.NewRedisLocker(client, cfg.Redis, logger),
	}, nil
}
