package components

import (
	"context"

	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewSweeper,
	),
	fx.Invoke(startSweeper),
)

func startSweeper(lc fx.Lifecycle, cfg config.Config, s *worker.Sweeper) {
	if !cfg.Worker.Enabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// the hook context ends once startup completes
			return s.Start(context.Background())
		},
		OnStop: s.Stop,
	})
}
