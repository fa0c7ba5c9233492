package bootstrap

import (
	"log/slog"

	"rental-escrow/internal/handler/middleware"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/metrics"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewRequestLogger,
		NewLogger,
		metrics.NewRegistry,
	),
)

func NewRequestLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}

func NewLogger(l *middleware.Logger) *slog.Logger {
	return l.GetSlogLogger()
}
