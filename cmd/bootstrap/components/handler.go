package components

import (
	"rental-escrow/internal/handler"
	"rental-escrow/internal/handler/api"
	"rental-escrow/internal/handler/middleware"
	"rental-escrow/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewUserHandler,
		api.NewBookingHandler,
		api.NewDisputeHandler,
		api.NewPaymentHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit)
		},
	),
	fx.Invoke(handler.NewRouter),
)
