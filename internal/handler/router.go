package handler

import (
	"net/http"

	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/handler/api"
	"rental-escrow/internal/handler/middleware"
	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	fx.In

	User    *api.UserHandler
	Booking *api.BookingHandler
	Dispute *api.DisputeHandler
	Payment *api.PaymentHandler
	Admin   *api.AdminHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
	reg *metrics.Registry,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware, limiter, reg)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
	reg *metrics.Registry,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(reg.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// Stripe signs the payload; there is no bearer token on webhooks.
		webhooks := apiGroup.Group("/webhooks")
		addRoutes(webhooks, []route{
			{
				Method:  http.MethodPost,
				Path:    "/stripe",
				Handler: h.Payment.StripeWebhook,
				Mw:      []gin.HandlerFunc{middleware.RateLimit(limiter)},
			},
		})

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth(), middleware.RateLimit(limiter))
		addRoutes(authed, []route{
			{Method: http.MethodGet, Path: "/me", Handler: h.User.Me},
		})

		bookings := authed.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
			{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Booking.Accept},
			{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Booking.Reject},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Booking.Complete},
			{Method: http.MethodGet, Path: "/:id/escrow", Handler: h.Booking.GetEscrow},
			{Method: http.MethodPost, Path: "/:id/disputes", Handler: h.Dispute.Open},
			{Method: http.MethodGet, Path: "/:id/disputes", Handler: h.Dispute.ListByBooking},
		})

		disputes := authed.Group("/disputes")
		addRoutes(disputes, []route{
			{Method: http.MethodGet, Path: "/:id", Handler: h.Dispute.Get},
			{Method: http.MethodPost, Path: "/:id/notes", Handler: h.Dispute.AddNote},
			{Method: http.MethodPost, Path: "/:id/evidence", Handler: h.Dispute.AddEvidence},
		})

		admin := authed.Group("/admin")
		admin.Use(authMiddleware.RequireRole(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/vouchers/validate", Handler: h.Payment.ValidateVoucher},
			{Method: http.MethodPost, Path: "/escrows/:bookingId/release", Handler: h.Admin.ReleaseEscrow},
			{Method: http.MethodPost, Path: "/escrows/:bookingId/freeze", Handler: h.Admin.FreezeEscrow},
			{Method: http.MethodPost, Path: "/escrows/:bookingId/unfreeze", Handler: h.Admin.UnfreezeEscrow},
			{Method: http.MethodPost, Path: "/disputes/:id/review", Handler: h.Dispute.MarkUnderReview},
			{Method: http.MethodPost, Path: "/disputes/:id/resolve", Handler: h.Dispute.Resolve},
			{Method: http.MethodPost, Path: "/disputes/:id/close", Handler: h.Dispute.Close},
			{Method: http.MethodGet, Path: "/commission-rates", Handler: h.Admin.ListRates},
			{Method: http.MethodPut, Path: "/commission-rates", Handler: h.Admin.UpdateRates},
			{Method: http.MethodGet, Path: "/commission-rates/:category/history", Handler: h.Admin.RateHistory},
			{Method: http.MethodPost, Path: "/payouts/schedule", Handler: h.Admin.SchedulePayouts},
			{Method: http.MethodGet, Path: "/payouts", Handler: h.Admin.ListPayouts},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
