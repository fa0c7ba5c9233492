package api

import (
	"context"
	"net/http"

	reqdto "rental-escrow/internal/handler/dto/request"
	resdto "rental-escrow/internal/handler/dto/response"
	"rental-escrow/internal/handler/httperr"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/queries"
	"rental-escrow/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	escrowCmds     commands.EscrowCommands
	escrowQ        queries.EscrowQueries
	commissionCmds commands.CommissionCommands
	commissionQ    queries.CommissionQueries
	payoutCmds     commands.PayoutCommands
	payoutQ        queries.PayoutQueries
}

func NewAdminHandler(
	escrowCmds commands.EscrowCommands,
	escrowQ queries.EscrowQueries,
	commissionCmds commands.CommissionCommands,
	commissionQ queries.CommissionQueries,
	payoutCmds commands.PayoutCommands,
	payoutQ queries.PayoutQueries,
) *AdminHandler {
	return &AdminHandler{
		escrowCmds:     escrowCmds,
		escrowQ:        escrowQ,
		commissionCmds: commissionCmds,
		commissionQ:    commissionQ,
		payoutCmds:     payoutCmds,
		payoutQ:        payoutQ,
	}
}

// @Summary Release escrow
// @Description Pays the host share out of a held escrow before the automatic release time
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} queries.EscrowView
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/escrows/{bookingId}/release [post]
func (h *AdminHandler) ReleaseEscrow(c *gin.Context) {
	h.escrowAction(c, func(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error {
		return h.escrowCmds.ReleaseEscrow(ctx, bookingID, actor)
	})
}

// @Summary Freeze escrow
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Param request body reqdto.FreezeEscrowRequest true "Reason"
// @Success 200 {object} queries.EscrowView
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/escrows/{bookingId}/freeze [post]
func (h *AdminHandler) FreezeEscrow(c *gin.Context) {
	var req reqdto.FreezeEscrowRequest
	if !bindJSON(c, &req) {
		return
	}
	h.escrowAction(c, func(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error {
		return h.escrowCmds.FreezeEscrow(ctx, bookingID, req.Reason, actor)
	})
}

// @Summary Unfreeze escrow
// @Description Refused while the booking has an open dispute
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} queries.EscrowView
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/escrows/{bookingId}/unfreeze [post]
func (h *AdminHandler) UnfreezeEscrow(c *gin.Context) {
	h.escrowAction(c, func(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error {
		return h.escrowCmds.UnfreezeEscrow(ctx, bookingID, actor)
	})
}

// @Summary List commission rates
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.CommissionRateView
// @Failure 403 {object} httperr.Response
// @Router /admin/commission-rates [get]
func (h *AdminHandler) ListRates(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	views, err := h.commissionQ.ListRates(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Commission rate history
// @Description Newest change first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param category path string true "Commission category"
// @Param limit query int false "Max items (default 20, max 200)"
// @Success 200 {array} queries.CommissionHistoryView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/commission-rates/{category}/history [get]
func (h *AdminHandler) RateHistory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	views, err := h.commissionQ.History(c.Request.Context(), c.Param("category"), limit, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	if views == nil {
		views = []*queries.CommissionHistoryView{}
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Update commission rates
// @Description Applies every change atomically; each must stay within its category bounds
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateRatesRequest true "Rate changes"
// @Success 200 {object} resdto.UpdateRatesResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/commission-rates [put]
func (h *AdminHandler) UpdateRates(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.UpdateRatesRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate value", nil)
		return
	}
	result, err := h.commissionCmds.UpdateRates(c.Request.Context(), in, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUpdateRatesResult(result))
}

// @Summary Schedule payouts
// @Description Batches released and split escrows into one payout request per host and currency
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 403 {object} httperr.Response
// @Router /admin/payouts/schedule [post]
func (h *AdminHandler) SchedulePayouts(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	result, err := h.payoutCmds.ScheduleBatch(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromScheduleResult(result))
}

// @Summary List payouts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param host_id query string false "Host ID"
// @Param limit query int false "Max items (default 20, max 200)"
// @Success 200 {array} queries.PayoutView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/payouts [get]
func (h *AdminHandler) ListPayouts(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	var hostID *uuid.UUID
	if raw := c.Query("host_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid host_id", nil)
			return
		}
		hostID = &id
	}
	views, err := h.payoutQ.List(c.Request.Context(), hostID, limit, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	if views == nil {
		views = []*queries.PayoutView{}
	}
	c.JSON(http.StatusOK, views)
}

func (h *AdminHandler) escrowAction(c *gin.Context, apply func(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "bookingId")
	if !ok {
		return
	}
	if err := apply(c.Request.Context(), bookingID, actor); err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	view, err := h.escrowQ.GetByBooking(c.Request.Context(), bookingID, actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load escrow", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}
