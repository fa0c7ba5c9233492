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

type BookingHandler struct {
	cmds    commands.BookingCommands
	q       queries.BookingQueries
	escrowQ queries.EscrowQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, escrowQ queries.EscrowQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, escrowQ: escrowQ}
}

// @Summary Create booking
// @Description Prices the stay, reserves the dates and starts payment. Replays with the same Idempotency-Key return the original booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Success 200 {object} resdto.CreateBookingResponse "replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), in, actor, key)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		c.Header("Idempotency-Replayed", "true")
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCreateBookingResult(result))
}

// @Summary List bookings
// @Description Bookings of the caller as guest (default) or as host
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param as query string false "guest or host"
// @Param limit query int false "Max items (default 20, max 200)"
// @Success 200 {array} queries.BookingListItem
// @Failure 400 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	as := c.DefaultQuery("as", queries.ListAsGuest)

	items, err := h.q.List(c.Request.Context(), actor, as, limit)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	if items == nil {
		items = []*queries.BookingListItem{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Cancel booking
// @Description Guest, host or admin cancels; refunds follow the booking's cancellation policy
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ReasonRequest false "Cancellation reason"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id uuid.UUID, actor shared.Actor, reason string) error {
		return h.cmds.CancelBooking(ctx, id, actor, reason)
	})
}

// @Summary Accept booking
// @Description Host accepts a paid booking that was not instant-booked
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/accept [post]
func (h *BookingHandler) Accept(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id uuid.UUID, actor shared.Actor, _ string) error {
		return h.cmds.AcceptBooking(ctx, id, actor)
	})
}

// @Summary Reject booking
// @Description Host rejects a paid booking; the guest is refunded in full
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ReasonRequest false "Rejection reason"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id uuid.UUID, actor shared.Actor, reason string) error {
		return h.cmds.RejectBooking(ctx, id, actor, reason)
	})
}

// @Summary Complete booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id uuid.UUID, actor shared.Actor, _ string) error {
		return h.cmds.CompleteBooking(ctx, id, actor)
	})
}

// @Summary Get booking escrow
// @Description Escrow state and its audit trail
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.EscrowView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/escrow [get]
func (h *BookingHandler) GetEscrow(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.escrowQ.GetByBooking(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// transition validates the common inputs, runs apply and answers with the fresh booking view.
// The body is optional.
func (h *BookingHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID, actor shared.Actor, reason string) error) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.ReasonRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	if err := apply(c.Request.Context(), id, actor, req.Trimmed()); err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}
