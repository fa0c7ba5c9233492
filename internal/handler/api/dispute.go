package api

import (
	"net/http"

	reqdto "rental-escrow/internal/handler/dto/request"
	"rental-escrow/internal/handler/httperr"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DisputeHandler struct {
	cmds commands.DisputeCommands
	q    queries.DisputeQueries
}

func NewDisputeHandler(cmds commands.DisputeCommands, q queries.DisputeQueries) *DisputeHandler {
	return &DisputeHandler{cmds: cmds, q: q}
}

// @Summary Open dispute
// @Description Opens a dispute on a booking and freezes its escrow
// @Tags disputes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.OpenDisputeRequest true "Dispute"
// @Success 201 {object} queries.DisputeView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/disputes [post]
func (h *DisputeHandler) Open(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.OpenDisputeRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	d, err := h.cmds.Open(c.Request.Context(), bookingID, in, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, queries.NewDisputeView(d))
}

// @Summary List booking disputes
// @Tags disputes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} queries.DisputeView
// @Failure 403 {object} httperr.Response
// @Router /bookings/{id}/disputes [get]
func (h *DisputeHandler) ListByBooking(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	views, err := h.q.ListByBooking(c.Request.Context(), bookingID, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	if views == nil {
		views = []*queries.DisputeView{}
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get dispute
// @Tags disputes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Success 200 {object} queries.DisputeView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /disputes/{id} [get]
func (h *DisputeHandler) Get(c *gin.Context) {
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

// @Summary Add dispute note
// @Tags disputes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Param request body reqdto.AddNoteRequest true "Note"
// @Success 201 {object} queries.NoteView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /disputes/{id}/notes [post]
func (h *DisputeHandler) AddNote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	note, err := h.cmds.AddNote(c.Request.Context(), id, in, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, queries.NewNoteView(*note))
}

// @Summary Add dispute evidence
// @Tags disputes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Param request body reqdto.AddEvidenceRequest true "Evidence"
// @Success 201 {object} queries.EvidenceView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /disputes/{id}/evidence [post]
func (h *DisputeHandler) AddEvidence(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddEvidenceRequest
	if !bindJSON(c, &req) {
		return
	}
	ev, err := h.cmds.AddEvidence(c.Request.Context(), id, req.ToInput(), actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, queries.NewEvidenceView(*ev))
}

// @Summary Start dispute review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Success 200 {object} queries.DisputeView
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/disputes/{id}/review [post]
func (h *DisputeHandler) MarkUnderReview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	d, err := h.cmds.MarkUnderReview(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, queries.NewDisputeView(d))
}

// @Summary Resolve dispute
// @Description Splits the frozen escrow between host and guest by host_share_ratio
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Param request body reqdto.ResolveDisputeRequest true "Resolution"
// @Success 200 {object} queries.DisputeView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/disputes/{id}/resolve [post]
func (h *DisputeHandler) Resolve(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.ResolveDisputeRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid host_share_ratio", nil)
		return
	}
	d, err := h.cmds.Resolve(c.Request.Context(), id, in, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, queries.NewDisputeView(d))
}

// @Summary Close dispute
// @Description Closes without a split; the escrow is unfrozen
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Param request body reqdto.CloseDisputeRequest true "Closing note"
// @Success 200 {object} queries.DisputeView
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/disputes/{id}/close [post]
func (h *DisputeHandler) Close(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.CloseDisputeRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.cmds.Close(c.Request.Context(), id, req.Resolution, actor)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, queries.NewDisputeView(d))
}
