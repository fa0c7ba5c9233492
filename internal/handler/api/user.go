package api

import (
	"net/http"

	"rental-escrow/internal/handler/httperr"
	"rental-escrow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	q queries.UserQueries
}

func NewUserHandler(q queries.UserQueries) *UserHandler {
	return &UserHandler{q: q}
}

// @Summary Get current user
// @Description Profile of the authenticated caller
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.CurrentUserView
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.q.GetCurrentUser(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
