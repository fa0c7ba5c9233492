package httperr

import (
	"errors"
	"net/http"

	"rental-escrow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

var families = []struct {
	err    error
	status int
}{
	{commands.ErrValidation, http.StatusBadRequest},
	{commands.ErrNotFound, http.StatusNotFound},
	{commands.ErrForbidden, http.StatusForbidden},
	{commands.ErrConflict, http.StatusConflict},
	{commands.ErrIntegrity, http.StatusUnprocessableEntity},
	{commands.ErrPaymentProvider, http.StatusBadGateway},
}

// StatusOf maps a use case error to its HTTP status by error family.
func StatusOf(err error) int {
	for _, f := range families {
		if errors.Is(err, f.err) {
			return f.status
		}
	}
	return http.StatusInternalServerError
}

// AbortWithUseCaseError answers with the family status. Internal errors never leak their message.
func AbortWithUseCaseError(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	AbortWithError(c, status, err, msg, nil)
}
