package api

import (
	"errors"
	"net/http"
	"strconv"

	"rental-escrow/internal/handler/httperr"
	"rental-escrow/internal/handler/middleware"
	"rental-escrow/internal/usecase/commands"
	"rental-escrow/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

var errMissingActor = errors.New("actor missing from context")

func requireActor(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingActor, "Unauthorized", nil)
	}
	return actor, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return false
	}
	return true
}

// limitQuery reads ?limit=; zero lets the query layer apply its default.
func limitQuery(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		if err == nil {
			err = errors.New("negative limit")
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
		return 0, false
	}
	return n, true
}

func idempotencyKey(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(idempotencyHeader)
	if raw == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, commands.ErrIdempotencyKeyRequired, "Idempotency-Key header is required", nil)
		return uuid.Nil, false
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid idempotency key format", nil)
		return uuid.Nil, false
	}
	return key, true
}
