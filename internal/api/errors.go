package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/celestialworks/almanac/ephemeris"
	"github.com/celestialworks/almanac/internal/geocode"
	"github.com/celestialworks/almanac/internal/logging"
	"github.com/celestialworks/almanac/internal/storage"
)

// ErrInvalidRequest marks client-side validation failures; handlers wrap
// it with the specific field problem.
var ErrInvalidRequest = errors.New("invalid request")

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// statusForError maps domain errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, storage.ErrProfileNotFound),
		errors.Is(err, storage.ErrEntryNotFound):
		return http.StatusNotFound

	case errors.Is(err, storage.ErrProfileExists):
		return http.StatusConflict

	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest

	case errors.Is(err, geocode.ErrNotFound),
		errors.Is(err, ephemeris.ErrOutOfRange):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status with a JSON error body carrying
// the request ID, and logs server-side failures.
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	status := statusForError(err)

	if status >= 500 {
		if log := logging.LoggerFromContext(ctx); log != nil {
			log.Error(ctx, "request failed", logging.String("error", err.Error()))
		}
	}

	c.AbortWithStatusJSON(status, errorResponse{
		Error:     err.Error(),
		RequestID: logging.RequestIDFromContext(ctx),
	})
}
