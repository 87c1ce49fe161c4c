package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Code    string `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Operator-facing messages, shown as-is by the UI.
var userMessages = []struct {
	err     error
	message string
}{
	{domain.ErrWindowAlreadyOpen, "A week is already open"},
	{domain.ErrWindowTooLong, "End date must be within 7 days of start date"},
	{domain.ErrEndBeforeStart, "End date cannot be before start date"},
	{domain.ErrWindowOverlaps, "Dates overlap an existing week"},
	{domain.ErrMissingScope, "Select warehouse and season"},
	{domain.ErrWindowNotFound, "Week not found or already closed"},
	{domain.ErrSeasonFinalized, "Season is finalized — read-only"},
	{domain.ErrInvalidDate, "Invalid date"},
	{domain.ErrUnavailable, "Week data is temporarily unavailable, try again"},
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, "INVALID_DATE"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrSeasonFinalized):
		return http.StatusLocked, "SEASON_FINALIZED"
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, "UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func messageFor(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return "Something went wrong"
}

func writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	_ = c.Error(err)

	text := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		text = domain.ErrUnavailable.Error()
	case http.StatusInternalServerError:
		text = "internal server error"
	}

	c.JSON(status, errorResponse{
		Code:    code,
		Error:   text,
		Message: messageFor(err),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Code:    "BAD_REQUEST",
		Error:   err.Error(),
		Message: "Invalid request",
	})
}
