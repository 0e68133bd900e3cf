package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusFor maps a ledger error to an HTTP status by its kind.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error", "code"} and logs it at a level matching the status.
func respondError(c *gin.Context, logger *slog.Logger, action string, err error) {
	status := statusFor(err)
	code := apperrors.CodeOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()), slog.String("code", string(code)))
		c.JSON(status, gin.H{"error": "Failed to " + action, "code": code})
		return
	}
	logger.Warn("Rejected request to "+action, slog.String("error", err.Error()), slog.String("code", string(code)))
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// badRequest is used for malformed input that never reached the services.
func badRequest(c *gin.Context, logger *slog.Logger, msg string, err error) {
	logger.Warn(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": msg + ": " + err.Error()})
}
