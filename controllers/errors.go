package controllers

import (
	"errors"
	"net/http"

	"care-pay/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps core errors to HTTP responses. Validation errors
// carry the failing field so the client can display them inline.
func respondServiceError(c *gin.Context, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Reason, "field": validation.Field})
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrNoMatchingTransaction):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrNoPayeeAccount),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
