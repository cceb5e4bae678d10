package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waypoint-app/waypoint/internal/models"
)

// respondError maps service errors onto HTTP statuses. Unrecognized errors
// are pushed onto the gin context for the ErrorHandler middleware to log and
// turn into a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrDuplicate):
		c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
	default:
		_ = c.Error(err)
	}
}
