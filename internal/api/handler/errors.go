package handler

import (
	"net/http"

	"liblend/internal/api/service"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a storage failure and stays a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case service.NotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case service.Conflict(err):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case service.Invalid(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
