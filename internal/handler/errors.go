package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/datasource"
	"github.com/yourorg/forecast-service/internal/forecast"
	"github.com/yourorg/forecast-service/internal/service"
)

// respondError maps domain errors to HTTP statuses. The message is
// what the dashboard shows in its alert region, so known failures get
// the real error text and everything else a generic one.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var notEnough *forecast.ErrNotEnoughData

	switch {
	case errors.Is(err, service.ErrModelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No trained model for this ticker. Train one first."})
	case errors.Is(err, datasource.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, datasource.ErrNoLocalDir):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notEnough):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, datasource.ErrUpstream):
		logger.Error("Upstream data source failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Data source is unavailable, try again later"})
	default:
		logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
