package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/model"
	"github.com/yourorg/forecast-service/internal/service"
)

// ForecastHandler handles prediction HTTP requests
type ForecastHandler struct {
	forecastService *service.ForecastService
	logger          *zap.Logger
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(forecastService *service.ForecastService, logger *zap.Logger) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
		logger:          logger,
	}
}

// Predict handles a forecast request
// POST /api/predict
func (h *ForecastHandler) Predict(c *gin.Context) {
	request := model.NewPredictRequest()
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.forecastService.Predict(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
