package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/model"
	"github.com/yourorg/forecast-service/internal/service"
)

// TrainHandler handles training HTTP requests
type TrainHandler struct {
	trainingService *service.TrainingService
	logger          *zap.Logger
}

// NewTrainHandler creates a new train handler
func NewTrainHandler(trainingService *service.TrainingService, logger *zap.Logger) *TrainHandler {
	return &TrainHandler{
		trainingService: trainingService,
		logger:          logger,
	}
}

// Train handles a training request
// POST /api/train
func (h *TrainHandler) Train(c *gin.Context) {
	// Defaults first, so binding only overwrites supplied fields.
	request := model.NewTrainRequest()
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.trainingService.Train(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListModels lists recent training runs
// GET /api/models
func (h *TrainHandler) ListModels(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	runs, err := h.trainingService.Runs(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if runs == nil {
		runs = []model.TrainingRun{}
	}

	c.JSON(http.StatusOK, gin.H{"models": runs})
}

// GetModel returns the latest training run for a ticker
// GET /api/models/:ticker
func (h *TrainHandler) GetModel(c *gin.Context) {
	ticker := c.Param("ticker")

	run, err := h.trainingService.LatestRun(c.Request.Context(), ticker)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, run)
}
