package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/model"
	"github.com/yourorg/forecast-service/internal/service"
)

// MarketHandler handles symbol and history HTTP requests
type MarketHandler struct {
	marketService *service.MarketService
	logger        *zap.Logger
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(marketService *service.MarketService, logger *zap.Logger) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
		logger:        logger,
	}
}

// GetSymbols lists available tickers
// GET /api/symbols
func (h *MarketHandler) GetSymbols(c *gin.Context) {
	query := model.SymbolsQuery{DataSource: model.SourceAuto}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.marketService.Symbols(c.Request.Context(), &query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetHistory returns the close series for a ticker
// GET /api/history
func (h *MarketHandler) GetHistory(c *gin.Context) {
	query := model.HistoryQuery{Period: "1y", DataSource: model.SourceAuto}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.marketService.History(c.Request.Context(), &query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
