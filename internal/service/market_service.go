package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/model"
)

// MarketService serves symbol listings and raw history.
type MarketService struct {
	data   HistorySource
	logger *zap.Logger
}

// NewMarketService creates a new market service
func NewMarketService(data HistorySource, logger *zap.Logger) *MarketService {
	return &MarketService{
		data:   data,
		logger: logger,
	}
}

// Symbols lists tickers available from the requested source.
func (s *MarketService) Symbols(ctx context.Context, query *model.SymbolsQuery) (*model.SymbolsResponse, error) {
	symbols, source, err := s.data.Symbols(ctx, query.DataSource, query.LocalDataDir)
	if err != nil {
		return nil, err
	}
	if symbols == nil {
		symbols = []string{}
	}

	return &model.SymbolsResponse{
		Source:  source,
		Symbols: symbols,
	}, nil
}

// History returns the close series for charting.
func (s *MarketService) History(ctx context.Context, query *model.HistoryQuery) (*model.HistoryResponse, error) {
	ticker := strings.ToUpper(strings.TrimSpace(query.Ticker))

	years, ok := model.ParsePeriod(query.Period)
	if !ok {
		years = 1
	}

	bars, source, err := s.data.History(ctx, ticker, years, query.DataSource, query.LocalDataDir)
	if err != nil {
		return nil, err
	}

	if query.Points > 0 && len(bars) > query.Points {
		bars = bars[len(bars)-query.Points:]
	}

	return &model.HistoryResponse{
		Ticker:  ticker,
		Source:  source,
		History: model.PricePoints(bars),
	}, nil
}
