package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/forecast"
	"github.com/yourorg/forecast-service/internal/model"
)

// tradingDaysPerYear sizes how much history to request when only a
// point count is known.
const tradingDaysPerYear = 252

// ForecastService serves predictions from the latest trained model.
type ForecastService struct {
	data     HistorySource
	store    ArtifactStore
	registry RunRegistry
	logger   *zap.Logger
}

// NewForecastService creates a new forecast service
func NewForecastService(
	data HistorySource,
	store ArtifactStore,
	registry RunRegistry,
	logger *zap.Logger,
) *ForecastService {
	return &ForecastService{
		data:     data,
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Predict loads the latest artifact for the ticker, rolls it forward
// to the requested horizon and returns history plus the forecast tape.
func (s *ForecastService) Predict(ctx context.Context, req *model.PredictRequest) (*model.PredictResponse, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))

	run, err := s.registry.GetLatestByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrModelNotFound
	}

	art, err := s.store.Load(ctx, run.ArtifactPath)
	if err != nil {
		return nil, err
	}

	// Need one extra close per return, plus the context the chart shows.
	needed := art.InputLen + 1
	if req.HistoryPoints+1 > needed {
		needed = req.HistoryPoints + 1
	}

	bars, source, err := s.data.History(ctx, ticker, yearsForPoints(needed), req.DataSource, req.LocalDataDir)
	if err != nil {
		return nil, err
	}
	if len(bars) < art.InputLen+1 {
		return nil, &forecast.ErrNotEnoughData{Got: len(bars), Need: art.InputLen + 1}
	}

	closes := model.Closes(bars)
	returns, err := forecast.LogReturns(closes)
	if err != nil {
		return nil, err
	}

	predicted, err := art.Forecast(returns, req.Horizon)
	if err != nil {
		return nil, err
	}

	lastBar := bars[len(bars)-1]
	prices := forecast.ReconstructPrices(lastBar.Close, predicted)

	forecastPoints := make([]model.PricePoint, len(prices))
	date := lastBar.Date
	for i, price := range prices {
		date = nextBusinessDay(date)
		forecastPoints[i] = model.PricePoint{
			Date:  date.Format("2006-01-02"),
			Value: price,
		}
	}

	historyBars := bars
	if len(historyBars) > req.HistoryPoints {
		historyBars = historyBars[len(historyBars)-req.HistoryPoints:]
	}

	s.logger.Info("Forecast served",
		zap.String("ticker", ticker),
		zap.String("source", string(source)),
		zap.Int("horizon", req.Horizon),
		zap.String("artifact", run.ArtifactPath))

	return &model.PredictResponse{
		Ticker:        ticker,
		Source:        source,
		Transform:     art.Transform,
		ModelArtifact: run.ArtifactPath,
		InputLen:      art.InputLen,
		PredLen:       art.PredLen,
		Horizon:       req.Horizon,
		LastClose:     lastBar.Close,
		History:       model.PricePoints(historyBars),
		Forecast:      forecastPoints,
	}, nil
}

// yearsForPoints maps a desired number of daily points to a whole
// number of calendar years to request, capped at the longest period
// the API accepts.
func yearsForPoints(points int) int {
	years := points/tradingDaysPerYear + 1
	if years > 10 {
		years = 10
	}
	return years
}

// nextBusinessDay steps one day forward, skipping weekends.
func nextBusinessDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
