package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/forecast"
	"github.com/yourorg/forecast-service/internal/model"
)

// TrainingService runs model training end to end: source data, fit,
// evaluate, persist the artifact, record the run and emit an event.
type TrainingService struct {
	data        HistorySource
	store       ArtifactStore
	registry    RunRegistry
	publisher   EventPublisher
	eventTopic  string
	valFraction float64
	seed        int64
	logger      *zap.Logger
}

// NewTrainingService creates a new training service
func NewTrainingService(
	data HistorySource,
	store ArtifactStore,
	registry RunRegistry,
	publisher EventPublisher,
	eventTopic string,
	valFraction float64,
	seed int64,
	logger *zap.Logger,
) *TrainingService {
	if valFraction <= 0 || valFraction >= 1 {
		valFraction = 0.1
	}
	return &TrainingService{
		data:        data,
		store:       store,
		registry:    registry,
		publisher:   publisher,
		eventTopic:  eventTopic,
		valFraction: valFraction,
		seed:        seed,
		logger:      logger,
	}
}

// Train executes one training run and returns its summary.
func (s *TrainingService) Train(ctx context.Context, req *model.TrainRequest) (*model.TrainResponse, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	years, ok := model.ParsePeriod(req.Period)
	if !ok {
		years = 5
	}

	bars, source, err := s.data.History(ctx, ticker, years, req.DataSource, req.LocalDataDir)
	if err != nil {
		return nil, err
	}

	closes := model.Closes(bars)
	returns, err := forecast.LogReturns(closes)
	if err != nil {
		return nil, err
	}

	// Fit the scaler only on values visible to the training windows,
	// then standardize the whole series with it.
	windows := len(returns) - req.InputLen - req.PredLen + 1
	if windows < 2 {
		return nil, &forecast.ErrNotEnoughData{
			Got:  len(bars),
			Need: req.InputLen + req.PredLen + 2,
		}
	}
	cut := trainCut(windows, s.valFraction)
	scaler := forecast.FitScaler(returns[:cut+req.InputLen+req.PredLen-1])

	ds, err := forecast.BuildDataset(scaler.Apply(returns), req.InputLen, req.PredLen)
	if err != nil {
		return nil, err
	}
	train, val := ds.Split(s.valFraction)

	started := time.Now()
	net := forecast.NewNetwork(req.InputLen, req.PredLen, s.seed)
	trainLoss := net.Train(train, forecast.TrainConfig{
		Epochs:       req.Epochs,
		BatchSize:    req.BatchSize,
		LearningRate: req.LearningRate,
		Seed:         s.seed,
	})

	valLoss := forecast.MeanSquaredError(net, val)
	dirAcc := forecast.DirectionAccuracy(net, val, scaler)

	// Close preceding each validation target window, for price-space RMSE.
	lastCloses := make([]float64, val.Len())
	for i := range lastCloses {
		lastCloses[i] = closes[cut+i+req.InputLen]
	}
	valRMSE := forecast.PriceRMSE(net, val, scaler, lastCloses)

	trainedAt := time.Now().UTC()
	art := &forecast.Artifact{
		Ticker:    ticker,
		Transform: forecast.TransformLogReturn,
		InputLen:  req.InputLen,
		PredLen:   req.PredLen,
		Scaler:    scaler,
		Network:   net,
		TrainedAt: trainedAt,
	}

	artifactPath, err := s.store.Save(ctx, art)
	if err != nil {
		return nil, err
	}

	run := &model.TrainingRun{
		Ticker:            ticker,
		Source:            source,
		Transform:         forecast.TransformLogReturn,
		ArtifactPath:      artifactPath,
		InputLen:          req.InputLen,
		PredLen:           req.PredLen,
		Epochs:            req.Epochs,
		BatchSize:         req.BatchSize,
		LearningRate:      req.LearningRate,
		TrainLoss:         trainLoss,
		ValLoss:           valLoss,
		ValRMSE:           valRMSE,
		DirectionAccuracy: dirAcc,
		TrainSamples:      train.Len(),
		ValSamples:        val.Len(),
		TrainedAt:         trainedAt,
	}

	runID, err := s.registry.Insert(ctx, run)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Training run completed",
		zap.String("ticker", ticker),
		zap.String("source", string(source)),
		zap.Int("run_id", runID),
		zap.Float64("val_rmse", valRMSE),
		zap.Float64("direction_accuracy", dirAcc),
		zap.Duration("elapsed", time.Since(started)))

	// Event publishing is best effort; a broker outage must not fail
	// the training request.
	if s.publisher != nil {
		event := model.TrainingCompletedEvent{
			RunID:             runID,
			Ticker:            ticker,
			Source:            source,
			ArtifactPath:      artifactPath,
			ValRMSE:           valRMSE,
			DirectionAccuracy: dirAcc,
			TrainedAt:         trainedAt,
		}
		if err := s.publisher.PublishTrainingCompleted(ctx, s.eventTopic, event); err != nil {
			s.logger.Warn("Failed to publish training event",
				zap.Error(err),
				zap.String("ticker", ticker))
		}
	}

	return &model.TrainResponse{
		Ticker:            ticker,
		Source:            source,
		Transform:         forecast.TransformLogReturn,
		ArtifactPath:      artifactPath,
		TrainLoss:         trainLoss,
		ValLoss:           valLoss,
		ValRMSE:           valRMSE,
		DirectionAccuracy: dirAcc,
		InputLen:          req.InputLen,
		PredLen:           req.PredLen,
		TrainSamples:      train.Len(),
		ValSamples:        val.Len(),
		TrainedAtUTC:      trainedAt.Format(time.RFC3339),
	}, nil
}

// Runs returns recent training runs, newest first.
func (s *TrainingService) Runs(ctx context.Context, limit int) ([]model.TrainingRun, error) {
	return s.registry.List(ctx, limit)
}

// LatestRun returns the most recent run for a ticker.
func (s *TrainingService) LatestRun(ctx context.Context, ticker string) (*model.TrainingRun, error) {
	run, err := s.registry.GetLatestByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrModelNotFound
	}
	return run, nil
}

// trainCut computes the first validation window index, mirroring
// Dataset.Split so the scaler never sees validation targets.
func trainCut(windows int, valFraction float64) int {
	valN := int(float64(windows) * valFraction)
	if valN < 1 {
		valN = 1
	}
	if valN >= windows {
		valN = windows - 1
	}
	return windows - valN
}
