package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/forecast"
	"github.com/yourorg/forecast-service/internal/model"
)

// --- fakes shared by the service tests ---

type fakeHistory struct {
	bars    []model.Bar
	symbols []string
	source  model.DataSource
	err     error
}

func (f *fakeHistory) History(ctx context.Context, ticker string, years int, source model.DataSource, localDir string) ([]model.Bar, model.DataSource, error) {
	if f.err != nil {
		return nil, f.source, f.err
	}
	return f.bars, f.source, nil
}

func (f *fakeHistory) Symbols(ctx context.Context, source model.DataSource, localDir string) ([]string, model.DataSource, error) {
	if f.err != nil {
		return nil, f.source, f.err
	}
	return f.symbols, f.source, nil
}

type fakeStore struct {
	saved map[string]*forecast.Artifact
	n     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]*forecast.Artifact)}
}

func (f *fakeStore) Save(ctx context.Context, a *forecast.Artifact) (string, error) {
	f.n++
	path := fmt.Sprintf("mem://artifacts/%s/%d.json", a.Ticker, f.n)
	f.saved[path] = a
	return path, nil
}

func (f *fakeStore) Load(ctx context.Context, path string) (*forecast.Artifact, error) {
	a, ok := f.saved[path]
	if !ok {
		return nil, fmt.Errorf("artifact not found: %s", path)
	}
	return a, nil
}

type fakeRegistry struct {
	runs []model.TrainingRun
}

func (f *fakeRegistry) Insert(ctx context.Context, run *model.TrainingRun) (int, error) {
	r := *run
	r.ID = len(f.runs) + 1
	f.runs = append(f.runs, r)
	return r.ID, nil
}

func (f *fakeRegistry) GetLatestByTicker(ctx context.Context, ticker string) (*model.TrainingRun, error) {
	for i := len(f.runs) - 1; i >= 0; i-- {
		if f.runs[i].Ticker == ticker {
			run := f.runs[i]
			return &run, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistry) List(ctx context.Context, limit int) ([]model.TrainingRun, error) {
	return f.runs, nil
}

type fakePublisher struct {
	events []model.TrainingCompletedEvent
	err    error
}

func (f *fakePublisher) PublishTrainingCompleted(ctx context.Context, topic string, event model.TrainingCompletedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

// trendBars builds a smooth upward price path long enough to train on.
func trendBars(n int) []model.Bar {
	bars := make([]model.Bar, n)
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.Bar{
			Date:  start.AddDate(0, 0, i),
			Close: 100 * math.Exp(0.001*float64(i)),
		}
	}
	return bars
}

func testTrainRequest() *model.TrainRequest {
	req := model.NewTrainRequest()
	req.Ticker = "acme"
	req.InputLen = 20
	req.PredLen = 2
	req.Epochs = 3
	req.BatchSize = 16
	return &req
}

func newTestTrainingService(data HistorySource, store ArtifactStore, registry RunRegistry, pub EventPublisher) *TrainingService {
	return NewTrainingService(data, store, registry, pub, "training-events", 0.1, 42, zap.NewNop())
}

func TestTrainEndToEnd(t *testing.T) {
	data := &fakeHistory{bars: trendBars(300), source: model.SourceYFinance}
	store := newFakeStore()
	registry := &fakeRegistry{}
	pub := &fakePublisher{}
	svc := newTestTrainingService(data, store, registry, pub)

	resp, err := svc.Train(context.Background(), testTrainRequest())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if resp.Ticker != "ACME" {
		t.Errorf("ticker should be upper-cased, got %s", resp.Ticker)
	}
	if resp.Source != model.SourceYFinance {
		t.Errorf("response should echo the resolved source, got %s", resp.Source)
	}
	if resp.Transform != forecast.TransformLogReturn {
		t.Errorf("unexpected transform %s", resp.Transform)
	}

	// 300 closes -> 299 returns -> 299-20-2+1 windows.
	if resp.TrainSamples+resp.ValSamples != 278 {
		t.Errorf("expected 278 samples total, got %d train + %d val", resp.TrainSamples, resp.ValSamples)
	}
	if resp.ValSamples < 1 {
		t.Error("validation split must not be empty")
	}
	if resp.DirectionAccuracy < 0 || resp.DirectionAccuracy > 1 {
		t.Errorf("direction accuracy out of range: %f", resp.DirectionAccuracy)
	}
	if _, err := time.Parse(time.RFC3339, resp.TrainedAtUTC); err != nil {
		t.Errorf("trained_at_utc should be RFC3339: %v", err)
	}

	// Artifact persisted and loadable.
	art, err := store.Load(context.Background(), resp.ArtifactPath)
	if err != nil {
		t.Fatalf("artifact should be loadable: %v", err)
	}
	if art.InputLen != 20 || art.PredLen != 2 {
		t.Errorf("artifact windows do not match request: %+v", art)
	}

	// Run recorded and event published.
	if len(registry.runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(registry.runs))
	}
	if len(pub.events) != 1 || pub.events[0].RunID != 1 || pub.events[0].Ticker != "ACME" {
		t.Errorf("unexpected events: %+v", pub.events)
	}
}

func TestTrainNotEnoughData(t *testing.T) {
	data := &fakeHistory{bars: trendBars(25), source: model.SourceLocal}
	svc := newTestTrainingService(data, newFakeStore(), &fakeRegistry{}, &fakePublisher{})

	_, err := svc.Train(context.Background(), testTrainRequest())

	var notEnough *forecast.ErrNotEnoughData
	if !errors.As(err, &notEnough) {
		t.Fatalf("expected ErrNotEnoughData, got %v", err)
	}
}

func TestTrainSurvivesPublishFailure(t *testing.T) {
	data := &fakeHistory{bars: trendBars(300), source: model.SourceYFinance}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newTestTrainingService(data, newFakeStore(), &fakeRegistry{}, pub)

	if _, err := svc.Train(context.Background(), testTrainRequest()); err != nil {
		t.Fatalf("publish failure must not fail training: %v", err)
	}
}

func TestLatestRunNotFound(t *testing.T) {
	svc := newTestTrainingService(&fakeHistory{}, newFakeStore(), &fakeRegistry{}, &fakePublisher{})

	_, err := svc.LatestRun(context.Background(), "GHOST")
	if !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}
}
