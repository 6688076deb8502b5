package forecast

import (
	"encoding/json"
	"fmt"
	"time"
)

// Artifact is the serializable form of a trained model: everything
// needed to forecast without retraining.
type Artifact struct {
	Ticker    string    `json:"ticker"`
	Transform string    `json:"transform"`
	InputLen  int       `json:"input_len"`
	PredLen   int       `json:"pred_len"`
	Scaler    Scaler    `json:"scaler"`
	Network   *Network  `json:"network"`
	TrainedAt time.Time `json:"trained_at"`
}

// Marshal encodes the artifact as JSON.
func (a *Artifact) Marshal() ([]byte, error) {
	return json.Marshal(a)
}

// UnmarshalArtifact decodes an artifact and checks it is usable.
func UnmarshalArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	if a.InputLen < 1 || a.PredLen < 1 {
		return nil, fmt.Errorf("artifact for %s has invalid window sizes", a.Ticker)
	}
	if a.Network == nil || a.Network.InputLen != a.InputLen || a.Network.OutputLen != a.PredLen {
		return nil, fmt.Errorf("artifact for %s is inconsistent", a.Ticker)
	}
	return &a, nil
}

// Forecast rolls the model forward until horizon raw log-returns are
// produced. recentReturns are raw (untransformed) log-returns, newest
// last, of which the trailing InputLen seed the first window.
func (a *Artifact) Forecast(recentReturns []float64, horizon int) ([]float64, error) {
	if len(recentReturns) < a.InputLen {
		return nil, &ErrNotEnoughData{Got: len(recentReturns) + 1, Need: a.InputLen + 1}
	}
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	window := a.Scaler.Apply(recentReturns[len(recentReturns)-a.InputLen:])

	out := make([]float64, 0, horizon+a.PredLen)
	for len(out) < horizon {
		step, err := a.Network.Predict(window)
		if err != nil {
			return nil, err
		}
		out = append(out, step...)

		// Slide the window over the freshly predicted values.
		window = append(window, step...)
		window = window[len(window)-a.InputLen:]
	}

	return a.Scaler.Invert(out[:horizon]), nil
}
