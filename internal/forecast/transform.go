package forecast

import (
	"errors"
	"fmt"
	"math"
)

// TransformLogReturn is the only transform the service currently supports:
// close prices become standardized log-returns before they reach the model.
const TransformLogReturn = "log_return"

var errNonPositivePrice = errors.New("price series contains non-positive values")

// LogReturns converts a close series into log-returns.
// The result has one element less than the input.
func LogReturns(closes []float64) ([]float64, error) {
	if len(closes) < 2 {
		return nil, fmt.Errorf("need at least 2 prices, got %d", len(closes))
	}

	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return nil, errNonPositivePrice
		}
		returns[i-1] = math.Log(closes[i] / closes[i-1])
	}
	return returns, nil
}

// Scaler standardizes a series with a mean/std fitted on training data.
type Scaler struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// FitScaler estimates mean and standard deviation from values.
// A degenerate (constant) series gets std=1 so Apply stays finite.
func FitScaler(values []float64) Scaler {
	if len(values) == 0 {
		return Scaler{Mean: 0, Std: 1}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(values)))
	if std < 1e-12 {
		std = 1
	}

	return Scaler{Mean: mean, Std: std}
}

// Apply standardizes values in a new slice.
func (s Scaler) Apply(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - s.Mean) / s.Std
	}
	return out
}

// Invert de-standardizes values in a new slice.
func (s Scaler) Invert(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v*s.Std + s.Mean
	}
	return out
}

// ReconstructPrices rebuilds a price path from a starting close and
// a sequence of raw (de-standardized) log-returns.
func ReconstructPrices(lastClose float64, logReturns []float64) []float64 {
	prices := make([]float64, len(logReturns))
	cum := 0.0
	for i, r := range logReturns {
		cum += r
		prices[i] = lastClose * math.Exp(cum)
	}
	return prices
}
