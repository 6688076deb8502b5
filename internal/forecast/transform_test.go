package forecast

import (
	"math"
	"testing"
)

func TestLogReturnsAndReconstructRoundTrip(t *testing.T) {
	closes := []float64{100, 102, 101, 105, 104.5}

	returns, err := LogReturns(closes)
	if err != nil {
		t.Fatalf("LogReturns: %v", err)
	}
	if len(returns) != len(closes)-1 {
		t.Fatalf("expected %d returns, got %d", len(closes)-1, len(returns))
	}

	rebuilt := ReconstructPrices(closes[0], returns)
	for i, want := range closes[1:] {
		if math.Abs(rebuilt[i]-want) > 1e-9 {
			t.Errorf("price %d: expected %.6f, got %.6f", i, want, rebuilt[i])
		}
	}
}

func TestLogReturnsRejectsBadInput(t *testing.T) {
	if _, err := LogReturns([]float64{100}); err == nil {
		t.Error("expected error for single price")
	}
	if _, err := LogReturns([]float64{100, 0, 105}); err == nil {
		t.Error("expected error for non-positive price")
	}
}

func TestScalerApplyInvert(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	scaler := FitScaler(values)

	z := scaler.Apply(values)

	var mean float64
	for _, v := range z {
		mean += v
	}
	mean /= float64(len(z))
	if math.Abs(mean) > 1e-9 {
		t.Errorf("standardized mean should be ~0, got %f", mean)
	}

	back := scaler.Invert(z)
	for i, want := range values {
		if math.Abs(back[i]-want) > 1e-9 {
			t.Errorf("invert %d: expected %f, got %f", i, want, back[i])
		}
	}
}

func TestFitScalerConstantSeries(t *testing.T) {
	scaler := FitScaler([]float64{3, 3, 3, 3})
	if scaler.Std != 1 {
		t.Errorf("constant series should get std=1, got %f", scaler.Std)
	}

	z := scaler.Apply([]float64{3})
	if z[0] != 0 {
		t.Errorf("expected 0 after standardizing the mean value, got %f", z[0])
	}
}
