package forecast

import (
	"errors"
	"testing"
)

func series(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i)
	}
	return s
}

func TestBuildDatasetWindows(t *testing.T) {
	ds, err := BuildDataset(series(30), 5, 2)
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}

	// 30 - 5 - 2 + 1 windows
	if ds.Len() != 24 {
		t.Fatalf("expected 24 windows, got %d", ds.Len())
	}

	// First window is the series head.
	if ds.Inputs[0][0] != 0 || ds.Inputs[0][4] != 4 {
		t.Errorf("unexpected first input window: %v", ds.Inputs[0])
	}
	if ds.Targets[0][0] != 5 || ds.Targets[0][1] != 6 {
		t.Errorf("unexpected first target window: %v", ds.Targets[0])
	}

	// Last target ends at the series tail.
	last := ds.Targets[ds.Len()-1]
	if last[len(last)-1] != 29 {
		t.Errorf("last target should end at 29, got %v", last)
	}
}

func TestBuildDatasetNotEnoughData(t *testing.T) {
	_, err := BuildDataset(series(12), 10, 2)

	var notEnough *ErrNotEnoughData
	if !errors.As(err, &notEnough) {
		t.Fatalf("expected ErrNotEnoughData, got %v", err)
	}
	if notEnough.Need <= notEnough.Got {
		t.Errorf("error should report a larger need than got: %+v", notEnough)
	}
}

func TestSplitChronological(t *testing.T) {
	ds, err := BuildDataset(series(120), 10, 1)
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}

	train, val := ds.Split(0.1)
	if train.Len()+val.Len() != ds.Len() {
		t.Fatalf("split sizes %d+%d should sum to %d", train.Len(), val.Len(), ds.Len())
	}
	if val.Len() < 1 {
		t.Fatal("validation split must not be empty")
	}

	// Validation samples come strictly after training samples.
	lastTrain := train.Inputs[train.Len()-1][0]
	firstVal := val.Inputs[0][0]
	if firstVal <= lastTrain {
		t.Errorf("validation should follow training: train starts at %f, val at %f", lastTrain, firstVal)
	}
}
