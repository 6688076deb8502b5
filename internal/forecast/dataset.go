package forecast

import "fmt"

// ErrNotEnoughData signals that the price history is too short to build
// a usable training set for the requested window sizes.
type ErrNotEnoughData struct {
	Got, Need int
}

func (e *ErrNotEnoughData) Error() string {
	return fmt.Sprintf("not enough data points: got %d, need at least %d", e.Got, e.Need)
}

// minWindows is the smallest number of samples worth training on:
// anything less cannot produce both a train and a validation split.
const minWindows = 10

// Dataset holds sliding-window samples cut from a single series,
// in chronological order.
type Dataset struct {
	Inputs  [][]float64
	Targets [][]float64
}

// BuildDataset slices a transformed series into (inputLen -> predLen)
// windows. The i-th sample uses series[i:i+inputLen] as input and the
// following predLen values as target.
func BuildDataset(series []float64, inputLen, predLen int) (*Dataset, error) {
	n := len(series) - inputLen - predLen + 1
	if n < minWindows {
		return nil, &ErrNotEnoughData{
			Got:  len(series),
			Need: inputLen + predLen + minWindows - 1,
		}
	}

	ds := &Dataset{
		Inputs:  make([][]float64, n),
		Targets: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		ds.Inputs[i] = series[i : i+inputLen]
		ds.Targets[i] = series[i+inputLen : i+inputLen+predLen]
	}
	return ds, nil
}

// Split cuts the dataset chronologically: the trailing valFraction of
// samples form the validation set (at least one sample each side).
func (d *Dataset) Split(valFraction float64) (train, val *Dataset) {
	n := len(d.Inputs)
	valN := int(float64(n) * valFraction)
	if valN < 1 {
		valN = 1
	}
	if valN >= n {
		valN = n - 1
	}
	cut := n - valN

	train = &Dataset{Inputs: d.Inputs[:cut], Targets: d.Targets[:cut]}
	val = &Dataset{Inputs: d.Inputs[cut:], Targets: d.Targets[cut:]}
	return train, val
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Inputs) }
