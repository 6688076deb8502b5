package forecast

import "math"

// MeanSquaredError evaluates the network on a dataset and returns the
// mean per-element squared error.
func MeanSquaredError(n *Network, ds *Dataset) float64 {
	if ds.Len() == 0 {
		return 0
	}

	var sum float64
	var count int
	for i := range ds.Inputs {
		_, out := n.forward(ds.Inputs[i])
		for j, p := range out {
			diff := p - ds.Targets[i][j]
			sum += diff * diff
			count++
		}
	}
	return sum / float64(count)
}

// DirectionAccuracy is the fraction of validation windows where the
// sign of the first predicted step matches the sign of the actual
// step. Signs are compared on raw returns: standardized values are
// centered on the mean drift, so a standardized sign would measure
// above/below average, not up/down.
func DirectionAccuracy(n *Network, ds *Dataset, scaler Scaler) float64 {
	if ds.Len() == 0 {
		return 0
	}

	var hits int
	for i := range ds.Inputs {
		_, out := n.forward(ds.Inputs[i])
		pred := out[0]*scaler.Std + scaler.Mean
		actual := ds.Targets[i][0]*scaler.Std + scaler.Mean
		if sameSign(pred, actual) {
			hits++
		}
	}
	return float64(hits) / float64(ds.Len())
}

// PriceRMSE reconstructs prices for every validation window and returns
// the RMSE in price space. lastCloses[i] is the close preceding the
// target window of sample i.
func PriceRMSE(n *Network, ds *Dataset, scaler Scaler, lastCloses []float64) float64 {
	if ds.Len() == 0 || len(lastCloses) != ds.Len() {
		return 0
	}

	var sum float64
	var count int
	for i := range ds.Inputs {
		_, out := n.forward(ds.Inputs[i])
		predPrices := ReconstructPrices(lastCloses[i], scaler.Invert(out))
		actualPrices := ReconstructPrices(lastCloses[i], scaler.Invert(ds.Targets[i]))
		for j := range predPrices {
			diff := predPrices[j] - actualPrices[j]
			sum += diff * diff
			count++
		}
	}
	return math.Sqrt(sum / float64(count))
}

func sameSign(a, b float64) bool {
	return (a >= 0 && b >= 0) || (a < 0 && b < 0)
}
