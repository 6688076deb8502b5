package forecast

import (
	"fmt"
	"math"
	"math/rand"
)

// defaultHiddenSize is the width of the single hidden layer.
const defaultHiddenSize = 32

// Network is a small feed-forward net: inputLen -> hidden (tanh) -> predLen,
// trained with mini-batch gradient descent on MSE.
type Network struct {
	InputLen  int         `json:"input_len"`
	HiddenLen int         `json:"hidden_len"`
	OutputLen int         `json:"output_len"`
	W1        [][]float64 `json:"w1"` // [hidden][input]
	B1        []float64   `json:"b1"`
	W2        [][]float64 `json:"w2"` // [output][hidden]
	B2        []float64   `json:"b2"`
}

// TrainConfig carries the user-tunable hyperparameters.
type TrainConfig struct {
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         int64
}

// NewNetwork creates a network with Xavier-style random initial weights.
func NewNetwork(inputLen, outputLen int, seed int64) *Network {
	rng := rand.New(rand.NewSource(seed))
	hidden := defaultHiddenSize

	n := &Network{
		InputLen:  inputLen,
		HiddenLen: hidden,
		OutputLen: outputLen,
		W1:        make([][]float64, hidden),
		B1:        make([]float64, hidden),
		W2:        make([][]float64, outputLen),
		B2:        make([]float64, outputLen),
	}

	scale1 := math.Sqrt(2.0 / float64(inputLen+hidden))
	for h := range n.W1 {
		n.W1[h] = make([]float64, inputLen)
		for i := range n.W1[h] {
			n.W1[h][i] = rng.NormFloat64() * scale1
		}
	}

	scale2 := math.Sqrt(2.0 / float64(hidden+outputLen))
	for o := range n.W2 {
		n.W2[o] = make([]float64, hidden)
		for h := range n.W2[o] {
			n.W2[o][h] = rng.NormFloat64() * scale2
		}
	}

	return n
}

// forward computes hidden activations and outputs for one sample.
func (n *Network) forward(x []float64) (hidden, out []float64) {
	hidden = make([]float64, n.HiddenLen)
	for h := 0; h < n.HiddenLen; h++ {
		sum := n.B1[h]
		for i, xi := range x {
			sum += n.W1[h][i] * xi
		}
		hidden[h] = math.Tanh(sum)
	}

	out = make([]float64, n.OutputLen)
	for o := 0; o < n.OutputLen; o++ {
		sum := n.B2[o]
		for h, hv := range hidden {
			sum += n.W2[o][h] * hv
		}
		out[o] = sum
	}
	return hidden, out
}

// Predict runs one forward pass.
func (n *Network) Predict(x []float64) ([]float64, error) {
	if len(x) != n.InputLen {
		return nil, fmt.Errorf("input length %d does not match network input %d", len(x), n.InputLen)
	}
	_, out := n.forward(x)
	return out, nil
}

// Train runs mini-batch gradient descent and returns the mean training
// loss of the final epoch.
func (n *Network) Train(ds *Dataset, cfg TrainConfig) float64 {
	rng := rand.New(rand.NewSource(cfg.Seed))
	count := ds.Len()

	order := make([]int, count)
	for i := range order {
		order[i] = i
	}

	// A non-positive batch size would stall the epoch loop.
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	if batchSize > count {
		batchSize = count
	}

	var epochLoss float64
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		rng.Shuffle(count, func(i, j int) { order[i], order[j] = order[j], order[i] })

		epochLoss = 0
		for start := 0; start < count; start += batchSize {
			end := start + batchSize
			if end > count {
				end = count
			}
			epochLoss += n.trainBatch(ds, order[start:end], cfg.LearningRate)
		}
		epochLoss /= float64(count)
	}
	return epochLoss
}

// trainBatch accumulates gradients over one batch, applies a single
// update and returns the summed per-sample loss.
func (n *Network) trainBatch(ds *Dataset, batch []int, lr float64) float64 {
	gW1 := make([][]float64, n.HiddenLen)
	gB1 := make([]float64, n.HiddenLen)
	for h := range gW1 {
		gW1[h] = make([]float64, n.InputLen)
	}
	gW2 := make([][]float64, n.OutputLen)
	gB2 := make([]float64, n.OutputLen)
	for o := range gW2 {
		gW2[o] = make([]float64, n.HiddenLen)
	}

	var loss float64
	for _, idx := range batch {
		x := ds.Inputs[idx]
		y := ds.Targets[idx]
		hidden, out := n.forward(x)

		// Output deltas: d(MSE)/d(out) with the 2/outputLen factor folded in.
		dOut := make([]float64, n.OutputLen)
		for o := range out {
			diff := out[o] - y[o]
			loss += diff * diff
			dOut[o] = 2 * diff / float64(n.OutputLen)
		}

		dHidden := make([]float64, n.HiddenLen)
		for o := range dOut {
			gB2[o] += dOut[o]
			for h := range hidden {
				gW2[o][h] += dOut[o] * hidden[h]
				dHidden[h] += dOut[o] * n.W2[o][h]
			}
		}

		for h := range dHidden {
			// tanh' = 1 - tanh^2
			dPre := dHidden[h] * (1 - hidden[h]*hidden[h])
			gB1[h] += dPre
			for i, xi := range x {
				gW1[h][i] += dPre * xi
			}
		}
	}

	scale := lr / float64(len(batch))
	for h := range n.W1 {
		n.B1[h] -= scale * gB1[h]
		for i := range n.W1[h] {
			n.W1[h][i] -= scale * gW1[h][i]
		}
	}
	for o := range n.W2 {
		n.B2[o] -= scale * gB2[o]
		for h := range n.W2[o] {
			n.W2[o][h] -= scale * gW2[o][h]
		}
	}

	return loss / float64(n.OutputLen)
}
