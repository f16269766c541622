package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Randomizer initializes the weights of a finalized network.
type Randomizer interface {
	Randomize(n *Network, rng *rand.Rand)
}

// Reset randomizes all weights with r.
//
// Example:
//
//	net.Reset(nn.NguyenWidrow{}, rand.New(rand.NewSource(42)))
func (n *Network) Reset(r Randomizer, rng *rand.Rand) error {
	if !n.finalized {
		return ErrNotFinalized
	}
	r.Randomize(n, rng)
	return nil
}

// RangeRandomizer draws every weight uniformly from [Min, Max).
type RangeRandomizer struct {
	Min float64
	Max float64
}

// Randomize implements Randomizer.
func (r RangeRandomizer) Randomize(n *Network, rng *rand.Rand) {
	for i := range n.weights {
		n.weights[i] = r.Min + rng.Float64()*(r.Max-r.Min)
	}
}

// NguyenWidrow initializes weights so the active regions of the neurons in
// each layer spread over the input space.
//
// For a connection from i inputs into h neurons:
//
//	β = 0.7 · h^(1/i)
//
// Each neuron's input weights are drawn from U(-0.5, 0.5) and rescaled to
// Euclidean norm β; its bias weight is drawn from U(-β, β).
//
// Reference: Nguyen & Widrow, "Improving the learning speed of 2-layer
// neural networks by choosing initial values of the adaptive weights" (1990).
type NguyenWidrow struct{}

// Randomize implements Randomizer.
func (NguyenWidrow) Randomize(n *Network, rng *rand.Rand) {
	for l := 0; l < len(n.layers)-1; l++ {
		from := n.layers[l]
		to := n.layers[l+1]
		beta := 0.7 * math.Pow(float64(to.count), 1.0/float64(from.count))

		for j := 0; j < to.count; j++ {
			start := n.WeightIndex(l, j, 0)
			row := n.weights[start : start+from.count]
			for k := range row {
				row[k] = rng.Float64() - 0.5
			}
			if norm := floats.Norm(row, 2); norm > 0 {
				floats.Scale(beta/norm, row)
			}
			if from.bias {
				n.weights[n.WeightIndex(l, j, from.count)] = (rng.Float64()*2 - 1) * beta
			}
		}
	}
}
