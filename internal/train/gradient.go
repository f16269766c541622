package train

import (
	"github.com/born-ml/xorresilient/internal/activation"
	"github.com/born-ml/xorresilient/internal/dataset"
	"github.com/born-ml/xorresilient/internal/nn"
)

// gradientWorker accumulates gradients and error for a slice of the dataset.
// Each worker owns a workspace, so workers never share buffers.
type gradientWorker struct {
	net         *nn.Network
	ws          *nn.Workspace
	deltas      [][]float64
	grads       []float64
	errors      nn.ErrorCalculator
	fixFlatSpot bool
}

func newGradientWorker(net *nn.Network, fixFlatSpot bool) *gradientWorker {
	layers := net.Layers()
	deltas := make([][]float64, len(layers))
	for i, l := range layers {
		deltas[i] = make([]float64, l.Count())
	}
	return &gradientWorker{
		net:         net,
		ws:          net.NewWorkspace(),
		deltas:      deltas,
		grads:       make([]float64, net.WeightCount()),
		fixFlatSpot: fixFlatSpot,
	}
}

// reset clears accumulated gradients and error.
func (w *gradientWorker) reset() {
	clear(w.grads)
	w.errors.Reset()
}

// run processes pairs, adding ∂E/∂w for E = ½·Σ(actual - ideal)².
func (w *gradientWorker) run(pairs []dataset.Pair) error {
	for _, p := range pairs {
		if err := w.process(p); err != nil {
			return err
		}
	}
	return nil
}

func (w *gradientWorker) process(p dataset.Pair) error {
	if err := w.net.Forward(w.ws, p.Input); err != nil {
		return err
	}
	w.errors.Update(w.ws.Output(), p.Ideal)

	layers := w.net.Layers()
	last := len(layers) - 1

	// output deltas
	fn := w.ws.Function(last)
	flat := w.flatSpot(fn)
	for j := range w.deltas[last] {
		before := w.ws.Sums[last][j]
		after := w.ws.Outputs[last][j]
		w.deltas[last][j] = (after - p.Ideal[j]) * (fn.Derivative(before, after) + flat)
	}

	for l := last - 1; l >= 0; l-- {
		from := layers[l]
		to := layers[l+1]
		in := w.ws.Outputs[l]

		// weight gradients for the block feeding layer l+1
		for j := 0; j < to.Count(); j++ {
			d := w.deltas[l+1][j]
			base := w.net.WeightIndex(l, j, 0)
			for k := range in {
				w.grads[base+k] += d * in[k]
			}
		}

		if l == 0 {
			break
		}

		// back-propagate into layer l (the bias neuron has no delta)
		fn := w.ws.Function(l)
		flat := w.flatSpot(fn)
		weights := w.net.Weights()
		for k := 0; k < from.Count(); k++ {
			var sum float64
			for j := 0; j < to.Count(); j++ {
				sum += weights[w.net.WeightIndex(l, j, k)] * w.deltas[l+1][j]
			}
			before := w.ws.Sums[l][k]
			after := w.ws.Outputs[l][k]
			w.deltas[l][k] = sum * (fn.Derivative(before, after) + flat)
		}
	}
	return nil
}

func (w *gradientWorker) flatSpot(fn activation.Function) float64 {
	if !w.fixFlatSpot {
		return 0
	}
	return activation.FlatSpot(fn)
}
