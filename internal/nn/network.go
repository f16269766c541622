package nn

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/xorresilient/internal/activation"
)

// Network is a fully connected feed-forward network.
//
// Build it layer by layer, then Finalize to lay out the weights:
//
//	net := nn.New()
//	_ = net.AddLayer(fn, true, 2)  // input
//	_ = net.AddLayer(fn, true, 4)  // hidden
//	_ = net.AddLayer(fn, false, 1) // output
//	if err := net.Finalize(); err != nil {
//	    return err
//	}
//	net.Reset(nn.NguyenWidrow{}, rand.New(rand.NewSource(1)))
//	output, err := net.Compute([]float64{0.01, 0.99})
//
// Evaluation never mutates the network, so a finalized network can be
// evaluated from several goroutines as long as each one uses its own
// Workspace and nobody updates the weights concurrently.
type Network struct {
	layers      []*Layer
	weights     []float64
	weightIndex []int // offset of the block feeding layer l+1, per layer l
	finalized   bool
}

// New creates an empty network.
func New() *Network {
	return &Network{}
}

// AddLayer appends a layer with count neurons.
//
// The network stores its own clone of fn, so one function value may be
// passed for every layer without the layers sharing state. fn may be nil
// only for the input (first) layer.
func (n *Network) AddLayer(fn activation.Function, bias bool, count int) error {
	if n.finalized {
		return ErrFinalized
	}
	if count <= 0 {
		return fmt.Errorf("layer %d: neuron count must be positive, got %d", len(n.layers), count)
	}
	if fn == nil && len(n.layers) > 0 {
		return fmt.Errorf("layer %d: activation function is required", len(n.layers))
	}

	var owned activation.Function
	if fn != nil {
		owned = fn.Clone()
	}
	n.layers = append(n.layers, &Layer{count: count, bias: bias, activation: owned})
	return nil
}

// Finalize lays out the weight vector. The network needs at least an input
// and an output layer. Weights start at zero; call Reset to randomize them.
func (n *Network) Finalize() error {
	if n.finalized {
		return ErrFinalized
	}
	if len(n.layers) < 2 {
		return fmt.Errorf("network needs at least 2 layers, got %d", len(n.layers))
	}

	n.weightIndex = make([]int, len(n.layers)-1)
	total := 0
	for l := 0; l < len(n.layers)-1; l++ {
		n.weightIndex[l] = total
		total += n.layers[l+1].count * n.layers[l].total()
	}
	n.weights = make([]float64, total)
	n.finalized = true
	return nil
}

// Finalized reports whether Finalize has run.
func (n *Network) Finalized() bool {
	return n.finalized
}

// Layers returns the layers, input first.
func (n *Network) Layers() []*Layer {
	return n.layers
}

// InputCount returns the number of input neurons.
func (n *Network) InputCount() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[0].count
}

// OutputCount returns the number of output neurons.
func (n *Network) OutputCount() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[len(n.layers)-1].count
}

// WeightCount returns the length of the weight vector.
func (n *Network) WeightCount() int {
	return len(n.weights)
}

// Weights returns the live weight vector. Optimizers update it in place.
func (n *Network) Weights() []float64 {
	return n.weights
}

// SetWeights copies w into the weight vector.
func (n *Network) SetWeights(w []float64) error {
	if !n.finalized {
		return ErrNotFinalized
	}
	if len(w) != len(n.weights) {
		return fmt.Errorf("weights: expected %d values, got %d: %w", len(n.weights), len(w), ErrShape)
	}
	copy(n.weights, w)
	return nil
}

// WeightIndex returns the position in the weight vector of the connection
// from neuron from of layer l to neuron to of layer l+1. from == Count() of
// layer l addresses the bias neuron.
func (n *Network) WeightIndex(l, to, from int) int {
	return n.weightIndex[l] + to*n.layers[l].total() + from
}

// Compute evaluates the network for one input vector and returns a new
// output vector.
func (n *Network) Compute(input []float64) ([]float64, error) {
	ws := n.NewWorkspace()
	if err := n.Forward(ws, input); err != nil {
		return nil, err
	}
	return append([]float64(nil), ws.Output()...), nil
}

// Forward evaluates the network into ws, keeping every layer's sums and
// outputs for a following backward pass.
func (n *Network) Forward(ws *Workspace, input []float64) error {
	if !n.finalized {
		return ErrNotFinalized
	}
	if len(input) != n.InputCount() {
		return fmt.Errorf("input: expected %d values, got %d: %w", n.InputCount(), len(input), ErrShape)
	}

	copy(ws.Outputs[0], input)
	for l := 0; l < len(n.layers)-1; l++ {
		from := n.layers[l]
		to := n.layers[l+1]
		in := ws.Outputs[l][:from.total()]
		stride := from.total()
		base := n.weightIndex[l]

		sums := ws.Sums[l+1]
		for j := 0; j < to.count; j++ {
			row := n.weights[base+j*stride : base+(j+1)*stride]
			sums[j] = floats.Dot(row, in)
		}

		out := ws.Outputs[l+1]
		copy(out, sums[:to.count])
		ws.functions[l+1].Apply(out, 0, to.count)
	}
	return nil
}

// String returns a compact description such as "2B-4B-1".
func (n *Network) String() string {
	parts := make([]string, len(n.layers))
	for i, l := range n.layers {
		parts[i] = fmt.Sprint(l.count)
		if l.bias && i < len(n.layers)-1 {
			parts[i] += "B"
		}
	}
	return strings.Join(parts, "-")
}

// Workspace holds the buffers for one forward/backward pass.
//
// Sums[l] and Outputs[l] have one entry per neuron of layer l; Outputs[l]
// carries one extra trailing 1 when layer l has a bias neuron. Each
// workspace owns clones of the layers' activation functions.
type Workspace struct {
	Sums      [][]float64
	Outputs   [][]float64
	functions []activation.Function
}

// NewWorkspace allocates a workspace sized for n.
func (n *Network) NewWorkspace() *Workspace {
	ws := &Workspace{
		Sums:      make([][]float64, len(n.layers)),
		Outputs:   make([][]float64, len(n.layers)),
		functions: make([]activation.Function, len(n.layers)),
	}
	for i, l := range n.layers {
		ws.Sums[i] = make([]float64, l.count)
		ws.Outputs[i] = make([]float64, l.total())
		if l.bias {
			ws.Outputs[i][l.count] = 1.0
		}
		if l.activation != nil {
			ws.functions[i] = l.activation.Clone()
		}
	}
	return ws
}

// Function returns the workspace's activation function for layer l.
func (ws *Workspace) Function(l int) activation.Function {
	return ws.functions[l]
}

// Output returns the output layer's values (without bias).
func (ws *Workspace) Output() []float64 {
	last := len(ws.Outputs) - 1
	return ws.Outputs[last][:len(ws.Sums[last])]
}
