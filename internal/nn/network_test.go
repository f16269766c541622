package nn

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/xorresilient/internal/activation"
)

// newTestNetwork builds 2B-2B-1 with tanh hidden and sigmoid output.
func newTestNetwork(t *testing.T) *Network {
	t.Helper()
	net := New()
	require.NoError(t, net.AddLayer(nil, true, 2))
	require.NoError(t, net.AddLayer(activation.NewTanh(), true, 2))
	require.NoError(t, net.AddLayer(activation.NewSigmoid(), false, 1))
	require.NoError(t, net.Finalize())
	return net
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func TestNetwork_Layout(t *testing.T) {
	net := newTestNetwork(t)

	assert.Equal(t, 2, net.InputCount())
	assert.Equal(t, 1, net.OutputCount())
	assert.Equal(t, 2*3+1*3, net.WeightCount())
	assert.Equal(t, "2B-2B-1", net.String())

	assert.Equal(t, 0, net.WeightIndex(0, 0, 0))
	assert.Equal(t, 2, net.WeightIndex(0, 0, 2)) // bias of hidden neuron 0
	assert.Equal(t, 4, net.WeightIndex(0, 1, 1))
	assert.Equal(t, 6, net.WeightIndex(1, 0, 0))
	assert.Equal(t, 8, net.WeightIndex(1, 0, 2))
}

func TestNetwork_Compute(t *testing.T) {
	net := newTestNetwork(t)
	require.NoError(t, net.SetWeights([]float64{
		0.5, -0.25, 0.1, // hidden 0
		0.3, 0.8, -0.2, // hidden 1
		1.0, -1.5, 0.05, // output
	}))

	out, err := net.Compute([]float64{1, 2})
	require.NoError(t, err)
	require.Len(t, out, 1)

	h0 := math.Tanh(0.5*1 - 0.25*2 + 0.1)
	h1 := math.Tanh(0.3*1 + 0.8*2 - 0.2)
	want := sigmoid(1.0*h0 - 1.5*h1 + 0.05)
	assert.InDelta(t, want, out[0], 1e-12)
}

func TestNetwork_ForwardKeepsSums(t *testing.T) {
	net := newTestNetwork(t)
	require.NoError(t, net.SetWeights([]float64{1, 0, 0, 0, 1, 0, 1, 1, 0}))

	ws := net.NewWorkspace()
	require.NoError(t, net.Forward(ws, []float64{0.3, -0.4}))

	assert.Equal(t, []float64{0.3, -0.4, 1}, ws.Outputs[0])
	assert.InDeltaSlice(t, []float64{0.3, -0.4}, ws.Sums[1], 1e-12)
	assert.InDelta(t, math.Tanh(0.3), ws.Outputs[1][0], 1e-12)
	assert.Equal(t, 1.0, ws.Outputs[1][2])
	assert.Len(t, ws.Output(), 1)
}

func TestNetwork_LayersOwnTheirFunctions(t *testing.T) {
	fn := activation.NewFadingSine(1)

	net := New()
	require.NoError(t, net.AddLayer(fn, true, 2))
	require.NoError(t, net.AddLayer(fn, true, 4))
	require.NoError(t, net.AddLayer(fn, false, 1))
	require.NoError(t, net.Finalize())

	layers := net.Layers()
	assert.NotSame(t, layers[1].Activation(), layers[2].Activation())
	assert.NotSame(t, fn, layers[1].Activation())

	require.NoError(t, fn.SetParam(0, 9))
	assert.Equal(t, []float64{1}, layers[1].Activation().Params())

	ws := net.NewWorkspace()
	assert.NotSame(t, layers[1].Activation(), ws.Function(1))
}

func TestNetwork_Errors(t *testing.T) {
	net := New()
	_, err := net.Compute([]float64{1})
	assert.ErrorIs(t, err, ErrNotFinalized)
	assert.ErrorIs(t, net.SetWeights(nil), ErrNotFinalized)
	assert.ErrorIs(t, net.Reset(NguyenWidrow{}, rand.New(rand.NewSource(1))), ErrNotFinalized)

	assert.Error(t, net.AddLayer(activation.NewTanh(), true, 0))
	require.NoError(t, net.AddLayer(nil, true, 2))
	assert.Error(t, net.AddLayer(nil, true, 2), "only the input layer may omit its function")
	assert.Error(t, net.Finalize(), "a single layer cannot be finalized")

	net = newTestNetwork(t)
	assert.ErrorIs(t, net.AddLayer(activation.NewTanh(), false, 1), ErrFinalized)
	assert.ErrorIs(t, net.Finalize(), ErrFinalized)

	_, err = net.Compute([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShape)
	assert.ErrorIs(t, net.SetWeights([]float64{1}), ErrShape)
}

func TestNetwork_ConcurrentWorkspaces(t *testing.T) {
	net := newTestNetwork(t)
	require.NoError(t, net.Reset(NguyenWidrow{}, rand.New(rand.NewSource(7))))

	want, err := net.Compute([]float64{0.25, -0.5})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]float64, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ws := net.NewWorkspace()
			if err := net.Forward(ws, []float64{0.25, -0.5}); err == nil {
				results[i] = append([]float64(nil), ws.Output()...)
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
