package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestRangeRandomizer(t *testing.T) {
	net := newTestNetwork(t)
	require.NoError(t, net.Reset(RangeRandomizer{Min: -1, Max: 1}, rand.New(rand.NewSource(3))))

	for _, w := range net.Weights() {
		assert.GreaterOrEqual(t, w, -1.0)
		assert.Less(t, w, 1.0)
	}
}

func TestNguyenWidrow_RowNorms(t *testing.T) {
	net := newTestNetwork(t)
	require.NoError(t, net.Reset(NguyenWidrow{}, rand.New(rand.NewSource(11))))

	// input -> hidden: 2 inputs into 2 neurons
	beta := 0.7 * math.Pow(2, 1.0/2)
	for j := 0; j < 2; j++ {
		start := net.WeightIndex(0, j, 0)
		row := net.Weights()[start : start+2]
		assert.InDelta(t, beta, floats.Norm(row, 2), 1e-12)

		bias := net.Weights()[net.WeightIndex(0, j, 2)]
		assert.LessOrEqual(t, math.Abs(bias), beta)
	}

	// hidden -> output: 2 inputs into 1 neuron
	beta = 0.7 * math.Pow(1, 1.0/2)
	start := net.WeightIndex(1, 0, 0)
	assert.InDelta(t, beta, floats.Norm(net.Weights()[start:start+2], 2), 1e-12)
}

func TestNguyenWidrow_Deterministic(t *testing.T) {
	a := newTestNetwork(t)
	b := newTestNetwork(t)
	require.NoError(t, a.Reset(NguyenWidrow{}, rand.New(rand.NewSource(5))))
	require.NoError(t, b.Reset(NguyenWidrow{}, rand.New(rand.NewSource(5))))
	assert.Equal(t, a.Weights(), b.Weights())
}
