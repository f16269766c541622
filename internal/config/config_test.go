package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/born-ml/xorresilient/internal/activation"
	"github.com/born-ml/xorresilient/internal/dataset"
)

func TestLoad_DefaultsReproduceClassicRun(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	cfgs, err := cfg.Build(nil)
	require.NoError(t, err)

	want := []struct {
		title, activation, dataset string
	}{
		{"Fading Sine", "fading-sine", dataset.BipolarXOR},
		{"Sigmoid", "sigmoid", dataset.ZeroOneXOR},
		{"Bipolar Sigmoid", "bipolar-steepened-sigmoid", dataset.BipolarXOR},
		{"Logarithm", "log", dataset.BipolarXOR},
		{"Hyperbolic Tangent", "tanh", dataset.BipolarXOR},
		{"Elliott Symmetric", "elliott-symmetric", dataset.BipolarXOR},
	}
	require.Len(t, cfgs, len(want))
	for i, w := range want {
		c := cfgs[i]
		assert.Equal(t, w.title, c.Title)
		assert.Equal(t, w.activation, c.Activation.Name())
		assert.Equal(t, w.dataset, c.Dataset.Name)
		assert.Equal(t, 4, c.Hidden)
		assert.Equal(t, 0.0001, c.TargetError)
		assert.Equal(t, 1000, c.MaxEpochs)
		assert.Equal(t, 100*time.Millisecond, c.MaxDuration)
		assert.Equal(t, "rprop", c.Optimizer)
		assert.True(t, c.Train.FixFlatSpot)
		assert.False(t, c.Train.Parallel.Enabled)
	}
	assert.Equal(t, []float64{1}, cfgs[0].Activation.Params())
}

func TestLoadFile_ExampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadFile("../../config/xorresilient.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default().Experiments, cfg.Experiments)
	assert.Equal(t, Default().Defaults.MaxDuration, cfg.Defaults.MaxDuration)
}

func TestLoadFile_Overrides(t *testing.T) {
	cfg, err := LoadFile("testdata/custom.yaml")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Defaults.Hidden, "unset keys keep their defaults")
	assert.Equal(t, 250, cfg.Defaults.MaxEpochs)
	assert.Equal(t, 2*time.Second, cfg.Defaults.MaxDuration)

	cfgs, err := cfg.Build(nil)
	require.NoError(t, err)
	require.Len(t, cfgs, 2)

	sine := cfgs[0]
	assert.Equal(t, 6, sine.Hidden)
	assert.Equal(t, int64(7), sine.Seed)
	assert.Equal(t, 250, sine.MaxEpochs)
	assert.Equal(t, "rprop-", sine.OptimizerParams.Type)
	period, err := activation.Param(sine.Activation, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, period)

	momentum := cfgs[1]
	assert.Equal(t, "backprop", momentum.Optimizer)
	assert.Equal(t, 0.3, momentum.OptimizerParams.LearningRate)
	assert.Equal(t, 0.5, momentum.OptimizerParams.Momentum)
	assert.Equal(t, 4, momentum.Hidden)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("XORRESILIENT_DEFAULTS_MAXEPOCHS", "42")
	t.Setenv("XORRESILIENT_DEFAULTS_OPTIMIZER_TYPE", "irprop-")

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Defaults.MaxEpochs)
	assert.Equal(t, "irprop-", cfg.Defaults.Optimizer.Type)
}

func TestLoadFile_ReportsAllErrors(t *testing.T) {
	_, err := LoadFile("testdata/invalid.yaml")
	require.Error(t, err)
	errs := multierr.Errors(err)
	// hidden, maxEpochs, unknown activation, duplicate title, missing dataset
	assert.Len(t, errs, 5)
	assert.ErrorIs(t, err, activation.ErrUnknownActivation)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	cfg := Default()

	all, err := cfg.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	some, err := cfg.Select([]string{"tanh", " fading sine "})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "Fading Sine", some[0].Title)
	assert.Equal(t, "Hyperbolic Tangent", some[1].Title)

	_, err = cfg.Select([]string{"relu"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestBuild_Parallel(t *testing.T) {
	cfg := Default()
	cfg.Defaults.Parallel = Parallel{Enabled: true, Workers: 3, MinChunkSize: 1}
	cfgs, err := cfg.Build([]string{"sigmoid"})
	require.NoError(t, err)
	require.Len(t, cfgs, 1)
	p := cfgs[0].Train.Parallel
	assert.True(t, p.Enabled)
	assert.Equal(t, 3, p.NumWorkers)
	assert.Equal(t, 1, p.MinChunkSize)
}

func TestBuild_UnknownDataset(t *testing.T) {
	cfg := Default()
	cfg.Experiments = []Experiment{{Title: "x", Activation: "tanh", Dataset: "nope"}}
	_, err := cfg.Build(nil)
	assert.ErrorIs(t, err, dataset.ErrUnknownDataset)
}
