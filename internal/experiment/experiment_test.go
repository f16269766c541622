package experiment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/born-ml/xorresilient/internal/activation"
	"github.com/born-ml/xorresilient/internal/dataset"
)

func bipolarConfig(t *testing.T, title string, fn activation.Function) Config {
	t.Helper()
	set, err := dataset.Builtin(dataset.BipolarXOR)
	require.NoError(t, err)
	return NewConfig(title, fn, set)
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := bipolarConfig(t, "tanh", activation.NewTanh())
	assert.Equal(t, 4, cfg.Hidden)
	assert.Equal(t, 0.0001, cfg.TargetError)
	assert.Equal(t, 1000, cfg.MaxEpochs)
	assert.Equal(t, 100*time.Millisecond, cfg.MaxDuration)
	assert.Equal(t, "rprop", cfg.Optimizer)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ValidateReportsEverything(t *testing.T) {
	cfg := Config{Title: "broken", Hidden: 0, TargetError: -1, MaxEpochs: 1, MaxDuration: -time.Second, Optimizer: "nope"}
	err := cfg.Validate()
	require.Error(t, err)
	// activation, dataset, optimizer, hidden, target, epochs, duration
	assert.Len(t, multierr.Errors(err), 7)
}

func TestBuild_Topology(t *testing.T) {
	cfg := bipolarConfig(t, "sine", activation.NewFadingSine(1))
	net, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, "2B-4B-1", net.String())

	// Every layer owns a clone.
	layers := net.Layers()
	require.Len(t, layers, 3)
	assert.NotSame(t, layers[1].Activation(), layers[2].Activation())
	assert.NotSame(t, cfg.Activation, layers[1].Activation())
}

func TestRun_StopReasons(t *testing.T) {
	t.Run("converged", func(t *testing.T) {
		cfg := bipolarConfig(t, "converged", activation.NewTanh())
		cfg.TargetError = 1e9
		res, err := Run(context.Background(), cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, StopConverged, res.Stop)
		assert.True(t, res.Converged())
		assert.Len(t, res.Epochs, 1)
	})

	t.Run("epoch-limit", func(t *testing.T) {
		cfg := bipolarConfig(t, "epochs", activation.NewTanh())
		cfg.TargetError = 0
		cfg.MaxDuration = 0
		cfg.MaxEpochs = 5
		res, err := Run(context.Background(), cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, StopEpochLimit, res.Stop)
		// The counter starts at 1, so MaxEpochs-1 iterations run.
		require.Len(t, res.Epochs, 4)
		for i, e := range res.Epochs {
			assert.Equal(t, i+1, e.Index)
		}
	})

	t.Run("time-limit", func(t *testing.T) {
		cfg := bipolarConfig(t, "time", activation.NewTanh())
		cfg.TargetError = 0
		cfg.MaxDuration = time.Nanosecond
		res, err := Run(context.Background(), cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, StopTimeLimit, res.Stop)
		assert.Len(t, res.Epochs, 1)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cfg := bipolarConfig(t, "canceled", activation.NewTanh())
		res, err := Run(ctx, cfg, nil)
		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, res)
		assert.Equal(t, StopCanceled, res.Stop)
		assert.Empty(t, res.Epochs)
		assert.Len(t, res.Predictions, 4)
	})
}

func TestRun_TanhLearnsXOR(t *testing.T) {
	converged := 0
	for seed := int64(1); seed <= 10; seed++ {
		cfg := bipolarConfig(t, "tanh", activation.NewTanh())
		cfg.MaxDuration = 0
		cfg.Seed = seed
		res, err := Run(context.Background(), cfg, nil)
		require.NoError(t, err)
		if !res.Converged() {
			continue
		}
		converged++
		assert.LessOrEqual(t, res.FinalError, cfg.TargetError)
		for _, p := range res.Predictions {
			assert.InDelta(t, p.Ideal[0], p.Actual[0], 0.1)
		}
	}
	assert.Positive(t, converged)
}

func TestRun_PredictionsFollowDataset(t *testing.T) {
	cfg := bipolarConfig(t, "sine", activation.NewFadingSine(1))
	cfg.MaxEpochs = 3
	res, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)

	require.Len(t, res.Predictions, cfg.Dataset.Len())
	for i, p := range res.Predictions {
		assert.Equal(t, cfg.Dataset.Pairs[i].Input, p.Input)
		assert.Equal(t, cfg.Dataset.Pairs[i].Ideal, p.Ideal)
		assert.Len(t, p.Actual, 1)
	}
	assert.Equal(t, "fading-sine", res.Activation)
	assert.Equal(t, dataset.BipolarXOR, res.Dataset)
	assert.Equal(t, "irprop+", res.Optimizer)
}

func TestRun_Observer(t *testing.T) {
	var starts, epochs, finishes int
	obs := ObserverFuncs{
		Start:  func(Config) { starts++ },
		Epoch:  func(Config, Epoch) { epochs++ },
		Finish: func(*Result) { finishes++ },
	}
	cfg := bipolarConfig(t, "observed", activation.NewTanh())
	cfg.MaxEpochs = 4
	cfg.TargetError = 0
	cfg.MaxDuration = 0
	res, err := Run(context.Background(), cfg, obs)
	require.NoError(t, err)

	assert.Equal(t, 1, starts)
	assert.Equal(t, len(res.Epochs), epochs)
	assert.Equal(t, 1, finishes)
}

func TestRun_SameSeedSameResult(t *testing.T) {
	run := func() *Result {
		cfg := bipolarConfig(t, "repeat", activation.NewFadingSine(1))
		cfg.MaxEpochs = 20
		cfg.MaxDuration = 0
		cfg.TargetError = 0
		res, err := Run(context.Background(), cfg, nil)
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	require.Len(t, b.Epochs, len(a.Epochs))
	for i := range a.Epochs {
		assert.Equal(t, a.Epochs[i].Error, b.Epochs[i].Error)
	}
}

func TestCalibrate(t *testing.T) {
	assert.NoError(t, Calibrate(1))
}

func TestSuite_KeepsOrderAndRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	titles := []string{"a", "b", "c", "d"}
	cfgs := make([]Config, len(titles))
	for i, title := range titles {
		cfgs[i] = bipolarConfig(t, title, activation.NewTanh())
		cfgs[i].MaxEpochs = 3
		cfgs[i].MaxDuration = 0
		cfgs[i].TargetError = 0
	}

	var mu sync.Mutex
	finished := map[string]bool{}
	suite := Suite{
		Workers:   3,
		Calibrate: true,
		Metrics:   metrics,
		Observer: ObserverFuncs{Finish: func(r *Result) {
			mu.Lock()
			finished[r.Title] = true
			mu.Unlock()
		}},
	}
	results, err := suite.Run(context.Background(), cfgs)
	require.NoError(t, err)
	require.Len(t, results, len(titles))
	for i, r := range results {
		assert.Equal(t, titles[i], r.Title)
		assert.True(t, finished[r.Title])
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.Runs.WithLabelValues(r.Title, "epoch-limit")), 0)
		assert.InDelta(t, 2, testutil.ToFloat64(metrics.Epochs.WithLabelValues(r.Title)), 0)
		assert.InDelta(t, r.FinalError, testutil.ToFloat64(metrics.FinalError.WithLabelValues(r.Title)), 0)
	}
	assert.Equal(t, 4, testutil.CollectAndCount(metrics.Duration))
}

func TestSuite_ValidatesFirst(t *testing.T) {
	good := bipolarConfig(t, "good", activation.NewTanh())
	bad := Config{Title: "bad"}
	results, err := (&Suite{}).Run(context.Background(), []Config{good, bad})
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	results := []*Result{
		{Epochs: make([]Epoch, 10), FinalError: 0.1, Stop: StopConverged},
		nil,
		{Epochs: make([]Epoch, 20), FinalError: 0.3, Stop: StopTimeLimit},
	}
	s := Summarize(results)
	assert.Equal(t, 2, s.Runs)
	assert.Equal(t, 1, s.Converged)
	assert.InDelta(t, 15, s.MeanEpochs, 1e-12)
	assert.InDelta(t, 0.2, s.MeanError, 1e-12)
	assert.InDelta(t, 0.1, s.MinError, 1e-12)
	assert.InDelta(t, 0.3, s.MaxError, 1e-12)
	assert.Greater(t, s.StdEpochs, 0.0)

	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestStopReason_String(t *testing.T) {
	assert.Equal(t, "converged", StopConverged.String())
	assert.Equal(t, "time-limit", StopTimeLimit.String())
	assert.Equal(t, "epoch-limit", StopEpochLimit.String())
	assert.Equal(t, "canceled", StopCanceled.String())
	assert.Equal(t, "StopReason(9)", StopReason(9).String())
}
