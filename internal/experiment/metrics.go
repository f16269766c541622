package experiment

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records experiment outcomes. It implements Observer.
type Metrics struct {
	Runs       *prometheus.CounterVec
	Epochs     *prometheus.CounterVec
	FinalError *prometheus.GaugeVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xorresilient",
			Name:      "experiment_runs_total",
			Help:      "Finished experiments by stop reason.",
		}, []string{"experiment", "stop"}),
		Epochs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xorresilient",
			Name:      "experiment_epochs_total",
			Help:      "Training iterations performed.",
		}, []string{"experiment"}),
		FinalError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "xorresilient",
			Name:      "experiment_final_error",
			Help:      "Training error after the last epoch.",
		}, []string{"experiment"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "xorresilient",
			Name:      "experiment_duration_seconds",
			Help:      "Wall time spent training.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"experiment"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Runs, m.Epochs, m.FinalError, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// OnStart implements Observer.
func (m *Metrics) OnStart(Config) {}

// OnEpoch implements Observer.
func (m *Metrics) OnEpoch(cfg Config, _ Epoch) {
	m.Epochs.WithLabelValues(cfg.Title).Inc()
}

// OnFinish implements Observer.
func (m *Metrics) OnFinish(res *Result) {
	m.Runs.WithLabelValues(res.Title, res.Stop.String()).Inc()
	m.FinalError.WithLabelValues(res.Title).Set(res.FinalError)
	m.Duration.WithLabelValues(res.Title).Observe(res.Duration.Seconds())
}
