package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "objectsync"

// Metrics groups the refresh layer collectors.
type Metrics struct {
	Fetches     *prometheus.CounterVec
	FetchErrors *prometheus.CounterVec
	BatchSize   *prometheus.HistogramVec
	InFlight    prometheus.Gauge
	Queues      prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Batched FindAll calls issued, by model.",
		}, []string{"model"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Batched FindAll calls that failed, by model.",
		}, []string{"model"}),
		BatchSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_ids",
			Help:      "Ids per batched fetch.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 150},
		}, []string{"model"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queues_in_flight",
			Help:      "Model queues triggered but not completed.",
		}),
		Queues: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queues_registered",
			Help:      "Model queues currently registered with the manager.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Fetches, m.FetchErrors, m.BatchSize, m.InFlight, m.Queues)
	}
	return m
}

// ObserveFetch records one batched fetch of n ids.
func (m *Metrics) ObserveFetch(model string, n int) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(model).Inc()
	m.BatchSize.WithLabelValues(model).Observe(float64(n))
}

// ObserveFetchError records a failed fetch.
func (m *Metrics) ObserveFetchError(model string) {
	if m == nil {
		return
	}
	m.FetchErrors.WithLabelValues(model).Inc()
}

// SetInFlight updates the in-flight gauge.
func (m *Metrics) SetInFlight(n int) {
	if m == nil {
		return
	}
	m.InFlight.Set(float64(n))
}

// SetQueues updates the registered-queues gauge.
func (m *Metrics) SetQueues(n int) {
	if m == nil {
		return
	}
	m.Queues.Set(float64(n))
}
