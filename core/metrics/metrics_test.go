package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveFetch("Person", 3)
	m.ObserveFetch("Person", 2)
	m.ObserveFetchError("Person")
	m.SetInFlight(4)
	m.SetQueues(5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Fetches.WithLabelValues("Person")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchErrors.WithLabelValues("Person")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.InFlight))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Queues))
	assert.Equal(t, 1, testutil.CollectAndCount(m.BatchSize))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch("Person", 1)
		m.ObserveFetchError("Person")
		m.SetInFlight(1)
		m.SetQueues(1)
	})
}
