package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_SetState(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SetState(3, 11)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.teams))
	assert.Equal(t, 11.0, testutil.ToFloat64(m.players))
}

func TestMetrics_ObserveOp(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOp("join", 0)
	m.ObserveOp("join", 0)
	m.ObserveOp("join", 3005)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("join", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("join", "3005")))
}

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ApplicantEvicted()
	m.RateLimited("apply")
	m.ObserveQueueWait(time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.evictions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited.WithLabelValues("apply")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.queueWait))
}

func TestMetrics_Registration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Panics(t, func() { New(reg) })
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.SetState(1, 1)
		m.ObserveOp("leave", 0)
		m.ApplicantEvicted()
		m.ObserveQueueWait(time.Second)
		m.RateLimited("apply")
	})
}
