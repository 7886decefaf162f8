package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordVFSOperation("create", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.VFSOperations.WithLabelValues("create", ResultOK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.VFSOperations.WithLabelValues("create", ResultOK)))
}

func TestRecordPersist(t *testing.T) {
	m := NewMetrics()

	m.RecordPersist(time.Millisecond, 512, nil)
	m.RecordPersist(time.Millisecond, 1024, errors.New("disk full"))

	assert.Equal(t, 512.0, testutil.ToFloat64(m.SnapshotBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PersistDuration))
}

func TestWindowMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordWindowOperation("focus", true)
	m.RecordWindowOperation("focus", false)
	m.SetWindows(3, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WindowOperations.WithLabelValues("focus", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WindowOperations.WithLabelValues("focus", "noop")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.WindowsOpen))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.WindowsVisible))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordVFSOperation("delete", nil)
		m.RecordPersist(time.Second, 1, nil)
		m.RecordLoadFallback("missing")
		m.RecordWindowOperation("close", true)
		m.SetWindows(0, 0)
		NewTimer(m).Stop(10, nil)
	})
	assert.Nil(t, m.Registry())
}

func TestRegistryGathers(t *testing.T) {
	m := NewMetrics()
	m.RecordLoadFallback("corrupt")

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
