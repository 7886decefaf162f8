package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels shared by the operation counters.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds all Prometheus collectors for the desktop core.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// File store metrics
	VFSOperations   *prometheus.CounterVec
	PersistDuration prometheus.Histogram
	PersistFailures prometheus.Counter
	SnapshotBytes   prometheus.Gauge
	LoadFallbacks   *prometheus.CounterVec

	// Window session metrics
	WindowOperations *prometheus.CounterVec
	WindowsOpen      prometheus.Gauge
	WindowsVisible   prometheus.Gauge
}

// NewMetrics creates collectors registered on a private registry, so several
// desktops can live in one process without duplicate registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		VFSOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_vfs_operations_total",
				Help: "Total number of virtual file store operations",
			},
			[]string{"op", "result"},
		),
		PersistDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "desktop_vfs_persist_duration_seconds",
				Help:    "Time spent writing the file tree snapshot",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		PersistFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_vfs_persist_failures_total",
				Help: "Total number of snapshot writes that failed and were rolled back",
			},
		),
		SnapshotBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_vfs_snapshot_bytes",
				Help: "Size of the last encoded file tree snapshot",
			},
		),
		LoadFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_vfs_load_fallbacks_total",
				Help: "Times the store started from the seed tree",
			},
			[]string{"reason"},
		),

		WindowOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_window_operations_total",
				Help: "Total number of window session operations",
			},
			[]string{"op", "result"},
		),
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_windows_open",
				Help: "Number of open windows",
			},
		),
		WindowsVisible: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_windows_visible",
				Help: "Number of open, non-minimized windows",
			},
		),
	}
}

// Registry exposes the private registry for embedding callers.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordVFSOperation counts a file store operation.
func (m *Metrics) RecordVFSOperation(op string, err error) {
	if m == nil {
		return
	}
	m.VFSOperations.WithLabelValues(op, result(err)).Inc()
}

// RecordPersist records a snapshot write.
func (m *Metrics) RecordPersist(duration time.Duration, size int, err error) {
	if m == nil {
		return
	}
	m.PersistDuration.Observe(duration.Seconds())
	if err != nil {
		m.PersistFailures.Inc()
		return
	}
	m.SnapshotBytes.Set(float64(size))
}

// RecordLoadFallback counts a start from the seed tree.
func (m *Metrics) RecordLoadFallback(reason string) {
	if m == nil {
		return
	}
	m.LoadFallbacks.WithLabelValues(reason).Inc()
}

// RecordWindowOperation counts a window operation; matched is false for
// operations addressed to an id that is not open.
func (m *Metrics) RecordWindowOperation(op string, matched bool) {
	if m == nil {
		return
	}
	status := ResultOK
	if !matched {
		status = "noop"
	}
	m.WindowOperations.WithLabelValues(op, status).Inc()
}

// SetWindows updates the window gauges.
func (m *Metrics) SetWindows(open, visible int) {
	if m == nil {
		return
	}
	m.WindowsOpen.Set(float64(open))
	m.WindowsVisible.Set(float64(visible))
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
