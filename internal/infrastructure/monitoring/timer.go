package monitoring

import "time"

// Timer measures a snapshot write.
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer starts a timer.
func NewTimer(metrics *Metrics) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
	}
}

// Stop records the elapsed time with the encoded size and outcome.
func (t *Timer) Stop(size int, err error) time.Duration {
	elapsed := time.Since(t.start)
	t.metrics.RecordPersist(elapsed, size, err)
	return elapsed
}
