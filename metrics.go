package kohonen

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordStep is called after each single step. distance is the distance
	// between the drawn sample and its best matching unit.
	RecordStep(distance float64, err error)

	// RecordRun is called after each batch of steps.
	// steps is the number of steps completed, duration the total time taken.
	RecordRun(steps int, duration time.Duration, err error)

	// RecordReset is called after each reset.
	RecordReset(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordStep(float64, error)           {}
func (NoopMetricsCollector) RecordRun(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordReset(error)                   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	StepCount     atomic.Int64
	StepErrors    atomic.Int64
	RunCount      atomic.Int64
	RunSteps      atomic.Int64
	RunErrors     atomic.Int64
	RunTotalNanos atomic.Int64
	ResetCount    atomic.Int64
	ResetErrors   atomic.Int64
}

// RecordStep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStep(_ float64, err error) {
	b.StepCount.Add(1)
	if err != nil {
		b.StepErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(steps int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunSteps.Add(int64(steps))
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset(err error) {
	b.ResetCount.Add(1)
	if err != nil {
		b.ResetErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		StepCount:   b.StepCount.Load(),
		StepErrors:  b.StepErrors.Load(),
		RunCount:    b.RunCount.Load(),
		RunSteps:    b.RunSteps.Load(),
		RunErrors:   b.RunErrors.Load(),
		RunAvgNanos: b.getAvgRunNanos(),
		ResetCount:  b.ResetCount.Load(),
		ResetErrors: b.ResetErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	StepCount   int64
	StepErrors  int64
	RunCount    int64
	RunSteps    int64
	RunErrors   int64
	RunAvgNanos int64
	ResetCount  int64
	ResetErrors int64
}
