// Package metrics is the backend-agnostic metrics API used across the module.
// Components take a Registry and never talk to a concrete backend directly.
package metrics

import "time"

// Gauge tracks a single float64 value.
type Gauge interface {
	Set(value float64)
	Add(value float64)
}

// FuncGauge is a gauge whose value is computed on collection.
type FuncGauge interface {
	Function() func() float64
}

// IntGauge tracks a single int64 value.
type IntGauge interface {
	Set(value int64)
	Add(value int64)
}

// FuncIntGauge is an int gauge whose value is computed on collection.
type FuncIntGauge interface {
	Function() func() int64
}

// Counter is a monotonic int64 counter.
type Counter interface {
	Inc()
	Add(delta int64)
}

// FuncCounter is a counter whose value is computed on collection.
type FuncCounter interface {
	Function() func() int64
}

// Histogram records float64 observations into buckets.
type Histogram interface {
	RecordValue(value float64)
}

// Timer measures durations.
type Timer interface {
	RecordDuration(value time.Duration)
}

// Registry creates metrics. Calling a constructor twice with the same name and tags
// returns a metric bound to the same underlying series.
type Registry interface {
	// WithTags returns a child registry with the given tags added to every metric.
	WithTags(tags map[string]string) Registry
	// WithPrefix returns a child registry with the prefix prepended to every metric name.
	WithPrefix(prefix string) Registry
	ComposeName(parts ...string) string

	Counter(name string) Counter
	FuncCounter(name string, function func() int64) FuncCounter
	Gauge(name string) Gauge
	FuncGauge(name string, function func() float64) FuncGauge
	IntGauge(name string) IntGauge
	FuncIntGauge(name string, function func() int64) FuncIntGauge
	Timer(name string) Timer
	Histogram(name string, buckets Buckets) Histogram
	DurationHistogram(name string, buckets DurationBuckets) Timer
}
