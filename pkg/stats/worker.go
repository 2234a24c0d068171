package stats

import "github.com/transferia/tweetstream/library/go/core/metrics"

type WorkerStats struct {
	Running       metrics.IntGauge
	PushRetries   metrics.Counter
	PushFailures  metrics.Counter
	FatalFailures metrics.Counter
}

func NewWorkerStats(registry metrics.Registry) *WorkerStats {
	pm := registry.WithTags(map[string]string{
		"component": "worker",
	})
	return &WorkerStats{
		Running:       pm.IntGauge("worker.running"),
		PushRetries:   pm.Counter("worker.push.retries"),
		PushFailures:  pm.Counter("worker.push.failures"),
		FatalFailures: pm.Counter("worker.failure.fatal"),
	}
}
