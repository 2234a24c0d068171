package stats

import (
	"github.com/transferia/tweetstream/library/go/core/metrics"
)

type ChannelStats struct {
	Capacity metrics.IntGauge
	Fill     metrics.IntGauge
	Put      metrics.Counter
	Taken    metrics.Counter
	Rejected metrics.Counter
}

func NewChannelStats(mtrc metrics.Registry) *ChannelStats {
	pm := mtrc.WithTags(map[string]string{
		"component": "channel",
	})
	return &ChannelStats{
		Capacity: pm.IntGauge("channel.capacity"),
		Fill:     pm.IntGauge("channel.fill"),
		Put:      pm.Counter("channel.event.put.success"),
		Taken:    pm.Counter("channel.event.take.success"),
		Rejected: pm.Counter("channel.event.put.rejected"),
	}
}

type MiddlewareErrorTrackerStats struct {
	Failures  metrics.Counter
	Successes metrics.Counter
}

func NewMiddlewareErrorTrackerStats(mtrc metrics.Registry) *MiddlewareErrorTrackerStats {
	pm := mtrc.WithTags(map[string]string{
		"component": "middleware_error_tracker",
	})
	return &MiddlewareErrorTrackerStats{
		Failures:  pm.Counter("middleware.error_tracker.failures"),
		Successes: pm.Counter("middleware.error_tracker.successes"),
	}
}
