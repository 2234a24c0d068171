package stats

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/abstract"
	"go.uber.org/atomic"
	"go.ytsaurus.tech/library/go/core/log"
)

type WrapperStats struct {
	Lag          metrics.Timer
	MaxLag       metrics.FuncGauge
	Timer        metrics.Timer
	EventsPushed metrics.Counter
	BytesPushed  metrics.Counter
	Errors       metrics.Counter

	maxLag atomic.Duration
}

var sinkerBuckets = metrics.NewDurationBuckets(
	100*time.Millisecond,
	500*time.Millisecond,
	time.Second,
	2*time.Second,
	5*time.Second,
	10*time.Second,
	30*time.Second,
	time.Minute,
	5*time.Minute,
	15*time.Minute,
	time.Hour,
)

func NewWrapperStats(registry metrics.Registry) *WrapperStats {
	ws := &WrapperStats{
		Lag:          registry.DurationHistogram("sinker.pusher.time.event_lag_sec", sinkerBuckets),
		MaxLag:       nil,
		Timer:        registry.DurationHistogram("sinker.pusher.time.batch_push_distribution_sec", sinkerBuckets),
		EventsPushed: registry.Counter("sinker.pusher.data.events_pushed"),
		BytesPushed:  registry.Counter("sinker.pusher.data.bytes_pushed"),
		Errors:       registry.Counter("sinker.pusher.errors"),
		maxLag:       atomic.Duration{},
	}
	// the gauge reports the max lag seen since the previous scrape
	ws.MaxLag = registry.FuncGauge("sinker.pusher.time.event_max_lag_sec", func() float64 {
		return ws.maxLag.Swap(0).Seconds()
	})
	return ws
}

func (s *WrapperStats) storeMaxLag(lag time.Duration) {
	for {
		current := s.maxLag.Load()
		if lag <= current {
			return
		}
		if s.maxLag.CompareAndSwap(current, lag) {
			return
		}
	}
}

// batchStats returns the oldest and freshest event timestamps and the payload size.
// Events without a timestamp header count as created now.
func batchStats(input []*abstract.Event) (oldest, freshest time.Time, bytes uint64) {
	now := time.Now()
	for _, event := range input {
		bytes += event.Size()
		ts, ok := event.Timestamp()
		if !ok {
			ts = now
		}
		if oldest.IsZero() || ts.Before(oldest) {
			oldest = ts
		}
		if freshest.IsZero() || ts.After(freshest) {
			freshest = ts
		}
	}
	return oldest, freshest, bytes
}

// Log records one successful push of input that started at startTime.
func (s *WrapperStats) Log(logger log.Logger, startTime time.Time, input []*abstract.Event, isDebugLog bool) {
	oldest, freshest, bytes := batchStats(input)
	for _, event := range input {
		if ts, ok := event.Timestamp(); ok {
			s.Lag.RecordDuration(time.Since(ts))
		}
	}
	s.EventsPushed.Add(int64(len(input)))
	s.BytesPushed.Add(int64(bytes))
	if !oldest.IsZero() {
		s.storeMaxLag(time.Since(oldest))
	}
	elapsed := time.Since(startTime)
	s.Timer.RecordDuration(elapsed)

	logLine := fmt.Sprintf("Sink committed %v events (%s) in %v with %v - %v lag",
		len(input),
		humanize.Bytes(bytes),
		elapsed,
		time.Since(oldest),
		time.Since(freshest),
	)
	fields := []log.Field{
		log.Int("events", len(input)),
		log.UInt64("bytes", bytes),
		log.Any("lag", time.Since(freshest).Seconds()),
	}
	if isDebugLog {
		logger.Debug(logLine, fields...)
	} else {
		logger.Info(logLine, fields...)
	}
}
