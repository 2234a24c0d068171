package middlewares

import (
	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/errors"
	"github.com/transferia/tweetstream/pkg/errors/categories"
	"github.com/transferia/tweetstream/pkg/stats"
)

// ErrorTracker counts failed and successful pushes and marks failures as target errors.
func ErrorTracker(mtrcs metrics.Registry) func(abstract.Sinker) abstract.Sinker {
	return func(s abstract.Sinker) abstract.Sinker {
		return newErrorTracker(s, mtrcs)
	}
}

type errorTracker struct {
	sink  abstract.Sinker
	stats *stats.MiddlewareErrorTrackerStats
}

func newErrorTracker(s abstract.Sinker, mtrcs metrics.Registry) *errorTracker {
	return &errorTracker{
		sink:  s,
		stats: stats.NewMiddlewareErrorTrackerStats(mtrcs),
	}
}

func (r *errorTracker) Close() error {
	return r.sink.Close()
}

func (r *errorTracker) Push(input []*abstract.Event) error {
	if err := r.sink.Push(input); err != nil {
		r.stats.Failures.Inc()
		return errors.CategorizedErrorf(categories.Target, "push of %d events failed: %w", len(input), err)
	}
	r.stats.Successes.Inc()
	return nil
}
