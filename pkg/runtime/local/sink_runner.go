package local

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/providers/memory"
	"github.com/transferia/tweetstream/pkg/stats"
	"github.com/transferia/tweetstream/pkg/util/batcher"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// sinkRunner drains the channel into the sinker until the channel is closed and empty.
type sinkRunner struct {
	channel      *memory.Channel
	sink         abstract.Sinker
	cfg          SinkConfig
	wrapperStats *stats.WrapperStats
	workerStats  *stats.WorkerStats
	logger       log.Logger
}

func newSinkRunner(channel *memory.Channel, sink abstract.Sinker, cfg SinkConfig, wrapperStats *stats.WrapperStats, workerStats *stats.WorkerStats, lgr log.Logger) *sinkRunner {
	return &sinkRunner{
		channel:      channel,
		sink:         sink,
		cfg:          cfg,
		wrapperStats: wrapperStats,
		workerStats:  workerStats,
		logger:       lgr,
	}
}

func (r *sinkRunner) Run(ctx context.Context) error {
	r.workerStats.Running.Set(1)
	defer r.workerStats.Running.Set(0)

	takeSize := r.cfg.BatchSize
	if takeSize < 1 {
		takeSize = 1
	}
	b := batcher.NewSizedBatcher(r.cfg.BatchSize, r.cfg.BatchBytes, (*abstract.Event).Size, r.pushWithRetries(ctx))
	defer b.Close()

	for {
		batch, err := r.channel.TakeBatch(ctx, takeSize, r.cfg.BatchTimeout)
		if err != nil {
			if xerrors.Is(err, memory.ErrChannelClosed) {
				r.logger.Info("channel drained, sink runner finished")
				return nil
			}
			return xerrors.Errorf("unable to take events: %w", err)
		}
		if err := b.Append(batch); err != nil {
			return xerrors.Errorf("unable to push events: %w", err)
		}
		if err := b.Flush(); err != nil {
			return xerrors.Errorf("unable to push events: %w", err)
		}
	}
}

// pushWithRetries retries a failed push with exponential backoff until RetryTimeout.
// Fatal errors are not retried.
func (r *sinkRunner) pushWithRetries(ctx context.Context) func([]*abstract.Event) error {
	return func(batch []*abstract.Event) error {
		startTime := time.Now()

		policy := backoff.NewExponentialBackOff()
		policy.MaxElapsedTime = r.cfg.RetryTimeout
		err := backoff.RetryNotify(func() error {
			err := r.sink.Push(batch)
			if err != nil && abstract.IsFatal(err) {
				return backoff.Permanent(err)
			}
			return err
		}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
			r.workerStats.PushRetries.Inc()
			r.logger.Warn("push failed, will retry",
				log.Int("events", len(batch)), log.Duration("backoff", wait), log.Error(err))
		})
		if err != nil {
			r.workerStats.PushFailures.Inc()
			if abstract.IsFatal(err) {
				r.workerStats.FatalFailures.Inc()
			}
			r.wrapperStats.Errors.Inc()
			return err
		}
		r.wrapperStats.Log(r.logger, startTime, batch, true)
		return nil
	}
}
