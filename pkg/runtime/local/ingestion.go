package local

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"github.com/transferia/tweetstream/pkg/errors"
	"github.com/transferia/tweetstream/pkg/errors/categories"
	"github.com/transferia/tweetstream/pkg/middlewares"
	"github.com/transferia/tweetstream/pkg/providers"
	"github.com/transferia/tweetstream/pkg/providers/memory"
	"github.com/transferia/tweetstream/pkg/stats"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
	"golang.org/x/sync/errgroup"
)

type counterSource interface {
	Counter() *stats.SourceCounter
}

// RunIngestion runs the pipeline until ctx is done or a component fails.
// On cancellation the source is stopped first and the channel is drained into the sink.
func RunIngestion(ctx context.Context, pipeline *Pipeline, registry metrics.Registry, lgr log.Logger) (err error) {
	pipeline.WithDefaults()
	if err := pipeline.Validate(); err != nil {
		return errors.CategorizedErrorf(categories.Configuration, "invalid pipeline %s: %w", pipeline.Name, err)
	}
	lgr = log.With(lgr, log.String("pipeline", pipeline.Name))
	registry = registry.WithTags(map[string]string{"pipeline": pipeline.Name})
	lgr.Info("starting ingestion", log.Any("pipeline", pipeline))

	defer func() {
		if r := recover(); r != nil {
			err = xerrors.Errorf("panic: %v", r)
			lgr.Error("ingestion panic", log.Error(err), log.String("stacktrace", string(debug.Stack())))
		}
		if err != nil {
			errors.LogFatalError(lgr, err, pipeline.Name, pipeline.Source.Type, pipeline.Sink.Type)
		}
	}()

	sinker, err := newSinker(pipeline.Sink, registry, lgr)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sinker.Close(); closeErr != nil {
			lgr.Warn("unable to close sink", log.Error(closeErr))
		}
	}()

	channel := memory.NewChannel(pipeline.Channel, registry)
	src, err := newSource(pipeline, channel, registry, lgr)
	if err != nil {
		channel.Close()
		return err
	}
	if err := src.Start(); err != nil {
		src.Stop()
		channel.Close()
		return xerrors.Errorf("unable to start source: %w", err)
	}

	runner := newSinkRunner(channel, sinker, pipeline.Sink, stats.NewWrapperStats(registry), stats.NewWorkerStats(registry), lgr)

	// the group is detached from ctx so that the runner keeps draining after cancellation
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	g.Go(func() error {
		return runner.Run(gctx)
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			lgr.Info("ingestion cancelled, stopping source")
		case <-gctx.Done():
		}
		src.Stop()
		channel.Close()
		return nil
	})
	if counted, ok := src.(counterSource); ok {
		g.Go(func() error {
			reportCounter(ctx, gctx, counted, pipeline.ReportInterval, lgr)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return xerrors.Errorf("ingestion failed: %w", err)
	}
	lgr.Info("ingestion finished")
	return nil
}

func newSinker(cfg SinkConfig, registry metrics.Registry, lgr log.Logger) (abstract.Sinker, error) {
	dst, err := model.NewDestination(cfg.Type, cfg.Params)
	if err != nil {
		return nil, abstract.NewFatalError(errors.CategorizedErrorf(categories.Configuration, "unable to build sink model: %w", err))
	}
	provider, ok := providers.Get[providers.Sinker](cfg.Type, lgr, registry, dst)
	if !ok {
		return nil, abstract.NewFatalError(errors.CategorizedErrorf(categories.Configuration, "provider %s cannot be used as a sink", cfg.Type))
	}
	sinker, err := provider.Sink()
	if err != nil {
		return nil, errors.CategorizedErrorf(categories.Target, "unable to create %s sink: %w", cfg.Type, err)
	}
	return middlewares.ErrorTracker(registry)(sinker), nil
}

func newSource(pipeline *Pipeline, sink abstract.Sink, registry metrics.Registry, lgr log.Logger) (abstract.EventDrivenSource, error) {
	provider, ok := providers.Get[providers.Sourcer](pipeline.Source.Type, lgr, registry, nil)
	if !ok {
		return nil, abstract.NewFatalError(errors.CategorizedErrorf(categories.Configuration, "provider %s cannot be used as a source", pipeline.Source.Type))
	}
	src, err := provider.Source(pipeline.Name, sink)
	if err != nil {
		return nil, errors.CategorizedErrorf(categories.Source, "unable to create %s source: %w", pipeline.Source.Type, err)
	}
	if err := src.Configure(pipeline.Source.Options); err != nil {
		return nil, xerrors.Errorf("unable to configure source: %w", err)
	}
	return src, nil
}

func reportCounter(ctx, gctx context.Context, src counterSource, interval time.Duration, lgr log.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-gctx.Done():
			return
		case <-ticker.C:
			if counter := src.Counter(); counter != nil {
				lgr.Info("source counters", log.String("metrics", counter.Snapshot().String()))
			}
		}
	}
}
