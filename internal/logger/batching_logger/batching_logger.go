package batching_logger

import (
	"fmt"
	"time"

	"go.ytsaurus.tech/library/go/core/log"
)

var _ log.Logger = (*BatchingLogger)(nil)

// BatchingLogger wraps a logger and collapses bursts of identical messages.
// Messages are keyed by level and text, fields do not take part in the key.
type BatchingLogger struct {
	logger log.Logger
	aggr   *spamAggregator
}

type BatchingOptions struct {
	FlushInterval time.Duration
	Threshold     int
	MaxKeys       int
}

func NewBatchingLogger(l log.Logger, opts *BatchingOptions) *BatchingLogger {
	cfg := defaultAggregatorConfig()
	if opts != nil {
		if opts.FlushInterval > 0 {
			cfg.flushInterval = opts.FlushInterval
		}
		if opts.Threshold > 0 {
			cfg.threshold = opts.Threshold
		}
		if opts.MaxKeys > 0 {
			cfg.maxKeys = opts.MaxKeys
		}
	}
	return &BatchingLogger{
		logger: l,
		aggr:   newSpamAggregator(l, cfg),
	}
}

// Close stops the flush loop and reports whatever is still suppressed.
func (b *BatchingLogger) Close() {
	b.aggr.close()
}

func (b *BatchingLogger) Logger() log.Logger { return b }

func (b *BatchingLogger) Fmt() log.Fmt { return b }

func (b *BatchingLogger) Structured() log.Structured { return b }

func (b *BatchingLogger) WithName(name string) log.Logger {
	return &BatchingLogger{
		logger: b.logger.WithName(name),
		aggr:   b.aggr,
	}
}

func (b *BatchingLogger) Trace(msg string, fields ...log.Field) {
	if b.aggr.shouldLog(levelTrace, msg) {
		b.logger.Trace(msg, fields...)
	}
}

func (b *BatchingLogger) Debug(msg string, fields ...log.Field) {
	if b.aggr.shouldLog(levelDebug, msg) {
		b.logger.Debug(msg, fields...)
	}
}

func (b *BatchingLogger) Info(msg string, fields ...log.Field) {
	if b.aggr.shouldLog(levelInfo, msg) {
		b.logger.Info(msg, fields...)
	}
}

func (b *BatchingLogger) Warn(msg string, fields ...log.Field) {
	if b.aggr.shouldLog(levelWarn, msg) {
		b.logger.Warn(msg, fields...)
	}
}

func (b *BatchingLogger) Error(msg string, fields ...log.Field) {
	if b.aggr.shouldLog(levelError, msg) {
		b.logger.Error(msg, fields...)
	}
}

// Fatal is never suppressed.
func (b *BatchingLogger) Fatal(msg string, fields ...log.Field) {
	b.logger.Fatal(msg, fields...)
}

func (b *BatchingLogger) Tracef(format string, args ...interface{}) {
	b.Trace(fmt.Sprintf(format, args...))
}

func (b *BatchingLogger) Debugf(format string, args ...interface{}) {
	b.Debug(fmt.Sprintf(format, args...))
}

func (b *BatchingLogger) Infof(format string, args ...interface{}) {
	b.Info(fmt.Sprintf(format, args...))
}

func (b *BatchingLogger) Warnf(format string, args ...interface{}) {
	b.Warn(fmt.Sprintf(format, args...))
}

func (b *BatchingLogger) Errorf(format string, args ...interface{}) {
	b.Error(fmt.Sprintf(format, args...))
}

func (b *BatchingLogger) Fatalf(format string, args ...interface{}) {
	b.Fatal(fmt.Sprintf(format, args...))
}
