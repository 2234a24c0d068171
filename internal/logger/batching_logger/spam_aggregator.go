package batching_logger

import (
	"fmt"
	"sync"
	"time"

	"go.ytsaurus.tech/library/go/core/log"
)

type levelKind int8

const (
	levelTrace levelKind = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
	levelFatal
)

type classification struct {
	level levelKind
	key   string
}

type entry struct {
	count    int
	lastTime time.Time
}

type aggregatorConfig struct {
	flushInterval time.Duration
	threshold     int
	maxKeys       int
}

func defaultAggregatorConfig() aggregatorConfig {
	return aggregatorConfig{
		flushInterval: time.Minute,
		threshold:     32,
		maxKeys:       1024,
	}
}

// spamAggregator passes through the first `threshold` occurrences of each
// (level, message) pair per flush window and reports the rest as a summary line.
type spamAggregator struct {
	logger log.Logger
	config aggregatorConfig

	mu     sync.Mutex
	counts map[classification]*entry

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newSpamAggregator(logger log.Logger, config aggregatorConfig) *spamAggregator {
	a := &spamAggregator{
		logger:   logger,
		config:   config,
		mu:       sync.Mutex{},
		counts:   make(map[classification]*entry),
		stopCh:   make(chan struct{}),
		stopOnce: sync.Once{},
		wg:       sync.WaitGroup{},
	}
	a.wg.Add(1)
	go a.flushLoop()
	return a
}

func (a *spamAggregator) flushLoop() {
	defer a.wg.Done()
	ticker := time.NewTicker(a.config.flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			a.flush(true)
			return
		case <-ticker.C:
			a.flush(false)
		}
	}
}

// flush reports suppressed messages. Entries idle for two windows are forgotten,
// the rest start the next window from zero.
func (a *spamAggregator) flush(final bool) {
	now := time.Now()
	a.mu.Lock()
	defer a.mu.Unlock()
	for cls, e := range a.counts {
		a.reportSuppressed(cls, e)
		if final || now.Sub(e.lastTime) > 2*a.config.flushInterval {
			delete(a.counts, cls)
			continue
		}
		e.count = 0
	}
}

func (a *spamAggregator) reportSuppressed(cls classification, e *entry) {
	suppressed := e.count - a.config.threshold
	if suppressed <= 0 {
		return
	}
	msg := fmt.Sprintf("suppressed %d more messages: %s", suppressed, cls.key)
	switch cls.level {
	case levelTrace:
		a.logger.Trace(msg)
	case levelDebug:
		a.logger.Debug(msg)
	case levelInfo:
		a.logger.Info(msg)
	case levelWarn:
		a.logger.Warn(msg)
	default:
		a.logger.Error(msg)
	}
}

func (a *spamAggregator) shouldLog(level levelKind, key string) bool {
	now := time.Now()
	cls := classification{level: level, key: key}

	a.mu.Lock()
	defer a.mu.Unlock()

	if e, ok := a.counts[cls]; ok {
		e.count++
		e.lastTime = now
		return e.count <= a.config.threshold
	}
	if len(a.counts) >= a.config.maxKeys {
		a.evictOldest()
	}
	a.counts[cls] = &entry{count: 1, lastTime: now}
	return true
}

func (a *spamAggregator) evictOldest() {
	var oldest classification
	var oldestEntry *entry
	for cls, e := range a.counts {
		if oldestEntry == nil || e.lastTime.Before(oldestEntry.lastTime) {
			oldest, oldestEntry = cls, e
		}
	}
	if oldestEntry == nil {
		return
	}
	a.reportSuppressed(oldest, oldestEntry)
	delete(a.counts, oldest)
}

func (a *spamAggregator) close() {
	a.stopOnce.Do(func() {
		close(a.stopCh)
	})
	a.wg.Wait()
}
