package twitter

import (
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/providers/twitter/stream"
	"github.com/transferia/tweetstream/pkg/stats"
	"go.ytsaurus.tech/library/go/core/log"
)

var (
	_ stream.Listener                    = (*Listener)(nil)
	_ stream.ConnectionLifeCycleListener = (*Listener)(nil)
)

// Listener turns stream notifications into events and counters. It runs on
// the stream client's delivery goroutine.
type Listener struct {
	sink    abstract.Sink
	counter *stats.SourceCounter
	policy  RejectPolicy
	headers map[string]string
	logger  log.Logger
}

// NewListener builds a listener forwarding into sink. lgr should throttle repeated
// messages, stall warnings and rejections come in bursts.
func NewListener(sink abstract.Sink, counter *stats.SourceCounter, policy RejectPolicy, headers map[string]string, lgr log.Logger) *Listener {
	return &Listener{
		sink:    sink,
		counter: counter,
		policy:  policy,
		headers: headers,
		logger:  lgr,
	}
}

// OnStatus forwards one status. A capacity rejection is counted and, unless the
// policy is drop, returned as is. Other sink errors are returned unchanged.
func (l *Listener) OnStatus(status *stream.Status) error {
	l.counter.IncrementEventReceivedCount()
	event := EventFromStatus(status, l.headers)
	if err := l.sink.Forward(event); err != nil {
		if !abstract.IsChannelFull(err) {
			return err
		}
		l.counter.IncrementEventRejectedCount()
		if l.policy == RejectPolicyDrop {
			l.logger.Warn("channel is full, status dropped", log.Error(err))
			return nil
		}
		return err
	}
	l.counter.IncrementEventAcceptedCount()
	return nil
}

func (l *Listener) OnDeletionNotice(*stream.StatusDeletionNotice) {}

func (l *Listener) OnScrubGeo(*stream.ScrubGeoNotice) {}

func (l *Listener) OnTrackLimitationNotice(limited int64) {
	l.counter.SetLimitedStatusesCount(limited)
	l.logger.Warn("track limitation notice", log.Int64("limited_statuses", limited))
}

func (l *Listener) OnException(err error) {
	l.counter.IncrementExceptionCount()
	l.logger.Warn("stream exception", log.Error(err))
}

func (l *Listener) OnStallWarning(warning *stream.StallWarning) {
	l.counter.IncrementStallWarningCount()
	l.logger.Warn("stall warning",
		log.String("code", warning.Code),
		log.String("message", warning.Message),
		log.Int("percent_full", warning.PercentFull),
	)
}

func (l *Listener) OnConnect() {
	open := l.counter.IncrementOpenConnectionCount()
	l.logger.Info("stream connection opened", log.Int64("open_connections", open))
}

func (l *Listener) OnDisconnect() {
	open := l.counter.DecrementOpenConnectionCount()
	l.logger.Info("stream connection closed", log.Int64("open_connections", open))
}
