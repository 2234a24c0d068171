package memory

import (
	"context"
	"sync"
	"time"

	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/errors/coded"
	"github.com/transferia/tweetstream/pkg/errors/codes"
	"github.com/transferia/tweetstream/pkg/stats"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

var ErrChannelClosed = xerrors.New("channel is closed")

var _ abstract.Sink = (*Channel)(nil)

// Channel is a bounded in-memory queue between a source and the sink runner.
type Channel struct {
	events    chan *abstract.Event
	keepAlive time.Duration
	stats     *stats.ChannelStats

	done      chan struct{}
	closeOnce sync.Once
}

func NewChannel(cfg ChannelConfig, registry metrics.Registry) *Channel {
	cfg.WithDefaults()
	ch := &Channel{
		events:    make(chan *abstract.Event, cfg.Capacity),
		keepAlive: cfg.KeepAlive,
		stats:     stats.NewChannelStats(registry),
		done:      make(chan struct{}),
		closeOnce: sync.Once{},
	}
	ch.stats.Capacity.Set(int64(cfg.Capacity))
	return ch
}

// Forward puts event into the channel, waiting up to keep-alive for space.
// A full channel yields an error wrapping abstract.ErrChannelFull.
func (c *Channel) Forward(event *abstract.Event) error {
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}

	select {
	case c.events <- event:
		c.put()
		return nil
	default:
	}
	if c.keepAlive <= 0 {
		return c.reject()
	}

	timer := time.NewTimer(c.keepAlive)
	defer timer.Stop()
	select {
	case c.events <- event:
		c.put()
		return nil
	case <-timer.C:
		return c.reject()
	case <-c.done:
		return ErrChannelClosed
	}
}

func (c *Channel) put() {
	c.stats.Put.Inc()
	c.stats.Fill.Set(int64(len(c.events)))
}

func (c *Channel) reject() error {
	c.stats.Rejected.Inc()
	return coded.Errorf(codes.ChannelFull, "no space for event within %v, capacity %d: %w",
		c.keepAlive, cap(c.events), abstract.ErrChannelFull)
}

func (c *Channel) taken(n int) {
	c.stats.Taken.Add(int64(n))
	c.stats.Fill.Set(int64(len(c.events)))
}

// Take blocks until an event is available. After Close the remaining events
// are still returned, then ErrChannelClosed.
func (c *Channel) Take(ctx context.Context) (*abstract.Event, error) {
	select {
	case event := <-c.events:
		c.taken(1)
		return event, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		select {
		case event := <-c.events:
			c.taken(1)
			return event, nil
		default:
			return nil, ErrChannelClosed
		}
	}
}

// TakeBatch waits for one event, then collects up to maxEvents more for at most linger.
func (c *Channel) TakeBatch(ctx context.Context, maxEvents int, linger time.Duration) ([]*abstract.Event, error) {
	first, err := c.Take(ctx)
	if err != nil {
		return nil, err
	}
	batch := []*abstract.Event{first}

	timer := time.NewTimer(linger)
	defer timer.Stop()
	for len(batch) < maxEvents {
		select {
		case event := <-c.events:
			c.taken(1)
			batch = append(batch, event)
		case <-timer.C:
			return batch, nil
		case <-ctx.Done():
			return batch, nil
		case <-c.done:
			return append(batch, c.drain(maxEvents-len(batch))...), nil
		}
	}
	return batch, nil
}

func (c *Channel) drain(limit int) []*abstract.Event {
	var res []*abstract.Event
	for len(res) < limit {
		select {
		case event := <-c.events:
			c.taken(1)
			res = append(res, event)
		default:
			return res
		}
	}
	return res
}

func (c *Channel) Len() int {
	return len(c.events)
}

func (c *Channel) Cap() int {
	return cap(c.events)
}

// Close stops accepting events and wakes blocked writers and readers.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
