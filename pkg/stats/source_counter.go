package stats

import (
	"fmt"
	"time"

	"github.com/transferia/tweetstream/library/go/core/metrics"
	"go.uber.org/atomic"
)

const (
	EventsReceived      = "src.events.received"
	EventsAccepted      = "src.events.accepted"
	EventsRejected      = "src.events.rejected"
	StallWarnings       = "src.stallwarnings.count"
	TwitterExceptions   = "src.twitter.exceptions.count"
	LimitedStatuses     = "src.limited.statuses.count"
	OpenConnections     = "src.open-connection.count"
	SourceStartTime     = "src.start.time"
	SourceStopTime      = "src.stop.time"
	LabelSourceName     = "source"
	LabelComponentValue = "source_counter"
)

// SourceCounter holds the observable state of one ingestion source.
// Every update is atomic: data and control notices can come from different goroutines.
type SourceCounter struct {
	name string

	eventsReceived    atomic.Uint64
	eventsAccepted    atomic.Uint64
	eventsRejected    atomic.Uint64
	stallWarnings     atomic.Uint64
	twitterExceptions atomic.Uint64
	limitedStatuses   atomic.Int64
	openConnections   atomic.Int64

	// Unix millis, zero when not set
	startTime atomic.Int64
	stopTime  atomic.Int64
}

func NewSourceCounter(name string) *SourceCounter {
	return &SourceCounter{name: name}
}

func (c *SourceCounter) Name() string {
	return c.name
}

// Register exposes the counter values in registry, tagged with the source name.
func (c *SourceCounter) Register(registry metrics.Registry) {
	pm := registry.WithTags(map[string]string{
		LabelSourceName: c.name,
		"component":     LabelComponentValue,
	})
	pm.FuncCounter(EventsReceived, func() int64 { return int64(c.EventsReceived()) })
	pm.FuncCounter(EventsAccepted, func() int64 { return int64(c.EventsAccepted()) })
	pm.FuncCounter(EventsRejected, func() int64 { return int64(c.EventsRejected()) })
	pm.FuncCounter(StallWarnings, func() int64 { return int64(c.StallWarnings()) })
	pm.FuncCounter(TwitterExceptions, func() int64 { return int64(c.TwitterExceptions()) })
	pm.FuncIntGauge(LimitedStatuses, c.LimitedStatuses)
	pm.FuncIntGauge(OpenConnections, c.OpenConnections)
	pm.FuncIntGauge(SourceStartTime, c.startTime.Load)
	pm.FuncIntGauge(SourceStopTime, c.stopTime.Load)
}

// Start records the activation time and clears a previous stop time.
func (c *SourceCounter) Start() {
	c.startTime.Store(time.Now().UnixMilli())
	c.stopTime.Store(0)
}

// Stop records the stop time once; later calls keep the first value.
func (c *SourceCounter) Stop() {
	c.stopTime.CompareAndSwap(0, time.Now().UnixMilli())
}

func (c *SourceCounter) IncrementEventReceivedCount() uint64 {
	return c.eventsReceived.Inc()
}

func (c *SourceCounter) IncrementEventAcceptedCount() uint64 {
	return c.eventsAccepted.Inc()
}

func (c *SourceCounter) IncrementEventRejectedCount() uint64 {
	return c.eventsRejected.Inc()
}

func (c *SourceCounter) IncrementStallWarningCount() uint64 {
	return c.stallWarnings.Inc()
}

func (c *SourceCounter) IncrementExceptionCount() uint64 {
	return c.twitterExceptions.Inc()
}

// SetLimitedStatusesCount stores the latest upstream-dropped count from a track limitation notice.
func (c *SourceCounter) SetLimitedStatusesCount(n int64) {
	c.limitedStatuses.Store(n)
}

func (c *SourceCounter) IncrementOpenConnectionCount() int64 {
	return c.openConnections.Inc()
}

func (c *SourceCounter) DecrementOpenConnectionCount() int64 {
	return c.openConnections.Dec()
}

func (c *SourceCounter) EventsReceived() uint64    { return c.eventsReceived.Load() }
func (c *SourceCounter) EventsAccepted() uint64    { return c.eventsAccepted.Load() }
func (c *SourceCounter) EventsRejected() uint64    { return c.eventsRejected.Load() }
func (c *SourceCounter) StallWarnings() uint64     { return c.stallWarnings.Load() }
func (c *SourceCounter) TwitterExceptions() uint64 { return c.twitterExceptions.Load() }
func (c *SourceCounter) LimitedStatuses() int64    { return c.limitedStatuses.Load() }
func (c *SourceCounter) OpenConnections() int64    { return c.openConnections.Load() }

func (c *SourceCounter) StartTime() time.Time {
	return fromMillis(c.startTime.Load())
}

func (c *SourceCounter) StopTime() time.Time {
	return fromMillis(c.stopTime.Load())
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// CounterSnapshot is a point-in-time copy of a SourceCounter.
type CounterSnapshot struct {
	Name              string
	EventsReceived    uint64
	EventsAccepted    uint64
	EventsRejected    uint64
	StallWarnings     uint64
	TwitterExceptions uint64
	LimitedStatuses   int64
	OpenConnections   int64
	StartTime         time.Time
	StopTime          time.Time
}

func (c *SourceCounter) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		Name:              c.name,
		EventsReceived:    c.EventsReceived(),
		EventsAccepted:    c.EventsAccepted(),
		EventsRejected:    c.EventsRejected(),
		StallWarnings:     c.StallWarnings(),
		TwitterExceptions: c.TwitterExceptions(),
		LimitedStatuses:   c.LimitedStatuses(),
		OpenConnections:   c.OpenConnections(),
		StartTime:         c.StartTime(),
		StopTime:          c.StopTime(),
	}
}

func (s CounterSnapshot) String() string {
	return fmt.Sprintf(
		"source %s: received=%d accepted=%d rejected=%d stall_warnings=%d exceptions=%d limited=%d open_connections=%d",
		s.Name, s.EventsReceived, s.EventsAccepted, s.EventsRejected, s.StallWarnings, s.TwitterExceptions,
		s.LimitedStatuses, s.OpenConnections,
	)
}
