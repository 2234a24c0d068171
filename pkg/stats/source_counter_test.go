package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/library/go/core/metrics/prometheus"
)

func TestSourceCounterIncrements(t *testing.T) {
	c := NewSourceCounter("tw")

	require.Equal(t, uint64(1), c.IncrementEventReceivedCount())
	require.Equal(t, uint64(1), c.IncrementEventAcceptedCount())
	c.IncrementEventReceivedCount()
	c.IncrementEventRejectedCount()
	c.IncrementStallWarningCount()
	c.IncrementExceptionCount()
	c.IncrementExceptionCount()

	snap := c.Snapshot()
	require.Equal(t, "tw", snap.Name)
	require.Equal(t, uint64(2), snap.EventsReceived)
	require.Equal(t, uint64(1), snap.EventsAccepted)
	require.Equal(t, uint64(1), snap.EventsRejected)
	require.Equal(t, uint64(1), snap.StallWarnings)
	require.Equal(t, uint64(2), snap.TwitterExceptions)
	require.Contains(t, snap.String(), "received=2 accepted=1 rejected=1")
}

func TestSourceCounterLimitedStatusesIsSet(t *testing.T) {
	c := NewSourceCounter("tw")
	c.SetLimitedStatusesCount(10)
	c.SetLimitedStatusesCount(42)
	require.Equal(t, int64(42), c.LimitedStatuses())
}

func TestSourceCounterOpenConnections(t *testing.T) {
	c := NewSourceCounter("tw")
	c.IncrementOpenConnectionCount()
	c.IncrementOpenConnectionCount()
	c.DecrementOpenConnectionCount()
	require.Equal(t, int64(1), c.OpenConnections())
}

func TestSourceCounterStopKeepsFirstStopTime(t *testing.T) {
	c := NewSourceCounter("tw")
	require.True(t, c.StartTime().IsZero())
	require.True(t, c.StopTime().IsZero())

	c.Start()
	require.False(t, c.StartTime().IsZero())

	c.Stop()
	first := c.StopTime()
	require.False(t, first.IsZero())

	time.Sleep(5 * time.Millisecond)
	c.Stop()
	require.Equal(t, first, c.StopTime())

	// a new start clears the stop time
	c.Start()
	require.True(t, c.StopTime().IsZero())
}

func TestSourceCounterConcurrentUpdates(t *testing.T) {
	c := NewSourceCounter("tw")
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				c.IncrementEventReceivedCount()
				c.IncrementEventAcceptedCount()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, uint64(8000), c.EventsReceived())
	require.Equal(t, uint64(8000), c.EventsAccepted())
}

func TestSourceCounterRegister(t *testing.T) {
	registry := prometheus.NewRegistry(prometheus.NewRegistryOpts())
	c := NewSourceCounter("tw")
	c.Register(registry)

	c.IncrementEventReceivedCount()
	c.IncrementEventRejectedCount()
	c.SetLimitedStatusesCount(42)
	c.IncrementOpenConnectionCount()

	labels := map[string]string{LabelSourceName: "tw"}
	value := func(name string) float64 {
		v, ok := registry.FindValue(prometheus.SanitizeName(name), labels)
		require.True(t, ok, name)
		return v
	}
	require.Equal(t, 1.0, value(EventsReceived))
	require.Equal(t, 0.0, value(EventsAccepted))
	require.Equal(t, 1.0, value(EventsRejected))
	require.Equal(t, 42.0, value(LimitedStatuses))
	require.Equal(t, 1.0, value(OpenConnections))
	require.Equal(t, 0.0, value(SourceStopTime))
}
