package stats

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/library/go/core/metrics/prometheus"
	"github.com/transferia/tweetstream/pkg/abstract"
)

func eventAt(ts time.Time, body string) *abstract.Event {
	return abstract.NewEvent([]byte(body), map[string]string{
		abstract.HeaderTimestamp: strconv.FormatInt(ts.UnixMilli(), 10),
	})
}

func TestBatchStats(t *testing.T) {
	now := time.Now()
	input := []*abstract.Event{
		eventAt(now.Add(-time.Minute), "aa"),
		eventAt(now.Add(-time.Second), "bbb"),
		eventAt(now.Add(-time.Hour), "c"),
	}
	oldest, freshest, bytes := batchStats(input)
	require.Equal(t, now.Add(-time.Hour).UnixMilli(), oldest.UnixMilli())
	require.Equal(t, now.Add(-time.Second).UnixMilli(), freshest.UnixMilli())
	require.Greater(t, bytes, uint64(6))
}

func TestStoreMaxLag(t *testing.T) {
	registry := prometheus.NewRegistry(prometheus.NewRegistryOpts())
	ws := NewWrapperStats(registry)

	ws.storeMaxLag(3 * time.Second)
	require.Equal(t, 3*time.Second, ws.maxLag.Load())

	ws.storeMaxLag(5 * time.Second)
	require.Equal(t, 5*time.Second, ws.maxLag.Load())

	ws.storeMaxLag(2 * time.Second)
	require.Equal(t, 5*time.Second, ws.maxLag.Load(), "should keep higher value")

	// scraping resets the window
	value, ok := registry.FindValue("sinker_pusher_time_event_max_lag_sec", nil)
	require.True(t, ok)
	require.Equal(t, 5.0, value)
	require.Equal(t, time.Duration(0), ws.maxLag.Load())
}

func TestWrapperStatsLog(t *testing.T) {
	registry := prometheus.NewRegistry(prometheus.NewRegistryOpts())
	ws := NewWrapperStats(registry)

	now := time.Now()
	input := []*abstract.Event{
		eventAt(now.Add(-2*time.Second), `{"id":1}`),
		abstract.NewEvent([]byte(`{"id":2}`), nil),
	}
	ws.Log(logger.Log, now, input, true)
	require.GreaterOrEqual(t, ws.maxLag.Load(), 2*time.Second)

	pushed, ok := registry.FindValue("sinker_pusher_data_events_pushed", nil)
	require.True(t, ok)
	require.Equal(t, 2.0, pushed)

	lagSamples, ok := registry.FindValue("sinker_pusher_time_event_lag_sec", nil)
	require.True(t, ok)
	require.Equal(t, 1.0, lagSamples, "only events with a timestamp header record lag")
	require.Equal(t, time.Duration(0), ws.maxLag.Load(), "scrape resets the max lag window")
}
