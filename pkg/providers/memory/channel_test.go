package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/library/go/core/metrics/prometheus"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/errors/codes"
)

func newTestChannel(capacity int, keepAlive time.Duration) (*Channel, *prometheus.Registry) {
	registry := prometheus.NewRegistry(prometheus.NewRegistryOpts())
	return NewChannel(ChannelConfig{Capacity: capacity, KeepAlive: keepAlive}, registry), registry
}

func event(i int) *abstract.Event {
	return abstract.NewEvent([]byte(fmt.Sprintf(`{"id":%d}`, i)), nil)
}

func TestForwardAndTake(t *testing.T) {
	ch, registry := newTestChannel(2, time.Millisecond)
	require.NoError(t, ch.Forward(event(1)))
	require.NoError(t, ch.Forward(event(2)))
	require.Equal(t, 2, ch.Len())

	got, err := ch.Take(context.Background())
	require.NoError(t, err)
	require.Equal(t, `{"id":1}`, string(got.Body))

	labels := map[string]string{"component": "channel"}
	put, _ := registry.FindValue("channel_event_put_success", labels)
	require.Equal(t, 2.0, put)
	fill, _ := registry.FindValue("channel_fill", labels)
	require.Equal(t, 1.0, fill)
	capacity, _ := registry.FindValue("channel_capacity", labels)
	require.Equal(t, 2.0, capacity)
}

func TestForwardRejectsWhenFull(t *testing.T) {
	ch, registry := newTestChannel(1, 20*time.Millisecond)
	require.NoError(t, ch.Forward(event(1)))

	started := time.Now()
	err := ch.Forward(event(2))
	require.Error(t, err)
	require.True(t, abstract.IsChannelFull(err))
	require.True(t, codes.ChannelFull.Contains(err))
	require.GreaterOrEqual(t, time.Since(started), 20*time.Millisecond)

	rejected, _ := registry.FindValue("channel_event_put_rejected", map[string]string{"component": "channel"})
	require.Equal(t, 1.0, rejected)
}

func TestForwardWaitsForSpace(t *testing.T) {
	ch, _ := newTestChannel(1, 5*time.Second)
	require.NoError(t, ch.Forward(event(1)))

	go func() {
		time.Sleep(20 * time.Millisecond)
		_, _ = ch.Take(context.Background())
	}()
	require.NoError(t, ch.Forward(event(2)))
}

func TestTakeBatch(t *testing.T) {
	ch, _ := newTestChannel(10, time.Millisecond)
	for i := range 5 {
		require.NoError(t, ch.Forward(event(i)))
	}

	batch, err := ch.TakeBatch(context.Background(), 3, 10*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, batch, 3)

	batch, err = ch.TakeBatch(context.Background(), 3, 10*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	require.Equal(t, `{"id":4}`, string(batch[1].Body))
}

func TestTakeHonorsContext(t *testing.T) {
	ch, _ := newTestChannel(1, time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := ch.Take(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseDrainsThenFails(t *testing.T) {
	ch, _ := newTestChannel(2, time.Second)
	require.NoError(t, ch.Forward(event(1)))
	ch.Close()
	ch.Close()

	require.ErrorIs(t, ch.Forward(event(2)), ErrChannelClosed)

	got, err := ch.Take(context.Background())
	require.NoError(t, err)
	require.Equal(t, `{"id":1}`, string(got.Body))

	_, err = ch.Take(context.Background())
	require.ErrorIs(t, err, ErrChannelClosed)
}

func TestCloseWakesBlockedWriter(t *testing.T) {
	ch, _ := newTestChannel(1, time.Minute)
	require.NoError(t, ch.Forward(event(1)))

	errCh := make(chan error, 1)
	go func() { errCh <- ch.Forward(event(2)) }()
	time.Sleep(10 * time.Millisecond)
	ch.Close()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrChannelClosed)
	case <-time.After(2 * time.Second):
		require.Fail(t, "writer was not released by Close")
	}
}

func TestChannelConfig(t *testing.T) {
	cfg := ChannelConfig{}
	cfg.WithDefaults()
	require.Equal(t, DefaultCapacity, cfg.Capacity)
	require.Equal(t, DefaultKeepAlive, cfg.KeepAlive)
	require.NoError(t, cfg.Validate())

	require.Error(t, (&ChannelConfig{Capacity: -1}).Validate())
	require.Error(t, (&ChannelConfig{Capacity: 1, KeepAlive: -time.Second}).Validate())
}
