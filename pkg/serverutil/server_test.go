package serverutil

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/library/go/core/metrics/prometheus"
	"go.uber.org/atomic"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func get(t *testing.T, url string) (int, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerEndpoints(t *testing.T) {
	promRegistry, registry := prometheus.NewPrometheusRegistryWithNameProcessor()
	registry.Counter("src.events.received").Add(3)

	healthy := atomic.NewBool(true)
	srv, err := NewServer("tcp", "127.0.0.1:0", logger.Log)
	require.NoError(t, err)
	srv.WithMetrics(promRegistry).WithPprof().WithHealth(func() error {
		if !healthy.Load() {
			return xerrors.New("source is stopped")
		}
		return nil
	})

	served := make(chan error, 1)
	go func() { served <- srv.Serve() }()
	base := "http://" + srv.Addr().String()

	code, body := get(t, base+"/health")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body)

	healthy.Store(false)
	code, body = get(t, base+"/health")
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Contains(t, body, "source is stopped")

	code, body = get(t, base+"/metrics")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "src_events_received 3")

	code, _ = get(t, base+"/debug/pprof/")
	require.Equal(t, http.StatusOK, code)

	require.NoError(t, srv.Close())
	require.NoError(t, <-served)
}
