package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/pkg/abstract"
)

const sample = `
name: twitter-agent
source:
  type: twitter
  options:
    consumerKey: ${TW_CONSUMER_KEY}
    consumerSecret: cs
    accessToken: at
    accessTokenSecret: as
    keywords: "foo, bar"
    follow: 12
channel:
  capacity: 1000
  keep_alive: 5s
sink:
  type: kafka
  batch_size: 50
  batch_timeout: 2s
  params:
    brokers: [localhost:9092]
    topic: tweets
otel_log:
  enabled: false
`

func TestFromYaml(t *testing.T) {
	t.Setenv("TW_CONSUMER_KEY", "from-env")
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := FromYaml(path)
	require.NoError(t, err)
	require.Equal(t, "twitter-agent", cfg.Name)
	require.Equal(t, abstract.ProviderType("twitter"), cfg.Source.Type)
	require.Equal(t, "from-env", cfg.Source.Options["consumerKey"])
	require.Equal(t, "12", cfg.Source.Options["follow"])
	require.Equal(t, 1000, cfg.Channel.Capacity)
	require.Equal(t, 5*time.Second, cfg.Channel.KeepAlive)
	require.Equal(t, 50, cfg.Sink.BatchSize)
	require.Equal(t, 2*time.Second, cfg.Sink.BatchTimeout)
	require.Equal(t, "tweets", cfg.Sink.Params["topic"])
	require.Equal(t, "tweetstream", cfg.OtelLog.ServiceName)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("source: {type: twitter}\n"))
	require.Error(t, err)

	_, err = Parse([]byte("source: {type: twitter}\nsink: {type: stdout}\notel_log: {enabled: true}\n"))
	require.Error(t, err)

	_, err = Parse([]byte("source: [\n"))
	require.Error(t, err)

	_, err = FromYaml(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
