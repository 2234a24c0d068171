package local

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/pkg/providers/memory"
)

func TestPipelineDefaults(t *testing.T) {
	p := &Pipeline{Source: SourceConfig{Type: "twitter"}, Sink: SinkConfig{Type: "stdout"}}
	p.WithDefaults()
	require.NoError(t, p.Validate())
	require.Equal(t, "twitter", p.Name)
	require.Equal(t, DefaultBatchSize, p.Sink.BatchSize)
	require.Equal(t, DefaultBatchTimeout, p.Sink.BatchTimeout)
	require.Equal(t, DefaultRetryTimeout, p.Sink.RetryTimeout)
	require.Equal(t, DefaultReportInterval, p.ReportInterval)
	require.Equal(t, memory.DefaultCapacity, p.Channel.Capacity)
}

func TestPipelineValidate(t *testing.T) {
	for name, p := range map[string]*Pipeline{
		"no source":      {Sink: SinkConfig{Type: "stdout"}},
		"no sink":        {Source: SourceConfig{Type: "twitter"}},
		"negative batch": {Source: SourceConfig{Type: "twitter"}, Sink: SinkConfig{Type: "stdout", BatchSize: -1}},
		"negative retry": {Source: SourceConfig{Type: "twitter"}, Sink: SinkConfig{Type: "stdout", RetryTimeout: -time.Second}},
		"bad channel":    {Source: SourceConfig{Type: "twitter"}, Sink: SinkConfig{Type: "stdout"}, Channel: memory.ChannelConfig{Capacity: -1}},
	} {
		t.Run(name, func(t *testing.T) {
			p.WithDefaults()
			require.Error(t, p.Validate())
		})
	}
}
