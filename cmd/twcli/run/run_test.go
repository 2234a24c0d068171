package run

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/library/go/core/metrics/prometheus"
)

func TestRunCommandMissingConfig(t *testing.T) {
	cmd := RunCommand(prometheus.NewRegistry(prometheus.NewRegistryOpts()))
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")})
	cmd.SetContext(context.Background())
	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unable to load config")
}

func TestRunCommandUnknownSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: {type: nowhere}\nsink: {type: nowhere}\n"), 0o600))

	cmd := RunCommand(prometheus.NewRegistry(prometheus.NewRegistryOpts()))
	cmd.SetArgs([]string{"--config", path})
	cmd.SetContext(context.Background())
	require.Error(t, cmd.Execute())
}
