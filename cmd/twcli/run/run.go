package run

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/transferia/tweetstream/cmd/twcli/config"
	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/runtime/local"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func RunCommand(registry metrics.Registry) *cobra.Command {
	var configPath string
	var metricsPrefix string

	runCommand := &cobra.Command{
		Use:   "run",
		Short: "Run the ingestion pipeline until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromYaml(configPath)
			if err != nil {
				return xerrors.Errorf("unable to load config: %w", err)
			}
			if metricsPrefix != "" {
				registry = registry.WithPrefix(metricsPrefix)
			}
			return Run(cmd.Context(), cfg, registry)
		},
	}
	runCommand.Flags().StringVar(&configPath, "config", "./agent.yaml", "path to yaml file with pipeline configuration")
	runCommand.Flags().StringVar(&metricsPrefix, "metrics-prefix", "", "Optional prefix for Prometheus metrics")
	return runCommand
}

// Run executes the pipeline until SIGINT or SIGTERM.
func Run(ctx context.Context, cfg *config.Config, registry metrics.Registry) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lgr, closeLog, err := logger.NewOtelLog(ctx, cfg.OtelLog, logger.Log, cfg.Name)
	if err != nil {
		return xerrors.Errorf("unable to init log export: %w", err)
	}
	defer closeLog(context.Background())

	if err := local.RunIngestion(ctx, &cfg.Pipeline, registry, lgr); err != nil {
		return xerrors.Errorf("pipeline %s failed: %w", cfg.Name, err)
	}
	return nil
}
