package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/transferia/tweetstream/cmd/twcli/check"
	"github.com/transferia/tweetstream/cmd/twcli/run"
	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/library/go/core/metrics/prometheus"
	_ "github.com/transferia/tweetstream/pkg/dataplane"
	"github.com/transferia/tweetstream/pkg/serverutil"
	zp "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/log/zap"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

var (
	defaultLogLevel    = "debug"
	defaultLogConfig   = "console"
	defaultMetricsAddr = ":9091"
)

func main() {
	loggerConfig := newLoggerConfig()
	logger.Log = zap.Must(loggerConfig)
	logLevel := defaultLogLevel
	logConfig := defaultLogConfig
	metricsAddr := defaultMetricsAddr
	runProfiler := false

	promRegistry, registry := prometheus.NewPrometheusRegistryWithNameProcessor()

	rootCommand := &cobra.Command{
		Use:          "twcli",
		Short:        "Twitter stream ingestion agent",
		Example:      "./twcli run --config agent.yaml",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(context.Background())

			switch strings.ToLower(logConfig) {
			case "console":
			case "json":
				loggerConfig = zp.NewProductionConfig()
			case "minimal":
				loggerConfig.EncoderConfig = zapcore.EncoderConfig{
					MessageKey:     "message",
					LevelKey:       "level",
					TimeKey:        "",
					NameKey:        "",
					CallerKey:      "",
					FunctionKey:    "",
					StacktraceKey:  "",
					LineEnding:     zapcore.DefaultLineEnding,
					EncodeLevel:    zapcore.CapitalColorLevelEncoder,
					EncodeName:     nil,
					EncodeDuration: nil,
				}
			default:
				return xerrors.Errorf("unsupported value \"%s\" for --log-config", logConfig)
			}
			switch strings.ToLower(logLevel) {
			case "panic":
				loggerConfig.Level.SetLevel(zapcore.PanicLevel)
			case "fatal":
				loggerConfig.Level.SetLevel(zapcore.FatalLevel)
			case "error":
				loggerConfig.Level.SetLevel(zapcore.ErrorLevel)
			case "warning":
				loggerConfig.Level.SetLevel(zapcore.WarnLevel)
			case "info":
				loggerConfig.Level.SetLevel(zapcore.InfoLevel)
			case "debug":
				loggerConfig.Level.SetLevel(zapcore.DebugLevel)
			default:
				return xerrors.Errorf("unsupported value \"%s\" for --log-level", logLevel)
			}
			logger.Log = zap.Must(loggerConfig)

			if cmd.Name() != "run" || metricsAddr == "" {
				return nil
			}
			server, err := serverutil.NewServer("tcp", metricsAddr, logger.Log)
			if err != nil {
				return xerrors.Errorf("unable to start metrics server: %w", err)
			}
			server.WithMetrics(promRegistry).WithHealth(nil)
			if runProfiler {
				server.WithPprof()
			}
			go func() {
				logger.Log.Infof("Prometheus is uprising on %v", server.Addr())
				if err := server.Serve(); err != nil {
					logger.Log.Error("failed to serve metrics", log.Error(err))
				}
			}()
			return nil
		},
	}

	rootCommand.AddCommand(run.RunCommand(registry))
	rootCommand.AddCommand(check.CheckCommand())
	rootCommand.AddCommand(versionCommand())

	rootCommand.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Specifies logging level for output logs (\"panic\", \"fatal\", \"error\", \"warning\", \"info\", \"debug\")")
	rootCommand.PersistentFlags().StringVar(&logConfig, "log-config", defaultLogConfig, "Specifies logging config for output logs (\"console\", \"json\", \"minimal\")")
	rootCommand.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", defaultMetricsAddr, "Address for /metrics and /health, empty disables the server")
	rootCommand.PersistentFlags().BoolVar(&runProfiler, "run-profiler", false, "Serve go pprof profiles next to metrics")

	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLoggerConfig() zp.Config {
	cfg := logger.DefaultLoggerConfig(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}
