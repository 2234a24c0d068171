package logger

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/log"
	corezap "go.ytsaurus.tech/library/go/core/log/zap"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const (
	KeyApp       = "labels.app"
	KeyAgentName = "labels.agent"
)

var emptyCloser = func(_ context.Context) {}

// OtelLogConfig enables shipping of logs to an OTLP/gRPC collector in addition
// to the console output.
type OtelLogConfig struct {
	Enabled     bool   `yaml:"enabled" log:"true"`
	Endpoint    string `yaml:"endpoint" log:"true"`
	ServiceName string `yaml:"service_name" log:"true"`
	Insecure    bool   `yaml:"insecure" log:"true"`
}

func (c *OtelLogConfig) WithDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "tweetstream"
	}
}

func (c *OtelLogConfig) Validate() error {
	if c.Enabled && c.Endpoint == "" {
		return xerrors.New("otel log export is enabled but endpoint is empty")
	}
	return nil
}

// NewOtelLog returns a logger that writes both into base and into the collector
// configured by cfg. When export is disabled base is returned untouched.
func NewOtelLog(ctx context.Context, cfg OtelLogConfig, base log.Logger, agentName string) (lgr log.Logger, close func(ctx context.Context), err error) {
	if !cfg.Enabled {
		return base, emptyCloser, nil
	}
	cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return base, emptyCloser, xerrors.Errorf("invalid otel log config: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			attribute.String("agent", agentName),
		),
	)
	if err != nil {
		return base, emptyCloser, xerrors.Errorf("unable to build otel resource: %w", err)
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	logExporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return base, emptyCloser, xerrors.Errorf("failed to create log exporter: %w", err)
	}
	logProvider := sdklog.NewLoggerProvider(
		sdklog.WithResource(r),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)
	otelCore := otelzap.NewCore(cfg.ServiceName, otelzap.WithLoggerProvider(logProvider))

	core := zapcore.Core(otelCore)
	if zapLogger, ok := base.(*corezap.Logger); ok {
		core = zapcore.NewTee(zapLogger.L.Core(), otelCore)
	}
	l := log.With(corezap.NewWithCore(core), log.String(KeyApp, cfg.ServiceName), log.String(KeyAgentName, agentName))

	return l, func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := logProvider.Shutdown(ctx); err != nil {
			base.Error("failed to shutdown otel logger provider", log.Error(err))
		}
	}, nil
}
