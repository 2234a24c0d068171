package local

import (
	"time"

	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/providers/memory"
	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const (
	DefaultBatchSize      = 100
	DefaultBatchTimeout   = time.Second
	DefaultRetryTimeout   = time.Minute
	DefaultReportInterval = time.Minute
)

type SourceConfig struct {
	Type abstract.ProviderType `yaml:"type" log:"true"`
	// Options are handed to the source as is, secrets included, so they are not logged.
	Options map[string]string `yaml:"options"`
}

type SinkConfig struct {
	Type         abstract.ProviderType `yaml:"type" log:"true"`
	BatchSize    int                   `yaml:"batch_size" log:"true"`
	BatchBytes   uint64                `yaml:"batch_bytes" log:"true"`
	BatchTimeout time.Duration         `yaml:"batch_timeout" log:"true"`
	// RetryTimeout bounds how long one batch is retried before the pipeline fails, 0 means the default.
	RetryTimeout time.Duration  `yaml:"retry_timeout" log:"true"`
	Params       map[string]any `yaml:"params"`
}

// Pipeline is one agent: a source forwarding into a memory channel drained by a sink.
type Pipeline struct {
	Name           string               `yaml:"name" log:"true"`
	Source         SourceConfig         `yaml:"source" log:"true"`
	Channel        memory.ChannelConfig `yaml:"channel" log:"true"`
	Sink           SinkConfig           `yaml:"sink" log:"true"`
	ReportInterval time.Duration        `yaml:"report_interval" log:"true"`
}

func (p *Pipeline) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return logger.MarshalSanitizedObject(p, enc)
}

func (p *Pipeline) WithDefaults() {
	if p.Name == "" {
		p.Name = string(p.Source.Type)
	}
	p.Channel.WithDefaults()
	if p.Sink.BatchSize == 0 {
		p.Sink.BatchSize = DefaultBatchSize
	}
	if p.Sink.BatchTimeout == 0 {
		p.Sink.BatchTimeout = DefaultBatchTimeout
	}
	if p.Sink.RetryTimeout == 0 {
		p.Sink.RetryTimeout = DefaultRetryTimeout
	}
	if p.ReportInterval == 0 {
		p.ReportInterval = DefaultReportInterval
	}
}

func (p *Pipeline) Validate() error {
	if p.Source.Type == "" {
		return xerrors.New("source.type is required")
	}
	if p.Sink.Type == "" {
		return xerrors.New("sink.type is required")
	}
	if err := p.Channel.Validate(); err != nil {
		return xerrors.Errorf("invalid channel: %w", err)
	}
	if p.Sink.BatchSize < 0 {
		return xerrors.Errorf("sink.batch_size must not be negative, got %d", p.Sink.BatchSize)
	}
	if p.Sink.BatchTimeout < 0 || p.Sink.RetryTimeout < 0 {
		return xerrors.New("sink timeouts must not be negative")
	}
	if p.ReportInterval < 0 {
		return xerrors.Errorf("report_interval must not be negative, got %v", p.ReportInterval)
	}
	return nil
}
