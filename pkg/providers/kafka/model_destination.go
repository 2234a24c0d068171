package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

type Encoding string

const (
	NoEncoding     = Encoding("UNCOMPRESSED")
	GzipEncoding   = Encoding("GZIP")
	SnappyEncoding = Encoding("SNAPPY")
	LZ4Encoding    = Encoding("LZ4")
	ZstdEncoding   = Encoding("ZSTD")
)

func (e Encoding) AsKafka() (kafka.Compression, error) {
	switch Encoding(strings.ToUpper(string(e))) {
	case NoEncoding, "":
		return 0, nil
	case GzipEncoding:
		return kafka.Gzip, nil
	case SnappyEncoding:
		return kafka.Snappy, nil
	case LZ4Encoding:
		return kafka.Lz4, nil
	case ZstdEncoding:
		return kafka.Zstd, nil
	default:
		return 0, xerrors.Errorf("unknown compression: %s", e)
	}
}

type SaslMechanism string

const (
	SaslPlain       = SaslMechanism("PLAIN")
	SaslScramSHA256 = SaslMechanism("SCRAM-SHA-256")
	SaslScramSHA512 = SaslMechanism("SCRAM-SHA-512")
)

type KafkaAuth struct {
	Enabled   bool          `mapstructure:"enabled" log:"true"`
	Mechanism SaslMechanism `mapstructure:"mechanism" log:"true"`
	User      string        `mapstructure:"user" log:"true"`
	Password  string        `mapstructure:"password"`
}

type KafkaDestination struct {
	Brokers []string   `mapstructure:"brokers" log:"true"`
	Topic   string     `mapstructure:"topic" log:"true"`
	Auth    *KafkaAuth `mapstructure:"auth" log:"true"`
	TLS     bool       `mapstructure:"tls" log:"true"`

	// KeyHeader names the event header used as the message key, events without it are balanced round robin.
	KeyHeader string `mapstructure:"key_header" log:"true"`
	// The setting from segmentio/kafka-go Writer, 0 means the driver default of 1048576.
	BatchBytes   int64         `mapstructure:"batch_bytes" log:"true"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" log:"true"`
	// CreateTopic creates a missing topic with broker defaults before the first write.
	CreateTopic        bool               `mapstructure:"create_topic" log:"true"`
	TopicConfigEntries []TopicConfigEntry `mapstructure:"topic_config" log:"true"`

	Compression Encoding `mapstructure:"compression" log:"true"`
}

type TopicConfigEntry struct {
	ConfigName  string `mapstructure:"name" log:"true"`
	ConfigValue string `mapstructure:"value" log:"true"`
}

var _ model.Destination = (*KafkaDestination)(nil)

func (d *KafkaDestination) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return logger.MarshalSanitizedObject(d, enc)
}

func (d *KafkaDestination) WithDefaults() {
	if d.Auth == nil {
		d.Auth = &KafkaAuth{
			Enabled:   false,
			Mechanism: SaslScramSHA512,
			User:      "",
			Password:  "",
		}
	}
	if d.Auth.Mechanism == "" {
		d.Auth.Mechanism = SaslScramSHA512
	}
	if d.Compression == "" {
		d.Compression = NoEncoding
	}
	if d.WriteTimeout == 0 {
		d.WriteTimeout = 30 * time.Second
	}
}

func (KafkaDestination) IsDestination() {}

func (d *KafkaDestination) GetProviderType() abstract.ProviderType {
	return ProviderType
}

func (d *KafkaDestination) Validate() error {
	if len(d.Brokers) == 0 {
		return xerrors.New("at least one broker is required")
	}
	if d.Topic == "" {
		return xerrors.New("topic is required")
	}
	if _, err := d.Compression.AsKafka(); err != nil {
		return xerrors.Errorf("invalid compression: %w", err)
	}
	if d.Auth.Enabled {
		switch d.Auth.Mechanism {
		case SaslPlain, SaslScramSHA256, SaslScramSHA512:
		default:
			return xerrors.Errorf("unknown sasl mechanism: %s", d.Auth.Mechanism)
		}
	}
	if d.BatchBytes < 0 {
		return xerrors.Errorf("batch_bytes must not be negative, got %d", d.BatchBytes)
	}
	return nil
}

func (d *KafkaDestination) topicConfig() []kafka.ConfigEntry {
	res := make([]kafka.ConfigEntry, 0, len(d.TopicConfigEntries))
	for _, entry := range d.TopicConfigEntries {
		res = append(res, kafka.ConfigEntry{ConfigName: entry.ConfigName, ConfigValue: entry.ConfigValue})
	}
	return res
}
