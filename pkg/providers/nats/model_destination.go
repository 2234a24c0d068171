package nats

import (
	"strings"
	"time"

	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"github.com/transferia/tweetstream/pkg/providers/nats/connection"
	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// NatsDestination publishes every event as one message on Subject.
// With JetStream the publish waits for the stream ack.
type NatsDestination struct {
	Connection     *connection.ConnectionConfig `mapstructure:"connection" log:"true"`
	Subject        string                       `mapstructure:"subject" log:"true"`
	JetStream      bool                         `mapstructure:"jetstream" log:"true"`
	PublishTimeout time.Duration                `mapstructure:"publish_timeout" log:"true"`
}

var _ model.Destination = (*NatsDestination)(nil)

func (d *NatsDestination) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return logger.MarshalSanitizedObject(d, enc)
}

func (d *NatsDestination) WithDefaults() {
	if d.Connection == nil {
		d.Connection = new(connection.ConnectionConfig)
	}
	d.Connection.WithDefaults()
	if d.PublishTimeout == 0 {
		d.PublishTimeout = 10 * time.Second
	}
}

func (NatsDestination) IsDestination() {}

func (d *NatsDestination) GetProviderType() abstract.ProviderType {
	return ProviderType
}

func (d *NatsDestination) Validate() error {
	if d.Subject == "" {
		return xerrors.New("subject is required")
	}
	if strings.ContainsAny(d.Subject, " \t\r\n") {
		return xerrors.Errorf("subject %q must not contain whitespace", d.Subject)
	}
	if strings.ContainsAny(d.Subject, "*>") {
		return xerrors.Errorf("subject %q must not contain wildcards", d.Subject)
	}
	return nil
}
