package stdout

import (
	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

type Format string

const (
	// FormatJSON writes an object with headers and body per line.
	FormatJSON = Format("json")
	// FormatRaw writes the body as is per line.
	FormatRaw = Format("raw")
)

type StdoutDestination struct {
	ShowData bool   `mapstructure:"show_data" log:"true"`
	Format   Format `mapstructure:"format" log:"true"`

	provider abstract.ProviderType
}

var _ model.Destination = (*StdoutDestination)(nil)

func (d *StdoutDestination) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return logger.MarshalSanitizedObject(d, enc)
}

func (d *StdoutDestination) WithDefaults() {
	if d.Format == "" {
		d.Format = FormatJSON
	}
	if d.provider == "" {
		d.provider = ProviderTypeStdout
	}
}

func (StdoutDestination) IsDestination() {
}

func (d *StdoutDestination) GetProviderType() abstract.ProviderType {
	return d.provider
}

func (d *StdoutDestination) Validate() error {
	switch d.Format {
	case FormatJSON, FormatRaw:
		return nil
	default:
		return xerrors.Errorf("unknown format: %s", d.Format)
	}
}
