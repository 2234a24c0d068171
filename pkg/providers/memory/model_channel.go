package memory

import (
	"time"

	"github.com/transferia/tweetstream/internal/logger"
	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const (
	DefaultCapacity  = 100
	DefaultKeepAlive = 3 * time.Second
)

type ChannelConfig struct {
	Capacity int `yaml:"capacity" mapstructure:"capacity" log:"true"`
	// KeepAlive is how long Forward waits for free space before rejecting an event.
	KeepAlive time.Duration `yaml:"keep_alive" mapstructure:"keep_alive" log:"true"`
}

func (c *ChannelConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return logger.MarshalSanitizedObject(c, enc)
}

func (c *ChannelConfig) WithDefaults() {
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = DefaultKeepAlive
	}
}

func (c *ChannelConfig) Validate() error {
	if c.Capacity < 0 {
		return xerrors.Errorf("channel capacity must be positive, got %d", c.Capacity)
	}
	if c.KeepAlive < 0 {
		return xerrors.Errorf("channel keep_alive must not be negative, got %v", c.KeepAlive)
	}
	return nil
}
