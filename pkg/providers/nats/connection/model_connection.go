package connection

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/transferia/tweetstream/pkg/errors/coded"
	"github.com/transferia/tweetstream/pkg/errors/codes"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// ConnectionConfig holds the details required to connect to a NATS server.
type ConnectionConfig struct {
	URL           string        `mapstructure:"url" log:"true"`
	Name          string        `mapstructure:"name" log:"true"`
	MaxReconnect  int           `mapstructure:"max_reconnect" log:"true"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait" log:"true"`
	Token         string        `mapstructure:"token"`
	User          string        `mapstructure:"user" log:"true"`
	Password      string        `mapstructure:"password"`
}

func (c *ConnectionConfig) WithDefaults() {
	if c.URL == "" {
		c.URL = nats.DefaultURL
	}
	if c.Name == "" {
		c.Name = "tweetstream"
	}
	if c.MaxReconnect == 0 {
		c.MaxReconnect = 10
	}
	if c.ReconnectWait == 0 {
		c.ReconnectWait = 2 * time.Second
	}
}

func (c *ConnectionConfig) Options(lgr log.Logger) []nats.Option {
	opts := []nats.Option{
		nats.Name(c.Name),
		nats.MaxReconnects(c.MaxReconnect),
		nats.ReconnectWait(c.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			lgr.Warn("nats disconnected", log.Error(err))
		}),
		nats.ReconnectHandler(func(conn *nats.Conn) {
			lgr.Info("nats reconnected", log.String("url", conn.ConnectedUrlRedacted()))
		}),
	}
	if c.Token != "" {
		opts = append(opts, nats.Token(c.Token))
	}
	if c.User != "" {
		opts = append(opts, nats.UserInfo(c.User, c.Password))
	}
	return opts
}

func Connect(cfg *ConnectionConfig, lgr log.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL, cfg.Options(lgr)...)
	if err != nil {
		if xerrors.Is(err, nats.ErrNoServers) {
			return nil, coded.Errorf(codes.NetworkUnreachable, "unable to connect to nats at %s: %w", cfg.URL, err)
		}
		return nil, xerrors.Errorf("error while connecting to nats: %w", err)
	}
	return conn, nil
}
