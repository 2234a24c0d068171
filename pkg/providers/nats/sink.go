package nats

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/providers/nats/connection"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

var _ abstract.Sinker = (*sink)(nil)

type sink struct {
	config    *NatsDestination
	publisher Publisher
	logger    log.Logger
}

func NewSink(cfg *NatsDestination, lgr log.Logger) (abstract.Sinker, error) {
	conn, err := connection.Connect(cfg.Connection, lgr)
	if err != nil {
		return nil, xerrors.Errorf("unable to connect: %w", err)
	}
	var publisher Publisher = &corePublisher{conn: conn}
	if cfg.JetStream {
		publisher, err = newJetStreamPublisher(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
	}
	return newSinkWithPublisher(cfg, publisher, lgr), nil
}

func newSinkWithPublisher(cfg *NatsDestination, publisher Publisher, lgr log.Logger) *sink {
	return &sink{
		config:    cfg,
		publisher: publisher,
		logger:    log.With(lgr, log.String("subject", cfg.Subject)),
	}
}

func (s *sink) Push(input []*abstract.Event) error {
	if len(input) == 0 {
		return nil
	}
	msgs := make([]*nats.Msg, 0, len(input))
	for _, event := range input {
		msg := nats.NewMsg(s.config.Subject)
		msg.Data = event.Body
		for k, v := range event.Headers {
			msg.Header.Set(k, v)
		}
		msgs = append(msgs, msg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.PublishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, msgs); err != nil {
		return xerrors.Errorf("unable to publish %d events: %w", len(input), err)
	}
	return nil
}

func (s *sink) Close() error {
	s.publisher.Close()
	return nil
}
