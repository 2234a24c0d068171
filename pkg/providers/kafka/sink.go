package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/providers/kafka/writer"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

var _ abstract.Sinker = (*sink)(nil)

type sink struct {
	config *KafkaDestination
	writer writer.AbstractWriter
	logger log.Logger
}

func NewSink(cfg *KafkaDestination, lgr log.Logger) (abstract.Sinker, error) {
	compression, err := cfg.Compression.AsKafka()
	if err != nil {
		return nil, xerrors.Errorf("unable to resolve compression: %w", err)
	}
	mechanism, err := cfg.Auth.saslMechanism()
	if err != nil {
		return nil, xerrors.Errorf("unable to build sasl mechanism: %w", err)
	}
	w := writer.NewWriter(writer.Config{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Compression: compression,
		SASL:        mechanism,
		TLS:         cfg.tlsConfig(),
		BatchBytes:  cfg.BatchBytes,
		CreateTopic: cfg.CreateTopic,
		TopicConfig: cfg.topicConfig(),
	}, lgr)
	return newSinkWithWriter(cfg, w, lgr), nil
}

func newSinkWithWriter(cfg *KafkaDestination, w writer.AbstractWriter, lgr log.Logger) *sink {
	return &sink{
		config: cfg,
		writer: w,
		logger: log.With(lgr, log.String("topic", cfg.Topic)),
	}
}

func (s *sink) Push(input []*abstract.Event) error {
	if len(input) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(input))
	for _, event := range input {
		msgs = append(msgs, s.message(event))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
	defer cancel()
	if err := s.writer.WriteMessages(ctx, msgs...); err != nil {
		return xerrors.Errorf("unable to write %d events: %w", len(input), err)
	}
	return nil
}

func (s *sink) message(event *abstract.Event) kafka.Message {
	msg := kafka.Message{
		Value:   event.Body,
		Headers: make([]kafka.Header, 0, len(event.Headers)),
	}
	for k, v := range event.Headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	if s.config.KeyHeader != "" {
		if key, ok := event.Headers[s.config.KeyHeader]; ok {
			msg.Key = []byte(key)
		}
	}
	if ts, ok := event.Timestamp(); ok {
		msg.Time = ts
	} else {
		msg.Time = time.Now()
	}
	return msg
}

func (s *sink) Close() error {
	if err := s.writer.Close(); err != nil {
		return xerrors.Errorf("unable to close kafka writer: %w", err)
	}
	return nil
}
