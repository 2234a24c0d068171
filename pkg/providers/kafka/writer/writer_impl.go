package writer

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/errors/coded"
	"github.com/transferia/tweetstream/pkg/errors/codes"
	"go.uber.org/multierr"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const requestTimeout = time.Minute

var _ AbstractWriter = (*Writer)(nil)

type Config struct {
	Brokers     []string
	Topic       string
	Compression kafka.Compression
	SASL        sasl.Mechanism
	TLS         *tls.Config
	BatchBytes  int64
	// CreateTopic checks the topic on the first write and creates it when missing.
	CreateTopic bool
	TopicConfig []kafka.ConfigEntry
}

// Writer produces into a single topic.
type Writer struct {
	cfg    Config
	logger log.Logger

	mu          sync.Mutex
	topicExists bool

	rawKafkaWriter *kafka.Writer
}

func NewWriter(cfg Config, lgr log.Logger) *Writer {
	rawKafkaWriter := &kafka.Writer{
		Addr:       kafka.TCP(cfg.Brokers...),
		Topic:      cfg.Topic,
		Balancer:   &kafka.Hash{},
		BatchBytes: cfg.BatchBytes,
		Transport: &kafka.Transport{
			TLS:  cfg.TLS,
			SASL: cfg.SASL,
		},
		Compression: cfg.Compression,
		// the sink runner already batches, do not wait for more
		BatchTimeout: time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}
	return &Writer{
		cfg:            cfg,
		logger:         lgr,
		mu:             sync.Mutex{},
		topicExists:    !cfg.CreateTopic,
		rawKafkaWriter: rawKafkaWriter,
	}
}

func (w *Writer) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if err := w.ensureTopicExists(ctx); err != nil {
		return xerrors.Errorf("unable to ensure topic %s exists: %w", w.cfg.Topic, err)
	}
	if err := w.rawKafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		switch t := err.(type) {
		case kafka.WriteErrors:
			return xerrors.Errorf("%d of %d messages failed: %w", t.Count(), len(msgs), multierr.Combine(t...))
		case kafka.MessageTooLargeError:
			return abstract.NewFatalError(xerrors.Errorf("message exceeded max message size (current BatchBytes: %d, len(key): %d, len(val): %d)",
				w.cfg.BatchBytes, len(t.Message.Key), len(t.Message.Value)))
		default:
			return xerrors.Errorf("unable to write %d messages to topic %s: %w", len(msgs), w.cfg.Topic, err)
		}
	}
	return nil
}

func (w *Writer) Close() error {
	return w.rawKafkaWriter.Close()
}

func (w *Writer) ensureTopicExists(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.topicExists {
		return nil
	}

	dialer := &kafka.Dialer{
		Timeout:       requestTimeout,
		TLS:           w.cfg.TLS,
		SASLMechanism: w.cfg.SASL,
	}
	conn, err := dialer.DialContext(ctx, "tcp", w.cfg.Brokers[0])
	if err != nil {
		return coded.Errorf(codes.NetworkUnreachable, "unable to dial broker %s: %w", w.cfg.Brokers[0], err)
	}
	defer conn.Close()

	_, err = conn.ReadPartitions(w.cfg.Topic)
	switch {
	case err == nil:
		w.topicExists = true
		return nil
	case xerrors.Is(err, kafka.UnknownTopicOrPartition):
	default:
		return xerrors.Errorf("unable to read partitions: %w", err)
	}

	controller, err := conn.Controller()
	if err != nil {
		return xerrors.Errorf("unable to get controller address: %w", err)
	}
	controllerConn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return coded.Errorf(codes.NetworkUnreachable, "unable to dial controller: %w", err)
	}
	defer controllerConn.Close()

	w.logger.Info("topic does not exist, creating", log.String("topic", w.cfg.Topic))
	if err := controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             w.cfg.Topic,
		NumPartitions:     -1,
		ReplicationFactor: -1,
		ConfigEntries:     w.cfg.TopicConfig,
	}); err != nil {
		return xerrors.Errorf("unable to create topic: %w", err)
	}
	w.topicExists = true
	return nil
}
