package nats

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// how to generate mock from 'Publisher' interface:
// > mockgen -source ./publisher.go -package nats -destination ./publisher_mock.go

type Publisher interface {
	Publish(ctx context.Context, msgs []*nats.Msg) error
	Close()
}

// corePublisher publishes fire-and-forget and flushes once per batch.
type corePublisher struct {
	conn *nats.Conn
}

func (p *corePublisher) Publish(ctx context.Context, msgs []*nats.Msg) error {
	for _, msg := range msgs {
		if err := p.conn.PublishMsg(msg); err != nil {
			return xerrors.Errorf("unable to publish to %s: %w", msg.Subject, err)
		}
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return xerrors.Errorf("unable to flush: %w", err)
	}
	return nil
}

func (p *corePublisher) Close() {
	p.conn.Close()
}

// jetStreamPublisher publishes asynchronously and waits for all acks.
type jetStreamPublisher struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

func newJetStreamPublisher(conn *nats.Conn) (*jetStreamPublisher, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, xerrors.Errorf("unable to obtain jetstream context: %w", err)
	}
	return &jetStreamPublisher{conn: conn, js: js}, nil
}

func (p *jetStreamPublisher) Publish(ctx context.Context, msgs []*nats.Msg) error {
	acks := make([]jetstream.PubAckFuture, 0, len(msgs))
	for _, msg := range msgs {
		ack, err := p.js.PublishMsgAsync(msg)
		if err != nil {
			return xerrors.Errorf("unable to publish to %s: %w", msg.Subject, err)
		}
		acks = append(acks, ack)
	}
	for _, ack := range acks {
		select {
		case <-ack.Ok():
		case err := <-ack.Err():
			return xerrors.Errorf("message was not acknowledged: %w", err)
		case <-ctx.Done():
			return xerrors.Errorf("waiting for acks: %w", ctx.Err())
		}
	}
	return nil
}

func (p *jetStreamPublisher) Close() {
	p.conn.Close()
}
