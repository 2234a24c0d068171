package writer

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// how to generate mock from 'AbstractWriter' interface:
// > mockgen -source ./abstract.go -package writer -destination ./writer_mock.go

type AbstractWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
