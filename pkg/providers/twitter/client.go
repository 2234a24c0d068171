package twitter

import (
	"github.com/transferia/tweetstream/pkg/providers/twitter/stream"
	"go.ytsaurus.tech/library/go/core/log"
)

// how to generate mock from 'StreamClient' interface:
// > mockgen -source ./client.go -package twitter -destination ./client_mock.go

// StreamClient is the part of stream.Client the source drives.
type StreamClient interface {
	AddListener(l stream.Listener)
	Sample() error
	Filter(q *stream.FilterQuery) error
	Shutdown()
}

type ClientFactory func(cfg stream.Config, lgr log.Logger) StreamClient

func NewStreamClient(cfg stream.Config, lgr log.Logger) StreamClient {
	return stream.NewClient(cfg, lgr)
}
