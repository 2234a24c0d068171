package model

import (
	"github.com/transferia/tweetstream/pkg/abstract"
	"go.uber.org/zap/zapcore"
)

// EndpointParams is the common contract of source and destination models.
type EndpointParams interface {
	zapcore.ObjectMarshaler
	GetProviderType() abstract.ProviderType
	WithDefaults()
	Validate() error
}

type Source interface {
	EndpointParams
	IsSource()
}

type Destination interface {
	EndpointParams
	IsDestination()
}
