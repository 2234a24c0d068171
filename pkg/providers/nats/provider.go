package nats

import (
	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"github.com/transferia/tweetstream/pkg/providers"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const ProviderType = abstract.ProviderType("nats")

func init() {
	model.RegisterDestination(ProviderType, func() model.Destination {
		return new(NatsDestination)
	})
	abstract.RegisterProviderName(ProviderType, "Nats")
	providers.Register(ProviderType, New)
}

var _ providers.Sinker = (*Provider)(nil)

type Provider struct {
	logger   log.Logger
	registry metrics.Registry
	endpoint model.EndpointParams
}

func New(lgr log.Logger, registry metrics.Registry, endpoint model.EndpointParams) providers.Provider {
	return &Provider{
		logger:   lgr,
		registry: registry,
		endpoint: endpoint,
	}
}

func (p *Provider) Type() abstract.ProviderType {
	return ProviderType
}

func (p *Provider) Sink() (abstract.Sinker, error) {
	dst, ok := p.endpoint.(*NatsDestination)
	if !ok {
		return nil, xerrors.Errorf("unexpected destination type: %T", p.endpoint)
	}
	return NewSink(dst, p.logger)
}
