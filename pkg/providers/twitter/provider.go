package twitter

import (
	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"github.com/transferia/tweetstream/pkg/providers"
	"go.ytsaurus.tech/library/go/core/log"
)

const ProviderType = abstract.ProviderType("twitter")

func init() {
	model.RegisterSource(ProviderType, func() model.Source {
		return new(TwitterSource)
	})
	abstract.RegisterProviderName(ProviderType, "Twitter")
	providers.Register(ProviderType, New)
}

var _ providers.Sourcer = (*Provider)(nil)

type Provider struct {
	logger   log.Logger
	registry metrics.Registry
}

func New(lgr log.Logger, registry metrics.Registry, _ model.EndpointParams) providers.Provider {
	return &Provider{
		logger:   lgr,
		registry: registry,
	}
}

func (p *Provider) Type() abstract.ProviderType {
	return ProviderType
}

// Source returns an unconfigured source, options are applied by Configure.
func (p *Provider) Source(name string, sink abstract.Sink) (abstract.EventDrivenSource, error) {
	return NewSource(name, sink, p.logger, p.registry), nil
}
