package stdout

import (
	"os"

	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"github.com/transferia/tweetstream/pkg/providers"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func init() {
	model.RegisterDestination(ProviderType, func() model.Destination {
		return &StdoutDestination{provider: ProviderType}
	})
	model.RegisterDestination(ProviderTypeStdout, func() model.Destination {
		return &StdoutDestination{provider: ProviderTypeStdout}
	})
	abstract.RegisterProviderName(ProviderType, "Empty")
	abstract.RegisterProviderName(ProviderTypeStdout, "Stdout")
	providers.Register(ProviderType, New(ProviderType))
	providers.Register(ProviderTypeStdout, New(ProviderTypeStdout))
}

const ProviderTypeStdout = abstract.ProviderType("stdout")

// ProviderType is a target that only counts what it receives.
const ProviderType = abstract.ProviderType("empty")

// To verify providers contract implementation
var (
	_ providers.Sinker = (*Provider)(nil)
)

type Provider struct {
	logger   log.Logger
	registry metrics.Registry
	endpoint model.EndpointParams
	provider abstract.ProviderType
}

func (p *Provider) Type() abstract.ProviderType {
	return p.provider
}

func (p *Provider) Sink() (abstract.Sinker, error) {
	dst, ok := p.endpoint.(*StdoutDestination)
	if !ok {
		return nil, xerrors.Errorf("unexpected target type: %T", p.endpoint)
	}
	if p.provider == ProviderType {
		return NewSinker(p.logger, dst, nil), nil
	}
	return NewSinker(p.logger, dst, os.Stdout), nil
}

func New(provider abstract.ProviderType) providers.ProviderFactory {
	return func(lgr log.Logger, registry metrics.Registry, endpoint model.EndpointParams) providers.Provider {
		return &Provider{
			logger:   lgr,
			registry: registry,
			endpoint: endpoint,
			provider: provider,
		}
	}
}
